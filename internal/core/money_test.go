package core

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		cents int64
	}{
		{"plain decimal", "120.50", 12050},
		{"dollar sign", "$500.00", 50000},
		{"thousands separator", "$1,234.56", 123456},
		{"negative", "-$12.30", -1230},
		{"parens-free negative", "-0.01", -1},
		{"no decimals", "42", 4200},
		{"one decimal", "120.5", 12050},
		{"rounds up", "1.006", 101},
		{"rounds down", "1.004", 100},
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"garbage", "n/a", 0},
		{"spaces around", " $99.99 ", 9999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMoney(tt.in)
			if got.Cents != tt.cents {
				t.Fatalf("ParseMoney(%q) = %d cents, want %d", tt.in, got.Cents, tt.cents)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{12050, "120.50"},
		{50000, "500.00"},
		{5, "0.05"},
		{-1230, "-12.30"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		got := Money{Cents: tt.cents}.String()
		if got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 100050}
	b := Money{Cents: 98000}
	if got := a.Sub(b).Cents; got != 2050 {
		t.Fatalf("Sub = %d, want 2050", got)
	}
	if got := a.Add(b).Cents; got != 198050 {
		t.Fatalf("Add = %d, want 198050", got)
	}
	if !(Money{}).IsZero() {
		t.Fatal("zero Money should report IsZero")
	}
}
