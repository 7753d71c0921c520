package core

import (
	"strings"
	"testing"
	"time"
)

func testSummary() *Summary {
	return &Summary{
		Meta: Meta{Name: "User One", SpreadsheetURL: "https://docs.google.com/spreadsheets/d/X"},
		Period: Period{
			SizeDays: 14,
			Start:    time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		Spent: SpentBreakdown{Items: []SpentAmount{
			{Bucket: BucketSpending, Amount: Money{Cents: 12050}},
			{Bucket: BucketBills, Amount: Money{Cents: 30000}},
			{Bucket: BucketSavings, Amount: Money{Cents: 7500}},
		}},
		Spendables: []SpendableOverview{
			{Category: "Fun", Spendable: Money{Cents: 5000}, LeftToday: Money{Cents: 500}},
			{Category: "Groceries", Spendable: Money{Cents: 12050}, LeftToday: Money{Cents: 1205}},
		},
		Stats: BudgetStats{
			TotalBudget:         Money{Cents: 50000},
			WithheldPayments:    Money{Cents: 30000},
			WithheldSavings:     Money{Cents: 7500},
			AllocatedSpending:   Money{Cents: 10000},
			BudgetAfterSpending: Money{Cents: 10000},
		},
	}
}

func TestDaysLeft(t *testing.T) {
	s := testSummary()
	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"first day", time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC), 14},
		{"mid-period morning", time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC), 12},
		{"last day", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), 1},
		{"last day evening", time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC), 1},
		{"after end", time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.DaysLeft(tt.today); got != tt.want {
				t.Fatalf("DaysLeft = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeOverflow(t *testing.T) {
	s := testSummary()
	// Spending 120.50 over an allocation of 100.00 consumes 20.50 of the
	// 100.00 pool; bills and savings are exactly at their withheld amounts.
	ov := s.ComputeOverflow()
	if ov.Consumed.Cents != 2050 {
		t.Fatalf("consumed: %d, want 2050", ov.Consumed.Cents)
	}
	if ov.Available.Cents != 10000 {
		t.Fatalf("available: %d", ov.Available.Cents)
	}
	if ov.Pct < 20.4 || ov.Pct > 20.6 {
		t.Fatalf("pct: %v, want ~20.5", ov.Pct)
	}
}

func TestComputeOverflow_NoPool(t *testing.T) {
	s := testSummary()
	s.Stats.BudgetAfterSpending = Money{}
	if got := s.ComputeOverflow().Pct; got != 0 {
		t.Fatalf("pct with empty pool: %v, want 0", got)
	}
}

func TestSortBudgets(t *testing.T) {
	s := testSummary()
	s.Budgets = []Budget{
		{Description: "c", NextPayment: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{Description: "a"},
		{Description: "b", NextPayment: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)},
	}
	s.SortBudgets()
	order := make([]string, len(s.Budgets))
	for i, b := range s.Budgets {
		order[i] = b.Description
	}
	if got := strings.Join(order, ""); got != "abc" {
		t.Fatalf("order: %q, want \"abc\" (undated first, then by date)", got)
	}
}

func TestSubject(t *testing.T) {
	s := testSummary()
	onStart := time.Date(2026, 8, 18, 9, 30, 0, 0, time.UTC)
	if got := s.Subject(onStart); !strings.HasPrefix(got, "NEW BUDGET UNLOCKED") {
		t.Fatalf("subject on period start: %q", got)
	}
	midPeriod := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if got := s.Subject(midPeriod); got != "User One Budget Reminder" {
		t.Fatalf("subject mid period: %q", got)
	}
}

func TestAt_SortsSpendablesWithoutMutating(t *testing.T) {
	s := testSummary()
	view := s.At(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	if view.Spendables[0].Category != "Groceries" {
		t.Fatalf("view should sort by left-today desc, got %q first", view.Spendables[0].Category)
	}
	if s.Spendables[0].Category != "Fun" {
		t.Fatal("At must not reorder the summary itself")
	}
	if view.RemainingSum.Cents != 17050 {
		t.Fatalf("remaining sum: %d", view.RemainingSum.Cents)
	}
	if view.DaysLeft != 12 {
		t.Fatalf("days left: %d", view.DaysLeft)
	}
}
