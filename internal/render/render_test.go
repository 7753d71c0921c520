package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reminder/internal/core"
)

func testView() core.View {
	return core.View{
		Meta: core.Meta{
			Name:           "User One",
			SpreadsheetURL: "https://docs.google.com/spreadsheets/d/X",
		},
		ScheduleLabel: "8:00 AM",

		Today:    time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC),
		DaysLeft: 12,

		StartDate:  time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		PeriodSize: 14,

		SpendingThisPeriod: core.Money{Cents: 12050},
		BillsThisPeriod:    core.Money{Cents: 30000},
		SavingsThisPeriod:  core.Money{Cents: 7500},
		RemainingSum:       core.Money{Cents: 17050},

		AccountBalances: []core.AccountBalance{
			{Name: "Checking", Manual: core.Money{Cents: 150000}, Calculated: core.Money{Cents: 98000}, Diff: core.Money{Cents: 52000}},
		},
		Spendables: []core.SpendableOverview{
			{Category: "Groceries", Spendable: core.Money{Cents: 12050}, FutureDaily: core.Money{Cents: 861}, LeftToday: core.Money{Cents: 1205}},
		},
		Payments: []core.PaymentsOverview{{Category: "Bills", Amount: core.Money{Cents: 30000}}},
		Savings:  []core.SavingsOverview{{Category: "Fun", Amount: core.Money{Cents: 7500}}},
		Budgets: []core.Budget{
			{
				Category:      "Bills",
				Subcategory:   "Internet",
				Amount:        core.Money{Cents: 4500},
				TimeframeDays: 30,
				Description:   "Home fiber",
				Type:          core.RequiredPayment,
				PaidFrom:      "Checking",
				NextPayment:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Stats: core.BudgetStats{
			IncomeAccount:       "Checking",
			TotalBudget:         core.Money{Cents: 50000},
			AllocatedSpending:   core.Money{Cents: 10000},
			BudgetAfterSpending: core.Money{Cents: 10000},
		},
		Transfers: []core.TransferOverview{
			{From: "Checking", To: "Savings", Amount: core.Money{Cents: 2500}},
		},

		Overflow: core.Overflow{
			Consumed:  core.Money{Cents: 2050},
			Available: core.Money{Cents: 10000},
			Pct:       20.5,
		},

		Horoscope:    "A calm and productive day ahead.",
		HoroscopeURL: "https://example.com/leo",
	}
}

func TestRenderEmbedded(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	html, err := r.Render(testView())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"User One",
		"120.50",
		"500.00",
		"Home fiber",
		"A calm and productive day ahead.",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	view := testView()

	first, err := r.Render(view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.Render(view)
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if first != second {
		t.Fatal("same view rendered to different HTML")
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.html")
	body := "<p>{{.Meta.Name}} has {{money .RemainingSum}} left</p>"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("new from file: %v", err)
	}
	html, err := r.Render(testView())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "User One has 170.50 left") {
		t.Errorf("unexpected output: %q", html)
	}
}

func TestNewFromFileMissing(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "nope.html"))
	if !errors.Is(err, ErrTemplate) {
		t.Fatalf("want ErrTemplate, got %v", err)
	}
}

func TestRenderUnknownPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.html")
	if err := os.WriteFile(path, []byte("{{.NoSuchField}}"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("new from file: %v", err)
	}
	if _, err := r.Render(testView()); !errors.Is(err, ErrTemplate) {
		t.Fatalf("want ErrTemplate, got %v", err)
	}
}
