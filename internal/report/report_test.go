package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"reminder/internal/core"
	applog "reminder/internal/log"
	"reminder/internal/sheets"
	"reminder/internal/sheets/memory"
)

func quietLogger() *applog.Logger {
	return applog.New(applog.Config{
		Handler:   slog.NewTextHandler(io.Discard, nil),
		Component: "test",
	})
}

func statsColumn() [][]string {
	rows := make([][]string, 32)
	for i := range rows {
		rows[i] = []string{""}
	}
	rows[0] = []string{"Checking"}
	rows[3] = []string{"$500.00"}
	rows[5] = []string{"$2,000.00"}
	rows[7] = []string{"$1,800.00"}
	rows[9] = []string{"$300.00"}
	rows[11] = []string{"$75.00"}
	rows[13] = []string{"$1,425.00"}
	rows[15] = []string{"$125.00"}
	rows[17] = []string{"$250.00"}
	rows[19] = []string{"$1,175.00"}
	rows[21] = []string{"$100.00"}
	rows[23] = []string{"$129.50"}
	rows[25] = []string{"FALSE"}
	rows[27] = []string{"FALSE"}
	rows[29] = []string{"$100.00"}
	rows[31] = []string{"$50.00"}
	return rows
}

// spreadsheetFixture emulates the full set of ranges the builder reads.
func spreadsheetFixture() map[string][][]string {
	return map[string][][]string{
		"Categories!C:Z": {
			{"Bills", "Fun"},
			{"Rent", "Dining"},
			{"Internet", "Games"},
		},
		"Budgeting!$AH$2": {{"14"}},
		"Budgeting!$AG$2": {{"8/18/2026"}},
		"Budgeting!$AG$4": {{"8/31/2026"}},
		"Accounts!A2:D": {
			{"Checking", "$1,500.00", "$980.00", "$1,000.50"},
			{"Savings", "$3,000.00", "$3,000.00", "$3,000.00"},
		},
		"Overview!B2:E": {
			{"Groceries", "$120.50", "8.61", "12.05"},
			{"Fun", "$50.00", "3.57", "5.00"},
		},
		"Overview!G2:I": {
			{"Checking", "Savings", "$25.00"},
			{"Checking", "Fun", "$0.00"},
		},
		"Budgeting!Y2:AB": {
			{"Bills", "$300.00", "0"},
			{"Fun", "0", "$75.00"},
		},
		"Budgeting!H2:K": {
			{"Groceries", "$200.00", "", "TRUE"},
			{"Rent", "$900.00", "monthly rent", "FALSE"},
		},
		"Budgeting!O2:V": {
			{"Internet", "Home fiber", "$45.00", "30", "FALSE", "Checking", "", "9/1/2026"},
			{"Games", "Steam fund", "$20.00", "30", "TRUE", "Checking", "", "8/25/2026"},
		},
		"Accounts!I:I": statsColumn(),
		"Budget Calc!A5:A10": {
			{"Spending"},
			{"$120.50"},
			{"Bills"},
			{"$300.00"},
			{"Savings"},
			{"$75.00"},
		},
	}
}

func TestBuild(t *testing.T) {
	reader := memory.New(spreadsheetFixture())
	builder := NewBuilder(reader, quietLogger())

	summary, err := builder.Build(context.Background(),
		core.Meta{Name: "User One", SpreadsheetURL: "https://docs.google.com/spreadsheets/d/X"},
		"8:00 AM")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if summary.Period.SizeDays != 14 {
		t.Fatalf("period size: %v", summary.Period.SizeDays)
	}
	wantStart := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	if !summary.Period.Start.Equal(wantStart) {
		t.Fatalf("period start: %v", summary.Period.Start)
	}

	if got := summary.Spent.Spending().Cents; got != 12050 {
		t.Fatalf("spent this period: %d, want 12050", got)
	}
	if got := summary.Stats.TotalBudget.Cents; got != 50000 {
		t.Fatalf("total budget: %d, want 50000", got)
	}

	if len(summary.AccountBalances) != 2 {
		t.Fatalf("balances: %d", len(summary.AccountBalances))
	}
	if len(summary.Transfers) != 1 {
		t.Fatalf("transfers: %d", len(summary.Transfers))
	}
	if len(summary.Spendables) != 2 {
		t.Fatalf("spendables: %d", len(summary.Spendables))
	}

	// Two manual plus two recurring, sorted: undated manual lines first,
	// then recurring by next payment date.
	if len(summary.Budgets) != 4 {
		t.Fatalf("budgets: %d", len(summary.Budgets))
	}
	if !summary.Budgets[0].NextPayment.IsZero() || !summary.Budgets[1].NextPayment.IsZero() {
		t.Fatal("manual budgets should sort first")
	}
	if summary.Budgets[2].Subcategory != "Games" || summary.Budgets[3].Subcategory != "Internet" {
		t.Fatalf("recurring order: %q then %q",
			summary.Budgets[2].Subcategory, summary.Budgets[3].Subcategory)
	}
}

func TestBuild_MissingRange(t *testing.T) {
	fixture := spreadsheetFixture()
	delete(fixture, "Accounts!A2:D")
	builder := NewBuilder(memory.New(fixture), quietLogger())

	_, err := builder.Build(context.Background(), core.Meta{Name: "User One"}, "8:00 AM")
	if !errors.Is(err, sheets.ErrFetch) {
		t.Fatalf("want ErrFetch, got %v", err)
	}
}

func TestBuild_BadRecurringData(t *testing.T) {
	fixture := spreadsheetFixture()
	fixture["Budgeting!O2:V"] = [][]string{
		{"Unknown", "mystery", "$5.00", "30", "TRUE", "Checking", "", "9/1/2026"},
	}
	builder := NewBuilder(memory.New(fixture), quietLogger())

	_, err := builder.Build(context.Background(), core.Meta{Name: "User One"}, "8:00 AM")
	if !errors.Is(err, core.ErrUnknownSubcategory) {
		t.Fatalf("want ErrUnknownSubcategory, got %v", err)
	}
}
