package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// sheetDateLayout matches the M/D/YYYY format the spreadsheet uses.
const sheetDateLayout = "1/2/2006"

// ParseDate parses a date cell in M/D/YYYY format.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(sheetDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// ParseFloatCell parses a plain numeric cell.
func ParseFloatCell(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	return f, nil
}

// Cell returns the cell at (row, col), or "" when the matrix is ragged and
// the position does not exist. Sheets API responses trim trailing empties.
func Cell(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) {
		return ""
	}
	r := rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// ParseTaxonomy reads the categories sheet: a header row of primary
// categories, each column listing that category's subcategories.
func ParseTaxonomy(rows [][]string) Taxonomy {
	if len(rows) == 0 {
		return Taxonomy{}
	}
	keys := rows[0]
	tax := make(Taxonomy, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k != "" {
			tax[k] = nil
		}
	}
	for _, row := range rows[1:] {
		for i, key := range keys {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			v := cellAt(row, i)
			if v != "" {
				tax[key] = append(tax[key], v)
			}
		}
	}
	return tax
}

// ParseAccountBalances reads the accounts range: name, amount at start,
// calculated amount, manual amount. Rows without a name are skipped.
func ParseAccountBalances(rows [][]string) []AccountBalance {
	var out []AccountBalance
	for _, row := range rows {
		name := cellAt(row, 0)
		if name == "" {
			continue
		}
		calc := ParseMoney(cellAt(row, 2))
		manual := ParseMoney(cellAt(row, 3))
		out = append(out, AccountBalance{
			Name:       name,
			Manual:     manual,
			Calculated: calc,
			Diff:       manual.Sub(calc),
		})
	}
	return out
}

// ParseSpendableOverviews reads category, spendable amount, future daily and
// left today columns.
func ParseSpendableOverviews(rows [][]string) []SpendableOverview {
	var out []SpendableOverview
	for _, row := range rows {
		cat := cellAt(row, 0)
		if cat == "" {
			continue
		}
		out = append(out, SpendableOverview{
			Category:    cat,
			Spendable:   ParseMoney(cellAt(row, 1)),
			FutureDaily: ParseMoney(cellAt(row, 2)),
			LeftToday:   ParseMoney(cellAt(row, 3)),
		})
	}
	return out
}

// ParseTransferOverviews reads from-account, to-account, amount. Zero-amount
// rows are dropped.
func ParseTransferOverviews(rows [][]string) []TransferOverview {
	var out []TransferOverview
	for _, row := range rows {
		amount := ParseMoney(cellAt(row, 2))
		if amount.IsZero() {
			continue
		}
		out = append(out, TransferOverview{
			From:   cellAt(row, 0),
			To:     cellAt(row, 1),
			Amount: amount,
		})
	}
	return out
}

// ParsePaymentsOverviews reads the payments column of the shared
// payments/savings range (category in col 0, payments in col 1).
// Zero-amount rows are dropped.
func ParsePaymentsOverviews(rows [][]string) []PaymentsOverview {
	var out []PaymentsOverview
	for _, row := range rows {
		amount := ParseMoney(cellAt(row, 1))
		if amount.IsZero() {
			continue
		}
		out = append(out, PaymentsOverview{Category: cellAt(row, 0), Amount: amount})
	}
	return out
}

// ParseSavingsOverviews reads the savings column of the shared
// payments/savings range (category in col 0, savings in col 2).
// Zero-amount rows are dropped.
func ParseSavingsOverviews(rows [][]string) []SavingsOverview {
	var out []SavingsOverview
	for _, row := range rows {
		amount := ParseMoney(cellAt(row, 2))
		if amount.IsZero() {
			continue
		}
		out = append(out, SavingsOverview{Category: cellAt(row, 0), Amount: amount})
	}
	return out
}

// ParseManualBudgets reads the manual budget range: category, amount,
// description, per-day-expendable flag. The timeframe of a manual budget is
// always the full period.
func ParseManualBudgets(periodSizeDays float64, rows [][]string) []Budget {
	var out []Budget
	for _, row := range rows {
		category := cellAt(row, 0)
		if category == "" {
			continue
		}
		description := category
		if detail := cellAt(row, 2); detail != "" {
			description = category + " / " + detail
		}
		// The sheet marks non-expendable lines with an explicit FALSE.
		typ := Expendable
		if strings.EqualFold(cellAt(row, 3), "FALSE") {
			typ = RequiredPayment
		}
		out = append(out, Budget{
			Category:      category,
			Amount:        ParseMoney(cellAt(row, 1)),
			TimeframeDays: periodSizeDays,
			Description:   description,
			Type:          typ,
		})
	}
	return out
}

// ParseRecurringBudgets reads the recurring budget range: subcategory,
// description, amount, timeframe days, is-saving flag, paid-from account,
// adjusted start date (unused), next approximate payment date. The primary
// category is resolved through the taxonomy; an unresolvable subcategory is
// a data error, not something to paper over.
func ParseRecurringBudgets(tax Taxonomy, rows [][]string) ([]Budget, error) {
	var out []Budget
	for _, row := range rows {
		subcategory := cellAt(row, 0)
		if subcategory == "" {
			continue
		}
		timeframe, err := ParseFloatCell(cellAt(row, 3))
		if err != nil {
			return nil, fmt.Errorf("recurring budget %q: %w", subcategory, err)
		}
		typ := Saving
		if strings.EqualFold(cellAt(row, 4), "FALSE") {
			typ = RequiredPayment
		}
		next, err := ParseDate(cellAt(row, 7))
		if err != nil {
			return nil, fmt.Errorf("recurring budget %q: %w", subcategory, err)
		}
		category, ok := tax.CategoryOf(subcategory)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSubcategory, subcategory)
		}
		out = append(out, Budget{
			Category:      category,
			Subcategory:   subcategory,
			Amount:        ParseMoney(cellAt(row, 2)),
			TimeframeDays: timeframe,
			Description:   cellAt(row, 1),
			Type:          typ,
			PaidFrom:      cellAt(row, 5),
			NextPayment:   next,
		})
	}
	return out, nil
}

// budgetStatsRows is the number of rows the stats column must span: values
// sit on every other row, labels between them.
const budgetStatsRows = 32

// ParseBudgetStats reads the fixed-position stats column. Values occupy
// rows 0, 3, 5, 7, ... 31 with label rows in between.
func ParseBudgetStats(rows [][]string) (BudgetStats, error) {
	if len(rows) < budgetStatsRows {
		return BudgetStats{}, fmt.Errorf("%w: budget stats needs %d rows, got %d", ErrShortRange, budgetStatsRows, len(rows))
	}
	return BudgetStats{
		IncomeAccount:        Cell(rows, 0, 0),
		TotalBudget:          ParseMoney(Cell(rows, 3, 0)),
		IncomeAtPeriodStart:  ParseMoney(Cell(rows, 5, 0)),
		CheckingAtStart:      ParseMoney(Cell(rows, 7, 0)),
		WithheldPayments:     ParseMoney(Cell(rows, 9, 0)),
		WithheldSavings:      ParseMoney(Cell(rows, 11, 0)),
		BalanceAfterWithheld: ParseMoney(Cell(rows, 13, 0)),
		BudgetAfterWithheld:  ParseMoney(Cell(rows, 15, 0)),
		AllocatedSpending:    ParseMoney(Cell(rows, 17, 0)),
		BalanceAfterSpending: ParseMoney(Cell(rows, 19, 0)),
		BudgetAfterSpending:  ParseMoney(Cell(rows, 21, 0)),
		BudgetAfterSpent:     ParseMoney(Cell(rows, 23, 0)),
		OverspentSoft:        strings.EqualFold(Cell(rows, 25, 0), "TRUE"),
		OverspentHard:        strings.EqualFold(Cell(rows, 27, 0), "TRUE"),
		CheckingFloor:        ParseMoney(Cell(rows, 29, 0)),
		FreeToSpend:          ParseMoney(Cell(rows, 31, 0)),
	}, nil
}

// ParseSpentBreakdown reads label/amount row pairs. Labels are matched
// loosely: anything containing "bill" goes to bills, "sav" to savings,
// everything else to spending.
func ParseSpentBreakdown(rows [][]string) SpentBreakdown {
	var items []SpentAmount
	i := 0
	for i < len(rows) {
		label := cellAt(rows[i], 0)
		if label == "" {
			i++
			continue
		}
		bucket := BucketSpending
		switch lower := strings.ToLower(label); {
		case strings.Contains(lower, "bill"):
			bucket = BucketBills
		case strings.Contains(lower, "sav"):
			bucket = BucketSavings
		}
		var amount Money
		if i+1 < len(rows) {
			amount = ParseMoney(cellAt(rows[i+1], 0))
		}
		items = append(items, SpentAmount{Bucket: bucket, Amount: amount})
		i += 2
	}
	return SpentBreakdown{Items: items}
}
