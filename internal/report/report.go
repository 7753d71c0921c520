// Package report pulls the fixed set of spreadsheet ranges and assembles
// them into a budget summary.
package report

import (
	"context"
	"fmt"

	"reminder/internal/core"
	applog "reminder/internal/log"
	"reminder/internal/sheets"
)

// Ranges of the budget spreadsheet, by positional convention.
const (
	rangeCategories      = "Categories!C:Z"
	rangePeriodSize      = "Budgeting!$AH$2"
	rangePeriodStart     = "Budgeting!$AG$2"
	rangePeriodEnd       = "Budgeting!$AG$4"
	rangeAccounts        = "Accounts!A2:D"
	rangeSpendables      = "Overview!B2:E"
	rangeTransfers       = "Overview!G2:I"
	rangePaymentsSavings = "Budgeting!Y2:AB"
	rangeManualBudgets   = "Budgeting!H2:K"
	rangeRecurring       = "Budgeting!O2:V"
	rangeBudgetStats     = "Accounts!I:I"
	rangeSpentBreakdown  = "Budget Calc!A5:A10"
)

// Builder reads a spreadsheet through a RangeReader and produces summaries.
type Builder struct {
	reader sheets.RangeReader
	log    *applog.Logger
}

func NewBuilder(reader sheets.RangeReader, logger *applog.Logger) *Builder {
	return &Builder{
		reader: reader,
		log:    logger.WithComponent(applog.ComponentReport),
	}
}

// Build fetches every range and parses it into a Summary. Any read or parse
// failure aborts the build; there is no partial result.
func (b *Builder) Build(ctx context.Context, meta core.Meta, scheduleLabel string) (*core.Summary, error) {
	period, err := b.readPeriod(ctx)
	if err != nil {
		return nil, err
	}

	tax, err := b.read(ctx, rangeCategories)
	if err != nil {
		return nil, err
	}
	taxonomy := core.ParseTaxonomy(tax)

	accounts, err := b.read(ctx, rangeAccounts)
	if err != nil {
		return nil, err
	}
	spendables, err := b.read(ctx, rangeSpendables)
	if err != nil {
		return nil, err
	}
	transfers, err := b.read(ctx, rangeTransfers)
	if err != nil {
		return nil, err
	}
	paymentsSavings, err := b.read(ctx, rangePaymentsSavings)
	if err != nil {
		return nil, err
	}
	manual, err := b.read(ctx, rangeManualBudgets)
	if err != nil {
		return nil, err
	}
	recurringRows, err := b.read(ctx, rangeRecurring)
	if err != nil {
		return nil, err
	}
	statsRows, err := b.read(ctx, rangeBudgetStats)
	if err != nil {
		return nil, err
	}
	spentRows, err := b.read(ctx, rangeSpentBreakdown)
	if err != nil {
		return nil, err
	}

	recurring, err := core.ParseRecurringBudgets(taxonomy, recurringRows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rangeRecurring, err)
	}
	stats, err := core.ParseBudgetStats(statsRows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rangeBudgetStats, err)
	}

	summary := &core.Summary{
		Meta:          meta,
		ScheduleLabel: scheduleLabel,
		Period:        period,

		Spent:           core.ParseSpentBreakdown(spentRows),
		AccountBalances: core.ParseAccountBalances(accounts),
		Transfers:       core.ParseTransferOverviews(transfers),

		Spendables: core.ParseSpendableOverviews(spendables),
		Payments:   core.ParsePaymentsOverviews(paymentsSavings),
		Savings:    core.ParseSavingsOverviews(paymentsSavings),

		Budgets: append(core.ParseManualBudgets(period.SizeDays, manual), recurring...),
		Stats:   stats,
	}
	summary.SortBudgets()

	b.log.Info("summary built",
		"budgets", len(summary.Budgets),
		"accounts", len(summary.AccountBalances),
		"spendables", len(summary.Spendables))

	return summary, nil
}

func (b *Builder) readPeriod(ctx context.Context) (core.Period, error) {
	sizeRows, err := b.read(ctx, rangePeriodSize)
	if err != nil {
		return core.Period{}, err
	}
	size, err := core.ParseFloatCell(core.Cell(sizeRows, 0, 0))
	if err != nil {
		return core.Period{}, fmt.Errorf("parse %s: %w", rangePeriodSize, err)
	}

	startRows, err := b.read(ctx, rangePeriodStart)
	if err != nil {
		return core.Period{}, err
	}
	start, err := core.ParseDate(core.Cell(startRows, 0, 0))
	if err != nil {
		return core.Period{}, fmt.Errorf("parse %s: %w", rangePeriodStart, err)
	}

	endRows, err := b.read(ctx, rangePeriodEnd)
	if err != nil {
		return core.Period{}, err
	}
	end, err := core.ParseDate(core.Cell(endRows, 0, 0))
	if err != nil {
		return core.Period{}, fmt.Errorf("parse %s: %w", rangePeriodEnd, err)
	}

	return core.Period{SizeDays: size, Start: start, End: end}, nil
}

func (b *Builder) read(ctx context.Context, rng string) ([][]string, error) {
	done := b.log.Timed("read range", applog.FieldRange, rng)
	rows, err := b.reader.ReadRange(ctx, rng)
	done()
	if err != nil {
		return nil, err
	}
	return rows, nil
}
