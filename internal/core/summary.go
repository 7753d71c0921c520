package core

import (
	"fmt"
	"sort"
	"time"
)

// Meta identifies whose budget a summary describes.
type Meta struct {
	Name           string
	SpreadsheetURL string
}

// Summary is everything extracted from one spreadsheet snapshot, plus the
// optional extras attached by the caller (horoscope, custom alert). It exists
// only for the duration of one run.
type Summary struct {
	Meta          Meta
	ScheduleLabel string // human label for when the reminder goes out, e.g. "8:00 AM"

	Period Period

	Spent           SpentBreakdown
	AccountBalances []AccountBalance
	Transfers       []TransferOverview

	Spendables []SpendableOverview
	Payments   []PaymentsOverview
	Savings    []SavingsOverview

	Budgets []Budget
	Stats   BudgetStats

	Horoscope    string
	HoroscopeURL string
	CustomAlert  string
}

// Overflow describes how much of the overflow pool (budget left after all
// withholding and allocated spending) overspending has eaten.
type Overflow struct {
	Consumed  Money
	Available Money
	Pct       float64
}

// View is the fully computed, render-ready projection of a Summary for a
// given day. Rendering a View is deterministic.
type View struct {
	Meta          Meta
	ScheduleLabel string

	Today    time.Time
	DaysLeft int

	StartDate  time.Time
	EndDate    time.Time
	PeriodSize float64

	SpendingThisPeriod Money
	BillsThisPeriod    Money
	SavingsThisPeriod  Money
	RemainingSum       Money

	AccountBalances []AccountBalance
	Spendables      []SpendableOverview // sorted by LeftToday descending
	Payments        []PaymentsOverview
	Savings         []SavingsOverview
	Budgets         []Budget
	Stats           BudgetStats
	Transfers       []TransferOverview

	Overflow Overflow

	Horoscope    string
	HoroscopeURL string
	CustomAlert  string
}

// DaysLeft counts the remaining calendar days of the period, today included.
// The time of day does not matter: a run at 8:00 AM sees the same count as
// one at midnight.
func (s *Summary) DaysLeft(today time.Time) int {
	days := int(midnight(s.Period.End).Sub(midnight(today)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days + 1
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RemainingSum totals the spendable amounts across categories.
func (s *Summary) RemainingSum() Money {
	var total Money
	for _, sp := range s.Spendables {
		total = total.Add(sp.Spendable)
	}
	return total
}

// ComputeOverflow measures overspending against the overflow pool. Each
// bucket contributes only where it exceeds its withheld or allocated amount.
func (s *Summary) ComputeOverflow() Overflow {
	consumed := overCents(s.Spent.Bills(), s.Stats.WithheldPayments) +
		overCents(s.Spent.Savings(), s.Stats.WithheldSavings) +
		overCents(s.Spent.Spending(), s.Stats.AllocatedSpending)
	available := s.Stats.BudgetAfterSpending
	pct := 0.0
	if available.Cents > 0 {
		pct = float64(consumed) / float64(available.Cents) * 100.0
	}
	if pct < 0 {
		pct = 0
	}
	return Overflow{
		Consumed:  Money{Cents: consumed},
		Available: available,
		Pct:       pct,
	}
}

func overCents(spent, allowed Money) int64 {
	over := spent.Cents - allowed.Cents
	if over < 0 {
		return 0
	}
	return over
}

// SortBudgets orders budgets by next approximate payment date ascending,
// with undated lines first. In place, stable.
func (s *Summary) SortBudgets() {
	sort.SliceStable(s.Budgets, func(i, j int) bool {
		a, b := s.Budgets[i].NextPayment, s.Budgets[j].NextPayment
		if a.IsZero() != b.IsZero() {
			return a.IsZero()
		}
		return a.Before(b)
	})
}

// Subject builds the email subject line. The first day of a new period gets
// a louder one.
func (s *Summary) Subject(today time.Time) string {
	if sameDay(s.Period.Start, today) {
		return fmt.Sprintf("NEW BUDGET UNLOCKED FOR %s!!! - Budget Reminder", s.Meta.Name)
	}
	return fmt.Sprintf("%s Budget Reminder", s.Meta.Name)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// At projects the summary into a render-ready View for the given day.
func (s *Summary) At(today time.Time) View {
	spendables := make([]SpendableOverview, len(s.Spendables))
	copy(spendables, s.Spendables)
	sort.SliceStable(spendables, func(i, j int) bool {
		return spendables[i].LeftToday.Cents > spendables[j].LeftToday.Cents
	})

	return View{
		Meta:          s.Meta,
		ScheduleLabel: s.ScheduleLabel,

		Today:    today,
		DaysLeft: s.DaysLeft(today),

		StartDate:  s.Period.Start,
		EndDate:    s.Period.End,
		PeriodSize: s.Period.SizeDays,

		SpendingThisPeriod: s.Spent.Spending(),
		BillsThisPeriod:    s.Spent.Bills(),
		SavingsThisPeriod:  s.Spent.Savings(),
		RemainingSum:       s.RemainingSum(),

		AccountBalances: s.AccountBalances,
		Spendables:      spendables,
		Payments:        s.Payments,
		Savings:         s.Savings,
		Budgets:         s.Budgets,
		Stats:           s.Stats,
		Transfers:       s.Transfers,

		Overflow: s.ComputeOverflow(),

		Horoscope:    s.Horoscope,
		HoroscopeURL: s.HoroscopeURL,
		CustomAlert:  s.CustomAlert,
	}
}
