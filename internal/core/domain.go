package core

import (
	"errors"
	"time"
)

// ExpenseType classifies how a budgeted amount is meant to be consumed.
type ExpenseType int

const (
	// Expendable expenses are used daily without committed savings or
	// bills: groceries, entertainment, transportation.
	Expendable ExpenseType = iota + 1
	// Saving expenses must not be spent; they are held for future use:
	// dates, vacations, investments.
	Saving
	// RequiredPayment expenses must be paid each period: rent, bills,
	// insurance, loan payments.
	RequiredPayment
)

func (t ExpenseType) String() string {
	switch t {
	case Expendable:
		return "Expendable"
	case Saving:
		return "Saving"
	case RequiredPayment:
		return "RequiredPayment"
	default:
		return "Unknown"
	}
}

// SpentBucket groups spent amounts into the three top-level buckets shown in
// the breakdown section of the reminder.
type SpentBucket int

const (
	BucketSpending SpentBucket = iota + 1
	BucketBills
	BucketSavings
)

func (b SpentBucket) String() string {
	switch b {
	case BucketSpending:
		return "Spending"
	case BucketBills:
		return "Bills"
	case BucketSavings:
		return "Savings"
	default:
		return "Unknown"
	}
}

var (
	ErrUnknownSubcategory = errors.New("unknown subcategory")
	ErrShortRange         = errors.New("range has fewer rows than expected")
	ErrBadDate            = errors.New("invalid date cell")
	ErrBadNumber          = errors.New("invalid numeric cell")
)

// Taxonomy maps a primary category to its subcategories.
type Taxonomy map[string][]string

// CategoryOf returns the primary category a subcategory belongs to.
func (t Taxonomy) CategoryOf(subcategory string) (string, bool) {
	for cat, subs := range t {
		for _, s := range subs {
			if s == subcategory {
				return cat, true
			}
		}
	}
	return "", false
}

// SpentAmount is one bucket of the spent breakdown.
type SpentAmount struct {
	Bucket SpentBucket
	Amount Money
}

// SpentBreakdown is the spent-so-far split across spending, bills and
// savings for the current period.
type SpentBreakdown struct {
	Items []SpentAmount
}

func (b SpentBreakdown) sum(bucket SpentBucket) Money {
	var total Money
	for _, it := range b.Items {
		if it.Bucket == bucket {
			total = total.Add(it.Amount)
		}
	}
	return total
}

// Spending returns the amount spent from the free-spending bucket.
func (b SpentBreakdown) Spending() Money { return b.sum(BucketSpending) }

// Bills returns the amount spent on bills and required payments.
func (b SpentBreakdown) Bills() Money { return b.sum(BucketBills) }

// Savings returns the amount moved into savings.
func (b SpentBreakdown) Savings() Money { return b.sum(BucketSavings) }

// Total returns the sum of all buckets.
func (b SpentBreakdown) Total() Money {
	var total Money
	for _, it := range b.Items {
		total = total.Add(it.Amount)
	}
	return total
}

// AccountBalance compares the manually recorded balance of one bank account
// against the calculated one.
type AccountBalance struct {
	Name       string
	Manual     Money
	Calculated Money
	Diff       Money // Manual - Calculated
}

// SpendableOverview is one row of the per-category spendable table.
type SpendableOverview struct {
	Category    string
	Spendable   Money
	FutureDaily Money
	LeftToday   Money
}

// PaymentsOverview is a per-category total of required payments.
type PaymentsOverview struct {
	Category string
	Amount   Money
}

// SavingsOverview is a per-category total of amounts to save.
type SavingsOverview struct {
	Category string
	Amount   Money
}

// TransferOverview is a suggested money move between two accounts.
type TransferOverview struct {
	From   string
	To     string
	Amount Money
}

// Budget is a single budget line, either manual (per-period) or recurring
// (with its own timeframe and an approximate next payment date).
type Budget struct {
	Category      string
	Subcategory   string // empty for manual budgets
	Amount        Money
	TimeframeDays float64
	Description   string
	Type          ExpenseType
	PaidFrom      string    // empty for manual budgets
	NextPayment   time.Time // zero when no payment date applies
}

// BudgetStats is the fixed-position stats column of the spreadsheet. Field
// order follows the sheet layout.
type BudgetStats struct {
	IncomeAccount string

	TotalBudget          Money
	IncomeAtPeriodStart  Money
	CheckingAtStart      Money
	WithheldPayments     Money // total of RequiredPayment amounts withheld
	WithheldSavings      Money // total of Saving amounts withheld
	BalanceAfterWithheld Money
	BudgetAfterWithheld  Money
	AllocatedSpending    Money
	BalanceAfterSpending Money
	BudgetAfterSpending  Money
	BudgetAfterSpent     Money

	// OverspentSoft means the allocated spending budget was exceeded.
	// OverspentHard means the checking floor was breached and bills need
	// a bail-out.
	OverspentSoft bool
	OverspentHard bool

	CheckingFloor Money
	FreeToSpend   Money
}

// Period is the budgeting window currently in effect.
type Period struct {
	SizeDays float64
	Start    time.Time
	End      time.Time
}
