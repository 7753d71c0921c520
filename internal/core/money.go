// Package core holds the budget figures extracted from a spreadsheet and the
// parsers that turn raw cell matrices into them.
//
// Money is kept as integer cents everywhere; float conversion happens only at
// display time.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a monetary amount in cents. Negative values are allowed (balance
// differences can go below zero).
type Money struct {
	Cents int64
}

// ParseMoney parses a spreadsheet money cell such as "$1,234.56", "-$12.30"
// or "120.5". Currency symbols and thousands separators are stripped; an
// empty cell parses to zero. Values are rounded to the nearest cent.
func ParseMoney(s string) Money {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return Money{}
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return Money{}
	}
	return FromFloat(f)
}

// FromFloat converts a decimal amount to cents with half-up rounding.
func FromFloat(f float64) Money {
	if f < 0 {
		return Money{Cents: -int64((-f * 100.0) + 0.5)}
	}
	return Money{Cents: int64((f * 100.0) + 0.5)}
}

// Amount returns the value as a float64 for display purposes.
// Use cents for arithmetic to avoid floating-point drift.
func (m Money) Amount() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount with exactly two decimal places.
func (m Money) String() string {
	neg := m.Cents < 0
	c := m.Cents
	if neg {
		c = -c
	}
	s := fmt.Sprintf("%d.%02d", c/100, c%100)
	if neg {
		return "-" + s
	}
	return s
}

// IsZero reports whether the amount is exactly zero cents.
func (m Money) IsZero() bool { return m.Cents == 0 }

// Add returns m + other.
func (m Money) Add(other Money) Money { return Money{Cents: m.Cents + other.Cents} }

// Sub returns m - other.
func (m Money) Sub(other Money) Money { return Money{Cents: m.Cents - other.Cents} }
