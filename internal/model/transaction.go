// Package model defines the core domain types shared across cashsim.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single dated cash event from the ledger.
// Positive amounts are inflows, negative amounts are outflows.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Category    string
	Forecast    bool
}

// SameDay reports whether the transaction falls on the given calendar day.
// Only the date matters; any time-of-day component is ignored.
func (t Transaction) SameDay(day time.Time) bool {
	ty, tm, td := t.Date.Date()
	dy, dm, dd := day.Date()
	return ty == dy && tm == dm && td == dd
}

// Transfer is a surplus sweep applied during a simulation run.
// Amount is the positive recommended amount; the injected transaction
// carries its negation.
type Transfer struct {
	Date   time.Time
	Amount decimal.Decimal
}
