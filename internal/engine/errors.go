// Package engine implements the cash flow projection core: the daily
// ledger projector, the surplus transfer advisor, and the simulation
// orchestrator that ties them together. Everything in this package is
// pure: no I/O, no clock reads, no shared state between calls.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidWindow is returned when a projection is requested for a
	// non-positive number of days.
	ErrInvalidWindow = errors.New("simulation window must be at least one day")

	// ErrInvalidBalance is returned when a caller-supplied balance is not
	// a finite number.
	ErrInvalidBalance = errors.New("balance is not a finite number")
)

// BalanceFromFloat converts a configuration float into a decimal balance,
// rejecting NaN and infinities before they can reach the projector.
func BalanceFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidBalance, f)
	}
	return decimal.NewFromFloat(f), nil
}
