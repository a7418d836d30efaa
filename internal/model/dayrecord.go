package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertType classifies a simulated day's closing balance.
type AlertType string

const (
	AlertOK          AlertType = "OK"
	AlertBelowTarget AlertType = "BELOW_TARGET"
)

// DayRecord is one row of projection output: the balance movement for a
// single calendar day.
type DayRecord struct {
	Date         time.Time
	StartBalance decimal.Decimal
	Summary      string // joined descriptions of the day's transactions
	NetChange    decimal.Decimal
	EndBalance   decimal.Decimal
	Alert        AlertType

	// Shortfall is target minus end balance on BELOW_TARGET days, zero
	// otherwise. Kept numeric so output layers don't parse it back out
	// of the summary text.
	Shortfall decimal.Decimal
}
