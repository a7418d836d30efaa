package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/model"
)

// Project replays transactions over windowDays consecutive calendar days
// starting at startDate and returns one DayRecord per day. Every calendar
// day is simulated, weekends and holidays included. Transactions dated
// outside the window are ignored.
//
// The function is pure: identical inputs produce identical output, and the
// transaction slice is never modified.
func Project(startBalance, targetBalance decimal.Decimal, txns []model.Transaction, startDate time.Time, windowDays int) ([]model.DayRecord, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, windowDays)
	}

	records := make([]model.DayRecord, 0, windowDays)
	balance := startBalance
	day := DateOnly(startDate)

	for i := 0; i < windowDays; i++ {
		rec := projectDay(balance, targetBalance, txns, day)
		records = append(records, rec)
		balance = rec.EndBalance
		day = day.AddDate(0, 0, 1)
	}

	return records, nil
}

// projectDay computes the record for a single day: sum the day's
// transactions, roll the balance forward, and classify the close against
// the target. Same-day transactions keep their input order in the summary.
func projectDay(openBalance, targetBalance decimal.Decimal, txns []model.Transaction, day time.Time) model.DayRecord {
	net := decimal.Zero
	var parts []string

	for _, tx := range txns {
		if !tx.SameDay(day) {
			continue
		}
		net = net.Add(tx.Amount)
		parts = append(parts, fmt.Sprintf("%s: %s", tx.Description, tx.Amount.StringFixed(2)))
	}

	end := openBalance.Add(net)

	rec := model.DayRecord{
		Date:         day,
		StartBalance: openBalance,
		Summary:      strings.Join(parts, ", "),
		NetChange:    net,
		EndBalance:   end,
		Alert:        model.AlertOK,
	}

	// Strict inequality: closing exactly on target is OK.
	if end.LessThan(targetBalance) {
		rec.Alert = model.AlertBelowTarget
		rec.Shortfall = targetBalance.Sub(end)

		note := fmt.Sprintf("SYSTEM: Add funds (%s)", rec.Shortfall.StringFixed(2))
		if rec.Summary != "" {
			rec.Summary += ", " + note
		} else {
			rec.Summary = note
		}
	}

	return rec
}
