package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/model"
)

// TransferMarker is the description given to transfer transactions
// injected by the orchestrator. Output layers match on it to surface
// SYSTEM_TRANSFER notices.
const TransferMarker = "Surplus Transfer"

// lookAheadDays is the width of the what-if stress test run at each
// month-end decision point.
const lookAheadDays = 30

// SimulationResult is the full output of one orchestration run.
type SimulationResult struct {
	Days      []model.DayRecord
	Transfers []model.Transfer
}

// TotalTransferred sums the applied surplus sweeps.
func (r *SimulationResult) TotalTransferred() decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Transfers {
		total = total.Add(t.Amount)
	}
	return total
}

// AlertDays returns the records that closed below target.
func (r *SimulationResult) AlertDays() []model.DayRecord {
	var alerts []model.DayRecord
	for _, d := range r.Days {
		if d.Alert == model.AlertBelowTarget {
			alerts = append(alerts, d)
		}
	}
	return alerts
}

// Simulate drives the daily projector across the requested window and
// applies the surplus transfer rule at every month end inside it.
//
// The run owns a working copy of the input transactions. When a transfer
// is recommended, a synthetic transaction for the 1st of the following
// month is appended to that copy, so the transfer shapes every later day
// of the same run, including the look-aheads of later decision points,
// without ever touching the caller's slice.
func Simulate(startBalance, targetBalance decimal.Decimal, txns []model.Transaction, startDate time.Time, windowDays int) (*SimulationResult, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, windowDays)
	}

	working := make([]model.Transaction, len(txns))
	copy(working, txns)

	result := &SimulationResult{Days: make([]model.DayRecord, 0, windowDays)}
	balance := startBalance
	day := DateOnly(startDate)

	for i := 0; i < windowDays; i++ {
		rec := projectDay(balance, targetBalance, working, day)

		if IsMonthEnd(day) {
			if amount := decideTransfer(rec.EndBalance, targetBalance, working, day); amount.Sign() > 0 {
				firstOfNext := day.AddDate(0, 0, 1)
				working = append(working, model.Transaction{
					Date:        firstOfNext,
					Amount:      amount.Neg(),
					Description: TransferMarker,
					Category:    "System",
					Forecast:    true,
				})
				result.Transfers = append(result.Transfers, model.Transfer{
					Date:   firstOfNext,
					Amount: amount,
				})
			}
		}

		result.Days = append(result.Days, rec)
		balance = rec.EndBalance
		day = day.AddDate(0, 0, 1)
	}

	return result, nil
}

// decideTransfer runs the month-end stress test and returns the
// recommended sweep amount (possibly zero).
//
// The look-ahead is a scoped nested projection: it starts the day after
// the decision point from a hypothetical post-transfer balance of exactly
// the target, runs against the current working set (earlier injected
// transfers included, the one being decided excluded), and is discarded
// once the advisor has seen its closing balances. It never triggers
// transfer decisions of its own.
func decideTransfer(monthEndBalance, targetBalance decimal.Decimal, working []model.Transaction, monthEnd time.Time) decimal.Decimal {
	surplus := monthEndBalance.Sub(targetBalance)
	if surplus.Sign() <= 0 {
		return decimal.Zero
	}

	future := make([]decimal.Decimal, 0, lookAheadDays)
	balance := targetBalance
	day := monthEnd.AddDate(0, 0, 1)
	for i := 0; i < lookAheadDays; i++ {
		rec := projectDay(balance, targetBalance, working, day)
		future = append(future, rec.EndBalance)
		balance = rec.EndBalance
		day = day.AddDate(0, 0, 1)
	}

	return RecommendTransfer(monthEndBalance, targetBalance, future)
}
