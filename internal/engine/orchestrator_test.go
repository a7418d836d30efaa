package engine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/model"
)

func TestSimulate_TransferInjection(t *testing.T) {
	txns := []model.Transaction{
		tx(t, "2024-01-30", "4000", "Client payment"),
		tx(t, "2024-02-02", "-3000", "Quarterly tax"),
	}

	result, err := Simulate(dec("3000"), dec("2500"), txns, day(t, "2024-01-01"), 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(result.Transfers))
	}
	tr := result.Transfers[0]
	if !tr.Date.Equal(day(t, "2024-02-01")) {
		t.Fatalf("transfer date = %s, want 2024-02-01", tr.Date.Format("2006-01-02"))
	}
	// Surplus 4500, look-ahead dips to -500 (tax bill), holdback 3000.
	if !tr.Amount.Equal(dec("1500")) {
		t.Fatalf("transfer amount = %s, want 1500", tr.Amount)
	}

	byDate := make(map[string]model.DayRecord)
	for _, r := range result.Days {
		byDate[r.Date.Format("2006-01-02")] = r
	}

	jan31 := byDate["2024-01-31"]
	if !jan31.EndBalance.Equal(dec("7000")) {
		t.Fatalf("Jan 31 EndBalance = %s, want 7000", jan31.EndBalance)
	}

	feb1 := byDate["2024-02-01"]
	if !feb1.NetChange.Equal(dec("-1500")) {
		t.Fatalf("Feb 1 NetChange = %s, want -1500 (injected transfer)", feb1.NetChange)
	}
	if !feb1.EndBalance.Equal(dec("5500")) {
		t.Fatalf("Feb 1 EndBalance = %s, want 5500", feb1.EndBalance)
	}
	if feb1.Summary != "Surplus Transfer: -1500.00" {
		t.Fatalf("Feb 1 Summary = %q", feb1.Summary)
	}

	feb2 := byDate["2024-02-02"]
	if !feb2.EndBalance.Equal(dec("2500")) {
		t.Fatalf("Feb 2 EndBalance = %s, want 2500 (transfer deduction applied)", feb2.EndBalance)
	}
	if feb2.Alert != model.AlertOK {
		t.Fatalf("Feb 2 Alert = %s, want OK (exactly on target)", feb2.Alert)
	}
}

func TestSimulate_MultipleMonthEnds(t *testing.T) {
	txns := []model.Transaction{
		tx(t, "2024-02-15", "1000", "Invoice"),
	}

	result, err := Simulate(dec("5000"), dec("2500"), txns, day(t, "2024-01-01"), 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Transfers) != 2 {
		t.Fatalf("got %d transfers, want 2", len(result.Transfers))
	}

	// Jan 31: balance 5000, no future dip, full surplus swept.
	if !result.Transfers[0].Date.Equal(day(t, "2024-02-01")) || !result.Transfers[0].Amount.Equal(dec("2500")) {
		t.Fatalf("first transfer = %s %s, want 2500 on 2024-02-01",
			result.Transfers[0].Amount, result.Transfers[0].Date.Format("2006-01-02"))
	}

	// Feb 29 decision sees the first transfer already applied:
	// 5000 - 2500 + 1000 = 3500 at month end, surplus 1000.
	if !result.Transfers[1].Date.Equal(day(t, "2024-03-01")) || !result.Transfers[1].Amount.Equal(dec("1000")) {
		t.Fatalf("second transfer = %s %s, want 1000 on 2024-03-01",
			result.Transfers[1].Amount, result.Transfers[1].Date.Format("2006-01-02"))
	}

	if !result.TotalTransferred().Equal(dec("3500")) {
		t.Fatalf("TotalTransferred = %s, want 3500", result.TotalTransferred())
	}

	last := result.Days[len(result.Days)-1]
	if !last.EndBalance.Equal(dec("2500")) {
		t.Fatalf("final EndBalance = %s, want 2500", last.EndBalance)
	}
}

func TestSimulate_NoSurplusNoTransfer(t *testing.T) {
	result, err := Simulate(dec("2000"), dec("2500"), nil, day(t, "2024-01-01"), 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Transfers) != 0 {
		t.Fatalf("got %d transfers, want 0 when balance never exceeds target", len(result.Transfers))
	}
}

func TestSimulate_OutputLengthAndContinuity(t *testing.T) {
	txns := []model.Transaction{
		tx(t, "2024-01-10", "800", "Invoice"),
		tx(t, "2024-02-05", "-600", "Rent"),
	}

	result, err := Simulate(dec("3200"), dec("2500"), txns, day(t, "2024-01-01"), 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Days) != 90 {
		t.Fatalf("len(Days) = %d, want 90", len(result.Days))
	}
	for i := 1; i < len(result.Days); i++ {
		if !result.Days[i].StartBalance.Equal(result.Days[i-1].EndBalance) {
			t.Fatalf("day %d breaks balance continuity", i)
		}
		if !result.Days[i].Date.Equal(result.Days[i-1].Date.AddDate(0, 0, 1)) {
			t.Fatalf("day %d is not the calendar day after day %d", i, i-1)
		}
	}
}

func TestSimulate_DoesNotMutateInput(t *testing.T) {
	txns := []model.Transaction{
		tx(t, "2024-01-15", "9000", "Bonus"),
	}
	snapshot := make([]model.Transaction, len(txns))
	copy(snapshot, txns)

	if _, err := Simulate(dec("3000"), dec("2500"), txns, day(t, "2024-01-01"), 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(txns) != len(snapshot) {
		t.Fatalf("input slice length changed: %d -> %d", len(snapshot), len(txns))
	}
	for i := range txns {
		if !txns[i].Amount.Equal(snapshot[i].Amount) || txns[i].Description != snapshot[i].Description {
			t.Fatalf("input transaction %d was modified", i)
		}
	}
}

func TestSimulate_InvalidWindow(t *testing.T) {
	_, err := Simulate(dec("1000"), dec("500"), nil, day(t, "2024-01-01"), 0)
	if !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("err = %v, want ErrInvalidWindow", err)
	}
}

func TestSimulate_WindowEndsBeforeMonthEnd(t *testing.T) {
	// Jan 1-20: no decision point inside the window, even with a big surplus.
	result, err := Simulate(dec("9000"), dec("2500"), nil, day(t, "2024-01-01"), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Transfers) != 0 {
		t.Fatalf("got %d transfers, want 0 (month end outside window)", len(result.Transfers))
	}
}

func TestSimulate_AlertDays(t *testing.T) {
	txns := []model.Transaction{
		tx(t, "2024-01-03", "-800", "Rent"),
		tx(t, "2024-01-05", "700", "Invoice"),
	}

	result, err := Simulate(dec("1000"), dec("500"), txns, day(t, "2024-01-01"), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alerts := result.AlertDays()
	if len(alerts) != 2 {
		t.Fatalf("got %d alert days, want 2 (Jan 3 and Jan 4)", len(alerts))
	}
	if !alerts[0].Date.Equal(day(t, "2024-01-03")) || !alerts[1].Date.Equal(day(t, "2024-01-04")) {
		t.Fatalf("alert dates = %s, %s", alerts[0].Date.Format("2006-01-02"), alerts[1].Date.Format("2006-01-02"))
	}
	if !alerts[0].Shortfall.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("Jan 3 Shortfall = %s, want 300", alerts[0].Shortfall)
	}
}
