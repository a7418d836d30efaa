package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cashsim.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLedgerRoundTrip(t *testing.T) {
	c := openTestCache(t)

	txns := []model.Transaction{
		{
			Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("-1200.00"),
			Description: "Rent",
			Category:    "Fixed",
			Forecast:    true,
		},
		{
			Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("2500.50"),
			Description: "Salary",
			Category:    "Revenue",
		},
	}

	if err := c.SaveLedger("alice", "/data/alice/ledger.csv", txns, 111, 222); err != nil {
		t.Fatalf("SaveLedger: %v", err)
	}

	got, err := c.LoadLedger("alice")
	if err != nil {
		t.Fatalf("LoadLedger: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	if got[0].Description != "Rent" || !got[0].Forecast {
		t.Fatalf("row 0 = %+v", got[0])
	}
	if !got[1].Amount.Equal(decimal.RequireFromString("2500.50")) {
		t.Fatalf("row 1 Amount = %s", got[1].Amount)
	}
	if got[1].Forecast {
		t.Fatal("row 1 should not be a forecast")
	}

	fi, ok, err := c.GetTrackedFile("/data/alice/ledger.csv")
	if err != nil || !ok {
		t.Fatalf("GetTrackedFile: ok=%v err=%v", ok, err)
	}
	if fi.MtimeNs != 111 || fi.SizeBytes != 222 {
		t.Fatalf("tracked info = %+v", fi)
	}
}

func TestSaveLedgerReplaces(t *testing.T) {
	c := openTestCache(t)

	first := []model.Transaction{{
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1), Description: "Old",
	}}
	second := []model.Transaction{{
		Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(2), Description: "New",
	}}

	if err := c.SaveLedger("bob", "/x/ledger.csv", first, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.SaveLedger("bob", "/x/ledger.csv", second, 2, 2); err != nil {
		t.Fatal(err)
	}

	got, err := c.LoadLedger("bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Description != "New" {
		t.Fatalf("reload after replace = %+v", got)
	}
}

func TestRunsHistory(t *testing.T) {
	c := openTestCache(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := Run{
			ID:            NewRunID(),
			User:          "alice",
			StartedAt:     base.Add(time.Duration(i) * time.Hour),
			StartDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			WindowDays:    60,
			StartBalance:  decimal.NewFromInt(3000),
			TargetBalance: decimal.NewFromInt(2500),
			FinalBalance:  decimal.NewFromInt(2600),
			AlertDays:     i,
			TransferCount: 1,
			TransferTotal: decimal.RequireFromString("1500"),
		}
		if err := c.SaveRun(run); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	runs, err := c.ListRuns("alice", 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Newest first.
	if runs[0].AlertDays != 2 || runs[1].AlertDays != 1 {
		t.Fatalf("order wrong: alert days %d, %d", runs[0].AlertDays, runs[1].AlertDays)
	}
	if !runs[0].TransferTotal.Equal(decimal.RequireFromString("1500")) {
		t.Fatalf("TransferTotal = %s", runs[0].TransferTotal)
	}

	other, err := c.ListRuns("bob", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("bob has %d runs, want 0", len(other))
	}
}
