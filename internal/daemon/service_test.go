package daemon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		EndBalance:    decimal.RequireFromString("2500.00"),
		AlertDays:     1,
		TransferCount: 1,
		TransferTotal: decimal.RequireFromString("1500.00"),
	}
	curr := Snapshot{
		EndBalance:    decimal.RequireFromString("2750.50"),
		AlertDays:     0,
		TransferCount: 2,
		TransferTotal: decimal.RequireFromString("2100.00"),
	}

	delta := diffSnapshots(prev, curr)
	if !delta.EndBalance.Equal(decimal.RequireFromString("250.50")) {
		t.Fatalf("EndBalance delta = %s, want 250.50", delta.EndBalance)
	}
	if delta.AlertDays != -1 {
		t.Fatalf("AlertDays delta = %d, want -1", delta.AlertDays)
	}
	if delta.TransferCount != 1 {
		t.Fatalf("TransferCount delta = %d, want 1", delta.TransferCount)
	}
	if !delta.TransferTotal.Equal(decimal.RequireFromString("600.00")) {
		t.Fatalf("TransferTotal delta = %s, want 600.00", delta.TransferTotal)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
}

func TestDiffSnapshots_NoChange(t *testing.T) {
	snap := Snapshot{
		EndBalance:    decimal.RequireFromString("2500.00"),
		TransferTotal: decimal.Zero,
	}

	if !diffSnapshots(snap, snap).isZero() {
		t.Fatal("identical snapshots should produce a zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		DataDir:      ".",
		User:         "alice",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}
