package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tkellman/cashsim/internal/store"
)

func writeUser(t *testing.T, dataDir, name string, ledgerLines string) {
	t.Helper()
	dir := filepath.Join(dataDir, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	profile := "[balances]\ncurrent = 3000.0\ntarget = 2500.0\n\n[categories]\nvalid = [\"Revenue\", \"Fixed\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "profile.toml"), []byte(profile), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ledger.csv"), []byte(ledgerLines), 0o600); err != nil {
		t.Fatal(err)
	}
}

const testLedger = "date,amount,description,category,forecast\n" +
	"2024-01-05,-1200,Rent,Fixed,1\n" +
	"2024-01-10,2500,Salary,Revenue,1\n"

func TestLoad(t *testing.T) {
	dataDir := t.TempDir()
	writeUser(t, dataDir, "alice", testLedger)

	result, err := Load(dataDir, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}
	if result.Profile.Balances.Current != 3000 {
		t.Fatalf("profile current = %v", result.Profile.Balances.Current)
	}
}

func TestLoad_MissingUser(t *testing.T) {
	if _, err := Load(t.TempDir(), "ghost"); err == nil {
		t.Fatal("expected error for missing user")
	}
}

func TestLoadWithCache(t *testing.T) {
	dataDir := t.TempDir()
	writeUser(t, dataDir, "alice", testLedger)

	cache, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = cache.Close() }()

	first, err := LoadWithCache(dataDir, "alice", cache)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first.CacheHit {
		t.Fatal("first load reported a cache hit")
	}
	if len(first.Transactions) != 2 {
		t.Fatalf("first load: %d transactions", len(first.Transactions))
	}

	second, err := LoadWithCache(dataDir, "alice", cache)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !second.CacheHit {
		t.Fatal("second load missed the cache")
	}
	if len(second.Transactions) != 2 {
		t.Fatalf("second load: %d transactions", len(second.Transactions))
	}

	// Touch the ledger: cache must invalidate.
	ledgerPath := filepath.Join(dataDir, "alice", "ledger.csv")
	updated := testLedger + "2024-01-15,-50,Phone,Fixed,1\n"
	if err := os.WriteFile(ledgerPath, []byte(updated), 0o600); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(ledgerPath, future, future); err != nil {
		t.Fatal(err)
	}

	third, err := LoadWithCache(dataDir, "alice", cache)
	if err != nil {
		t.Fatalf("third load: %v", err)
	}
	if third.CacheHit {
		t.Fatal("third load should reparse after ledger change")
	}
	if len(third.Transactions) != 3 {
		t.Fatalf("third load: %d transactions, want 3", len(third.Transactions))
	}
}
