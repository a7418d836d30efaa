package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeLedger creates a temp ledger.csv and returns its path.
func writeLedger(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseLedger(t *testing.T) {
	path := writeLedger(t,
		"date,amount,description,category,forecast",
		"2024-01-05,-1200.00,Rent,Fixed,1",
		"2024-01-10,2500.50,Salary,Revenue,1",
		"2024-01-12,-45.99,Dinner,Variable,0",
	)

	result, err := ParseLedger(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(result.Transactions))
	}
	if result.RowErrors != 0 {
		t.Fatalf("RowErrors = %d, want 0", result.RowErrors)
	}

	rent := result.Transactions[0]
	if rent.Description != "Rent" || rent.Category != "Fixed" || !rent.Forecast {
		t.Fatalf("rent row parsed wrong: %+v", rent)
	}
	if rent.Amount.String() != "-1200" {
		t.Fatalf("rent Amount = %s, want -1200", rent.Amount)
	}
	if rent.Date.Format("2006-01-02") != "2024-01-05" {
		t.Fatalf("rent Date = %s", rent.Date.Format("2006-01-02"))
	}

	if result.Transactions[2].Forecast {
		t.Fatal("forecast=0 row parsed as forecast")
	}
}

func TestParseLedger_ColumnOrderIndependent(t *testing.T) {
	path := writeLedger(t,
		"description,forecast,date,category,amount",
		"Rent,1,2024-01-05,Fixed,-1200",
	)

	result, err := ParseLedger(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Transactions) != 1 || result.Transactions[0].Description != "Rent" {
		t.Fatalf("reordered columns parsed wrong: %+v", result.Transactions)
	}
}

func TestParseLedger_SkipsMalformedRows(t *testing.T) {
	path := writeLedger(t,
		"date,amount,description,category,forecast",
		"not-a-date,-100,Broken,Fixed,1",
		"2024-01-10,not-a-number,Broken,Fixed,1",
		"2024-01-11,-50,Good,Variable,1",
	)

	result, err := ParseLedger(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(result.Transactions))
	}
	if result.RowErrors != 2 {
		t.Fatalf("RowErrors = %d, want 2", result.RowErrors)
	}
}

func TestParseLedger_MissingColumn(t *testing.T) {
	path := writeLedger(t,
		"date,amount,description",
		"2024-01-10,-50,Rent",
	)

	if _, err := ParseLedger(path); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestScanUsers(t *testing.T) {
	dataDir := t.TempDir()

	// Two valid users, one directory without a ledger, one stray file.
	for _, name := range []string{"alice", "bob"} {
		dir := filepath.Join(dataDir, name)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "ledger.csv"), []byte("date,amount,description,category,forecast\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "empty"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "README"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	users, err := ScanUsers(dataDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Name != "alice" || users[1].Name != "bob" {
		t.Fatalf("users = %v", users)
	}
}

func TestScanUsers_MissingDir(t *testing.T) {
	users, err := ScanUsers(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing data dir should not error, got %v", err)
	}
	if users != nil {
		t.Fatalf("users = %v, want nil", users)
	}
}
