// Package store provides a SQLite-backed cache for parsed ledgers and a
// history of simulation runs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache wraps the cashsim SQLite database.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a ledger file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFile returns the cached file info for a ledger path, if any.
func (c *Cache) GetTrackedFile(path string) (FileInfo, bool, error) {
	var fi FileInfo
	err := c.db.QueryRow(
		"SELECT mtime_ns, size_bytes FROM file_tracker WHERE file_path = ?", path,
	).Scan(&fi.MtimeNs, &fi.SizeBytes)
	if err == sql.ErrNoRows {
		return FileInfo{}, false, nil
	}
	if err != nil {
		return FileInfo{}, false, err
	}
	return fi, true, nil
}

// SaveLedger replaces the cached transactions for one user and records
// the source file's mtime and size for invalidation.
func (c *Cache) SaveLedger(user, filePath string, txns []model.Transaction, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM transactions WHERE user = ?", user); err != nil {
		return err
	}

	for i, t := range txns {
		forecast := 0
		if t.Forecast {
			forecast = 1
		}
		_, err := tx.Exec(`INSERT INTO transactions
			(user, seq, tx_date, amount, description, category, forecast)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			user, i, t.Date.Format("2006-01-02"), t.Amount.String(),
			t.Description, t.Category, forecast,
		)
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker
		(file_path, user, mtime_ns, size_bytes, parsed_at)
		VALUES (?, ?, ?, ?, ?)`,
		filePath, user, mtimeNs, sizeBytes, now,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadLedger reads the cached transactions for one user, preserving the
// original ledger row order.
func (c *Cache) LoadLedger(user string) ([]model.Transaction, error) {
	rows, err := c.db.Query(`SELECT tx_date, amount, description, category, forecast
		FROM transactions WHERE user = ? ORDER BY seq`, user)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var dateStr, amountStr, desc string
		var category sql.NullString
		var forecast int

		if err := rows.Scan(&dateStr, &amountStr, &desc, &category, &forecast); err != nil {
			return nil, err
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("cached transaction date %q: %w", dateStr, err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("cached transaction amount %q: %w", amountStr, err)
		}

		txns = append(txns, model.Transaction{
			Date:        date,
			Amount:      amount,
			Description: desc,
			Category:    category.String,
			Forecast:    forecast != 0,
		})
	}
	return txns, rows.Err()
}

// Run is one recorded simulation run.
type Run struct {
	ID            string
	User          string
	StartedAt     time.Time
	StartDate     time.Time
	WindowDays    int
	StartBalance  decimal.Decimal
	TargetBalance decimal.Decimal
	FinalBalance  decimal.Decimal
	AlertDays     int
	TransferCount int
	TransferTotal decimal.Decimal
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// SaveRun records a completed simulation run.
func (c *Cache) SaveRun(r Run) error {
	_, err := c.db.Exec(`INSERT INTO runs
		(run_id, user, started_at, start_date, window_days,
		 start_balance, target_balance, final_balance,
		 alert_days, transfer_count, transfer_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.User, r.StartedAt.UTC().Format(time.RFC3339),
		r.StartDate.Format("2006-01-02"), r.WindowDays,
		r.StartBalance.String(), r.TargetBalance.String(), r.FinalBalance.String(),
		r.AlertDays, r.TransferCount, r.TransferTotal.String(),
	)
	return err
}

// ListRuns returns the most recent runs for a user, newest first.
func (c *Cache) ListRuns(user string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.db.Query(`SELECT run_id, user, started_at, start_date, window_days,
		start_balance, target_balance, final_balance,
		alert_days, transfer_count, transfer_total
		FROM runs WHERE user = ? ORDER BY started_at DESC LIMIT ?`, user, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, startDate, startBal, targetBal, finalBal, transferTotal string

		err := rows.Scan(&r.ID, &r.User, &startedAt, &startDate, &r.WindowDays,
			&startBal, &targetBal, &finalBal,
			&r.AlertDays, &r.TransferCount, &transferTotal)
		if err != nil {
			return nil, err
		}

		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		r.StartDate, _ = time.Parse("2006-01-02", startDate)
		r.StartBalance, _ = decimal.NewFromString(startBal)
		r.TargetBalance, _ = decimal.NewFromString(targetBal)
		r.FinalBalance, _ = decimal.NewFromString(finalBal)
		r.TransferTotal, _ = decimal.NewFromString(transferTotal)

		runs = append(runs, r)
	}
	return runs, rows.Err()
}
