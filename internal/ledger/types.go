// Package ledger discovers user data directories and parses CSV
// transaction ledgers.
package ledger

import "github.com/tkellman/cashsim/internal/model"

// DiscoveredUser is a user directory found under the data dir.
type DiscoveredUser struct {
	Name        string
	Dir         string
	ProfilePath string
	LedgerPath  string
}

// ParseResult holds the output of parsing one ledger file.
type ParseResult struct {
	Transactions []model.Transaction
	RowErrors    int // malformed rows skipped, not fatal
}
