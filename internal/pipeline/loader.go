// Package pipeline ties ledger discovery, parsing, caching, and monthly
// aggregation together for the commands.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tkellman/cashsim/internal/config"
	"github.com/tkellman/cashsim/internal/ledger"
	"github.com/tkellman/cashsim/internal/model"
	"github.com/tkellman/cashsim/internal/store"
)

// LoadResult holds one user's profile and parsed ledger.
type LoadResult struct {
	User         ledger.DiscoveredUser
	Profile      config.Profile
	Transactions []model.Transaction
	RowErrors    int
}

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHit bool
}

// Load reads a user's profile and ledger straight from disk.
func Load(dataDir, user string) (*LoadResult, error) {
	u := ledger.UserDir(dataDir, user)

	profile, err := config.LoadProfile(u.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", user, err)
	}

	parsed, err := ledger.ParseLedger(u.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", user, err)
	}

	return &LoadResult{
		User:         u,
		Profile:      profile,
		Transactions: parsed.Transactions,
		RowErrors:    parsed.RowErrors,
	}, nil
}

// LoadWithCache consults the SQLite cache and reparses the ledger only
// when its mtime or size changed since the last run.
func LoadWithCache(dataDir, user string, cache *store.Cache) (*CachedLoadResult, error) {
	u := ledger.UserDir(dataDir, user)

	profile, err := config.LoadProfile(u.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", user, err)
	}

	info, err := os.Stat(u.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", user, err)
	}

	result := &CachedLoadResult{LoadResult: LoadResult{User: u, Profile: profile}}

	tracked, ok, err := cache.GetTrackedFile(u.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	if ok && tracked.MtimeNs == info.ModTime().UnixNano() && tracked.SizeBytes == info.Size() {
		txns, err := cache.LoadLedger(user)
		if err != nil {
			return nil, fmt.Errorf("loading cached ledger: %w", err)
		}
		result.Transactions = txns
		result.CacheHit = true
		return result, nil
	}

	parsed, err := ledger.ParseLedger(u.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", user, err)
	}
	result.Transactions = parsed.Transactions
	result.RowErrors = parsed.RowErrors

	if err := cache.SaveLedger(user, u.LedgerPath, parsed.Transactions, info.ModTime().UnixNano(), info.Size()); err != nil {
		return nil, fmt.Errorf("caching ledger: %w", err)
	}

	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashsim")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "cashsim")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "cashsim.db")
}
