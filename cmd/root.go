// Package cmd implements the cashsim CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tkellman/cashsim/internal/config"
	"github.com/tkellman/cashsim/internal/ledger"
	"github.com/tkellman/cashsim/internal/pipeline"
	"github.com/tkellman/cashsim/internal/store"
)

var (
	flagUser    string
	flagDataDir string
	flagWindow  int
	flagFrom    string
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "cashsim",
	Short: "Personal Cash Flow Simulator & Reporter",
	Long:  "Project your account balance day by day, flag days below your target, and get month-end surplus transfer recommendations.",
	RunE:  runSimulate,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "User directory name (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory holding user folders")
	rootCmd.PersistentFlags().IntVarP(&flagWindow, "window", "n", 0, "Number of days to simulate (default from config, 60)")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Simulation start date (YYYY-MM-DD, default today)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse the ledger")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// options is the fully resolved run configuration: flags override the
// config file, which overrides built-in defaults.
type options struct {
	cfg     config.Config
	dataDir string
	user    string
	window  int
}

func resolveOptions() (options, error) {
	cfg, err := config.Load()
	if err != nil {
		return options{}, err
	}

	opts := options{
		cfg:     cfg,
		dataDir: flagDataDir,
		user:    flagUser,
		window:  flagWindow,
	}
	if opts.dataDir == "" {
		opts.dataDir = config.DataDir(cfg)
	}
	if opts.user == "" {
		opts.user = cfg.General.DefaultUser
	}
	if opts.window <= 0 {
		opts.window = cfg.General.DefaultWindowDays
	}
	if opts.window <= 0 {
		opts.window = 60
	}

	if opts.user == "" {
		users, err := ledger.ScanUsers(opts.dataDir)
		if err != nil {
			return options{}, fmt.Errorf("scanning %s: %w", opts.dataDir, err)
		}
		if len(users) == 1 {
			opts.user = users[0].Name
		} else if len(users) == 0 {
			return options{}, fmt.Errorf("no users found in %s, run `cashsim setup` first", opts.dataDir)
		} else {
			names := make([]string, len(users))
			for i, u := range users {
				names[i] = u.Name
			}
			return options{}, fmt.Errorf("multiple users found (%v), pick one with --user", names)
		}
	}

	return opts, nil
}

// loadUserData is the shared loading path used by the commands. It uses
// the SQLite cache when available so repeat runs skip reparsing.
func loadUserData(opts options) (*pipeline.LoadResult, error) {
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			// Cache open failed, fall back to uncached
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, parsing ledger\n")
			}
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := pipeline.LoadWithCache(opts.dataDir, opts.user, cache)
			if err == nil {
				if !flagQuiet {
					if cr.CacheHit {
						fmt.Fprintf(os.Stderr, "  Loaded %d transactions from cache\n", len(cr.Transactions))
					} else {
						fmt.Fprintf(os.Stderr, "  Parsed %d transactions\n", len(cr.Transactions))
					}
					reportRowErrors(cr.RowErrors)
				}
				return &cr.LoadResult, nil
			}
			// fall through to uncached load; the error may be cache-side
		}
	}

	result, err := pipeline.Load(opts.dataDir, opts.user)
	if err != nil {
		return nil, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Parsed %d transactions\n", len(result.Transactions))
		reportRowErrors(result.RowErrors)
	}
	return result, nil
}

func reportRowErrors(n int) {
	if n > 0 {
		fmt.Fprintf(os.Stderr, "  Skipped %d malformed ledger row(s)\n", n)
	}
}

// openRunStore opens the store for run history, or returns nil when the
// cache is disabled or unavailable. Run recording is best-effort.
func openRunStore() *store.Cache {
	if flagNoCache {
		return nil
	}
	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		return nil
	}
	return cache
}
