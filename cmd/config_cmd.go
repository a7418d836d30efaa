package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkellman/cashsim/internal/config"
	"github.com/tkellman/cashsim/internal/ledger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	if cfg.General.DefaultUser != "" {
		fmt.Printf("    Default user:   %s\n", cfg.General.DefaultUser)
	} else {
		fmt.Println("    Default user:   not set")
	}
	fmt.Printf("    Default window: %d days\n", cfg.General.DefaultWindowDays)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	users, err := ledger.ScanUsers(config.DataDir(cfg))
	if err != nil {
		return err
	}
	fmt.Println("  [Users]")
	if len(users) == 0 {
		fmt.Println("    none found")
	}
	for _, u := range users {
		fmt.Printf("    %s  (%s)\n", u.Name, u.Dir)
	}
	fmt.Println()

	fmt.Println("  Run `cashsim setup` to reconfigure.")
	return nil
}
