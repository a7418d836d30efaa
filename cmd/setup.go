package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkellman/cashsim/internal/config"
	"github.com/tkellman/cashsim/internal/ledger"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to cashsim!")
	fmt.Println()

	users, _ := ledger.ScanUsers(config.DataDir(cfg))
	if len(users) > 0 {
		fmt.Printf("  Found %d user(s) in %s\n\n", len(users), config.DataDir(cfg))
	}

	// 1. Data directory
	fmt.Println("  1. Data directory")
	fmt.Printf("     Current: %s\n", config.DataDir(cfg))
	fmt.Print("     > ")
	dataDir, _ := reader.ReadString('\n')
	dataDir = strings.TrimSpace(dataDir)
	if dataDir != "" {
		cfg.General.DataDir = dataDir
	}
	fmt.Println()

	// 2. Default window
	fmt.Println("  2. Default simulation window")
	fmt.Println("     (1) 30 days")
	fmt.Println("     (2) 60 days [default]")
	fmt.Println("     (3) 90 days")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(choice)
	switch choice {
	case "1":
		cfg.General.DefaultWindowDays = 30
	case "3":
		cfg.General.DefaultWindowDays = 90
	default:
		cfg.General.DefaultWindowDays = 60
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	themeChoice = strings.TrimSpace(themeChoice)
	switch themeChoice {
	case "2":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}
	fmt.Println()

	// 4. User profile
	fmt.Println("  4. Create a user profile (leave blank to skip)")
	fmt.Print("     Name > ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name != "" {
		if err := setupUser(reader, cfg, name); err != nil {
			return err
		}
		cfg.General.DefaultUser = name
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `cashsim setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func setupUser(reader *bufio.Reader, cfg config.Config, name string) error {
	current := promptFloat(reader, "Current balance")
	target := promptFloat(reader, "Target balance")

	u := ledger.UserDir(config.DataDir(cfg), name)
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return fmt.Errorf("creating user directory: %w", err)
	}

	profile := config.Profile{}
	profile.Balances.Current = current
	profile.Balances.Target = target
	profile.Categories.Valid = config.DefaultCategories
	if err := config.SaveProfile(u.ProfilePath, profile); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}

	if _, err := os.Stat(u.LedgerPath); os.IsNotExist(err) {
		header := "date,amount,description,category,forecast\n"
		if err := os.WriteFile(u.LedgerPath, []byte(header), 0o644); err != nil {
			return fmt.Errorf("writing ledger: %w", err)
		}
	}

	fmt.Printf("     Created %s\n", u.Dir)
	return nil
}

func promptFloat(reader *bufio.Reader, label string) float64 {
	for {
		fmt.Printf("     %s > ", label)
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return 0
		}
		v, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return v
		}
		fmt.Println("     Not a number, try again.")
	}
}
