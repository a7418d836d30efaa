package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tkellman/cashsim/internal/config"
	"github.com/tkellman/cashsim/internal/ledger"
	"github.com/tkellman/cashsim/internal/tui/theme"
)

// setupValues holds the first-run form answers.
type setupValues struct {
	dataDir string
	user    string
	current string
	target  string
	window  string
	theme   string
}

func newSetupForm(vals *setupValues) *huh.Form {
	cfg := config.DefaultConfig()
	vals.dataDir = config.DataDir(cfg)
	vals.window = "60"
	vals.theme = cfg.Appearance.Theme

	validateMoney := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return fmt.Errorf("not a number: %s", s)
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data directory").
				Description("Where user ledgers live.").
				Value(&vals.dataDir),
			huh.NewInput().
				Title("User name").
				Description("A folder with profile.toml and ledger.csv is created here.").
				Value(&vals.user),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Current balance").
				Validate(validateMoney).
				Value(&vals.current),
			huh.NewInput().
				Title("Target balance").
				Description("Days projected below this are flagged.").
				Validate(validateMoney).
				Value(&vals.target),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default simulation window").
				Options(
					huh.NewOption("30 days", "30"),
					huh.NewOption("60 days", "60"),
					huh.NewOption("90 days", "90"),
				).
				Value(&vals.window),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Terminal (ANSI 16)", "terminal"),
				).
				Value(&vals.theme),
		),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		if err := a.saveSetupConfig(); err != nil {
			a.loaded = true
			a.loadErr = err
			a.needSetup = false
			a.setupForm = nil
			return a, nil
		}
		a.needSetup = false
		a.setupForm = nil
		a.dataDir = strings.TrimSpace(a.setupVals.dataDir)
		if u := strings.TrimSpace(a.setupVals.user); u != "" {
			a.user = u
		}
		if w, err := strconv.Atoi(a.setupVals.window); err == nil {
			a.window = w
		}
		theme.SetActive(a.setupVals.theme)
		return a, loadDataCmd(a.dataDir, a.user, a.window)
	}

	if a.setupForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

// saveSetupConfig persists the form answers: config file plus, when a
// user name was given, a fresh profile and empty ledger.
func (a App) saveSetupConfig() error {
	cfg, _ := config.Load()
	cfg.General.DataDir = strings.TrimSpace(a.setupVals.dataDir)
	cfg.General.DefaultUser = strings.TrimSpace(a.setupVals.user)
	if w, err := strconv.Atoi(a.setupVals.window); err == nil {
		cfg.General.DefaultWindowDays = w
	}
	cfg.Appearance.Theme = a.setupVals.theme

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	user := strings.TrimSpace(a.setupVals.user)
	if user == "" {
		return nil
	}

	u := ledger.UserDir(config.DataDir(cfg), user)
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return fmt.Errorf("creating user directory: %w", err)
	}

	var profile config.Profile
	profile.Balances.Current = parseFloatOrZero(a.setupVals.current)
	profile.Balances.Target = parseFloatOrZero(a.setupVals.target)
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

	return nil
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
