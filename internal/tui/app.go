// Package tui provides the interactive Bubble Tea dashboard for cashsim.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkellman/cashsim/internal/config"
	"github.com/tkellman/cashsim/internal/engine"
	"github.com/tkellman/cashsim/internal/model"
	"github.com/tkellman/cashsim/internal/pipeline"
	"github.com/tkellman/cashsim/internal/store"
	"github.com/tkellman/cashsim/internal/tui/components"
	"github.com/tkellman/cashsim/internal/tui/theme"
)

// DataLoadedMsg is sent when the load + simulation pipeline finishes.
type DataLoadedMsg struct {
	Data     *pipeline.LoadResult
	Result   *engine.SimulationResult
	Summary  model.MonthlySummary
	LoadTime time.Duration
	Err      error
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	data     *pipeline.LoadResult
	result   *engine.SimulationResult
	summary  model.MonthlySummary
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Refresh state
	refreshing  bool
	lastRefresh time.Time

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	projScroll int

	// First-run setup (huh form)
	// setupVals is shared by pointer so form writes survive model copies.
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	// Loading
	spinner spinner.Model

	// Pipeline inputs
	dataDir string
	user    string
	window  int
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 160
	minContentHeight = 5
	scrollOverhead   = 6 // header + status bar height for table paging
)

// NewApp creates a new TUI app model.
func NewApp(dataDir, user string, window int) App {
	needSetup := !config.Exists()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	app := App{
		dataDir:   dataDir,
		user:      user,
		window:    window,
		needSetup: needSetup,
		spinner:   sp,
	}
	if needSetup {
		app.setupVals = &setupValues{}
		app.setupForm = newSetupForm(app.setupVals)
	}
	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup && a.setupForm != nil {
		return tea.Batch(a.spinner.Tick, a.setupForm.Init())
	}
	return tea.Batch(
		a.spinner.Tick,
		loadDataCmd(a.dataDir, a.user, a.window),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if !a.loaded {
			return a, nil
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, loadDataCmd(a.dataDir, a.user, a.window)
		}

		// Projection tab scrolling
		if a.activeTab == 1 {
			switch key {
			case "j", "down":
				a.projScroll++
				return a, nil
			case "k", "up":
				if a.projScroll > 0 {
					a.projScroll--
				}
				return a, nil
			case "g":
				a.projScroll = 0
				return a, nil
			case "G":
				if a.result != nil {
					a.projScroll = len(a.result.Days)
				}
				return a, nil
			case "ctrl+d":
				a.projScroll += a.halfPage()
				return a, nil
			case "ctrl+u":
				a.projScroll -= a.halfPage()
				if a.projScroll < 0 {
					a.projScroll = 0
				}
				return a, nil
			}
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.refreshing = false
		a.lastRefresh = time.Now()
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		if msg.Err == nil {
			a.data = msg.Data
			a.result = msg.Result
			a.summary = msg.Summary
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) halfPage() int {
	half := (a.height - scrollOverhead) / 2
	if half < 1 {
		half = 1
	}
	return half
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.loadErr != nil {
		return a.viewLoadError()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  cashsim needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ cashsim"))
	b.WriteString(subtitleStyle.Render(" · Cash Flow Simulator"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Parsing ledger..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Padding(1, 3)

	body := lipgloss.NewStyle().Foreground(t.Red).Bold(true).Render("Load failed") +
		"\n\n" + lipgloss.NewStyle().Foreground(t.TextMuted).Render(a.loadErr.Error()) +
		"\n\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render("[r]etry  [q]uit")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(body))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o p a s x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Scroll projection"},
		{"^d ^u", "Half-page scroll"},
		{"g G", "Top / Bottom"},
		{"r", "Reload ledger"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// Header: tab bar + window pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)
	pillAccent := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pill := pillStyle.Render(" ") + pillAccent.Render(fmt.Sprintf("%dd", a.window)) +
		pillStyle.Render(" │ ") + pillAccent.Render(a.user) + pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" + pillRowStyle.Render(pill)

	dataAge := fmt.Sprintf("%.1fs", a.loadTime.Seconds())
	statusBar := components.RenderStatusBar(w, a.user, dataAge)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderProjectionTab(cw, contentH)
	case 2:
		content = a.renderAlertsTab(cw)
	case 3:
		content = a.renderSummaryTab(cw)
	case 4:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// loadDataCmd runs the pipeline + simulation in a background command.
func loadDataCmd(dataDir, user string, window int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		data, err := loadWithCacheFallback(dataDir, user)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		current, target, err := data.Profile.ParseBalances()
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		now := time.Now()
		result, err := engine.Simulate(current, target,
			pipeline.ForecastOnly(data.Transactions), engine.DateOnly(now), window)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		summary := pipeline.SummarizeMonth(data.Transactions,
			data.Profile.Categories.Valid, now.Year(), now.Month())

		return DataLoadedMsg{
			Data:     data,
			Result:   result,
			Summary:  summary,
			LoadTime: time.Since(start),
		}
	}
}

func loadWithCacheFallback(dataDir, user string) (*pipeline.LoadResult, error) {
	cache, err := store.Open(pipeline.CachePath())
	if err == nil {
		cr, loadErr := pipeline.LoadWithCache(dataDir, user, cache)
		_ = cache.Close()
		if loadErr == nil {
			return &cr.LoadResult, nil
		}
	}
	return pipeline.Load(dataDir, user)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
