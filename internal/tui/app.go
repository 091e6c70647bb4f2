// Package tui provides the interactive Bubble Tea dashboard for dash.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/AI-MHT/dash/internal/cli"
	"github.com/AI-MHT/dash/internal/config"
	"github.com/AI-MHT/dash/internal/model"
	"github.com/AI-MHT/dash/internal/pipeline"
	"github.com/AI-MHT/dash/internal/store"
	"github.com/AI-MHT/dash/internal/tui/components"
	"github.com/AI-MHT/dash/internal/tui/theme"
)

// DataLoadedMsg is sent when the data pipeline finishes.
type DataLoadedMsg struct {
	Shifts     []model.Shift
	FileErrors int
	LoadTime   time.Duration
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// RefreshDataMsg is sent when a manual data refresh completes.
type RefreshDataMsg struct {
	Shifts     []model.Shift
	FileErrors int
	LoadTime   time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	shifts     []model.Shift
	fileErrors int
	loaded     bool
	loadTime   time.Duration
	refreshing bool

	// Pre-computed for current filter
	filter      model.Filter
	filtered    []model.Shift
	kpis        []model.KPI
	daily       []model.DailyAggregate
	top         *model.Shift
	consumption model.ConsumptionTotals
	targets     model.Targets

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Filter state
	days        int
	slot        model.ShiftSlot
	responsible string

	// Per-tab state
	shiftsState shiftsState
	settings    settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading: channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg // progress + completion messages from loader goroutine

	dataDir string
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	scrollOverhead    = 10 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1
	minContentHeight  = 5
)

// loadConfigOrDefault loads config, returning defaults on error so the TUI
// can always start even if the file is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(dataDir string, days int, slot model.ShiftSlot, responsible string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	if days <= 0 {
		cfg := loadConfigOrDefault()
		days = cfg.General.DefaultDays
		if days <= 0 {
			days = 7
		}
	}

	return App{
		dataDir:     dataDir,
		days:        days,
		slot:        slot,
		responsible: responsible,
		needSetup:   !config.Exists(),
		spinner:     sp,
		loadSub:     make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dataDir, a.loadSub),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	cfg := loadConfigOrDefault()
	a.targets = cfg.ResolveTargets()

	f := model.Filter{Slot: a.slot, Responsible: a.responsible}
	f.From, f.To = pipeline.DefaultRange(a.days, time.Now())
	a.filter = f

	a.filtered = pipeline.Filter(a.shifts, f)
	baseline := pipeline.Filter(a.shifts, pipeline.PreviousPeriod(f))

	a.kpis = pipeline.ComputeKPIs(a.filtered, baseline, a.targets)
	a.daily = pipeline.GroupByDate(a.filtered)
	a.top = pipeline.FindTop(a.filtered)
	a.consumption = pipeline.TotalConsumption(a.filtered)

	// Clamp shifts cursor to the new list bounds
	if a.shiftsState.cursor >= len(a.filtered) {
		a.shiftsState.cursor = len(a.filtered) - 1
	}
	if a.shiftsState.cursor < 0 {
		a.shiftsState.cursor = 0
	}
	a.shiftsState.detailScroll = 0
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

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabShifts && a.shiftsState.cursor > 0 {
				a.shiftsState.cursor--
				a.shiftsState.detailScroll = 0
			}
			return a, nil
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabShifts && a.shiftsState.cursor < len(a.filtered)-1 {
				a.shiftsState.cursor++
				a.shiftsState.detailScroll = 0
			}
			return a, nil
		case tea.MouseButtonLeft:
			// Tab bar occupies the first line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.shifts = msg.Shifts
		a.fileErrors = msg.FileErrors
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.recompute()

		// Activate first-run setup after data loads
		if a.needSetup {
			a.setupForm = newSetupForm(len(a.shifts), a.dataDir, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case RefreshDataMsg:
		a.refreshing = false
		if msg.Shifts != nil {
			a.shifts = msg.Shifts
			a.fileErrors = msg.FileErrors
			a.loadTime = msg.LoadTime
			a.recompute()
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

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Settings field editing intercepts all keys
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Shifts tab has its own keybindings
	if a.activeTab == tabShifts {
		switch key {
		case "j", "down":
			if a.shiftsState.cursor < len(a.filtered)-1 {
				a.shiftsState.cursor++
				a.shiftsState.detailScroll = 0
			}
			return a, nil
		case "k", "up":
			if a.shiftsState.cursor > 0 {
				a.shiftsState.cursor--
				a.shiftsState.detailScroll = 0
			}
			return a, nil
		case "g":
			a.shiftsState.cursor = 0
			a.shiftsState.offset = 0
			a.shiftsState.detailScroll = 0
			return a, nil
		case "G":
			a.shiftsState.cursor = len(a.filtered) - 1
			if a.shiftsState.cursor < 0 {
				a.shiftsState.cursor = 0
			}
			a.shiftsState.detailScroll = 0
			return a, nil
		case "J":
			a.shiftsState.detailScroll++
			return a, nil
		case "K":
			if a.shiftsState.detailScroll > 0 {
				a.shiftsState.detailScroll--
			}
			return a, nil
		case "ctrl+d":
			halfPage := (a.height - scrollOverhead) / 2
			if halfPage < minHalfPageScroll {
				halfPage = minHalfPageScroll
			}
			a.shiftsState.detailScroll += halfPage
			return a, nil
		case "ctrl+u":
			halfPage := (a.height - scrollOverhead) / 2
			if halfPage < minHalfPageScroll {
				halfPage = minHalfPageScroll
			}
			a.shiftsState.detailScroll -= halfPage
			if a.shiftsState.detailScroll < 0 {
				a.shiftsState.detailScroll = 0
			}
			return a, nil
		}
	}

	// Settings tab navigation (non-editing mode)
	if a.activeTab == tabSettings {
		switch key {
		case "j", "down":
			if a.settings.cursor < settingsFieldCount-1 {
				a.settings.cursor++
			}
			return a, nil
		case "k", "up":
			if a.settings.cursor > 0 {
				a.settings.cursor--
			}
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	if key == "q" {
		return a, tea.Quit
	}

	// Manual refresh
	if key == "r" && !a.refreshing {
		a.refreshing = true
		return a, refreshDataCmd(a.dataDir)
	}

	// Cycle the slot filter: all -> day -> night -> all
	if key == "f" {
		switch a.slot {
		case model.SlotAny:
			a.slot = model.SlotDay
		case model.SlotDay:
			a.slot = model.SlotNight
		default:
			a.slot = model.SlotAny
		}
		a.recompute()
		return a, nil
	}

	// Widen or narrow the time window
	if key == "+" || key == "=" {
		a.days += 7
		a.recompute()
		return a, nil
	}
	if key == "-" && a.days > 7 {
		a.days -= 7
		a.recompute()
		return a, nil
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
}

const (
	tabOverview = iota
	tabDaily
	tabShifts
	tabSettings
)

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
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
		"\n  Terminal too narrow (%d cols)\n\n  dash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ dash"))
	b.WriteString(subtitleStyle.Render(" · Shift Performance"))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := 40
		if barW > w-30 {
			barW = w - 30
		}
		if barW < 20 {
			barW = 20
		}
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(a.spinner.View())
		b.WriteString(subtitleStyle.Render(" Parsing report files\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
	} else {
		b.WriteString(a.spinner.View())
		b.WriteString(subtitleStyle.Render(" Discovering report files..."))
	}

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o d s x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate shift list"},
		{"J K", "Scroll detail pane"},
		{"^d ^u", "Half-page scroll"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"f", "Cycle shift filter (all/day/night)"},
		{"+ -", "Widen / narrow time window"},
		{"Enter", "Edit setting"},
		{"Esc", "Cancel edit"},
		{"r", "Refresh data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// Header: tab bar + filter pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	filterStr := accentStyle.Render(fmt.Sprintf(" %dd", a.days))
	if a.slot != model.SlotAny {
		filterStr += pillStyle.Render(" │ ") + accentStyle.Render(a.slot.String())
	}
	if a.responsible != "" {
		filterStr += pillStyle.Render(" │ ") + accentStyle.Render(a.responsible)
	}

	header := components.RenderTabBar(a.activeTab) + "\n" + filterStr

	statusBar := components.RenderStatusBar(w, fmt.Sprintf("%.1fs", a.loadTime.Seconds()), a.refreshing)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabDaily:
		content = a.renderDailyTab(cw)
	case tabShifts:
		content = a.renderShiftsTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Loader commands ────────────────────────────────────────────

// loadDataCmd starts the data loading pipeline in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(dataDir string, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Progress callback: non-blocking send so workers aren't stalled.
			// If the channel is full, we skip this update and the next one catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			shifts, fileErrors := loadShifts(dataDir, progressFn)
			sub <- DataLoadedMsg{
				Shifts:     shifts,
				FileErrors: fileErrors,
				LoadTime:   time.Since(start),
			}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// refreshDataCmd reloads shift data in the background (no progress UI).
func refreshDataCmd(dataDir string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		shifts, fileErrors := loadShifts(dataDir, nil)
		return RefreshDataMsg{
			Shifts:     shifts,
			FileErrors: fileErrors,
			LoadTime:   time.Since(start),
		}
	}
}

// loadShifts runs the cached load with an uncached fallback.
func loadShifts(dataDir string, progressFn pipeline.ProgressFunc) ([]model.Shift, int) {
	cache, err := store.Open(pipeline.CachePath())
	if err == nil {
		cr, loadErr := pipeline.LoadWithCache(dataDir, cache, progressFn)
		_ = cache.Close()
		if loadErr == nil {
			return cr.Shifts, cr.FileErrors
		}
	}

	result, err := pipeline.Load(dataDir, progressFn)
	if err != nil {
		return nil, 0
	}
	return result.Shifts, result.FileErrors
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2 // two-space separator between tabs
	}
	return -1
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
