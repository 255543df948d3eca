// Package ui provides terminal user interface components for the sidequest app.
// This file contains the main App model which coordinates the board and the
// task view and routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"sidequest/internal/config"
	"sidequest/internal/progress"
	"sidequest/internal/quest"
	"sidequest/internal/sound"
	"sidequest/internal/storage"
	"sidequest/internal/sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-runewidth"
)

// syncRefreshInterval limits how often the title bar polls the syncer.
const syncRefreshInterval = 5 * time.Second

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys             *config.KeysConfig
	ConfirmDeletions bool
	DefaultSort      quest.SortMode
}

// App is the main application model.
type App struct {
	storage     *storage.Store
	styles      *Styles
	config      *AppConfig
	board       *BoardPane
	taskPane    *TaskPane
	helpOverlay *HelpOverlay
	player      sound.Player
	syncer      *sync.Syncer
	watcher     *fsnotify.Watcher

	snap        *storage.Snapshot
	syncStatus  sync.Status
	viewTasks   bool
	showHelp    bool
	confirmDel  *confirmDeleteState
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	toast       string
	toastUntil  time.Time
	lastDate    string
	lastSyncAt  time.Time
	quitting    bool

	keys     GlobalKeyMap
	helpKeys HelpKeyMap
}

type confirmDeleteState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates a new application. Data loading is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(store *storage.Store, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:             &config.KeysConfig{},
			ConfirmDeletions: true,
			DefaultSort:      quest.SortManual,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	board := NewBoardPane(store, styles, cfg.Keys, cfg.DefaultSort)
	taskPane := NewTaskPane(store, styles, cfg.Keys)
	helpOverlay := NewHelpOverlay(styles)

	return &App{
		storage:     store,
		styles:      styles,
		config:      cfg,
		board:       board,
		taskPane:    taskPane,
		helpOverlay: helpOverlay,
		player:      sound.New(false),
		lastDate:    quest.DateOf(store.Now()),
		keys:        NewGlobalKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}
}

// SetPlayer installs an audio player for quest event cues.
func (a *App) SetPlayer(p sound.Player) {
	if p != nil {
		a.player = p
	}
}

// SetSyncer installs a cloud syncer for status display.
func (a *App) SetSyncer(s *sync.Syncer) {
	a.syncer = s
}

// SetWatcher installs a data file watcher for external-change reloads.
func (a *App) SetWatcher(w *fsnotify.Watcher) {
	a.watcher = w
}

// Init initializes the app and loads data asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		rolloverCmd(a.storage),
		loadSnapshotCmd(a.storage),
		waitForDataChangeCmd(a.watcher, a.storage.DataFile()),
		refreshSyncStatusCmd(a.syncer),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Async storage results first, so they are processed regardless of
	// which view is active.
	switch msg := msg.(type) {
	case snapshotLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Load: "+msg.err.Error(), true)
			return a, nil
		}
		a.snap = msg.snap
		a.board.SetSnapshot(msg.snap)
		if a.viewTasks {
			a.taskPane.SetSnapshot(msg.snap)
			if !a.taskPane.HasQuest() {
				a.viewTasks = false
			}
		}
		return a, nil

	case dataFileChangedMsg:
		if msg.err != nil {
			a.SetStatus("Watch: "+msg.err.Error(), true)
		}
		return a, tea.Batch(
			loadSnapshotCmd(a.storage),
			waitForDataChangeCmd(a.watcher, a.storage.DataFile()),
		)

	case questAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add quest: "+msg.err.Error(), true)
			return a, nil
		}
		return a, loadSnapshotCmd(a.storage)

	case questDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete quest: "+msg.err.Error(), true)
			return a, nil
		}
		a.SetStatus("Quest deleted", false)
		return a, loadSnapshotCmd(a.storage)

	case questAdvancedMsg:
		return a, a.handleQuestAdvanced(msg)

	case questDemotedMsg:
		if msg.err != nil {
			a.SetStatus("Move back: "+msg.err.Error(), true)
			return a, nil
		}
		if !msg.changed {
			return a, nil
		}
		return a, loadSnapshotCmd(a.storage)

	case pinToggledMsg:
		if msg.err != nil {
			a.SetStatus("Pin: "+msg.err.Error(), true)
			return a, nil
		}
		return a, loadSnapshotCmd(a.storage)

	case questReorderedMsg:
		if msg.err != nil {
			a.SetStatus("Reorder: "+msg.err.Error(), true)
			return a, nil
		}
		return a, loadSnapshotCmd(a.storage)

	case taskAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add task: "+msg.err.Error(), true)
			return a, nil
		}
		return a, loadSnapshotCmd(a.storage)

	case taskToggledMsg:
		return a, a.handleTaskToggled(msg)

	case taskDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete task: "+msg.err.Error(), true)
			return a, nil
		}
		return a, loadSnapshotCmd(a.storage)

	case taskReorderedMsg:
		if msg.err != nil {
			a.SetStatus("Reorder: "+msg.err.Error(), true)
			return a, nil
		}
		return a, loadSnapshotCmd(a.storage)

	case rolloverMsg:
		if msg.err != nil {
			a.SetStatus("Rollover: "+msg.err.Error(), true)
			return a, nil
		}
		if msg.changed {
			return a, loadSnapshotCmd(a.storage)
		}
		return a, nil

	case syncStatusMsg:
		a.syncStatus = msg.status
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		now := time.Time(msg)
		var cmds []tea.Cmd
		if a.status != "" && !a.statusUntil.IsZero() && now.After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		if a.toast != "" && now.After(a.toastUntil) {
			a.toast = ""
		}
		// Day change resets daily counters and streak display.
		if today := quest.DateOf(a.storage.Now()); today != a.lastDate {
			a.lastDate = today
			cmds = append(cmds, rolloverCmd(a.storage), loadSnapshotCmd(a.storage))
		}
		if a.syncer != nil && now.Sub(a.lastSyncAt) >= syncRefreshInterval {
			a.lastSyncAt = now
			cmds = append(cmds, refreshSyncStatusCmd(a.syncer))
		}
		cmds = append(cmds, tickCmd())
		return a, tea.Batch(cmds...)
	}

	return a, nil
}

// handleQuestAdvanced reacts to a forward lifecycle move: toast and audio
// for completions, a subtle cue for tracking starts.
func (a *App) handleQuestAdvanced(msg questAdvancedMsg) tea.Cmd {
	if msg.err != nil {
		a.SetStatus("Advance: "+msg.err.Error(), true)
		return nil
	}
	if !msg.changed {
		if msg.from == quest.StatusAvailable {
			a.SetStatus("Add a task before tracking", true)
		} else if msg.from == quest.StatusTracking {
			a.SetStatus("Finish every task first", true)
		}
		return nil
	}

	var cmds []tea.Cmd
	if msg.notification != nil {
		a.ShowToast(msg.notification.Message)
		cue := sound.CueQuestComplete
		if msg.notification.Type == progress.NotifyLevelUp {
			cue = sound.CueLevelUp
		}
		if cmd := playCueCmd(a.player, cue); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if msg.from == quest.StatusAvailable {
		if cmd := playCueCmd(a.player, sound.CueStartTracking); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, loadSnapshotCmd(a.storage))
	return tea.Batch(cmds...)
}

// handleTaskToggled reacts to a task flip, including the implicit demotion
// of a completed quest when one of its tasks is unchecked.
func (a *App) handleTaskToggled(msg taskToggledMsg) tea.Cmd {
	if msg.err != nil {
		a.SetStatus("Toggle task: "+msg.err.Error(), true)
		return nil
	}

	var cmds []tea.Cmd
	if msg.result.Demoted {
		a.SetStatus("Quest back in tracking", false)
	} else if msg.result.BecameDone {
		if cmd := playCueCmd(a.player, sound.CueTaskComplete); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, loadSnapshotCmd(a.storage))
	return tea.Batch(cmds...)
}

// handleKey routes key presses through overlays, input modes, and views.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmDel != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			cmd := a.confirmDel.cmd
			a.confirmDel = nil
			return a, cmd
		case "n", "N", "esc":
			a.confirmDel = nil
			a.SetStatus("Canceled", false)
			return a, nil
		default:
			return a, nil
		}
	}

	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	inInputMode := a.board.IsAdding() || a.taskPane.IsAdding()

	if !inInputMode {
		// Confirm deletions before they reach the panes.
		if a.config.ConfirmDeletions {
			if cmd, handled := a.interceptDelete(msg); handled {
				return a, cmd
			}
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return a, nil
		}

		if !a.viewTasks {
			switch {
			case key.Matches(msg, a.keys.NextTab):
				a.board.NextColumn()
				return a, nil
			case key.Matches(msg, a.keys.Tab1):
				a.board.FocusColumn(0)
				return a, nil
			case key.Matches(msg, a.keys.Tab2):
				a.board.FocusColumn(1)
				return a, nil
			case key.Matches(msg, a.keys.Tab3):
				a.board.FocusColumn(2)
				return a, nil
			case key.Matches(msg, a.board.keys.OpenTasks):
				if q := a.board.Selected(); q != nil {
					a.viewTasks = true
					a.taskPane.Open(q.ID)
					if a.snap != nil {
						a.taskPane.SetSnapshot(a.snap)
					}
				}
				return a, nil
			}
		} else if key.Matches(msg, a.taskPane.keys.Close) {
			a.viewTasks = false
			return a, nil
		}
	}

	if a.viewTasks {
		return a, a.taskPane.Update(msg)
	}
	return a, a.board.Update(msg)
}

// interceptDelete swaps a delete key press for a confirmation overlay.
// Returns handled=false when the key is not a delete or nothing is selected.
func (a *App) interceptDelete(msg tea.KeyMsg) (tea.Cmd, bool) {
	if a.viewTasks {
		if !key.Matches(msg, a.taskPane.keys.Delete) {
			return nil, false
		}
		t, ok := a.taskPane.SelectedTask()
		if !ok {
			a.SetStatus("No task selected", true)
			return nil, true
		}
		a.confirmDel = &confirmDeleteState{
			title: "Delete task?",
			body:  truncateText(t.Description, 60),
			cmd:   deleteTaskCmd(a.storage, a.taskPane.QuestID(), t.ID),
		}
		return nil, true
	}

	if !key.Matches(msg, a.board.keys.Delete) {
		return nil, false
	}
	q := a.board.Selected()
	if q == nil {
		a.SetStatus("No quest selected", true)
		return nil, true
	}
	a.confirmDel = &confirmDeleteState{
		title: "Delete quest?",
		body:  truncateText(q.Title, 60),
		cmd:   deleteQuestCmd(a.storage, q.ID),
	}
	return nil, true
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}
	a.helpOverlay.SetSize(a.width, a.height)
	a.board.SetSize(a.width, contentHeight)
	a.taskPane.SetSize(a.width, contentHeight)
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	if a.viewTasks {
		b.WriteString(a.taskPane.View())
	} else {
		b.WriteString(a.board.View())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderGoodbye shows an exit message with a progression summary.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  Quest log closed.\n")
	b.WriteString("\n")

	if a.snap != nil {
		p := a.snap.UserProgress
		streak := progress.Streak(a.snap.DailyStats, a.storage.Now())
		b.WriteString(fmt.Sprintf("     Level %d · %d XP\n", p.Level, p.CurrentXP))
		if streak > 0 {
			b.WriteString(fmt.Sprintf("     Streak: %d day(s)\n", streak))
		}
		b.WriteString(fmt.Sprintf("     Quests completed: %d\n", p.TotalQuestsCompleted))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top bar with level, XP, streak, and sync state.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" sidequest ")

	var levelPart, streakPart string
	if a.snap != nil {
		p := a.snap.UserProgress
		earned, needed := progress.LevelProgress(p.CurrentXP)
		levelPart = a.styles.LevelStyle.Render(fmt.Sprintf("Lv %d", p.Level)) +
			a.styles.StatLabelStyle.Render(fmt.Sprintf(" %d/%d XP", earned, needed))

		streak := progress.Streak(a.snap.DailyStats, a.storage.Now())
		if streak > 0 {
			streakPart = a.styles.StreakStyle.Render(fmt.Sprintf("🔥%d", streak)) +
				a.styles.StatLabelStyle.Render(fmt.Sprintf(" x%.1f", progress.StreakMultiplier(streak)))
		}
	}

	syncPart := a.renderSyncStatus()

	dateStr := a.storage.Now().Format("Mon Jan 2 · 15:04")
	date := a.styles.DateStyle.Render(dateStr)

	left := title
	if levelPart != "" {
		left += "  " + levelPart
	}
	if streakPart != "" {
		left += "  " + streakPart
	}

	right := ""
	if syncPart != "" {
		right = syncPart + "  "
	}
	right += date

	spacerWidth := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	return left + strings.Repeat(" ", spacerWidth) + right
}

// renderSyncStatus shows the cloud backup state in the title bar.
func (a *App) renderSyncStatus() string {
	if a.syncer == nil {
		return ""
	}
	st := a.syncStatus
	switch {
	case !st.Enabled:
		return a.styles.SyncDisabledStyle.Render("sync off")
	case st.Syncing:
		return a.styles.SyncActiveStyle.Render("syncing…")
	case st.Err != "":
		return a.styles.SyncErrStyle.Render("sync failed")
	case !st.LastSynced.IsZero():
		return a.styles.SyncOKStyle.Render("synced " + st.LastSynced.Format("15:04"))
	default:
		return a.styles.SyncDisabledStyle.Render("sync idle")
	}
}

// renderHelpBar creates the bottom bar: toast, then status, then key hints.
func (a *App) renderHelpBar() string {
	if a.toast != "" {
		return a.styles.ToastStyle.Render(a.toast)
	}
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.board.IsAdding() || a.taskPane.IsAdding() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	if a.viewTasks {
		return a.styles.RenderHelp(
			"a", "add",
			"d", "toggle",
			"x", "del",
			"J/K", "move",
			"h", "board",
			"?", "help",
		)
	}
	return a.styles.RenderHelp(
		"a", "add",
		"enter", "advance",
		"l", "tasks",
		"p", "pin",
		"s", "sort: "+string(a.board.SortMode()),
		"?", "help",
	)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// ShowToast displays a celebratory banner for a few seconds.
func (a *App) ShowToast(msg string) {
	if msg == "" {
		return
	}
	a.toast = msg
	a.toastUntil = time.Now().Add(4 * time.Second)
}

func truncateText(s string, width int) string {
	return runewidth.Truncate(s, width, "..")
}

// Run starts the Bubble Tea program with the given store, styles, and config.
func Run(store *storage.Store, styles *Styles, cfg *AppConfig) error {
	return RunWithServices(store, styles, cfg, nil, nil)
}

// RunWithServices starts the program with optional sync and sound services.
// The data file watcher is created here and closed when the program exits.
func RunWithServices(store *storage.Store, styles *Styles, cfg *AppConfig, syncer *sync.Syncer, player sound.Player) error {
	app := NewApp(store, styles, cfg)
	app.SetSyncer(syncer)
	app.SetPlayer(player)

	watcher, err := newDataWatcher(store)
	if err == nil {
		app.SetWatcher(watcher)
		defer watcher.Close()
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
