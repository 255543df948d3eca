// Package ui provides terminal user interface components for the sidequest app.
// This file contains the quest board: three status columns with vim-style
// navigation, manual reordering, and quest lifecycle keys.
package ui

import (
	"fmt"
	"strings"

	"sidequest/internal/config"
	"sidequest/internal/quest"
	"sidequest/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// boardStatuses fixes the column order: available, tracking, complete.
var boardStatuses = [3]quest.Status{
	quest.StatusAvailable,
	quest.StatusTracking,
	quest.StatusComplete,
}

// BoardPane handles the quest board display and interactions.
type BoardPane struct {
	snap      *storage.Snapshot
	columns   [3][]quest.Quest
	activeCol int
	cursors   [3]int
	sortMode  quest.SortMode
	adding    bool
	input     textinput.Model
	storage   *storage.Store
	styles    *Styles
	width     int
	height    int

	keys      BoardKeyMap
	inputKeys InputKeyMap
}

// NewBoardPane creates a new board pane.
func NewBoardPane(store *storage.Store, styles *Styles, keyCfg *config.KeysConfig, defaultSort quest.SortMode) *BoardPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	if !defaultSort.IsValid() {
		defaultSort = quest.SortManual
	}
	ti := textinput.New()
	ti.Placeholder = "Name your quest"
	ti.CharLimit = 120
	ti.Width = 40

	return &BoardPane{
		sortMode:  defaultSort,
		input:     ti,
		storage:   store,
		styles:    styles,
		keys:      NewBoardKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetSnapshot installs fresh data and re-derives the sorted columns.
func (p *BoardPane) SetSnapshot(snap *storage.Snapshot) {
	p.snap = snap
	for i, status := range boardStatuses {
		p.columns[i] = quest.SortQuests(quest.ByStatus(snap.Quests, status), p.sortMode)
		if p.cursors[i] >= len(p.columns[i]) {
			p.cursors[i] = max(0, len(p.columns[i])-1)
		}
	}
}

// SetSize sets the pane dimensions.
func (p *BoardPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width/3-6)
}

// IsAdding returns whether we're in add mode.
func (p *BoardPane) IsAdding() bool {
	return p.adding
}

// ActiveStatus returns the lifecycle stage of the focused column.
func (p *BoardPane) ActiveStatus() quest.Status {
	return boardStatuses[p.activeCol]
}

// SortMode returns the current board sort mode.
func (p *BoardPane) SortMode() quest.SortMode {
	return p.sortMode
}

// Selected returns the quest under the cursor, or nil when the focused
// column is empty.
func (p *BoardPane) Selected() *quest.Quest {
	col := p.columns[p.activeCol]
	cur := p.cursors[p.activeCol]
	if len(col) == 0 || cur < 0 || cur >= len(col) {
		return nil
	}
	q := col[cur]
	return &q
}

// NextColumn cycles focus to the next status column.
func (p *BoardPane) NextColumn() {
	p.activeCol = (p.activeCol + 1) % len(boardStatuses)
}

// FocusColumn focuses a specific status column.
func (p *BoardPane) FocusColumn(i int) {
	if i >= 0 && i < len(boardStatuses) {
		p.activeCol = i
	}
}

// Update handles messages for the board pane.
func (p *BoardPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	// If we're adding a quest, handle input
	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				title := strings.TrimSpace(p.input.Value())
				p.adding = false
				p.input.Reset()
				if title != "" {
					return addQuestCmd(p.storage, title, "")
				}
				return nil

			case key.Matches(msg, p.inputKeys.Cancel):
				p.adding = false
				p.input.Reset()
				return nil
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		col := p.columns[p.activeCol]
		cur := p.cursors[p.activeCol]

		switch {
		case key.Matches(msg, p.keys.Down):
			if len(col) > 0 {
				p.cursors[p.activeCol] = min(cur+1, len(col)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(col) > 0 {
				p.cursors[p.activeCol] = max(cur-1, 0)
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Advance):
			if q := p.Selected(); q != nil {
				return advanceQuestCmd(p.storage, q.ID, q.Status)
			}

		case key.Matches(msg, p.keys.Demote):
			if q := p.Selected(); q != nil {
				return demoteQuestCmd(p.storage, q.ID, q.Status)
			}

		case key.Matches(msg, p.keys.Pin):
			if q := p.Selected(); q != nil {
				return togglePinCmd(p.storage, q.ID)
			}

		case key.Matches(msg, p.keys.MoveUp):
			return p.moveSelected(-1)

		case key.Matches(msg, p.keys.MoveDown):
			return p.moveSelected(+1)

		case key.Matches(msg, p.keys.Sort):
			p.sortMode = quest.NextSortMode(p.sortMode)
			if p.snap != nil {
				p.SetSnapshot(p.snap)
			}

		case key.Matches(msg, p.keys.Delete):
			if q := p.Selected(); q != nil {
				return deleteQuestCmd(p.storage, q.ID)
			}
		}
	}

	return nil
}

// moveSelected reorders the selected quest one slot within its column.
// Reordering only applies in manual sort; other modes derive their order.
func (p *BoardPane) moveSelected(delta int) tea.Cmd {
	if p.sortMode != quest.SortManual {
		return nil
	}
	col := p.columns[p.activeCol]
	cur := p.cursors[p.activeCol]
	target := cur + delta
	if len(col) < 2 || cur < 0 || cur >= len(col) || target < 0 || target >= len(col) {
		return nil
	}

	// Dropping below a neighbor means inserting before the slot after it.
	dragged := col[cur]
	var targetID string
	if delta < 0 {
		targetID = col[target].ID
	} else if target+1 < len(col) {
		targetID = col[target+1].ID
	} else {
		// Moving to the tail: reinsert before the dragged quest itself
		// is a no-op, so reorder against the last quest and swap cursors.
		targetID = col[target].ID
		p.cursors[p.activeCol] = target
		return reorderQuestCmd(p.storage, targetID, dragged.ID)
	}
	p.cursors[p.activeCol] = target
	return reorderQuestCmd(p.storage, dragged.ID, targetID)
}

// View renders the board as three side-by-side columns.
func (p *BoardPane) View() string {
	colWidth := (p.width - 6) / 3
	if colWidth < 18 {
		colWidth = 18
	}
	colHeight := p.height
	if colHeight < 8 {
		colHeight = 8
	}

	views := make([]string, 0, 3)
	for i := range boardStatuses {
		views = append(views, p.renderColumn(i, colWidth, colHeight))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, views[0], " ", views[1], " ", views[2])

	if p.adding {
		prompt := p.styles.InputPromptStyle.Render("+ ")
		return board + "\n" + prompt + p.input.View()
	}
	return board
}

// columnTitles maps each status to its board header.
var columnTitles = map[quest.Status]string{
	quest.StatusAvailable: "AVAILABLE",
	quest.StatusTracking:  "TRACKING",
	quest.StatusComplete:  "COMPLETE",
}

func (p *BoardPane) renderColumn(i, width, height int) string {
	status := boardStatuses[i]
	col := p.columns[i]
	focused := i == p.activeCol

	var b strings.Builder

	title := p.styles.ColumnTitleStyle.
		Foreground(p.styles.StatusColor(status)).
		Render(fmt.Sprintf("%s (%d)", columnTitles[status], len(col)))
	b.WriteString(title)
	b.WriteString("\n")

	if len(col) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  empty"))
		b.WriteString("\n")
	} else {
		maxRows := height - 4
		if maxRows < 3 {
			maxRows = 5
		}
		startIdx := 0
		if focused && p.cursors[i] >= maxRows {
			startIdx = p.cursors[i] - maxRows + 1
		}

		for j, q := range col {
			if j < startIdx || j >= startIdx+maxRows {
				continue
			}
			b.WriteString(p.renderQuestRow(q, width, focused && j == p.cursors[i]))
			b.WriteString("\n")
		}
	}

	style := p.styles.ColumnStyle
	if focused {
		style = p.styles.ColumnFocusedStyle
	}
	return style.Width(width).Height(height).Render(b.String())
}

func (p *BoardPane) renderQuestRow(q quest.Quest, width int, selected bool) string {
	// Layout: [pin][line dot][title][progress]
	progress := ""
	if q.TaskCount() > 0 {
		progress = fmt.Sprintf(" %d/%d", q.CompletedTaskCount(), q.TaskCount())
	}

	pin := "  "
	if q.Pinned {
		pin = p.styles.PinIcon + " "
	}

	dot := ""
	if q.QuestLine != "" && p.snap != nil {
		if ql, ok := p.snap.QuestLineByID(q.QuestLine); ok {
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(ql.Color)).Render("●") + " "
		}
	}

	avail := width - 4 - lipgloss.Width(pin) - lipgloss.Width(dot) - len(progress)
	if avail < 5 {
		avail = 5
	}
	title := runewidth.Truncate(q.Title, avail, "..")

	if selected {
		return p.styles.QuestSelectedStyle.Render(pin + dot + title + progress)
	}
	textStyle := p.styles.QuestStyle
	if q.Status == quest.StatusComplete {
		textStyle = p.styles.QuestDoneStyle
	}
	return pin + dot + textStyle.Render(title) + p.styles.StatLabelStyle.Render(progress)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
