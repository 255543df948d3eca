// Package ui provides terminal user interface components for the sidequest app.
// This file contains the task view for a single opened quest.
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

// TaskPane handles the task list of one quest.
type TaskPane struct {
	questID string
	quest   *quest.Quest
	tasks   []quest.Task
	cursor  int
	adding  bool
	input   textinput.Model
	storage *storage.Store
	styles  *Styles
	width   int
	height  int

	keys      TaskKeyMap
	inputKeys InputKeyMap
}

// NewTaskPane creates a new task pane.
func NewTaskPane(store *storage.Store, styles *Styles, keyCfg *config.KeysConfig) *TaskPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200
	ti.Width = 40

	return &TaskPane{
		input:     ti,
		storage:   store,
		styles:    styles,
		keys:      NewTaskKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// Open points the pane at a quest.
func (p *TaskPane) Open(questID string) {
	p.questID = questID
	p.cursor = 0
}

// QuestID returns the id of the opened quest, or "" when closed.
func (p *TaskPane) QuestID() string {
	return p.questID
}

// SetSnapshot refreshes the opened quest from fresh data. If the quest no
// longer exists the pane empties and the caller should fall back to the
// board.
func (p *TaskPane) SetSnapshot(snap *storage.Snapshot) {
	if p.questID == "" {
		return
	}
	q := snap.Quest(p.questID)
	if q == nil {
		p.quest = nil
		p.tasks = nil
		p.questID = ""
		return
	}
	p.quest = q
	p.tasks = quest.SortTasks(q.Tasks)
	if p.cursor >= len(p.tasks) {
		p.cursor = max(0, len(p.tasks)-1)
	}
}

// HasQuest returns whether a quest is open.
func (p *TaskPane) HasQuest() bool {
	return p.quest != nil
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-6)
}

// IsAdding returns whether we're in add mode.
func (p *TaskPane) IsAdding() bool {
	return p.adding
}

// SelectedTask returns the task under the cursor.
func (p *TaskPane) SelectedTask() (quest.Task, bool) {
	if len(p.tasks) == 0 || p.cursor < 0 || p.cursor >= len(p.tasks) {
		return quest.Task{}, false
	}
	return p.tasks[p.cursor], true
}

// Update handles messages for the task pane.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				text := strings.TrimSpace(p.input.Value())
				p.adding = false
				p.input.Reset()
				if text != "" && p.questID != "" {
					return addTaskCmd(p.storage, p.questID, text)
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
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.tasks) > 0 {
				p.cursor = min(p.cursor+1, len(p.tasks)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.tasks) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Toggle):
			if t, ok := p.SelectedTask(); ok {
				return toggleTaskCmd(p.storage, p.questID, t.ID)
			}

		case key.Matches(msg, p.keys.MoveUp):
			return p.moveSelected(-1)

		case key.Matches(msg, p.keys.MoveDown):
			return p.moveSelected(+1)

		case key.Matches(msg, p.keys.Delete):
			if t, ok := p.SelectedTask(); ok {
				return deleteTaskCmd(p.storage, p.questID, t.ID)
			}
		}
	}

	return nil
}

// moveSelected reorders the selected task one slot up or down.
func (p *TaskPane) moveSelected(delta int) tea.Cmd {
	cur := p.cursor
	target := cur + delta
	if len(p.tasks) < 2 || cur < 0 || cur >= len(p.tasks) || target < 0 || target >= len(p.tasks) {
		return nil
	}

	dragged := p.tasks[cur]
	var targetID string
	if delta < 0 {
		targetID = p.tasks[target].ID
	} else if target+1 < len(p.tasks) {
		targetID = p.tasks[target+1].ID
	} else {
		targetID = p.tasks[target].ID
		p.cursor = target
		return reorderTaskCmd(p.storage, p.questID, targetID, dragged.ID)
	}
	p.cursor = target
	return reorderTaskCmd(p.storage, p.questID, dragged.ID, targetID)
}

// View renders the task view.
func (p *TaskPane) View() string {
	var b strings.Builder

	if p.quest == nil {
		return p.styles.ColumnStyle.Width(p.width - 2).Height(p.height).Render("No quest selected")
	}

	// Header: status-colored title plus progress
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.styles.StatusColor(p.quest.Status)).
		Render(runewidth.Truncate(p.quest.Title, max(10, p.width-20), ".."))
	b.WriteString(title)
	if p.quest.TaskCount() > 0 {
		b.WriteString(p.styles.StatLabelStyle.Render(fmt.Sprintf("  %d/%d tasks", p.quest.CompletedTaskCount(), p.quest.TaskCount())))
	}
	b.WriteString("\n")

	sepWidth := p.width - 6
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(p.tasks) == 0 && !p.adding {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		maxRows := p.height - 6
		if maxRows < 3 {
			maxRows = 5
		}
		startIdx := 0
		if p.cursor >= maxRows {
			startIdx = p.cursor - maxRows + 1
		}

		for i, t := range p.tasks {
			if i < startIdx || i >= startIdx+maxRows {
				continue
			}

			checkbox := p.styles.TaskCheckboxPending
			if t.Completed {
				checkbox = p.styles.TaskCheckboxDone
			}

			avail := p.width - 12
			if avail < 5 {
				avail = 5
			}
			text := runewidth.Truncate(t.Description, avail, "..")

			var line string
			if i == p.cursor && !p.adding {
				line = p.styles.TaskSelectedStyle.Render(" " + checkbox + " " + text + " ")
			} else if t.Completed {
				line = " " + checkbox + " " + p.styles.TaskDoneStyle.Render(text)
			} else {
				line = " " + checkbox + " " + p.styles.TaskPendingStyle.Render(text)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if p.adding {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("+ ")
		b.WriteString(prompt + p.input.View())
		b.WriteString("\n")
	}

	return p.styles.ColumnFocusedStyle.Width(p.width - 2).Height(p.height).Render(b.String())
}
