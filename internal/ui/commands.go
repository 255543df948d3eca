// Package ui provides terminal user interface components for the sidequest app.
// This file contains tea.Cmd factories that wrap storage operations. These
// commands run I/O asynchronously to keep the Bubble Tea event loop
// responsive. Each command returns a corresponding message type defined in
// messages.go.
package ui

import (
	"path/filepath"
	"time"

	"sidequest/internal/quest"
	"sidequest/internal/sound"
	"sidequest/internal/storage"
	"sidequest/internal/sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// Snapshot Commands
// =============================================================================

// loadSnapshotCmd returns a command that loads the snapshot from storage.
func loadSnapshotCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		snap, err := store.Load()
		return snapshotLoadedMsg{snap: snap, err: err}
	}
}

// =============================================================================
// Quest Commands
// =============================================================================

// addQuestCmd returns a command that creates a new quest.
func addQuestCmd(store *storage.Store, title, questLineID string) tea.Cmd {
	return func() tea.Msg {
		q, err := store.AddQuest(title, questLineID)
		return questAddedMsg{quest: q, err: err}
	}
}

// deleteQuestCmd returns a command that removes a quest.
func deleteQuestCmd(store *storage.Store, id string) tea.Cmd {
	return func() tea.Msg {
		err := store.DeleteQuest(id)
		return questDeletedMsg{id: id, err: err}
	}
}

// advanceQuestCmd returns a command that moves a quest forward:
// available quests start tracking, tracking quests complete.
func advanceQuestCmd(store *storage.Store, id string, status quest.Status) tea.Cmd {
	return func() tea.Msg {
		switch status {
		case quest.StatusAvailable:
			changed, err := store.StartTracking(id)
			return questAdvancedMsg{id: id, from: status, changed: changed, err: err}
		case quest.StatusTracking:
			notification, err := store.CompleteQuest(id)
			return questAdvancedMsg{id: id, from: status, changed: notification != nil, notification: notification, err: err}
		default:
			return questAdvancedMsg{id: id, from: status}
		}
	}
}

// demoteQuestCmd returns a command that moves a quest back: tracking quests
// return to available, complete quests resume tracking.
func demoteQuestCmd(store *storage.Store, id string, status quest.Status) tea.Cmd {
	return func() tea.Msg {
		switch status {
		case quest.StatusTracking:
			changed, err := store.MoveToAvailable(id)
			return questDemotedMsg{id: id, changed: changed, err: err}
		case quest.StatusComplete:
			changed, err := store.ResumeTracking(id)
			return questDemotedMsg{id: id, changed: changed, err: err}
		default:
			return questDemotedMsg{id: id}
		}
	}
}

// togglePinCmd returns a command that flips a quest's pin state.
func togglePinCmd(store *storage.Store, id string) tea.Cmd {
	return func() tea.Msg {
		pinned, err := store.TogglePin(id)
		return pinToggledMsg{id: id, pinned: pinned, err: err}
	}
}

// reorderQuestCmd returns a command that moves a quest before another
// quest in the same column.
func reorderQuestCmd(store *storage.Store, draggedID, targetID string) tea.Cmd {
	return func() tea.Msg {
		err := store.ReorderQuests(draggedID, targetID)
		return questReorderedMsg{err: err}
	}
}

// =============================================================================
// Task Commands
// =============================================================================

// addTaskCmd returns a command that adds a task to a quest.
func addTaskCmd(store *storage.Store, questID, description string) tea.Cmd {
	return func() tea.Msg {
		t, err := store.AddTask(questID, description)
		return taskAddedMsg{questID: questID, task: t, err: err}
	}
}

// toggleTaskCmd returns a command that flips a task's completion.
func toggleTaskCmd(store *storage.Store, questID, taskID string) tea.Cmd {
	return func() tea.Msg {
		result, err := store.ToggleTask(questID, taskID)
		return taskToggledMsg{questID: questID, taskID: taskID, result: result, err: err}
	}
}

// deleteTaskCmd returns a command that removes a task from a quest.
func deleteTaskCmd(store *storage.Store, questID, taskID string) tea.Cmd {
	return func() tea.Msg {
		err := store.DeleteTask(questID, taskID)
		return taskDeletedMsg{questID: questID, taskID: taskID, err: err}
	}
}

// reorderTaskCmd returns a command that moves a task before another task
// in the same quest.
func reorderTaskCmd(store *storage.Store, questID, draggedID, targetID string) tea.Cmd {
	return func() tea.Msg {
		err := store.ReorderTasks(questID, draggedID, targetID)
		return taskReorderedMsg{questID: questID, err: err}
	}
}

// =============================================================================
// Progression Commands
// =============================================================================

// rolloverCmd returns a command that resets daily counters when the
// calendar day has changed since the last quest completion.
func rolloverCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		changed, err := store.RolloverDay()
		return rolloverMsg{changed: changed, err: err}
	}
}

// =============================================================================
// Watcher Commands
// =============================================================================

// newDataWatcher creates an fsnotify watcher on the data directory. Watching
// the directory rather than the file survives the atomic rename dance the
// storage layer uses for every save.
func newDataWatcher(store *storage.Store) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(store.DataDir()); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// waitForDataChangeCmd returns a command that blocks until the data file is
// rewritten on disk. The app re-issues it after each message, forming a loop.
func waitForDataChangeCmd(w *fsnotify.Watcher, dataFile string) tea.Cmd {
	if w == nil {
		return nil
	}
	base := filepath.Base(dataFile)
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				return dataFileChangedMsg{}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return dataFileChangedMsg{err: err}
			}
		}
	}
}

// =============================================================================
// Sync Commands
// =============================================================================

// refreshSyncStatusCmd returns a command that reads the syncer status.
// Returns nil command if syncer is nil (sync disabled).
func refreshSyncStatusCmd(s *sync.Syncer) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		return syncStatusMsg{status: s.Status()}
	}
}

// =============================================================================
// Sound Commands
// =============================================================================

// playCueCmd returns a command that plays an audio cue. Playback errors are
// dropped; audio is best-effort feedback.
func playCueCmd(player sound.Player, cue sound.Cue) tea.Cmd {
	if player == nil {
		return nil
	}
	return func() tea.Msg {
		_ = player.Play(cue)
		return nil
	}
}

// tickMsg is sent periodically for clock, status expiry, and day rollover.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
