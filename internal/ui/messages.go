// Package ui provides terminal user interface components for the sidequest app.
// This file defines message types for async I/O operations using the Bubble Tea
// command pattern. All storage operations return these messages to keep the
// event loop non-blocking.
package ui

import (
	"sidequest/internal/progress"
	"sidequest/internal/quest"
	"sidequest/internal/storage"
	"sidequest/internal/sync"
)

// =============================================================================
// Snapshot Messages
// =============================================================================

// snapshotLoadedMsg is sent when the snapshot is (re)loaded from storage.
type snapshotLoadedMsg struct {
	snap *storage.Snapshot
	err  error
}

// dataFileChangedMsg is sent when the data file changes on disk, typically
// from a restore, import, or another process.
type dataFileChangedMsg struct {
	err error
}

// =============================================================================
// Quest Messages
// =============================================================================

// questAddedMsg is sent when a new quest is created.
type questAddedMsg struct {
	quest *quest.Quest
	err   error
}

// questDeletedMsg is sent when a quest is removed.
type questDeletedMsg struct {
	id  string
	err error
}

// questAdvancedMsg is sent when a quest moves forward in the lifecycle.
// notification is non-nil only for completions.
type questAdvancedMsg struct {
	id           string
	from         quest.Status
	changed      bool
	notification *progress.Notification
	err          error
}

// questDemotedMsg is sent when a quest moves back in the lifecycle.
type questDemotedMsg struct {
	id      string
	changed bool
	err     error
}

// pinToggledMsg is sent when a quest's pin state flips.
type pinToggledMsg struct {
	id     string
	pinned bool
	err    error
}

// questReorderedMsg is sent when a quest drag-reorder finishes.
type questReorderedMsg struct {
	err error
}

// =============================================================================
// Task Messages
// =============================================================================

// taskAddedMsg is sent when a task is added to a quest.
type taskAddedMsg struct {
	questID string
	task    *quest.Task
	err     error
}

// taskToggledMsg is sent when a task's completion flips.
type taskToggledMsg struct {
	questID string
	taskID  string
	result  quest.ToggleResult
	err     error
}

// taskDeletedMsg is sent when a task is removed.
type taskDeletedMsg struct {
	questID string
	taskID  string
	err     error
}

// taskReorderedMsg is sent when a task drag-reorder finishes.
type taskReorderedMsg struct {
	questID string
	err     error
}

// =============================================================================
// Progression Messages
// =============================================================================

// rolloverMsg is sent after the day-change check runs.
type rolloverMsg struct {
	changed bool
	err     error
}

// =============================================================================
// Sync Messages
// =============================================================================

// syncStatusMsg is sent when the cloud sync status is refreshed.
type syncStatusMsg struct {
	status sync.Status
}
