package ui

import (
	"testing"

	"sidequest/internal/config"
	"sidequest/internal/quest"
	"sidequest/internal/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors so output assertions work across environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Store instance over a temporary directory.
func createTestStorage(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return store
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// boardSnapshot builds a snapshot with one quest per board column.
func boardSnapshot() *storage.Snapshot {
	done := int64(1700000000000)
	return &storage.Snapshot{
		Quests: []quest.Quest{
			{ID: "q1", Title: "Learn the ropes", Status: quest.StatusAvailable, Order: 3000},
			{ID: "q2", Title: "Ship the feature", Status: quest.StatusTracking, Order: 2000,
				Tasks: []quest.Task{
					{ID: "t1", Description: "Write code", Completed: true, Order: 2000},
					{ID: "t2", Description: "Write tests", Order: 1000},
				}},
			{ID: "q3", Title: "Old victory", Status: quest.StatusComplete, Order: 1000, CompletedAt: &done},
		},
	}
}
