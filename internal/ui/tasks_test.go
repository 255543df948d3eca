package ui

import (
	"strings"
	"testing"

	"sidequest/internal/config"
	"sidequest/internal/storage"
)

func newTestTaskPane(t *testing.T) *TaskPane {
	t.Helper()
	pane := NewTaskPane(createTestStorage(t), createTestStyles(), &config.KeysConfig{})
	pane.SetSize(60, 20)
	return pane
}

func TestTaskPane_OpenAndRefresh(t *testing.T) {
	setupTest(t)
	pane := newTestTaskPane(t)

	pane.Open("q2")
	pane.SetSnapshot(boardSnapshot())

	if !pane.HasQuest() {
		t.Fatal("HasQuest() = false after opening an existing quest")
	}
	if pane.QuestID() != "q2" {
		t.Errorf("QuestID() = %q, want q2", pane.QuestID())
	}

	// Tasks come back in recency order, highest order key first.
	if len(pane.tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(pane.tasks))
	}
	if pane.tasks[0].ID != "t1" || pane.tasks[1].ID != "t2" {
		t.Errorf("task order = %q, %q, want t1, t2", pane.tasks[0].ID, pane.tasks[1].ID)
	}

	task, ok := pane.SelectedTask()
	if !ok || task.ID != "t1" {
		t.Errorf("SelectedTask() = %v, %v, want t1", task, ok)
	}
}

func TestTaskPane_SetSnapshotClearsOnDeletedQuest(t *testing.T) {
	setupTest(t)
	pane := newTestTaskPane(t)

	pane.Open("q2")
	pane.SetSnapshot(boardSnapshot())
	if !pane.HasQuest() {
		t.Fatal("HasQuest() = false, want true")
	}

	// Quest deleted elsewhere: the pane empties so the app can fall back
	// to the board.
	pane.SetSnapshot(&storage.Snapshot{})
	if pane.HasQuest() {
		t.Error("HasQuest() = true after the quest disappeared")
	}
	if pane.QuestID() != "" {
		t.Errorf("QuestID() = %q, want empty", pane.QuestID())
	}
}

func TestTaskPane_CursorClampsOnShrink(t *testing.T) {
	setupTest(t)
	pane := newTestTaskPane(t)

	pane.Open("q2")
	pane.SetSnapshot(boardSnapshot())
	pane.cursor = 5

	pane.SetSnapshot(boardSnapshot())
	if pane.cursor != 1 {
		t.Errorf("cursor = %d, want clamp to last task", pane.cursor)
	}
}

func TestTaskPane_SelectedTaskEmpty(t *testing.T) {
	setupTest(t)
	pane := newTestTaskPane(t)

	if _, ok := pane.SelectedTask(); ok {
		t.Error("SelectedTask() ok = true with no quest open")
	}
}

func TestTaskPane_View(t *testing.T) {
	setupTest(t)
	pane := newTestTaskPane(t)

	pane.Open("q2")
	pane.SetSnapshot(boardSnapshot())

	output := pane.View()
	for _, want := range []string{
		"Ship the feature",
		"1/2 tasks",
		"[✓] ",
		"Write tests",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("task view missing %q", want)
		}
	}
}

func TestTaskPane_ViewNoQuest(t *testing.T) {
	setupTest(t)
	pane := newTestTaskPane(t)

	if !strings.Contains(pane.View(), "No quest selected") {
		t.Error("task view missing the no-quest placeholder")
	}
}

func TestTaskPane_ViewEmptyTaskList(t *testing.T) {
	setupTest(t)
	pane := newTestTaskPane(t)

	pane.Open("q1")
	pane.SetSnapshot(boardSnapshot())

	if !strings.Contains(pane.View(), "No tasks yet") {
		t.Error("task view missing the empty task list hint")
	}
}
