package storage

import (
	"os"
	"testing"
	"time"

	"sidequest/internal/quest"
)

var testClock = time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC)

// createTestStore creates a Store with a temporary directory and a fixed
// clock so award math is deterministic.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	store.SetNowFunc(func() time.Time { return testClock })
	return store
}

// writeSnapshot persists a hand-built snapshot as the store's current state.
func writeSnapshot(t *testing.T, store *Store, snap *Snapshot) {
	t.Helper()
	if err := store.Save(snap); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
}

// trackingQuest builds a tracking quest with the given task completion flags.
func trackingQuest(id string, done ...bool) quest.Quest {
	q := quest.Quest{
		ID:           id,
		Title:        "Quest " + id,
		Status:       quest.StatusTracking,
		CreatedAt:    testClock.UnixMilli(),
		LastModified: testClock.UnixMilli(),
		Order:        testClock.UnixMilli(),
	}
	for i, d := range done {
		q.Tasks = append(q.Tasks, quest.Task{
			ID:          id + "-t" + string(rune('1'+i)),
			Description: "Task",
			Completed:   d,
			Order:       int64(len(done) - i),
		})
	}
	return q
}

// =============================================================================
// Load / Save Tests
// =============================================================================

func TestLoad_SeedsFirstRun(t *testing.T) {
	store := createTestStore(t)

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(snap.Quests) != 6 {
		t.Errorf("len(quests) = %d, want 6", len(snap.Quests))
	}
	if len(snap.QuestLines) != 3 {
		t.Errorf("len(questLines) = %d, want 3", len(snap.QuestLines))
	}
	if len(snap.DailyStats) != 7 {
		t.Errorf("len(dailyStats) = %d, want 7", len(snap.DailyStats))
	}
	if snap.UserProgress.CurrentXP != 95 {
		t.Errorf("CurrentXP = %d, want 95", snap.UserProgress.CurrentXP)
	}
	if snap.UserProgress.Level != 2 {
		t.Errorf("Level = %d, want 2", snap.UserProgress.Level)
	}

	// Seed is persisted immediately.
	if _, err := os.Stat(store.DataFile()); err != nil {
		t.Errorf("seed not written to disk: %v", err)
	}

	// Every stage is represented so the board is populated from day one.
	for _, status := range []quest.Status{quest.StatusAvailable, quest.StatusTracking, quest.StatusComplete} {
		if len(quest.ByStatus(snap.Quests, status)) == 0 {
			t.Errorf("seed has no %s quests", status)
		}
	}
}

func TestSave_SuppressesIdenticalContent(t *testing.T) {
	store := createTestStore(t)

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	saves := 0
	store.SetOnSave(func([]byte) { saves++ })

	// Saving the freshly loaded snapshot must be a no-op.
	if err := store.Save(snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saves != 0 {
		t.Errorf("identical save triggered onSave %d times, want 0", saves)
	}

	snap.Quests[0].Title = "Changed"
	if err := store.Save(snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saves != 1 {
		t.Errorf("effective save triggered onSave %d times, want 1", saves)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	store := createTestStore(t)

	first, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := store.Load()
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if len(first.Quests) != len(second.Quests) {
		t.Errorf("quest count changed across loads: %d != %d", len(first.Quests), len(second.Quests))
	}
}

// =============================================================================
// Quest Operation Tests
// =============================================================================

func TestAddQuest(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{})

	q, err := store.AddQuest("  Ship the release  ", "")
	if err != nil {
		t.Fatalf("AddQuest() error = %v", err)
	}
	if q.Title != "Ship the release" {
		t.Errorf("title = %q, want trimmed", q.Title)
	}
	if q.ID == "" {
		t.Error("quest ID is empty")
	}
	if q.Status != quest.StatusAvailable {
		t.Errorf("status = %q, want available", q.Status)
	}
	if len(q.Tasks) != 0 {
		t.Errorf("new quest has %d tasks, want 0", len(q.Tasks))
	}

	snap, _ := store.Load()
	if len(snap.Quests) != 1 {
		t.Fatalf("len(quests) = %d, want 1", len(snap.Quests))
	}
}

func TestAddQuest_Validation(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{})

	if _, err := store.AddQuest("   ", ""); err == nil {
		t.Error("AddQuest() expected error for blank title")
	}

	long := make([]byte, maxTitleLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := store.AddQuest(string(long), ""); err == nil {
		t.Error("AddQuest() expected error for overly long title")
	}

	if _, err := store.AddQuest("Valid", "no-such-line"); err == nil {
		t.Error("AddQuest() expected error for unknown quest line")
	}
}

func TestDeleteQuest(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", false)}})

	if err := store.DeleteQuest("q1"); err != nil {
		t.Fatalf("DeleteQuest() error = %v", err)
	}
	snap, _ := store.Load()
	if len(snap.Quests) != 0 {
		t.Errorf("len(quests) = %d, want 0", len(snap.Quests))
	}

	if err := store.DeleteQuest("q1"); err == nil {
		t.Error("DeleteQuest() expected error for missing quest")
	}
}

func TestStartTracking(t *testing.T) {
	store := createTestStore(t)
	available := trackingQuest("q1", false)
	available.Status = quest.StatusAvailable
	empty := quest.Quest{ID: "q2", Title: "Empty", Status: quest.StatusAvailable}
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{available, empty}})

	changed, err := store.StartTracking("q1")
	if err != nil {
		t.Fatalf("StartTracking() error = %v", err)
	}
	if !changed {
		t.Error("StartTracking() changed = false, want true")
	}

	snap, _ := store.Load()
	if snap.Quest("q1").Status != quest.StatusTracking {
		t.Errorf("status = %q, want tracking", snap.Quest("q1").Status)
	}

	// Zero-task quest refuses to track, silently.
	changed, err = store.StartTracking("q2")
	if err != nil {
		t.Fatalf("StartTracking() error = %v", err)
	}
	if changed {
		t.Error("StartTracking() changed = true for a zero-task quest")
	}

	if _, err := store.StartTracking("missing"); err == nil {
		t.Error("StartTracking() expected error for missing quest")
	}
}

// =============================================================================
// Completion and Award Tests
// =============================================================================

func TestCompleteQuest_AwardsXP(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", true, true, true)}})

	note, err := store.CompleteQuest("q1")
	if err != nil {
		t.Fatalf("CompleteQuest() error = %v", err)
	}
	if note == nil {
		t.Fatal("CompleteQuest() notification = nil, want award")
	}

	snap, _ := store.Load()
	q := snap.Quest("q1")
	if q.Status != quest.StatusComplete {
		t.Errorf("status = %q, want complete", q.Status)
	}
	if q.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}

	// No streak, first of the day: (3 tasks + 5) * 1.0 = 8.
	if snap.UserProgress.CurrentXP != 8 {
		t.Errorf("CurrentXP = %d, want 8", snap.UserProgress.CurrentXP)
	}
	if snap.UserProgress.TotalQuestsCompleted != 1 {
		t.Errorf("TotalQuestsCompleted = %d, want 1", snap.UserProgress.TotalQuestsCompleted)
	}
}

func TestCompleteQuest_OpenTaskIsNoOp(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", true, false)}})

	note, err := store.CompleteQuest("q1")
	if err != nil {
		t.Fatalf("CompleteQuest() error = %v", err)
	}
	if note != nil {
		t.Errorf("notification = %+v, want nil for ineligible quest", note)
	}

	snap, _ := store.Load()
	if snap.Quest("q1").Status != quest.StatusTracking {
		t.Error("ineligible completion changed quest status")
	}
}

func TestResumeTracking_RevertsAward(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", true, true)}})

	if _, err := store.CompleteQuest("q1"); err != nil {
		t.Fatalf("CompleteQuest() error = %v", err)
	}

	changed, err := store.ResumeTracking("q1")
	if err != nil {
		t.Fatalf("ResumeTracking() error = %v", err)
	}
	if !changed {
		t.Fatal("ResumeTracking() changed = false, want true")
	}

	snap, _ := store.Load()
	q := snap.Quest("q1")
	if q.Status != quest.StatusTracking {
		t.Errorf("status = %q, want tracking", q.Status)
	}
	if q.CompletedAt != nil {
		t.Error("CompletedAt not cleared")
	}

	// Same clock, same stats: the revert mirrors the award exactly.
	if snap.UserProgress.CurrentXP != 0 {
		t.Errorf("CurrentXP = %d, want 0 after revert", snap.UserProgress.CurrentXP)
	}
	if snap.UserProgress.TotalQuestsCompleted != 0 {
		t.Errorf("TotalQuestsCompleted = %d, want 0", snap.UserProgress.TotalQuestsCompleted)
	}
}

// =============================================================================
// Task Toggle Tests
// =============================================================================

func TestToggleTask_RecordsDailyStats(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", false, false)}})

	res, err := store.ToggleTask("q1", "q1-t1")
	if err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if !res.BecameDone {
		t.Error("BecameDone = false, want true")
	}

	today := quest.DateOf(testClock)
	snap, _ := store.Load()
	if got := snap.DailyStats; len(got) != 1 || got[0].Date != today || got[0].TasksCompleted != 1 {
		t.Errorf("dailyStats = %v, want one record for today with count 1", got)
	}

	// Un-checking never decrements the record.
	if _, err := store.ToggleTask("q1", "q1-t1"); err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	snap, _ = store.Load()
	if snap.DailyStats[0].TasksCompleted != 1 {
		t.Errorf("count after un-check = %d, want 1", snap.DailyStats[0].TasksCompleted)
	}
}

func TestToggleTask_DemotesAndReverts(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", true, true)}})

	if _, err := store.CompleteQuest("q1"); err != nil {
		t.Fatalf("CompleteQuest() error = %v", err)
	}

	res, err := store.ToggleTask("q1", "q1-t2")
	if err != nil {
		t.Fatalf("ToggleTask() error = %v", err)
	}
	if !res.Demoted {
		t.Error("Demoted = false, want true")
	}

	snap, _ := store.Load()
	if snap.Quest("q1").Status != quest.StatusTracking {
		t.Error("quest not demoted to tracking")
	}
	if snap.UserProgress.CurrentXP != 0 {
		t.Errorf("CurrentXP = %d, want 0 (completion reverted)", snap.UserProgress.CurrentXP)
	}
}

func TestToggleTask_NotFound(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", false)}})

	if _, err := store.ToggleTask("q1", "missing"); err == nil {
		t.Error("ToggleTask() expected error for missing task")
	}
	if _, err := store.ToggleTask("missing", "q1-t1"); err == nil {
		t.Error("ToggleTask() expected error for missing quest")
	}
}

func TestDeleteTask_LastTaskDemotesTracking(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", false)}})

	if err := store.DeleteTask("q1", "q1-t1"); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}

	snap, _ := store.Load()
	if snap.Quest("q1").Status != quest.StatusAvailable {
		t.Errorf("status = %q, want available after losing the last task", snap.Quest("q1").Status)
	}
}

func TestAddTask(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", false)}})

	task, err := store.AddTask("q1", "  Write docs  ")
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if task.Description != "Write docs" {
		t.Errorf("description = %q, want trimmed", task.Description)
	}
	if task.Order != testClock.UnixMilli() {
		t.Errorf("order = %d, want recency key %d", task.Order, testClock.UnixMilli())
	}

	if _, err := store.AddTask("q1", "   "); err == nil {
		t.Error("AddTask() expected error for blank description")
	}
}

// =============================================================================
// Ordering Tests
// =============================================================================

func TestReorderQuests(t *testing.T) {
	store := createTestStore(t)
	a := trackingQuest("a", false)
	b := trackingQuest("b", false)
	c := trackingQuest("c", false)
	a.Order, b.Order, c.Order = 300, 200, 100
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{a, b, c}})

	// Move c before a.
	if err := store.ReorderQuests("c", "a"); err != nil {
		t.Fatalf("ReorderQuests() error = %v", err)
	}

	snap, _ := store.Load()
	sorted := quest.SortQuests(quest.ByStatus(snap.Quests, quest.StatusTracking), quest.SortManual)
	wantIDs := []string{"c", "a", "b"}
	for i, want := range wantIDs {
		if sorted[i].ID != want {
			t.Errorf("position %d = %q, want %q", i, sorted[i].ID, want)
		}
	}
}

func TestReorderQuests_CrossStatusIsNoOp(t *testing.T) {
	store := createTestStore(t)
	a := trackingQuest("a", false)
	b := trackingQuest("b", false)
	b.Status = quest.StatusAvailable
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{a, b}})

	if err := store.ReorderQuests("a", "b"); err != nil {
		t.Fatalf("ReorderQuests() error = %v", err)
	}

	snap, _ := store.Load()
	if snap.Quest("a").Order != a.Order {
		t.Error("cross-status reorder changed order keys")
	}
}

func TestReorderTasks(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", false, false, false)}})

	// Tasks sort by descending order key; t1 has the highest. Move t3
	// before t1.
	if err := store.ReorderTasks("q1", "q1-t3", "q1-t1"); err != nil {
		t.Fatalf("ReorderTasks() error = %v", err)
	}

	snap, _ := store.Load()
	sorted := quest.SortTasks(snap.Quest("q1").Tasks)
	wantIDs := []string{"q1-t3", "q1-t1", "q1-t2"}
	for i, want := range wantIDs {
		if sorted[i].ID != want {
			t.Errorf("position %d = %q, want %q", i, sorted[i].ID, want)
		}
	}
}

func TestTogglePin(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{Quests: []quest.Quest{trackingQuest("q1", false)}})

	pinned, err := store.TogglePin("q1")
	if err != nil {
		t.Fatalf("TogglePin() error = %v", err)
	}
	if !pinned {
		t.Error("TogglePin() = false, want true")
	}

	snap, _ := store.Load()
	if !snap.Quest("q1").Pinned {
		t.Error("quest not pinned after toggle")
	}
	if snap.Quest("q1").Order != testClock.UnixMilli() {
		t.Errorf("order = %d, want pin bump to now", snap.Quest("q1").Order)
	}

	pinned, err = store.TogglePin("q1")
	if err != nil {
		t.Fatalf("TogglePin() error = %v", err)
	}
	if pinned {
		t.Error("second TogglePin() = true, want false")
	}
}

// =============================================================================
// Rollover Tests
// =============================================================================

func TestRolloverDay(t *testing.T) {
	store := createTestStore(t)
	writeSnapshot(t, store, &Snapshot{
		UserProgress: quest.UserProgress{
			Level:                   1,
			DailyQuestsCompleted:    3,
			LastQuestCompletionDate: quest.DateOf(testClock.AddDate(0, 0, -1)),
		},
	})

	changed, err := store.RolloverDay()
	if err != nil {
		t.Fatalf("RolloverDay() error = %v", err)
	}
	if !changed {
		t.Fatal("RolloverDay() changed = false, want true")
	}

	snap, _ := store.Load()
	if snap.UserProgress.DailyQuestsCompleted != 0 {
		t.Errorf("DailyQuestsCompleted = %d, want 0", snap.UserProgress.DailyQuestsCompleted)
	}

	// Second call on the same day is a no-op.
	changed, err = store.RolloverDay()
	if err != nil {
		t.Fatalf("RolloverDay() error = %v", err)
	}
	if changed {
		t.Error("RolloverDay() changed = true on repeat call")
	}
}

// =============================================================================
// Corruption Recovery Tests
// =============================================================================

func TestLoad_CorruptRecoversFromBackup(t *testing.T) {
	store := createTestStore(t)

	// Produce a valid file, copy it as the .bak, then corrupt the original.
	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	data, err := os.ReadFile(store.DataFile())
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if err := os.WriteFile(store.DataFile()+".bak", data, 0600); err != nil {
		t.Fatalf("write backup: %v", err)
	}
	if err := os.WriteFile(store.DataFile(), []byte("{not json"), 0600); err != nil {
		t.Fatalf("corrupt data file: %v", err)
	}

	recovered, err := store.Load()
	if recovered == nil {
		t.Fatal("Load() snapshot = nil, want recovery from backup")
	}
	if err == nil {
		t.Error("Load() error = nil, want recovery notice")
	}
	if len(recovered.Quests) != len(snap.Quests) {
		t.Errorf("recovered %d quests, want %d", len(recovered.Quests), len(snap.Quests))
	}
}

func TestLoad_CorruptWithoutBackup(t *testing.T) {
	store := createTestStore(t)

	if err := os.WriteFile(store.DataFile(), []byte("garbage"), 0600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	snap, err := store.Load()
	if err == nil {
		t.Fatal("Load() error = nil, want corruption error")
	}
	if snap != nil {
		t.Error("Load() snapshot != nil, want nil without a usable backup")
	}

	// The broken file is set aside, never silently reset.
	if _, statErr := os.Stat(store.DataFile()); !os.IsNotExist(statErr) {
		t.Error("corrupt data file still in place, want it moved aside")
	}
}
