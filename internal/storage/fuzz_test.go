package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"sidequest/internal/quest"
)

// FuzzMigrate tests snapshot parsing robustness. Migration must never
// panic, and a successful migration must be idempotent.
func FuzzMigrate(f *testing.F) {
	// Seed with valid snapshots and edge cases
	f.Add(`{"quests":[]}`)
	f.Add(`{}`)
	f.Add(``)
	f.Add(`{`)
	f.Add(`null`)
	f.Add(`{"quests":null}`)
	f.Add(`{"quests":[null]}`)
	f.Add(`{"quests":[{"id":"q1","title":"T","status":"tracking","createdAt":1,"tasks":[{"id":"t1","description":"x"}]}]}`)
	f.Add(`{"quests":[{"id":"q1","title":"Legacy","completed":true,"starred":true,"createdAt":1}]}`)
	f.Add(`{"quests":[{"id":"q1","title":"Bad status","status":"archived","createdAt":1}]}`)
	f.Add(`{"userProgress":{"level":-5,"currentXP":-100}}`)
	f.Add(`{"dailyStats":[{"date":"2025-12-15","tasksCompleted":3}]}`)
	f.Add(`{"extra":"field","quests":[]}`)

	f.Fuzz(func(t *testing.T, data string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Migrate panicked on %q: %v", data, r)
			}
		}()

		snap, err := Migrate([]byte(data), 1765800000000)
		if err != nil {
			return
		}

		// Invariants of every successful migration.
		if snap.Quests == nil || snap.QuestLines == nil || snap.DailyStats == nil {
			t.Error("migrated snapshot has nil collections")
		}
		if snap.UserProgress.CurrentXP < 0 || snap.UserProgress.Level < 1 {
			t.Errorf("progress not normalized: xp=%d level=%d",
				snap.UserProgress.CurrentXP, snap.UserProgress.Level)
		}
		for _, q := range snap.Quests {
			if !q.Status.IsValid() {
				t.Errorf("quest %q has invalid status %q", q.ID, q.Status)
			}
			if q.Status == quest.StatusComplete && q.CompletedAt == nil {
				t.Errorf("complete quest %q has no CompletedAt", q.ID)
			}
			if q.Status != quest.StatusComplete && q.CompletedAt != nil {
				t.Errorf("non-complete quest %q has CompletedAt", q.ID)
			}
		}

		// Re-migrating the migrated form must change nothing.
		serialized, err := json.Marshal(snap)
		if err != nil {
			t.Fatalf("marshal migrated snapshot: %v", err)
		}
		again, err := Migrate(serialized, 1765800005000)
		if err != nil {
			t.Fatalf("re-migration failed: %v", err)
		}
		reserialized, err := json.Marshal(again)
		if err != nil {
			t.Fatalf("marshal re-migrated snapshot: %v", err)
		}
		if string(serialized) != string(reserialized) {
			t.Errorf("migration not idempotent:\nfirst:  %s\nsecond: %s", serialized, reserialized)
		}
	})
}

// FuzzAddQuest tests quest creation with random titles: no panics, and
// validation matches the trim-then-check rules.
func FuzzAddQuest(f *testing.F) {
	f.Add("")
	f.Add("Valid quest")
	f.Add(strings.Repeat("a", maxTitleLen))
	f.Add(strings.Repeat("a", maxTitleLen+1))
	f.Add("Quest\nwith\nnewlines")
	f.Add("Unicode: 日本語 🗡️")
	f.Add("   whitespace   ")
	f.Add("\x00\x01\x02")

	f.Fuzz(func(t *testing.T, title string) {
		store := createTestStore(t)
		writeSnapshot(t, store, &Snapshot{})

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("AddQuest panicked with title=%q: %v", title, r)
			}
		}()

		q, err := store.AddQuest(title, "")

		trimmed := strings.TrimSpace(title)
		if trimmed == "" {
			if err == nil {
				t.Error("AddQuest should return error for blank title")
			}
			return
		}
		if len(trimmed) > maxTitleLen {
			if err == nil {
				t.Error("AddQuest should return error for overly long title")
			}
			return
		}

		if err != nil {
			t.Errorf("AddQuest failed for valid input: %v", err)
			return
		}
		if q.Title != trimmed {
			t.Errorf("title = %q, want %q (trimmed)", q.Title, trimmed)
		}

		// Unicode titles must survive the JSON round-trip.
		if utf8.ValidString(trimmed) {
			snap, err := store.Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got := snap.Quest(q.ID); got == nil || got.Title != trimmed {
				t.Errorf("persisted title corrupted: got %v", got)
			}
		}
	})
}
