package quest

import "testing"

func TestSortQuests_Manual(t *testing.T) {
	quests := []Quest{
		{ID: "a", Order: 100},
		{ID: "b", Order: 300},
		{ID: "c", Order: 200, Pinned: true},
		{ID: "d", Order: 50, Pinned: true},
	}

	got := SortQuests(quests, SortManual)
	wantIDs := []string{"c", "d", "b", "a"}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
		}
	}

	// Input is not mutated.
	if quests[0].ID != "a" {
		t.Error("SortQuests() reordered its input")
	}
}

func TestSortQuests_Modes(t *testing.T) {
	quests := []Quest{
		{ID: "old", Title: "Bravo", CreatedAt: 100, Tasks: []Task{{}, {}, {}}},
		{ID: "new", Title: "alpha", CreatedAt: 300, Tasks: []Task{{}}},
		{ID: "mid", Title: "Charlie", CreatedAt: 200, Tasks: []Task{{}, {}}},
	}

	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortNewest, []string{"new", "mid", "old"}},
		{SortOldest, []string{"old", "mid", "new"}},
		{SortMostTasks, []string{"old", "mid", "new"}},
		{SortFewestTasks, []string{"new", "mid", "old"}},
		{SortAlphabetical, []string{"new", "old", "mid"}}, // case-insensitive
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := SortQuests(quests, tt.mode)
			for i, want := range tt.want {
				if got[i].ID != want {
					t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestSortTasks(t *testing.T) {
	tasks := []Task{
		{ID: "low", Order: 1},
		{ID: "high", Order: 9},
		{ID: "mid", Order: 5},
	}

	got := SortTasks(tasks)
	wantIDs := []string{"high", "mid", "low"}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestNextSortMode_Cycles(t *testing.T) {
	seen := map[SortMode]bool{}
	m := SortManual
	for i := 0; i < 6; i++ {
		seen[m] = true
		m = NextSortMode(m)
	}
	if len(seen) != 6 {
		t.Errorf("cycle visited %d modes, want 6", len(seen))
	}
	if m != SortManual {
		t.Errorf("cycle did not return to manual, got %q", m)
	}

	if got := NextSortMode(SortMode("bogus")); got != SortManual {
		t.Errorf("NextSortMode(bogus) = %q, want manual", got)
	}
}

func TestByStatus(t *testing.T) {
	quests := []Quest{
		{ID: "a", Status: StatusAvailable},
		{ID: "b", Status: StatusTracking},
		{ID: "c", Status: StatusAvailable},
	}

	got := ByStatus(quests, StatusAvailable)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("ByStatus() = %v, want [a c]", got)
	}
	if n := len(ByStatus(quests, StatusComplete)); n != 0 {
		t.Errorf("ByStatus(complete) returned %d quests, want 0", n)
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusAvailable, StatusTracking, StatusComplete} {
		if !s.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", s)
		}
	}
	if Status("done").IsValid() {
		t.Error(`Status("done").IsValid() = true, want false`)
	}
}
