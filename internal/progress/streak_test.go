package progress

import (
	"testing"
	"time"

	"sidequest/internal/quest"
)

var streakToday = time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC)

// statsFor builds DailyStats for n consecutive days ending today.
func statsFor(n int) []quest.DailyStats {
	var stats []quest.DailyStats
	for i := 0; i < n; i++ {
		stats = append(stats, quest.DailyStats{
			Date:           quest.DateOf(streakToday.AddDate(0, 0, -i)),
			TasksCompleted: 1,
		})
	}
	return stats
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		stats []quest.DailyStats
		want  int
	}{
		{
			name:  "no stats",
			stats: nil,
			want:  0,
		},
		{
			name:  "three consecutive days",
			stats: statsFor(3),
			want:  3,
		},
		{
			name: "gap breaks the walk",
			stats: []quest.DailyStats{
				{Date: quest.DateOf(streakToday), TasksCompleted: 2},
				{Date: quest.DateOf(streakToday.AddDate(0, 0, -2)), TasksCompleted: 4},
			},
			want: 1,
		},
		{
			name: "nothing today means zero",
			stats: []quest.DailyStats{
				{Date: quest.DateOf(streakToday.AddDate(0, 0, -1)), TasksCompleted: 3},
			},
			want: 0,
		},
		{
			name: "zero-count record breaks the walk",
			stats: []quest.DailyStats{
				{Date: quest.DateOf(streakToday), TasksCompleted: 0},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.stats, streakToday); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakMultiplier(t *testing.T) {
	tests := []struct {
		streak int
		want   float64
	}{
		{0, 1.0},
		{4, 1.0},
		{5, 1.5},
		{9, 1.5},
		{10, 2.0},
		{14, 2.0},
		{15, 2.5},
		{100, 2.5},
	}

	for _, tt := range tests {
		if got := StreakMultiplier(tt.streak); got != tt.want {
			t.Errorf("StreakMultiplier(%d) = %v, want %v", tt.streak, got, tt.want)
		}
	}
}

func TestDailyBonus(t *testing.T) {
	tests := []struct {
		quests int
		want   int
	}{
		{0, 0},
		{1, 0},
		{2, 5},
		{3, 10},
		{4, 25},
		{10, 25},
	}

	for _, tt := range tests {
		if got := DailyBonus(tt.quests); got != tt.want {
			t.Errorf("DailyBonus(%d) = %d, want %d", tt.quests, got, tt.want)
		}
	}
}

func TestRecordTaskCompletion(t *testing.T) {
	today := quest.DateOf(streakToday)

	stats := RecordTaskCompletion(nil, today)
	if len(stats) != 1 || stats[0].TasksCompleted != 1 {
		t.Fatalf("first record = %v, want one entry with count 1", stats)
	}

	stats = RecordTaskCompletion(stats, today)
	if stats[0].TasksCompleted != 2 {
		t.Errorf("second record count = %d, want 2", stats[0].TasksCompleted)
	}

	// A new date appends instead of incrementing.
	other := quest.DateOf(streakToday.AddDate(0, 0, 1))
	stats = RecordTaskCompletion(stats, other)
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}
}

func TestTasksCompletedOn(t *testing.T) {
	stats := []quest.DailyStats{{Date: "2025-12-15", TasksCompleted: 7}}
	if got := TasksCompletedOn(stats, "2025-12-15"); got != 7 {
		t.Errorf("TasksCompletedOn() = %d, want 7", got)
	}
	if got := TasksCompletedOn(stats, "2025-12-14"); got != 0 {
		t.Errorf("TasksCompletedOn(missing) = %d, want 0", got)
	}
}

func TestRolloverDay(t *testing.T) {
	p := quest.UserProgress{
		DailyQuestsCompleted:    3,
		LastQuestCompletionDate: "2025-12-14",
	}

	got, changed := RolloverDay(p, "2025-12-15")
	if !changed {
		t.Fatal("RolloverDay() changed = false, want true")
	}
	if got.DailyQuestsCompleted != 0 {
		t.Errorf("DailyQuestsCompleted = %d, want 0", got.DailyQuestsCompleted)
	}
	if got.LastQuestCompletionDate != "" {
		t.Errorf("LastQuestCompletionDate = %q, want empty", got.LastQuestCompletionDate)
	}

	// Same day is a no-op.
	p.LastQuestCompletionDate = "2025-12-15"
	if _, changed := RolloverDay(p, "2025-12-15"); changed {
		t.Error("RolloverDay() changed = true on the same day")
	}

	// Never completed anything: nothing to reset.
	if _, changed := RolloverDay(quest.UserProgress{}, "2025-12-15"); changed {
		t.Error("RolloverDay() changed = true on empty progress")
	}
}
