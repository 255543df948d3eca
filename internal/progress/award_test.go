package progress

import (
	"testing"
	"time"

	"sidequest/internal/quest"
)

var awardNow = time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC)

func completedQuest(taskCount int, completedAt time.Time) quest.Quest {
	q := quest.Quest{ID: "q1", Status: quest.StatusComplete}
	for i := 0; i < taskCount; i++ {
		q.Tasks = append(q.Tasks, quest.Task{ID: "t", Completed: true})
	}
	ms := completedAt.UnixMilli()
	q.CompletedAt = &ms
	return q
}

// =============================================================================
// Award Tests
// =============================================================================

func TestAwardCompletion_BaseXP(t *testing.T) {
	q := completedQuest(3, awardNow)

	next, note := AwardCompletion(q, nil, quest.UserProgress{}, awardNow)

	// No streak, no daily bonus: (3 tasks + 5) * 1.0
	if next.CurrentXP != 8 {
		t.Errorf("CurrentXP = %d, want 8", next.CurrentXP)
	}
	if next.TotalQuestsCompleted != 1 {
		t.Errorf("TotalQuestsCompleted = %d, want 1", next.TotalQuestsCompleted)
	}
	if next.TotalTasksCompleted != 3 {
		t.Errorf("TotalTasksCompleted = %d, want 3", next.TotalTasksCompleted)
	}
	if next.DailyQuestsCompleted != 1 {
		t.Errorf("DailyQuestsCompleted = %d, want 1", next.DailyQuestsCompleted)
	}
	if next.LastQuestCompletionDate != quest.DateOf(awardNow) {
		t.Errorf("LastQuestCompletionDate = %q, want today", next.LastQuestCompletionDate)
	}
	if note.Type != NotifyXPGain || note.Value != 8 {
		t.Errorf("notification = %+v, want xp-gain of 8", note)
	}
}

func TestAwardCompletion_StreakMultiplier(t *testing.T) {
	// Five consecutive days ending today: multiplier 1.5.
	var stats []quest.DailyStats
	for i := 0; i < 5; i++ {
		stats = append(stats, quest.DailyStats{
			Date:           quest.DateOf(awardNow.AddDate(0, 0, -i)),
			TasksCompleted: 2,
		})
	}

	q := completedQuest(3, awardNow)
	next, _ := AwardCompletion(q, stats, quest.UserProgress{}, awardNow)

	// (3 + 5) * 1.5 = 12
	if next.CurrentXP != 12 {
		t.Errorf("CurrentXP = %d, want 12", next.CurrentXP)
	}
}

func TestAwardCompletion_DailyBonus(t *testing.T) {
	q := completedQuest(2, awardNow)
	p := quest.UserProgress{
		DailyQuestsCompleted:    1,
		LastQuestCompletionDate: quest.DateOf(awardNow),
	}

	next, _ := AwardCompletion(q, nil, p, awardNow)

	// Second quest of the day: (2+5)*1.0 + 5 bonus = 12.
	if next.CurrentXP != 12 {
		t.Errorf("CurrentXP = %d, want 12", next.CurrentXP)
	}
	if next.DailyQuestsCompleted != 2 {
		t.Errorf("DailyQuestsCompleted = %d, want 2", next.DailyQuestsCompleted)
	}
}

func TestAwardCompletion_DailyCounterResetsAcrossDays(t *testing.T) {
	q := completedQuest(1, awardNow)
	p := quest.UserProgress{
		DailyQuestsCompleted:    4,
		LastQuestCompletionDate: quest.DateOf(awardNow.AddDate(0, 0, -1)),
	}

	next, _ := AwardCompletion(q, nil, p, awardNow)
	if next.DailyQuestsCompleted != 1 {
		t.Errorf("DailyQuestsCompleted = %d, want 1 (new day restarts count)", next.DailyQuestsCompleted)
	}
	// First quest of the day gets no bonus: (1+5)*1.0.
	if next.CurrentXP != 6 {
		t.Errorf("CurrentXP = %d, want 6", next.CurrentXP)
	}
}

// =============================================================================
// Notification Priority Tests
// =============================================================================

func TestAwardCompletion_LevelUpWinsPriority(t *testing.T) {
	// 45 XP + 8 gained crosses the 50 XP boundary into level 2, and the
	// quest count crosses the 5-quest milestone at the same time. Level-up
	// wins.
	q := completedQuest(3, awardNow)
	p := quest.UserProgress{CurrentXP: 45, Level: 1, TotalQuestsCompleted: 4}

	next, note := AwardCompletion(q, nil, p, awardNow)
	if next.Level != 2 {
		t.Fatalf("Level = %d, want 2", next.Level)
	}
	if note.Type != NotifyLevelUp || note.Value != 2 {
		t.Errorf("notification = %+v, want level-up to 2", note)
	}
	// The milestone is still recorded so it is not re-celebrated later.
	if next.LastMilestones.QuestMilestone != 5 {
		t.Errorf("QuestMilestone = %d, want 5", next.LastMilestones.QuestMilestone)
	}
}

func TestAwardCompletion_QuestMilestone(t *testing.T) {
	// High XP so the gain cannot cross a level boundary.
	q := completedQuest(3, awardNow)
	p := quest.UserProgress{CurrentXP: 1000, Level: 15, TotalQuestsCompleted: 4}

	next, note := AwardCompletion(q, nil, p, awardNow)
	if note.Type != NotifyQuest || note.Value != 5 {
		t.Errorf("notification = %+v, want quest milestone 5", note)
	}
	if next.LastMilestones.QuestMilestone != 5 {
		t.Errorf("QuestMilestone = %d, want 5", next.LastMilestones.QuestMilestone)
	}
}

func TestAwardCompletion_TaskMilestone(t *testing.T) {
	q := completedQuest(3, awardNow)
	p := quest.UserProgress{CurrentXP: 1000, Level: 15, TotalQuestsCompleted: 1, TotalTasksCompleted: 23}

	_, note := AwardCompletion(q, nil, p, awardNow)
	if note.Type != NotifyTask || note.Value != 25 {
		t.Errorf("notification = %+v, want task milestone 25", note)
	}
}

func TestAwardCompletion_MilestoneNotRepeated(t *testing.T) {
	q := completedQuest(1, awardNow)
	p := quest.UserProgress{
		CurrentXP:            1000,
		Level:                15,
		TotalQuestsCompleted: 4,
		LastMilestones:       quest.Milestones{QuestMilestone: 5},
	}

	_, note := AwardCompletion(q, nil, p, awardNow)
	if note.Type != NotifyXPGain {
		t.Errorf("notification type = %q, want xp-gain (milestone 5 already celebrated)", note.Type)
	}
}

// =============================================================================
// Revert Tests
// =============================================================================

func TestRevertCompletion(t *testing.T) {
	q := completedQuest(3, awardNow)
	p := quest.UserProgress{
		CurrentXP:               100,
		Level:                   LevelFromXP(100),
		TotalQuestsCompleted:    3,
		TotalTasksCompleted:     10,
		DailyQuestsCompleted:    1,
		LastQuestCompletionDate: quest.DateOf(awardNow),
	}

	got := RevertCompletion(q, nil, p, awardNow)

	// (3+5)*1.0 = 8 XP back, no bonus was involved at daily count 1.
	if got.CurrentXP != 92 {
		t.Errorf("CurrentXP = %d, want 92", got.CurrentXP)
	}
	if got.TotalQuestsCompleted != 2 {
		t.Errorf("TotalQuestsCompleted = %d, want 2", got.TotalQuestsCompleted)
	}
	if got.TotalTasksCompleted != 7 {
		t.Errorf("TotalTasksCompleted = %d, want 7", got.TotalTasksCompleted)
	}
	if got.DailyQuestsCompleted != 0 {
		t.Errorf("DailyQuestsCompleted = %d, want 0", got.DailyQuestsCompleted)
	}
}

func TestRevertCompletion_SameDayBonus(t *testing.T) {
	q := completedQuest(2, awardNow)
	p := quest.UserProgress{
		CurrentXP:            100,
		Level:                LevelFromXP(100),
		TotalQuestsCompleted: 2,
		TotalTasksCompleted:  4,
		DailyQuestsCompleted: 2,
	}

	got := RevertCompletion(q, nil, p, awardNow)

	// Base (2+5)*1.0 = 7 plus the bonus the 2nd-of-day completion earned
	// (DailyBonus(2)-DailyBonus(1) = 5) comes back: 100 - 12 = 88.
	if got.CurrentXP != 88 {
		t.Errorf("CurrentXP = %d, want 88", got.CurrentXP)
	}
	if got.DailyQuestsCompleted != 1 {
		t.Errorf("DailyQuestsCompleted = %d, want 1", got.DailyQuestsCompleted)
	}
}

func TestRevertCompletion_FloorsAtZero(t *testing.T) {
	q := completedQuest(10, awardNow)
	p := quest.UserProgress{CurrentXP: 3, Level: 1}

	got := RevertCompletion(q, nil, p, awardNow)
	if got.CurrentXP != 0 {
		t.Errorf("CurrentXP = %d, want 0", got.CurrentXP)
	}
	if got.Level != 1 {
		t.Errorf("Level = %d, want 1", got.Level)
	}
	if got.TotalQuestsCompleted != 0 || got.TotalTasksCompleted != 0 {
		t.Errorf("totals = (%d, %d), want (0, 0)", got.TotalQuestsCompleted, got.TotalTasksCompleted)
	}
}

func TestRevertCompletion_OtherDayKeepsDailyCounter(t *testing.T) {
	q := completedQuest(2, awardNow.AddDate(0, 0, -3))
	p := quest.UserProgress{
		CurrentXP:            100,
		Level:                LevelFromXP(100),
		TotalQuestsCompleted: 5,
		TotalTasksCompleted:  12,
		DailyQuestsCompleted: 2,
	}

	got := RevertCompletion(q, nil, p, awardNow)
	if got.DailyQuestsCompleted != 2 {
		t.Errorf("DailyQuestsCompleted = %d, want 2 (old completion must not touch today)", got.DailyQuestsCompleted)
	}
	if got.CurrentXP != 93 {
		t.Errorf("CurrentXP = %d, want 93", got.CurrentXP)
	}
}
