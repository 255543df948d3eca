package storage

import (
	"time"

	"sidequest/internal/progress"
	"sidequest/internal/quest"
)

// Seed builds the first-run dataset: a handful of quests across all three
// stages, a week of daily stats, and starter progress. New users land in a
// populated app instead of an empty one.
func Seed(now time.Time) *Snapshot {
	nowMs := now.UnixMilli()
	day := int64(24 * time.Hour / time.Millisecond)

	questLines := []quest.QuestLine{
		{ID: "ql-1", Name: "Work Projects", Color: "#3B82F6"},
		{ID: "ql-2", Name: "Personal Growth", Color: "#10B981"},
		{ID: "ql-3", Name: "Health & Fitness", Color: "#F59E0B"},
	}

	completedAt8 := nowMs - day*8
	completedAt7 := nowMs - day*7

	quests := []quest.Quest{
		{
			ID:    "quest-1",
			Title: "Plan Weekend Trip",
			Tasks: []quest.Task{
				{ID: "task-1-1", Description: "Research destinations", Order: 1},
				{ID: "task-1-2", Description: "Check flight prices", Order: 2},
				{ID: "task-1-3", Description: "Book accommodation", Order: 3},
			},
			Status:       quest.StatusAvailable,
			CreatedAt:    nowMs - day*2,
			LastModified: nowMs - day*2,
			Order:        nowMs - day*2,
		},
		{
			ID:    "quest-2",
			Title: "Learn Go Generics",
			Tasks: []quest.Task{
				{ID: "task-2-1", Description: "Read documentation", Order: 1},
				{ID: "task-2-2", Description: "Complete tutorial", Order: 2},
				{ID: "task-2-3", Description: "Build practice project", Order: 3},
			},
			Status:       quest.StatusAvailable,
			QuestLine:    "ql-2",
			CreatedAt:    nowMs - day*3,
			LastModified: nowMs - day*3,
			Order:        nowMs - day*3,
		},
		{
			ID:    "quest-3",
			Title: "Redesign Portfolio Website",
			Tasks: []quest.Task{
				{ID: "task-3-1", Description: "Sketch wireframes", Completed: true, Order: 1},
				{ID: "task-3-2", Description: "Choose color palette", Completed: true, Order: 2},
				{ID: "task-3-3", Description: "Build landing page", Order: 3},
				{ID: "task-3-4", Description: "Add projects section", Order: 4},
				{ID: "task-3-5", Description: "Deploy to production", Order: 5},
			},
			Status:       quest.StatusTracking,
			QuestLine:    "ql-1",
			CreatedAt:    nowMs - day*5,
			LastModified: nowMs - day,
			Order:        nowMs,
			Pinned:       true,
		},
		{
			ID:    "quest-4",
			Title: "Morning Workout Routine",
			Tasks: []quest.Task{
				{ID: "task-4-1", Description: "10 min stretching", Completed: true, Order: 1},
				{ID: "task-4-2", Description: "20 push-ups", Order: 2},
				{ID: "task-4-3", Description: "30 squats", Order: 3},
				{ID: "task-4-4", Description: "1 min plank", Order: 4},
			},
			Status:       quest.StatusTracking,
			QuestLine:    "ql-3",
			CreatedAt:    nowMs - day*7,
			LastModified: nowMs,
			Order:        nowMs - 1000,
		},
		{
			ID:    "quest-5",
			Title: "Set Up Development Environment",
			Tasks: []quest.Task{
				{ID: "task-5-1", Description: "Install editor plugins", Completed: true, Order: 1},
				{ID: "task-5-2", Description: "Configure Git", Completed: true, Order: 2},
				{ID: "task-5-3", Description: "Set up Go toolchain", Completed: true, Order: 3},
			},
			Status:       quest.StatusComplete,
			QuestLine:    "ql-1",
			CreatedAt:    nowMs - day*10,
			LastModified: nowMs - day*8,
			CompletedAt:  &completedAt8,
			Order:        nowMs - day*8,
		},
		{
			ID:    "quest-6",
			Title: "Read \"Atomic Habits\"",
			Tasks: []quest.Task{
				{ID: "task-6-1", Description: "Chapters 1-5", Completed: true, Order: 1},
				{ID: "task-6-2", Description: "Chapters 6-10", Completed: true, Order: 2},
				{ID: "task-6-3", Description: "Chapters 11-15", Completed: true, Order: 3},
				{ID: "task-6-4", Description: "Write key takeaways", Completed: true, Order: 4},
			},
			Status:       quest.StatusComplete,
			QuestLine:    "ql-2",
			CreatedAt:    nowMs - day*14,
			LastModified: nowMs - day*7,
			CompletedAt:  &completedAt7,
			Order:        nowMs - day*7,
		},
	}

	stats := make([]quest.DailyStats, 0, 7)
	counts := []int{3, 5, 2, 4, 6, 3, 2}
	for i, c := range counts {
		date := quest.DateOf(now.AddDate(0, 0, -(len(counts) - 1 - i)))
		stats = append(stats, quest.DailyStats{Date: date, TasksCompleted: c})
	}

	seedXP := 95
	userProgress := quest.UserProgress{
		Level:                progress.LevelFromXP(seedXP),
		CurrentXP:            seedXP,
		TotalQuestsCompleted: 2,
		TotalTasksCompleted:  7,
	}

	return &Snapshot{
		Quests:       quests,
		QuestLines:   questLines,
		DailyStats:   stats,
		UserProgress: userProgress,
	}
}
