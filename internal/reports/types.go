// Package reports provides progress report generation for the sidequest app.
// Reports aggregate the quest board, leveling state, and daily completion
// history into a single summary.
package reports

import (
	"time"
)

// ProgressReport contains aggregated progression data.
type ProgressReport struct {
	Date        string         `json:"date"`
	Level       int            `json:"level"`
	CurrentXP   int            `json:"current_xp"`
	XPIntoLevel int            `json:"xp_into_level"`
	XPNeeded    int            `json:"xp_needed"`
	Streak      int            `json:"streak"`
	Multiplier  float64        `json:"multiplier"`
	TotalQuests int            `json:"total_quests_completed"`
	TotalTasks  int            `json:"total_tasks_completed"`
	QuestsToday int            `json:"quests_today"`
	TasksToday  int            `json:"tasks_today"`
	Milestones  MilestoneState `json:"milestones"`
	Board       BoardSummary   `json:"board"`
	QuestLines  []LineSummary  `json:"quest_lines"`
	Days        []DayCount     `json:"days"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// MilestoneState records the highest milestones reached.
type MilestoneState struct {
	QuestMilestone int `json:"quest_milestone"`
	TaskMilestone  int `json:"task_milestone"`
}

// BoardSummary counts quests per lifecycle stage.
type BoardSummary struct {
	Available int `json:"available"`
	Tracking  int `json:"tracking"`
	Complete  int `json:"complete"`
}

// LineSummary contains per-quest-line counts.
type LineSummary struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	Quests    int    `json:"quests"`
	Completed int    `json:"completed"`
}

// DayCount represents tasks completed on a specific day.
type DayCount struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Tasks     int    `json:"tasks"`
}
