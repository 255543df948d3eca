package progress

import (
	"fmt"
	"time"

	"sidequest/internal/quest"
)

// Milestone spacing for celebratory notifications.
const (
	questMilestoneStep = 5
	taskMilestoneStep  = 25
)

// NotificationType classifies what an award notification celebrates.
type NotificationType string

const (
	NotifyLevelUp NotificationType = "level-up"
	NotifyQuest   NotificationType = "quest"
	NotifyTask    NotificationType = "task"
	NotifyXPGain  NotificationType = "xp-gain"
)

// Notification is the single value surfaced to the UI after an award. At
// most one notification is live at a time; a new award overwrites it.
type Notification struct {
	Type    NotificationType
	Message string
	Value   int
}

// AwardCompletion computes the new progression state after completing a
// quest. The streak is read from stats as they stand before this
// completion's own task records are considered, so the formula never
// depends on its own output.
func AwardCompletion(q quest.Quest, stats []quest.DailyStats, p quest.UserProgress, now time.Time) (quest.UserProgress, Notification) {
	today := quest.DateOf(now)
	taskCount := q.TaskCount()

	streak := Streak(stats, now)
	multiplier := StreakMultiplier(streak)
	baseXP := int(float64(taskCount+5) * multiplier)

	dailyCount := 1
	if p.LastQuestCompletionDate == today {
		dailyCount = p.DailyQuestsCompleted + 1
	}
	totalGained := baseXP + DailyBonus(dailyCount)

	next := p
	next.CurrentXP = p.CurrentXP + totalGained
	next.Level = LevelFromXP(next.CurrentXP)
	next.TotalQuestsCompleted = p.TotalQuestsCompleted + 1
	next.TotalTasksCompleted = p.TotalTasksCompleted + taskCount
	next.DailyQuestsCompleted = dailyCount
	next.LastQuestCompletionDate = today

	questMilestone := next.TotalQuestsCompleted / questMilestoneStep * questMilestoneStep
	taskMilestone := next.TotalTasksCompleted / taskMilestoneStep * taskMilestoneStep

	note := pickNotification(p, next, totalGained, questMilestone, taskMilestone)

	// Milestone markers only ever grow on award, so thresholds are never
	// re-notified.
	next.LastMilestones.QuestMilestone = max(questMilestone, p.LastMilestones.QuestMilestone)
	next.LastMilestones.TaskMilestone = max(taskMilestone, p.LastMilestones.TaskMilestone)

	return next, note
}

// pickNotification applies the first-match-wins priority: level-up, then a
// quest milestone crossed exactly at this total, then a newly reached task
// milestone, then a plain XP gain.
func pickNotification(prev, next quest.UserProgress, totalGained, questMilestone, taskMilestone int) Notification {
	switch {
	case next.Level > prev.Level:
		return Notification{
			Type:    NotifyLevelUp,
			Message: fmt.Sprintf("Level up! You reached level %d", next.Level),
			Value:   next.Level,
		}
	case next.TotalQuestsCompleted == questMilestone && questMilestone > prev.LastMilestones.QuestMilestone:
		return Notification{
			Type:    NotifyQuest,
			Message: fmt.Sprintf("%d quests completed!", questMilestone),
			Value:   questMilestone,
		}
	case taskMilestone > 0 && taskMilestone <= next.TotalTasksCompleted && taskMilestone > prev.LastMilestones.TaskMilestone:
		return Notification{
			Type:    NotifyTask,
			Message: fmt.Sprintf("%d tasks completed!", taskMilestone),
			Value:   taskMilestone,
		}
	default:
		return Notification{
			Type:    NotifyXPGain,
			Message: fmt.Sprintf("+%d XP", totalGained),
			Value:   totalGained,
		}
	}
}

// RevertCompletion undoes a quest completion's progression effects. The
// streak-dependent part is recomputed from current stats; the streak at the
// original completion time is not stored, so this is a best-effort inverse,
// not an exact one. All counters floor at zero.
func RevertCompletion(q quest.Quest, stats []quest.DailyStats, p quest.UserProgress, now time.Time) quest.UserProgress {
	today := quest.DateOf(now)
	taskCount := q.TaskCount()

	streak := Streak(stats, now)
	multiplier := StreakMultiplier(streak)
	baseXP := int(float64(taskCount+5) * multiplier)

	lostXP := baseXP
	next := p

	if q.CompletedOn(today) {
		// Same-day reversal also gives back the daily bonus this
		// completion earned, and shrinks the daily counter.
		bonusLost := DailyBonus(p.DailyQuestsCompleted) - DailyBonus(p.DailyQuestsCompleted-1)
		lostXP += bonusLost
		next.DailyQuestsCompleted = max(p.DailyQuestsCompleted-1, 0)
	}

	next.CurrentXP = max(p.CurrentXP-lostXP, 0)
	next.Level = LevelFromXP(next.CurrentXP)
	next.TotalQuestsCompleted = max(p.TotalQuestsCompleted-1, 0)
	next.TotalTasksCompleted = max(p.TotalTasksCompleted-taskCount, 0)

	// Milestone markers shrink to the recomputed thresholds so the next
	// crossing celebrates again.
	questMilestone := next.TotalQuestsCompleted / questMilestoneStep * questMilestoneStep
	taskMilestone := next.TotalTasksCompleted / taskMilestoneStep * taskMilestoneStep
	next.LastMilestones.QuestMilestone = min(questMilestone, p.LastMilestones.QuestMilestone)
	next.LastMilestones.TaskMilestone = min(taskMilestone, p.LastMilestones.TaskMilestone)

	return next
}
