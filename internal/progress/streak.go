package progress

import (
	"time"

	"sidequest/internal/quest"
)

// Streak counts consecutive calendar days ending today with at least one
// completed task. The walk starts at today and stops at the first missing
// or zero-task day, so a day with no record yet means the streak is 0.
func Streak(stats []quest.DailyStats, today time.Time) int {
	byDate := make(map[string]int, len(stats))
	for _, d := range stats {
		byDate[d.Date] = d.TasksCompleted
	}

	streak := 0
	day := today
	for {
		if byDate[quest.DateOf(day)] <= 0 {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// StreakMultiplier maps a streak length to its XP multiplier.
func StreakMultiplier(streak int) float64 {
	switch {
	case streak >= 15:
		return 2.5
	case streak >= 10:
		return 2.0
	case streak >= 5:
		return 1.5
	default:
		return 1.0
	}
}

// DailyBonus returns the bonus XP for completing the nth quest of the day
// (n includes the quest being completed).
func DailyBonus(questsToday int) int {
	switch {
	case questsToday >= 4:
		return 25
	case questsToday == 3:
		return 10
	case questsToday == 2:
		return 5
	default:
		return 0
	}
}

// RecordTaskCompletion increments today's DailyStats record, creating it if
// absent, and returns the new slice. Stats are write-once-per-event:
// nothing ever decrements them.
func RecordTaskCompletion(stats []quest.DailyStats, date string) []quest.DailyStats {
	out := make([]quest.DailyStats, len(stats))
	copy(out, stats)
	for i := range out {
		if out[i].Date == date {
			out[i].TasksCompleted++
			return out
		}
	}
	return append(out, quest.DailyStats{Date: date, TasksCompleted: 1})
}

// TasksCompletedOn returns the recorded completion count for a date.
func TasksCompletedOn(stats []quest.DailyStats, date string) int {
	for _, d := range stats {
		if d.Date == date {
			return d.TasksCompleted
		}
	}
	return 0
}

// RolloverDay resets the rolling daily counter when the stored completion
// date no longer equals today. It reports whether anything changed, so
// callers can skip a save on the common no-op path.
func RolloverDay(p quest.UserProgress, today string) (quest.UserProgress, bool) {
	if p.LastQuestCompletionDate == "" || p.LastQuestCompletionDate == today {
		return p, false
	}
	p.DailyQuestsCompleted = 0
	p.LastQuestCompletionDate = ""
	return p, true
}
