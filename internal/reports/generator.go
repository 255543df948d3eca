// Package reports provides progress report generation for the sidequest app.
package reports

import (
	"fmt"
	"sort"
	"time"

	"sidequest/internal/progress"
	"sidequest/internal/quest"
	"sidequest/internal/storage"
)

// Generator creates reports from stored data.
type Generator struct {
	store *storage.Store
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Store) *Generator {
	return &Generator{store: store}
}

// Generate builds a progress report covering the trailing number of days.
// days must be at least 1; the window always ends today.
func (g *Generator) Generate(days int) (*ProgressReport, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be at least 1")
	}

	snap, err := g.store.Load()
	if err != nil {
		return nil, err
	}

	now := g.store.Now()
	today := quest.DateOf(now)
	p := snap.UserProgress

	earned, needed := progress.LevelProgress(p.CurrentXP)
	streak := progress.Streak(snap.DailyStats, now)

	report := &ProgressReport{
		Date:        today,
		Level:       p.Level,
		CurrentXP:   p.CurrentXP,
		XPIntoLevel: earned,
		XPNeeded:    needed,
		Streak:      streak,
		Multiplier:  progress.StreakMultiplier(streak),
		TotalQuests: p.TotalQuestsCompleted,
		TotalTasks:  p.TotalTasksCompleted,
		QuestsToday: questsToday(p, today),
		TasksToday:  progress.TasksCompletedOn(snap.DailyStats, today),
		Milestones: MilestoneState{
			QuestMilestone: p.LastMilestones.QuestMilestone,
			TaskMilestone:  p.LastMilestones.TaskMilestone,
		},
		Board:       boardSummary(snap.Quests),
		QuestLines:  lineSummaries(snap),
		Days:        dayCounts(snap.DailyStats, now, days),
		GeneratedAt: now,
	}
	return report, nil
}

// questsToday reads the daily counter, which only counts for the day it
// was last written.
func questsToday(p quest.UserProgress, today string) int {
	if p.LastQuestCompletionDate != today {
		return 0
	}
	return p.DailyQuestsCompleted
}

func boardSummary(quests []quest.Quest) BoardSummary {
	var b BoardSummary
	for _, q := range quests {
		switch q.Status {
		case quest.StatusAvailable:
			b.Available++
		case quest.StatusTracking:
			b.Tracking++
		case quest.StatusComplete:
			b.Complete++
		}
	}
	return b
}

// lineSummaries counts quests per quest line, sorted by quest count with
// unassigned quests grouped last under an empty name.
func lineSummaries(snap *storage.Snapshot) []LineSummary {
	byID := make(map[string]*LineSummary, len(snap.QuestLines))
	var summaries []*LineSummary
	for _, ql := range snap.QuestLines {
		s := &LineSummary{Name: ql.Name, Color: ql.Color}
		byID[ql.ID] = s
		summaries = append(summaries, s)
	}

	var unassigned LineSummary
	for _, q := range snap.Quests {
		s, ok := byID[q.QuestLine]
		if !ok {
			s = &unassigned
		}
		s.Quests++
		if q.Status == quest.StatusComplete {
			s.Completed++
		}
	}

	out := make([]LineSummary, 0, len(summaries)+1)
	for _, s := range summaries {
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Quests > out[j].Quests
	})
	if unassigned.Quests > 0 {
		out = append(out, unassigned)
	}
	return out
}

// dayCounts returns one entry per day in the window, oldest first, with
// zero counts for days that have no stats record.
func dayCounts(stats []quest.DailyStats, now time.Time, days int) []DayCount {
	counts := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := quest.DateOf(day)
		counts = append(counts, DayCount{
			Date:      date,
			DayOfWeek: day.Weekday().String(),
			Tasks:     progress.TasksCompletedOn(stats, date),
		})
	}
	return counts
}
