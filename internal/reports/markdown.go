// Package reports provides progress report generation for the sidequest app.
// This file renders reports as Markdown.
package reports

import (
	"fmt"
	"strings"
)

const xpBarWidth = 20

// FormatMarkdown formats a progress report as human-readable Markdown.
func FormatMarkdown(report *ProgressReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Progress Report - %s\n\n", report.Date)

	fmt.Fprintf(&b, "## Level %d\n\n", report.Level)
	fmt.Fprintf(&b, "```\n%s %d/%d XP\n```\n\n", xpBar(report.XPIntoLevel, report.XPNeeded), report.XPIntoLevel, report.XPNeeded)
	fmt.Fprintf(&b, "- Total XP: %d\n", report.CurrentXP)
	fmt.Fprintf(&b, "- Streak: %s (x%.1f)\n", pluralDays(report.Streak), report.Multiplier)
	fmt.Fprintf(&b, "- Quests completed: %d (today: %d)\n", report.TotalQuests, report.QuestsToday)
	fmt.Fprintf(&b, "- Tasks completed: %d (today: %d)\n", report.TotalTasks, report.TasksToday)
	if report.Milestones.QuestMilestone > 0 || report.Milestones.TaskMilestone > 0 {
		fmt.Fprintf(&b, "- Milestones: %d quests, %d tasks\n", report.Milestones.QuestMilestone, report.Milestones.TaskMilestone)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Board\n\n")
	fmt.Fprintf(&b, "| Available | Tracking | Complete |\n")
	fmt.Fprintf(&b, "|-----------|----------|----------|\n")
	fmt.Fprintf(&b, "| %d | %d | %d |\n\n", report.Board.Available, report.Board.Tracking, report.Board.Complete)

	if len(report.QuestLines) > 0 {
		fmt.Fprintf(&b, "## Quest Lines\n\n")
		for _, line := range report.QuestLines {
			name := line.Name
			if name == "" {
				name = "(unassigned)"
			}
			fmt.Fprintf(&b, "- %s: %d/%d complete\n", name, line.Completed, line.Quests)
		}
		b.WriteString("\n")
	}

	if len(report.Days) > 0 {
		fmt.Fprintf(&b, "## Last %d Days\n\n", len(report.Days))
		for _, day := range report.Days {
			fmt.Fprintf(&b, "- %s (%s): %s\n", day.Date, day.DayOfWeek[:3], taskBar(day.Tasks))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n*Generated at %s*\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}

// xpBar renders a fixed-width progress bar toward the next level.
func xpBar(earned, needed int) string {
	filled := 0
	if needed > 0 {
		filled = earned * xpBarWidth / needed
	}
	if filled > xpBarWidth {
		filled = xpBarWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", xpBarWidth-filled) + "]"
}

// taskBar renders a day's task count as a small histogram bar.
func taskBar(tasks int) string {
	if tasks == 0 {
		return "·"
	}
	width := tasks
	if width > 20 {
		width = 20
	}
	return fmt.Sprintf("%s %d", strings.Repeat("█", width), tasks)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
