package quest

import (
	"sort"
	"strings"
)

// SortMode selects a display-only ordering for a quest list. Only
// SortManual reflects the persisted pin/order keys; the other modes are
// computed on demand and never mutate a quest's Order.
type SortMode string

const (
	SortManual       SortMode = "manual"
	SortNewest       SortMode = "newest"
	SortOldest       SortMode = "oldest"
	SortMostTasks    SortMode = "most-tasks"
	SortFewestTasks  SortMode = "fewest-tasks"
	SortAlphabetical SortMode = "alphabetical"
)

// IsValid reports whether m is a known sort mode.
func (m SortMode) IsValid() bool {
	switch m {
	case SortManual, SortNewest, SortOldest, SortMostTasks, SortFewestTasks, SortAlphabetical:
		return true
	default:
		return false
	}
}

// NextSortMode cycles through the sort modes in display order.
func NextSortMode(m SortMode) SortMode {
	order := []SortMode{SortManual, SortNewest, SortOldest, SortMostTasks, SortFewestTasks, SortAlphabetical}
	for i, mode := range order {
		if mode == m {
			return order[(i+1)%len(order)]
		}
	}
	return SortManual
}

// SortQuests returns a new slice ordered by the given mode. Manual mode
// sorts pinned-first then by descending order key; every other mode is a
// plain cosmetic sort with creation time as tiebreaker.
func SortQuests(quests []Quest, mode SortMode) []Quest {
	sorted := make([]Quest, len(quests))
	copy(sorted, quests)

	switch mode {
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt > sorted[j].CreatedAt
		})
	case SortOldest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt < sorted[j].CreatedAt
		})
	case SortMostTasks:
		sort.SliceStable(sorted, func(i, j int) bool {
			return len(sorted[i].Tasks) > len(sorted[j].Tasks)
		})
	case SortFewestTasks:
		sort.SliceStable(sorted, func(i, j int) bool {
			return len(sorted[i].Tasks) < len(sorted[j].Tasks)
		})
	case SortAlphabetical:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	default: // SortManual
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i], sorted[j]
			if a.Pinned != b.Pinned {
				return a.Pinned
			}
			return a.Order > b.Order
		})
	}
	return sorted
}

// SortTasks returns the quest's tasks in display order: descending by the
// task order key.
func SortTasks(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order > sorted[j].Order
	})
	return sorted
}

// ByStatus filters quests to one status group, preserving input order.
func ByStatus(quests []Quest, status Status) []Quest {
	var out []Quest
	for _, q := range quests {
		if q.Status == status {
			out = append(out, q)
		}
	}
	return out
}
