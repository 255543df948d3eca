// Package quest defines the core domain model: quests, their tasks, and the
// lifecycle rules that move a quest between available, tracking, and complete.
// Everything here is pure; callers own persistence and side effects.
package quest

import "time"

// Status represents a quest's lifecycle stage.
type Status string

const (
	StatusAvailable Status = "available"
	StatusTracking  Status = "tracking"
	StatusComplete  Status = "complete"
)

// IsValid reports whether s is one of the three known stages.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusTracking, StatusComplete:
		return true
	default:
		return false
	}
}

// Task is a single checklist item belonging to a quest.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	// Order is a numeric sort key; higher sorts earlier. Only relative
	// order matters, values are never required to be contiguous.
	Order int64 `json:"order"`
}

// Quest is a user-defined project composed of ordered tasks.
type Quest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Tasks     []Task `json:"tasks"`
	Status    Status `json:"status"`
	QuestLine string `json:"questLine,omitempty"`
	// Timestamps are milliseconds since epoch (the persisted schema).
	CreatedAt    int64  `json:"createdAt"`
	LastModified int64  `json:"lastModified"`
	CompletedAt  *int64 `json:"completedAt,omitempty"`
	Order        int64  `json:"order"`
	Pinned       bool   `json:"pinned"`
}

// QuestLine is a cosmetic label grouping quests. It carries no behavior.
type QuestLine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DailyStats records completed tasks for one calendar day. Records are
// write-once-per-event: un-completing a task never decrements them.
type DailyStats struct {
	Date           string `json:"date"` // YYYY-MM-DD
	TasksCompleted int    `json:"tasksCompleted"`
}

// Milestones tracks the highest thresholds already notified, so a
// milestone is never celebrated twice.
type Milestones struct {
	QuestMilestone int `json:"questMilestone"`
	TaskMilestone  int `json:"taskMilestone"`
}

// UserProgress is the singleton progression aggregate. Level is derived
// from CurrentXP but stored for display; every mutation keeps them
// consistent.
type UserProgress struct {
	Level                   int        `json:"level"`
	CurrentXP               int        `json:"currentXP"`
	TotalQuestsCompleted    int        `json:"totalQuestsCompleted"`
	TotalTasksCompleted     int        `json:"totalTasksCompleted"`
	DailyQuestsCompleted    int        `json:"dailyQuestsCompleted"`
	LastQuestCompletionDate string     `json:"lastQuestCompletionDate,omitempty"` // YYYY-MM-DD
	LastMilestones          Milestones `json:"lastMilestones"`
}

// DateOf formats a point in time as a stats/progress calendar date.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// TaskCount returns the number of tasks on the quest.
func (q Quest) TaskCount() int {
	return len(q.Tasks)
}

// CompletedTaskCount returns how many of the quest's tasks are done.
func (q Quest) CompletedTaskCount() int {
	n := 0
	for _, t := range q.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// AllTasksDone reports whether the quest has at least one task and every
// task is completed. A quest with zero tasks is never considered done.
func (q Quest) AllTasksDone() bool {
	if len(q.Tasks) == 0 {
		return false
	}
	for _, t := range q.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// Task returns the task with the given id, if present.
func (q Quest) Task(taskID string) (Task, bool) {
	for _, t := range q.Tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return Task{}, false
}

// CompletedOn reports whether the quest was completed on the given
// YYYY-MM-DD date.
func (q Quest) CompletedOn(date string) bool {
	if q.CompletedAt == nil {
		return false
	}
	return DateOf(time.UnixMilli(*q.CompletedAt)) == date
}

// cloneTasks returns a copy of the task slice so transition functions can
// return new quests without sharing backing arrays with their input.
func cloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
