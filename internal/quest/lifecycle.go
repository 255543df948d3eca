package quest

// Lifecycle transitions. Each function takes a quest by value and returns a
// new quest plus a flag reporting whether the transition applied. Invalid
// requests (wrong stage, missing task) are no-ops returning the input
// unchanged with ok=false; the UI is expected to disable those actions
// preemptively, so a rejection is not a user-facing error.

// StartTracking moves an available quest into tracking. A quest with zero
// tasks cannot be tracked.
func StartTracking(q Quest, now int64) (Quest, bool) {
	if q.Status != StatusAvailable || len(q.Tasks) == 0 {
		return q, false
	}
	q.Status = StatusTracking
	q.LastModified = now
	return q, true
}

// MoveToAvailable reverts a tracking quest back to available. There is no
// task-emptiness check on the way back.
func MoveToAvailable(q Quest, now int64) (Quest, bool) {
	if q.Status != StatusTracking {
		return q, false
	}
	q.Status = StatusAvailable
	q.LastModified = now
	return q, true
}

// Complete finishes a tracking quest. It requires every task to be done and
// at least one task to exist; available quests cannot jump straight to
// complete.
func Complete(q Quest, now int64) (Quest, bool) {
	if q.Status != StatusTracking || !q.AllTasksDone() {
		return q, false
	}
	q.Status = StatusComplete
	completedAt := now
	q.CompletedAt = &completedAt
	q.LastModified = now
	return q, true
}

// Resume sends a completed quest back to tracking and clears its
// completion timestamp. The caller is responsible for reverting the XP the
// completion awarded.
func Resume(q Quest, now int64) (Quest, bool) {
	if q.Status != StatusComplete {
		return q, false
	}
	q.Status = StatusTracking
	q.CompletedAt = nil
	q.LastModified = now
	return q, true
}

// ToggleResult describes what a task toggle did beyond flipping the flag.
type ToggleResult struct {
	// BecameDone is true when the task went from unchecked to checked;
	// the caller records one DailyStats increment for it.
	BecameDone bool
	// Demoted is true when un-checking a task forced a complete quest
	// back to tracking. The caller decides whether to revert progression.
	Demoted bool
}

// ToggleTask flips the completion flag of one task. Un-checking a task on a
// complete quest implicitly demotes the quest to tracking and clears its
// completion timestamp. Tasks keep their Order value across the toggle.
func ToggleTask(q Quest, taskID string, now int64) (Quest, ToggleResult, bool) {
	idx := -1
	for i := range q.Tasks {
		if q.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return q, ToggleResult{}, false
	}

	q.Tasks = cloneTasks(q.Tasks)
	q.Tasks[idx].Completed = !q.Tasks[idx].Completed
	q.LastModified = now

	res := ToggleResult{BecameDone: q.Tasks[idx].Completed}
	if !q.Tasks[idx].Completed && q.Status == StatusComplete {
		q.Status = StatusTracking
		q.CompletedAt = nil
		res.Demoted = true
	}
	return q, res, true
}

// AddTask appends a new task to the quest.
func AddTask(q Quest, task Task, now int64) Quest {
	q.Tasks = append(cloneTasks(q.Tasks), task)
	q.LastModified = now
	return q
}

// RemoveTask deletes a task. Deleting the last task of a tracking quest
// forces the quest back to available (a quest with zero tasks can never be
// tracking).
func RemoveTask(q Quest, taskID string, now int64) (Quest, bool) {
	idx := -1
	for i := range q.Tasks {
		if q.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return q, false
	}

	tasks := cloneTasks(q.Tasks)
	q.Tasks = append(tasks[:idx], tasks[idx+1:]...)
	q.LastModified = now
	if q.Status == StatusTracking && len(q.Tasks) == 0 {
		q.Status = StatusAvailable
	}
	return q, true
}

// UpdateTaskDescription rewrites a task's text.
func UpdateTaskDescription(q Quest, taskID, description string, now int64) (Quest, bool) {
	idx := -1
	for i := range q.Tasks {
		if q.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return q, false
	}
	q.Tasks = cloneTasks(q.Tasks)
	q.Tasks[idx].Description = description
	q.LastModified = now
	return q, true
}

// Rename changes the quest title.
func Rename(q Quest, title string, now int64) Quest {
	q.Title = title
	q.LastModified = now
	return q
}

// SetQuestLine assigns (or clears) the quest's cosmetic quest line label.
func SetQuestLine(q Quest, questLineID string, now int64) Quest {
	q.QuestLine = questLineID
	q.LastModified = now
	return q
}

// Pin marks the quest pinned and bumps its order key to now so it floats
// to the top of its status group without needing a second sort key.
func Pin(q Quest, now int64) Quest {
	q.Pinned = true
	q.Order = now
	q.LastModified = now
	return q
}

// Unpin clears the pinned flag. The existing order key is preserved.
func Unpin(q Quest, now int64) Quest {
	q.Pinned = false
	q.LastModified = now
	return q
}
