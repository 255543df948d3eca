package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sidequest/internal/order"
	"sidequest/internal/progress"
	"sidequest/internal/quest"
)

// Domain operations. Each one loads the snapshot, applies a pure engine
// function, and saves the result, so mutations always run against durable
// state and in dispatch order. A transition whose precondition fails is a
// silent no-op; a missing id is an error, since the caller produced it
// from a stale view.

// AddQuest creates a new quest in the available stage.
func (s *Store) AddQuest(title, questLineID string) (*quest.Quest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("quest title is required")
	}
	if len(title) > maxTitleLen {
		return nil, fmt.Errorf("quest title too long (max %d)", maxTitleLen)
	}

	snap, err := s.Load()
	if err != nil {
		return nil, err
	}
	if questLineID != "" {
		if _, ok := snap.QuestLineByID(questLineID); !ok {
			return nil, fmt.Errorf("quest line not found: %s", questLineID)
		}
	}

	now := s.nowMillis()
	q := quest.Quest{
		ID:           uuid.NewString(),
		Title:        title,
		Tasks:        []quest.Task{},
		Status:       quest.StatusAvailable,
		QuestLine:    questLineID,
		CreatedAt:    now,
		LastModified: now,
		Order:        now,
	}
	snap.Quests = append(snap.Quests, q)

	if err := s.Save(snap); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQuest removes a quest entirely.
func (s *Store) DeleteQuest(questID string) error {
	snap, err := s.Load()
	if err != nil {
		return err
	}
	for i := range snap.Quests {
		if snap.Quests[i].ID == questID {
			snap.Quests = append(snap.Quests[:i], snap.Quests[i+1:]...)
			return s.Save(snap)
		}
	}
	return fmt.Errorf("quest not found: %s", questID)
}

// RenameQuest rewrites a quest's title.
func (s *Store) RenameQuest(questID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("quest title is required")
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("quest title too long (max %d)", maxTitleLen)
	}

	snap, err := s.Load()
	if err != nil {
		return err
	}
	q := snap.Quest(questID)
	if q == nil {
		return fmt.Errorf("quest not found: %s", questID)
	}
	*q = quest.Rename(*q, title, s.nowMillis())
	return s.Save(snap)
}

// SetQuestLine assigns or clears a quest's cosmetic label.
func (s *Store) SetQuestLine(questID, questLineID string) error {
	snap, err := s.Load()
	if err != nil {
		return err
	}
	q := snap.Quest(questID)
	if q == nil {
		return fmt.Errorf("quest not found: %s", questID)
	}
	if questLineID != "" {
		if _, ok := snap.QuestLineByID(questLineID); !ok {
			return fmt.Errorf("quest line not found: %s", questLineID)
		}
	}
	*q = quest.SetQuestLine(*q, questLineID, s.nowMillis())
	return s.Save(snap)
}

// AddQuestLine creates a new cosmetic quest line.
func (s *Store) AddQuestLine(name, color string) (*quest.QuestLine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("quest line name is required")
	}
	if len(name) > maxQuestLineNameLen {
		return nil, fmt.Errorf("quest line name too long (max %d)", maxQuestLineNameLen)
	}

	snap, err := s.Load()
	if err != nil {
		return nil, err
	}
	ql := quest.QuestLine{ID: uuid.NewString(), Name: name, Color: color}
	snap.QuestLines = append(snap.QuestLines, ql)
	if err := s.Save(snap); err != nil {
		return nil, err
	}
	return &ql, nil
}

// AddTask appends a task to a quest. New tasks get a recency order key so
// they surface at the top of the quest's task list.
func (s *Store) AddTask(questID, description string) (*quest.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("task description is required")
	}
	if len(description) > maxTaskDescLen {
		return nil, fmt.Errorf("task description too long (max %d)", maxTaskDescLen)
	}

	snap, err := s.Load()
	if err != nil {
		return nil, err
	}
	q := snap.Quest(questID)
	if q == nil {
		return nil, fmt.Errorf("quest not found: %s", questID)
	}

	now := s.nowMillis()
	t := quest.Task{ID: uuid.NewString(), Description: description, Order: now}
	*q = quest.AddTask(*q, t, now)
	if err := s.Save(snap); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask rewrites a task's description.
func (s *Store) UpdateTask(questID, taskID, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("task description is required")
	}
	if len(description) > maxTaskDescLen {
		return fmt.Errorf("task description too long (max %d)", maxTaskDescLen)
	}

	snap, err := s.Load()
	if err != nil {
		return err
	}
	q := snap.Quest(questID)
	if q == nil {
		return fmt.Errorf("quest not found: %s", questID)
	}
	updated, ok := quest.UpdateTaskDescription(*q, taskID, description, s.nowMillis())
	if !ok {
		return fmt.Errorf("task not found: %s", taskID)
	}
	*q = updated
	return s.Save(snap)
}

// DeleteTask removes a task. Deleting the last task of a tracking quest
// demotes the quest back to available.
func (s *Store) DeleteTask(questID, taskID string) error {
	snap, err := s.Load()
	if err != nil {
		return err
	}
	q := snap.Quest(questID)
	if q == nil {
		return fmt.Errorf("quest not found: %s", questID)
	}
	updated, ok := quest.RemoveTask(*q, taskID, s.nowMillis())
	if !ok {
		return fmt.Errorf("task not found: %s", taskID)
	}
	*q = updated
	return s.Save(snap)
}

// ToggleTask flips a task's completion. Checking a task records one daily
// stats increment; un-checking a task on a complete quest demotes the
// quest to tracking and reverts the XP its completion awarded, the same
// path ResumeTracking takes.
func (s *Store) ToggleTask(questID, taskID string) (quest.ToggleResult, error) {
	snap, err := s.Load()
	if err != nil {
		return quest.ToggleResult{}, err
	}
	q := snap.Quest(questID)
	if q == nil {
		return quest.ToggleResult{}, fmt.Errorf("quest not found: %s", questID)
	}

	before := *q
	now := s.Now()
	updated, res, ok := quest.ToggleTask(*q, taskID, now.UnixMilli())
	if !ok {
		return quest.ToggleResult{}, fmt.Errorf("task not found: %s", taskID)
	}
	*q = updated

	if res.Demoted {
		// Revert against the pre-toggle quest, which still carries its
		// completion timestamp.
		snap.UserProgress = progress.RevertCompletion(before, snap.DailyStats, snap.UserProgress, now)
	}
	if res.BecameDone {
		snap.DailyStats = progress.RecordTaskCompletion(snap.DailyStats, quest.DateOf(now))
	}
	return res, s.Save(snap)
}

// StartTracking moves an available quest into tracking. An ineligible
// quest is a no-op; callers learn whether the transition applied so they
// can gate feedback like the acknowledgment sound.
func (s *Store) StartTracking(questID string) (bool, error) {
	snap, err := s.Load()
	if err != nil {
		return false, err
	}
	q := snap.Quest(questID)
	if q == nil {
		return false, fmt.Errorf("quest not found: %s", questID)
	}
	updated, ok := quest.StartTracking(*q, s.nowMillis())
	if !ok {
		return false, nil
	}
	*q = updated
	return true, s.Save(snap)
}

// MoveToAvailable sends a tracking quest back to available.
func (s *Store) MoveToAvailable(questID string) (bool, error) {
	snap, err := s.Load()
	if err != nil {
		return false, err
	}
	q := snap.Quest(questID)
	if q == nil {
		return false, fmt.Errorf("quest not found: %s", questID)
	}
	updated, ok := quest.MoveToAvailable(*q, s.nowMillis())
	if !ok {
		return false, nil
	}
	*q = updated
	return true, s.Save(snap)
}

// CompleteQuest finishes a tracking quest whose tasks are all done, awards
// XP, and returns the resulting notification. An ineligible quest returns
// a nil notification and no error.
func (s *Store) CompleteQuest(questID string) (*progress.Notification, error) {
	snap, err := s.Load()
	if err != nil {
		return nil, err
	}
	q := snap.Quest(questID)
	if q == nil {
		return nil, fmt.Errorf("quest not found: %s", questID)
	}

	now := s.Now()
	updated, ok := quest.Complete(*q, now.UnixMilli())
	if !ok {
		return nil, nil
	}
	*q = updated

	newProgress, note := progress.AwardCompletion(updated, snap.DailyStats, snap.UserProgress, now)
	snap.UserProgress = newProgress

	if err := s.Save(snap); err != nil {
		return nil, err
	}
	return &note, nil
}

// ResumeTracking sends a completed quest back to tracking and reverts the
// progression its completion awarded (best-effort; the streak is
// recomputed from current stats).
func (s *Store) ResumeTracking(questID string) (bool, error) {
	snap, err := s.Load()
	if err != nil {
		return false, err
	}
	q := snap.Quest(questID)
	if q == nil {
		return false, fmt.Errorf("quest not found: %s", questID)
	}

	before := *q
	now := s.Now()
	updated, ok := quest.Resume(*q, now.UnixMilli())
	if !ok {
		return false, nil
	}
	*q = updated
	snap.UserProgress = progress.RevertCompletion(before, snap.DailyStats, snap.UserProgress, now)
	return true, s.Save(snap)
}

// ReorderQuests moves the dragged quest to just before the target quest.
// Both must share a status group; a cross-group drag is a silent no-op.
// Quests outside the group keep their order keys untouched.
func (s *Store) ReorderQuests(draggedID, targetID string) error {
	snap, err := s.Load()
	if err != nil {
		return err
	}
	dragged := snap.Quest(draggedID)
	target := snap.Quest(targetID)
	if dragged == nil {
		return fmt.Errorf("quest not found: %s", draggedID)
	}
	if target == nil {
		return fmt.Errorf("quest not found: %s", targetID)
	}
	if dragged.Status != target.Status {
		return nil
	}

	group := quest.ByStatus(snap.Quests, dragged.Status)
	entries := make([]order.Entry, 0, len(group))
	for _, q := range group {
		entries = append(entries, order.Entry{ID: q.ID, Pinned: q.Pinned, Order: q.Order})
	}
	renumbered, err := order.Reorder(entries, draggedID, targetID, s.nowMillis())
	if err != nil {
		return err
	}

	byID := make(map[string]int64, len(renumbered))
	for _, e := range renumbered {
		byID[e.ID] = e.Order
	}
	for i := range snap.Quests {
		if o, ok := byID[snap.Quests[i].ID]; ok {
			snap.Quests[i].Order = o
		}
	}
	return s.Save(snap)
}

// ReorderTasks moves a task to just before another task of the same quest.
func (s *Store) ReorderTasks(questID, draggedID, targetID string) error {
	snap, err := s.Load()
	if err != nil {
		return err
	}
	q := snap.Quest(questID)
	if q == nil {
		return fmt.Errorf("quest not found: %s", questID)
	}

	entries := make([]order.Entry, 0, len(q.Tasks))
	for _, t := range q.Tasks {
		entries = append(entries, order.Entry{ID: t.ID, Order: t.Order})
	}
	renumbered, err := order.Reorder(entries, draggedID, targetID, s.nowMillis())
	if err != nil {
		return err
	}

	byID := make(map[string]int64, len(renumbered))
	for _, e := range renumbered {
		byID[e.ID] = e.Order
	}
	for i := range q.Tasks {
		if o, ok := byID[q.Tasks[i].ID]; ok {
			q.Tasks[i].Order = o
		}
	}
	q.LastModified = s.nowMillis()
	return s.Save(snap)
}

// TogglePin pins or unpins a quest. Pinning bumps the order key to now so
// the quest jumps to the top of its status group; unpinning keeps the key.
func (s *Store) TogglePin(questID string) (bool, error) {
	snap, err := s.Load()
	if err != nil {
		return false, err
	}
	q := snap.Quest(questID)
	if q == nil {
		return false, fmt.Errorf("quest not found: %s", questID)
	}
	now := s.nowMillis()
	if q.Pinned {
		*q = quest.Unpin(*q, now)
	} else {
		*q = quest.Pin(*q, order.PinOrder(now))
	}
	return q.Pinned, s.Save(snap)
}

// RolloverDay resets the rolling daily completion counter once the
// calendar day changes. The UI calls this from a periodic tick.
func (s *Store) RolloverDay() (bool, error) {
	snap, err := s.Load()
	if err != nil {
		return false, err
	}
	updated, changed := progress.RolloverDay(snap.UserProgress, quest.DateOf(s.Now()))
	if !changed {
		return false, nil
	}
	snap.UserProgress = updated
	return true, s.Save(snap)
}
