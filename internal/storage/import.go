package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sidequest/internal/quest"
)

// ImportSnapshot merges an exported record (current or legacy shape) into
// the stored snapshot. Top-level keys absent from the import leave the
// corresponding collection unchanged; present keys replace it wholesale
// after migration defaulting. A malformed payload changes nothing.
func (s *Store) ImportSnapshot(data []byte) error {
	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parse import: %w", err)
	}

	snap, err := s.Load()
	if err != nil {
		return err
	}

	now := s.nowMillis()
	if rec.Quests != nil {
		quests := make([]quest.Quest, 0, len(rec.Quests))
		for i, qr := range rec.Quests {
			quests = append(quests, migrateQuest(qr, i, now))
		}
		snap.Quests = quests
	}
	if rec.QuestLines != nil {
		snap.QuestLines = rec.QuestLines
	}
	if rec.DailyStats != nil {
		snap.DailyStats = rec.DailyStats
	}
	if rec.UserProgress != nil {
		snap.UserProgress = normalizeProgress(*rec.UserProgress)
	}

	return s.Save(snap)
}

// AddImportedQuest inserts a fully-formed quest, filling in any blank
// identity or timestamp fields. Unlike task toggling, tasks imported as
// done do not feed daily stats or progression.
func (s *Store) AddImportedQuest(q quest.Quest) (*quest.Quest, error) {
	q.Title = strings.TrimSpace(q.Title)
	if q.Title == "" {
		return nil, fmt.Errorf("quest title is required")
	}
	if len(q.Title) > maxTitleLen {
		return nil, fmt.Errorf("quest title too long (max %d)", maxTitleLen)
	}
	if !q.Status.IsValid() {
		q.Status = quest.StatusAvailable
	}

	snap, err := s.Load()
	if err != nil {
		return nil, err
	}

	now := s.nowMillis()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = now
	}
	if q.LastModified == 0 {
		q.LastModified = now
	}
	if q.Order == 0 {
		q.Order = now
	}
	if q.Tasks == nil {
		q.Tasks = []quest.Task{}
	}
	for i := range q.Tasks {
		if q.Tasks[i].ID == "" {
			q.Tasks[i].ID = uuid.NewString()
		}
		if q.Tasks[i].Order == 0 {
			q.Tasks[i].Order = now - int64(i)
		}
	}
	snap.Quests = append(snap.Quests, q)

	if err := s.Save(snap); err != nil {
		return nil, err
	}
	return &q, nil
}
