package storage

import (
	"encoding/json"

	"sidequest/internal/progress"
	"sidequest/internal/quest"
)

// Wire-format records tolerate every schema version we have shipped.
// Pointer fields distinguish "absent" from zero so migration defaults only
// apply to genuinely missing data.

type taskRecord struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Order       *int64 `json:"order"`
	// Legacy per-task starred flag; dropped with no successor.
	Starred *bool `json:"starred,omitempty"`
}

type questRecord struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Tasks        []taskRecord `json:"tasks"`
	Status       *string      `json:"status"`
	Completed    *bool        `json:"completed"` // legacy boolean lifecycle
	QuestLine    string       `json:"questLine"`
	CreatedAt    int64        `json:"createdAt"`
	LastModified *int64       `json:"lastModified"`
	CompletedAt  *int64       `json:"completedAt"`
	Order        *int64       `json:"order"`
	Pinned       *bool        `json:"pinned"`
	Starred      *bool        `json:"starred,omitempty"` // legacy, dropped
}

type snapshotRecord struct {
	Quests       []questRecord       `json:"quests"`
	QuestLines   []quest.QuestLine   `json:"questLines"`
	DailyStats   []quest.DailyStats  `json:"dailyStats"`
	UserProgress *quest.UserProgress `json:"userProgress"`
}

// Migrate parses a persisted or imported record and normalizes every quest
// to the current schema. Running it on an already-migrated record is a
// no-op beyond parsing, so migration is idempotent.
func Migrate(data []byte, now int64) (*Snapshot, error) {
	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return migrateRecord(&rec, now), nil
}

func migrateRecord(rec *snapshotRecord, now int64) *Snapshot {
	snap := &Snapshot{
		Quests:     make([]quest.Quest, 0, len(rec.Quests)),
		QuestLines: rec.QuestLines,
		DailyStats: rec.DailyStats,
	}
	if snap.QuestLines == nil {
		snap.QuestLines = []quest.QuestLine{}
	}
	if snap.DailyStats == nil {
		snap.DailyStats = []quest.DailyStats{}
	}

	for i, qr := range rec.Quests {
		snap.Quests = append(snap.Quests, migrateQuest(qr, i, now))
	}

	if rec.UserProgress != nil {
		snap.UserProgress = *rec.UserProgress
	}
	snap.UserProgress = normalizeProgress(snap.UserProgress)
	return snap
}

func migrateQuest(qr questRecord, index int, now int64) quest.Quest {
	q := quest.Quest{
		ID:          qr.ID,
		Title:       qr.Title,
		QuestLine:   qr.QuestLine,
		CreatedAt:   qr.CreatedAt,
		CompletedAt: qr.CompletedAt,
	}

	// Status defaults from the legacy boolean when absent.
	switch {
	case qr.Status != nil && quest.Status(*qr.Status).IsValid():
		q.Status = quest.Status(*qr.Status)
	case qr.Completed != nil && *qr.Completed:
		q.Status = quest.StatusComplete
	default:
		q.Status = quest.StatusAvailable
	}

	if qr.Order != nil {
		q.Order = *qr.Order
	} else {
		q.Order = int64(index)
	}
	if qr.Pinned != nil {
		q.Pinned = *qr.Pinned
	}
	switch {
	case qr.LastModified != nil:
		q.LastModified = *qr.LastModified
	case qr.CreatedAt != 0:
		q.LastModified = qr.CreatedAt
	default:
		q.LastModified = now
	}

	// CompletedAt is set iff the quest is complete. Legacy complete
	// quests without one borrow their last-modified time.
	if q.Status != quest.StatusComplete {
		q.CompletedAt = nil
	} else if q.CompletedAt == nil {
		completedAt := q.LastModified
		q.CompletedAt = &completedAt
	}

	q.Tasks = make([]quest.Task, 0, len(qr.Tasks))
	for i, tr := range qr.Tasks {
		t := quest.Task{
			ID:          tr.ID,
			Description: tr.Description,
			Completed:   tr.Completed,
		}
		if tr.Order != nil {
			t.Order = *tr.Order
		} else {
			t.Order = int64(i)
		}
		q.Tasks = append(q.Tasks, t)
	}
	return q
}

// normalizeProgress re-derives the stored level from XP (the two must stay
// consistent) and floors every counter at zero.
func normalizeProgress(p quest.UserProgress) quest.UserProgress {
	p.CurrentXP = max(p.CurrentXP, 0)
	p.Level = progress.LevelFromXP(p.CurrentXP)
	p.TotalQuestsCompleted = max(p.TotalQuestsCompleted, 0)
	p.TotalTasksCompleted = max(p.TotalTasksCompleted, 0)
	p.DailyQuestsCompleted = max(p.DailyQuestsCompleted, 0)
	p.LastMilestones.QuestMilestone = max(p.LastMilestones.QuestMilestone, 0)
	p.LastMilestones.TaskMilestone = max(p.LastMilestones.TaskMilestone, 0)
	return p
}
