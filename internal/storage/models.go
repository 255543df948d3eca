package storage

import "sidequest/internal/quest"

// Snapshot is the canonical persisted record: everything the app knows,
// serialized as one JSON document. The storage layer owns the canonical
// copy; engines receive slices of it and return new values.
type Snapshot struct {
	Quests       []quest.Quest      `json:"quests"`
	QuestLines   []quest.QuestLine  `json:"questLines"`
	DailyStats   []quest.DailyStats `json:"dailyStats"`
	UserProgress quest.UserProgress `json:"userProgress"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Quests:       make([]quest.Quest, len(s.Quests)),
		QuestLines:   make([]quest.QuestLine, len(s.QuestLines)),
		DailyStats:   make([]quest.DailyStats, len(s.DailyStats)),
		UserProgress: s.UserProgress,
	}
	copy(out.QuestLines, s.QuestLines)
	copy(out.DailyStats, s.DailyStats)
	for i, q := range s.Quests {
		tasks := make([]quest.Task, len(q.Tasks))
		copy(tasks, q.Tasks)
		q.Tasks = tasks
		out.Quests[i] = q
	}
	return out
}

// Quest returns a pointer to the quest with the given id within the
// snapshot, or nil when no such quest exists.
func (s *Snapshot) Quest(id string) *quest.Quest {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			return &s.Quests[i]
		}
	}
	return nil
}

// QuestLineByID returns the quest line with the given id, if present.
func (s *Snapshot) QuestLineByID(id string) (quest.QuestLine, bool) {
	for _, ql := range s.QuestLines {
		if ql.ID == id {
			return ql, true
		}
	}
	return quest.QuestLine{}, false
}
