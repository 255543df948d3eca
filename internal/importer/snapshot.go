// Package importer provides import functionality for the sidequest app.
// This file implements import of exported snapshot JSON, current or legacy.
package importer

import (
	"fmt"
	"io"
	"time"

	"sidequest/internal/storage"
)

// SnapshotImporter handles importing a full snapshot export. Collections
// present in the file replace the stored ones wholesale; absent collections
// are left untouched.
type SnapshotImporter struct{}

// Name returns the importer name.
func (s *SnapshotImporter) Name() string {
	return "snapshot"
}

// Import reads a snapshot export and merges it into the store.
func (s *SnapshotImporter) Import(reader io.Reader, store *storage.Store) (*ImportResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	snap, err := storage.Migrate(data, time.Now().UnixMilli())
	if err != nil {
		return nil, err
	}

	if err := store.ImportSnapshot(data); err != nil {
		return nil, err
	}

	result := &ImportResult{Quests: len(snap.Quests), Replaced: true}
	for _, q := range snap.Quests {
		result.Tasks += len(q.Tasks)
	}
	return result, nil
}

// Preview returns the quests that the snapshot would install.
func (s *SnapshotImporter) Preview(reader io.Reader) ([]PreviewQuest, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	snap, err := storage.Migrate(data, time.Now().UnixMilli())
	if err != nil {
		return nil, err
	}

	previews := make([]PreviewQuest, 0, len(snap.Quests))
	for _, q := range snap.Quests {
		pq := PreviewQuest{Title: q.Title, Status: string(q.Status)}
		for _, t := range q.Tasks {
			pq.Tasks = append(pq.Tasks, PreviewTask{Description: t.Description, Done: t.Completed})
		}
		previews = append(previews, pq)
	}
	return previews, nil
}
