// Package importer provides import functionality for migrating quests from
// other task tools and from exported snapshots.
package importer

import (
	"fmt"
	"io"

	"sidequest/internal/quest"
	"sidequest/internal/storage"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Quests   int      // Number of quests created
	Tasks    int      // Number of tasks created
	Skipped  int      // Number of skipped items (notes, empty rows, etc.)
	Errors   []string // Error messages for failed imports
	Replaced bool     // True when the import replaced the snapshot wholesale
}

// PreviewTask represents a task preview before import.
type PreviewTask struct {
	Description string
	Done        bool
}

// PreviewQuest represents a quest preview before import.
type PreviewQuest struct {
	Title  string
	Status string
	Tasks  []PreviewTask
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads quests from the reader and adds them to the store.
	Import(reader io.Reader, store *storage.Store) (*ImportResult, error)

	// Preview reads quests from the reader without importing.
	Preview(reader io.Reader) ([]PreviewQuest, error)

	// Name returns the importer name (e.g., "snapshot", "todoist").
	Name() string
}

// GetImporter returns the appropriate importer for the given format.
func GetImporter(format string) Importer {
	switch format {
	case "snapshot":
		return &SnapshotImporter{}
	case "todoist":
		return &TodoistImporter{}
	case "taskwarrior":
		return &TaskwarriorImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"snapshot", "todoist", "taskwarrior"}
}

// importPreviews adds parsed quests to the store. Tasks imported as done
// are stored done without feeding stats or progression.
func importPreviews(previews []PreviewQuest, store *storage.Store) (*ImportResult, error) {
	result := &ImportResult{}

	for _, pq := range previews {
		q := quest.Quest{
			Title:  pq.Title,
			Status: quest.StatusAvailable,
		}
		for _, pt := range pq.Tasks {
			q.Tasks = append(q.Tasks, quest.Task{
				Description: pt.Description,
				Completed:   pt.Done,
			})
		}

		added, err := store.AddImportedQuest(q)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", pq.Title, err))
			continue
		}
		result.Quests++
		result.Tasks += len(added.Tasks)
	}

	return result, nil
}
