// Package importer provides import functionality for the sidequest app.
// This file implements Todoist CSV import. Each project becomes a quest
// and its tasks become that quest's task list.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"sidequest/internal/storage"
)

// TodoistImporter handles importing from Todoist CSV exports.
type TodoistImporter struct{}

// Name returns the importer name.
func (t *TodoistImporter) Name() string {
	return "todoist"
}

// Import reads quests from Todoist CSV and adds them to the store.
func (t *TodoistImporter) Import(reader io.Reader, store *storage.Store) (*ImportResult, error) {
	previews, err := t.parseQuests(reader)
	if err != nil {
		return nil, err
	}
	return importPreviews(previews, store)
}

// Preview returns the quests that would be imported.
func (t *TodoistImporter) Preview(reader io.Reader) ([]PreviewQuest, error) {
	return t.parseQuests(reader)
}

// parseQuests reads the Todoist CSV format and groups task rows by project.
func (t *TodoistImporter) parseQuests(reader io.Reader) ([]PreviewQuest, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	// Read header
	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Find column indices
	colIndex := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff") // UTF-8 BOM (common in some exports)
		}
		colIndex[strings.ToUpper(strings.TrimSpace(col))] = i
	}

	// Verify required columns
	requiredCols := []string{"TYPE", "CONTENT"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var order []string
	groups := make(map[string]*PreviewQuest)

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		// Skip non-task rows (notes, sections)
		typeIdx := colIndex["TYPE"]
		if typeIdx >= len(record) || strings.ToLower(record[typeIdx]) != "task" {
			continue
		}

		var text string
		if idx, ok := colIndex["CONTENT"]; ok && idx < len(record) {
			text = strings.TrimSpace(record[idx])
		}
		if text == "" {
			continue
		}

		project := "Imported"
		if idx, ok := colIndex["PROJECT"]; ok && idx < len(record) {
			if p := strings.TrimSpace(record[idx]); p != "" {
				project = p
			}
		}

		done := false
		if idx, ok := colIndex["CHECKED"]; ok && idx < len(record) {
			done = record[idx] == "1" || strings.EqualFold(record[idx], "true")
		}

		pq, ok := groups[project]
		if !ok {
			pq = &PreviewQuest{Title: project}
			groups[project] = pq
			order = append(order, project)
		}
		pq.Tasks = append(pq.Tasks, PreviewTask{Description: text, Done: done})
	}

	previews := make([]PreviewQuest, 0, len(order))
	for _, project := range order {
		previews = append(previews, *groups[project])
	}
	return previews, nil
}
