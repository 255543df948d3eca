// Package importer provides import functionality for the sidequest app.
// This file implements Taskwarrior JSON import. Tasks are grouped by
// project; each project becomes a quest.
package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sidequest/internal/storage"
)

// TaskwarriorImporter handles importing from Taskwarrior JSON exports.
type TaskwarriorImporter struct{}

// taskwarriorTask represents a task in Taskwarrior's JSON format.
type taskwarriorTask struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Project     string `json:"project"`
	Entry       string `json:"entry"`
	End         string `json:"end"`
	UUID        string `json:"uuid"`
}

// Name returns the importer name.
func (t *TaskwarriorImporter) Name() string {
	return "taskwarrior"
}

// Import reads quests from Taskwarrior JSON and adds them to the store.
func (t *TaskwarriorImporter) Import(reader io.Reader, store *storage.Store) (*ImportResult, error) {
	previews, err := t.parseQuests(reader)
	if err != nil {
		return nil, err
	}
	return importPreviews(previews, store)
}

// Preview returns the quests that would be imported.
func (t *TaskwarriorImporter) Preview(reader io.Reader) ([]PreviewQuest, error) {
	return t.parseQuests(reader)
}

// parseQuests reads and parses Taskwarrior JSON format.
// Supports both JSON array format and newline-delimited JSON (NDJSON).
func (t *TaskwarriorImporter) parseQuests(reader io.Reader) ([]PreviewQuest, error) {
	br := bufio.NewReader(reader)
	prefix, first, err := readFirstNonSpaceByte(br)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty input")
		}
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	r := io.MultiReader(bytes.NewReader(prefix), br)
	var tasks []taskwarriorTask
	if first == '[' {
		tasks, err = parseTaskwarriorJSONArray(r)
	} else {
		tasks, err = parseTaskwarriorNDJSON(r)
	}
	if err != nil {
		return nil, err
	}

	return groupTaskwarrior(tasks), nil
}

const maxTaskwarriorNDJSONLineBytes = 4 << 20 // 4MiB

func readFirstNonSpaceByte(r *bufio.Reader) ([]byte, byte, error) {
	var prefix []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(prefix) == 0 {
				return nil, 0, io.EOF
			}
			return prefix, 0, err
		}
		prefix = append(prefix, b)
		if !isSpaceByte(b) {
			return prefix, b, nil
		}
	}
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func parseTaskwarriorJSONArray(r io.Reader) ([]taskwarriorTask, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("failed to parse JSON array: expected '['")
	}

	var tasks []taskwarriorTask
	var idx int
	for dec.More() {
		idx++
		var tw taskwarriorTask
		if err := dec.Decode(&tw); err != nil {
			return nil, fmt.Errorf("failed to decode task %d: %w", idx, err)
		}
		tasks = append(tasks, tw)
	}

	// Consume closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}

	return tasks, nil
}

func parseTaskwarriorNDJSON(r io.Reader) ([]taskwarriorTask, error) {
	br := bufio.NewReader(r)
	var tasks []taskwarriorTask
	var lineNo int
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > maxTaskwarriorNDJSONLineBytes {
			return nil, fmt.Errorf("taskwarrior NDJSON line %d exceeds %d bytes", lineNo+1, maxTaskwarriorNDJSONLineBytes)
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read NDJSON: %w", err)
		}
		if len(line) == 0 && err == io.EOF {
			break
		}

		lineNo++
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			if err == io.EOF {
				break
			}
			continue
		}

		var tw taskwarriorTask
		if uerr := json.Unmarshal(line, &tw); uerr != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNo, uerr)
		}
		tasks = append(tasks, tw)

		if err == io.EOF {
			break
		}
	}

	if lineNo == 0 {
		return nil, fmt.Errorf("empty input")
	}

	return tasks, nil
}

// groupTaskwarrior buckets tasks into one quest per project, preserving the
// order projects first appear. Deleted and empty tasks are skipped.
func groupTaskwarrior(tasks []taskwarriorTask) []PreviewQuest {
	var order []string
	groups := make(map[string]*PreviewQuest)

	for _, tw := range tasks {
		if tw.Status == "deleted" {
			continue
		}
		text := strings.TrimSpace(tw.Description)
		if text == "" {
			continue
		}

		project := strings.TrimSpace(tw.Project)
		if project == "" {
			project = "Imported"
		}

		pq, ok := groups[project]
		if !ok {
			pq = &PreviewQuest{Title: project}
			groups[project] = pq
			order = append(order, project)
		}
		pq.Tasks = append(pq.Tasks, PreviewTask{
			Description: text,
			Done:        tw.Status == "completed",
		})
	}

	previews := make([]PreviewQuest, 0, len(order))
	for _, project := range order {
		previews = append(previews, *groups[project])
	}
	return previews
}
