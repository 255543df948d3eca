// Package backup manages timestamped restore points for the quest snapshot.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"sidequest/internal/fsutil"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
	SnapshotFile    = "sidequest.json"
)

// Manager creates, lists, and restores backups under <dataDir>/backups.
// Each backup is a directory named by its creation timestamp holding a copy
// of the snapshot plus a manifest with summary counts.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
}

// Manifest records what a backup contains and which app version wrote it.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo summarizes one backup for listings.
type BackupInfo struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Stats     map[string]int
}

// NewManager creates a backup manager rooted at dataDir.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// Create writes a new backup and returns its name. A missing snapshot still
// produces a valid (empty) restore point, so fresh installs can back up too.
func (m *Manager) Create() (string, error) {
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Stats:      map[string]int{},
	}

	srcPath := filepath.Join(m.dataDir, SnapshotFile)
	if _, err := os.Stat(srcPath); err == nil {
		if err := copySnapshot(srcPath, filepath.Join(backupPath, SnapshotFile)); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("copy %s: %w", SnapshotFile, err)
		}
		manifest.Files = append(manifest.Files, SnapshotFile)
		if stats, err := snapshotStats(srcPath); err == nil {
			manifest.Stats = stats
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err == nil {
		err = fsutil.WriteFileAtomic(filepath.Join(backupPath, ManifestFile), data, 0600)
	}
	if err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return name, nil
}

// List returns all backups, newest first. Directories that are neither
// manifested nor timestamp-named are skipped.
func (m *Manager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.describe(entry.Name())
		if err != nil {
			continue
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// GetBackup returns information about one backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.describe(name)
}

// describe builds a BackupInfo from the manifest, or from the directory
// name alone when the manifest is unreadable.
func (m *Manager) describe(name string) (*BackupInfo, error) {
	backupPath := filepath.Join(m.backupDir, name)

	var manifest Manifest
	data, err := os.ReadFile(filepath.Join(backupPath, ManifestFile))
	if err == nil {
		err = json.Unmarshal(data, &manifest)
	}
	if err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = map[string]int{}
	}

	return &BackupInfo{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Restore replaces the live snapshot with the one in the named backup.
// The pre-restore state is saved as a safety backup first, and the restored
// file must parse as JSON or the restore is reported failed.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("create safety backup: %w", err)
	}

	srcPath := filepath.Join(backupPath, SnapshotFile)
	if _, err := os.Stat(srcPath); os.IsNotExist(err) {
		// Empty backup: restoring it means restoring a fresh install,
		// so the live snapshot is left for the safety backup only.
		return nil
	}

	dstPath := filepath.Join(m.dataDir, SnapshotFile)
	if err := copySnapshot(srcPath, dstPath); err != nil {
		return fmt.Errorf("restore %s (safety backup: %s): %w", SnapshotFile, safetyName, err)
	}

	restored, err := os.ReadFile(dstPath)
	if err == nil {
		var v any
		err = json.Unmarshal(restored, &v)
	}
	if err != nil {
		return fmt.Errorf("restored snapshot is invalid (safety backup: %s): %w", safetyName, err)
	}
	return nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}
	return m.Restore(backups[0].Name)
}

// Delete removes a backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}
	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(backupPath)
}

// Prune deletes all but the keepCount newest backups and returns how many
// were removed.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// validateBackupName rejects anything that is not a bare timestamp name.
// Backup names end up in filepath.Join, so traversal must be impossible.
func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func copySnapshot(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(dst, data, 0600)
}

// snapshotStats reads summary counts out of a snapshot file.
func snapshotStats(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snap struct {
		Quests []struct {
			Tasks []json.RawMessage `json:"tasks"`
		} `json:"quests"`
		QuestLines []json.RawMessage `json:"questLines"`
		DailyStats []json.RawMessage `json:"dailyStats"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	tasks := 0
	for _, q := range snap.Quests {
		tasks += len(q.Tasks)
	}
	return map[string]int{
		"quests":      len(snap.Quests),
		"tasks":       tasks,
		"quest_lines": len(snap.QuestLines),
		"daily_stats": len(snap.DailyStats),
	}, nil
}

// parseBackupName parses a backup directory name into a timestamp. Both the
// second-resolution form (2006-01-02_150405) and the millisecond form
// (2006-01-02_150405_042) are accepted.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		base, err := time.Parse("2006-01-02_150405", name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup name format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return base.Add(time.Duration(ms) * time.Millisecond), nil
	}
	return time.Parse("2006-01-02_150405", name)
}
