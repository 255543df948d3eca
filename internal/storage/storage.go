// Package storage persists the app snapshot as a single JSON document and
// exposes the mutating operations that compose the quest, progress, and
// order engines. Writes are atomic, keep a best-effort .bak, and skip
// no-op saves so a freshly loaded or seeded snapshot is never clobbered
// by a derived save of identical content.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sidequest/internal/fsutil"
)

const (
	dataFileName = "sidequest.json"

	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	maxTitleLen         = 120
	maxTaskDescLen      = 200
	maxQuestLineNameLen = 60
)

// Store handles all snapshot I/O and domain operations.
type Store struct {
	dataDir string
	onSave  func(data []byte)
	now     func() time.Time

	// Serialized bytes of the last loaded or saved snapshot, used to
	// suppress saves that would rewrite identical content.
	lastWritten []byte
}

// New creates a Store rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dataDir: dataDir, now: time.Now}, nil
}

// SetNowFunc overrides the clock used by time-dependent operations.
// Passing nil resets it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the store clock.
func (s *Store) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *Store) nowMillis() int64 {
	return s.Now().UnixMilli()
}

// SetOnSave registers a callback invoked with the serialized snapshot
// after each effective save. This feeds the debounced remote sync.
func (s *Store) SetOnSave(fn func(data []byte)) {
	s.onSave = fn
}

// DataDir returns the path of the data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

// DataFile returns the path of the snapshot file.
func (s *Store) DataFile() string {
	return filepath.Join(s.dataDir, dataFileName)
}

// Load reads the snapshot from disk, migrating legacy records to the
// current schema. On first run it writes and returns the seed dataset
// instead of an empty state. A corrupt file is recovered from its .bak
// when possible; otherwise the broken file is set aside and an error is
// returned without resetting anything.
func (s *Store) Load() (*Snapshot, error) {
	path := s.DataFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			snap := Seed(s.Now())
			if err := s.write(snap); err != nil {
				return nil, err
			}
			return snap, nil
		}
		return nil, fmt.Errorf("read %s: %w", dataFileName, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recoverCorrupt(fmt.Errorf("%s is empty", dataFileName))
	}

	snap, err := Migrate(data, s.nowMillis())
	if err != nil {
		return s.recoverCorrupt(fmt.Errorf("parse %s: %w", dataFileName, err))
	}

	// Remember what a no-op save would look like.
	if serialized, err := marshalSnapshot(snap); err == nil {
		s.lastWritten = serialized
	}
	return snap, nil
}

func (s *Store) recoverCorrupt(cause error) (*Snapshot, error) {
	path := s.DataFile()

	bakData, bakErr := os.ReadFile(path + ".bak")
	if bakErr == nil && len(bytes.TrimSpace(bakData)) > 0 {
		if snap, err := Migrate(bakData, s.nowMillis()); err == nil {
			corruptPath := fmt.Sprintf("%s.corrupt.%s", path, s.Now().Format("20060102-150405"))
			_ = os.Rename(path, corruptPath)
			_ = s.write(snap)
			return snap, fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), dataFileName)
		}
	}

	// No usable backup: set the broken file aside and report. The caller
	// keeps whatever state it already had.
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, s.Now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)
	return nil, fmt.Errorf("%s (original moved to %s)", cause.Error(), corruptPath)
}

// Save writes the full snapshot atomically. A save whose serialized bytes
// match the last loaded or saved snapshot is suppressed, which guarantees
// the first derived save after load never overwrites fresh data with a
// stale render state.
func (s *Store) Save(snap *Snapshot) error {
	data, err := marshalSnapshot(snap)
	if err != nil {
		return err
	}
	if s.lastWritten != nil && bytes.Equal(data, s.lastWritten) {
		return nil
	}
	return s.writeBytes(data)
}

func (s *Store) write(snap *Snapshot) error {
	data, err := marshalSnapshot(snap)
	if err != nil {
		return err
	}
	return s.writeBytes(data)
}

func (s *Store) writeBytes(data []byte) error {
	path := s.DataFile()

	// Keep a best-effort backup before overwriting.
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", dataFileName, err)
	}
	s.lastWritten = data

	if s.onSave != nil {
		s.onSave(data)
	}
	return nil
}

func marshalSnapshot(snap *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", dataFileName, err)
	}
	return data, nil
}

// ExportJSON returns the current snapshot as its byte-identical
// serialization, loading from disk first.
func (s *Store) ExportJSON() ([]byte, error) {
	snap, err := s.Load()
	if err != nil {
		return nil, err
	}
	return marshalSnapshot(snap)
}
