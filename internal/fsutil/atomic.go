// Package fsutil holds the file-writing primitives the snapshot and backup
// layers are built on.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// WriteFileAtomic replaces the file at path in one step: the data goes to a
// temp file in the same directory, gets fsynced, and is renamed over the
// destination. Readers never observe a half-written snapshot.
//
// Rename-over-existing is atomic on Unix. Windows refuses it, so there the
// old file is removed first, which leaves a small non-atomic window.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpPath, err := writeTemp(dir, filepath.Base(path), data, perm)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if runtime.GOOS == "windows" && replaceOnWindows(tmpPath, path) {
			return syncDir(dir)
		}
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, path, err)
	}
	return syncDir(dir)
}

// writeTemp writes data to a fresh temp file in dir and returns its path.
// The temp file is removed on any failure.
func writeTemp(dir, base string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	fail := func(step string, err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%s %s: %w", step, tmpPath, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		return fail("chmod", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("fsync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close %s: %w", tmpPath, err)
	}
	return tmpPath, nil
}

// replaceOnWindows retries the rename after deleting the destination.
func replaceOnWindows(tmpPath, path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	if err := os.Remove(path); err != nil {
		return false
	}
	return os.Rename(tmpPath, path) == nil
}

// BestEffortBackup copies the current contents of path to path.bak. Failures
// are swallowed; losing a backup must never fail the write that follows.
func BestEffortBackup(path string, perm os.FileMode) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = WriteFileAtomic(path+".bak", data, perm)
}

// syncDir flushes the directory entry so the rename survives a crash. Not
// all filesystems support it, so errors are ignored.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return nil
	}
	defer f.Close()
	_ = f.Sync()
	return nil
}
