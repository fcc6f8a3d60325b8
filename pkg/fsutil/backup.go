package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupSuffix is appended to a file name to form its backup.
const BackupSuffix = ".bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies path to its sidecar backup, replacing an older backup.
// It returns the backup path, or "" when path does not exist.
func Backup(ctx context.Context, path string) (string, error) {
	stat, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	content, err := ReadPage(ctx, path)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	backup := BackupPath(path)
	if err := WriteAtomic(ctx, backup, content, stat.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backup, nil
}

// ReplaceWithBackup writes content to path atomically, first backing up
// any existing file. It returns the backup path, or "" when none was made.
func ReplaceWithBackup(ctx context.Context, path string, content []byte, mode os.FileMode) (string, error) {
	backup, err := Backup(ctx, path)
	if err != nil {
		return "", err
	}
	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return backup, err
	}
	return backup, nil
}
