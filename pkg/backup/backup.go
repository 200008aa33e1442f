// Package backup preserves originals before they are modified in place.
// Copies land in a dated directory under the scan root, mirroring each
// file's relative location, and originals are swapped atomically so a
// failed write never leaves a half-written image behind.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mikel-code/image-downscale/internal/utils"
)

// DirName is the backup directory created under the scan root.
const DirName = ".image-backups"

// Manager copies originals into a per-day backup directory before they
// are overwritten.
type Manager struct {
	root string
	dir  string
}

// NewManager creates a Manager rooted at root. Backups for this run go
// to <root>/.image-backups/<YYYY-MM-DD>/. Nothing is created on disk
// until the first Backup call, so dry runs leave no trace.
func NewManager(root string, now time.Time) *Manager {
	return &Manager{
		root: root,
		dir:  filepath.Join(root, DirName, now.Format("2006-01-02")),
	}
}

// Dir returns the dated backup directory for this run.
func (m *Manager) Dir() string {
	return m.dir
}

// Backup copies path into the backup directory, mirroring its location
// relative to the root, and returns the backup path. An existing backup
// is never overwritten; a numeric suffix is added instead, so the first
// backup of the day always remains the untouched original. The copy is
// verified against the source size before the caller may modify the
// original.
func (m *Manager) Backup(path string) (string, error) {
	rel, err := filepath.Rel(m.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("file is outside the backup root: %s", path)
	}

	dest := filepath.Join(m.dir, rel)
	if err := utils.EnsureDir(filepath.Dir(dest)); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	dest = nextFreePath(dest)

	srcInfo, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat original: %w", err)
	}

	if err := copyFile(path, dest, srcInfo.Mode()); err != nil {
		return "", fmt.Errorf("failed to copy to backup: %w", err)
	}

	destInfo, err := os.Stat(dest)
	if err != nil {
		return "", fmt.Errorf("failed to verify backup: %w", err)
	}
	if destInfo.Size() != srcInfo.Size() {
		os.Remove(dest)
		return "", fmt.Errorf("backup size mismatch: %d != %d bytes", destInfo.Size(), srcInfo.Size())
	}

	return dest, nil
}

// Restore copies a backup over the original it was taken from.
func (m *Manager) Restore(backupPath, originalPath string) error {
	info, err := os.Stat(backupPath)
	if err != nil {
		return fmt.Errorf("failed to stat backup: %w", err)
	}

	if err := copyFile(backupPath, originalPath, info.Mode()); err != nil {
		return fmt.Errorf("failed to restore from backup: %w", err)
	}

	return nil
}

// nextFreePath appends a numeric suffix before the extension until the
// path no longer collides with an existing file.
func nextFreePath(dest string) string {
	if !utils.FileExists(dest) {
		return dest
	}

	ext := filepath.Ext(dest)
	base := strings.TrimSuffix(dest, ext)
	for i := 1; ; i++ {
		next := fmt.Sprintf("%s.%d%s", base, i, ext)
		if !utils.FileExists(next) {
			return next
		}
	}
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
