package backup

import (
	"os"
	"path/filepath"
)

// Replace atomically swaps the file at path with content produced by
// write. The callback receives a temporary path in the same directory;
// when it succeeds the temporary file takes over the original's
// permissions and is renamed over it. On any failure the temporary file
// is removed and the original is left untouched.
func Replace(path string, write func(tmpPath string) error) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := write(tmpPath); err != nil {
		return err
	}

	if err := os.Chmod(tmpPath, info.Mode()); err != nil {
		return err
	}

	return rename(tmpPath, path)
}

func rename(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
