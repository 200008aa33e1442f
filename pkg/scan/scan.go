// Package scan walks directory trees for images that exceed the size or
// dimension thresholds and are worth downscaling.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mikel-code/image-downscale/internal/utils"
	"github.com/mikel-code/image-downscale/pkg/imageio"
	"github.com/mikel-code/image-downscale/pkg/transform"
)

// Candidate is an immutable snapshot of an image file taken at scan
// time: where it lives, how big it is on disk, and its pixel dimensions.
type Candidate struct {
	Path    string // absolute path
	RelPath string // path relative to the scan root, for display
	Size    int64
	Width   int
	Height  int
	Format  string
}

// TargetSize returns the dimensions the candidate would have after
// downscaling to maxWidth.
func (c Candidate) TargetSize(maxWidth int) (int, int) {
	return transform.TargetSize(c.Width, c.Height, maxWidth)
}

// EstimatedBytes projects the file size after downscaling by scaling the
// current size with the pixel-area ratio. It is a coarse estimate for
// display only; compression does not scale linearly with area.
func (c Candidate) EstimatedBytes(maxWidth int) int64 {
	targetW, targetH := c.TargetSize(maxWidth)
	if targetW == c.Width && targetH == c.Height {
		return c.Size
	}

	ratio := float64(targetW*targetH) / float64(c.Width*c.Height)
	return int64(float64(c.Size) * ratio)
}

// FileError records a file the scanner could not read or decode.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Report is the outcome of a scan. Found counts every decodable image
// seen; Candidates holds only those passing the policy, in deterministic
// directory-then-filename order.
type Report struct {
	Found        int
	Candidates   []Candidate
	Errors       []FileError
	SkippedRoots []string // configured scan paths that do not exist
}

// Scanner walks directories and applies the threshold policy.
type Scanner struct {
	policy Policy
}

// New creates a Scanner with the given policy.
func New(policy Policy) *Scanner {
	return &Scanner{policy: policy}
}

// Scan walks root, or each of scanPaths relative to root when given, and
// returns the report. Unreadable or undecodable files are recorded in
// the report and do not stop the scan; only an unusable root is fatal.
// Dot-directories, including the backup directory, are never entered.
func (s *Scanner) Scan(root string, scanPaths []string) (*Report, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root: %w", err)
	}
	if !utils.DirExists(absRoot) {
		return nil, fmt.Errorf("scan root is not a directory: %s", root)
	}

	report := &Report{}

	dirs := []string{absRoot}
	if len(scanPaths) > 0 {
		dirs = dirs[:0]
		for _, p := range scanPaths {
			dir := filepath.Join(absRoot, p)
			if !utils.DirExists(dir) {
				report.SkippedRoots = append(report.SkippedRoots, p)
				continue
			}
			dirs = append(dirs, dir)
		}
	}

	for _, dir := range dirs {
		if err := s.scanDir(absRoot, dir, report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (s *Scanner) scanDir(root, dir string, report *Report) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			report.Errors = append(report.Errors, FileError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			// Never descend into hidden directories; this also keeps the
			// backup tree out of the scan
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") || !imageio.IsImageFile(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			report.Errors = append(report.Errors, FileError{Path: path, Err: err})
			return nil
		}

		width, height, format, err := imageio.Probe(path)
		if err != nil {
			report.Errors = append(report.Errors, FileError{Path: path, Err: err})
			return nil
		}

		report.Found++

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		cand := Candidate{
			Path:    path,
			RelPath: rel,
			Size:    info.Size(),
			Width:   width,
			Height:  height,
			Format:  format,
		}

		if s.policy.Qualifies(cand) {
			report.Candidates = append(report.Candidates, cand)
		}

		return nil
	})
}
