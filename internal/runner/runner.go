// Package runner drives the interactive review session: scan, present
// each candidate, apply the reviewer's decision, and account for the
// outcome. Per-image failures are recorded and never abort the run.
package runner

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	downscale "github.com/mikel-code/image-downscale"
	"github.com/mikel-code/image-downscale/internal/config"
	"github.com/mikel-code/image-downscale/internal/tui"
	"github.com/mikel-code/image-downscale/internal/utils"
	"github.com/mikel-code/image-downscale/pkg/backup"
	"github.com/mikel-code/image-downscale/pkg/scan"
	"github.com/mikel-code/image-downscale/pkg/transform"
)

// Stages a single image can fail at.
const (
	StageScan      = "scan"
	StageBackup    = "backup"
	StageTransform = "transform"
	StageReplace   = "replace"
)

// FileError records one file the run could not handle and the stage
// that failed.
type FileError struct {
	Path  string
	Stage string
	Err   error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Path, e.Stage, e.Err)
}

// Summary accumulates the outcome of a run. Counters only ever grow;
// candidates discarded by quit are reported as StoppedEarly rather than
// skipped.
type Summary struct {
	Found        int
	Qualified    int
	Processed    int
	Skipped      int
	StoppedEarly int
	BytesBefore  int64
	BytesAfter   int64
	Errors       []FileError
}

// BytesSaved returns the total bytes reclaimed by processed images.
func (s *Summary) BytesSaved() int64 {
	return s.BytesBefore - s.BytesAfter
}

// Prompter supplies the per-image decision during interactive runs.
type Prompter interface {
	Ask() tui.Decision
}

// Options selects the review mode.
type Options struct {
	// DryRun previews every decision without touching any file.
	DryRun bool

	// AutoYes processes every candidate without prompting.
	AutoYes bool
}

// Runner walks one directory tree and reviews its oversized images.
type Runner struct {
	root     string
	cfg      *config.Config
	opts     Options
	prompter Prompter
	scaler   transform.Downscaler
	out      io.Writer
}

// New creates a Runner for root. The prompter is only consulted when
// neither DryRun nor AutoYes is set.
func New(root string, cfg *config.Config, opts Options, prompter Prompter, out io.Writer) *Runner {
	return &Runner{
		root:     root,
		cfg:      cfg,
		opts:     opts,
		prompter: prompter,
		scaler:   transform.NewHybrid(),
		out:      out,
	}
}

// Run scans the tree and reviews every candidate in order. It returns
// the summary; the only fatal error is an unusable scan root.
func (r *Runner) Run() (*Summary, error) {
	fmt.Fprintf(r.out, "Scanning directory: %s\n", r.root)
	if len(r.cfg.ScanPaths) > 0 {
		fmt.Fprintf(r.out, "Scan paths: %s\n", strings.Join(r.cfg.ScanPaths, ", "))
	}

	scanner := scan.New(scan.Policy{
		SizeThresholdKB:      r.cfg.SizeThresholdKB,
		DimensionThresholdPX: r.cfg.DimensionThresholdPX,
	})

	report, err := scanner.Scan(r.root, r.cfg.ScanPaths)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Found:     report.Found,
		Qualified: len(report.Candidates),
	}
	for _, fe := range report.Errors {
		summary.Errors = append(summary.Errors, FileError{Path: fe.Path, Stage: StageScan, Err: fe.Err})
	}

	for _, p := range report.SkippedRoots {
		fmt.Fprintln(r.out, tui.Warn(fmt.Sprintf("Configured scan path not found: %s", p)))
	}

	fmt.Fprintln(r.out, tui.Dim(fmt.Sprintf("Found %d total images", report.Found)))

	if len(report.Candidates) == 0 {
		fmt.Fprintln(r.out, "No images exceed the size or dimension thresholds.")
		fmt.Fprintln(r.out, tui.Dim(fmt.Sprintf("Thresholds: >%dKB or >%dpx",
			r.cfg.SizeThresholdKB, r.cfg.DimensionThresholdPX)))
		return summary, nil
	}

	fmt.Fprintf(r.out, "Found %d images exceeding thresholds\n", len(report.Candidates))

	mgr := backup.NewManager(r.root, time.Now())
	total := len(report.Candidates)

	for i, cand := range report.Candidates {
		r.present(cand, i+1, total)

		decision := r.decide()
		if decision == tui.Quit {
			fmt.Fprintln(r.out, "Quitting...")
			summary.StoppedEarly = total - i
			break
		}
		if decision == tui.SkipAll {
			fmt.Fprintln(r.out, "Skipping remaining images...")
			summary.Skipped += total - i
			break
		}
		if decision == tui.Skip {
			fmt.Fprintln(r.out, tui.Dim("  Skipped"))
			summary.Skipped++
			continue
		}

		r.processOne(mgr, cand, summary)
	}

	r.printSummary(summary, mgr)
	return summary, nil
}

func (r *Runner) decide() tui.Decision {
	if r.opts.DryRun {
		return tui.Skip
	}
	if r.opts.AutoYes {
		return tui.Process
	}
	return r.prompter.Ask()
}

func (r *Runner) present(cand scan.Candidate, index, total int) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, tui.Header(fmt.Sprintf("Image %d/%d: %s", index, total, cand.RelPath)))
	fmt.Fprintf(r.out, "  Current: %dx%d (%s)\n", cand.Width, cand.Height, utils.FormatFileSize(cand.Size))

	targetW, targetH := cand.TargetSize(r.cfg.MaxWidth)
	if targetW == cand.Width && targetH == cand.Height {
		fmt.Fprintln(r.out, tui.Dim("  Already within max width, would optimize only"))
		return
	}

	estimate := cand.EstimatedBytes(r.cfg.MaxWidth)
	fmt.Fprintf(r.out, "  Would downscale to: %dx%d (~%s)\n", targetW, targetH, utils.FormatFileSize(estimate))
	fmt.Fprintln(r.out, tui.Dim(fmt.Sprintf("  Estimated savings: %s", utils.FormatFileSize(cand.Size-estimate))))
}

// processOne backs the image up, rewrites it through a temporary file,
// and swaps it in place. The first failing step records the error and
// leaves the original untouched; a backup that was already taken stays
// on disk.
func (r *Runner) processOne(mgr *backup.Manager, cand scan.Candidate, summary *Summary) {
	backupPath, err := mgr.Backup(cand.Path)
	if err != nil {
		summary.Errors = append(summary.Errors, FileError{Path: cand.RelPath, Stage: StageBackup, Err: err})
		fmt.Fprintln(r.out, tui.Fail(fmt.Sprintf("  ✗ Backup failed: %v", err)))
		return
	}

	if rel, relErr := filepath.Rel(r.root, backupPath); relErr == nil {
		fmt.Fprintln(r.out, tui.Success(fmt.Sprintf("  ✓ Backed up to %s", rel)))
	}

	var res downscale.Result
	var processErr error
	err = backup.Replace(cand.Path, func(tmpPath string) error {
		res, processErr = downscale.ProcessFile(cand.Path, tmpPath, downscale.Options{
			MaxWidth:   r.cfg.MaxWidth,
			Downscaler: r.scaler,
		})
		return processErr
	})
	if err != nil {
		stage := StageReplace
		if processErr != nil {
			stage = StageTransform
		}
		summary.Errors = append(summary.Errors, FileError{Path: cand.RelPath, Stage: stage, Err: err})
		fmt.Fprintln(r.out, tui.Fail(fmt.Sprintf("  ✗ Processing failed: %v", err)))
		fmt.Fprintln(r.out, tui.Dim("  Original left untouched, backup retained"))
		return
	}

	summary.Processed++
	summary.BytesBefore += res.OriginalBytes
	summary.BytesAfter += res.OutputBytes

	if res.TargetWidth != res.OriginalWidth || res.TargetHeight != res.OriginalHeight {
		fmt.Fprintln(r.out, tui.Success(fmt.Sprintf("  ✓ Downscaled to %dx%d", res.TargetWidth, res.TargetHeight)))
	} else {
		fmt.Fprintln(r.out, tui.Success("  ✓ Re-encoded at original size"))
	}
	fmt.Fprintln(r.out, tui.Success(fmt.Sprintf("  ✓ Saved %s", utils.FormatFileSize(res.BytesSaved()))))
}

func (r *Runner) printSummary(summary *Summary, mgr *backup.Manager) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, tui.Title("Summary"))

	rows := []tui.SummaryRow{
		{Label: "Images found", Value: fmt.Sprintf("%d", summary.Found)},
		{Label: "Exceeding thresholds", Value: fmt.Sprintf("%d", summary.Qualified)},
		{Label: "Processed", Value: fmt.Sprintf("%d", summary.Processed)},
		{Label: "Skipped", Value: fmt.Sprintf("%d", summary.Skipped)},
	}
	if summary.StoppedEarly > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Stopped early", Value: fmt.Sprintf("%d", summary.StoppedEarly)})
	}
	if len(summary.Errors) > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Errors", Value: fmt.Sprintf("%d", len(summary.Errors))})
	}
	rows = append(rows, tui.SummaryRow{Label: "Total space saved", Value: utils.FormatFileSize(summary.BytesSaved())})

	fmt.Fprintln(r.out, tui.RenderSummary(rows))

	for _, fe := range summary.Errors {
		fmt.Fprintln(r.out, tui.Fail(fmt.Sprintf("  ✗ %s", fe.Error())))
	}

	if summary.Processed > 0 && !r.opts.DryRun {
		relDir := mgr.Dir()
		if rel, err := filepath.Rel(r.root, mgr.Dir()); err == nil {
			relDir = rel
		}
		fmt.Fprintf(r.out, "\nBackups stored in: %s\n", relDir)
		fmt.Fprintln(r.out, tui.Dim(fmt.Sprintf("To restore an image: cp %s/<path> <path>", relDir)))
	}
}
