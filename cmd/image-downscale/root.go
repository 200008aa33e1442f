package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	downscale "github.com/mikel-code/image-downscale"
	"github.com/mikel-code/image-downscale/internal/config"
	"github.com/mikel-code/image-downscale/internal/runner"
	"github.com/mikel-code/image-downscale/internal/tui"
	"github.com/mikel-code/image-downscale/internal/utils"
)

var (
	rootDryRun   bool
	rootAutoYes  bool
	rootMaxWidth int
)

var rootCmd = &cobra.Command{
	Use:   "image-downscale [directory]",
	Short: "Interactively downscale large images while keeping text legible",
	Long: `image-downscale scans a directory for images exceeding the size or
dimension thresholds and asks, one by one, whether to downscale them.
Originals are backed up under .image-backups/<date>/ before being
replaced, and replacement is atomic, so an interrupted run never leaves
a half-written image behind.

The resize uses a hybrid method tuned for screenshots and diagrams:
light sharpening before a Lanczos resize, then an unsharp mask to
restore the edge contrast text loses when resampled.`,
	Example: `  # Review images under the current directory
  image-downscale

  # Preview what a run would do, without touching any file
  image-downscale --dry-run ~/vault

  # Downscale everything that qualifies, no prompts
  image-downscale --yes --max-width 1600 ./docs`,
	Args:          cobra.MaximumNArgs(1),
	Version:       downscale.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		if !utils.DirExists(root) {
			return fmt.Errorf("directory not found: %s", root)
		}

		cfg, err := config.Load(root)
		if err != nil {
			return err
		}

		// An explicitly set flag beats the config file
		if cmd.Flags().Changed("max-width") {
			cfg.MaxWidth = rootMaxWidth
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		if !rootDryRun && !rootAutoYes && !isTerminal(os.Stdin) {
			return fmt.Errorf("stdin is not a terminal; use --yes or --dry-run for unattended runs")
		}

		printBanner(cfg.MaxWidth)
		if utils.FileExists(filepath.Join(root, config.FileName)) {
			fmt.Println(tui.Success(fmt.Sprintf("✓ Loaded configuration from %s", config.FileName)))
		}

		run := runner.New(root, cfg, runner.Options{
			DryRun:  rootDryRun,
			AutoYes: rootAutoYes,
		}, tui.NewPrompter(os.Stdin, os.Stdout), os.Stdout)

		_, err = run.Run()
		return err
	},
}

func printBanner(maxWidth int) {
	fmt.Println(tui.Title("Image Downscaler"))
	fmt.Printf("Max width: %dpx\n", maxWidth)
	fmt.Println("Method: Hybrid (pre+post sharpening)")
	fmt.Printf("Mode: %s\n", modeName())
	fmt.Println()
}

func modeName() string {
	switch {
	case rootDryRun:
		return "DRY RUN"
	case rootAutoYes:
		return "Auto-process"
	default:
		return "Interactive"
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Execute runs the CLI. Startup and run errors exit with a non-zero
// status; quitting a review early is a normal exit.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&rootDryRun, "dry-run", false, "show what would be done without making changes")
	rootCmd.Flags().BoolVarP(&rootAutoYes, "yes", "y", false, "auto-process all images without prompting")
	rootCmd.Flags().IntVar(&rootMaxWidth, "max-width", config.Default().MaxWidth, "maximum width in pixels")
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
