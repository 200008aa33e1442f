package main

import (
	"fmt"

	"github.com/spf13/cobra"

	downscale "github.com/mikel-code/image-downscale"
	"github.com/mikel-code/image-downscale/internal/utils"
)

var singleMaxWidth int

var singleCmd = &cobra.Command{
	Use:   "single <input> <output>",
	Short: "Downscale one image file, no scanning or backups",
	Long: `single runs the hybrid downscale on one image and writes the result
to a new file. The input is never touched, nothing is backed up, and
thresholds do not apply. Useful for scripting and for trying the
transform on a single screenshot.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]
		if !utils.FileExists(input) {
			return fmt.Errorf("input not found: %s", input)
		}

		fmt.Printf("Downscaling: %s\n", input)

		res, err := downscale.ProcessFile(input, output, downscale.Options{MaxWidth: singleMaxWidth})
		if err != nil {
			return err
		}

		fmt.Printf("Original: %dx%d (%s)\n", res.OriginalWidth, res.OriginalHeight, utils.FormatFileSize(res.OriginalBytes))
		fmt.Printf("Output: %dx%d (%s)\n", res.TargetWidth, res.TargetHeight, utils.FormatFileSize(res.OutputBytes))
		fmt.Printf("Saved: %s\n", utils.FormatFileSize(res.BytesSaved()))
		return nil
	},
}

func init() {
	singleCmd.Flags().IntVar(&singleMaxWidth, "max-width", downscale.DefaultMaxWidth, "maximum width in pixels")
	rootCmd.AddCommand(singleCmd)
}
