// Package downscale reduces oversized raster images to a maximum width
// while keeping text legible.
//
// Screenshots and diagrams suffer badly from naive resampling: thin
// strokes blur and small text becomes unreadable. The transform here
// runs a three stage chain instead: a light sharpening pass before
// resampling, a Lanczos resize to the target width, and an unsharp mask
// that restores the edge contrast lost in the resize. The result is
// re-encoded at high quality; images already within the width limit keep
// their dimensions and are only re-encoded.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		downscale "github.com/mikel-code/image-downscale"
//	)
//
//	func main() {
//		res, err := downscale.ProcessFile("shot.png", "shot_small.png", downscale.Options{
//			MaxWidth: 1200,
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Printf("%dx%d -> %dx%d, saved %d bytes\n",
//			res.OriginalWidth, res.OriginalHeight,
//			res.TargetWidth, res.TargetHeight, res.BytesSaved())
//	}
//
// The heavy lifting lives in the subpackages: pkg/transform holds the
// filter chain, pkg/imageio the codecs, pkg/scan the directory scanner
// and thresholds, and pkg/backup the backup and atomic replace layer.
// The CLI in cmd/image-downscale drives them interactively.
package downscale

import (
	"fmt"
	"os"

	"github.com/mikel-code/image-downscale/pkg/imageio"
	"github.com/mikel-code/image-downscale/pkg/transform"
)

// Version of the image downscale library
const Version = "1.0.0"

// Defaults used when the corresponding Options fields are zero.
const (
	DefaultMaxWidth = 1200
	DefaultQuality  = 95
)

// Options controls how ProcessFile transforms an image.
type Options struct {
	// MaxWidth is the width limit in pixels. Zero means DefaultMaxWidth.
	MaxWidth int

	// Quality is the encoder quality for lossy formats (1-100). Zero
	// means DefaultQuality.
	Quality int

	// Downscaler overrides the filter chain. Nil means the hybrid chain
	// with default settings.
	Downscaler transform.Downscaler
}

// Result reports what ProcessFile did to a single image.
type Result struct {
	OriginalWidth  int
	OriginalHeight int
	TargetWidth    int
	TargetHeight   int
	OriginalBytes  int64
	OutputBytes    int64
}

// BytesSaved returns how many bytes the output is smaller than the
// input. Negative when re-encoding grew the file.
func (r Result) BytesSaved() int64 {
	return r.OriginalBytes - r.OutputBytes
}

// ProcessFile downscales inputPath and writes the result to outputPath.
// Images already within the width limit are re-encoded without resizing.
// The output format follows the output extension when it names a known
// image type; otherwise the input's format is kept, so writing to a
// temporary sibling like "shot.png.12345.tmp" re-encodes as PNG.
func ProcessFile(inputPath, outputPath string, opts Options) (Result, error) {
	maxWidth := opts.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	quality := opts.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}
	scaler := opts.Downscaler
	if scaler == nil {
		scaler = transform.NewHybrid()
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat input: %w", err)
	}

	img, err := imageio.Load(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	res := Result{
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
		OriginalBytes:  info.Size(),
	}

	out := scaler.Downscale(img, maxWidth)
	outBounds := out.Bounds()
	res.TargetWidth = outBounds.Dx()
	res.TargetHeight = outBounds.Dy()

	format, ok := imageio.FormatForPath(outputPath)
	if !ok {
		if format, ok = imageio.FormatForPath(inputPath); !ok {
			return Result{}, fmt.Errorf("cannot determine output format for %s", outputPath)
		}
	}

	if err := imageio.Save(out, outputPath, format, quality); err != nil {
		return Result{}, fmt.Errorf("failed to save image: %w", err)
	}

	outInfo, err := os.Stat(outputPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat output: %w", err)
	}
	res.OutputBytes = outInfo.Size()

	return res, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
