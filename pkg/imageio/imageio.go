// Package imageio loads, probes, and encodes the raster formats the
// downscaler handles. WebP goes through its own codec; everything else
// rides on the decoders imaging registers.
package imageio

import (
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/mikel-code/image-downscale/internal/utils"
)

// formats maps supported file extensions to canonical format names.
var formats = map[string]string{
	"png":  "png",
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"webp": "webp",
	"gif":  "gif",
	"bmp":  "bmp",
	"tif":  "tiff",
	"tiff": "tiff",
}

// FormatForPath returns the canonical format name for a file path based
// on its extension, and whether the extension is supported.
func FormatForPath(path string) (string, bool) {
	format, ok := formats[utils.GetFileExtension(path)]
	return format, ok
}

// IsImageFile checks if a file has a supported image extension
func IsImageFile(path string) bool {
	_, ok := FormatForPath(path)
	return ok
}

// Load loads an image from a file path with WebP support
func Load(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode, then a plain decode retry
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	if img, err := webp.Decode(f); err == nil {
		return img, nil
	}

	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}

	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// Probe reads image dimensions and format without decoding the pixels.
func Probe(path string) (width, height int, format string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", fmt.Errorf("failed to decode image header: %w", err)
	}

	return cfg.Width, cfg.Height, format, nil
}

// Save encodes an image to path in the given format. The quality setting
// applies to the lossy formats (JPEG, WebP); the rest are lossless.
func Save(img image.Image, path, format string, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(f, img, format, quality); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Encode writes an image to w in the given format.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch strings.ToLower(format) {
	case "webp":
		return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	case "jpg", "jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	default:
		f, err := imaging.FormatFromExtension(format)
		if err != nil {
			return fmt.Errorf("unsupported output format: %s", format)
		}
		return imaging.Encode(w, img, f)
	}
}
