package downscale

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikel-code/image-downscale/pkg/imageio"
)

// createTestImage creates a gradient image with hard edges
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			img.Set(x, y, color.RGBA{r, g, 128, 255})
		}
	}

	for y := height / 4; y < height; y += height / 4 {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{0, 0, 0, 255})
		}
	}

	return img
}

func writeTestImage(t *testing.T, path string, width, height int) {
	t.Helper()

	format, ok := imageio.FormatForPath(path)
	if !ok {
		format = "png"
	}

	if err := imageio.Save(createTestImage(width, height), path, format, 95); err != nil {
		t.Fatalf("Failed to write test image %s: %v", path, err)
	}
}

func TestProcessFileDownscales(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "big.png")
	output := filepath.Join(dir, "small.png")
	writeTestImage(t, input, 2400, 1400)

	res, err := ProcessFile(input, output, Options{MaxWidth: 1200})
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if res.OriginalWidth != 2400 || res.OriginalHeight != 1400 {
		t.Errorf("Expected original 2400x1400, got %dx%d",
			res.OriginalWidth, res.OriginalHeight)
	}

	if res.TargetWidth != 1200 || res.TargetHeight != 700 {
		t.Errorf("Expected target 1200x700, got %dx%d",
			res.TargetWidth, res.TargetHeight)
	}

	w, h, _, err := imageio.Probe(output)
	if err != nil {
		t.Fatalf("Probe output failed: %v", err)
	}
	if w != 1200 || h != 700 {
		t.Errorf("Output file is %dx%d, expected 1200x700", w, h)
	}

	if res.OriginalBytes <= 0 || res.OutputBytes <= 0 {
		t.Errorf("Expected positive byte counts, got %d and %d",
			res.OriginalBytes, res.OutputBytes)
	}

	if res.BytesSaved() != res.OriginalBytes-res.OutputBytes {
		t.Error("BytesSaved does not match the byte counts")
	}
}

func TestProcessFileWithinLimit(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "small.png")
	output := filepath.Join(dir, "out.png")
	writeTestImage(t, input, 800, 600)

	res, err := ProcessFile(input, output, Options{MaxWidth: 1200})
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	// Within the limit means re-encode only, never resize
	if res.TargetWidth != 800 || res.TargetHeight != 600 {
		t.Errorf("Expected 800x600 output, got %dx%d",
			res.TargetWidth, res.TargetHeight)
	}

	w, h, _, err := imageio.Probe(output)
	if err != nil {
		t.Fatalf("Probe output failed: %v", err)
	}
	if w != 800 || h != 600 {
		t.Errorf("Output file is %dx%d, expected 800x600", w, h)
	}
}

func TestProcessFileDefaults(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "big.png")
	output := filepath.Join(dir, "out.png")
	writeTestImage(t, input, 2400, 1200)

	res, err := ProcessFile(input, output, Options{})
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if res.TargetWidth != DefaultMaxWidth {
		t.Errorf("Expected default max width %d, got %d",
			DefaultMaxWidth, res.TargetWidth)
	}
}

func TestProcessFileTempOutputKeepsFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "shot.png")
	output := filepath.Join(dir, "shot.png.12345.tmp")
	writeTestImage(t, input, 1600, 900)

	if _, err := ProcessFile(input, output, Options{MaxWidth: 1200}); err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	_, _, format, err := imageio.Probe(output)
	if err != nil {
		t.Fatalf("Probe output failed: %v", err)
	}
	if format != "png" {
		t.Errorf("Expected temp output to stay png, got %s", format)
	}
}

func TestProcessFileConvertsFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "shot.png")
	output := filepath.Join(dir, "shot.jpg")
	writeTestImage(t, input, 1600, 900)

	if _, err := ProcessFile(input, output, Options{MaxWidth: 1200}); err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	_, _, format, err := imageio.Probe(output)
	if err != nil {
		t.Fatalf("Probe output failed: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("Expected jpeg output, got %s", format)
	}
}

func TestProcessFileMissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := ProcessFile(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"), Options{})
	if err == nil {
		t.Error("Expected error for missing input file")
	}

	if _, statErr := os.Stat(filepath.Join(dir, "out.png")); statErr == nil {
		t.Error("Expected no output file for a failed run")
	}
}

func TestGetVersion(t *testing.T) {
	version := GetVersion()
	if version == "" {
		t.Error("Version should not be empty")
	}

	if version != Version {
		t.Errorf("GetVersion() returned %s, expected %s", version, Version)
	}
}
