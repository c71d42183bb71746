package dataset

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"mrkspace/internal/models"
)

// writeTestPNG encodes a 16-bit grayscale gradient image to disk
func writeTestPNG(t *testing.T, path string, width, height int) {
	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			value := uint16(float64(y*width+x) / float64(width*height-1) * 65535)
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
}

// TestLoadImage verifies decoding a grayscale PNG into a [0,1] grid
func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slice.png")
	width, height := 8, 6
	writeTestPNG(t, path, width, height)

	grid, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if grid.Height != height || grid.Width != width {
		t.Fatalf("Expected %dx%d grid, got %dx%d", height, width, grid.Height, grid.Width)
	}

	// PNG is lossless, so the gradient must round-trip exactly up to
	// 16-bit quantization
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			quantized := uint16(float64(y*width+x) / float64(width*height-1) * 65535)
			expected := float64(quantized) / 65535.0
			if math.Abs(grid.At(y, x)-expected) > 1e-9 {
				t.Fatalf("(%d,%d): expected %.6f, got %.6f", y, x, expected, grid.At(y, x))
			}
		}
	}
}

// TestLoadImageMissingFile verifies the error path for an absent file;
// the caller decides whether to skip the dataset
func TestLoadImageMissingFile(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "does_not_exist.png"))
	if err == nil {
		t.Fatal("Expected an error for a missing file, got nil")
	}
}

// TestLoadImageBadData verifies the decode error path
func TestLoadImageBadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := LoadImage(path); err == nil {
		t.Fatal("Expected a decode error, got nil")
	}
}

// TestNormalizeMax verifies max scaling and the all-zero guard
func TestNormalizeMax(t *testing.T) {
	img := models.NewGrid(4, 4)
	for i := range img.Data {
		img.Data[i] = float64(i)
	}

	normalized := NormalizeMax(img)
	if normalized.Max() != 1.0 {
		t.Errorf("Expected max 1.0, got %f", normalized.Max())
	}
	if img.Max() != 15.0 {
		t.Error("NormalizeMax must not mutate its input")
	}

	zero := models.NewGrid(4, 4)
	result := NormalizeMax(zero)
	for i, v := range result.Data {
		if v != 0 {
			t.Fatalf("All-zero grid should stay zero, got %f at index %d", v, i)
		}
	}
}
