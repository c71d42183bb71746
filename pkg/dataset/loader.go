package dataset

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"mrkspace/internal/models"
)

// LoadImage loads a grayscale image file (JPEG or PNG) and converts it
// to a grid with values in [0, 1]. Color images are reduced to
// luminance through the red channel of the 16-bit representation,
// which for grayscale sources is the pixel intensity.
func LoadImage(path string) (*models.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return imageToGrid(img), nil
}

// imageToGrid converts a decoded image to a float grid in [0, 1]
func imageToGrid(img image.Image) *models.Grid {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	grid := models.NewGrid(height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Convert 16-bit color to float64 (0-1 range)
			grid.Set(y, x, float64(r)/65535.0)
		}
	}

	return grid
}

// NormalizeMax scales a grid so its maximum value is 1, matching the
// preprocessing applied to loaded scanner slices. An all-zero grid is
// returned unchanged.
func NormalizeMax(img *models.Grid) *models.Grid {
	max := img.Max()
	out := img.Clone()
	if max <= 0 {
		return out
	}
	for i := range out.Data {
		out.Data[i] /= max
	}
	return out
}
