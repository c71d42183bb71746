// Package visualization renders grids and k-space arrays to grayscale
// image files so reconstructions and their frequency content can be
// inspected visually.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"mrkspace/internal/models"
	"mrkspace/pkg/analysis"
	"mrkspace/pkg/reconstruction"
)

// Viewer saves rendered views of images and k-space data beneath a
// single output directory
type Viewer struct {
	// outputDir is the directory all files are written into
	outputDir string
}

// NewViewer creates a viewer writing into the given directory
func NewViewer(outputDir string) *Viewer {
	return &Viewer{outputDir: outputDir}
}

// RenderGrid converts a grid to a 16-bit grayscale image. Values are
// clamped to [0, 1] before scaling.
func RenderGrid(grid *models.Grid) image.Image {
	img := image.NewGray16(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			value := uint16(math.Max(0, math.Min(65535, grid.At(y, x)*65535)))
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}
	return img
}

// SaveGrid renders a grid and writes it as a JPEG file named
// <name>.jpg in the output directory
func (v *Viewer) SaveGrid(name string, grid *models.Grid) error {
	if err := os.MkdirAll(v.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(v.outputDir, name+".jpg")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	return jpeg.Encode(file, RenderGrid(grid), &jpeg.Options{Quality: 90})
}

// SaveKSpaceViews writes the three standard views of a k-space array:
// log-magnitude (<name>_mag.jpg), phase (<name>_phase.jpg) and real
// part (<name>_kspace.jpg). Each view is rescaled to [0, 1] for
// display; the log of the magnitude is taken as log(1+|k|) to avoid
// log(0) where k-space has zeros.
func (v *Viewer) SaveKSpaceViews(name string, kspace *models.ComplexGrid) error {
	logMag := kspace.Magnitude()
	for i, m := range logMag.Data {
		logMag.Data[i] = math.Log1p(m)
	}

	phase := kspace.Phase()
	realPart := kspace.Real()

	views := []struct {
		suffix string
		grid   *models.Grid
	}{
		{"_mag", rescale(logMag)},
		{"_phase", rescale(phase)},
		{"_kspace", rescale(realPart)},
	}

	for _, view := range views {
		if err := v.SaveGrid(name+view.suffix, view.grid); err != nil {
			return err
		}
	}
	return nil
}

// SaveReconstructions writes one image per reconstruction method in
// canonical order, named <name>_recon_<method>.jpg
func (v *Viewer) SaveReconstructions(name string, results map[reconstruction.Method]*models.Grid) error {
	for _, method := range reconstruction.Methods() {
		grid, ok := results[method]
		if !ok {
			continue
		}
		if err := v.SaveGrid(fmt.Sprintf("%s_recon_%s", name, method), grid); err != nil {
			return err
		}
	}
	return nil
}

// SaveDifferenceMap writes the rescaled |img - ref| difference image
// as <name>_diff.jpg
func (v *Viewer) SaveDifferenceMap(name string, img, ref *models.Grid) error {
	diff, err := analysis.DifferenceMap(img, ref)
	if err != nil {
		return err
	}
	return v.SaveGrid(name+"_diff", rescale(diff))
}

// rescale maps a grid linearly onto [0, 1]. A constant grid maps to
// all zeros.
func rescale(grid *models.Grid) *models.Grid {
	min, max := grid.Data[0], grid.Data[0]
	for _, v := range grid.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := models.NewGrid(grid.Height, grid.Width)
	if max <= min {
		return out
	}

	span := max - min
	for i, v := range grid.Data {
		out.Data[i] = (v - min) / span
	}
	return out
}
