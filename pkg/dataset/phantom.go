// Package dataset supplies input images for the k-space pipeline: a
// synthetic Shepp-Logan head phantom and a loader for grayscale image
// files. The core never validates provenance, so everything here
// produces finite grids with values in [0, 1].
package dataset

import (
	"math"

	"mrkspace/internal/models"
)

// ellipse describes one component of the Shepp-Logan phantom in the
// normalized [-1, 1] coordinate system
type ellipse struct {
	// intensity is added to every pixel inside the ellipse
	intensity float64

	// a, b are the semi-axes along x and y
	a, b float64

	// x0, y0 is the center
	x0, y0 float64

	// phi is the rotation angle in degrees
	phi float64
}

// sheppLoganEllipses is the modified (high-contrast) Shepp-Logan
// parameter set of Toft, the variant commonly used for reconstruction
// test images
var sheppLoganEllipses = []ellipse{
	{1.0, 0.69, 0.92, 0, 0, 0},
	{-0.8, 0.6624, 0.874, 0, -0.0184, 0},
	{-0.2, 0.11, 0.31, 0.22, 0, -18},
	{-0.2, 0.16, 0.41, -0.22, 0, 18},
	{0.1, 0.21, 0.25, 0, 0.35, 0},
	{0.1, 0.046, 0.046, 0, 0.1, 0},
	{0.1, 0.046, 0.046, 0, -0.1, 0},
	{0.1, 0.046, 0.023, -0.08, -0.605, 0},
	{0.1, 0.023, 0.023, 0, -0.606, 0},
	{0.1, 0.023, 0.046, 0.06, -0.605, 0},
}

// Phantom renders the Shepp-Logan head phantom at the given square
// size. Intensities accumulate across overlapping ellipses and are
// clamped to [0, 1].
func Phantom(size int) *models.Grid {
	img := models.NewGrid(size, size)
	if size <= 0 {
		return img
	}

	scale := 2.0 / float64(size)

	for row := 0; row < size; row++ {
		// Row 0 maps to y = +1 so the phantom appears upright
		y := 1.0 - (float64(row)+0.5)*scale
		for col := 0; col < size; col++ {
			x := (float64(col)+0.5)*scale - 1.0

			value := 0.0
			for _, e := range sheppLoganEllipses {
				if e.contains(x, y) {
					value += e.intensity
				}
			}

			if value < 0 {
				value = 0
			} else if value > 1 {
				value = 1
			}
			img.Set(row, col, value)
		}
	}

	return img
}

// contains reports whether the normalized point (x, y) lies inside the
// rotated ellipse
func (e ellipse) contains(x, y float64) bool {
	rad := e.phi * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	dx := x - e.x0
	dy := y - e.y0

	// Rotate into the ellipse's frame
	u := dx*cos + dy*sin
	v := -dx*sin + dy*cos

	return (u*u)/(e.a*e.a)+(v*v)/(e.b*e.b) <= 1.0
}
