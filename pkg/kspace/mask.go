package kspace

import (
	"math"

	"mrkspace/internal/models"
)

// The mask functions below are pure: given a shape and a parameter they
// deterministically produce a new real-valued grid in [0,1] that is
// multiplied elementwise into a centered k-space array. Three kinds are
// provided, matching the three degraded acquisition strategies:
//
//   - PartialMask simulates undersampled acquisition by retaining only a
//     centered low-frequency rectangle.
//   - GaussianLowpassMask attenuates high frequencies smoothly.
//   - GaussianHighpassMask is its exact complement and suppresses the
//     low-frequency content including most of the DC term.

// PartialMask creates a binary mask that retains a centered rectangle
// covering the given fraction of each linear dimension. At fraction=1
// the mask is all-ones and no information is lost.
//
// Parameters:
//   - height, width: Shape of the k-space array
//   - fraction: Fraction of rows and columns to retain, in (0, 1]
//
// Returns:
//   - The mask grid, or a ConfigurationError for an out-of-range
//     fraction or a non-positive dimension
func PartialMask(height, width int, fraction float64) (*models.Grid, error) {
	if err := validateShape(height, width); err != nil {
		return nil, err
	}
	if fraction <= 0 || fraction > 1 {
		return nil, &ConfigurationError{
			Param:  "fraction",
			Reason: "must be in (0, 1]",
		}
	}

	// Rectangle dimensions round to the nearest integer; centering may be
	// off by one pixel when the rounded size and the grid parity disagree
	keepH := int(math.Round(fraction * float64(height)))
	keepW := int(math.Round(fraction * float64(width)))
	if keepH < 1 {
		keepH = 1
	}
	if keepW < 1 {
		keepW = 1
	}

	startY := (height - keepH) / 2
	startX := (width - keepW) / 2

	mask := models.NewGrid(height, width)
	for y := startY; y < startY+keepH; y++ {
		for x := startX; x < startX+keepW; x++ {
			mask.Set(y, x, 1.0)
		}
	}
	return mask, nil
}

// GaussianLowpassMask creates a centered Gaussian mask that preserves
// low frequencies. The standard deviation in pixel units is
// sigmaFraction times the grid's maximum radius max(H,W)/2, and the
// mask value at frequency offset (u,v) from the center is
// exp(-(u²+v²)/(2σ²)).
func GaussianLowpassMask(height, width int, sigmaFraction float64) (*models.Grid, error) {
	if err := validateShape(height, width); err != nil {
		return nil, err
	}
	if sigmaFraction <= 0 || sigmaFraction >= 1 {
		return nil, &ConfigurationError{
			Param:  "sigmaFraction",
			Reason: "must be in (0, 1)",
		}
	}

	maxDim := height
	if width > maxDim {
		maxDim = width
	}
	sigma := sigmaFraction * float64(maxDim) / 2
	denom := 2 * sigma * sigma

	centerY := height / 2
	centerX := width / 2

	mask := models.NewGrid(height, width)
	for y := 0; y < height; y++ {
		u := float64(y - centerY)
		for x := 0; x < width; x++ {
			v := float64(x - centerX)
			mask.Set(y, x, math.Exp(-(u*u+v*v)/denom))
		}
	}
	return mask, nil
}

// GaussianHighpassMask creates the exact complement of the Gaussian
// low-pass mask with the same sigma: 1 - lowpass. It suppresses the
// low-frequency content of k-space, so a perfectly uniform image
// reconstructs to a near-zero result.
func GaussianHighpassMask(height, width int, sigmaFraction float64) (*models.Grid, error) {
	mask, err := GaussianLowpassMask(height, width, sigmaFraction)
	if err != nil {
		return nil, err
	}
	for i, v := range mask.Data {
		mask.Data[i] = 1.0 - v
	}
	return mask, nil
}

// ApplyMask multiplies a k-space array elementwise by a real-valued
// mask, producing a new array. The input k-space is never mutated.
func ApplyMask(kspace *models.ComplexGrid, mask *models.Grid) (*models.ComplexGrid, error) {
	if kspace.Height != mask.Height || kspace.Width != mask.Width {
		return nil, &ShapeMismatchError{
			WantHeight: kspace.Height, WantWidth: kspace.Width,
			GotHeight: mask.Height, GotWidth: mask.Width,
		}
	}

	out := models.NewComplexGrid(kspace.Height, kspace.Width)
	for i, v := range kspace.Data {
		out.Data[i] = v * complex(mask.Data[i], 0)
	}
	return out, nil
}

func validateShape(height, width int) error {
	if height <= 0 || width <= 0 {
		return &ConfigurationError{
			Param:  "shape",
			Reason: "dimensions must be positive",
		}
	}
	return nil
}
