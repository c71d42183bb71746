// Package analysis computes quantitative quality metrics for
// reconstructed images and assembles them into comparison reports.
//
// The estimators are chosen for comparative ranking across
// reconstruction methods rather than absolute physical units:
// sharpness is the mean Sobel gradient magnitude (high-frequency edge
// content), and noise is the standard deviation of a corner patch that
// is assumed to contain no anatomy.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"mrkspace/internal/models"
	"mrkspace/pkg/kspace"
)

// cornerFraction is the fraction of each image dimension used for the
// homogeneous corner patch in the noise estimate
const cornerFraction = 0.08

// Sharpness measures edge sharpness as the mean Sobel gradient
// magnitude over the image. Higher values mean sharper edges.
func Sharpness(img *models.Grid) float64 {
	height, width := img.Height, img.Width
	if height == 0 || width == 0 {
		return 0
	}

	// Clamp coordinates at the borders so the 3x3 kernels stay inside
	// the grid (replicate-edge boundary handling)
	sample := func(y, x int) float64 {
		if y < 0 {
			y = 0
		} else if y >= height {
			y = height - 1
		}
		if x < 0 {
			x = 0
		} else if x >= width {
			x = width - 1
		}
		return img.At(y, x)
	}

	total := 0.0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Vertical derivative (Sobel along rows)
			gy := (sample(y+1, x-1) + 2*sample(y+1, x) + sample(y+1, x+1)) -
				(sample(y-1, x-1) + 2*sample(y-1, x) + sample(y-1, x+1))

			// Horizontal derivative (Sobel along columns)
			gx := (sample(y-1, x+1) + 2*sample(y, x+1) + sample(y+1, x+1)) -
				(sample(y-1, x-1) + 2*sample(y, x-1) + sample(y+1, x-1))

			total += math.Sqrt(gx*gx + gy*gy)
		}
	}

	return total / float64(height*width)
}

// Noise estimates fine-grained variability as the standard deviation of
// the top-left corner patch, whose side is cornerFraction of each
// dimension (at least one pixel). The corner of an MRI-style image is
// background, so its variability is attributable to noise rather than
// structure.
func Noise(img *models.Grid) float64 {
	cornerH := int(float64(img.Height) * cornerFraction)
	if cornerH < 1 {
		cornerH = 1
	}
	cornerW := int(float64(img.Width) * cornerFraction)
	if cornerW < 1 {
		cornerW = 1
	}

	patch := make([]float64, 0, cornerH*cornerW)
	for y := 0; y < cornerH; y++ {
		for x := 0; x < cornerW; x++ {
			patch = append(patch, img.At(y, x))
		}
	}

	if len(patch) < 2 {
		return 0
	}
	return stat.PopStdDev(patch, nil)
}

// MAE computes the mean absolute error between an image and a
// reference. Both are expected to share one intensity scale; the
// comparison stage normalizes candidates before calling this.
func MAE(img, ref *models.Grid) (float64, error) {
	if !img.SameShape(ref) {
		return 0, &kspace.ShapeMismatchError{
			WantHeight: ref.Height, WantWidth: ref.Width,
			GotHeight: img.Height, GotWidth: img.Width,
		}
	}

	total := 0.0
	for i := range img.Data {
		total += math.Abs(img.Data[i] - ref.Data[i])
	}
	return total / float64(len(img.Data)), nil
}

// DifferenceMap returns |img - ref| as a new grid, used for the
// pairwise-difference part of the comparison report
func DifferenceMap(img, ref *models.Grid) (*models.Grid, error) {
	if !img.SameShape(ref) {
		return nil, &kspace.ShapeMismatchError{
			WantHeight: ref.Height, WantWidth: ref.Width,
			GotHeight: img.Height, GotWidth: img.Width,
		}
	}

	out := models.NewGrid(img.Height, img.Width)
	for i := range img.Data {
		out.Data[i] = math.Abs(img.Data[i] - ref.Data[i])
	}
	return out, nil
}
