// Package kspace implements the frequency-domain processing core: the
// centered 2D Fourier transform and the sampling/filtering masks applied
// to k-space before reconstruction.
package kspace

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"mrkspace/internal/models"
)

// Transform wraps the 2D discrete Fourier transform and its inverse with
// the shift convention fixed so that the zero-frequency (DC) component
// sits at the grid center. This matches the standard presentation of
// MRI k-space data.
type Transform struct{}

// NewTransform creates a new spectral transform instance
func NewTransform() *Transform {
	return &Transform{}
}

// Forward computes the 2D FFT of a real-valued image and shifts the
// result so the DC component is centered.
//
// Parameters:
//   - img: Input image grid (any HxW shape, non-square grids are valid)
//
// Returns:
//   - The centered k-space array, or an InvalidInputError if the image
//     has a zero-sized dimension or contains non-finite values
func (t *Transform) Forward(img *models.Grid) (*models.ComplexGrid, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}

	// Promote the real image to a complex grid so rows and columns can
	// share one complex FFT path
	data := models.NewComplexGrid(img.Height, img.Width)
	for i, v := range img.Data {
		data.Data[i] = complex(v, 0)
	}

	kspace := fft2D(data, false)
	return shift2D(kspace, img.Height/2, img.Width/2), nil
}

// Inverse reverses the centering shift, computes the inverse 2D FFT and
// returns the magnitude of the complex result. Taking the magnitude
// discards the residual phase noise left by the floating-point round trip.
func (t *Transform) Inverse(kspace *models.ComplexGrid) (*models.Grid, error) {
	if err := validateKSpace(kspace); err != nil {
		return nil, err
	}

	// Undo the centering: roll by the ceiling half-sizes so that odd
	// dimensions return to their original layout
	unshifted := shift2D(kspace, (kspace.Height+1)/2, (kspace.Width+1)/2)

	img := fft2D(unshifted, true)

	// Gonum's transforms are unnormalized; a forward/inverse pair scales
	// every sample by H*W
	scale := 1.0 / float64(kspace.Height*kspace.Width)
	out := models.NewGrid(kspace.Height, kspace.Width)
	for i, v := range img.Data {
		out.Data[i] = cmplx.Abs(v) * scale
	}
	return out, nil
}

// fft2D performs a 2D FFT (or its inverse) by transforming all rows and
// then all columns with Gonum's 1D complex FFT. The row-column
// decomposition is what makes frequency-domain filtering efficient.
func fft2D(data *models.ComplexGrid, inverse bool) *models.ComplexGrid {
	height, width := data.Height, data.Width
	result := models.NewComplexGrid(height, width)

	// Row-wise pass
	rowFFT := fourier.NewCmplxFFT(width)
	rowIn := make([]complex128, width)
	rowOut := make([]complex128, width)
	for y := 0; y < height; y++ {
		copy(rowIn, data.Data[y*width:(y+1)*width])
		if inverse {
			rowFFT.Sequence(rowOut, rowIn)
		} else {
			rowFFT.Coefficients(rowOut, rowIn)
		}
		copy(result.Data[y*width:(y+1)*width], rowOut)
	}

	// Column-wise pass over the row results
	colFFT := fourier.NewCmplxFFT(height)
	colIn := make([]complex128, height)
	colOut := make([]complex128, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			colIn[y] = result.Data[y*width+x]
		}
		if inverse {
			colFFT.Sequence(colOut, colIn)
		} else {
			colFFT.Coefficients(colOut, colIn)
		}
		for y := 0; y < height; y++ {
			result.Data[y*width+x] = colOut[y]
		}
	}

	return result
}

// shift2D circularly rolls the grid down by shiftY rows and right by
// shiftX columns. With floor half-sizes this is the centering shift
// (fftshift); with ceiling half-sizes it is the inverse (ifftshift).
// For even dimensions the two coincide.
func shift2D(data *models.ComplexGrid, shiftY, shiftX int) *models.ComplexGrid {
	height, width := data.Height, data.Width
	out := models.NewComplexGrid(height, width)
	for y := 0; y < height; y++ {
		dstY := (y + shiftY) % height
		for x := 0; x < width; x++ {
			dstX := (x + shiftX) % width
			out.Data[dstY*width+dstX] = data.Data[y*width+x]
		}
	}
	return out
}

// validateImage rejects degenerate inputs before any transform work
func validateImage(img *models.Grid) error {
	if img == nil || img.Height <= 0 || img.Width <= 0 {
		return &InvalidInputError{Reason: "image has a zero-sized dimension"}
	}
	if len(img.Data) != img.Height*img.Width {
		return &InvalidInputError{Reason: "image data length does not match dimensions"}
	}
	if !img.IsFinite() {
		return &InvalidInputError{Reason: "image contains NaN or Inf values"}
	}
	return nil
}

// validateKSpace rejects degenerate k-space arrays before the inverse
func validateKSpace(kspace *models.ComplexGrid) error {
	if kspace == nil || kspace.Height <= 0 || kspace.Width <= 0 {
		return &InvalidInputError{Reason: "k-space has a zero-sized dimension"}
	}
	if len(kspace.Data) != kspace.Height*kspace.Width {
		return &InvalidInputError{Reason: "k-space data length does not match dimensions"}
	}
	return nil
}
