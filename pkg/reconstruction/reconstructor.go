// Package reconstruction orchestrates the four k-space reconstruction
// strategies: full sampling, partial (undersampled) acquisition, and
// Gaussian low-pass and high-pass filtering. Each strategy transforms
// the input image into k-space, optionally masks it, and inverse
// transforms the result back into a magnitude image.
package reconstruction

import (
	"fmt"

	"mrkspace/internal/models"
	"mrkspace/pkg/kspace"
)

// Method identifies one of the four reconstruction strategies. The set
// is closed: every consumer can dispatch exhaustively over it, and the
// comparison stage relies on the canonical order returned by Methods.
type Method int

const (
	// Full uses the complete k-space data with no mask. It is the
	// gold-standard reference against which the others are compared.
	Full Method = iota

	// Partial retains only a centered low-frequency rectangle,
	// simulating undersampled acquisition.
	Partial

	// Lowpass applies a Gaussian low-pass mask, preserving coarse
	// structure while attenuating edges.
	Lowpass

	// Highpass applies the complementary Gaussian high-pass mask,
	// preserving edges while suppressing the DC term.
	Highpass
)

// String returns the lowercase method name used in filenames and reports
func (m Method) String() string {
	switch m {
	case Full:
		return "full"
	case Partial:
		return "partial"
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Methods returns all reconstruction methods in canonical order
func Methods() []Method {
	return []Method{Full, Partial, Lowpass, Highpass}
}

// Params holds the mask parameters for one reconstruction call. They are
// passed explicitly so that calls are independent and safe to run in
// parallel; there is no shared configuration state.
type Params struct {
	// PartialFraction is the fraction of rows and columns retained by
	// the partial acquisition mask, in (0, 1]
	PartialFraction float64

	// LowpassSigmaFraction controls the Gaussian low-pass width as a
	// fraction of the grid's maximum radius, in (0, 1)
	LowpassSigmaFraction float64

	// HighpassSigmaFraction controls the Gaussian high-pass width as a
	// fraction of the grid's maximum radius, in (0, 1)
	HighpassSigmaFraction float64
}

// DefaultParams returns the parameter values used throughout the study:
// half the linear k-space extent for partial acquisition and a 5% sigma
// for both Gaussian filters
func DefaultParams() Params {
	return Params{
		PartialFraction:       0.5,
		LowpassSigmaFraction:  0.05,
		HighpassSigmaFraction: 0.05,
	}
}

// Engine runs k-space reconstructions. It holds no mutable state beyond
// the spectral transform, so one engine may serve concurrent callers.
type Engine struct {
	transform *kspace.Transform
}

// NewEngine creates a new reconstruction engine
func NewEngine() *Engine {
	return &Engine{
		transform: kspace.NewTransform(),
	}
}

// Reconstruct runs a single reconstruction strategy on an image.
//
// Parameters:
//   - img: Input image grid
//   - method: Which reconstruction strategy to apply
//   - params: Mask parameters for the masked strategies
//
// Returns:
//   - The reconstructed magnitude image, or an error from input
//     validation or mask construction
func (e *Engine) Reconstruct(img *models.Grid, method Method, params Params) (*models.Grid, error) {
	full, err := e.transform.Forward(img)
	if err != nil {
		return nil, err
	}
	return e.reconstructFromKSpace(full, method, params)
}

// ReconstructAll produces all four reconstructions of one image,
// sharing a single forward transform. The variants are computed
// concurrently since masking never mutates the shared k-space array.
func (e *Engine) ReconstructAll(img *models.Grid, params Params) (map[Method]*models.Grid, error) {
	full, err := e.transform.Forward(img)
	if err != nil {
		return nil, err
	}

	type reconResult struct {
		method Method
		image  *models.Grid
		err    error
	}

	methods := Methods()
	resultChan := make(chan reconResult, len(methods))

	for _, method := range methods {
		go func(m Method) {
			image, err := e.reconstructFromKSpace(full, m, params)
			resultChan <- reconResult{method: m, image: image, err: err}
		}(method)
	}

	results := make(map[Method]*models.Grid, len(methods))
	for range methods {
		res := <-resultChan
		if res.err != nil {
			return nil, fmt.Errorf("%s reconstruction failed: %w", res.method, res.err)
		}
		results[res.method] = res.image
	}

	return results, nil
}

// reconstructFromKSpace applies the method's mask to an already
// transformed k-space array and inverts it. The shared array is never
// mutated; masking always produces a new array.
func (e *Engine) reconstructFromKSpace(full *models.ComplexGrid, method Method, params Params) (*models.Grid, error) {
	var masked *models.ComplexGrid

	switch method {
	case Full:
		masked = full
	case Partial:
		mask, err := kspace.PartialMask(full.Height, full.Width, params.PartialFraction)
		if err != nil {
			return nil, err
		}
		if masked, err = kspace.ApplyMask(full, mask); err != nil {
			return nil, err
		}
	case Lowpass:
		mask, err := kspace.GaussianLowpassMask(full.Height, full.Width, params.LowpassSigmaFraction)
		if err != nil {
			return nil, err
		}
		if masked, err = kspace.ApplyMask(full, mask); err != nil {
			return nil, err
		}
	case Highpass:
		mask, err := kspace.GaussianHighpassMask(full.Height, full.Width, params.HighpassSigmaFraction)
		if err != nil {
			return nil, err
		}
		if masked, err = kspace.ApplyMask(full, mask); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown reconstruction method: %v", method)
	}

	return e.transform.Inverse(masked)
}

// Transform exposes the engine's spectral transform so callers can
// inspect the k-space of an image directly, e.g. for visualization
func (e *Engine) Transform() *kspace.Transform {
	return e.transform
}

// NormalizeByReference scales an image by a reference maximum so that
// all reconstructions of one input share a single intensity scale. A
// zero reference leaves the values unchanged.
func NormalizeByReference(img *models.Grid, refMax float64) *models.Grid {
	out := img.Clone()
	if refMax == 0 {
		return out
	}
	for i := range out.Data {
		out.Data[i] /= refMax
	}
	return out
}
