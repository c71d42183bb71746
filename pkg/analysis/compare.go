package analysis

import (
	"fmt"
	"strings"

	"mrkspace/internal/models"
	"mrkspace/pkg/reconstruction"
)

// MethodMetrics holds the quality metrics for one reconstruction method
type MethodMetrics struct {
	// Sharpness is the mean Sobel gradient magnitude
	Sharpness float64

	// Noise is the corner-patch standard deviation
	Noise float64

	// MAE is the mean absolute error against the reference; it is 0 for
	// the reference itself
	MAE float64
}

// ReportEntry pairs a reconstruction method with its metrics
type ReportEntry struct {
	Method  reconstruction.Method
	Metrics MethodMetrics
}

// Report is the comparison result for one input image. Entries follow
// the canonical method order (full, partial, lowpass, highpass)
// regardless of how the candidate map iterates, so report output is
// reproducible. The report is read-only once built.
type Report struct {
	Entries []ReportEntry
}

// Compare computes quality metrics for a set of candidate
// reconstructions against a reference.
//
// All candidates are first normalized by the reference maximum so the
// metrics are computed on one shared intensity scale. The reference
// itself, when present among the candidates, is reported with MAE 0.
//
// Parameters:
//   - reference: The gold-standard reconstruction (typically full k-space)
//   - candidates: Reconstructions keyed by method
//
// Returns:
//   - The ordered report, or a ShapeMismatchError if any candidate's
//     shape differs from the reference
func Compare(reference *models.Grid, candidates map[reconstruction.Method]*models.Grid) (*Report, error) {
	refMax := reference.Max()
	normRef := reconstruction.NormalizeByReference(reference, refMax)

	report := &Report{}
	for _, method := range reconstruction.Methods() {
		candidate, ok := candidates[method]
		if !ok {
			continue
		}

		normalized := reconstruction.NormalizeByReference(candidate, refMax)

		metrics := MethodMetrics{
			Sharpness: Sharpness(normalized),
			Noise:     Noise(normalized),
		}

		if candidate != reference {
			mae, err := MAE(normalized, normRef)
			if err != nil {
				return nil, fmt.Errorf("comparing %s against reference: %w", method, err)
			}
			metrics.MAE = mae
		}

		report.Entries = append(report.Entries, ReportEntry{
			Method:  method,
			Metrics: metrics,
		})
	}

	return report, nil
}

// String renders the report as an aligned text table
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-12s %-12s %-12s\n", "Method", "Sharpness", "Noise", "MAE")
	b.WriteString(strings.Repeat("-", 48))
	b.WriteString("\n")
	for _, entry := range r.Entries {
		fmt.Fprintf(&b, "%-12s %-12.4f %-12.4f %-12.4f\n",
			entry.Method, entry.Metrics.Sharpness, entry.Metrics.Noise, entry.Metrics.MAE)
	}
	return b.String()
}
