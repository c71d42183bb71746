package analysis

import (
	"math"
	"testing"

	"mrkspace/internal/models"
	"mrkspace/pkg/kspace"
)

// makeTestImage creates a grid filled by the given pattern function
func makeTestImage(height, width int, pattern func(y, x int) float64) *models.Grid {
	img := models.NewGrid(height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(y, x, pattern(y, x))
		}
	}
	return img
}

// TestSharpnessConstantImage verifies that a uniform image has zero
// edge content
func TestSharpnessConstantImage(t *testing.T) {
	img := makeTestImage(32, 32, func(y, x int) float64 { return 0.7 })

	if s := Sharpness(img); s != 0 {
		t.Errorf("Expected zero sharpness for constant image, got %f", s)
	}
}

// TestSharpnessRanking verifies that a hard edge scores higher than a
// smooth ramp of the same amplitude
func TestSharpnessRanking(t *testing.T) {
	size := 32

	step := makeTestImage(size, size, func(y, x int) float64 {
		if x >= size/2 {
			return 1.0
		}
		return 0.0
	})

	ramp := makeTestImage(size, size, func(y, x int) float64 {
		return float64(x) / float64(size-1)
	})

	stepSharpness := Sharpness(step)
	rampSharpness := Sharpness(ramp)

	if stepSharpness <= rampSharpness {
		t.Errorf("Step edge (%f) should be sharper than ramp (%f)", stepSharpness, rampSharpness)
	}
}

// TestNoiseConstantCorner verifies that a flat background yields zero
// noise and that corner variability is detected
func TestNoiseConstantCorner(t *testing.T) {
	flat := makeTestImage(64, 64, func(y, x int) float64 { return 0.2 })
	if n := Noise(flat); n != 0 {
		t.Errorf("Expected zero noise for flat image, got %f", n)
	}

	// Alternating values in the corner produce nonzero deviation
	noisy := makeTestImage(64, 64, func(y, x int) float64 {
		if (y+x)%2 == 0 {
			return 0.1
		}
		return 0.3
	})
	if n := Noise(noisy); n <= 0 {
		t.Errorf("Expected positive noise estimate, got %f", n)
	}
}

// TestNoiseIgnoresCentralStructure verifies that structure away from
// the corner patch does not contribute to the noise estimate
func TestNoiseIgnoresCentralStructure(t *testing.T) {
	img := makeTestImage(64, 64, func(y, x int) float64 {
		// Bright disc in the center, flat background
		dx := float64(x - 32)
		dy := float64(y - 32)
		if math.Sqrt(dx*dx+dy*dy) < 10 {
			return 1.0
		}
		return 0.0
	})

	if n := Noise(img); n != 0 {
		t.Errorf("Central structure leaked into corner noise estimate: %f", n)
	}
}

// TestMAEZeroIdentity verifies mae(X, X) == 0
func TestMAEZeroIdentity(t *testing.T) {
	img := makeTestImage(16, 16, func(y, x int) float64 {
		return math.Sin(float64(y*x) / 7.0)
	})

	mae, err := MAE(img, img)
	if err != nil {
		t.Fatalf("MAE failed: %v", err)
	}
	if mae != 0 {
		t.Errorf("Expected MAE 0 for identical images, got %f", mae)
	}
}

// TestMAENonNegativity verifies mae >= 0 and a known analytic value
func TestMAENonNegativity(t *testing.T) {
	a := makeTestImage(8, 8, func(y, x int) float64 { return 0.5 })
	b := makeTestImage(8, 8, func(y, x int) float64 { return 0.75 })

	mae, err := MAE(a, b)
	if err != nil {
		t.Fatalf("MAE failed: %v", err)
	}
	if mae < 0 {
		t.Errorf("MAE must be non-negative, got %f", mae)
	}
	if math.Abs(mae-0.25) > 1e-12 {
		t.Errorf("Expected MAE 0.25, got %f", mae)
	}

	// Symmetry
	reverse, err := MAE(b, a)
	if err != nil {
		t.Fatalf("MAE failed: %v", err)
	}
	if math.Abs(mae-reverse) > 1e-12 {
		t.Errorf("MAE should be symmetric: %f != %f", mae, reverse)
	}
}

// TestMAEShapeMismatch verifies the typed error for differing shapes
func TestMAEShapeMismatch(t *testing.T) {
	a := makeTestImage(8, 8, func(y, x int) float64 { return 0 })
	b := makeTestImage(8, 16, func(y, x int) float64 { return 0 })

	_, err := MAE(a, b)
	if err == nil {
		t.Fatal("Expected an error for mismatched shapes, got nil")
	}
	if _, ok := err.(*kspace.ShapeMismatchError); !ok {
		t.Errorf("Expected ShapeMismatchError, got %T: %v", err, err)
	}
}

// TestDifferenceMap verifies the elementwise absolute difference and
// its shape checking
func TestDifferenceMap(t *testing.T) {
	a := makeTestImage(4, 4, func(y, x int) float64 { return float64(x) })
	b := makeTestImage(4, 4, func(y, x int) float64 { return float64(y) })

	diff, err := DifferenceMap(a, b)
	if err != nil {
		t.Fatalf("DifferenceMap failed: %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			expected := math.Abs(float64(x) - float64(y))
			if diff.At(y, x) != expected {
				t.Errorf("(%d,%d): expected %f, got %f", y, x, expected, diff.At(y, x))
			}
		}
	}

	if _, err := DifferenceMap(a, makeTestImage(2, 2, func(y, x int) float64 { return 0 })); err == nil {
		t.Error("Expected shape mismatch error, got nil")
	}
}
