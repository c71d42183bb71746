package models

import (
	"math"
	"math/cmplx"
)

// Grid represents a real-valued 2D image or mask with metadata
type Grid struct {
	// Data is the grid values as a 1D array in row-major order
	Data []float64

	// Width is the number of columns in the grid
	Width int

	// Height is the number of rows in the grid
	Height int
}

// NewGrid creates a zero-valued grid with the given dimensions
func NewGrid(height, width int) *Grid {
	return &Grid{
		Data:   make([]float64, height*width),
		Width:  width,
		Height: height,
	}
}

// At returns the value at row y, column x
func (g *Grid) At(y, x int) float64 {
	return g.Data[y*g.Width+x]
}

// Set assigns the value at row y, column x
func (g *Grid) Set(y, x int, v float64) {
	g.Data[y*g.Width+x] = v
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Height, g.Width)
	copy(out.Data, g.Data)
	return out
}

// SameShape reports whether two grids have identical dimensions
func (g *Grid) SameShape(other *Grid) bool {
	return other != nil && g.Width == other.Width && g.Height == other.Height
}

// Max returns the maximum value in the grid, or 0 for an empty grid
func (g *Grid) Max() float64 {
	if len(g.Data) == 0 {
		return 0
	}
	max := g.Data[0]
	for _, v := range g.Data {
		if v > max {
			max = v
		}
	}
	return max
}

// IsFinite reports whether every value in the grid is finite
// (neither NaN nor infinite)
func (g *Grid) IsFinite() bool {
	for _, v := range g.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ComplexGrid represents a complex-valued 2D frequency-domain array.
// By convention the zero-frequency (DC) component sits at the grid
// center (Height/2, Width/2) once the centering shift has been applied.
type ComplexGrid struct {
	// Data is the complex values as a 1D array in row-major order
	Data []complex128

	// Width is the number of columns in the grid
	Width int

	// Height is the number of rows in the grid
	Height int
}

// NewComplexGrid creates a zero-valued complex grid with the given dimensions
func NewComplexGrid(height, width int) *ComplexGrid {
	return &ComplexGrid{
		Data:   make([]complex128, height*width),
		Width:  width,
		Height: height,
	}
}

// At returns the value at row y, column x
func (g *ComplexGrid) At(y, x int) complex128 {
	return g.Data[y*g.Width+x]
}

// Set assigns the value at row y, column x
func (g *ComplexGrid) Set(y, x int, v complex128) {
	g.Data[y*g.Width+x] = v
}

// Clone returns a deep copy of the complex grid
func (g *ComplexGrid) Clone() *ComplexGrid {
	out := NewComplexGrid(g.Height, g.Width)
	copy(out.Data, g.Data)
	return out
}

// Magnitude returns the elementwise absolute value as a real grid
func (g *ComplexGrid) Magnitude() *Grid {
	out := NewGrid(g.Height, g.Width)
	for i, v := range g.Data {
		out.Data[i] = cmplx.Abs(v)
	}
	return out
}

// Phase returns the elementwise argument as a real grid in [-pi, pi]
func (g *ComplexGrid) Phase() *Grid {
	out := NewGrid(g.Height, g.Width)
	for i, v := range g.Data {
		out.Data[i] = cmplx.Phase(v)
	}
	return out
}

// Real returns the elementwise real part as a real grid
func (g *ComplexGrid) Real() *Grid {
	out := NewGrid(g.Height, g.Width)
	for i, v := range g.Data {
		out.Data[i] = real(v)
	}
	return out
}
