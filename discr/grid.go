// Package discr implements the bridge between continuous function sets
// and discrete data spaces: tensor sampling grids, grid-based
// discretization mappings (collocation, nearest-neighbor and linear
// interpolation) and composed uniform/pixel discretizations.
package discr

import (
	"fmt"
	"strings"

	"github.com/lewiswr/odl"
)

// Ordering is the convention for mapping multi-dimensional grid data to
// a flat vector index.
type Ordering int

const (
	// RowMajor ("C"): the last grid axis varies fastest.
	RowMajor Ordering = iota + 1
	// ColMajor ("F"): the first grid axis varies fastest.
	ColMajor
)

// ParseOrdering accepts "C" and "F", case-insensitively.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToUpper(s) {
	case "C":
		return RowMajor, nil
	case "F":
		return ColMajor, nil
	default:
		return 0, fmt.Errorf("%w: ordering %q not understood", odl.ErrInvalidArgument, s)
	}
}

// Valid reports whether the ordering is one of the two recognized
// values.
func (o Ordering) Valid() bool { return o == RowMajor || o == ColMajor }

func (o Ordering) String() string {
	switch o {
	case RowMajor:
		return "C"
	case ColMajor:
		return "F"
	default:
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
}

// TensorGrid is a structured sampling lattice: the cartesian product of
// per-axis strictly ascending coordinate vectors. Spacing may be
// non-uniform.
type TensorGrid struct {
	axes   [][]float64
	shape  []int
	ntotal int
}

// NewTensorGrid builds a grid from per-axis coordinate vectors. Every
// axis must be non-empty and strictly ascending.
func NewTensorGrid(axes ...[]float64) (*TensorGrid, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: grid needs at least one axis", odl.ErrInvalidArgument)
	}
	g := &TensorGrid{
		axes:   make([][]float64, len(axes)),
		shape:  make([]int, len(axes)),
		ntotal: 1,
	}
	for d, axis := range axes {
		if len(axis) == 0 {
			return nil, fmt.Errorf("%w: axis %d is empty", odl.ErrInvalidArgument, d)
		}
		for i := 1; i < len(axis); i++ {
			if axis[i] <= axis[i-1] {
				return nil, fmt.Errorf("%w: axis %d must be strictly ascending",
					odl.ErrInvalidArgument, d)
			}
		}
		g.axes[d] = append([]float64(nil), axis...)
		g.shape[d] = len(axis)
		g.ntotal *= len(axis)
	}
	return g, nil
}

// NDim returns the number of axes.
func (g *TensorGrid) NDim() int { return len(g.axes) }

// Shape returns the per-axis point counts.
func (g *TensorGrid) Shape() []int { return append([]int(nil), g.shape...) }

// NTotal returns the total number of grid points.
func (g *TensorGrid) NTotal() int { return g.ntotal }

// Axis returns the coordinate vector of the given axis.
func (g *TensorGrid) Axis(d int) []float64 { return g.axes[d] }

// Min returns the lower corner of the grid's convex hull.
func (g *TensorGrid) Min() []float64 {
	min := make([]float64, len(g.axes))
	for d, axis := range g.axes {
		min[d] = axis[0]
	}
	return min
}

// Max returns the upper corner of the grid's convex hull.
func (g *TensorGrid) Max() []float64 {
	max := make([]float64, len(g.axes))
	for d, axis := range g.axes {
		max[d] = axis[len(axis)-1]
	}
	return max
}

// Strides returns the flat-index stride of each axis under the given
// ordering: flat = sum_d index[d]*stride[d].
func (g *TensorGrid) Strides(order Ordering) []int {
	strides := make([]int, len(g.shape))
	if order == ColMajor {
		acc := 1
		for d := 0; d < len(g.shape); d++ {
			strides[d] = acc
			acc *= g.shape[d]
		}
	} else {
		acc := 1
		for d := len(g.shape) - 1; d >= 0; d-- {
			strides[d] = acc
			acc *= g.shape[d]
		}
	}
	return strides
}

// Points returns all grid points flattened in the given ordering, one
// coordinate slice per point.
func (g *TensorGrid) Points(order Ordering) [][]float64 {
	strides := g.Strides(order)
	points := make([][]float64, g.ntotal)
	for j := 0; j < g.ntotal; j++ {
		p := make([]float64, len(g.axes))
		for d := range g.axes {
			p[d] = g.axes[d][(j/strides[d])%g.shape[d]]
		}
		points[j] = p
	}
	return points
}

// Meshgrid returns the per-axis coordinate arrays expanded to the full
// point count and flattened in the given ordering. Entry j of every
// slice holds one coordinate of grid point j, so a vectorized function
// can evaluate all points in a single call over equal-length arrays.
func (g *TensorGrid) Meshgrid(order Ordering) [][]float64 {
	strides := g.Strides(order)
	mesh := make([][]float64, len(g.axes))
	for d := range g.axes {
		expanded := make([]float64, g.ntotal)
		for j := 0; j < g.ntotal; j++ {
			expanded[j] = g.axes[d][(j/strides[d])%g.shape[d]]
		}
		mesh[d] = expanded
	}
	return mesh
}

// Equals reports structural equality of two grids.
func (g *TensorGrid) Equals(other *TensorGrid) bool {
	if other == nil || len(g.axes) != len(other.axes) {
		return false
	}
	for d := range g.axes {
		if len(g.axes[d]) != len(other.axes[d]) {
			return false
		}
		for i := range g.axes[d] {
			if g.axes[d][i] != other.axes[d][i] {
				return false
			}
		}
	}
	return true
}

func (g *TensorGrid) String() string {
	dims := make([]string, len(g.shape))
	for d, s := range g.shape {
		dims[d] = fmt.Sprintf("%d", s)
	}
	return fmt.Sprintf("TensorGrid(%s)", strings.Join(dims, "x"))
}
