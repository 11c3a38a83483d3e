package discr

import (
	"fmt"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/space"
)

// GridCollocation is the restriction operator of a discretization: it
// evaluates a function at every grid point and packs the results into a
// vector of the data space using the configured flattening order.
//
// This is the default restriction used by all core discretization
// types.
type GridCollocation struct {
	FunctionSetMapping
}

// NewGridCollocation creates the collocation operator. The mapping is
// linear exactly when the function set is a function space.
func NewGridCollocation(fset FuncSet, grid *TensorGrid, dspace space.DataSpace,
	order Ordering) (*GridCollocation, error) {

	_, linear := fset.(*FunctionSpace)
	m, err := newFunctionSetMapping(Restriction, fset, grid, dspace, order, linear)
	if err != nil {
		return nil, err
	}
	return &GridCollocation{FunctionSetMapping: *m}, nil
}

// Apply samples the function at every grid point. The evaluation
// strategy follows the function's vectorization variant: meshgrid and
// array variants evaluate all points in one call, the pointwise
// fallback loops over individual points and is significantly slower.
func (op *GridCollocation) Apply(f *Function) (space.DataVector, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil function", odl.ErrInvalidArgument)
	}

	var values []float64
	var err error
	switch f.Vectorization() {
	case VectorizeMeshgrid:
		values, err = f.CallMeshgrid(op.grid.Meshgrid(op.order))
	case VectorizeArray:
		values, err = f.CallArray(op.grid.Points(op.order))
	default:
		points := op.grid.Points(op.order)
		values = make([]float64, len(points))
		for i, p := range points {
			values[i], err = f.Call(p)
			if err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}
	if len(values) != op.grid.NTotal() {
		return nil, fmt.Errorf("%w: function produced %d values for %d grid points",
			odl.ErrInvalidArgument, len(values), op.grid.NTotal())
	}
	return op.dspace.Element(values)
}

// Equals reports equality with another collocation operator.
func (op *GridCollocation) Equals(other *GridCollocation) bool {
	return other != nil && op.equalsMapping(&other.FunctionSetMapping)
}
