package discr

import (
	"fmt"
	"sort"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/space"
)

// NearestInterpolation is the extension operator of a discretization:
// it reconstructs a continuous function from discrete sample values by
// nearest-grid-point lookup. Beyond-boundary queries clamp to the
// nearest grid value; there is no out-of-bounds error.
type NearestInterpolation struct {
	FunctionSetMapping
}

// NewNearestInterpolation creates the interpolation operator. The
// mapping is linear exactly when the function set is a function space.
func NewNearestInterpolation(fset FuncSet, grid *TensorGrid, dspace space.DataSpace,
	order Ordering) (*NearestInterpolation, error) {

	_, linear := fset.(*FunctionSpace)
	m, err := newFunctionSetMapping(Extension, fset, grid, dspace, order, linear)
	if err != nil {
		return nil, err
	}
	return &NearestInterpolation{FunctionSetMapping: *m}, nil
}

// Apply turns the discrete vector into a callable function of the
// requested vectorization variant. The sample values are transferred to
// the host once per call; the returned function is stateless and
// side-effect-free apart from optional caller-supplied output buffers.
func (op *NearestInterpolation) Apply(x space.DataVector, vect Vectorization) (*Function, error) {
	if x == nil || x.Len() != op.grid.NTotal() {
		length := -1
		if x != nil {
			length = x.Len()
		}
		return nil, fmt.Errorf("%w: vector of length %d for grid with %d points",
			odl.ErrInvalidArgument, length, op.grid.NTotal())
	}

	values, err := x.Values()
	if err != nil {
		return nil, err
	}
	ev := &nearestEvaluator{
		axes:    op.grid.axes,
		strides: op.grid.Strides(op.order),
		values:  values,
	}

	switch vect {
	case VectorizeNone:
		fn := op.functionSet().PointElement(func(p []float64) float64 {
			v, _ := ev.at(p)
			return v
		})
		return fn, nil
	case VectorizeArray:
		fn := op.functionSet().ArrayElement(func(points [][]float64) []float64 {
			out := make([]float64, len(points))
			_ = ev.atPoints(out, points)
			return out
		})
		fn.arrayInto = ev.atPoints
		return fn, nil
	case VectorizeMeshgrid:
		fn := op.functionSet().MeshgridElement(func(axes [][]float64) []float64 {
			out := make([]float64, meshLen(axes))
			_ = ev.atMeshgrid(out, axes)
			return out
		})
		fn.meshInto = ev.atMeshgrid
		return fn, nil
	default:
		return nil, fmt.Errorf("%w: vectorization %d not understood",
			odl.ErrInvalidArgument, int(vect))
	}
}

func (op *NearestInterpolation) functionSet() *FunctionSet {
	switch fs := op.fset.(type) {
	case *FunctionSet:
		return fs
	case *FunctionSpace:
		return &fs.FunctionSet
	default:
		return nil
	}
}

// Equals reports equality with another nearest-neighbor interpolation
// operator.
func (op *NearestInterpolation) Equals(other *NearestInterpolation) bool {
	return other != nil && op.equalsMapping(&other.FunctionSetMapping)
}

func meshLen(axes [][]float64) int {
	if len(axes) == 0 {
		return 0
	}
	return len(axes[0])
}

// nearestEvaluator holds the host-transferred sample values together
// with the grid axes and the flat-index strides of the mapping's
// flattening order.
type nearestEvaluator struct {
	axes    [][]float64
	strides []int
	values  []float64
}

// index resolves one query coordinate on one axis: binary-search the
// bracketing interval, clamp to [0, len-2] so boundary and out-of-range
// queries resolve to the nearest valid interval, then round to the
// nearer endpoint. A fractional distance of exactly one half rounds to
// the lower index.
func (ev *nearestEvaluator) index(d int, x float64) int {
	axis := ev.axes[d]
	if len(axis) == 1 {
		return 0
	}
	i := sort.SearchFloat64s(axis, x) - 1
	if i < 0 {
		i = 0
	}
	if i > len(axis)-2 {
		i = len(axis) - 2
	}
	frac := (x - axis[i]) / (axis[i+1] - axis[i])
	if frac > 0.5 {
		i++
	}
	return i
}

func (ev *nearestEvaluator) at(p []float64) (float64, error) {
	if len(p) != len(ev.axes) {
		return 0, fmt.Errorf("%w: point of dimension %d on a grid of dimension %d",
			odl.ErrInvalidArgument, len(p), len(ev.axes))
	}
	flat := 0
	for d, x := range p {
		flat += ev.index(d, x) * ev.strides[d]
	}
	return ev.values[flat], nil
}

func (ev *nearestEvaluator) atPoints(out []float64, points [][]float64) error {
	if len(out) != len(points) {
		return fmt.Errorf("%w: output length %d, expected %d evaluation points",
			odl.ErrInvalidArgument, len(out), len(points))
	}
	for j, p := range points {
		v, err := ev.at(p)
		if err != nil {
			return err
		}
		out[j] = v
	}
	return nil
}

func (ev *nearestEvaluator) atMeshgrid(out []float64, axes [][]float64) error {
	if len(axes) != len(ev.axes) {
		return fmt.Errorf("%w: meshgrid of dimension %d on a grid of dimension %d",
			odl.ErrInvalidArgument, len(axes), len(ev.axes))
	}
	n := meshLen(axes)
	for _, axis := range axes {
		if len(axis) != n {
			return fmt.Errorf("%w: ragged meshgrid axes", odl.ErrInvalidArgument)
		}
	}
	if len(out) != n {
		return fmt.Errorf("%w: output length %d, expected %d evaluation points",
			odl.ErrInvalidArgument, len(out), n)
	}
	for j := 0; j < n; j++ {
		flat := 0
		for d := range axes {
			flat += ev.index(d, axes[d][j]) * ev.strides[d]
		}
		out[j] = ev.values[flat]
	}
	return nil
}

// LinearInterpolation is the multilinear extension operator. Its
// construction validates the full mapping contract, but evaluation is
// deliberately unfinished and always fails with ErrNotImplemented.
//
// TODO: n-linear barycentric interpolation reusing nearestEvaluator's
// axis-bracketing search, weighting the 2^d cell corners by the
// fractional positions instead of rounding.
type LinearInterpolation struct {
	FunctionSetMapping
}

// NewLinearInterpolation creates the operator. The function side must
// be a function space over the data space's field.
func NewLinearInterpolation(fspace *FunctionSpace, grid *TensorGrid,
	dspace space.DataSpace, order Ordering) (*LinearInterpolation, error) {

	if fspace == nil {
		return nil, fmt.Errorf("%w: function space is missing", odl.ErrTypeMismatch)
	}
	m, err := newFunctionSetMapping(Extension, fspace, grid, dspace, order, true)
	if err != nil {
		return nil, err
	}
	return &LinearInterpolation{FunctionSetMapping: *m}, nil
}

// Apply always fails: multilinear evaluation is not implemented.
func (op *LinearInterpolation) Apply(x space.DataVector, vect Vectorization) (*Function, error) {
	return nil, fmt.Errorf("%w: linear interpolation evaluation", odl.ErrNotImplemented)
}

// Equals reports equality with another linear interpolation operator.
func (op *LinearInterpolation) Equals(other *LinearInterpolation) bool {
	return other != nil && op.equalsMapping(&other.FunctionSetMapping)
}
