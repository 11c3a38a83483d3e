package discr

import (
	"fmt"
	"strings"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/sets"
)

// Vectorization tags the evaluation signature of a function element.
type Vectorization int

const (
	// VectorizeNone: evaluation of one point at a time.
	VectorizeNone Vectorization = iota + 1
	// VectorizeArray: one call over a slice of points.
	VectorizeArray
	// VectorizeMeshgrid: one call over per-axis coordinate arrays of
	// equal length (struct-of-arrays layout).
	VectorizeMeshgrid
)

// ParseVectorization accepts "none", "array" and "meshgrid",
// case-insensitively.
func ParseVectorization(s string) (Vectorization, error) {
	switch strings.ToLower(s) {
	case "none":
		return VectorizeNone, nil
	case "array":
		return VectorizeArray, nil
	case "meshgrid":
		return VectorizeMeshgrid, nil
	default:
		return 0, fmt.Errorf("%w: vectorization %q not understood",
			odl.ErrInvalidArgument, s)
	}
}

func (v Vectorization) String() string {
	switch v {
	case VectorizeNone:
		return "none"
	case VectorizeArray:
		return "array"
	case VectorizeMeshgrid:
		return "meshgrid"
	default:
		return fmt.Sprintf("Vectorization(%d)", int(v))
	}
}

// FuncSet is the abstract function-set collaborator of a discretization
// mapping: a collection of functions over a common interval-product
// domain. *FunctionSet and *FunctionSpace implement it.
type FuncSet interface {
	Domain() *sets.IntervalProd
	EqualsSet(other FuncSet) bool
}

// FunctionSet is a possibly non-linear set of real-valued functions on
// an interval-product domain.
type FunctionSet struct {
	domain *sets.IntervalProd
}

// NewFunctionSet creates a function set over the given domain.
func NewFunctionSet(domain *sets.IntervalProd) (*FunctionSet, error) {
	if domain == nil {
		return nil, fmt.Errorf("%w: nil domain", odl.ErrInvalidArgument)
	}
	return &FunctionSet{domain: domain}, nil
}

// Domain returns the common domain of the set's functions.
func (fs *FunctionSet) Domain() *sets.IntervalProd { return fs.domain }

// EqualsSet reports whether other is a FunctionSet over the same domain.
func (fs *FunctionSet) EqualsSet(other FuncSet) bool {
	o, ok := other.(*FunctionSet)
	return ok && fs.domain.Equals(o.domain)
}

func (fs *FunctionSet) String() string {
	return fmt.Sprintf("FunctionSet(%s)", fs.domain)
}

// FunctionSpace is a FunctionSet that is also a vector space over a
// scalar field. Linear discretization mappings require one.
type FunctionSpace struct {
	FunctionSet
	field sets.Field
}

// NewFunctionSpace creates a function space over the given domain and
// field.
func NewFunctionSpace(domain *sets.IntervalProd, field sets.Field) (*FunctionSpace, error) {
	fs, err := NewFunctionSet(domain)
	if err != nil {
		return nil, err
	}
	return &FunctionSpace{FunctionSet: *fs, field: field}, nil
}

// Field returns the scalar field of the space.
func (fs *FunctionSpace) Field() sets.Field { return fs.field }

// EqualsSet reports whether other is a FunctionSpace over the same
// domain and field.
func (fs *FunctionSpace) EqualsSet(other FuncSet) bool {
	o, ok := other.(*FunctionSpace)
	return ok && fs.domain.Equals(o.domain) && fs.field == o.field
}

func (fs *FunctionSpace) String() string {
	return fmt.Sprintf("FunctionSpace(%s, %s)", fs.domain, fs.field)
}

// PointFunc evaluates a function at a single point.
type PointFunc func(p []float64) float64

// ArrayFunc evaluates a function at a batch of points in one call.
type ArrayFunc func(points [][]float64) []float64

// MeshgridFunc evaluates a function over per-axis coordinate arrays of
// equal length; entry j of every slice is one coordinate of query j.
type MeshgridFunc func(axes [][]float64) []float64

// Function is an element of a function set: one of three explicit
// evaluation variants fixed at construction rather than inferred at
// call time.
type Function struct {
	set  FuncSet
	vect Vectorization

	point PointFunc
	array ArrayFunc
	mesh  MeshgridFunc

	// optional in-place paths; Call*Into falls back to the out-of-place
	// variant plus a copy when nil
	arrayInto func(out []float64, points [][]float64) error
	meshInto  func(out []float64, axes [][]float64) error
}

// PointElement wraps a pointwise callable as an element of the set.
func (fs *FunctionSet) PointElement(f PointFunc) *Function {
	return &Function{set: fs, vect: VectorizeNone, point: f}
}

// ArrayElement wraps an array-vectorized callable as an element of the
// set.
func (fs *FunctionSet) ArrayElement(f ArrayFunc) *Function {
	return &Function{set: fs, vect: VectorizeArray, array: f}
}

// MeshgridElement wraps a meshgrid-vectorized callable as an element of
// the set.
func (fs *FunctionSet) MeshgridElement(f MeshgridFunc) *Function {
	return &Function{set: fs, vect: VectorizeMeshgrid, mesh: f}
}

// PointElement wraps a pointwise callable as an element of the space.
func (fs *FunctionSpace) PointElement(f PointFunc) *Function {
	fn := fs.FunctionSet.PointElement(f)
	fn.set = fs
	return fn
}

// ArrayElement wraps an array-vectorized callable as an element of the
// space.
func (fs *FunctionSpace) ArrayElement(f ArrayFunc) *Function {
	fn := fs.FunctionSet.ArrayElement(f)
	fn.set = fs
	return fn
}

// MeshgridElement wraps a meshgrid-vectorized callable as an element of
// the space.
func (fs *FunctionSpace) MeshgridElement(f MeshgridFunc) *Function {
	fn := fs.FunctionSet.MeshgridElement(f)
	fn.set = fs
	return fn
}

// Set returns the function set this element belongs to.
func (f *Function) Set() FuncSet { return f.set }

// Vectorization returns the evaluation variant fixed at construction.
func (f *Function) Vectorization() Vectorization { return f.vect }

// Call evaluates at a single point. Only the pointwise variant supports
// this directly.
func (f *Function) Call(p []float64) (float64, error) {
	switch f.vect {
	case VectorizeNone:
		return f.point(p), nil
	case VectorizeArray:
		vals := f.array([][]float64{p})
		if len(vals) != 1 {
			return 0, fmt.Errorf("%w: array function returned %d values for one point",
				odl.ErrInvalidArgument, len(vals))
		}
		return vals[0], nil
	case VectorizeMeshgrid:
		axes := make([][]float64, len(p))
		for d, x := range p {
			axes[d] = []float64{x}
		}
		vals := f.mesh(axes)
		if len(vals) != 1 {
			return 0, fmt.Errorf("%w: meshgrid function returned %d values for one point",
				odl.ErrInvalidArgument, len(vals))
		}
		return vals[0], nil
	default:
		return 0, fmt.Errorf("%w: function has no evaluation variant", odl.ErrInvalidArgument)
	}
}

// CallArray evaluates at a batch of points.
func (f *Function) CallArray(points [][]float64) ([]float64, error) {
	if f.vect != VectorizeArray {
		return nil, fmt.Errorf("%w: function is %s-vectorized, not array",
			odl.ErrInvalidArgument, f.vect)
	}
	return f.array(points), nil
}

// CallArrayInto evaluates at a batch of points into a caller-supplied
// buffer, whose length must equal the number of points.
func (f *Function) CallArrayInto(out []float64, points [][]float64) error {
	if len(out) != len(points) {
		return fmt.Errorf("%w: output length %d, expected %d evaluation points",
			odl.ErrInvalidArgument, len(out), len(points))
	}
	if f.arrayInto != nil {
		return f.arrayInto(out, points)
	}
	vals, err := f.CallArray(points)
	if err != nil {
		return err
	}
	copy(out, vals)
	return nil
}

// CallMeshgrid evaluates over per-axis coordinate arrays of equal
// length.
func (f *Function) CallMeshgrid(axes [][]float64) ([]float64, error) {
	if f.vect != VectorizeMeshgrid {
		return nil, fmt.Errorf("%w: function is %s-vectorized, not meshgrid",
			odl.ErrInvalidArgument, f.vect)
	}
	return f.mesh(axes), nil
}

// CallMeshgridInto evaluates over per-axis coordinate arrays into a
// caller-supplied buffer, whose length must equal the common axis
// length.
func (f *Function) CallMeshgridInto(out []float64, axes [][]float64) error {
	if len(axes) == 0 {
		return fmt.Errorf("%w: empty meshgrid", odl.ErrInvalidArgument)
	}
	if len(out) != len(axes[0]) {
		return fmt.Errorf("%w: output length %d, expected %d evaluation points",
			odl.ErrInvalidArgument, len(out), len(axes[0]))
	}
	if f.meshInto != nil {
		return f.meshInto(out, axes)
	}
	vals, err := f.CallMeshgrid(axes)
	if err != nil {
		return err
	}
	copy(out, vals)
	return nil
}
