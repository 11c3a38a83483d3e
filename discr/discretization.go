package discr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/space"
)

// UniformDiscretization discretizes a function space over a 1-D
// interval onto n equispaced samples, delegating vector arithmetic to a
// backend inner-product algebra. Inner products and norms are weighted
// by the sample spacing so they approximate their continuous
// counterparts (trapezoid-style integration).
//
// The backend is held by composition and forwarded to explicitly; the
// discretization never takes on the backend's type.
type UniformDiscretization struct {
	parent  *FunctionSpace
	backend space.AlgebraSpace
	scale   float64
}

// NewUniformDiscretization connects an interval function space with a
// backend algebra of at least two samples.
func NewUniformDiscretization(parent *FunctionSpace, backend space.AlgebraSpace) (*UniformDiscretization, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: function space is missing", odl.ErrTypeMismatch)
	}
	if parent.Domain().NDim() != 1 {
		return nil, fmt.Errorf("%w: can only discretize intervals, domain is %s",
			odl.ErrTypeMismatch, parent.Domain())
	}
	if backend == nil {
		return nil, fmt.Errorf("%w: backend space is missing", odl.ErrTypeMismatch)
	}
	if backend.Size() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d",
			odl.ErrInvalidArgument, backend.Size())
	}
	scale := parent.Domain().Length(0) / float64(backend.Size()-1)
	return &UniformDiscretization{parent: parent, backend: backend, scale: scale}, nil
}

// Backend returns the underlying algebra the vectors live in.
func (d *UniformDiscretization) Backend() space.AlgebraSpace { return d.backend }

// Scale returns the sample spacing used as integration weight.
func (d *UniformDiscretization) Scale() float64 { return d.scale }

// Points returns the equispaced sample coordinates.
func (d *UniformDiscretization) Points() []float64 {
	n := d.backend.Size()
	begin := d.parent.Domain().Begin(0)
	points := make([]float64, n)
	for i := range points {
		points[i] = begin + float64(i)*d.scale
	}
	return points
}

// Element samples a function of the parent space at the discretization
// points.
func (d *UniformDiscretization) Element(f *Function) (space.DataVector, error) {
	points := d.Points()
	values := make([]float64, len(points))
	for i, x := range points {
		v, err := f.Call([]float64{x})
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return d.backend.Element(values)
}

// Inner returns the spacing-weighted inner product.
func (d *UniformDiscretization) Inner(x, y space.DataVector) (float64, error) {
	inner, err := d.backend.Inner(x, y)
	if err != nil {
		return 0, err
	}
	return inner * d.scale, nil
}

// Norm returns the spacing-weighted 2-norm.
func (d *UniformDiscretization) Norm(x space.DataVector) (float64, error) {
	norm, err := d.backend.Norm(x)
	if err != nil {
		return 0, err
	}
	return norm * math.Sqrt(d.scale), nil
}

// Integrate approximates the integral of the sampled function over the
// interval.
func (d *UniformDiscretization) Integrate(x space.DataVector) (float64, error) {
	sum, err := d.backend.Sum(x)
	if err != nil {
		return 0, err
	}
	return sum * d.scale, nil
}

// Equals reports equality of parent space and backend.
func (d *UniformDiscretization) Equals(other *UniformDiscretization) bool {
	return other != nil &&
		d.parent.EqualsSet(other.parent) &&
		d.backend.Equals(other.backend)
}

func (d *UniformDiscretization) String() string {
	return fmt.Sprintf("UniformDiscretization(%v)", d.backend)
}

// PixelDiscretization discretizes a function space over a 2-D rectangle
// onto a cols x rows pixel lattice, delegating vector arithmetic to a
// backend algebra of dimension cols*rows. The flattening order decides
// how pixel data maps to flat vector indices.
type PixelDiscretization struct {
	parent  *FunctionSpace
	backend space.AlgebraSpace
	cols    int
	rows    int
	order   Ordering
	scale   float64
}

// NewPixelDiscretization connects a rectangle function space with a
// backend algebra of dimension cols*rows.
func NewPixelDiscretization(parent *FunctionSpace, backend space.AlgebraSpace,
	cols, rows int, order Ordering) (*PixelDiscretization, error) {

	if parent == nil {
		return nil, fmt.Errorf("%w: function space is missing", odl.ErrTypeMismatch)
	}
	if parent.Domain().NDim() != 2 {
		return nil, fmt.Errorf("%w: can only discretize rectangles, domain is %s",
			odl.ErrTypeMismatch, parent.Domain())
	}
	if backend == nil {
		return nil, fmt.Errorf("%w: backend space is missing", odl.ErrTypeMismatch)
	}
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("%w: need at least 2x2 pixels, got %dx%d",
			odl.ErrInvalidArgument, cols, rows)
	}
	if backend.Size() != cols*rows {
		return nil, fmt.Errorf("%w: dimensions do not match, expected %dx%d = %d, got %d",
			odl.ErrInvalidArgument, cols, rows, cols*rows, backend.Size())
	}
	if !order.Valid() {
		return nil, fmt.Errorf("%w: ordering %d not understood",
			odl.ErrInvalidArgument, int(order))
	}

	dx := parent.Domain().Length(0) / float64(cols-1)
	dy := parent.Domain().Length(1) / float64(rows-1)
	return &PixelDiscretization{
		parent:  parent,
		backend: backend,
		cols:    cols,
		rows:    rows,
		order:   order,
		scale:   dx * dy,
	}, nil
}

// Backend returns the underlying algebra the vectors live in.
func (d *PixelDiscretization) Backend() space.AlgebraSpace { return d.backend }

// Scale returns the pixel area used as integration weight.
func (d *PixelDiscretization) Scale() float64 { return d.scale }

// Grid returns the pixel lattice as a tensor grid.
func (d *PixelDiscretization) Grid() (*TensorGrid, error) {
	dom := d.parent.Domain()
	xs := make([]float64, d.cols)
	for i := range xs {
		xs[i] = dom.Begin(0) + float64(i)*dom.Length(0)/float64(d.cols-1)
	}
	ys := make([]float64, d.rows)
	for j := range ys {
		ys[j] = dom.Begin(1) + float64(j)*dom.Length(1)/float64(d.rows-1)
	}
	return NewTensorGrid(xs, ys)
}

// Element samples a function of the parent space at all pixel centers,
// flattened in the discretization's order.
func (d *PixelDiscretization) Element(f *Function) (space.DataVector, error) {
	grid, err := d.Grid()
	if err != nil {
		return nil, err
	}
	points := grid.Points(d.order)
	values := make([]float64, len(points))
	for i, p := range points {
		values[i], err = f.Call(p)
		if err != nil {
			return nil, err
		}
	}
	return d.backend.Element(values)
}

// ElementFromMatrix flattens a cols x rows matrix of pixel values in
// the discretization's order.
func (d *PixelDiscretization) ElementFromMatrix(m mat.Matrix) (space.DataVector, error) {
	r, c := m.Dims()
	if r != d.cols || c != d.rows {
		return nil, fmt.Errorf("%w: matrix is %dx%d, expected %dx%d",
			odl.ErrInvalidArgument, r, c, d.cols, d.rows)
	}
	values := make([]float64, d.cols*d.rows)
	k := 0
	if d.order == RowMajor {
		for i := 0; i < d.cols; i++ {
			for j := 0; j < d.rows; j++ {
				values[k] = m.At(i, j)
				k++
			}
		}
	} else {
		for j := 0; j < d.rows; j++ {
			for i := 0; i < d.cols; i++ {
				values[k] = m.At(i, j)
				k++
			}
		}
	}
	return d.backend.Element(values)
}

// Inner returns the area-weighted inner product.
func (d *PixelDiscretization) Inner(x, y space.DataVector) (float64, error) {
	inner, err := d.backend.Inner(x, y)
	if err != nil {
		return 0, err
	}
	return inner * d.scale, nil
}

// Norm returns the area-weighted 2-norm.
func (d *PixelDiscretization) Norm(x space.DataVector) (float64, error) {
	norm, err := d.backend.Norm(x)
	if err != nil {
		return 0, err
	}
	return norm * math.Sqrt(d.scale), nil
}

// Integrate approximates the integral of the sampled function over the
// rectangle.
func (d *PixelDiscretization) Integrate(x space.DataVector) (float64, error) {
	sum, err := d.backend.Sum(x)
	if err != nil {
		return 0, err
	}
	return sum * d.scale, nil
}

// Equals reports equality of shape, parent space and backend.
func (d *PixelDiscretization) Equals(other *PixelDiscretization) bool {
	return other != nil &&
		d.cols == other.cols && d.rows == other.rows &&
		d.order == other.order &&
		d.parent.EqualsSet(other.parent) &&
		d.backend.Equals(other.backend)
}

func (d *PixelDiscretization) String() string {
	return fmt.Sprintf("PixelDiscretization(%v, %dx%d)", d.backend, d.cols, d.rows)
}
