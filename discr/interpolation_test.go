package discr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/sets"
	"github.com/lewiswr/odl/space"
)

// interpSetup builds a 1-D fixture: grid [1, 2, 3] on the domain [1, 3]
// with the sample values [10, 20, 30].
func interpSetup(t *testing.T) (*NearestInterpolation, space.DataVector) {
	t.Helper()
	grid, err := NewTensorGrid([]float64{1, 2, 3})
	require.NoError(t, err)
	domain, err := sets.NewInterval(1, 3)
	require.NoError(t, err)
	fspace, err := NewFunctionSpace(domain, sets.RealNumbers)
	require.NoError(t, err)
	rn, err := space.NewRn(3)
	require.NoError(t, err)
	op, err := NewNearestInterpolation(fspace, grid, rn, RowMajor)
	require.NoError(t, err)
	x, err := rn.Element([]float64{10, 20, 30})
	require.NoError(t, err)
	return op, x
}

func TestNearestExactAtGridPoints(t *testing.T) {
	op, x := interpSetup(t)

	f, err := op.Apply(x, VectorizeNone)
	require.NoError(t, err)

	for i, p := range []float64{1, 2, 3} {
		v, err := f.Call([]float64{p})
		require.NoError(t, err)
		assert.Equal(t, []float64{10, 20, 30}[i], v, "value at grid point %v", p)
	}
}

func TestNearestRounding(t *testing.T) {
	op, x := interpSetup(t)
	f, err := op.Apply(x, VectorizeNone)
	require.NoError(t, err)

	cases := []struct {
		query float64
		want  float64
	}{
		{1.4, 10},
		{1.6, 20},
		{2.5, 20}, // exact midpoint resolves to the lower neighbor
		{2.51, 30},
	}
	for _, tc := range cases {
		v, err := f.Call([]float64{tc.query})
		require.NoError(t, err)
		assert.Equal(t, tc.want, v, "query at %v", tc.query)
	}
}

func TestNearestClampsBeyondBoundary(t *testing.T) {
	op, x := interpSetup(t)
	f, err := op.Apply(x, VectorizeNone)
	require.NoError(t, err)

	v, err := f.Call([]float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v, "below the grid clamps to the first sample")

	v, err = f.Call([]float64{7.0})
	require.NoError(t, err)
	assert.Equal(t, 30.0, v, "above the grid clamps to the last sample")
}

func TestNearestArrayVariant(t *testing.T) {
	op, x := interpSetup(t)
	f, err := op.Apply(x, VectorizeArray)
	require.NoError(t, err)

	out, err := f.CallArray([][]float64{{1}, {1.6}, {3}})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, out)

	// in-place with an output buffer of the wrong length
	err = f.CallArrayInto(make([]float64, 2), [][]float64{{1}, {2}, {3}})
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)
}

func TestNearestMeshgridVariant(t *testing.T) {
	op, x := interpSetup(t)
	f, err := op.Apply(x, VectorizeMeshgrid)
	require.NoError(t, err)

	out, err := f.CallMeshgrid([][]float64{{1, 2.2, 2.9}})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, out)

	err = f.CallMeshgridInto(make([]float64, 5), [][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)
}

func TestNearestVectorLengthMismatch(t *testing.T) {
	op, _ := interpSetup(t)

	r4, err := space.NewRn(4)
	require.NoError(t, err)
	x, err := r4.Element([]float64{1, 2, 3, 4})
	require.NoError(t, err)

	_, err = op.Apply(x, VectorizeNone)
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)

	_, err = op.Apply(nil, VectorizeNone)
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)
}

func TestNearestTwoDim(t *testing.T) {
	grid, err := NewTensorGrid([]float64{1, 2}, []float64{3, 4, 5})
	require.NoError(t, err)
	domain, err := sets.NewRectangle([2]float64{1, 3}, [2]float64{2, 5})
	require.NoError(t, err)
	fspace, err := NewFunctionSpace(domain, sets.RealNumbers)
	require.NoError(t, err)
	rn, err := space.NewRn(6)
	require.NoError(t, err)

	op, err := NewNearestInterpolation(fspace, grid, rn, RowMajor)
	require.NoError(t, err)

	// row-major samples of f(x1, x2) = x1 - x2 at the grid points
	x, err := rn.Element([]float64{-2, -3, -4, -1, -2, -3})
	require.NoError(t, err)
	f, err := op.Apply(x, VectorizeNone)
	require.NoError(t, err)

	v, err := f.Call([]float64{1.1, 4.9})
	require.NoError(t, err)
	assert.Equal(t, -4.0, v, "rounds to grid point (1, 5)")

	v, err = f.Call([]float64{1.9, 3.2})
	require.NoError(t, err)
	assert.Equal(t, -1.0, v, "rounds to grid point (2, 3)")
}

func TestCollocationInterpolationRoundTrip(t *testing.T) {
	grid, err := NewTensorGrid([]float64{0, 0.5, 1, 1.5, 2})
	require.NoError(t, err)
	domain, err := sets.NewInterval(0, 2)
	require.NoError(t, err)
	fspace, err := NewFunctionSpace(domain, sets.RealNumbers)
	require.NoError(t, err)
	rn, err := space.NewRn(grid.NTotal())
	require.NoError(t, err)

	coll, err := NewGridCollocation(fspace, grid, rn, RowMajor)
	require.NoError(t, err)
	interp, err := NewNearestInterpolation(fspace, grid, rn, RowMajor)
	require.NoError(t, err)

	f := fspace.PointElement(func(p []float64) float64 { return p[0] * p[0] })
	x, err := coll.Apply(f)
	require.NoError(t, err)

	g, err := interp.Apply(x, VectorizeNone)
	require.NoError(t, err)
	y, err := coll.Apply(g)
	require.NoError(t, err)

	// collocation after interpolation reproduces the samples exactly
	xv, _ := x.Values()
	yv, _ := y.Values()
	assert.Equal(t, xv, yv)
}

func TestLinearInterpolationNotImplemented(t *testing.T) {
	grid, err := NewTensorGrid([]float64{1, 2, 3})
	require.NoError(t, err)
	domain, err := sets.NewInterval(1, 3)
	require.NoError(t, err)
	fspace, err := NewFunctionSpace(domain, sets.RealNumbers)
	require.NoError(t, err)
	rn, err := space.NewRn(3)
	require.NoError(t, err)

	_, err = NewLinearInterpolation(nil, grid, rn, RowMajor)
	assert.ErrorIs(t, err, odl.ErrTypeMismatch)

	op, err := NewLinearInterpolation(fspace, grid, rn, RowMajor)
	require.NoError(t, err)
	assert.True(t, op.IsLinear())

	x, err := rn.Element([]float64{10, 20, 30})
	require.NoError(t, err)
	_, err = op.Apply(x, VectorizeNone)
	assert.ErrorIs(t, err, odl.ErrNotImplemented)
}
