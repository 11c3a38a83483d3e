package discr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/sets"
	"github.com/lewiswr/odl/space"
)

func uniformSetup(t *testing.T, begin, end float64, n int) *UniformDiscretization {
	t.Helper()
	domain, err := sets.NewInterval(begin, end)
	require.NoError(t, err)
	fspace, err := NewFunctionSpace(domain, sets.RealNumbers)
	require.NoError(t, err)
	rn, err := space.NewRn(n)
	require.NoError(t, err)
	d, err := NewUniformDiscretization(fspace, rn)
	require.NoError(t, err)
	return d
}

func TestUniformDiscretizationValidation(t *testing.T) {
	domain, err := sets.NewInterval(0, 1)
	require.NoError(t, err)
	fspace, err := NewFunctionSpace(domain, sets.RealNumbers)
	require.NoError(t, err)
	rn, err := space.NewRn(4)
	require.NoError(t, err)

	_, err = NewUniformDiscretization(nil, rn)
	assert.ErrorIs(t, err, odl.ErrTypeMismatch)

	_, err = NewUniformDiscretization(fspace, nil)
	assert.ErrorIs(t, err, odl.ErrTypeMismatch)

	r1, err := space.NewRn(1)
	require.NoError(t, err)
	_, err = NewUniformDiscretization(fspace, r1)
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)

	rect, err := sets.NewRectangle([2]float64{0, 0}, [2]float64{1, 1})
	require.NoError(t, err)
	f2, err := NewFunctionSpace(rect, sets.RealNumbers)
	require.NoError(t, err)
	_, err = NewUniformDiscretization(f2, rn)
	assert.ErrorIs(t, err, odl.ErrTypeMismatch)
}

func TestUniformDiscretizationPoints(t *testing.T) {
	d := uniformSetup(t, 0, 2, 5)
	assert.InDelta(t, 0.5, d.Scale(), 1e-14)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, d.Points())
}

func TestUniformDiscretizationElement(t *testing.T) {
	d := uniformSetup(t, 0, 2, 5)
	fspace := d.parent

	f := fspace.PointElement(func(p []float64) float64 { return p[0] * p[0] })
	x, err := d.Element(f)
	require.NoError(t, err)
	vals, err := x.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 1, 2.25, 4}, vals)
}

func TestUniformDiscretizationInnerNorm(t *testing.T) {
	d := uniformSetup(t, 0, 1, 11)

	one := d.parent.PointElement(func(p []float64) float64 { return 1 })
	x, err := d.Element(one)
	require.NoError(t, err)

	// <1, 1> = scale * n = 0.1 * 11 = 1.1 (endpoint-inclusive sampling)
	inner, err := d.Inner(x, x)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, inner, 1e-12)

	norm, err := d.Norm(x)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(1.1), norm, 1e-12)

	// Norm(x)^2 == Inner(x, x)
	assert.InDelta(t, inner, norm*norm, 1e-12)
}

func TestUniformDiscretizationIntegrate(t *testing.T) {
	d := uniformSetup(t, 0, math.Pi, 1001)

	f := d.parent.PointElement(func(p []float64) float64 { return math.Sin(p[0]) })
	x, err := d.Element(f)
	require.NoError(t, err)

	integral, err := d.Integrate(x)
	require.NoError(t, err)
	// int_0^pi sin = 2; riemann sum over 1001 samples is close
	assert.InDelta(t, 2.0, integral, 1e-2)
}

func TestUniformDiscretizationEquals(t *testing.T) {
	a := uniformSetup(t, 0, 1, 5)
	b := uniformSetup(t, 0, 1, 5)
	c := uniformSetup(t, 0, 1, 7)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func pixelSetup(t *testing.T, cols, rows int, order Ordering) *PixelDiscretization {
	t.Helper()
	domain, err := sets.NewRectangle([2]float64{0, 0}, [2]float64{1, 1})
	require.NoError(t, err)
	fspace, err := NewFunctionSpace(domain, sets.RealNumbers)
	require.NoError(t, err)
	rn, err := space.NewRn(cols * rows)
	require.NoError(t, err)
	d, err := NewPixelDiscretization(fspace, rn, cols, rows, order)
	require.NoError(t, err)
	return d
}

func TestPixelDiscretizationValidation(t *testing.T) {
	domain, err := sets.NewRectangle([2]float64{0, 0}, [2]float64{1, 1})
	require.NoError(t, err)
	fspace, err := NewFunctionSpace(domain, sets.RealNumbers)
	require.NoError(t, err)
	rn, err := space.NewRn(6)
	require.NoError(t, err)

	_, err = NewPixelDiscretization(nil, rn, 2, 3, RowMajor)
	assert.ErrorIs(t, err, odl.ErrTypeMismatch)

	_, err = NewPixelDiscretization(fspace, rn, 1, 6, RowMajor)
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)

	_, err = NewPixelDiscretization(fspace, rn, 2, 2, RowMajor)
	assert.ErrorIs(t, err, odl.ErrInvalidArgument, "6 != 2*2")

	_, err = NewPixelDiscretization(fspace, rn, 2, 3, Ordering(9))
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)

	interval, err := sets.NewInterval(0, 1)
	require.NoError(t, err)
	f1, err := NewFunctionSpace(interval, sets.RealNumbers)
	require.NoError(t, err)
	_, err = NewPixelDiscretization(f1, rn, 2, 3, RowMajor)
	assert.ErrorIs(t, err, odl.ErrTypeMismatch)
}

func TestPixelDiscretizationGrid(t *testing.T) {
	d := pixelSetup(t, 3, 2, RowMajor)
	grid, err := d.Grid()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, grid.Axis(0))
	assert.Equal(t, []float64{0, 1}, grid.Axis(1))
	assert.InDelta(t, 0.5, d.Scale(), 1e-14, "dx*dy = 0.5*1")
}

func TestPixelDiscretizationElement(t *testing.T) {
	d := pixelSetup(t, 2, 3, RowMajor)

	f := d.parent.PointElement(func(p []float64) float64 {
		return p[0] + 10*p[1]
	})
	x, err := d.Element(f)
	require.NoError(t, err)
	vals, err := x.Values()
	require.NoError(t, err)
	// pixels at x in {0, 1}, y in {0, 0.5, 1}; last axis fastest
	assert.Equal(t, []float64{0, 5, 10, 1, 6, 11}, vals)

	dF := pixelSetup(t, 2, 3, ColMajor)
	x, err = dF.Element(f)
	require.NoError(t, err)
	vals, err = x.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 5, 6, 10, 11}, vals)
}

func TestPixelDiscretizationElementFromMatrix(t *testing.T) {
	d := pixelSetup(t, 2, 3, RowMajor)

	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	x, err := d.ElementFromMatrix(m)
	require.NoError(t, err)
	vals, err := x.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, vals)

	dF := pixelSetup(t, 2, 3, ColMajor)
	x, err = dF.ElementFromMatrix(m)
	require.NoError(t, err)
	vals, err = x.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, vals)

	bad := mat.NewDense(3, 2, make([]float64, 6))
	_, err = d.ElementFromMatrix(bad)
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)
}

func TestPixelDiscretizationIntegrate(t *testing.T) {
	d := pixelSetup(t, 51, 51, RowMajor)

	one := d.parent.PointElement(func(p []float64) float64 { return 1 })
	x, err := d.Element(one)
	require.NoError(t, err)

	integral, err := d.Integrate(x)
	require.NoError(t, err)
	// unit square, constant one: area-weighted sum of 51*51 samples with
	// pixel area (1/50)^2 gives (51/50)^2
	assert.InDelta(t, 51.0*51.0/2500.0, integral, 1e-12)

	norm, err := d.Norm(x)
	require.NoError(t, err)
	assert.InDelta(t, 51.0/50.0, norm, 1e-12)
}

func TestPixelDiscretizationEquals(t *testing.T) {
	a := pixelSetup(t, 2, 3, RowMajor)
	b := pixelSetup(t, 2, 3, RowMajor)
	c := pixelSetup(t, 3, 2, RowMajor)
	d := pixelSetup(t, 2, 3, ColMajor)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(d))
	assert.False(t, a.Equals(nil))
}
