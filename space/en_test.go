package space_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/device"
	"github.com/lewiswr/odl/space"
	"github.com/lewiswr/odl/utils"
)

func TestEnConstruction(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	for _, dt := range []device.DType{device.Float32, device.Uint8} {
		s, err := space.NewEn(dev, 3, dt)
		require.NoError(t, err)
		assert.Equal(t, 3, s.Size())
		assert.Equal(t, dt, s.DType())
	}

	_, err := space.NewEn(dev, 0, device.Float32)
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)
	_, err = space.NewEn(dev, -1, device.Float32)
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)
	_, err = space.NewEn(dev, 3, device.DType(42))
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)
}

func TestEnEquality(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	r3a, _ := space.NewEn(dev, 3, device.Float32)
	r3b, _ := space.NewEn(dev, 3, device.Float32)
	r4, _ := space.NewEn(dev, 4, device.Float32)
	u3, _ := space.NewEn(dev, 3, device.Uint8)

	assert.True(t, r3a.Equals(r3a))
	assert.True(t, r3a.Equals(r3b))
	assert.False(t, r3a.Equals(r4))
	assert.False(t, r3a.Equals(u3))
}

func TestEnZero(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	for _, dt := range []device.DType{device.Float32, device.Uint8} {
		s, _ := space.NewEn(dev, 9, dt)
		z, err := s.Zero()
		require.NoError(t, err)
		defer z.Free()

		vals, err := z.Values()
		require.NoError(t, err)
		for i, v := range vals {
			assert.Zerof(t, v, "component %d of %s zero vector", i, dt)
		}
	}
}

func TestEnElementRoundTrip(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	s, _ := space.NewEn(dev, 3, device.Float32)
	x, err := s.NewElement([]float64{1, 2, 3}, nil)
	require.NoError(t, err)
	defer x.Free()

	vals, err := x.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, vals)
}

func TestEnElementExclusiveArguments(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	s, _ := space.NewEn(dev, 3, device.Float32)
	x, err := s.NewElement([]float64{1, 2, 3}, nil)
	require.NoError(t, err)
	defer x.Free()

	// both host data and device memory supplied
	_, err = s.NewElement([]float64{4, 5, 6}, x.RawMemory())
	assert.ErrorIs(t, err, odl.ErrInvalidArgument)
}

func TestEnElementWrapsExternalMemory(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	s, _ := space.NewEn(dev, 3, device.Float32)
	owner, err := s.NewElement([]float64{1, 2, 3}, nil)
	require.NoError(t, err)
	defer owner.Free()

	view, err := s.NewElement(nil, owner.RawMemory())
	require.NoError(t, err)
	assert.False(t, view.Buffer().Owned())

	vals, err := view.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, vals)

	// writes through the view are visible to the owner
	require.NoError(t, view.SetAt(0, 9))
	v, err := owner.At(0)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	// freeing the view must not release the owner's buffer
	view.Free()
	vals, err = owner.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 2, 3}, vals)
}

func TestEnLinComb(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	s, _ := space.NewEn(dev, 3, device.Float32)
	x, _ := s.NewElement([]float64{1, 2, 3}, nil)
	y, _ := s.NewElement([]float64{4, 5, 6}, nil)
	z, _ := s.NewElement(nil, nil)
	defer x.Free()
	defer y.Free()
	defer z.Free()

	require.NoError(t, s.LinComb(z, 2, x, 3, y))
	vals, err := z.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{14, 19, 24}, vals)
}

func TestDeviceRnInnerNormAgree(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	rn, err := space.NewDeviceRn(dev, 3)
	require.NoError(t, err)

	x, _ := rn.NewElement([]float64{2, 3, 6}, nil)
	defer x.Free()

	inner, err := rn.Inner(x, x)
	require.NoError(t, err)
	norm, err := rn.Norm(x)
	require.NoError(t, err)

	assert.InDelta(t, 49, inner, 1e-4)
	assert.InDelta(t, 7, norm, 1e-4)
	assert.InDelta(t, math.Sqrt(inner), norm, 1e-4)
}

func TestDeviceRnMultiply(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	rn, _ := space.NewDeviceRn(dev, 3)
	x, _ := rn.NewElement([]float64{5, 3, 2}, nil)
	y, _ := rn.NewElement([]float64{1, 2, 3}, nil)
	defer x.Free()
	defer y.Free()

	require.NoError(t, rn.Multiply(x, y))
	vals, err := y.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 6}, vals)
}

func TestDeviceRnSum(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	rn, _ := space.NewDeviceRn(dev, 4)
	x, _ := rn.NewElement([]float64{1, 2, 3, 4}, nil)
	defer x.Free()

	sum, err := rn.Sum(x)
	require.NoError(t, err)
	assert.InDelta(t, 10, sum, 1e-4)
}

func TestVectorSliceAccess(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	s, _ := space.NewEn(dev, 5, device.Float32)
	x, _ := s.NewElement([]float64{1, 2, 3, 4, 5}, nil)
	defer x.Free()

	mid, err := x.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, mid)

	require.NoError(t, x.SetSlice(3, []float64{7, 8}))
	vals, err := x.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 7, 8}, vals)
}

func TestVectorItemSizeDiscrepancy(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	// ItemSize always reports the float32 width, even for uint8 spaces.
	// This mirrors reference behavior and is pinned here on purpose.
	f3, _ := space.NewEn(dev, 3, device.Float32)
	u3, _ := space.NewEn(dev, 3, device.Uint8)

	fx, _ := f3.NewElement(nil, nil)
	ux, _ := u3.NewElement(nil, nil)
	defer fx.Free()
	defer ux.Free()

	assert.Equal(t, 4, fx.ItemSize())
	assert.Equal(t, 4, ux.ItemSize())
}

func TestVectorString(t *testing.T) {
	dev := utils.CreateTestDevice()
	defer dev.Free()

	s, _ := space.NewEn(dev, 3, device.Float32)
	x, _ := s.NewElement([]float64{1, 2, 3}, nil)
	defer x.Free()
	assert.Equal(t, "En(3).element([1, 2, 3])", x.String())

	s8, _ := space.NewEn(dev, 8, device.Float32)
	y, _ := s8.NewElement([]float64{1, 2, 3, 4, 5, 6, 7, 8}, nil)
	defer y.Free()
	assert.Equal(t, "En(8).element([1, 2, 3, ..., 6, 7, 8])", y.String())
}
