package space

import (
	"fmt"

	"github.com/notargets/gocca"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/device"
	"github.com/lewiswr/odl/sets"
)

// En is the real space E^n with components resident on an accelerator
// device. The scalar kind of the components is fixed at construction;
// float32 and uint8 are supported. Linear combination runs as a single
// fused device pass, but E^n by itself carries no inner product; see
// DeviceRn for the Hilbert-algebra variant.
type En struct {
	dev   *device.Device
	n     int
	dtype device.DType
}

// NewEn creates E^n on the given device. n must be positive and dtype a
// supported scalar kind.
func NewEn(dev *device.Device, n int, dtype device.DType) (*En, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: dimension %d must be a positive integer",
			odl.ErrInvalidArgument, n)
	}
	if !dtype.Supported() {
		return nil, fmt.Errorf("%w: unsupported scalar kind %s",
			odl.ErrInvalidArgument, dtype)
	}
	return &En{dev: dev, n: n, dtype: dtype}, nil
}

// Size returns the dimension n.
func (s *En) Size() int { return s.n }

// DType returns the scalar kind of elements.
func (s *En) DType() device.DType { return s.dtype }

// Device returns the device elements live on.
func (s *En) Device() *device.Device { return s.dev }

// Field returns the real numbers.
func (s *En) Field() sets.Field { return sets.RealNumbers }

// NewElement creates a vector. Exactly one of data and mem may be
// supplied:
//
//   - both nil: an owned, uninitialized device buffer of length n
//   - data: an owned buffer with the host values copied in, converted
//     to the space's scalar kind
//   - mem: a borrowed view over externally owned device memory; the
//     caller guarantees at least n components of the right kind are
//     resident there, and the view never frees it
//
// Supplying both fails with ErrInvalidArgument.
func (s *En) NewElement(data []float64, mem *gocca.OCCAMemory) (*Vector, error) {
	if data != nil && mem != nil {
		return nil, fmt.Errorf("%w: cannot provide both host data and device memory",
			odl.ErrInvalidArgument)
	}

	var buf *device.Buffer
	var err error
	switch {
	case mem != nil:
		buf, err = s.dev.Wrap(mem, s.n, s.dtype)
	case data != nil:
		if len(data) != s.n {
			return nil, fmt.Errorf("%w: %d values for space of dimension %d",
				odl.ErrInvalidArgument, len(data), s.n)
		}
		buf, err = s.dev.FromFloat64s(data, s.dtype)
	default:
		buf, err = s.dev.Alloc(s.n, s.dtype)
	}
	if err != nil {
		return nil, err
	}
	return &Vector{space: s, buf: buf}, nil
}

// Element creates a vector from host values, or an uninitialized one
// when values is nil.
func (s *En) Element(values []float64) (DataVector, error) {
	return s.NewElement(values, nil)
}

// Zero returns a vector with every component set to the additive
// identity, zeroed on the device.
func (s *En) Zero() (*Vector, error) {
	buf, err := s.dev.AllocZero(s.n, s.dtype)
	if err != nil {
		return nil, err
	}
	return &Vector{space: s, buf: buf}, nil
}

// LinComb writes z = a*x + b*y in a single fused device operation. z may
// alias x or y.
func (s *En) LinComb(z *Vector, a float64, x *Vector, b float64, y *Vector) error {
	if err := s.owns(z, x, y); err != nil {
		return err
	}
	return s.dev.LinComb(z.buf, a, x.buf, b, y.buf)
}

func (s *En) owns(vecs ...*Vector) error {
	for _, v := range vecs {
		if v == nil {
			return fmt.Errorf("%w: nil vector", odl.ErrInvalidArgument)
		}
		if v.space.n != s.n || v.space.dtype != s.dtype || v.space.dev != s.dev {
			return fmt.Errorf("%w: vector from %s does not belong to %s",
				odl.ErrInvalidArgument, v.space, s)
		}
	}
	return nil
}

// Equals reports structural equality: same dimension and scalar kind on
// the same device. Identity is not required.
func (s *En) Equals(other DataSpace) bool {
	o, ok := other.(*En)
	if !ok {
		if rn, isRn := other.(*DeviceRn); isRn {
			o = rn.En
		} else {
			return false
		}
	}
	return o.n == s.n && o.dtype == s.dtype && o.dev == s.dev
}

func (s *En) String() string {
	if s.dtype == device.Float32 {
		return fmt.Sprintf("En(%d)", s.n)
	}
	return fmt.Sprintf("En(%d, %s)", s.n, s.dtype)
}

var _ DataSpace = (*En)(nil)

// DeviceRn is the Hilbert-algebra variant of En over float32: it adds
// the Euclidean inner product, a dedicated device norm routine, the
// in-place elementwise multiply and the component sum.
type DeviceRn struct {
	*En
}

// NewDeviceRn creates R^n on the device with float32 components.
func NewDeviceRn(dev *device.Device, n int) (*DeviceRn, error) {
	en, err := NewEn(dev, n, device.Float32)
	if err != nil {
		return nil, err
	}
	return &DeviceRn{En: en}, nil
}

func (s *DeviceRn) vector(x DataVector) (*Vector, error) {
	v, ok := x.(*Vector)
	if !ok {
		return nil, fmt.Errorf("%w: vector %T is not a device-space element",
			odl.ErrTypeMismatch, x)
	}
	if err := s.owns(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Inner returns the Euclidean inner product of x and y, computed on the
// device.
func (s *DeviceRn) Inner(x, y DataVector) (float64, error) {
	xv, err := s.vector(x)
	if err != nil {
		return 0, err
	}
	yv, err := s.vector(y)
	if err != nil {
		return 0, err
	}
	return s.dev.Dot(xv.buf, yv.buf)
}

// Norm returns the 2-norm of x. This runs a dedicated device reduction
// and agrees with sqrt(Inner(x, x)) analytically, though not necessarily
// bit-for-bit.
func (s *DeviceRn) Norm(x DataVector) (float64, error) {
	xv, err := s.vector(x)
	if err != nil {
		return 0, err
	}
	return s.dev.Norm(xv.buf)
}

// Multiply overwrites y with the componentwise product x*y, in place on
// the device.
func (s *DeviceRn) Multiply(x, y DataVector) error {
	xv, err := s.vector(x)
	if err != nil {
		return err
	}
	yv, err := s.vector(y)
	if err != nil {
		return err
	}
	return s.dev.Multiply(xv.buf, yv.buf)
}

// Sum returns the sum of all components of x.
func (s *DeviceRn) Sum(x DataVector) (float64, error) {
	xv, err := s.vector(x)
	if err != nil {
		return 0, err
	}
	return s.dev.Sum(xv.buf)
}

// Equals reports structural equality with another DeviceRn.
func (s *DeviceRn) Equals(other DataSpace) bool {
	o, ok := other.(*DeviceRn)
	return ok && o.n == s.n && o.dev == s.dev
}

func (s *DeviceRn) String() string {
	return fmt.Sprintf("DeviceRn(%d)", s.n)
}

var _ AlgebraSpace = (*DeviceRn)(nil)
