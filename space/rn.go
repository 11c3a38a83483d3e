package space

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/sets"
)

// Rn is the host-resident real vector space R^n. It is the CPU
// counterpart of DeviceRn and satisfies the same AlgebraSpace contract.
type Rn struct {
	n int
}

// NewRn creates R^n. n must be positive.
func NewRn(n int) (*Rn, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: dimension %d must be a positive integer",
			odl.ErrInvalidArgument, n)
	}
	return &Rn{n: n}, nil
}

// Size returns the dimension n.
func (s *Rn) Size() int { return s.n }

// Field returns the real numbers.
func (s *Rn) Field() sets.Field { return sets.RealNumbers }

// Element creates a vector holding a copy of the given values. A nil
// slice yields the zero vector.
func (s *Rn) Element(values []float64) (DataVector, error) {
	if values == nil {
		return s.Zero(), nil
	}
	if len(values) != s.n {
		return nil, fmt.Errorf("%w: %d values for space of dimension %d",
			odl.ErrInvalidArgument, len(values), s.n)
	}
	return &RnVector{space: s, data: append([]float64(nil), values...)}, nil
}

// Zero returns the additive identity.
func (s *Rn) Zero() *RnVector {
	return &RnVector{space: s, data: make([]float64, s.n)}
}

// Equals reports structural equality: same type, same dimension.
func (s *Rn) Equals(other DataSpace) bool {
	o, ok := other.(*Rn)
	return ok && o.n == s.n
}

func (s *Rn) vector(x DataVector) (*RnVector, error) {
	v, ok := x.(*RnVector)
	if !ok {
		return nil, fmt.Errorf("%w: vector %T is not an Rn element",
			odl.ErrTypeMismatch, x)
	}
	if v.space.n != s.n {
		return nil, fmt.Errorf("%w: vector of length %d in space of dimension %d",
			odl.ErrInvalidArgument, v.space.n, s.n)
	}
	return v, nil
}

// LinComb writes z = a*x + b*y componentwise. z may alias x or y.
func (s *Rn) LinComb(z DataVector, a float64, x DataVector, b float64, y DataVector) error {
	zv, err := s.vector(z)
	if err != nil {
		return err
	}
	xv, err := s.vector(x)
	if err != nil {
		return err
	}
	yv, err := s.vector(y)
	if err != nil {
		return err
	}
	for i := range zv.data {
		zv.data[i] = a*xv.data[i] + b*yv.data[i]
	}
	return nil
}

// Inner returns the Euclidean dot product.
func (s *Rn) Inner(x, y DataVector) (float64, error) {
	xv, err := s.vector(x)
	if err != nil {
		return 0, err
	}
	yv, err := s.vector(y)
	if err != nil {
		return 0, err
	}
	return floats.Dot(xv.data, yv.data), nil
}

// Norm returns the 2-norm.
func (s *Rn) Norm(x DataVector) (float64, error) {
	xv, err := s.vector(x)
	if err != nil {
		return 0, err
	}
	return floats.Norm(xv.data, 2), nil
}

// Multiply overwrites y with the componentwise product x*y.
func (s *Rn) Multiply(x, y DataVector) error {
	xv, err := s.vector(x)
	if err != nil {
		return err
	}
	yv, err := s.vector(y)
	if err != nil {
		return err
	}
	floats.Mul(yv.data, xv.data)
	return nil
}

// Sum returns the sum of all components.
func (s *Rn) Sum(x DataVector) (float64, error) {
	xv, err := s.vector(x)
	if err != nil {
		return 0, err
	}
	return floats.Sum(xv.data), nil
}

func (s *Rn) String() string {
	return fmt.Sprintf("Rn(%d)", s.n)
}

// RnVector is an element of Rn.
type RnVector struct {
	space *Rn
	data  []float64
}

// Space returns the owning space.
func (v *RnVector) Space() DataSpace { return v.space }

// Len returns the dimension of the owning space.
func (v *RnVector) Len() int { return v.space.n }

// Values returns a copy of all components.
func (v *RnVector) Values() ([]float64, error) {
	return append([]float64(nil), v.data...), nil
}

// Data returns the backing slice without copying.
func (v *RnVector) Data() []float64 { return v.data }

// At returns the component at index i.
func (v *RnVector) At(i int) float64 { return v.data[i] }

// SetAt writes the component at index i.
func (v *RnVector) SetAt(i int, val float64) { v.data[i] = val }

func (v *RnVector) String() string {
	return fmt.Sprintf("%s.element(%s)", v.space, formatValues(v.data))
}

var _ AlgebraSpace = (*Rn)(nil)
