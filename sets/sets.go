// Package sets provides the abstract-set collaborators of the
// discretization layer: scalar fields and interval-product domains.
package sets

import (
	"fmt"
	"strings"

	"github.com/lewiswr/odl"
)

// Field identifies the scalar field a space is defined over. Only the
// real numbers are supported at this layer.
type Field int

const (
	RealNumbers Field = iota + 1
)

func (f Field) String() string {
	switch f {
	case RealNumbers:
		return "RealNumbers()"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// IntervalProd is a cartesian product of closed 1-D intervals
// [begin[i], end[i]], the common domain type of discretized function
// sets.
type IntervalProd struct {
	begin []float64
	end   []float64
}

// NewIntervalProd builds an interval product from per-axis begin and end
// coordinates. The slices must have equal positive length and satisfy
// begin[i] <= end[i] on every axis.
func NewIntervalProd(begin, end []float64) (*IntervalProd, error) {
	if len(begin) == 0 || len(begin) != len(end) {
		return nil, fmt.Errorf("%w: begin/end lengths %d and %d",
			odl.ErrInvalidArgument, len(begin), len(end))
	}
	for i := range begin {
		if begin[i] > end[i] {
			return nil, fmt.Errorf("%w: axis %d has begin %g > end %g",
				odl.ErrInvalidArgument, i, begin[i], end[i])
		}
	}
	ip := &IntervalProd{
		begin: append([]float64(nil), begin...),
		end:   append([]float64(nil), end...),
	}
	return ip, nil
}

// NewInterval is the 1-D special case [begin, end].
func NewInterval(begin, end float64) (*IntervalProd, error) {
	return NewIntervalProd([]float64{begin}, []float64{end})
}

// NewRectangle is the 2-D special case [begin[0], end[0]] x
// [begin[1], end[1]].
func NewRectangle(begin, end [2]float64) (*IntervalProd, error) {
	return NewIntervalProd(begin[:], end[:])
}

// NDim returns the number of axes.
func (ip *IntervalProd) NDim() int { return len(ip.begin) }

// Begin returns the lower corner coordinate of the given axis.
func (ip *IntervalProd) Begin(axis int) float64 { return ip.begin[axis] }

// End returns the upper corner coordinate of the given axis.
func (ip *IntervalProd) End(axis int) float64 { return ip.end[axis] }

// Length returns the extent of the given axis.
func (ip *IntervalProd) Length(axis int) float64 {
	return ip.end[axis] - ip.begin[axis]
}

// Contains reports whether the point lies inside the product, boundary
// included. Points of the wrong dimension are never contained.
func (ip *IntervalProd) Contains(point []float64) bool {
	if len(point) != len(ip.begin) {
		return false
	}
	for i, x := range point {
		if x < ip.begin[i] || x > ip.end[i] {
			return false
		}
	}
	return true
}

// ContainsHull reports whether the axis-aligned hull [min[i], max[i]]
// lies inside the product. Grids use this for domain containment checks.
func (ip *IntervalProd) ContainsHull(min, max []float64) bool {
	return ip.Contains(min) && ip.Contains(max)
}

// Equals reports structural equality.
func (ip *IntervalProd) Equals(other *IntervalProd) bool {
	if other == nil || len(ip.begin) != len(other.begin) {
		return false
	}
	for i := range ip.begin {
		if ip.begin[i] != other.begin[i] || ip.end[i] != other.end[i] {
			return false
		}
	}
	return true
}

func (ip *IntervalProd) String() string {
	var sb strings.Builder
	sb.WriteString("IntervalProd(")
	for i := range ip.begin {
		if i > 0 {
			sb.WriteString(" x ")
		}
		fmt.Fprintf(&sb, "[%g, %g]", ip.begin[i], ip.end[i])
	}
	sb.WriteString(")")
	return sb.String()
}
