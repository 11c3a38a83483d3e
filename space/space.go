// Package space provides finite-dimensional real vector spaces used as
// the discrete side of a discretization: a host R^n backed by []float64
// and gonum, and device-resident spaces backed by OCCA buffers.
package space

import (
	"fmt"
	"strings"

	"github.com/lewiswr/odl/sets"
)

// DataSpace is the minimal contract a discretization mapping needs from
// its discrete side: a size, a field and element construction from host
// values.
type DataSpace interface {
	Size() int
	Field() sets.Field
	Element(values []float64) (DataVector, error)
	Equals(other DataSpace) bool
}

// DataVector is an element of a DataSpace. Values reads all components
// back to the host; for device-resident spaces this is a blocking
// transfer.
type DataVector interface {
	Space() DataSpace
	Len() int
	Values() ([]float64, error)
}

// AlgebraSpace is a DataSpace that is also a Hilbert space and an
// algebra: it carries an inner product, a norm, an in-place elementwise
// multiply and a component sum. Linear discretization mappings require
// their data space to satisfy this.
type AlgebraSpace interface {
	DataSpace
	Inner(x, y DataVector) (float64, error)
	Norm(x DataVector) (float64, error)
	Multiply(x, y DataVector) error
	Sum(x DataVector) (float64, error)
}

// formatValues renders all components when there are fewer than 7,
// otherwise the first three and last three with an ellipsis, keeping
// textual forms bounded regardless of dimension.
func formatValues(values []float64) string {
	format := func(vals []float64) []string {
		out := make([]string, len(vals))
		for i, v := range vals {
			out[i] = fmt.Sprintf("%g", v)
		}
		return out
	}

	if len(values) < 7 {
		return "[" + strings.Join(format(values), ", ") + "]"
	}
	head := strings.Join(format(values[:3]), ", ")
	tail := strings.Join(format(values[len(values)-3:]), ", ")
	return "[" + head + ", ..., " + tail + "]"
}
