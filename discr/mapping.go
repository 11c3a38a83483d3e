package discr

import (
	"fmt"
	"strings"

	"github.com/lewiswr/odl"
	"github.com/lewiswr/odl/space"
)

// MapKind distinguishes the two directions of a discretization mapping.
type MapKind int

const (
	// Restriction maps a continuous function to discrete samples.
	Restriction MapKind = iota + 1
	// Extension maps discrete samples to a continuous function.
	Extension
)

// ParseMapKind accepts "restriction" and "extension",
// case-insensitively.
func ParseMapKind(s string) (MapKind, error) {
	switch strings.ToLower(s) {
	case "restriction":
		return Restriction, nil
	case "extension":
		return Extension, nil
	default:
		return 0, fmt.Errorf("%w: mapping type %q not understood",
			odl.ErrInvalidArgument, s)
	}
}

func (k MapKind) String() string {
	switch k {
	case Restriction:
		return "restriction"
	case Extension:
		return "extension"
	default:
		return fmt.Sprintf("MapKind(%d)", int(k))
	}
}

// FunctionSetMapping is the validated core shared by all grid
// discretization mappings. It fixes the function set, the sampling
// grid, the discrete data space and the flattening order, and is
// immutable after construction.
type FunctionSetMapping struct {
	kind   MapKind
	fset   FuncSet
	grid   *TensorGrid
	dspace space.DataSpace
	order  Ordering
	linear bool
}

// newFunctionSetMapping validates all compatibility conditions eagerly
// and in a fixed order; the first violated precondition wins and no
// partially constructed mapping escapes.
func newFunctionSetMapping(kind MapKind, fset FuncSet, grid *TensorGrid,
	dspace space.DataSpace, order Ordering, linear bool) (*FunctionSetMapping, error) {

	if kind != Restriction && kind != Extension {
		return nil, fmt.Errorf("%w: mapping type %d not understood",
			odl.ErrInvalidArgument, int(kind))
	}
	if fset == nil {
		return nil, fmt.Errorf("%w: function set is missing", odl.ErrTypeMismatch)
	}
	if grid == nil {
		return nil, fmt.Errorf("%w: grid is missing", odl.ErrTypeMismatch)
	}
	if dspace == nil {
		return nil, fmt.Errorf("%w: data space is missing", odl.ErrTypeMismatch)
	}

	domain := fset.Domain()
	if domain.NDim() != grid.NDim() || !domain.ContainsHull(grid.Min(), grid.Max()) {
		return nil, fmt.Errorf("%w: grid %s not contained in the domain %s of the function set",
			odl.ErrInvalidArgument, grid, domain)
	}

	if dspace.Size() != grid.NTotal() {
		return nil, fmt.Errorf("%w: data space size %d not equal to the total number %d of grid points",
			odl.ErrInvalidArgument, dspace.Size(), grid.NTotal())
	}

	if !order.Valid() {
		return nil, fmt.Errorf("%w: ordering %d not understood",
			odl.ErrInvalidArgument, int(order))
	}

	if linear {
		fspace, ok := fset.(*FunctionSpace)
		if !ok {
			return nil, fmt.Errorf("%w: function set %v is not a function space",
				odl.ErrTypeMismatch, fset)
		}
		algebra, ok := dspace.(space.AlgebraSpace)
		if !ok {
			return nil, fmt.Errorf("%w: data space %v is not an inner-product algebra",
				odl.ErrTypeMismatch, dspace)
		}
		if fspace.Field() != algebra.Field() {
			return nil, fmt.Errorf("%w: field %s of the function space and field %s of the data space are not equal",
				odl.ErrInvalidArgument, fspace.Field(), algebra.Field())
		}
	}

	return &FunctionSetMapping{
		kind:   kind,
		fset:   fset,
		grid:   grid,
		dspace: dspace,
		order:  order,
		linear: linear,
	}, nil
}

// Kind returns whether the mapping is a restriction or an extension.
func (m *FunctionSetMapping) Kind() MapKind { return m.kind }

// FunctionSet returns the continuous side of the mapping.
func (m *FunctionSetMapping) FunctionSet() FuncSet { return m.fset }

// Grid returns the sampling grid.
func (m *FunctionSetMapping) Grid() *TensorGrid { return m.grid }

// DataSpace returns the discrete side of the mapping.
func (m *FunctionSetMapping) DataSpace() space.DataSpace { return m.dspace }

// Order returns the flattening order.
func (m *FunctionSetMapping) Order() Ordering { return m.order }

// IsLinear reports whether the mapping is a linear operator.
func (m *FunctionSetMapping) IsLinear() bool { return m.linear }

// equalsMapping compares the shared core: kind, domain, range, grid and
// flattening order. Concrete mapping types add their own type check on
// top.
func (m *FunctionSetMapping) equalsMapping(other *FunctionSetMapping) bool {
	return other != nil &&
		m.kind == other.kind &&
		m.fset.EqualsSet(other.fset) &&
		m.dspace.Equals(other.dspace) &&
		m.grid.Equals(other.grid) &&
		m.order == other.order
}
