package space

import (
	"fmt"

	"github.com/notargets/gocca"

	"github.com/lewiswr/odl/device"
)

// Vector is an element of En or DeviceRn: a device-resident buffer of
// the owning space's dimension and scalar kind. Buffers are owned unless
// the vector was constructed as a view over external device memory.
type Vector struct {
	space *En
	buf   *device.Buffer
}

// Space returns the owning space.
func (v *Vector) Space() DataSpace { return v.space }

// Len returns the dimension of the owning space.
func (v *Vector) Len() int { return v.space.n }

// Buffer returns the underlying device buffer.
func (v *Vector) Buffer() *device.Buffer { return v.buf }

// RawMemory exposes the device memory for zero-copy interop with other
// device-aware code. The memory stays owned as before; callers must not
// free it.
func (v *Vector) RawMemory() *gocca.OCCAMemory { return v.buf.Memory() }

// ItemSize returns the byte width of one component.
//
// TODO: report the actual width for uint8 spaces; this mirrors the
// reference behavior of always reporting the float32 itemsize and is
// pinned by a test until downstream consumers are audited.
func (v *Vector) ItemSize() int { return 4 }

// At reads the component at index i. Every call is a device->host
// transfer; batch with Slice where possible.
func (v *Vector) At(i int) (float64, error) { return v.buf.At(i) }

// SetAt writes the component at index i.
func (v *Vector) SetAt(i int, val float64) error { return v.buf.SetAt(i, val) }

// Slice copies the components in [begin, end) to the host.
func (v *Vector) Slice(begin, end int) ([]float64, error) {
	return v.buf.Slice(begin, end)
}

// SetSlice writes host values into the vector starting at begin.
func (v *Vector) SetSlice(begin int, values []float64) error {
	return v.buf.SetSlice(begin, values)
}

// Values copies all components to the host.
func (v *Vector) Values() ([]float64, error) { return v.buf.Float64s() }

// Free releases the device buffer if this vector owns it; views over
// external memory leave it untouched.
func (v *Vector) Free() { v.buf.Free() }

func (v *Vector) String() string {
	values, err := v.Values()
	if err != nil {
		return fmt.Sprintf("%s.element(<unreadable: %v>)", v.space, err)
	}
	return fmt.Sprintf("%s.element(%s)", v.space, formatValues(values))
}

var _ DataVector = (*Vector)(nil)
