package device

import (
	"fmt"
	"unsafe"

	"github.com/notargets/gocca"

	"github.com/lewiswr/odl"
)

// Buffer is a typed device-resident memory region of n components.
//
// A buffer either owns its memory (allocated here, released by Free) or
// borrows it (wrapped around caller-supplied device memory, never
// released). Ownership is fixed at construction and never inferred.
type Buffer struct {
	dev   *Device
	mem   *gocca.OCCAMemory
	n     int
	dtype DType
	owned bool
}

func (d *Device) newBuffer(n int, dt DType, src unsafe.Pointer) (*Buffer, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: buffer length %d must be positive",
			odl.ErrInvalidArgument, n)
	}
	if !dt.Supported() {
		return nil, fmt.Errorf("%w: unsupported scalar kind %s",
			odl.ErrInvalidArgument, dt)
	}
	mem := d.occa.Malloc(int64(n*dt.Size()), src, nil)
	return &Buffer{dev: d, mem: mem, n: n, dtype: dt, owned: true}, nil
}

// Alloc creates an owned, uninitialized buffer of n components.
func (d *Device) Alloc(n int, dt DType) (*Buffer, error) {
	return d.newBuffer(n, dt, nil)
}

// AllocZero creates an owned buffer with every component set to 0.
func (d *Device) AllocZero(n int, dt DType) (*Buffer, error) {
	buf, err := d.Alloc(n, dt)
	if err != nil {
		return nil, err
	}
	if err := d.Fill(buf, 0); err != nil {
		buf.Free()
		return nil, err
	}
	return buf, nil
}

// FromFloat64s creates an owned buffer holding the host values converted
// to the target scalar kind.
func (d *Device) FromFloat64s(data []float64, dt DType) (*Buffer, error) {
	buf, err := d.Alloc(len(data), dt)
	if err != nil {
		return nil, err
	}
	if err := buf.SetSlice(0, data); err != nil {
		buf.Free()
		return nil, err
	}
	return buf, nil
}

// Wrap creates a borrowed view over externally owned device memory. The
// caller guarantees at least n components of the given kind are resident
// there and keeps the memory alive for the lifetime of the view; Free on
// the returned buffer never releases it.
func (d *Device) Wrap(mem *gocca.OCCAMemory, n int, dt DType) (*Buffer, error) {
	if mem == nil {
		return nil, fmt.Errorf("%w: nil device memory", odl.ErrInvalidArgument)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: buffer length %d must be positive",
			odl.ErrInvalidArgument, n)
	}
	if !dt.Supported() {
		return nil, fmt.Errorf("%w: unsupported scalar kind %s",
			odl.ErrInvalidArgument, dt)
	}
	return &Buffer{dev: d, mem: mem, n: n, dtype: dt, owned: false}, nil
}

// Free releases the device memory if this buffer owns it. Borrowed
// buffers leave the memory untouched.
func (b *Buffer) Free() {
	if b.owned && b.mem != nil {
		b.mem.Free()
	}
	b.mem = nil
}

// Len returns the number of components.
func (b *Buffer) Len() int { return b.n }

// DType returns the scalar kind of the components.
func (b *Buffer) DType() DType { return b.dtype }

// Owned reports whether Free releases the underlying memory.
func (b *Buffer) Owned() bool { return b.owned }

// Memory exposes the underlying device memory for zero-copy interop
// with other OCCA-aware code.
func (b *Buffer) Memory() *gocca.OCCAMemory { return b.mem }

// Device returns the device this buffer lives on.
func (b *Buffer) Device() *Device { return b.dev }

func (b *Buffer) checkRange(begin, end int) error {
	if begin < 0 || end > b.n || begin > end {
		return fmt.Errorf("%w: range [%d, %d) outside buffer of length %d",
			odl.ErrInvalidArgument, begin, end, b.n)
	}
	return nil
}

// Slice copies the components in [begin, end) back to the host. This is
// a blocking device->host transfer; batch reads rather than calling At
// per component.
func (b *Buffer) Slice(begin, end int) ([]float64, error) {
	if err := b.checkRange(begin, end); err != nil {
		return nil, err
	}
	count := end - begin
	if count == 0 {
		return nil, nil
	}
	out := make([]float64, count)
	offset := int64(begin * b.dtype.Size())
	bytes := int64(count * b.dtype.Size())

	switch b.dtype {
	case Float32:
		raw := make([]float32, count)
		b.mem.CopyToWithOffset(unsafe.Pointer(&raw[0]), bytes, offset)
		for i, v := range raw {
			out[i] = float64(v)
		}
	case Uint8:
		raw := make([]uint8, count)
		b.mem.CopyToWithOffset(unsafe.Pointer(&raw[0]), bytes, offset)
		for i, v := range raw {
			out[i] = float64(v)
		}
	}
	return out, nil
}

// SetSlice copies host values into the buffer starting at begin,
// converting to the buffer's scalar kind. Blocking host->device
// transfer.
func (b *Buffer) SetSlice(begin int, values []float64) error {
	if err := b.checkRange(begin, begin+len(values)); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	offset := int64(begin * b.dtype.Size())
	bytes := int64(len(values) * b.dtype.Size())

	switch b.dtype {
	case Float32:
		raw := make([]float32, len(values))
		for i, v := range values {
			raw[i] = float32(v)
		}
		b.mem.CopyFromWithOffset(unsafe.Pointer(&raw[0]), bytes, offset)
	case Uint8:
		raw := make([]uint8, len(values))
		for i, v := range values {
			raw[i] = uint8(v)
		}
		b.mem.CopyFromWithOffset(unsafe.Pointer(&raw[0]), bytes, offset)
	}
	return nil
}

// At reads a single component. Each call is a full host transfer round
// trip; prefer Slice in hot paths.
func (b *Buffer) At(i int) (float64, error) {
	vals, err := b.Slice(i, i+1)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

// SetAt writes a single component.
func (b *Buffer) SetAt(i int, v float64) error {
	return b.SetSlice(i, []float64{v})
}

// Float64s copies the whole buffer back to the host.
func (b *Buffer) Float64s() ([]float64, error) {
	return b.Slice(0, b.n)
}
