package device

import (
	"fmt"
	"math"
	"unsafe"

	"gonum.org/v1/gonum/floats"

	"github.com/lewiswr/odl"
)

func (d *Device) checkOperands(bufs ...*Buffer) error {
	if len(bufs) == 0 {
		return nil
	}
	n, dt := bufs[0].n, bufs[0].dtype
	for _, b := range bufs {
		if b == nil || b.mem == nil {
			return fmt.Errorf("%w: nil or freed buffer operand", odl.ErrInvalidArgument)
		}
		if b.dev != d {
			return fmt.Errorf("%w: buffer belongs to a different device",
				odl.ErrInvalidArgument)
		}
		if b.n != n || b.dtype != dt {
			return fmt.Errorf("%w: operand mismatch, want %d x %s, got %d x %s",
				odl.ErrInvalidArgument, n, dt, b.n, b.dtype)
		}
	}
	return nil
}

func (d *Device) runElementwise(name string, dt DType, args ...interface{}) error {
	kernel, err := d.kernel(name, dt)
	if err != nil {
		return err
	}
	if err := kernel.RunWithArgs(args...); err != nil {
		return fmt.Errorf("run kernel %s: %w", name, err)
	}
	d.occa.Finish()
	return nil
}

// Fill sets every component of x to value, converted to x's scalar kind.
func (d *Device) Fill(x *Buffer, value float64) error {
	if err := d.checkOperands(x); err != nil {
		return err
	}
	return d.runElementwise("fill", x.dtype, x.n, float32(value), x.mem)
}

// LinComb computes z = a*x + b*y as a single fused device pass. z may
// alias x or y. All three buffers must share length and scalar kind.
func (d *Device) LinComb(z *Buffer, a float64, x *Buffer, b float64, y *Buffer) error {
	if err := d.checkOperands(z, x, y); err != nil {
		return err
	}
	return d.runElementwise("lincomb", z.dtype,
		z.n, float32(a), x.mem, float32(b), y.mem, z.mem)
}

// Multiply overwrites y with the componentwise product x*y.
func (d *Device) Multiply(x, y *Buffer) error {
	if err := d.checkOperands(x, y); err != nil {
		return err
	}
	return d.runElementwise("multiply", y.dtype, y.n, x.mem, y.mem)
}

// Abs writes |x| into out.
func (d *Device) Abs(x, out *Buffer) error {
	if err := d.checkOperands(x, out); err != nil {
		return err
	}
	return d.runElementwise("absval", x.dtype, x.n, x.mem, out.mem)
}

// Sign writes the componentwise sign of x (-1, 0, 1) into out.
func (d *Device) Sign(x, out *Buffer) error {
	if err := d.checkOperands(x, out); err != nil {
		return err
	}
	return d.runElementwise("sign", x.dtype, x.n, x.mem, out.mem)
}

// AddScalar writes x + s into out.
func (d *Device) AddScalar(x *Buffer, s float64, out *Buffer) error {
	if err := d.checkOperands(x, out); err != nil {
		return err
	}
	return d.runElementwise("addScalar", x.dtype, x.n, float32(s), x.mem, out.mem)
}

// MaxScalar writes max(x, s) componentwise into out.
func (d *Device) MaxScalar(x *Buffer, s float64, out *Buffer) error {
	if err := d.checkOperands(x, out); err != nil {
		return err
	}
	return d.runElementwise("maxScalar", x.dtype, x.n, float32(s), x.mem, out.mem)
}

// MaxVector writes max(x, y) componentwise into out.
func (d *Device) MaxVector(x, y, out *Buffer) error {
	if err := d.checkOperands(x, y, out); err != nil {
		return err
	}
	return d.runElementwise("maxVector", x.dtype, x.n, x.mem, y.mem, out.mem)
}

// reduce runs a partial-reduction kernel and sums the per-block
// partials on the host.
func (d *Device) reduce(name string, args []interface{}, n int) (float64, error) {
	nblocks := (n + reduceWidth - 1) / reduceWidth
	if nblocks > reduceBlocks {
		nblocks = reduceBlocks
	}

	partialMem := d.occa.Malloc(int64(nblocks*4), nil, nil)
	defer partialMem.Free()

	kernel, err := d.kernel(name, Float32)
	if err != nil {
		return 0, err
	}

	full := append([]interface{}{n, nblocks}, args...)
	full = append(full, partialMem)
	if err := kernel.RunWithArgs(full...); err != nil {
		return 0, fmt.Errorf("run kernel %s: %w", name, err)
	}
	d.occa.Finish()

	partial := make([]float32, nblocks)
	partialMem.CopyTo(unsafe.Pointer(&partial[0]), int64(nblocks*4))

	host := make([]float64, nblocks)
	for i, v := range partial {
		host[i] = float64(v)
	}
	return floats.Sum(host), nil
}

func (d *Device) checkFloatOperands(bufs ...*Buffer) error {
	if err := d.checkOperands(bufs...); err != nil {
		return err
	}
	if bufs[0].dtype != Float32 {
		return fmt.Errorf("%w: reduction requires float32 operands, got %s",
			odl.ErrInvalidArgument, bufs[0].dtype)
	}
	return nil
}

// Dot returns the Euclidean inner product of x and y.
func (d *Device) Dot(x, y *Buffer) (float64, error) {
	if err := d.checkFloatOperands(x, y); err != nil {
		return 0, err
	}
	return d.reduce("dotPartial", []interface{}{x.mem, y.mem}, x.n)
}

// Norm returns the 2-norm of x. Computed by a dedicated device routine
// rather than as sqrt(Dot(x, x)); the two agree analytically but need
// not be bit-identical.
func (d *Device) Norm(x *Buffer) (float64, error) {
	if err := d.checkFloatOperands(x); err != nil {
		return 0, err
	}
	sq, err := d.reduce("norm2Partial", []interface{}{x.mem}, x.n)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(sq), nil
}

// Sum returns the sum of all components of x.
func (d *Device) Sum(x *Buffer) (float64, error) {
	if err := d.checkFloatOperands(x); err != nil {
		return 0, err
	}
	return d.reduce("sumPartial", []interface{}{x.mem}, x.n)
}
