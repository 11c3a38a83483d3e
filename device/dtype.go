package device

import "fmt"

// DType identifies the scalar kind of a device buffer's components.
type DType int

const (
	Float32 DType = iota + 1
	Uint8
)

// Supported reports whether the scalar kind has a device implementation.
func (dt DType) Supported() bool {
	return dt == Float32 || dt == Uint8
}

// Size returns the byte width of one component.
func (dt DType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Uint8:
		return 1
	default:
		return 0
	}
}

// ctype returns the OKL type name substituted for the DTYPE placeholder
// in kernel sources.
func (dt DType) ctype() string {
	switch dt {
	case Float32:
		return "float"
	case Uint8:
		return "unsigned char"
	default:
		return ""
	}
}

func (dt DType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Uint8:
		return "uint8"
	default:
		return fmt.Sprintf("DType(%d)", int(dt))
	}
}
