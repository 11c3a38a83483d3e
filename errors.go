package odl

import "errors"

// Sentinel errors shared by all sub-packages. Call sites wrap these with
// fmt.Errorf("...: %w", ...) so callers can classify failures with
// errors.Is while still getting a specific message.
var (
	// ErrInvalidArgument indicates malformed construction parameters:
	// bad dimension, unsupported scalar kind, mismatched sizes,
	// unrecognized enumerated option, or mutually exclusive arguments
	// supplied together.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTypeMismatch indicates that an argument does not satisfy the
	// required abstract capability, e.g. a data space that is not an
	// inner-product algebra where a linear mapping requires one.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNotImplemented marks operations that are deliberately
	// unfinished, such as linear interpolation evaluation.
	ErrNotImplemented = errors.New("not implemented")
)
