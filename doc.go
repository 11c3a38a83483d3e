// Package odl discretizes continuous mathematical operators into
// finite-dimensional numerical representations for inverse problems such
// as tomographic reconstruction.
//
// The sub-packages split along the discretization bridge:
//
//   - sets:   scalar fields and interval-product domains
//   - device: OCCA-backed device buffers and device-executed vector
//     primitives (linear combination, inner product, norm, reductions)
//   - space:  finite-dimensional real vector spaces, host (Rn) and
//     device-resident (En, DeviceRn)
//   - discr:  tensor grids and the function-set discretization mappings
//     (collocation, nearest-neighbor and linear interpolation) together
//     with composed uniform/pixel discretizations
//
// A discretization is built from a function set, a sampling grid and a
// discrete data space, and is then used as an operator: collocation maps
// function -> discrete vector, interpolation maps discrete vector ->
// function.
package odl
