// Package device is the device arithmetic boundary of the library. It
// wraps an OCCA device with typed buffers and a fixed set of
// device-executed vector primitives: fill, fused linear combination,
// elementwise multiply, dot product, norm and sum reductions, plus a few
// pointwise helpers.
//
// All host<->device transfers are synchronous and comparatively slow;
// callers should batch ranged reads/writes instead of touching single
// components in hot loops.
package device

import (
	"fmt"

	"github.com/notargets/gocca"
	"github.com/rs/zerolog/log"
)

// Device wraps an OCCA device together with a cache of compiled
// primitive kernels, keyed by kernel name and scalar kind.
type Device struct {
	occa    *gocca.OCCADevice
	kernels map[string]*gocca.OCCAKernel
}

// Open creates a device from an OCCA properties JSON string, e.g.
// `{"mode": "CUDA", "device_id": 0}`.
func Open(props string) (*Device, error) {
	dev, err := gocca.NewDevice(props)
	if err != nil {
		return nil, fmt.Errorf("open device with props %s: %w", props, err)
	}
	log.Debug().Str("mode", dev.Mode()).Msg("opened OCCA device")
	return &Device{
		occa:    dev,
		kernels: make(map[string]*gocca.OCCAKernel),
	}, nil
}

// OpenDefault tries parallel backends first and falls back to Serial.
func OpenDefault() (*Device, error) {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}

	var lastErr error
	for _, props := range backends {
		dev, err := Open(props)
		if err == nil {
			return dev, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no usable OCCA backend: %w", lastErr)
}

// Mode returns the OCCA backend name (e.g. "CUDA", "OpenMP", "Serial").
func (d *Device) Mode() string { return d.occa.Mode() }

// OCCA exposes the underlying device handle for interop with other
// OCCA-aware code.
func (d *Device) OCCA() *gocca.OCCADevice { return d.occa }

// Finish blocks until all queued device work has completed.
func (d *Device) Finish() { d.occa.Finish() }

// Free releases all cached kernels and the device itself. Buffers
// allocated from this device must be freed before calling Free.
func (d *Device) Free() {
	for _, kernel := range d.kernels {
		kernel.Free()
	}
	d.kernels = nil
	d.occa.Free()
}

// kernel returns the compiled kernel for (name, dtype), building it on
// first use from the DTYPE-substituted source.
func (d *Device) kernel(name string, dt DType) (*gocca.OCCAKernel, error) {
	key := name + "/" + dt.String()
	if k, ok := d.kernels[key]; ok {
		return k, nil
	}

	src, err := kernelSource(name, dt)
	if err != nil {
		return nil, err
	}

	// Workaround for OCCA bug: OpenMP doesn't get default -O3 flag
	var kernel *gocca.OCCAKernel
	if d.occa.Mode() == "OpenMP" {
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		kernel, err = d.occa.BuildKernelFromString(src, name, props)
	} else {
		kernel, err = d.occa.BuildKernelFromString(src, name, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build kernel %s for %s: %w", name, dt, err)
	}

	log.Debug().Str("kernel", name).Stringer("dtype", dt).Msg("compiled primitive kernel")
	d.kernels[key] = kernel
	return kernel, nil
}
