package device

import (
	"fmt"
	"strings"
)

// Reduction kernels run reduceBlocks blocks of reduceWidth threads each
// and leave one partial result per block; the final accumulation over at
// most reduceBlocks values happens on the host. reduceWidth must match
// the @shared array size in the reduction sources.
const (
	reduceWidth  = 256
	reduceBlocks = 64
)

// kernelSource returns the OKL source for the named primitive with the
// DTYPE placeholder substituted for the scalar kind.
func kernelSource(name string, dt DType) (string, error) {
	src, ok := kernelSources[name]
	if !ok {
		return "", fmt.Errorf("no kernel source for %s", name)
	}
	return strings.Replace(src, "DTYPE", dt.ctype(), -1), nil
}

var kernelSources = map[string]string{
	// fill sets every component to a constant.
	"fill": `
@kernel void fill(const int n,
                  const float value,
                  @restrict DTYPE *x) {
	for (int i = 0; i < n; ++i; @tile(256, @outer, @inner)) {
		x[i] = (DTYPE) value;
	}
}`,

	// lincomb computes z = a*x + b*y in a single fused pass. z may alias
	// x or y; the formula reads both inputs before writing.
	"lincomb": `
@kernel void lincomb(const int n,
                     const float a,
                     @restrict const DTYPE *x,
                     const float b,
                     @restrict const DTYPE *y,
                     @restrict DTYPE *z) {
	for (int i = 0; i < n; ++i; @tile(256, @outer, @inner)) {
		z[i] = (DTYPE) (a * (float) x[i] + b * (float) y[i]);
	}
}`,

	// multiply overwrites y with the componentwise product x*y.
	"multiply": `
@kernel void multiply(const int n,
                      @restrict const DTYPE *x,
                      @restrict DTYPE *y) {
	for (int i = 0; i < n; ++i; @tile(256, @outer, @inner)) {
		y[i] = (DTYPE) ((float) x[i] * (float) y[i]);
	}
}`,

	// dotPartial reduces x.y to one partial per block with a shared
	// memory tree; threads stride the full vector.
	"dotPartial": `
@kernel void dotPartial(const int n,
                        const int nblocks,
                        @restrict const DTYPE *x,
                        @restrict const DTYPE *y,
                        @restrict float *partial) {
	for (int b = 0; b < nblocks; ++b; @outer) {
		@shared float s_sum[256];
		for (int t = 0; t < 256; ++t; @inner) {
			float acc = 0;
			for (int i = b * 256 + t; i < n; i += nblocks * 256) {
				acc += (float) x[i] * (float) y[i];
			}
			s_sum[t] = acc;
		}
		for (int alive = 128; alive > 0; alive /= 2) {
			for (int t = 0; t < 256; ++t; @inner) {
				if (t < alive) {
					s_sum[t] += s_sum[t + alive];
				}
			}
		}
		for (int t = 0; t < 256; ++t; @inner) {
			if (t == 0) {
				partial[b] = s_sum[0];
			}
		}
	}
}`,

	// norm2Partial reduces sum(x*x). Kept separate from dotPartial so the
	// norm has its own device routine rather than reusing the dot kernel
	// with aliased arguments.
	"norm2Partial": `
@kernel void norm2Partial(const int n,
                          const int nblocks,
                          @restrict const DTYPE *x,
                          @restrict float *partial) {
	for (int b = 0; b < nblocks; ++b; @outer) {
		@shared float s_sum[256];
		for (int t = 0; t < 256; ++t; @inner) {
			float acc = 0;
			for (int i = b * 256 + t; i < n; i += nblocks * 256) {
				const float v = (float) x[i];
				acc += v * v;
			}
			s_sum[t] = acc;
		}
		for (int alive = 128; alive > 0; alive /= 2) {
			for (int t = 0; t < 256; ++t; @inner) {
				if (t < alive) {
					s_sum[t] += s_sum[t + alive];
				}
			}
		}
		for (int t = 0; t < 256; ++t; @inner) {
			if (t == 0) {
				partial[b] = s_sum[0];
			}
		}
	}
}`,

	// sumPartial reduces sum(x).
	"sumPartial": `
@kernel void sumPartial(const int n,
                        const int nblocks,
                        @restrict const DTYPE *x,
                        @restrict float *partial) {
	for (int b = 0; b < nblocks; ++b; @outer) {
		@shared float s_sum[256];
		for (int t = 0; t < 256; ++t; @inner) {
			float acc = 0;
			for (int i = b * 256 + t; i < n; i += nblocks * 256) {
				acc += (float) x[i];
			}
			s_sum[t] = acc;
		}
		for (int alive = 128; alive > 0; alive /= 2) {
			for (int t = 0; t < 256; ++t; @inner) {
				if (t < alive) {
					s_sum[t] += s_sum[t + alive];
				}
			}
		}
		for (int t = 0; t < 256; ++t; @inner) {
			if (t == 0) {
				partial[b] = s_sum[0];
			}
		}
	}
}`,

	// abs writes |x| to out.
	"absval": `
@kernel void absval(const int n,
                    @restrict const DTYPE *x,
                    @restrict DTYPE *out) {
	for (int i = 0; i < n; ++i; @tile(256, @outer, @inner)) {
		const float v = (float) x[i];
		out[i] = (DTYPE) (v < 0 ? -v : v);
	}
}`,

	// sign writes the sign of x (-1, 0, 1) to out.
	"sign": `
@kernel void sign(const int n,
                  @restrict const DTYPE *x,
                  @restrict DTYPE *out) {
	for (int i = 0; i < n; ++i; @tile(256, @outer, @inner)) {
		const float v = (float) x[i];
		out[i] = (DTYPE) (v > 0 ? 1 : (v < 0 ? -1 : 0));
	}
}`,

	// addScalar writes x + s to out.
	"addScalar": `
@kernel void addScalar(const int n,
                       const float s,
                       @restrict const DTYPE *x,
                       @restrict DTYPE *out) {
	for (int i = 0; i < n; ++i; @tile(256, @outer, @inner)) {
		out[i] = (DTYPE) ((float) x[i] + s);
	}
}`,

	// maxScalar writes max(x, s) to out.
	"maxScalar": `
@kernel void maxScalar(const int n,
                       const float s,
                       @restrict const DTYPE *x,
                       @restrict DTYPE *out) {
	for (int i = 0; i < n; ++i; @tile(256, @outer, @inner)) {
		const float v = (float) x[i];
		out[i] = (DTYPE) (v > s ? v : s);
	}
}`,

	// maxVector writes max(x, y) componentwise to out.
	"maxVector": `
@kernel void maxVector(const int n,
                       @restrict const DTYPE *x,
                       @restrict const DTYPE *y,
                       @restrict DTYPE *out) {
	for (int i = 0; i < n; ++i; @tile(256, @outer, @inner)) {
		const float vx = (float) x[i];
		const float vy = (float) y[i];
		out[i] = (DTYPE) (vx > vy ? vx : vy);
	}
}`,
}
