// Package spectral provides forward and inverse multidimensional discrete
// Fourier transforms over a caller-selected set of axes.
//
// An N-dimensional transform is computed as repeated 1-D transforms, one
// axis at a time, using Gonum's complex FFT. The convention matches the
// usual numerical one: the forward transform is unnormalized and the
// inverse divides by the length of each transformed axis, so
// IFFTN(FFTN(f)) == f up to floating-point error.
package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"mksgo/pkg/field"
)

// FFTNReal computes the forward transform of a real field over the given
// axes, returning a new complex field of the same shape.
func FFTNReal(f *field.Field, axes []int) *field.CField {
	out := f.Complex()
	for _, ax := range axes {
		transformAxis(out, ax, false)
	}
	return out
}

// FFTN computes the forward transform of a complex field over the given
// axes, returning a new field. The input is not modified.
func FFTN(f *field.CField, axes []int) *field.CField {
	out := f.Clone()
	for _, ax := range axes {
		transformAxis(out, ax, false)
	}
	return out
}

// IFFTN computes the inverse transform of a complex field over the given
// axes, returning a new field. The input is not modified.
func IFFTN(f *field.CField, axes []int) *field.CField {
	out := f.Clone()
	for _, ax := range axes {
		transformAxis(out, ax, true)
	}
	return out
}

// transformAxis applies a 1-D FFT in place along one axis. Every line of
// the array parallel to that axis is gathered into a scratch buffer,
// transformed, and scattered back.
func transformAxis(c *field.CField, axis int, inverse bool) {
	if axis < 0 || axis >= c.Rank() {
		panic(fmt.Sprintf("spectral: axis %d out of range for rank %d", axis, c.Rank()))
	}

	n := c.Shape[axis]
	stride := field.Strides(c.Shape)[axis]
	outer := len(c.Data) / (n * stride)

	plan := fourier.NewCmplxFFT(n)
	line := make([]complex128, n)
	freq := make([]complex128, n)
	scale := complex(1/float64(n), 0)

	for o := 0; o < outer; o++ {
		// Lines with the same outer index are interleaved with
		// stride elements between consecutive samples.
		for i := 0; i < stride; i++ {
			base := o*n*stride + i
			for k := 0; k < n; k++ {
				line[k] = c.Data[base+k*stride]
			}

			if inverse {
				plan.Sequence(freq, line)
				for k := 0; k < n; k++ {
					c.Data[base+k*stride] = freq[k] * scale
				}
			} else {
				plan.Coefficients(freq, line)
				for k := 0; k < n; k++ {
					c.Data[base+k*stride] = freq[k]
				}
			}
		}
	}
}
