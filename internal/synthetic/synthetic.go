// Package synthetic generates ground-truth datasets for exercising the
// MKS regression: responses constructed through the exact forward model
// from known influence coefficients, so that fitted coefficients and
// predictions can be checked against known answers.
package synthetic

import (
	"math"
	"math/rand"

	"mksgo/pkg/discretize"
	"mksgo/pkg/field"
	"mksgo/pkg/spectral"
)

// Conv1D is a one-dimensional dataset whose response field was produced
// by a known linear, spatially-invariant convolution over the binned
// microstructure.
type Conv1D struct {
	// X is the microstructure, shape (samples, space), values in [0, 1).
	X *field.Field

	// Y is the response generated from X through the ground-truth
	// coefficients, same shape as X.
	Y *field.Field

	// Coeff holds the ground-truth spatial influence coefficients,
	// shape (space, nbin).
	Coeff *field.Field

	// Fcoeff is Coeff transformed over the spatial axis.
	Fcoeff *field.CField

	disc *discretize.Discretizer
}

// dampedCosine is the influence filter used to build the ground-truth
// coefficients: a decaying cosine anchored at both ends of the domain.
func dampedCosine(x float64) float64 {
	if x < 10 {
		return math.Exp(-math.Abs(x)) * math.Cos(x*math.Pi)
	}
	return math.Exp(-math.Abs(x-20)) * math.Cos((x-20)*math.Pi)
}

// NewConv1D builds a 1-D convolution dataset with the given sample count,
// spatial grid size and bin count, using a deterministic seed for the
// random microstructures.
//
// The per-bin profile of the ground-truth coefficients is chosen with
// zero mean across bins. The binned microstructure satisfies a partition
// of unity, which makes every nonzero-frequency regression system rank
// deficient along the all-ones bin direction; a zero-mean profile is
// orthogonal to that direction, so the minimum-norm fit can recover the
// coefficients exactly.
func NewConv1D(samples, space, nbin int, seed int64) (*Conv1D, error) {
	disc, err := discretize.New(nbin)
	if err != nil {
		return nil, err
	}

	// coeff[x, b] = filter(x) * profile(b)
	coeff := field.New(space, nbin)
	for i := 0; i < space; i++ {
		f := dampedCosine(20 * float64(i) / float64(space-1))
		for b := 0; b < nbin; b++ {
			profile := 1 - 2*float64(b)/float64(nbin-1)
			coeff.Set(f*profile, i, b)
		}
	}
	fcoeff := spectral.FFTNReal(coeff, []int{0})

	rng := rand.New(rand.NewSource(seed))
	X := field.New(samples, space)
	for i := range X.Data {
		X.Data[i] = rng.Float64()
	}

	d := &Conv1D{Coeff: coeff, Fcoeff: fcoeff, disc: disc}
	d.X = X
	d.Y = d.Response(X)
	return d, nil
}

// Response applies the ground-truth coefficients to a microstructure
// field of shape (samples, space), returning the exact model response.
func (d *Conv1D) Response(X *field.Field) *field.Field {
	nbin := d.disc.NumBins()
	samples := X.Shape[0]
	space := X.Shape[1]

	FX := spectral.FFTNReal(d.disc.Bin(X), []int{1})

	Fy := field.NewComplex(samples, space)
	for s := 0; s < samples; s++ {
		for j := 0; j < space; j++ {
			var sum complex128
			off := (s*space + j) * nbin
			for b := 0; b < nbin; b++ {
				sum += FX.Data[off+b] * d.Fcoeff.At(j, b)
			}
			Fy.Data[s*space+j] = sum
		}
	}

	return spectral.IFFTN(Fy, []int{1}).Real()
}

// RandomField returns a field of the given shape filled with uniform
// values in [0, 1), using a deterministic seed.
func RandomField(seed int64, shape ...int) *field.Field {
	rng := rand.New(rand.NewSource(seed))
	f := field.New(shape...)
	for i := range f.Data {
		f.Data[i] = rng.Float64()
	}
	return f
}

// Transpose2D returns the canonical 2x2 check case: a single sample with
// values linearly spaced over [0, 1], paired with its spatial transpose
// as the response. A two-bin model fit on this pair reproduces the
// response exactly.
func Transpose2D() (X, y *field.Field) {
	X = field.FromSlice([]float64{0, 1.0 / 3, 2.0 / 3, 1}, 1, 2, 2)
	y = field.FromSlice([]float64{0, 2.0 / 3, 1.0 / 3, 1}, 1, 2, 2)
	return X, y
}
