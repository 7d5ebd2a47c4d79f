// Package regression implements the Materials Knowledge System regression
// in Fourier space: a linear, spatially-invariant model that predicts a
// response field from a binned microstructure field.
//
// The microstructure is first discretized into Nbin fractional bin
// memberships at every spatial point, then transformed to the frequency
// domain over all spatial axes. Because the model is spatially invariant,
// the regression decouples in the frequency domain: every spatial-frequency
// coordinate contributes one independent least-squares problem across the
// sample axis, and the stacked solutions form the influence-coefficient
// tensor Fcoeff. Prediction contracts the binned-frequency input against
// Fcoeff and transforms back to the spatial domain.
package regression

import (
	"fmt"
	"runtime"
	"sync"

	"mksgo/pkg/discretize"
	"mksgo/pkg/field"
	"mksgo/pkg/spectral"
)

// Params holds the model construction parameters.
type Params struct {
	// Nbin is the number of discretization bins for the microstructure.
	// Must be at least 2.
	Nbin int

	// NumWorkers is the number of goroutines used for the independent
	// per-frequency solves during Fit. Values below 1 are treated as 1.
	// The fit result does not depend on the worker count.
	NumWorkers int
}

// DefaultParams returns the default model parameters: 10 bins and one
// fit worker per available CPU core.
func DefaultParams() *Params {
	return &Params{
		Nbin:       10,
		NumWorkers: runtime.NumCPU(),
	}
}

// Model fits and applies the frequency-domain MKS regression. A Model is
// created without coefficients; Fit computes and stores them, and Predict
// requires a prior successful Fit. Concurrent Predict calls on a fitted
// model are safe; concurrent Fit calls are not.
type Model struct {
	params Params
	disc   *discretize.Discretizer

	// fcoeff is the influence-coefficient tensor with shape
	// spatial + (Nbin,). It is nil until the first successful Fit and
	// replaced wholesale by later Fits.
	fcoeff *field.CField
}

// NewModel creates a model with the given parameters. A nil params uses
// DefaultParams.
func NewModel(params *Params) (*Model, error) {
	p := DefaultParams()
	if params != nil {
		p = params
	}

	disc, err := discretize.New(p.Nbin)
	if err != nil {
		return nil, err
	}

	m := &Model{params: *p, disc: disc}
	if m.params.NumWorkers < 1 {
		m.params.NumWorkers = 1
	}
	return m, nil
}

// NumBins returns the number of discretization bins.
func (m *Model) NumBins() int { return m.disc.NumBins() }

// Discretizer returns the model's discretizer, for consumers such as
// visualization that need the bin grid and membership vectors.
func (m *Model) Discretizer() *discretize.Discretizer { return m.disc }

// spatialAxes returns the Fourier transform axes for a sample-leading
// field of the given rank: every axis except the leading sample axis.
func spatialAxes(rank int) []int {
	axes := make([]int, rank-1)
	for i := range axes {
		axes[i] = i + 1
	}
	return axes
}

// binFFT discretizes X and transforms the binned field over the spatial
// axes of X. The trailing bin axis and the leading sample axis are never
// transformed.
func (m *Model) binFFT(X *field.Field) *field.CField {
	return spectral.FFTNReal(m.disc.Bin(X), spatialAxes(X.Rank()))
}

// Fit computes the influence coefficients from paired samples.
//
// X and y must have identical shape (S, d1, ..., dk) with S the sample
// count and at least one spatial axis; violations return ErrInvalidInput.
// For every spatial-frequency coordinate an independent least-squares
// problem of size S-by-Nbin is solved across the samples; rank-deficient
// systems resolve to the minimum-norm solution rather than failing.
//
// On success the model's stored coefficients are replaced. On failure the
// previous coefficients, if any, are left untouched.
func (m *Model) Fit(X, y *field.Field) error {
	if X == nil || y == nil {
		return fmt.Errorf("%w: X and y must be non-nil", ErrInvalidInput)
	}
	if X.Rank() < 2 {
		return fmt.Errorf("%w: need a sample axis plus at least one spatial axis, got shape %v", ErrInvalidInput, X.Shape)
	}
	if !field.SameShape(X.Shape, y.Shape) {
		return fmt.Errorf("%w: X shape %v does not match y shape %v", ErrInvalidInput, X.Shape, y.Shape)
	}

	nbin := m.disc.NumBins()
	samples := X.Shape[0]
	spatial := X.Shape[1:]
	nspatial := field.Size(spatial)

	FX := m.binFFT(X)
	Fy := spectral.FFTNReal(y, spatialAxes(X.Rank()))

	coeffShape := make([]int, 0, len(spatial)+1)
	coeffShape = append(coeffShape, spatial...)
	coeffShape = append(coeffShape, nbin)
	coeff := field.NewComplex(coeffShape...)

	// The per-frequency problems are fully independent, so the flat
	// spatial index range is split into contiguous chunks, one per
	// worker. Each coordinate is solved exactly once.
	workers := m.params.NumWorkers
	if workers > nspatial {
		workers = nspatial
	}
	chunk := (nspatial + workers - 1) / workers

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > nspatial {
			end = nspatial
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			a := make([]complex128, samples*nbin)
			b := make([]complex128, samples)
			for j := start; j < end; j++ {
				// Row-major layout puts the flattened spatial index
				// between the sample and bin axes, so the slices for
				// coordinate j are strided gathers.
				for s := 0; s < samples; s++ {
					off := (s*nspatial + j) * nbin
					copy(a[s*nbin:(s+1)*nbin], FX.Data[off:off+nbin])
					b[s] = Fy.Data[s*nspatial+j]
				}
				if err := solveLeastSquares(a, samples, nbin, b, coeff.Data[j*nbin:(j+1)*nbin]); err != nil {
					errCh <- fmt.Errorf("fit: frequency coordinate %d: %v", j, err)
					return
				}
			}
		}(start, end)
	}
	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return err
	}

	m.fcoeff = coeff
	return nil
}

// Predict computes the response field for a microstructure using the
// stored influence coefficients.
//
// It returns ErrNotFit if the model has never been fit, and
// ErrInvalidInput if the spatial shape of X does not match the fitted
// coefficients. The output has the same shape as X; the imaginary part of
// the inverse transform is discarded as reconstruction noise.
func (m *Model) Predict(X *field.Field) (*field.Field, error) {
	if m.fcoeff == nil {
		return nil, fmt.Errorf("%w: call Fit before Predict", ErrNotFit)
	}
	if X == nil || X.Rank() < 2 {
		return nil, fmt.Errorf("%w: need a sample axis plus at least one spatial axis", ErrInvalidInput)
	}

	spatial := X.Shape[1:]
	coeffSpatial := m.fcoeff.Shape[:m.fcoeff.Rank()-1]
	if !field.SameShape(spatial, coeffSpatial) {
		return nil, fmt.Errorf("%w: spatial shape %v does not match fitted coefficient shape %v", ErrInvalidInput, spatial, coeffSpatial)
	}

	nbin := m.disc.NumBins()
	samples := X.Shape[0]
	nspatial := field.Size(spatial)

	FX := m.binFFT(X)

	// Contract the trailing bin axis against the coefficients, which
	// broadcast across the sample axis.
	Fy := field.NewComplex(X.Shape...)
	for s := 0; s < samples; s++ {
		for j := 0; j < nspatial; j++ {
			var sum complex128
			off := (s*nspatial + j) * nbin
			cff := m.fcoeff.Data[j*nbin : (j+1)*nbin]
			for bin := 0; bin < nbin; bin++ {
				sum += FX.Data[off+bin] * cff[bin]
			}
			Fy.Data[s*nspatial+j] = sum
		}
	}

	return spectral.IFFTN(Fy, spatialAxes(X.Rank())).Real(), nil
}

// InfluenceCoefficients returns a copy of the fitted coefficient tensor,
// shaped spatial + (Nbin,), or nil if the model has not been fit.
func (m *Model) InfluenceCoefficients() *field.CField {
	if m.fcoeff == nil {
		return nil
	}
	return m.fcoeff.Clone()
}

// SpatialCoefficients returns the influence coefficients transformed back
// to the spatial domain over the spatial axes, or nil if the model has
// not been fit. The trailing bin axis is not transformed.
func (m *Model) SpatialCoefficients() *field.CField {
	if m.fcoeff == nil {
		return nil
	}
	axes := make([]int, m.fcoeff.Rank()-1)
	for i := range axes {
		axes[i] = i
	}
	return spectral.IFFTN(m.fcoeff, axes)
}
