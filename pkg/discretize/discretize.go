// Package discretize converts continuous microstructure values into
// fractional bin memberships over a uniform grid of reference levels.
//
// Each scalar value v is expanded into Nbin weights using a triangular
// kernel centered on the bin levels. For v within [0, 1] at most two
// adjacent weights are nonzero and their weighted sum against the levels
// reproduces v exactly, which is the linear interpolation identity the
// regression model relies on.
package discretize

import (
	"fmt"
	"math"

	"mksgo/pkg/field"
)

// Discretizer maps scalar field values to membership vectors over a
// fixed grid of bin levels. A Discretizer is immutable after creation
// and safe for concurrent use.
type Discretizer struct {
	nbin    int
	levels  []float64
	spacing float64
}

// New creates a Discretizer with nbin uniformly spaced levels spanning
// [0, 1] inclusive. At least two bins are required.
func New(nbin int) (*Discretizer, error) {
	if nbin < 2 {
		return nil, fmt.Errorf("discretize: need at least 2 bins, got %d", nbin)
	}

	levels := make([]float64, nbin)
	for i := range levels {
		levels[i] = float64(i) / float64(nbin-1)
	}

	return &Discretizer{
		nbin:    nbin,
		levels:  levels,
		spacing: 1.0 / float64(nbin-1),
	}, nil
}

// NumBins returns the number of bin levels.
func (d *Discretizer) NumBins() int { return d.nbin }

// Spacing returns the distance between adjacent bin levels.
func (d *Discretizer) Spacing() float64 { return d.spacing }

// Levels returns a copy of the bin level grid.
func (d *Discretizer) Levels() []float64 {
	out := make([]float64, d.nbin)
	copy(out, d.levels)
	return out
}

// Memberships computes the fractional membership of a single value in
// each bin, writing into dst if it has sufficient capacity.
//
// Values outside [0, 1] are not rejected: their memberships no longer
// sum-reconstruct the value, the model simply loses accuracy for them.
func (d *Discretizer) Memberships(v float64, dst []float64) []float64 {
	if cap(dst) < d.nbin {
		dst = make([]float64, d.nbin)
	}
	dst = dst[:d.nbin]

	for i, h := range d.levels {
		dst[i] = math.Max(1-math.Abs(v-h)/d.spacing, 0)
	}
	return dst
}

// Bin expands every element of f into its membership vector. The result
// has the shape of f with a trailing axis of length NumBins appended.
// The input is not modified.
func (d *Discretizer) Bin(f *field.Field) *field.Field {
	outShape := make([]int, f.Rank()+1)
	copy(outShape, f.Shape)
	outShape[f.Rank()] = d.nbin

	out := field.New(outShape...)
	for i, v := range f.Data {
		d.Memberships(v, out.Data[i*d.nbin:(i+1)*d.nbin])
	}
	return out
}
