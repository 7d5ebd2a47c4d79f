package discretize

import (
	"math"
	"testing"

	"mksgo/pkg/field"
)

// TestNewValidation ensures the bin count is validated
func TestNewValidation(t *testing.T) {
	if _, err := New(1); err == nil {
		t.Errorf("expected error for 1 bin")
	}
	if _, err := New(0); err == nil {
		t.Errorf("expected error for 0 bins")
	}

	d, err := New(2)
	if err != nil {
		t.Fatalf("unexpected error for 2 bins: %v", err)
	}
	if d.NumBins() != 2 {
		t.Errorf("expected 2 bins, got %d", d.NumBins())
	}
}

// TestLevels verifies the bin grid spans [0, 1] uniformly
func TestLevels(t *testing.T) {
	d, err := New(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	levels := d.Levels()
	expected := []float64{0, 0.25, 0.5, 0.75, 1}
	for i, h := range levels {
		if math.Abs(h-expected[i]) > 1e-14 {
			t.Errorf("expected level[%d]=%f, got %f", i, expected[i], h)
		}
	}
	if math.Abs(d.Spacing()-0.25) > 1e-14 {
		t.Errorf("expected spacing 0.25, got %f", d.Spacing())
	}
}

// TestReconstructionIdentity verifies that for values within [0, 1] the
// membership vector weighted by the bin levels reproduces the value
func TestReconstructionIdentity(t *testing.T) {
	for _, nbin := range []int{2, 3, 7, 10, 25} {
		d, err := New(nbin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		levels := d.Levels()

		for i := 0; i <= 100; i++ {
			v := float64(i) / 100

			m := d.Memberships(v, nil)
			sum := 0.0
			for b, w := range m {
				sum += w * levels[b]
			}

			if math.Abs(sum-v) > 1e-10 {
				t.Errorf("nbin=%d v=%f: reconstruction gave %f", nbin, v, sum)
			}
		}
	}
}

// TestNonNegativity checks that memberships are never negative
func TestNonNegativity(t *testing.T) {
	d, err := New(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := -20; i <= 120; i++ {
		v := float64(i) / 100
		for b, w := range d.Memberships(v, nil) {
			if w < 0 {
				t.Errorf("v=%f bin=%d: negative membership %f", v, b, w)
			}
		}
	}
}

// TestCompactSupport verifies that at most two adjacent bins are nonzero
// for in-range values
func TestCompactSupport(t *testing.T) {
	d, err := New(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		nonzero := 0
		for _, w := range d.Memberships(v, nil) {
			if w > 0 {
				nonzero++
			}
		}
		if nonzero < 1 || nonzero > 2 {
			t.Errorf("v=%f: expected 1 or 2 nonzero memberships, got %d", v, nonzero)
		}
	}
}

// TestOutOfRangeDegradesSilently checks that out-of-range values are
// accepted without error even though they no longer sum-reconstruct
func TestOutOfRangeDegradesSilently(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	levels := d.Levels()

	v := 1.5
	m := d.Memberships(v, nil)
	sum := 0.0
	for b, w := range m {
		sum += w * levels[b]
	}

	// The value is beyond the grid, so the reconstruction falls short.
	if math.Abs(sum-v) < 1e-3 {
		t.Errorf("expected degraded reconstruction for v=%f, got exact %f", v, sum)
	}
}

// TestBinShape checks that Bin appends a trailing membership axis
func TestBinShape(t *testing.T) {
	d, err := New(6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := field.New(2, 3, 4)
	binned := d.Bin(f)

	expected := []int{2, 3, 4, 6}
	if !field.SameShape(binned.Shape, expected) {
		t.Errorf("expected shape %v, got %v", expected, binned.Shape)
	}
}

// TestBinIsPointwise checks that binning commutes with reshaping: the
// membership vector of an element depends only on its value
func TestBinIsPointwise(t *testing.T) {
	d, err := New(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values := []float64{0, 0.1, 0.37, 0.5, 0.83, 1}
	flat := field.FromSlice(values, 6)
	square := field.FromSlice(values, 2, 3)

	bf := d.Bin(flat)
	bs := d.Bin(square)

	for i := range bf.Data {
		if bf.Data[i] != bs.Data[i] {
			t.Errorf("element %d: flat gave %f, reshaped gave %f", i, bf.Data[i], bs.Data[i])
		}
	}
}
