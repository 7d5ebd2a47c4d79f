package field

import "testing"

// TestNewAndSize verifies allocation and element counting for a few shapes
func TestNewAndSize(t *testing.T) {
	cases := []struct {
		shape []int
		size  int
	}{
		{[]int{4}, 4},
		{[]int{2, 3}, 6},
		{[]int{2, 3, 4}, 24},
		{[]int{1, 5, 3, 2}, 30},
	}

	for _, c := range cases {
		f := New(c.shape...)
		if len(f.Data) != c.size {
			t.Errorf("shape %v: expected %d elements, got %d", c.shape, c.size, len(f.Data))
		}
		if !SameShape(f.Shape, c.shape) {
			t.Errorf("shape %v: stored shape is %v", c.shape, f.Shape)
		}
	}
}

// TestIndexing verifies that multidimensional indices map to row-major
// flat offsets
func TestIndexing(t *testing.T) {
	f := New(2, 3, 4)

	if idx := f.Index(0, 0, 0); idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}
	if idx := f.Index(0, 0, 3); idx != 3 {
		t.Errorf("expected index 3, got %d", idx)
	}
	if idx := f.Index(0, 2, 1); idx != 9 {
		t.Errorf("expected index 9, got %d", idx)
	}
	if idx := f.Index(1, 2, 3); idx != 23 {
		t.Errorf("expected index 23, got %d", idx)
	}

	f.Set(2.5, 1, 1, 1)
	if got := f.At(1, 1, 1); got != 2.5 {
		t.Errorf("expected 2.5 at (1,1,1), got %f", got)
	}
	if got := f.Data[f.Index(1, 1, 1)]; got != 2.5 {
		t.Errorf("flat access disagrees with At: got %f", got)
	}
}

// TestStrides verifies row-major stride computation
func TestStrides(t *testing.T) {
	strides := Strides([]int{2, 3, 4})
	expected := []int{12, 4, 1}

	for i, s := range strides {
		if s != expected[i] {
			t.Errorf("expected stride[%d]=%d, got %d", i, expected[i], s)
		}
	}
}

// TestSameShape checks shape comparison including rank mismatches
func TestSameShape(t *testing.T) {
	if !SameShape([]int{2, 3}, []int{2, 3}) {
		t.Errorf("identical shapes reported as different")
	}
	if SameShape([]int{2, 3}, []int{3, 2}) {
		t.Errorf("different shapes reported as same")
	}
	if SameShape([]int{2, 3}, []int{2, 3, 1}) {
		t.Errorf("different ranks reported as same")
	}
}

// TestCloneIsIndependent ensures modifying a clone does not touch the
// original data
func TestCloneIsIndependent(t *testing.T) {
	f := New(2, 2)
	f.Set(1.0, 0, 0)

	g := f.Clone()
	g.Set(5.0, 0, 0)

	if f.At(0, 0) != 1.0 {
		t.Errorf("clone mutation leaked into original: got %f", f.At(0, 0))
	}
}

// TestComplexRealRoundTrip converts real to complex and back
func TestComplexRealRoundTrip(t *testing.T) {
	f := New(3, 2)
	for i := range f.Data {
		f.Data[i] = float64(i) * 0.5
	}

	back := f.Complex().Real()
	for i := range f.Data {
		if back.Data[i] != f.Data[i] {
			t.Errorf("element %d: expected %f, got %f", i, f.Data[i], back.Data[i])
		}
	}
}

// TestFromSlice wraps existing data without copying
func TestFromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	f := FromSlice(data, 2, 3)

	if f.At(1, 2) != 6 {
		t.Errorf("expected 6 at (1,2), got %f", f.At(1, 2))
	}

	data[0] = 9
	if f.At(0, 0) != 9 {
		t.Errorf("FromSlice should not copy: expected 9, got %f", f.At(0, 0))
	}
}
