// Package field provides dense multidimensional real and complex arrays
// used throughout the regression pipeline. Data is stored as a flat slice
// in row-major order together with an explicit shape vector, so the same
// types serve 1-D, 2-D and higher-dimensional spatial grids uniformly.
package field

import "fmt"

// Field is a dense real-valued array of arbitrary rank.
type Field struct {
	// Shape holds the length of each axis, outermost first.
	Shape []int

	// Data is the array content in row-major order. Its length is
	// always the product of Shape.
	Data []float64
}

// CField is a dense complex-valued array of arbitrary rank, laid out the
// same way as Field.
type CField struct {
	// Shape holds the length of each axis, outermost first.
	Shape []int

	// Data is the array content in row-major order.
	Data []complex128
}

// New creates a zero-filled real field with the given shape.
// It panics if any axis length is not positive.
func New(shape ...int) *Field {
	return &Field{
		Shape: cloneShape(shape),
		Data:  make([]float64, Size(shape)),
	}
}

// NewComplex creates a zero-filled complex field with the given shape.
// It panics if any axis length is not positive.
func NewComplex(shape ...int) *CField {
	return &CField{
		Shape: cloneShape(shape),
		Data:  make([]complex128, Size(shape)),
	}
}

// FromSlice wraps existing row-major data in a Field. The data is not
// copied; the caller must not resize it. It panics if the data length
// does not match the shape.
func FromSlice(data []float64, shape ...int) *Field {
	if len(data) != Size(shape) {
		panic(fmt.Sprintf("field: data length %d does not match shape %v", len(data), shape))
	}
	return &Field{Shape: cloneShape(shape), Data: data}
}

// Size returns the number of elements implied by a shape.
// It panics if any axis length is not positive.
func Size(shape []int) int {
	n := 1
	for _, d := range shape {
		if d <= 0 {
			panic(fmt.Sprintf("field: invalid axis length %d in shape %v", d, shape))
		}
		n *= d
	}
	return n
}

// SameShape reports whether two shapes are identical.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Strides returns the row-major stride of each axis: the distance in the
// flat data slice between consecutive elements along that axis.
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

func cloneShape(shape []int) []int {
	out := make([]int, len(shape))
	copy(out, shape)
	return out
}

func flatIndex(shape, idx []int) int {
	if len(idx) != len(shape) {
		panic(fmt.Sprintf("field: index rank %d does not match shape rank %d", len(idx), len(shape)))
	}
	flat := 0
	for i, x := range idx {
		if x < 0 || x >= shape[i] {
			panic(fmt.Sprintf("field: index %v out of range for shape %v", idx, shape))
		}
		flat = flat*shape[i] + x
	}
	return flat
}

// Rank returns the number of axes.
func (f *Field) Rank() int { return len(f.Shape) }

// Index converts a multidimensional index to a flat offset into Data.
func (f *Field) Index(idx ...int) int { return flatIndex(f.Shape, idx) }

// At returns the element at the given multidimensional index.
func (f *Field) At(idx ...int) float64 { return f.Data[flatIndex(f.Shape, idx)] }

// Set assigns the element at the given multidimensional index.
func (f *Field) Set(v float64, idx ...int) { f.Data[flatIndex(f.Shape, idx)] = v }

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	out := New(f.Shape...)
	copy(out.Data, f.Data)
	return out
}

// Complex returns a complex copy of the field, with every element placed
// in the real component.
func (f *Field) Complex() *CField {
	out := NewComplex(f.Shape...)
	for i, v := range f.Data {
		out.Data[i] = complex(v, 0)
	}
	return out
}

// Rank returns the number of axes.
func (c *CField) Rank() int { return len(c.Shape) }

// Index converts a multidimensional index to a flat offset into Data.
func (c *CField) Index(idx ...int) int { return flatIndex(c.Shape, idx) }

// At returns the element at the given multidimensional index.
func (c *CField) At(idx ...int) complex128 { return c.Data[flatIndex(c.Shape, idx)] }

// Set assigns the element at the given multidimensional index.
func (c *CField) Set(v complex128, idx ...int) { c.Data[flatIndex(c.Shape, idx)] = v }

// Clone returns a deep copy of the field.
func (c *CField) Clone() *CField {
	out := NewComplex(c.Shape...)
	copy(out.Data, c.Data)
	return out
}

// Real returns a real field holding the real component of every element.
// The imaginary components are discarded.
func (c *CField) Real() *Field {
	out := New(c.Shape...)
	for i, v := range c.Data {
		out.Data[i] = real(v)
	}
	return out
}
