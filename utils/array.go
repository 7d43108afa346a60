package utils

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when an array does not have the shape a
	// buffer was allocated with
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrDataType is returned when a complex array is written into a real one
	ErrDataType = errors.New("data type mismatch")
)

// Array is a row-major n-dimensional buffer of float64 or complex values.
// Complex arrays keep the real and imaginary parts in separate slices, which
// lets a real-only transform run over each part independently.
type Array struct {
	shape []int
	Re    []float64
	Im    []float64 // nil for real arrays
}

// NewArray allocates a zeroed array
func NewArray(shape []int, isComplex bool) *Array {
	size := product(shape)
	a := &Array{
		shape: append([]int(nil), shape...),
		Re:    make([]float64, size),
	}
	if isComplex {
		a.Im = make([]float64, size)
	}
	return a
}

// NewArrayFrom wraps data as a real array of the given shape without copying
func NewArrayFrom(shape []int, data []float64) *Array {
	if len(data) != product(shape) {
		panic(fmt.Sprintf("data length %d does not match shape %v", len(data), shape))
	}
	return &Array{shape: append([]int(nil), shape...), Re: data}
}

// NewVector wraps a 1D slice
func NewVector(data []float64) *Array {
	return NewArrayFrom([]int{len(data)}, data)
}

func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

func (a *Array) NDim() int { return len(a.shape) }

func (a *Array) Size() int { return len(a.Re) }

func (a *Array) Dim(axis int) int { return a.shape[axis] }

func (a *Array) IsComplex() bool { return a.Im != nil }

// Parts returns the real part and, for complex arrays, the imaginary part
func (a *Array) Parts() [][]float64 {
	if a.Im == nil {
		return [][]float64{a.Re}
	}
	return [][]float64{a.Re, a.Im}
}

// HasShape reports whether the array has exactly the given shape
func (a *Array) HasShape(shape []int) bool {
	if len(shape) != len(a.shape) {
		return false
	}
	for i := range shape {
		if shape[i] != a.shape[i] {
			return false
		}
	}
	return true
}

func (a *Array) Zero() {
	for _, p := range a.Parts() {
		clear(p)
	}
}

// CopyFrom copies src into a. A real src copied into a complex array zeroes
// the imaginary part.
func (a *Array) CopyFrom(src *Array) error {
	if !a.HasShape(src.shape) {
		return fmt.Errorf("copy %v into %v: %w", src.shape, a.shape, ErrShapeMismatch)
	}
	if src.IsComplex() && !a.IsComplex() {
		return fmt.Errorf("copy complex array into real buffer: %w", ErrDataType)
	}
	copy(a.Re, src.Re)
	if a.IsComplex() {
		if src.IsComplex() {
			copy(a.Im, src.Im)
		} else {
			clear(a.Im)
		}
	}
	return nil
}

// Clone returns a deep copy
func (a *Array) Clone() *Array {
	c := NewArray(a.shape, a.IsComplex())
	copy(c.Re, a.Re)
	if a.IsComplex() {
		copy(c.Im, a.Im)
	}
	return c
}

// Scale multiplies every element by s
func (a *Array) Scale(s float64) {
	for _, p := range a.Parts() {
		for i := range p {
			p[i] *= s
		}
	}
}

// layout returns the number of lines before the axis, the axis length and
// the stride between consecutive elements of a line
func (a *Array) layout(axis int) (outer, n, inner int) {
	if axis < 0 || axis >= len(a.shape) {
		panic(fmt.Sprintf("axis %d out of range for shape %v", axis, a.shape))
	}
	return product(a.shape[:axis]), a.shape[axis], product(a.shape[axis+1:])
}

// LineCount is the number of one-dimensional lines along axis
func (a *Array) LineCount(axis int) int {
	outer, _, inner := a.layout(axis)
	return outer * inner
}

// ReadLine gathers line l along axis of the given part into dst
func (a *Array) ReadLine(part, axis, l int, dst []float64) {
	_, n, inner := a.layout(axis)
	data := a.Parts()[part]
	base := (l/inner)*n*inner + l%inner
	for k := 0; k < n; k++ {
		dst[k] = data[base+k*inner]
	}
}

// WriteLine scatters src into line l along axis of the given part
func (a *Array) WriteLine(part, axis, l int, src []float64) {
	_, n, inner := a.layout(axis)
	data := a.Parts()[part]
	base := (l/inner)*n*inner + l%inner
	for k := 0; k < n; k++ {
		data[base+k*inner] = src[k]
	}
}

// ForEachLine calls fn with every line along axis, for every part. Changes
// made to the line are stored back in the array.
func (a *Array) ForEachLine(axis int, fn func(line []float64)) {
	ZipLines(axis, func(lines [][]float64) { fn(lines[0]) }, a)
}

// ForEachPartLine is ForEachLine with the part index passed along, 0 for the
// real part and 1 for the imaginary part
func (a *Array) ForEachPartLine(axis int, fn func(part int, line []float64)) {
	_, n, _ := a.layout(axis)
	line := make([]float64, n)
	for p := range a.Parts() {
		for l := 0; l < a.LineCount(axis); l++ {
			a.ReadLine(p, axis, l, line)
			fn(p, line)
			a.WriteLine(p, axis, l, line)
		}
	}
}

// ZipLines visits the lines along axis of all arrays in lockstep. The arrays
// must share the shape and data type of the first one. Contiguous lines are
// passed without copying, strided lines are gathered and scattered back.
func ZipLines(axis int, fn func(lines [][]float64), arrays ...*Array) {
	a0 := arrays[0]
	for _, arr := range arrays[1:] {
		if !arr.HasShape(a0.shape) || arr.IsComplex() != a0.IsComplex() {
			panic(fmt.Sprintf("ZipLines: array %v does not match %v", arr.shape, a0.shape))
		}
	}
	outer, n, inner := a0.layout(axis)
	lines := make([][]float64, len(arrays))
	var scratch [][]float64
	if inner != 1 {
		scratch = make([][]float64, len(arrays))
		for i := range scratch {
			scratch[i] = make([]float64, n)
		}
	}
	for p := range a0.Parts() {
		for l := 0; l < outer*inner; l++ {
			if inner == 1 {
				for ai, arr := range arrays {
					lines[ai] = arr.Parts()[p][l*n : (l+1)*n]
				}
				fn(lines)
				continue
			}
			for ai, arr := range arrays {
				arr.ReadLine(p, axis, l, scratch[ai])
				lines[ai] = scratch[ai]
			}
			fn(lines)
			for ai, arr := range arrays {
				arr.WriteLine(p, axis, l, scratch[ai])
			}
		}
	}
}

func product(s []int) int {
	p := 1
	for _, v := range s {
		p *= v
	}
	return p
}
