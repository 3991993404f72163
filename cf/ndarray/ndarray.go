// Package ndarray implements the dense, masked, N-dimensional array
// value type returned by the compressed-array decoders.
//
// Values are held in one flat typed slice in row-major order, with an
// optional parallel boolean mask.  A nil mask means no element is
// masked.  Arrays are not safe for concurrent mutation; decoders
// allocate their own output arrays and never share them while writing.
package ndarray

import (
	"errors"
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
)

var (
	// ErrShape is returned when data length and shape disagree.
	ErrShape = errors.New("shape does not match data length")

	// ErrType is returned when a value or slice has the wrong Go type
	// for the array's element type.
	ErrType = errors.New("wrong element type")
)

type Array struct {
	typ   api.Type
	shape []int
	data  any    // flat slice, len == Size()
	mask  []bool // nil means fully unmasked
}

// New returns a zero-filled, unmasked array.
func New(t api.Type, shape ...int) *Array {
	n := sizeOf(shape)
	return &Array{
		typ:   t,
		shape: cloneInts(shape),
		data:  newData(t, n),
	}
}

// NewMaskedAll returns an array with every element masked.  Decoders
// start from one of these and overwrite the regions they can fill.
func NewMaskedAll(t api.Type, shape ...int) *Array {
	a := New(t, shape...)
	a.mask = make([]bool, a.Size())
	for i := range a.mask {
		a.mask[i] = true
	}
	return a
}

// FromSlice wraps a flat typed slice as an array.  The slice is not
// copied.
func FromSlice(t api.Type, data any, shape ...int) (*Array, error) {
	n := dataLen(data)
	if n < 0 {
		return nil, fmt.Errorf("%w: %T is not a supported slice", ErrType, data)
	}
	dt := dataType(data)
	if dt != t && !(t == api.TypeChar && dt == api.TypeUint8) {
		return nil, fmt.Errorf("%w: %T does not hold %v elements", ErrType, data, t)
	}
	if n != sizeOf(shape) {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShape, n, shape)
	}
	return &Array{typ: t, shape: cloneInts(shape), data: data}, nil
}

// SetMask attaches a mask to the array.  A nil mask clears it.
func (a *Array) SetMask(mask []bool) error {
	if mask != nil && len(mask) != a.Size() {
		return fmt.Errorf("%w: mask length %d for size %d", ErrShape, len(mask), a.Size())
	}
	a.mask = mask
	return nil
}

func (a *Array) Type() api.Type {
	return a.typ
}

func (a *Array) Shape() []int {
	return cloneInts(a.shape)
}

func (a *Array) NDim() int {
	return len(a.shape)
}

func (a *Array) Size() int {
	return sizeOf(a.shape)
}

// Data returns the flat backing slice.  Callers must not resize it.
func (a *Array) Data() any {
	return a.data
}

// Mask returns the backing mask, which may be nil.
func (a *Array) Mask() []bool {
	return a.mask
}

// Masked reports whether the element at flat offset i is masked.
func (a *Array) Masked(i int) bool {
	return a.mask != nil && a.mask[i]
}

// AnyMasked reports whether at least one element is masked.
func (a *Array) AnyMasked() bool {
	for _, m := range a.mask {
		if m {
			return true
		}
	}
	return false
}

// SetMasked masks the element at flat offset i.
func (a *Array) SetMasked(i int) {
	if a.mask == nil {
		a.mask = make([]bool, a.Size())
	}
	a.mask[i] = true
}

// ValueAt returns the element at flat offset i, ignoring the mask.
func (a *Array) ValueAt(i int) any {
	return elemAt(a.data, i)
}

// SetValueAt stores v, which must have the array's exact element type,
// at flat offset i and unmasks the position.
func (a *Array) SetValueAt(i int, v any) error {
	if err := setElemAt(a.data, i, v); err != nil {
		return err
	}
	if a.mask != nil {
		a.mask[i] = false
	}
	return nil
}

// Reshape changes the shape in place.  The total size must not change.
func (a *Array) Reshape(shape ...int) error {
	if sizeOf(shape) != a.Size() {
		return fmt.Errorf("%w: cannot reshape %v to %v", ErrShape, a.shape, shape)
	}
	a.shape = cloneInts(shape)
	return nil
}

// Copy returns an independent deep copy.
func (a *Array) Copy() *Array {
	out := New(a.typ, a.shape...)
	copyData(out.data, 0, a.data, 0, a.Size())
	if a.mask != nil {
		out.mask = make([]bool, len(a.mask))
		copy(out.mask, a.mask)
	}
	return out
}

func sizeOf(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}
