package api

import (
	"errors"
	"fmt"
)

var ErrRegion = errors.New("region out of range")

// Range is a half-open interval [Begin, End) along one axis.
type Range struct {
	Begin int
	End   int
}

// Len returns the number of positions in the range.
func (r Range) Len() int {
	return r.End - r.Begin
}

// Region is a rectangular subset of an array, one Range per axis.
type Region []Range

// WholeRegion returns the region covering all of an array of the
// given shape.
func WholeRegion(shape []int) Region {
	r := make(Region, len(shape))
	for i, n := range shape {
		r[i] = Range{0, n}
	}
	return r
}

// Shape returns the per-axis lengths of the region.
func (r Region) Shape() []int {
	shape := make([]int, len(r))
	for i, rng := range r {
		shape[i] = rng.Len()
	}
	return shape
}

// Size returns the number of elements in the region.
func (r Region) Size() int {
	size := 1
	for _, rng := range r {
		size *= rng.Len()
	}
	return size
}

// Validate checks the region against an array shape.
func (r Region) Validate(shape []int) error {
	if len(r) != len(shape) {
		return fmt.Errorf("%w: %d ranges for %d axes", ErrRegion, len(r), len(shape))
	}
	for i, rng := range r {
		if rng.Begin < 0 || rng.End < rng.Begin || rng.End > shape[i] {
			return fmt.Errorf("%w: [%d, %d) on axis %d of size %d",
				ErrRegion, rng.Begin, rng.End, i, shape[i])
		}
	}
	return nil
}
