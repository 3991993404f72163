package ndarray

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
)

// SetRegion writes src into the given region of a.  The region's shape
// must equal src's shape, and element types must match.  Masked source
// elements mask the destination positions.
func (a *Array) SetRegion(region api.Region, src *Array) error {
	if err := region.Validate(a.shape); err != nil {
		return err
	}
	rshape := region.Shape()
	if !sameInts(rshape, src.shape) {
		return fmt.Errorf("%w: region %v does not fit source %v", ErrShape, rshape, src.shape)
	}
	if a.typ != src.typ {
		return fmt.Errorf("%w: %v region from %v source", ErrType, a.typ, src.typ)
	}
	strides := Strides(a.shape)
	si := 0
	for o := newOdometer(rshape); o.live(); o.advance() {
		di := 0
		for d, i := range o.idx {
			di += (region[d].Begin + i) * strides[d]
		}
		copyData(a.data, di, src.data, si, 1)
		if src.Masked(si) {
			a.SetMasked(di)
		} else if a.mask != nil {
			a.mask[di] = false
		}
		si++
	}
	return nil
}

// Subspace selects positions independently along every axis
// (orthogonal indexing) and returns the result as a new array.  An At
// index keeps its axis with size 1; rank never changes.
func (a *Array) Subspace(indices ...api.Index) (*Array, error) {
	if len(indices) != len(a.shape) {
		return nil, fmt.Errorf("%w: %d indices for %d axes", api.ErrIndex, len(indices), len(a.shape))
	}
	positions := make([][]int, len(indices))
	outShape := make([]int, len(indices))
	for d, ix := range indices {
		p, err := ix.Positions(a.shape[d])
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", d, err)
		}
		positions[d] = p
		outShape[d] = len(p)
	}

	out := New(a.typ, outShape...)
	strides := Strides(a.shape)
	di := 0
	for o := newOdometer(outShape); o.live(); o.advance() {
		si := 0
		for d, i := range o.idx {
			si += positions[d][i] * strides[d]
		}
		copyData(out.data, di, a.data, si, 1)
		if a.Masked(si) {
			out.SetMasked(di)
		}
		di++
	}
	return out, nil
}

// Extract returns a copy of a rectangular region.
func (a *Array) Extract(region api.Region) (*Array, error) {
	indices := make([]api.Index, len(region))
	for d, r := range region {
		indices[d] = api.Span(r.Begin, r.End)
	}
	return a.Subspace(indices...)
}

func sameInts(a, b []int) bool {
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
