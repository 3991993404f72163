package auxvar

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// TiePointIndex holds, for one interpolated dimension, the logical
// position of every tie point.  Indices are strictly increasing; a
// step of one between consecutive indices marks an interpolation area
// boundary.
type TiePointIndex struct {
	indices []int
}

// NewTiePointIndex reads a tie point index variable from a source.
func NewTiePointIndex(src api.Source, log *util.Logger) (*TiePointIndex, error) {
	a, err := decodeAll(src, log)
	if err != nil {
		return nil, err
	}
	vals, err := intsOf(a)
	if err != nil {
		return nil, fmt.Errorf("tie point index variable: %w", err)
	}
	return TiePointIndexOf(vals...)
}

// TiePointIndexOf builds a tie point index from in-memory values.
func TiePointIndexOf(indices ...int) (*TiePointIndex, error) {
	tp := &TiePointIndex{indices: make([]int, len(indices))}
	copy(tp.indices, indices)
	for t, v := range indices {
		if v < 0 {
			return nil, fmt.Errorf("%w: tie point index[%d] = %d", ErrNegative, t, v)
		}
		if t > 0 && v <= indices[t-1] {
			return nil, fmt.Errorf("%w: index[%d] = %d after %d",
				ErrTiePointOrder, t, v, indices[t-1])
		}
	}
	return tp, nil
}

// Len returns the number of tie points.
func (tp *TiePointIndex) Len() int {
	return len(tp.indices)
}

// At returns the logical position of tie point t.
func (tp *TiePointIndex) At(t int) int {
	return tp.indices[t]
}

// First returns the logical position of the first tie point.
func (tp *TiePointIndex) First() int {
	return tp.indices[0]
}

// Last returns the logical position of the last tie point.
func (tp *TiePointIndex) Last() int {
	return tp.indices[len(tp.indices)-1]
}

// Validate checks that the tie points cover the whole logical
// dimension of size n, so decoding leaves no gap at either end.
func (tp *TiePointIndex) Validate(n int) error {
	if len(tp.indices) < 2 {
		return fmt.Errorf("%w: need at least two tie points, have %d",
			api.ErrGeometry, len(tp.indices))
	}
	if tp.First() != 0 || tp.Last() != n-1 {
		return fmt.Errorf("%w: tie points span [%d, %d] of dimension size %d",
			api.ErrGeometry, tp.First(), tp.Last(), n)
	}
	return nil
}
