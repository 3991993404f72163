package auxvar

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// Index is a CF index variable: Index.At(j) is the feature that
// physical element j belongs to.  Values need not be sorted; order of
// occurrence defines the element order within a feature.
type Index struct {
	values []int
	max    int
}

// NewIndex reads an index variable from a source.
func NewIndex(src api.Source, log *util.Logger) (*Index, error) {
	a, err := decodeAll(src, log)
	if err != nil {
		return nil, err
	}
	vals, err := intsOf(a)
	if err != nil {
		return nil, fmt.Errorf("index variable: %w", err)
	}
	return IndexOf(vals...)
}

// IndexOf builds an index variable from in-memory values.
func IndexOf(values ...int) (*Index, error) {
	ix := &Index{values: make([]int, len(values)), max: -1}
	copy(ix.values, values)
	for j, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("%w: index[%d] = %d", ErrNegative, j, v)
		}
		if v > ix.max {
			ix.max = v
		}
	}
	return ix, nil
}

// Len returns the number of physical elements described.
func (ix *Index) Len() int {
	return len(ix.values)
}

// At returns the feature that element j belongs to.
func (ix *Index) At(j int) int {
	return ix.values[j]
}

// Max returns the largest feature number present, or -1 when empty.
func (ix *Index) Max() int {
	return ix.max
}

// Rows groups the element positions by feature, preserving order of
// occurrence: Rows(n)[i] lists the physical positions of feature i.
// A value out of [0, n) is a geometry error.
func (ix *Index) Rows(n int) ([][]int, error) {
	if ix.max >= n {
		return nil, fmt.Errorf("%w: index references feature %d of %d",
			api.ErrGeometry, ix.max, n)
	}
	rows := make([][]int, n)
	for j, v := range ix.values {
		rows[v] = append(rows[v], j)
	}
	return rows, nil
}
