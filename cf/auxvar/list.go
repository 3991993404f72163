package auxvar

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// List is a CF list variable for compression by gathering: List.At(k)
// is the flattened logical index of physical element k within the
// gathered logical axes.
type List struct {
	values []int
}

// NewList reads a list variable from a source.
func NewList(src api.Source, log *util.Logger) (*List, error) {
	a, err := decodeAll(src, log)
	if err != nil {
		return nil, err
	}
	vals, err := intsOf(a)
	if err != nil {
		return nil, fmt.Errorf("list variable: %w", err)
	}
	return ListOf(vals...)
}

// ListOf builds a list variable from in-memory values.
func ListOf(values ...int) (*List, error) {
	l := &List{values: make([]int, len(values))}
	copy(l.values, values)
	for k, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("%w: list[%d] = %d", ErrNegative, k, v)
		}
	}
	return l, nil
}

// Len returns the number of physical elements described.
func (l *List) Len() int {
	return len(l.values)
}

// At returns the flattened logical index of physical element k.
func (l *List) At(k int) int {
	return l.values[k]
}

// Validate checks every value against the flattened size of the
// gathered logical axes.
func (l *List) Validate(gatheredSize int) error {
	for k, v := range l.values {
		if v >= gatheredSize {
			return fmt.Errorf("%w: list[%d] = %d exceeds gathered size %d",
				api.ErrGeometry, k, v, gatheredSize)
		}
	}
	return nil
}
