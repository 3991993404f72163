package auxvar

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// Count is a CF count variable: Count.At(i) is the number of physical
// elements belonging to feature i of the dimension it describes.
type Count struct {
	counts  []int
	offsets []int // offsets[i] = sum of counts[0..i)
	total   int
	max     int
}

// NewCount reads a count variable from a source.
func NewCount(src api.Source, log *util.Logger) (*Count, error) {
	a, err := decodeAll(src, log)
	if err != nil {
		return nil, err
	}
	vals, err := intsOf(a)
	if err != nil {
		return nil, fmt.Errorf("count variable: %w", err)
	}
	return CountOf(vals...)
}

// CountOf builds a count variable from in-memory values.
func CountOf(counts ...int) (*Count, error) {
	c := &Count{
		counts:  make([]int, len(counts)),
		offsets: make([]int, len(counts)),
	}
	copy(c.counts, counts)
	for i, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("%w: count[%d] = %d", ErrNegative, i, n)
		}
		c.offsets[i] = c.total
		c.total += n
		if n > c.max {
			c.max = n
		}
	}
	return c, nil
}

// Len returns the number of features.
func (c *Count) Len() int {
	return len(c.counts)
}

// At returns the element count of feature i.
func (c *Count) At(i int) int {
	return c.counts[i]
}

// Offset returns the position of feature i's first element on the
// sample dimension.
func (c *Count) Offset(i int) int {
	return c.offsets[i]
}

// Total returns the sum of all counts.
func (c *Count) Total() int {
	return c.total
}

// Max returns the largest count, which is the size of the uncompressed
// element dimension.
func (c *Count) Max() int {
	return c.max
}
