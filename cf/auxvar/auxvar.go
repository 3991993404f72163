// Package auxvar implements the auxiliary variables that describe a
// compression geometry: count, index, list, tie point index,
// interpolation parameter, and node coordinate variables.
//
// Each is a small, validated, read-only view over an array that is
// decoded eagerly, through the value codec, when the variable is
// constructed.  Once built they are immutable and safe to share across
// concurrent decode requests.
package auxvar

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/codec"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

var (
	// ErrNotIntegral is returned when a count, index, list or tie
	// point variable holds masked or non-integral values.
	ErrNotIntegral = fmt.Errorf("%w: auxiliary variable holds masked or non-integral values", api.ErrGeometry)

	// ErrNegative is returned for auxiliary values that must be
	// non-negative but are not.
	ErrNegative = fmt.Errorf("%w: auxiliary variable holds negative values", api.ErrGeometry)

	// ErrTiePointOrder is returned when tie point indices are not
	// strictly increasing along their interpolation dimension.
	ErrTiePointOrder = fmt.Errorf("%w: tie point indices are not strictly increasing", api.ErrGeometry)

	// ErrNotNumeric is returned when an interpolation parameter or
	// node coordinate variable is not numeric.
	ErrNotNumeric = fmt.Errorf("%w: auxiliary variable is not numeric", api.ErrGeometry)
)

// decodeAll reads every value of a source through the value codec.
// Auxiliary variables are always small enough to read eagerly.
func decodeAll(src api.Source, log *util.Logger) (*ndarray.Array, error) {
	raw, err := api.SourceReadSlice(src)
	if err != nil {
		return nil, fmt.Errorf("%w: reading auxiliary variable: %v", api.ErrAccess, err)
	}
	a, err := ndarray.FromSlice(src.Type(), raw, src.Shape()...)
	if err != nil {
		return nil, err
	}
	return codec.Decode(a, src.Attributes(), codec.WithLogger(log))
}

// intsOf flattens a decoded array to non-masked ints.
func intsOf(a *ndarray.Array) ([]int, error) {
	out := make([]int, a.Size())
	for i := range out {
		v, ok := a.IntAt(i)
		if !ok {
			return nil, fmt.Errorf("%w: element %d", ErrNotIntegral, i)
		}
		out[i] = v
	}
	return out, nil
}
