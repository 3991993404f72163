package auxvar

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// InterpolationParameter is one named coefficient array of a sampled
// compression, with an explicit mapping of its own axes onto the tie
// point array's axes.  The mapping may omit tie point axes (the
// parameter broadcasts along them) and may permute.
type InterpolationParameter struct {
	values *ndarray.Array // always double
	dims   []int          // dims[k] = tie point axis of parameter axis k
}

// NewInterpolationParameter reads a parameter variable from a source.
func NewInterpolationParameter(src api.Source, dims []int, log *util.Logger) (*InterpolationParameter, error) {
	a, err := decodeAll(src, log)
	if err != nil {
		return nil, err
	}
	return ParameterOf(a, dims)
}

// ParameterOf wraps a decoded array as an interpolation parameter.
func ParameterOf(a *ndarray.Array, dims []int) (*InterpolationParameter, error) {
	if !a.Type().IsNumeric() {
		return nil, fmt.Errorf("interpolation parameter: %w", ErrNotNumeric)
	}
	if len(dims) != a.NDim() {
		return nil, fmt.Errorf("%w: %d axis mappings for %d parameter axes",
			api.ErrConfig, len(dims), a.NDim())
	}
	f, err := a.AsFloat64()
	if err != nil {
		return nil, err
	}
	p := &InterpolationParameter{values: f, dims: make([]int, len(dims))}
	copy(p.dims, dims)
	return p, nil
}

// Dims returns the tie point axes that the parameter's own axes map
// onto.
func (p *InterpolationParameter) Dims() []int {
	out := make([]int, len(p.dims))
	copy(out, p.dims)
	return out
}

// Shape returns the parameter array's shape.
func (p *InterpolationParameter) Shape() []int {
	return p.values.Shape()
}

// ValueAt returns the parameter value for a position given in tie
// point axis space: tpIdx maps a tie point axis to the position along
// it.  Axes the parameter omits are ignored.  Masked values return
// ok=false.
func (p *InterpolationParameter) ValueAt(tpIdx map[int]int) (float64, bool) {
	shape := p.values.Shape()
	idx := make([]int, len(p.dims))
	for k, tpAxis := range p.dims {
		pos, has := tpIdx[tpAxis]
		if !has || shape[k] == 1 {
			idx[k] = 0
			continue
		}
		idx[k] = pos
	}
	flat := ndarray.Ravel(idx, ndarray.Strides(shape))
	return p.values.Float64At(flat)
}
