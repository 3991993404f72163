package ndarray

// Strides returns the row-major strides of a shape.
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = stride
		stride *= shape[d]
	}
	return strides
}

// Ravel converts a multi-index to a flat row-major offset.
func Ravel(idx, strides []int) int {
	flat := 0
	for d, i := range idx {
		flat += i * strides[d]
	}
	return flat
}

// Unravel converts a flat row-major offset to a multi-index.
func Unravel(flat int, shape []int) []int {
	idx := make([]int, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		idx[d] = flat % shape[d]
		flat /= shape[d]
	}
	return idx
}

// odometer iterates over every multi-index of a shape in row-major
// order:
//
//	for o := newOdometer(shape); o.live(); o.advance() {
//		use(o.idx)
//	}
//
// idx is reused between iterations.
type odometer struct {
	shape []int
	idx   []int
	done  bool
}

func newOdometer(shape []int) *odometer {
	o := &odometer{
		shape: shape,
		idx:   make([]int, len(shape)),
	}
	for _, n := range shape {
		if n == 0 {
			o.done = true
			break
		}
	}
	return o
}

func (o *odometer) live() bool {
	return !o.done
}

func (o *odometer) advance() {
	for d := len(o.idx) - 1; d >= 0; d-- {
		o.idx[d]++
		if o.idx[d] < o.shape[d] {
			return
		}
		o.idx[d] = 0
	}
	o.done = true
}
