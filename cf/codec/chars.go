package codec

import (
	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
)

// coerceChars converts a fixed-length character array to a string
// array by concatenating the trailing character dimension.  Each run
// of bytes stops at the first NUL, masked or not, and skips masked
// non-NUL bytes; a string is masked only when every byte of its run is
// masked.  A 1-d character array becomes a single string (rank 0 is
// not used; the result keeps one size-1 axis).
func coerceChars(a *ndarray.Array) *ndarray.Array {
	shape := a.Shape()
	if len(shape) == 0 {
		return a
	}
	width := shape[len(shape)-1]
	outShape := shape[:len(shape)-1]
	if len(outShape) == 0 {
		outShape = []int{1}
	}

	out := ndarray.New(api.TypeString, outShape...)
	data := out.Data().([]string)
	bytes := a.Data().([]uint8)

	for i := range data {
		start := i * width
		buf := make([]byte, 0, width)
		allMasked := width > 0
		for j := start; j < start+width; j++ {
			if bytes[j] == 0 {
				// a NUL terminates the run even when the fill
				// mask covers it
				if !a.Masked(j) {
					allMasked = false
				}
				break
			}
			if a.Masked(j) {
				continue
			}
			allMasked = false
			buf = append(buf, bytes[j])
		}
		data[i] = string(buf)
		if allMasked {
			out.SetMasked(i)
		}
	}
	return out
}
