package ndarray

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/batchatco/go-cf-arrays/cf/api"
)

// newData allocates a flat slice of n elements of the given type.
func newData(t api.Type, n int) any {
	switch t {
	case api.TypeInt8:
		return make([]int8, n)
	case api.TypeUint8, api.TypeChar:
		return make([]uint8, n)
	case api.TypeInt16:
		return make([]int16, n)
	case api.TypeUint16:
		return make([]uint16, n)
	case api.TypeInt32:
		return make([]int32, n)
	case api.TypeUint32:
		return make([]uint32, n)
	case api.TypeInt64:
		return make([]int64, n)
	case api.TypeUint64:
		return make([]uint64, n)
	case api.TypeFloat32:
		return make([]float32, n)
	case api.TypeFloat64:
		return make([]float64, n)
	case api.TypeString:
		return make([]string, n)
	}
	panic(fmt.Sprintf("ndarray: no storage for type %v", t))
}

// dataLen returns the length of a flat slice, or -1 for an unsupported
// type.
func dataLen(data any) int {
	switch d := data.(type) {
	case []int8:
		return len(d)
	case []uint8:
		return len(d)
	case []int16:
		return len(d)
	case []uint16:
		return len(d)
	case []int32:
		return len(d)
	case []uint32:
		return len(d)
	case []int64:
		return len(d)
	case []uint64:
		return len(d)
	case []float32:
		return len(d)
	case []float64:
		return len(d)
	case []string:
		return len(d)
	}
	return -1
}

// dataType returns the element type of a flat slice.  []uint8 reports
// TypeUint8; callers that mean TypeChar must say so explicitly.
func dataType(data any) api.Type {
	switch data.(type) {
	case []int8:
		return api.TypeInt8
	case []uint8:
		return api.TypeUint8
	case []int16:
		return api.TypeInt16
	case []uint16:
		return api.TypeUint16
	case []int32:
		return api.TypeInt32
	case []uint32:
		return api.TypeUint32
	case []int64:
		return api.TypeInt64
	case []uint64:
		return api.TypeUint64
	case []float32:
		return api.TypeFloat32
	case []float64:
		return api.TypeFloat64
	case []string:
		return api.TypeString
	}
	return api.TypeNone
}

func elemAt(data any, i int) any {
	switch d := data.(type) {
	case []int8:
		return d[i]
	case []uint8:
		return d[i]
	case []int16:
		return d[i]
	case []uint16:
		return d[i]
	case []int32:
		return d[i]
	case []uint32:
		return d[i]
	case []int64:
		return d[i]
	case []uint64:
		return d[i]
	case []float32:
		return d[i]
	case []float64:
		return d[i]
	case []string:
		return d[i]
	}
	panic("ndarray: unsupported data slice")
}

func setElemAt(data any, i int, v any) error {
	ok := true
	switch d := data.(type) {
	case []int8:
		x, o := v.(int8)
		ok = o
		if o {
			d[i] = x
		}
	case []uint8:
		x, o := v.(uint8)
		ok = o
		if o {
			d[i] = x
		}
	case []int16:
		x, o := v.(int16)
		ok = o
		if o {
			d[i] = x
		}
	case []uint16:
		x, o := v.(uint16)
		ok = o
		if o {
			d[i] = x
		}
	case []int32:
		x, o := v.(int32)
		ok = o
		if o {
			d[i] = x
		}
	case []uint32:
		x, o := v.(uint32)
		ok = o
		if o {
			d[i] = x
		}
	case []int64:
		x, o := v.(int64)
		ok = o
		if o {
			d[i] = x
		}
	case []uint64:
		x, o := v.(uint64)
		ok = o
		if o {
			d[i] = x
		}
	case []float32:
		x, o := v.(float32)
		ok = o
		if o {
			d[i] = x
		}
	case []float64:
		x, o := v.(float64)
		ok = o
		if o {
			d[i] = x
		}
	case []string:
		x, o := v.(string)
		ok = o
		if o {
			d[i] = x
		}
	default:
		ok = false
	}
	if !ok {
		return fmt.Errorf("%w: %T into %T", ErrType, v, data)
	}
	return nil
}

// copyData copies n elements between flat slices of the same Go type.
func copyData(dst any, di int, src any, si, n int) {
	switch d := dst.(type) {
	case []int8:
		copy(d[di:di+n], src.([]int8)[si:si+n])
	case []uint8:
		copy(d[di:di+n], src.([]uint8)[si:si+n])
	case []int16:
		copy(d[di:di+n], src.([]int16)[si:si+n])
	case []uint16:
		copy(d[di:di+n], src.([]uint16)[si:si+n])
	case []int32:
		copy(d[di:di+n], src.([]int32)[si:si+n])
	case []uint32:
		copy(d[di:di+n], src.([]uint32)[si:si+n])
	case []int64:
		copy(d[di:di+n], src.([]int64)[si:si+n])
	case []uint64:
		copy(d[di:di+n], src.([]uint64)[si:si+n])
	case []float32:
		copy(d[di:di+n], src.([]float32)[si:si+n])
	case []float64:
		copy(d[di:di+n], src.([]float64)[si:si+n])
	case []string:
		copy(d[di:di+n], src.([]string)[si:si+n])
	default:
		panic("ndarray: unsupported data slice")
	}
}

func toFloat64[T constraints.Integer | constraints.Float](v T) float64 {
	return float64(v)
}

// Float64At returns the element at flat offset i as a float64.  The
// second return is false for masked elements and non-numeric types.
func (a *Array) Float64At(i int) (float64, bool) {
	if a.Masked(i) {
		return 0, false
	}
	switch d := a.data.(type) {
	case []int8:
		return toFloat64(d[i]), true
	case []uint8:
		return toFloat64(d[i]), true
	case []int16:
		return toFloat64(d[i]), true
	case []uint16:
		return toFloat64(d[i]), true
	case []int32:
		return toFloat64(d[i]), true
	case []uint32:
		return toFloat64(d[i]), true
	case []int64:
		return toFloat64(d[i]), true
	case []uint64:
		return toFloat64(d[i]), true
	case []float32:
		return toFloat64(d[i]), true
	case []float64:
		return d[i], true
	}
	return 0, false
}

// IntAt returns the element at flat offset i as an int.  The second
// return is false for masked elements, non-integral values, and values
// that do not fit an int.
func (a *Array) IntAt(i int) (int, bool) {
	v, ok := a.Float64At(i)
	if !ok {
		return 0, false
	}
	n := int(v)
	if float64(n) != v || math.IsNaN(v) {
		return 0, false
	}
	return n, true
}

// AsFloat64 returns a float64 copy of a numeric array, keeping the
// mask.  A float64 array is copied as-is.
func (a *Array) AsFloat64() (*Array, error) {
	if !a.typ.IsNumeric() {
		return nil, fmt.Errorf("%w: cannot convert %v to double", ErrType, a.typ)
	}
	out := New(api.TypeFloat64, a.shape...)
	data := out.data.([]float64)
	for i := range data {
		v, _ := a.Float64At(i)
		data[i] = v
	}
	if a.mask != nil {
		out.mask = make([]bool, len(a.mask))
		copy(out.mask, a.mask)
	}
	return out, nil
}
