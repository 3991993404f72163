package codec

import (
	"math"

	"github.com/batchatco/go-cf-arrays/cf/api"
)

// attrNumbers converts an attribute value, scalar or vector, to
// float64s.  The second return is false for non-numeric attributes.
func attrNumbers(v any) ([]float64, bool) {
	switch x := v.(type) {
	case int8:
		return []float64{float64(x)}, true
	case uint8:
		return []float64{float64(x)}, true
	case int16:
		return []float64{float64(x)}, true
	case uint16:
		return []float64{float64(x)}, true
	case int32:
		return []float64{float64(x)}, true
	case uint32:
		return []float64{float64(x)}, true
	case int64:
		return []float64{float64(x)}, true
	case uint64:
		return []float64{float64(x)}, true
	case int:
		return []float64{float64(x)}, true
	case float32:
		return []float64{float64(x)}, true
	case float64:
		return []float64{x}, true
	case []int8:
		return numbersOf(x), true
	case []uint8:
		return numbersOf(x), true
	case []int16:
		return numbersOf(x), true
	case []uint16:
		return numbersOf(x), true
	case []int32:
		return numbersOf(x), true
	case []uint32:
		return numbersOf(x), true
	case []int64:
		return numbersOf(x), true
	case []uint64:
		return numbersOf(x), true
	case []int:
		return numbersOf(x), true
	case []float32:
		return numbersOf(x), true
	case []float64:
		out := make([]float64, len(x))
		copy(out, x)
		return out, true
	}
	return nil, false
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func numbersOf[T number](s []T) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

var intRanges = map[api.Type][2]float64{
	api.TypeInt8:   {math.MinInt8, math.MaxInt8},
	api.TypeUint8:  {0, math.MaxUint8},
	api.TypeChar:   {0, math.MaxUint8},
	api.TypeInt16:  {math.MinInt16, math.MaxInt16},
	api.TypeUint16: {0, math.MaxUint16},
	api.TypeInt32:  {math.MinInt32, math.MaxInt32},
	api.TypeUint32: {0, math.MaxUint32},
	api.TypeInt64:  {math.MinInt64, math.MaxInt64},
	api.TypeUint64: {0, math.MaxUint64},
}

// safeCast reports whether every value round-trips into type t without
// change.  This is the "safely castable" test: attributes that fail it
// are ignored.
func safeCast(vals []float64, t api.Type) bool {
	switch {
	case t.IsInteger() || t == api.TypeChar:
		r := intRanges[t]
		for _, v := range vals {
			if math.IsNaN(v) || v != math.Trunc(v) || v < r[0] || v > r[1] {
				return false
			}
		}
		return true
	case t == api.TypeFloat32:
		for _, v := range vals {
			if !math.IsNaN(v) && float64(float32(v)) != v {
				return false
			}
		}
		return true
	case t == api.TypeFloat64:
		return true
	}
	return false
}

// typedValue casts v, already checked with safeCast against the stored
// type, to the exact Go element type of the data slice.  When the data
// have been reinterpreted as unsigned, the value goes through the same
// bit-pattern view.
func typedValue(stored api.Type, unsigned bool, v float64) any {
	switch stored {
	case api.TypeInt8:
		if unsigned {
			return uint8(int8(v))
		}
		return int8(v)
	case api.TypeUint8, api.TypeChar:
		return uint8(v)
	case api.TypeInt16:
		if unsigned {
			return uint16(int16(v))
		}
		return int16(v)
	case api.TypeUint16:
		return uint16(v)
	case api.TypeInt32:
		if unsigned {
			return uint32(int32(v))
		}
		return int32(v)
	case api.TypeUint32:
		return uint32(v)
	case api.TypeInt64:
		if unsigned {
			return uint64(int64(v))
		}
		return int64(v)
	case api.TypeUint64:
		return uint64(v)
	case api.TypeFloat32:
		return float32(v)
	case api.TypeFloat64:
		return v
	}
	return nil
}

// orderedValue is the comparison value for valid_min/valid_max tests,
// in the float64 domain of Float64At.
func orderedValue(stored api.Type, unsigned bool, v float64) float64 {
	tv := typedValue(stored, unsigned, v)
	fs, _ := attrNumbers(tv)
	return fs[0]
}
