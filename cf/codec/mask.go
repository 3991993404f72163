package codec

import (
	"math"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// applyMask builds the boolean mask from every masking attribute that
// is present and safely castable, OR-combines it with any mask the
// block already carries, and returns the masked copy.  Already-masked
// elements are never unmasked.
func applyMask(a *ndarray.Array, stored api.Type, unsigned bool, attrs api.AttributeMap, o options) (*ndarray.Array, error) {
	if err := checkValidRangeConflict(attrs); err != nil {
		return nil, err
	}

	out := a.Copy()
	if a.Type() == api.TypeString {
		maskStrings(out, attrs, o)
		return out, nil
	}

	// Equality criteria, as exact typed values in the data's domain.
	var eq []any
	nan := false

	if vals, present, safe := checkSafe(attrs, "missing_value", stored, o.log); present && safe {
		for _, v := range vals {
			if math.IsNaN(v) {
				nan = true
			} else {
				eq = append(eq, typedValue(stored, unsigned, v))
			}
		}
	}

	if vals, _, safe := checkSafe(attrs, "_FillValue", stored, o.log); safe {
		// _FillValue must be a scalar
		if v := vals[0]; math.IsNaN(v) {
			nan = true
		} else {
			eq = append(eq, typedValue(stored, unsigned, v))
		}
	} else if dv, has := DefaultFillValue(stored); has {
		// Absent or unusable _FillValue falls back to the per-type
		// netCDF default.
		if unsigned {
			dv = viewUnsigned(dv)
		}
		eq = append(eq, dv)
	}

	// valid_range, or valid_min/valid_max, in the ordered float64
	// domain.  Not applied to character data.
	var validMin, validMax *float64
	if stored != api.TypeChar {
		if vals, _, safe := checkSafe(attrs, "valid_range", stored, o.log); safe && len(vals) == 2 {
			lo := orderedValue(stored, unsigned, vals[0])
			hi := orderedValue(stored, unsigned, vals[1])
			validMin, validMax = &lo, &hi
		} else {
			if vals, _, safe := checkSafe(attrs, "valid_min", stored, o.log); safe {
				lo := orderedValue(stored, unsigned, vals[0])
				validMin = &lo
			}
			if vals, _, safe := checkSafe(attrs, "valid_max", stored, o.log); safe {
				hi := orderedValue(stored, unsigned, vals[0])
				validMax = &hi
			}
		}
	}

	matched := false
	n := out.Size()
	for i := 0; i < n; i++ {
		if out.Masked(i) {
			continue
		}
		v := out.ValueAt(i)
		m := false
		for _, c := range eq {
			if v == c {
				m = true
				break
			}
		}
		if !m && (nan || validMin != nil || validMax != nil) {
			f, _ := out.Float64At(i)
			if nan && math.IsNaN(f) {
				m = true
			}
			if !m && validMin != nil && f < *validMin {
				m = true
			}
			if !m && validMax != nil && f > *validMax {
				m = true
			}
		}
		if m {
			out.SetMasked(i)
			matched = true
		}
	}

	if !matched && out.Mask() == nil && o.alwaysMask {
		_ = out.SetMask(make([]bool, n))
	}
	return out, nil
}

// checkValidRangeConflict rejects valid_range combined with valid_min
// or valid_max, regardless of castability.
func checkValidRangeConflict(attrs api.AttributeMap) error {
	if attrs == nil {
		return nil
	}
	if _, has := attrs.Get("valid_range"); !has {
		return nil
	}
	if _, has := attrs.Get("valid_min"); has {
		return ErrValidRange
	}
	if _, has := attrs.Get("valid_max"); has {
		return ErrValidRange
	}
	return nil
}

// checkSafe looks up an attribute and checks that it can be safely
// cast to the stored type.  An unusable attribute is logged and
// reported not-safe, never an error.
func checkSafe(attrs api.AttributeMap, name string, stored api.Type, log *util.Logger) (vals []float64, present, safe bool) {
	if attrs == nil {
		return nil, false, false
	}
	v, has := attrs.Get(name)
	if !has {
		return nil, false, false
	}
	nums, ok := attrNumbers(v)
	if !ok || len(nums) == 0 || !safeCast(nums, stored) {
		log.Warnf("mask attribute %q not used since it cannot be safely cast to %v",
			name, stored)
		return nil, true, false
	}
	return nums, true, true
}

func maskStrings(out *ndarray.Array, attrs api.AttributeMap, o options) {
	var eq []string
	for _, name := range []string{"missing_value", "_FillValue"} {
		if attrs == nil {
			break
		}
		v, has := attrs.Get(name)
		if !has {
			continue
		}
		switch s := v.(type) {
		case string:
			eq = append(eq, s)
		case []string:
			eq = append(eq, s...)
		default:
			o.log.Warnf("mask attribute %q not used since it cannot be safely cast to string", name)
		}
	}
	data := out.Data().([]string)
	matched := false
	for i, v := range data {
		if out.Masked(i) {
			continue
		}
		for _, c := range eq {
			if v == c {
				out.SetMasked(i)
				matched = true
				break
			}
		}
	}
	if !matched && out.Mask() == nil && o.alwaysMask {
		_ = out.SetMask(make([]bool, len(data)))
	}
}
