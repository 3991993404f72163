package codec

import (
	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// unpack applies scale_factor and add_offset.  The result is floating
// point whenever either attribute is present, even in the degenerate
// scale 1 / offset 0 cases, so precision is not lost by a later
// arithmetic step.  A non-numeric coefficient disables unpacking with
// a warning.
func unpack(a *ndarray.Array, attrs api.AttributeMap, log *util.Logger) *ndarray.Array {
	if attrs == nil || !a.Type().IsNumeric() {
		return a
	}

	scale, hasScale, okScale := unpackCoefficient(attrs, "scale_factor")
	offset, hasOffset, okOffset := unpackCoefficient(attrs, "add_offset")
	if !okScale || !okOffset {
		log.Warnf("no unpacking done: scale_factor/add_offset cannot be converted to a number")
		return a
	}
	if !hasScale && !hasOffset {
		return a
	}

	target := unpackType(attrs, hasScale, hasOffset)
	out := ndarray.New(target, a.Shape()...)

	degenerate := scale == 1.0 && offset == 0.0
	n := a.Size()
	if target == api.TypeFloat32 {
		data := out.Data().([]float32)
		for i := 0; i < n; i++ {
			v, _ := a.Float64At(i)
			if !degenerate {
				v = v*scale + offset
			}
			data[i] = float32(v)
		}
	} else {
		data := out.Data().([]float64)
		for i := 0; i < n; i++ {
			v, _ := a.Float64At(i)
			if !degenerate {
				v = v*scale + offset
			}
			data[i] = v
		}
	}

	if m := a.Mask(); m != nil {
		mm := make([]bool, len(m))
		copy(mm, m)
		_ = out.SetMask(mm)
	}
	return out
}

// unpackCoefficient returns the coefficient value, whether the
// attribute is present, and whether it is usable.  Scale defaults to 1
// and offset to 0 when absent; a vector coefficient uses its first
// value.
func unpackCoefficient(attrs api.AttributeMap, name string) (val float64, present, ok bool) {
	v, has := attrs.Get(name)
	if !has {
		if name == "scale_factor" {
			return 1.0, false, true
		}
		return 0.0, false, true
	}
	nums, numeric := attrNumbers(v)
	if !numeric || len(nums) == 0 {
		return 0, true, false
	}
	return nums[0], true, true
}

// unpackType picks the floating-point type of the unpacked data: the
// coefficients' type when every present coefficient is float, double
// otherwise.
func unpackType(attrs api.AttributeMap, hasScale, hasOffset bool) api.Type {
	allFloat32 := true
	check := func(name string, has bool) {
		if !has {
			return
		}
		v, _ := attrs.Get(name)
		switch v.(type) {
		case float32, []float32:
		default:
			allFloat32 = false
		}
	}
	check("scale_factor", hasScale)
	check("add_offset", hasOffset)
	if allFloat32 {
		return api.TypeFloat32
	}
	return api.TypeFloat64
}
