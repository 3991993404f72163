// Package codec applies netCDF masking and unpacking to raw blocks of
// physical values.
//
// Decode is a pure function of its inputs: it reads the block and the
// attribute set, and returns a new block.  It holds no state, so it is
// safe to run per-chunk from any number of goroutines.
//
// The attributes considered are:
//
//   - masking: missing_value, _FillValue, valid_min, valid_max,
//     valid_range, _Unsigned.  If _FillValue is not present the netCDF
//     default for the type is assumed.
//   - unpacking: scale_factor, add_offset, _Unsigned.
//
// An attribute that is present but cannot be safely cast to the
// variable's type is logged and ignored, mirroring permissive netCDF
// client behaviour.  Mixing valid_range with valid_min/valid_max is a
// configuration error.
package codec

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// ErrValidRange is returned when valid_range is combined with
// valid_min or valid_max.
var ErrValidRange = fmt.Errorf("%w: valid_range conflicts with valid_min/valid_max", api.ErrConfig)

type options struct {
	mask       bool
	unpack     bool
	alwaysMask bool
	log        *util.Logger
}

// Option adjusts a Decode call.
type Option func(*options)

// NoMask disables masking.
func NoMask() Option {
	return func(o *options) { o.mask = false }
}

// NoUnpack disables unpacking.
func NoUnpack() Option {
	return func(o *options) { o.unpack = false }
}

// AlwaysMask attaches a mask to the result even when no element
// matched a masking criterion.
func AlwaysMask() Option {
	return func(o *options) { o.alwaysMask = true }
}

// WithLogger sets the diagnostic sink for ignored-attribute warnings.
func WithLogger(l *util.Logger) Option {
	return func(o *options) { o.log = l }
}

// Decode applies netCDF masking and unpacking rules to a raw block.
// The input array is not modified.  Order matters and is fixed:
// unsigned reinterpretation, then masking, then unpacking, then
// character coercion.
func Decode(a *ndarray.Array, attrs api.AttributeMap, opts ...Option) (*ndarray.Array, error) {
	o := options{mask: true, unpack: true}
	for _, opt := range opts {
		opt(&o)
	}

	stored := a.Type()
	out := a

	// 1. _Unsigned: reinterpret the bit pattern as the unsigned
	// counterpart of the stored signed type.
	unsigned := false
	if o.unpack && isUnsignedAttr(attrs) && stored.IsInteger() {
		out = reinterpretUnsigned(out)
		unsigned = true
	}

	// 2, 3. Build and apply the mask.  Masking criteria are cast
	// against the stored (signed) type, then viewed through the same
	// unsigned reinterpretation as the data.
	if o.mask {
		masked, err := applyMask(out, stored, unsigned, attrs, o)
		if err != nil {
			return nil, err
		}
		out = masked
	} else if out == a {
		out = a.Copy()
	}

	// 4. Unpack with scale_factor and add_offset.
	if o.unpack {
		out = unpack(out, attrs, o.log)
	}

	// 5. Coerce fixed-length character arrays to text.
	if out.Type() == api.TypeChar {
		out = coerceChars(out)
	}

	return out, nil
}

// ResultType reports the element type Decode produces for raw data of
// type t under the given attributes, without decoding anything.
func ResultType(t api.Type, attrs api.AttributeMap) api.Type {
	if isUnsignedAttr(attrs) && t.IsInteger() {
		t = t.Unsigned()
	}
	if t.IsNumeric() && attrs != nil {
		_, hasScale, okScale := unpackCoefficient(attrs, "scale_factor")
		_, hasOffset, okOffset := unpackCoefficient(attrs, "add_offset")
		if okScale && okOffset && (hasScale || hasOffset) {
			t = unpackType(attrs, hasScale, hasOffset)
		}
	}
	if t == api.TypeChar {
		t = api.TypeString
	}
	return t
}

func isUnsignedAttr(attrs api.AttributeMap) bool {
	if attrs == nil {
		return false
	}
	v, has := attrs.Get("_Unsigned")
	if !has {
		return false
	}
	s, ok := v.(string)
	return ok && (s == "true" || s == "True")
}

// reinterpretUnsigned returns a copy of the block with every element's
// bit pattern read as the unsigned integer of the same width.
func reinterpretUnsigned(a *ndarray.Array) *ndarray.Array {
	ut := a.Type().Unsigned()
	if ut == a.Type() {
		return a.Copy()
	}
	out := ndarray.New(ut, a.Shape()...)
	switch src := a.Data().(type) {
	case []int8:
		dst := out.Data().([]uint8)
		for i, v := range src {
			dst[i] = uint8(v)
		}
	case []int16:
		dst := out.Data().([]uint16)
		for i, v := range src {
			dst[i] = uint16(v)
		}
	case []int32:
		dst := out.Data().([]uint32)
		for i, v := range src {
			dst[i] = uint32(v)
		}
	case []int64:
		dst := out.Data().([]uint64)
		for i, v := range src {
			dst[i] = uint64(v)
		}
	}
	if m := a.Mask(); m != nil {
		mm := make([]bool, len(m))
		copy(mm, m)
		out.SetMask(mm)
	}
	return out
}
