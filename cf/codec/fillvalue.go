package codec

import "github.com/batchatco/go-cf-arrays/cf/api"

// DefaultFillValue returns the netCDF default _FillValue assumed when
// the attribute is absent, as an exact typed value, and whether the
// type has one.  The 64-bit integer defaults cannot be expressed as
// float64, so defaults are kept typed throughout.
func DefaultFillValue(t api.Type) (any, bool) {
	switch t {
	case api.TypeInt8:
		return int8(-127), true
	case api.TypeChar:
		return uint8(0), true
	case api.TypeUint8:
		return uint8(255), true
	case api.TypeInt16:
		return int16(-32767), true
	case api.TypeUint16:
		return uint16(65535), true
	case api.TypeInt32:
		return int32(-2147483647), true
	case api.TypeUint32:
		return uint32(4294967295), true
	case api.TypeInt64:
		return int64(-9223372036854775806), true
	case api.TypeUint64:
		return uint64(18446744073709551614), true
	case api.TypeFloat32:
		return float32(9.9692099683868690e+36), true
	case api.TypeFloat64:
		return 9.9692099683868690e+36, true
	case api.TypeString:
		return "", true
	}
	return nil, false
}

// viewUnsigned reinterprets a typed signed integer value as its
// unsigned counterpart, matching the _Unsigned view of the data.
func viewUnsigned(v any) any {
	switch x := v.(type) {
	case int8:
		return uint8(x)
	case int16:
		return uint16(x)
	case int32:
		return uint32(x)
	case int64:
		return uint64(x)
	}
	return v
}
