// Package source provides the physical array backends behind
// api.Source: plain in-memory arrays, zstd-compressed in-memory
// arrays, and variables of netCDF files opened with go-native-netcdf.
package source

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
)

// typeFromCDL maps the CDL type names reported by go-native-netcdf
// onto api types.  Character data arrives pre-assembled as strings.
var typeFromCDL = map[string]api.Type{
	"byte":   api.TypeInt8,
	"ubyte":  api.TypeUint8,
	"short":  api.TypeInt16,
	"ushort": api.TypeUint16,
	"int":    api.TypeInt32,
	"uint":   api.TypeUint32,
	"int64":  api.TypeInt64,
	"uint64": api.TypeUint64,
	"float":  api.TypeFloat32,
	"double": api.TypeFloat64,
	"char":   api.TypeString,
	"string": api.TypeString,
}

var typeSizes = map[api.Type]int{
	api.TypeInt8:    1,
	api.TypeUint8:   1,
	api.TypeChar:    1,
	api.TypeInt16:   2,
	api.TypeUint16:  2,
	api.TypeInt32:   4,
	api.TypeUint32:  4,
	api.TypeInt64:   8,
	api.TypeUint64:  8,
	api.TypeFloat32: 4,
	api.TypeFloat64: 8,
}

func goSlice(t api.Type, n int) (any, error) {
	switch t {
	case api.TypeInt8:
		return make([]int8, n), nil
	case api.TypeUint8, api.TypeChar:
		return make([]uint8, n), nil
	case api.TypeInt16:
		return make([]int16, n), nil
	case api.TypeUint16:
		return make([]uint16, n), nil
	case api.TypeInt32:
		return make([]int32, n), nil
	case api.TypeUint32:
		return make([]uint32, n), nil
	case api.TypeInt64:
		return make([]int64, n), nil
	case api.TypeUint64:
		return make([]uint64, n), nil
	case api.TypeFloat32:
		return make([]float32, n), nil
	case api.TypeFloat64:
		return make([]float64, n), nil
	case api.TypeString:
		return make([]string, n), nil
	}
	return nil, fmt.Errorf("%w: no storage for type %v", api.ErrAccess, t)
}

func cloneInts(v []int) []int {
	out := make([]int, len(v))
	copy(out, v)
	return out
}
