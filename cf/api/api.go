// Package api is common to the compressed-array decoders and the physical
// data sources that feed them.
package api

// AttributeMap is a read-only, ordered view of a variable's netCDF-style
// attributes.  The AttributeMap interface of go-native-netcdf satisfies it.
type AttributeMap interface {
	// Ordered list of keys
	Keys() []string
	// Indexed lookup
	Get(key string) (val any, has bool)
}

// Source is a randomly-addressable physical array.  Backends (netCDF
// files, in-memory arrays, compressed in-memory arrays) are
// interchangeable behind this interface.
//
// Read returns the raw values of the given rectangular region as a flat
// typed slice in row-major order, without any masking or unpacking
// applied.  A Source may be shared read-only across goroutines.
type Source interface {
	Shape() []int
	Type() Type
	Read(r Region) (any, error)
	Attributes() AttributeMap
}

// SourceReadSlice reads every value of src as one flat slice.
func SourceReadSlice(src Source) (any, error) {
	return src.Read(WholeRegion(src.Shape()))
}
