package util

// AttrMap is an ordered attribute map for in-memory sources.  It keeps
// insertion order for Keys, the way netCDF files keep attribute order.
type AttrMap struct {
	keys   []string
	values map[string]any
}

func NewAttrMap() *AttrMap {
	return &AttrMap{values: map[string]any{}}
}

// AttrsOf builds an AttrMap from alternating key, value pairs.
func AttrsOf(pairs ...any) *AttrMap {
	if len(pairs)%2 != 0 {
		panic("AttrsOf: odd number of arguments")
	}
	am := NewAttrMap()
	for i := 0; i < len(pairs); i += 2 {
		am.Add(pairs[i].(string), pairs[i+1])
	}
	return am
}

func (am *AttrMap) Add(name string, val any) {
	if _, has := am.values[name]; !has {
		am.keys = append(am.keys, name)
	}
	am.values[name] = val
}

func (am *AttrMap) Get(key string) (val any, has bool) {
	val, has = am.values[key]
	return
}

func (am *AttrMap) Keys() []string {
	out := make([]string, len(am.keys))
	copy(out, am.keys)
	return out
}
