package source

import (
	"fmt"
	"reflect"

	netapi "github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
)

// Var adapts one variable of an open go-native-netcdf group.  The
// backend hands back nested slices; they are read and flattened when
// the Var is opened, which keeps Shape and Read cheap afterwards.
type Var struct {
	name  string
	dims  []string
	arr   *ndarray.Array
	attrs api.AttributeMap
}

// OpenVar reads the named variable from a group.
func OpenVar(g netapi.Group, name string) (*Var, error) {
	vg, err := g.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("%w: variable %q: %v", api.ErrAccess, name, err)
	}
	t, known := typeFromCDL[vg.Type()]
	if !known {
		return nil, fmt.Errorf("%w: variable %q: unsupported type %q", api.ErrAccess, name, vg.Type())
	}
	vals, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("%w: variable %q: %v", api.ErrAccess, name, err)
	}
	flat, shape, err := flatten(t, vals)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}
	arr, err := ndarray.FromSlice(t, flat, shape...)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}
	return &Var{name: name, dims: vg.Dimensions(), arr: arr, attrs: vg.Attributes()}, nil
}

// Name returns the variable's name in the file.
func (v *Var) Name() string {
	return v.name
}

// Dimensions returns the variable's dimension names in the file.
func (v *Var) Dimensions() []string {
	out := make([]string, len(v.dims))
	copy(out, v.dims)
	return out
}

func (v *Var) Shape() []int {
	return v.arr.Shape()
}

func (v *Var) Type() api.Type {
	return v.arr.Type()
}

func (v *Var) Attributes() api.AttributeMap {
	return v.attrs
}

func (v *Var) Read(r api.Region) (any, error) {
	sub, err := v.arr.Extract(r)
	if err != nil {
		return nil, err
	}
	return sub.Data(), nil
}

// flatten turns the backend's nested row-major slices into one flat
// slice plus a shape.  Strings are leaves, so a char variable's
// string-length axis does not appear in the shape.
func flatten(t api.Type, vals any) (any, []int, error) {
	var shape []int
	for v := reflect.ValueOf(vals); v.Kind() == reflect.Slice; {
		shape = append(shape, v.Len())
		if v.Len() == 0 {
			break
		}
		v = v.Index(0)
	}
	n := 1
	for _, s := range shape {
		n *= s
	}
	flat, err := goSlice(t, n)
	if err != nil {
		return nil, nil, err
	}
	fv := reflect.ValueOf(flat)
	i := 0
	var walk func(v reflect.Value, depth int) error
	walk = func(v reflect.Value, depth int) error {
		if depth == len(shape) {
			if !v.Type().AssignableTo(fv.Type().Elem()) {
				return fmt.Errorf("%w: backend delivered %s for %v data", api.ErrAccess, v.Type(), t)
			}
			fv.Index(i).Set(v)
			i++
			return nil
		}
		if v.Kind() != reflect.Slice || v.Len() != shape[depth] {
			return fmt.Errorf("%w: backend delivered a ragged nested slice", api.ErrAccess)
		}
		for j := 0; j < v.Len(); j++ {
			if err := walk(v.Index(j), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(reflect.ValueOf(vals), 0); err != nil {
		return nil, nil, err
	}
	return flat, shape, nil
}
