package main

import (
	"fmt"
	"strings"

	netapi "github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/batchatco/go-cf-arrays/cf/auxvar"
	"github.com/batchatco/go-cf-arrays/cf/compressed"
	"github.com/batchatco/go-cf-arrays/cf/source"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

type group = netapi.Group

// detectCompressed recognizes the CF encodings that announce
// themselves through attributes: a count variable carries
// sample_dimension, an index variable carries instance_dimension, and
// a list variable carries compress.  Subsampled and UGRID encodings
// hang off other constructs and are not detected here.
func detectCompressed(g group, name string, log *util.Logger) (*compressed.Array, bool, error) {
	data, err := source.OpenVar(g, name)
	if err != nil {
		return nil, false, err
	}
	dims := data.Dimensions()
	if len(dims) == 0 {
		return nil, false, nil
	}

	countVar, indexVar, listVar, err := findAuxVars(g, name, dims[0])
	if err != nil {
		return nil, false, err
	}

	switch {
	case countVar != nil && indexVar != nil:
		return detectIndexedContiguous(data, countVar, indexVar, log)
	case countVar != nil:
		return detectContiguous(data, countVar, log)
	case indexVar != nil:
		return detectIndexed(data, indexVar, log)
	case listVar != nil:
		return detectGathered(g, data, listVar, log)
	}
	return nil, false, nil
}

// findAuxVars scans the group for the auxiliaries describing the
// variable's leading (sample) dimension.
func findAuxVars(g group, name, sampleDim string) (countVar, indexVar, listVar *source.Var, err error) {
	for _, vn := range g.ListVariables() {
		if vn == name {
			continue
		}
		vg, err := g.GetVarGetter(vn)
		if err != nil {
			return nil, nil, nil, err
		}
		attrs := vg.Attributes()
		if sd, has := attrs.Get("sample_dimension"); has && sd == sampleDim {
			if countVar, err = source.OpenVar(g, vn); err != nil {
				return nil, nil, nil, err
			}
			continue
		}
		if _, has := attrs.Get("compress"); has && len(vg.Dimensions()) == 1 && vg.Dimensions()[0] == sampleDim {
			if listVar, err = source.OpenVar(g, vn); err != nil {
				return nil, nil, nil, err
			}
		}
	}

	// The index variable of a pure indexed encoding is dimensioned by
	// the sample dimension itself; with a count variable present the
	// encoding is indexed contiguous and the index variable shares the
	// count variable's profile dimension.  A file can hold several
	// ragged sets, so the dimension must match, not just the attribute.
	indexDim := sampleDim
	if countVar != nil && len(countVar.Dimensions()) == 1 {
		indexDim = countVar.Dimensions()[0]
	}
	for _, vn := range g.ListVariables() {
		if vn == name {
			continue
		}
		vg, err := g.GetVarGetter(vn)
		if err != nil {
			return nil, nil, nil, err
		}
		if _, has := vg.Attributes().Get("instance_dimension"); has &&
			len(vg.Dimensions()) == 1 && vg.Dimensions()[0] == indexDim {
			if indexVar, err = source.OpenVar(g, vn); err != nil {
				return nil, nil, nil, err
			}
			break
		}
	}
	return countVar, indexVar, listVar, nil
}

func detectContiguous(data, countVar *source.Var, log *util.Logger) (*compressed.Array, bool, error) {
	count, err := auxvar.NewCount(countVar, log)
	if err != nil {
		return nil, false, err
	}
	shape := []int{count.Len(), count.Max()}
	shape = append(shape, data.Shape()[1:]...)
	a, err := compressed.NewRaggedContiguous(data, shape, count, compressed.WithLogger(log))
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func detectIndexed(data, indexVar *source.Var, log *util.Logger) (*compressed.Array, bool, error) {
	index, err := auxvar.NewIndex(indexVar, log)
	if err != nil {
		return nil, false, err
	}
	instances := index.Max() + 1
	rows, err := index.Rows(instances)
	if err != nil {
		return nil, false, err
	}
	widest := 0
	for _, r := range rows {
		if len(r) > widest {
			widest = len(r)
		}
	}
	shape := []int{instances, widest}
	shape = append(shape, data.Shape()[1:]...)
	a, err := compressed.NewRaggedIndexed(data, shape, index, compressed.WithLogger(log))
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func detectIndexedContiguous(data, countVar, indexVar *source.Var, log *util.Logger) (*compressed.Array, bool, error) {
	count, err := auxvar.NewCount(countVar, log)
	if err != nil {
		return nil, false, err
	}
	index, err := auxvar.NewIndex(indexVar, log)
	if err != nil {
		return nil, false, err
	}
	instances := index.Max() + 1
	rows, err := index.Rows(instances)
	if err != nil {
		return nil, false, err
	}
	widest := 0
	for _, r := range rows {
		if len(r) > widest {
			widest = len(r)
		}
	}
	a, err := compressed.NewRaggedIndexedContiguous(data,
		[]int{instances, widest, count.Max()}, count, index, compressed.WithLogger(log))
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

// detectGathered expands the list variable's compress attribute, whose
// value names the gathered dimensions in order.
func detectGathered(g group, data, listVar *source.Var, log *util.Logger) (*compressed.Array, bool, error) {
	compress, _ := listVar.Attributes().Get("compress")
	names, ok := compress.(string)
	if !ok {
		return nil, false, fmt.Errorf("compress attribute of %q is not a string", listVar.Name())
	}
	var gatheredSizes []int
	for _, dim := range strings.Fields(names) {
		n, has := g.GetDimension(dim)
		if !has {
			return nil, false, fmt.Errorf("compress names unknown dimension %q", dim)
		}
		gatheredSizes = append(gatheredSizes, int(n))
	}
	list, err := auxvar.NewList(listVar, log)
	if err != nil {
		return nil, false, err
	}

	// The gathered axes replace the sample axis in place.
	sampleAxis := 0
	shape := append([]int{}, gatheredSizes...)
	shape = append(shape, data.Shape()[1:]...)
	gathered := make([]int, len(gatheredSizes))
	for i := range gathered {
		gathered[i] = sampleAxis + i
	}
	a, err := compressed.NewGathered(data, shape, sampleAxis, gathered, list, compressed.WithLogger(log))
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}
