package source

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/batchatco/go-cf-arrays/cf/api"
	"github.com/batchatco/go-cf-arrays/cf/ndarray"
	"github.com/batchatco/go-cf-arrays/cf/util"
)

// Zstd is a Source holding its values zstd-compressed in memory and
// inflating them on first read.  Values are little-endian in the
// compressed payload; string data cannot be zstd-backed.
type Zstd struct {
	typ   api.Type
	shape []int
	attrs api.AttributeMap
	comp  []byte

	once sync.Once
	arr  *ndarray.Array
	err  error
}

// NewZstd wraps a zstd-compressed payload, as produced by
// CompressZstd, without inflating it.
func NewZstd(t api.Type, comp []byte, shape []int, attrs api.AttributeMap) *Zstd {
	if attrs == nil {
		attrs = util.NewAttrMap()
	}
	return &Zstd{typ: t, shape: cloneInts(shape), attrs: attrs, comp: comp}
}

func (z *Zstd) Shape() []int {
	return cloneInts(z.shape)
}

func (z *Zstd) Type() api.Type {
	return z.typ
}

func (z *Zstd) Attributes() api.AttributeMap {
	return z.attrs
}

func (z *Zstd) Read(r api.Region) (any, error) {
	z.once.Do(z.inflate)
	if z.err != nil {
		return nil, z.err
	}
	sub, err := z.arr.Extract(r)
	if err != nil {
		return nil, err
	}
	return sub.Data(), nil
}

func (z *Zstd) inflate() {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		z.err = fmt.Errorf("%w: %v", api.ErrAccess, err)
		return
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(z.comp, nil)
	if err != nil {
		z.err = fmt.Errorf("%w: inflating values: %v", api.ErrAccess, err)
		return
	}
	vals, err := bytesToSlice(z.typ, raw)
	if err != nil {
		z.err = err
		return
	}
	z.arr, z.err = ndarray.FromSlice(z.typ, vals, z.shape...)
}

func bytesToSlice(t api.Type, raw []byte) (any, error) {
	size, fixed := typeSizes[t]
	if !fixed {
		return nil, fmt.Errorf("%w: type %v cannot be zstd-backed", api.ErrAccess, t)
	}
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("%w: %d payload bytes for %d-byte elements", api.ErrAccess, len(raw), size)
	}
	vals, err := goSlice(t, len(raw)/size)
	if err != nil {
		return nil, err
	}
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, vals); err != nil {
		return nil, fmt.Errorf("%w: decoding values: %v", api.ErrAccess, err)
	}
	return vals, nil
}

// CompressZstd serializes a flat slice of fixed-size values to the
// little-endian zstd payload NewZstd expects.
func CompressZstd(data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("%w: encoding values: %v", api.ErrAccess, err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrAccess, err)
	}
	out := enc.EncodeAll(buf.Bytes(), nil)
	enc.Close()
	return out, nil
}
