package ndarray

import (
	"fmt"
	"strings"
)

// String formats the array with nested brackets, printing "--" for
// masked elements.  Intended for diagnostics and small dumps, not for
// round-tripping.
func (a *Array) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v%v ", a.typ, a.shape)
	a.format(&b, nil, 0)
	return b.String()
}

func (a *Array) format(b *strings.Builder, prefix []int, flat int) {
	if len(prefix) == len(a.shape) {
		if a.Masked(flat) {
			b.WriteString("--")
		} else {
			fmt.Fprintf(b, "%v", elemAt(a.data, flat))
		}
		return
	}
	d := len(prefix)
	stride := Strides(a.shape)[d]
	b.WriteByte('[')
	for i := 0; i < a.shape[d]; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		a.format(b, append(prefix, i), flat+i*stride)
	}
	b.WriteByte(']')
}
