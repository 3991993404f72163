package compressed

import (
	"fmt"

	"github.com/batchatco/go-cf-arrays/cf/api"
)

// Construction and decode failures wrap the shared taxonomy in
// cf/api so callers can sort them with errors.Is.
var (
	// ErrCountMismatch reports element counts that do not add up to
	// the size of the sample dimension.
	ErrCountMismatch = fmt.Errorf("%w: counts do not sum to the sample dimension size", api.ErrGeometry)

	// ErrShapeMismatch reports an uncompressed shape inconsistent
	// with the auxiliary variables or the physical array.
	ErrShapeMismatch = fmt.Errorf("%w: uncompressed shape inconsistent with compression metadata", api.ErrGeometry)

	// ErrInterpolation reports an unknown interpolation method or a
	// method used with the wrong number of tie point axes.
	ErrInterpolation = fmt.Errorf("%w: invalid interpolation", api.ErrConfig)

	// ErrParameter reports a missing or malformed interpolation
	// parameter term.
	ErrParameter = fmt.Errorf("%w: invalid interpolation parameter", api.ErrConfig)

	// ErrStartIndex reports a nodes-bounds start index other than 0 or 1.
	ErrStartIndex = fmt.Errorf("%w: start index must be 0 or 1", api.ErrConfig)

	// ErrConnectivity reports a node connectivity entry outside the
	// node coordinate array.
	ErrConnectivity = fmt.Errorf("%w: connectivity index out of range", api.ErrGeometry)
)
