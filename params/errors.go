package params

import "errors"

// ErrInvalidConfiguration reports a structurally invalid value, such as an
// unknown shape or material name. Out-of-range numbers are clamped instead.
var ErrInvalidConfiguration = errors.New("invalid configuration")
