package graphics

import "errors"

var (
	// ErrCapabilityUnavailable means no drawing context could be acquired.
	ErrCapabilityUnavailable = errors.New("drawing capability unavailable")
	// ErrTargetNotFound means the named drawable does not exist.
	ErrTargetNotFound = errors.New("render target not found")
	// ErrShaderCompilationFailed means the present program failed to
	// compile or link.
	ErrShaderCompilationFailed = errors.New("shader compilation failed")
)
