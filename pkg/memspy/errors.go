package memspy

import "errors"

// Sentinel errors returned by memspy operations.
//
// Callers should use [errors.Is] to check error types. The identifiers in
// parentheses below match the taxonomy keys used by [pkg/memspy/ffi] for
// localized error messages at the C boundary.
var (
	// ErrProcessAlreadyAttached ("process-already-attached") is returned by
	// [Library.Attach] when the given pid already has a live Target.
	ErrProcessAlreadyAttached = errors.New("memspy: process already attached")

	// ErrProcessNotAttached ("process-not-attached") is returned by
	// [Library.Detach] when no Target exists for the given pid.
	ErrProcessNotAttached = errors.New("memspy: process not attached")

	// ErrInvalidTargetHandle ("invalid-target-handle") is returned whenever
	// an operation references a handle the registry doesn't recognize -
	// never issued, or already detached.
	ErrInvalidTargetHandle = errors.New("memspy: invalid target handle")

	// ErrFailedToReadMemory ("failed-to-read-process-memory") is returned by
	// [Library.ReadBytes] when the engine's read returns nothing at all, as
	// opposed to a short (partial) read.
	ErrFailedToReadMemory = errors.New("memspy: failed to read process memory")

	// ErrFailedToWriteMemory ("failed-to-write-process-memory") is returned
	// by [Library.WriteMemory] when the engine confirms zero bytes written.
	ErrFailedToWriteMemory = errors.New("memspy: failed to write process memory")

	// ErrMalformedPattern is returned by [CompilePattern] when a pattern
	// token is neither "??" nor a two-hex-digit byte.
	ErrMalformedPattern = errors.New("memspy: malformed pattern")
)
