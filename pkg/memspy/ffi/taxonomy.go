package ffi

import (
	"errors"

	"github.com/memspy-dev/memspy/pkg/memspy"
)

// TaxonomyKey classifies err against the taxonomy in spec §7, returning
// the identifier used both for locale lookup and as the locale-miss
// fallback text itself. Unrecognized errors fall back to "internal-error".
func TaxonomyKey(err error) string {
	switch {
	case errors.Is(err, memspy.ErrProcessAlreadyAttached):
		return "process-already-attached"
	case errors.Is(err, memspy.ErrProcessNotAttached):
		return "process-not-attached"
	case errors.Is(err, memspy.ErrInvalidTargetHandle):
		return "invalid-target-handle"
	case errors.Is(err, memspy.ErrFailedToReadMemory):
		return "failed-to-read-process-memory"
	case errors.Is(err, memspy.ErrFailedToWriteMemory):
		return "failed-to-write-process-memory"
	case errors.Is(err, memspy.ErrMalformedPattern):
		return "malformed-pattern"
	default:
		return "internal-error"
	}
}
