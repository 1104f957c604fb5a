//go:build !linux && !windows

package memspy

import (
	"context"
	"errors"
	"runtime"
)

// errUnsupportedPlatform is returned by every operation of the stub engine
// used on platforms with no native backend.
var errUnsupportedPlatform = errors.New("memspy: no engine implementation for GOOS=" + runtime.GOOS)

// newPlatformEngine returns a stub Engine on platforms with no native
// backend. Every Open call fails; callers that want to run memspy's
// protocol-level code (registry, filter, pattern, scanner) against a fake
// Target should supply Options.NewEngine instead of relying on this.
func newPlatformEngine() Engine {
	return unsupportedEngine{}
}

type unsupportedEngine struct{}

func (unsupportedEngine) Open(context.Context, uint32) (Target, error) {
	return nil, errUnsupportedPlatform
}
