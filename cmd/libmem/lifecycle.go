package main

/*
#include <stdint.h>
*/
import "C"

import (
	"context"

	"github.com/memspy-dev/memspy/pkg/memspy/ffi"
)

// attach attaches to the process identified by pid. Returns a CallResult
// carrying a handle on success, or process-already-attached / an
// engine-level open failure.
//
//export attach
func attach(pid C.uint32_t) *C.CallResult {
	initLibrary()

	handle, err := lib.Attach(context.Background(), uint32(pid))
	if err != nil {
		logger.Warn("attach failed", "pid", uint32(pid), "error", err)
		return errResult(err)
	}

	return cResult(ffi.OkHandle(handle))
}

// detach removes every target for pid, invoking the engine's detach.
//
//export detach
func detach(pid C.uint32_t) *C.CallResult {
	initLibrary()

	_, err := lib.Detach(uint32(pid))
	if err != nil {
		logger.Warn("detach failed", "pid", uint32(pid), "error", err)
		return errResult(err)
	}

	return cResult(ffi.OkBool(true))
}
