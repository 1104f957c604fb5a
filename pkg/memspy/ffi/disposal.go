package ffi

import (
	"fmt"
	"sync"
	"unsafe"
)

// Disposer tracks every allocation handed across the boundary so
// free_call_result and free_byte_buffer (spec §4.7, §9) have a matching
// disposal entry point and can detect a double-free or an unknown
// pointer, both of which are programming errors on the foreign side
// rather than recoverable library errors (spec §7: "invariant violations
// in boundary marshalling ... may terminate the process").
type Disposer struct {
	mu    sync.Mutex
	live  map[unsafe.Pointer]struct{}
}

// NewDisposer constructs an empty Disposer.
func NewDisposer() *Disposer {
	return &Disposer{live: make(map[unsafe.Pointer]struct{})}
}

// Track registers ptr as a live allocation owned by the library until
// Release is called with the same pointer.
func (d *Disposer) Track(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.live[ptr] = struct{}{}
}

// Release marks ptr as freed. It panics on a double-free or a pointer
// this Disposer never tracked, per the spec's "terminate the process"
// directive for boundary invariant violations.
func (d *Disposer) Release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.live[ptr]; !ok {
		panic(fmt.Sprintf("ffi: double-free or disposal of unknown pointer %p", ptr))
	}

	delete(d.live, ptr)
}

// Len reports the number of allocations currently tracked as live.
func (d *Disposer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.live)
}
