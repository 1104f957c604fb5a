package memspy

import (
	"context"
	"sync"
)

// engineHolder lazily constructs and owns one Engine instance, serializing
// Open calls because the underlying debugger engine is not guaranteed to be
// re-entrant across opens.
//
// Locking: the mutex is held only across Open itself (an engine I/O call,
// unlike the registry's lock). The holder has no teardown - it is released
// at process exit and must not outlive any Target it created, which in
// practice means: never construct a second engineHolder per process.
type engineHolder struct {
	mu     sync.Mutex
	once   sync.Once
	engine Engine
	newFn  func() Engine
}

// newEngineHolder creates a holder that lazily constructs its Engine via
// newFn on first Open call.
func newEngineHolder(newFn func() Engine) *engineHolder {
	return &engineHolder{newFn: newFn}
}

// Open serializes access to the engine's own Open method.
func (h *engineHolder) Open(ctx context.Context, pid uint32) (Target, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.once.Do(func() {
		h.engine = h.newFn()
	})

	return h.engine.Open(ctx, pid)
}
