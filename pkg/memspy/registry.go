package memspy

import (
	"context"
	"fmt"
	"sync"
)

// registry is the process-wide, concurrently-accessed collection of live
// Target handles.
//
// Handle stability (spec §4.2, §9 "Handle reuse"): this implementation
// takes Option (b) from the design - a monotonically increasing id handed
// out by attach and never reused, resolved through a map rather than a
// reused slice index. A naive `append` + `len()-1` scheme (the source's
// defect) would let a later attach silently reissue a stale handle after a
// detach/re-attach cycle; the counter here never goes backwards.
//
// Locking: mu guards only the map and the counter. It is acquired and
// released around a single mutation or clone - never across engine I/O -
// matching the leaf-lock discipline in internal/fs.Locker.
type registry struct {
	mu      sync.Mutex
	next    Handle
	targets map[Handle]Target
	byPid   map[uint32]Handle
}

func newRegistry() *registry {
	return &registry{
		targets: make(map[Handle]Target),
		byPid:   make(map[uint32]Handle),
	}
}

// attach opens pid through the engine and registers the resulting Target
// under a freshly minted handle. Returns ErrProcessAlreadyAttached if pid
// already has a live Target; the engine is not consulted in that case.
func (r *registry) attach(ctx context.Context, engine *engineHolder, pid uint32) (Handle, error) {
	r.mu.Lock()
	if _, ok := r.byPid[pid]; ok {
		r.mu.Unlock()
		return 0, fmt.Errorf("pid %d: %w", pid, ErrProcessAlreadyAttached)
	}
	r.mu.Unlock()

	// Engine I/O happens outside the lock; a racing attach for the same pid
	// is still caught below when we go to register the result.
	target, err := engine.Open(ctx, pid)
	if err != nil {
		return 0, fmt.Errorf("opening pid %d: %w", pid, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPid[pid]; ok {
		// Lost the race: another attach for the same pid won first.
		_ = target.Detach()
		return 0, fmt.Errorf("pid %d: %w", pid, ErrProcessAlreadyAttached)
	}

	handle := r.next
	r.next++

	r.targets[handle] = target
	r.byPid[pid] = handle

	return handle, nil
}

// detach removes every Target whose pid equals the argument (at most one,
// under the registry's own invariant), invoking the engine's Detach on
// each. Returns the count detached, or ErrProcessNotAttached if none
// matched.
func (r *registry) detach(pid uint32) (int, error) {
	r.mu.Lock()

	handle, ok := r.byPid[pid]
	if !ok {
		r.mu.Unlock()
		return 0, fmt.Errorf("pid %d: %w", pid, ErrProcessNotAttached)
	}

	target := r.targets[handle]
	delete(r.targets, handle)
	delete(r.byPid, pid)

	r.mu.Unlock()

	// Detach the engine outside the lock: it may block on OS I/O, and an
	// in-flight resolve() for this handle has already taken its own
	// reference to target and will keep working until it's done.
	if err := target.Detach(); err != nil {
		return 0, fmt.Errorf("detaching pid %d: %w", pid, err)
	}

	return 1, nil
}

// resolve clones the shared reference to handle's Target under the
// registry lock, then releases the lock before returning it. The caller
// retains the reference for the duration of its operation; a concurrent
// detach cannot invalidate it.
func (r *registry) resolve(handle Handle) (Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.targets[handle]
	if !ok {
		return nil, fmt.Errorf("handle %d: %w", handle, ErrInvalidTargetHandle)
	}

	return target, nil
}
