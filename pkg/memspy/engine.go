package memspy

import "context"

// Target is a live attachment to one OS process. Implementations are not
// required to be safe for concurrent Detach-while-in-use on their own;
// that guarantee is provided by the [registry]'s shared-ownership handles.
//
// Target and Engine are a sealed capability interface, not a class
// hierarchy: new backends are added by implementing both interfaces for a
// platform (see engine_linux.go, engine_windows.go), never by subclassing.
type Target interface {
	// Pid returns the process-id this Target is attached to.
	Pid() uint32

	// CollectMemoryInfo enumerates the target's virtual-memory regions, in
	// whatever order the OS reports them.
	CollectMemoryInfo(ctx context.Context) ([]Region, error)

	// ReadMemory reads up to len(dest) bytes starting at address, returning
	// the slice actually read (possibly shorter than dest on a partial
	// read, possibly empty on failure - never an error for a short read).
	ReadMemory(ctx context.Context, address uintptr, dest []byte) ([]byte, error)

	// WriteMemory writes bytes at address, returning the number of bytes
	// the engine confirms were written.
	WriteMemory(ctx context.Context, address uintptr, bytes []byte) (int, error)

	// Detach releases the attachment. Safe to call once; the registry
	// guarantees it is never called twice for the same Target.
	Detach() error
}

// Engine opens new Targets. One Engine instance is owned by the
// [engineHolder] for the lifetime of the process.
type Engine interface {
	// Open attaches to pid and returns a ready-to-use Target.
	Open(ctx context.Context, pid uint32) (Target, error)
}
