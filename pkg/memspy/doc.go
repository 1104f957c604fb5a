// Package memspy attaches to OS processes, enumerates their virtual-memory
// map, reads and writes arbitrary addresses, and scans committed memory for
// wildcard-aware hex byte patterns.
//
// memspy is not a debugger: no symbol resolution, disassembly, breakpoints,
// or thread control. It is a thin, concurrency-safe layer over a pluggable
// [Engine] that does the actual process I/O.
//
// # Basic usage
//
//	ctx := context.Background()
//	lib := memspy.New(memspy.DefaultOptions())
//
//	handle, err := lib.Attach(ctx, pid)
//	if err != nil {
//	    // ErrProcessAlreadyAttached, or an engine-level open failure
//	}
//	defer lib.Detach(pid)
//
//	pages, err := lib.CollectPages(ctx, handle)
//
//	pattern, err := memspy.CompilePattern("48 8B ?? ?? 89")
//	addrs, err := lib.Scan(ctx, handle, pattern, memspy.CapabilityMask{Readable: true})
//
//	n, err := lib.WriteMemory(ctx, handle, addr, []byte{0xDE, 0xAD})
//	data, err := lib.ReadBytes(ctx, handle, addr, 2)
//
// # Concurrency
//
//   - [Library] methods are safe for concurrent use from any goroutine.
//   - A [Handle] resolves to the same [Target] for its entire lifetime; a
//     concurrent [Library.Detach] never invalidates an in-flight operation
//     holding a handle's resolved reference.
//   - [Library.Scan] fans out across a bounded worker pool; no lock is held
//     while regions are being searched.
//
// # Error handling
//
// Errors are plain Go errors classified with [errors.Is] against the
// sentinels in this package (for example [ErrInvalidTargetHandle]). The
// [pkg/memspy/ffi] package builds the localized, C-callable representation
// of these errors for the cgo boundary; memspy itself never localizes or
// panics on a recoverable error.
package memspy
