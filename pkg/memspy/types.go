package memspy

// Handle identifies an attached Target for the lifetime of the attachment.
//
// Handles are assigned monotonically by the [registry] and are never
// reused within a library lifetime, even across detach/re-attach cycles of
// the same pid - see DESIGN.md's "Handle reuse" decision.
type Handle uintptr

// RegionState mirrors the OS notion of whether a virtual-memory range is
// backed by storage.
type RegionState int

const (
	// RegionFree is unused address space.
	RegionFree RegionState = iota
	// RegionReserved is reserved but not committed.
	RegionReserved
	// RegionCommitted is backed by physical storage or page-file.
	RegionCommitted
)

// RegionType classifies how a region's memory is provided.
type RegionType int

const (
	// RegionPrivate is process-private memory (heap, stack, anonymous mmap).
	RegionPrivate RegionType = iota
	// RegionImage is memory backed by a loaded executable image/module.
	RegionImage
	// RegionMapped is a file-backed mapping that is neither private nor an
	// image (e.g. shared memory, a memory-mapped file).
	RegionMapped
)

// ProtectFlags is a bitmask of page protection attributes. Values mirror
// the engine's native protection constants closely enough to be tested
// with simple bitwise membership, but are engine-agnostic at this layer.
type ProtectFlags uint32

const (
	ProtectReadOnly ProtectFlags = 1 << iota
	ProtectReadWrite
	ProtectWriteCopy
	ProtectExecute
	ProtectExecuteRead
	ProtectExecuteReadWrite
	ProtectExecuteWriteCopy
	ProtectGuard
	ProtectNoAccess
)

// Has reports whether all bits in mask are set.
func (p ProtectFlags) Has(mask ProtectFlags) bool {
	return p&mask == mask
}

// Any reports whether any bit in mask is set.
func (p ProtectFlags) Any(mask ProtectFlags) bool {
	return p&mask != 0
}

// Region is an immutable snapshot of one virtual-memory range, as produced
// by an [Engine]'s CollectMemoryInfo.
type Region struct {
	Base      uintptr
	Size      uintptr
	State     RegionState
	Type      RegionType
	Protect   ProtectFlags
	Flags     uint32
	AllocBase uintptr
	Usage     string // optional textual annotation; empty if unavailable
}

// CapabilityMask scopes a scan or region enumeration to regions matching
// any of the requested capabilities.
type CapabilityMask struct {
	Mapped     bool
	Readable   bool
	Writable   bool
	Executable bool
}
