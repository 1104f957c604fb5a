package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"strings"
	"unsafe"

	"github.com/memspy-dev/memspy/pkg/memspy"
)

// collect_pages enumerates handle's full virtual-memory map. On success,
// CallResult.result holds a pointer (cast to int64_t) to a heap-allocated
// ByteBuffer whose data points at a contiguous array of RegionDescriptor;
// byte_size is sizeof(RegionDescriptor) and count is the element count -
// the same generic ByteBuffer record spec §6 uses for raw byte payloads
// doubles as a vector header here rather than introducing a second
// vector-result type.
//
//export collect_pages
func collect_pages(handle C.int64_t) *C.CallResult {
	initLibrary()

	regions, err := lib.CollectPages(context.Background(), memspy.Handle(handle))
	if err != nil {
		return errResult(err)
	}

	buf := allocRegionVector(regions)
	return resultFromVectorBuffer(buf)
}

func allocRegionVector(regions []memspy.Region) *C.ByteBuffer {
	elemSize := unsafe.Sizeof(C.RegionDescriptor{})

	buf := (*C.ByteBuffer)(C.malloc(C.size_t(unsafe.Sizeof(C.ByteBuffer{}))))
	disposer.Track(unsafe.Pointer(buf))

	if len(regions) == 0 {
		buf.data = nil
		buf.count = 0
		buf.capacity = 0
		buf.byte_size = C.size_t(elemSize)
		return buf
	}

	base := C.malloc(C.size_t(len(regions)) * C.size_t(elemSize))
	disposer.Track(base)

	slice := unsafe.Slice((*C.RegionDescriptor)(base), len(regions))
	for i, r := range regions {
		slice[i] = C.RegionDescriptor{
			base:       C.uintptr_t(r.Base),
			size:       C.uintptr_t(r.Size),
			flags:      C.uint32_t(r.Flags),
			_type:      cStringTracked(regionTypeString(r.Type)),
			protect:    cStringTracked(protectFlagsString(r.Protect)),
			usage:      cStringTracked(r.Usage),
			alloc_base: C.uintptr_t(r.AllocBase),
		}
	}

	buf.data = (*C.uint8_t)(base)
	buf.count = C.size_t(len(regions))
	buf.capacity = C.size_t(len(regions))
	buf.byte_size = C.size_t(elemSize)

	return buf
}

func resultFromVectorBuffer(buf *C.ByteBuffer) *C.CallResult {
	out := (*C.CallResult)(C.malloc(C.size_t(unsafe.Sizeof(C.CallResult{}))))
	disposer.Track(unsafe.Pointer(out))
	out.error = nil
	out.result = C.int64_t(uintptr(unsafe.Pointer(buf)))
	return out
}

func cStringTracked(s string) *C.char {
	cstr := C.CString(s)
	disposer.Track(unsafe.Pointer(cstr))
	return cstr
}

func regionTypeString(t memspy.RegionType) string {
	switch t {
	case memspy.RegionImage:
		return "image"
	case memspy.RegionMapped:
		return "mapped"
	default:
		return "private"
	}
}

func protectFlagsString(p memspy.ProtectFlags) string {
	var names []string
	add := func(mask memspy.ProtectFlags, name string) {
		if p.Has(mask) {
			names = append(names, name)
		}
	}

	add(memspy.ProtectReadOnly, "readonly")
	add(memspy.ProtectReadWrite, "readwrite")
	add(memspy.ProtectWriteCopy, "writecopy")
	add(memspy.ProtectExecute, "execute")
	add(memspy.ProtectExecuteRead, "execute-read")
	add(memspy.ProtectExecuteReadWrite, "execute-readwrite")
	add(memspy.ProtectExecuteWriteCopy, "execute-writecopy")
	add(memspy.ProtectGuard, "guard")
	add(memspy.ProtectNoAccess, "noaccess")

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}
