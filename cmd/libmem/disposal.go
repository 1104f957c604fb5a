package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

// regionDescriptorSize lets free_byte_buffer recognize a collect_pages
// result (as opposed to a plain byte or address vector) so it can also
// release each element's nested type/protect/usage strings before
// freeing the array itself.
var regionDescriptorSize = C.size_t(unsafe.Sizeof(C.RegionDescriptor{}))

// free_call_result releases a CallResult returned by any exported
// operation, along with its error string if present. The spec requires
// this entry point even though the source it was distilled from doesn't
// implement one consistently (design note, §9).
//
//export free_call_result
func free_call_result(r *C.CallResult) {
	if r == nil {
		return
	}

	if r.error != nil {
		disposer.Release(unsafe.Pointer(r.error))
		C.free(unsafe.Pointer(r.error))
	}

	disposer.Release(unsafe.Pointer(r))
	C.free(unsafe.Pointer(r))
}

// free_byte_buffer releases a ByteBuffer (and the vector or byte array it
// points at) returned by collect_pages, aob_query, or read_bytes. The
// marshalling layer never frees engine-owned memory - only allocations it
// made itself, which is everything reachable from a ByteBuffer it handed
// out.
//
//export free_byte_buffer
func free_byte_buffer(buf *C.ByteBuffer) {
	if buf == nil {
		return
	}

	if buf.data != nil {
		if buf.byte_size == regionDescriptorSize && buf.count > 0 {
			freeRegionDescriptorStrings(buf)
		}

		disposer.Release(unsafe.Pointer(buf.data))
		C.free(unsafe.Pointer(buf.data))
	}

	disposer.Release(unsafe.Pointer(buf))
	C.free(unsafe.Pointer(buf))
}

func freeRegionDescriptorStrings(buf *C.ByteBuffer) {
	slice := unsafe.Slice((*C.RegionDescriptor)(unsafe.Pointer(buf.data)), int(buf.count))
	for _, d := range slice {
		freeTrackedCString(d._type)
		freeTrackedCString(d.protect)
		freeTrackedCString(d.usage)
	}
}

func freeTrackedCString(s *C.char) {
	if s == nil {
		return
	}
	disposer.Release(unsafe.Pointer(s))
	C.free(unsafe.Pointer(s))
}
