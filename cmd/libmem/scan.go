package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/memspy-dev/memspy/pkg/memspy"
)

// aob_query compiles pattern and scans handle's eligible regions (per the
// capability mask), returning a CallResult pointing at a ByteBuffer whose
// data is a contiguous array of uintptr addresses (byte_size ==
// sizeof(uintptr_t)).
//
//export aob_query
func aob_query(handle C.int64_t, pattern *C.char, mapped, readable, writable, executable C.int) *C.CallResult {
	initLibrary()

	compiled, err := memspy.CompilePattern(C.GoString(pattern))
	if err != nil {
		return errResult(err)
	}

	mask := memspy.CapabilityMask{
		Mapped:     mapped != 0,
		Readable:   readable != 0,
		Writable:   writable != 0,
		Executable: executable != 0,
	}

	addrs, err := lib.Scan(context.Background(), memspy.Handle(handle), compiled, mask)
	if err != nil {
		return errResult(err)
	}

	buf := allocAddressVector(addrs)
	return resultFromVectorBuffer(buf)
}

func allocAddressVector(addrs []uintptr) *C.ByteBuffer {
	elemSize := unsafe.Sizeof(C.uintptr_t(0))

	buf := (*C.ByteBuffer)(C.malloc(C.size_t(unsafe.Sizeof(C.ByteBuffer{}))))
	disposer.Track(unsafe.Pointer(buf))

	if len(addrs) == 0 {
		buf.data = nil
		buf.count = 0
		buf.capacity = 0
		buf.byte_size = C.size_t(elemSize)
		return buf
	}

	base := C.malloc(C.size_t(len(addrs)) * C.size_t(elemSize))
	disposer.Track(base)

	slice := unsafe.Slice((*C.uintptr_t)(base), len(addrs))
	for i, a := range addrs {
		slice[i] = C.uintptr_t(a)
	}

	buf.data = (*C.uint8_t)(base)
	buf.count = C.size_t(len(addrs))
	buf.capacity = C.size_t(len(addrs))
	buf.byte_size = C.size_t(elemSize)

	return buf
}
