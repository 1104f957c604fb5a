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
	"github.com/memspy-dev/memspy/pkg/memspy/ffi"
)

// read_bytes reads up to size bytes at address, returning a CallResult
// pointing at a ByteBuffer (byte_size == 1) owned by the caller until
// freed via free_byte_buffer.
//
//export read_bytes
func read_bytes(handle C.int64_t, address C.uintptr_t, size C.size_t) *C.CallResult {
	initLibrary()

	data, err := lib.ReadBytes(context.Background(), memspy.Handle(handle), uintptr(address), int(size))
	if err != nil {
		return errResult(err)
	}

	buf := allocByteVector(data)
	return resultFromVectorBuffer(buf)
}

// read_memory is the flat ABI variant: it copies directly into a
// caller-provided buffer and returns the byte count read rather than a
// CallResult, swallowing any error into a zero return (spec's
// supplemented "flat variant" distinction).
//
//export read_memory
func read_memory(handle C.int64_t, address C.uintptr_t, dest *C.uint8_t, size C.size_t) C.int64_t {
	initLibrary()

	data, err := lib.ReadBytes(context.Background(), memspy.Handle(handle), uintptr(address), int(size))
	if err != nil || dest == nil {
		return 0
	}

	out := unsafe.Slice((*byte)(unsafe.Pointer(dest)), int(size))
	n := copy(out, data)

	return C.int64_t(n)
}

// write_memory writes buf's contents at address, returning a CallResult
// carrying the confirmed write count, normalized to
// failed-to-write-process-memory on a zero-byte write.
//
//export write_memory
func write_memory(handle C.int64_t, address C.uintptr_t, buf *C.uint8_t, size C.size_t) *C.CallResult {
	initLibrary()

	bytes := cBytesToGo(buf, size)

	n, err := lib.WriteMemory(context.Background(), memspy.Handle(handle), uintptr(address), bytes)
	if err != nil {
		return errResult(err)
	}

	return cResult(ffi.OkInt(n))
}

// write_bytes is the flat ABI variant of write_memory: returns the raw
// written count, 0 on any failure.
//
//export write_bytes
func write_bytes(handle C.int64_t, address C.uintptr_t, buf *C.uint8_t, size C.size_t) C.int64_t {
	initLibrary()

	bytes := cBytesToGo(buf, size)

	n, err := lib.WriteMemory(context.Background(), memspy.Handle(handle), uintptr(address), bytes)
	if err != nil {
		return 0
	}

	return C.int64_t(n)
}

func cBytesToGo(buf *C.uint8_t, size C.size_t) []byte {
	if buf == nil || size == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(buf), C.int(size))
}

func allocByteVector(data []byte) *C.ByteBuffer {
	buf := (*C.ByteBuffer)(C.malloc(C.size_t(unsafe.Sizeof(C.ByteBuffer{}))))
	disposer.Track(unsafe.Pointer(buf))

	if len(data) == 0 {
		buf.data = nil
		buf.count = 0
		buf.capacity = 0
		buf.byte_size = 1
		return buf
	}

	base := C.CBytes(data)
	disposer.Track(base)

	buf.data = (*C.uint8_t)(base)
	buf.count = C.size_t(len(data))
	buf.capacity = C.size_t(len(data))
	buf.byte_size = 1

	return buf
}
