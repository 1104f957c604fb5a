package ffi

// ByteBuffer is the Go-side mirror of the foreign ByteBuffer record
// (spec §6): a data pointer, logical count, allocated capacity, and
// element byte-size. cmd/libmem copies Data into C memory at the actual
// cgo boundary; this type exists so the disposal bookkeeping and tests
// don't need cgo to exercise the ownership contract.
type ByteBuffer struct {
	Data     []byte
	Count    int
	Capacity int
	ByteSize int
}

// NewByteBuffer wraps data as a ByteBuffer with Count == Capacity ==
// len(data) and ByteSize == 1 (raw bytes).
func NewByteBuffer(data []byte) ByteBuffer {
	return ByteBuffer{
		Data:     data,
		Count:    len(data),
		Capacity: len(data),
		ByteSize: 1,
	}
}
