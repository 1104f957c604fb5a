// Package ffi builds the generic tagged result and byte-buffer value
// objects for memspy's C boundary (spec §4.7, §6). It is foreign-layout
// aware but not itself cgo: the actual C struct definitions and //export
// functions live in cmd/libmem, which is the one package compiled with
// CGO_ENABLED=1.
package ffi

import (
	"errors"
	"fmt"

	"github.com/memspy-dev/memspy/pkg/memspy"
)

// Kind discriminates a Result's payload. This is the Go-side replacement
// for the "raw foreign pointers carrying type witnesses" construct flagged
// in the design notes: a plain tagged union plus typed accessors, rather
// than a generic CallResult parameterized by a phantom payload type.
type Kind int

const (
	KindNone Kind = iota
	KindHandle
	KindBool
	KindInt
	KindRegions
	KindAddresses
	KindBytes
)

// Result is either a success payload of exactly one Kind, or a carried
// error. Construct with the OkXxx/Err helpers; read with the IntoXxx
// accessors.
type Result struct {
	kind Kind
	err  error

	handle    memspy.Handle
	boolVal   bool
	intVal    int
	regions   []memspy.Region
	addresses []uintptr
	bytes     []byte
}

// OkHandle builds a success Result carrying a target handle.
func OkHandle(h memspy.Handle) Result {
	return Result{kind: KindHandle, handle: h}
}

// OkBool builds a success Result carrying a boolean.
func OkBool(b bool) Result {
	return Result{kind: KindBool, boolVal: b}
}

// OkInt builds a success Result carrying a count (e.g. detached-count,
// bytes-written).
func OkInt(n int) Result {
	return Result{kind: KindInt, intVal: n}
}

// OkRegions builds a success Result carrying a region vector.
func OkRegions(regions []memspy.Region) Result {
	return Result{kind: KindRegions, regions: regions}
}

// OkAddresses builds a success Result carrying an address vector.
func OkAddresses(addrs []uintptr) Result {
	return Result{kind: KindAddresses, addresses: addrs}
}

// OkBytes builds a success Result carrying a byte buffer.
func OkBytes(data []byte) Result {
	return Result{kind: KindBytes, bytes: data}
}

// Err builds a failure Result. The caller's err is preserved for
// [errors.Is] checks on the Go side; the C boundary instead surfaces
// [LocalizedMessage].
func Err(err error) Result {
	return Result{kind: KindNone, err: err}
}

// IsErr reports whether r carries an error rather than a payload.
func (r Result) IsErr() bool {
	return r.err != nil
}

// Error returns the carried error, or nil for a success Result.
func (r Result) Error() error {
	return r.err
}

var errWrongKind = errors.New("ffi: result does not carry the requested kind")

// IntoHandle extracts a handle payload.
func (r Result) IntoHandle() (memspy.Handle, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.kind != KindHandle {
		return 0, fmt.Errorf("%w: got %v, want handle", errWrongKind, r.kind)
	}
	return r.handle, nil
}

// IntoBool extracts a boolean payload.
func (r Result) IntoBool() (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if r.kind != KindBool {
		return false, fmt.Errorf("%w: got %v, want bool", errWrongKind, r.kind)
	}
	return r.boolVal, nil
}

// IntoInt extracts an integer payload.
func (r Result) IntoInt() (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.kind != KindInt {
		return 0, fmt.Errorf("%w: got %v, want int", errWrongKind, r.kind)
	}
	return r.intVal, nil
}

// IntoRegions extracts a region-vector payload.
func (r Result) IntoRegions() ([]memspy.Region, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.kind != KindRegions {
		return nil, fmt.Errorf("%w: got %v, want regions", errWrongKind, r.kind)
	}
	return r.regions, nil
}

// IntoAddresses extracts an address-vector payload.
func (r Result) IntoAddresses() ([]uintptr, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.kind != KindAddresses {
		return nil, fmt.Errorf("%w: got %v, want addresses", errWrongKind, r.kind)
	}
	return r.addresses, nil
}

// IntoBytes extracts a byte-buffer payload.
func (r Result) IntoBytes() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.kind != KindBytes {
		return nil, fmt.Errorf("%w: got %v, want bytes", errWrongKind, r.kind)
	}
	return r.bytes, nil
}
