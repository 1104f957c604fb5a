package ffi

import (
	"testing"
	"unsafe"
)

func TestDisposerTrackAndRelease(t *testing.T) {
	d := NewDisposer()
	x := new(int)
	ptr := unsafe.Pointer(x)

	d.Track(ptr)
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}

	d.Release(ptr)
	if d.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", d.Len())
	}
}

func TestDisposerDoubleFreePanics(t *testing.T) {
	d := NewDisposer()
	x := new(int)
	ptr := unsafe.Pointer(x)

	d.Track(ptr)
	d.Release(ptr)

	defer func() {
		if recover() == nil {
			t.Error("Release() on an already-freed pointer: want panic, got none")
		}
	}()
	d.Release(ptr)
}

func TestDisposerUnknownPointerPanics(t *testing.T) {
	d := NewDisposer()
	x := new(int)

	defer func() {
		if recover() == nil {
			t.Error("Release() on an untracked pointer: want panic, got none")
		}
	}()
	d.Release(unsafe.Pointer(x))
}
