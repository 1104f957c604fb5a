package memspy

import (
	"context"
	"fmt"
)

// ReadBytes issues a single read against target, returning exactly the
// bytes the engine delivered - possibly fewer than size on a partial
// read. Returns [ErrFailedToReadMemory] only when the engine delivers
// nothing at all; a non-empty short read is a success.
func ReadBytes(ctx context.Context, target Target, address uintptr, size int) ([]byte, error) {
	dest := make([]byte, size)

	data, err := target.ReadMemory(ctx, address, dest)
	if err != nil {
		return nil, fmt.Errorf("reading %d bytes at 0x%x: %w", size, address, err)
	}
	if len(data) == 0 && size > 0 {
		return nil, fmt.Errorf("0x%x: %w", address, ErrFailedToReadMemory)
	}

	return data, nil
}

// WriteMemory writes bytes at address, returning the number of bytes the
// engine confirms were written. A zero count is normalized to
// [ErrFailedToWriteMemory] rather than returned as a success.
func WriteMemory(ctx context.Context, target Target, address uintptr, bytes []byte) (int, error) {
	written, err := target.WriteMemory(ctx, address, bytes)
	if err != nil {
		return 0, fmt.Errorf("writing %d bytes at 0x%x: %w", len(bytes), address, err)
	}
	if written == 0 && len(bytes) > 0 {
		return 0, fmt.Errorf("0x%x: %w", address, ErrFailedToWriteMemory)
	}

	return written, nil
}
