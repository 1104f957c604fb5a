//go:build windows

package memspy

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// newPlatformEngine returns the Windows VirtualQueryEx/ReadProcessMemory
// Engine.
func newPlatformEngine() Engine {
	return &windowsEngine{}
}

type windowsEngine struct{}

func (e *windowsEngine) Open(_ context.Context, pid uint32) (Target, error) {
	h, err := windows.OpenProcess(
		windows.PROCESS_VM_READ|windows.PROCESS_VM_WRITE|windows.PROCESS_VM_OPERATION|windows.PROCESS_QUERY_INFORMATION,
		false,
		pid,
	)
	if err != nil {
		return nil, fmt.Errorf("OpenProcess pid %d: %w", pid, err)
	}

	return &windowsTarget{pid: pid, handle: h}, nil
}

type windowsTarget struct {
	pid    uint32
	handle windows.Handle
}

func (t *windowsTarget) Pid() uint32 {
	return t.pid
}

func (t *windowsTarget) CollectMemoryInfo(ctx context.Context) ([]Region, error) {
	var regions []Region
	var mbi windows.MemoryBasicInformation

	var address uintptr
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if err := windows.VirtualQueryEx(t.handle, address, &mbi, unsafe.Sizeof(mbi)); err != nil {
			break
		}

		regions = append(regions, regionFromMBI(mbi))

		next := mbi.BaseAddress + uintptr(mbi.RegionSize)
		if next <= address {
			break
		}
		address = next
	}

	return regions, nil
}

func regionFromMBI(mbi windows.MemoryBasicInformation) Region {
	var state RegionState
	switch mbi.State {
	case windows.MEM_COMMIT:
		state = RegionCommitted
	case windows.MEM_RESERVE:
		state = RegionReserved
	default:
		state = RegionFree
	}

	var regionType RegionType
	switch mbi.Type {
	case windows.MEM_IMAGE:
		regionType = RegionImage
	case windows.MEM_MAPPED:
		regionType = RegionMapped
	default:
		regionType = RegionPrivate
	}

	return Region{
		Base:      mbi.BaseAddress,
		Size:      uintptr(mbi.RegionSize),
		State:     state,
		Type:      regionType,
		Protect:   protectFromWin32(mbi.Protect),
		Flags:     mbi.Type,
		AllocBase: mbi.AllocationBase,
	}
}

func protectFromWin32(p uint32) ProtectFlags {
	const (
		pageNoAccess         = 0x01
		pageReadOnly         = 0x02
		pageReadWrite        = 0x04
		pageWriteCopy        = 0x08
		pageExecute          = 0x10
		pageExecuteRead      = 0x20
		pageExecuteReadWrite = 0x40
		pageExecuteWriteCopy = 0x80
		pageGuard            = 0x100
	)

	base := p &^ pageGuard
	var flags ProtectFlags

	switch base {
	case pageNoAccess:
		flags = ProtectNoAccess
	case pageReadOnly:
		flags = ProtectReadOnly
	case pageReadWrite:
		flags = ProtectReadWrite
	case pageWriteCopy:
		flags = ProtectWriteCopy
	case pageExecute:
		flags = ProtectExecute
	case pageExecuteRead:
		flags = ProtectExecuteRead
	case pageExecuteReadWrite:
		flags = ProtectExecuteReadWrite
	case pageExecuteWriteCopy:
		flags = ProtectExecuteWriteCopy
	}

	if p&pageGuard != 0 {
		flags |= ProtectGuard
	}

	return flags
}

func (t *windowsTarget) ReadMemory(_ context.Context, address uintptr, dest []byte) ([]byte, error) {
	if len(dest) == 0 {
		return dest, nil
	}

	var bytesRead uintptr
	err := windows.ReadProcessMemory(t.handle, address, &dest[0], uintptr(len(dest)), &bytesRead)
	if err != nil || bytesRead == 0 {
		return nil, nil
	}

	return dest[:bytesRead], nil
}

func (t *windowsTarget) WriteMemory(_ context.Context, address uintptr, bytes []byte) (int, error) {
	if len(bytes) == 0 {
		return 0, nil
	}

	var bytesWritten uintptr
	err := windows.WriteProcessMemory(t.handle, address, &bytes[0], uintptr(len(bytes)), &bytesWritten)
	if err != nil || bytesWritten == 0 {
		return 0, nil
	}

	return int(bytesWritten), nil
}

func (t *windowsTarget) Detach() error {
	return windows.CloseHandle(t.handle)
}
