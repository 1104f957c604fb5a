//go:build linux

package memspy

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// newPlatformEngine returns the Linux ptrace/procfs Engine.
func newPlatformEngine() Engine {
	return &linuxEngine{}
}

type linuxEngine struct{}

func (e *linuxEngine) Open(_ context.Context, pid uint32) (Target, error) {
	if err := unix.PtraceAttach(int(pid)); err != nil {
		return nil, fmt.Errorf("ptrace attach pid %d: %w", pid, err)
	}

	var status unix.WaitStatus
	if _, err := unix.Wait4(int(pid), &status, 0, nil); err != nil {
		_ = unix.PtraceDetach(int(pid))
		return nil, fmt.Errorf("waiting for pid %d to stop: %w", pid, err)
	}

	mem, err := os.OpenFile(fmt.Sprintf("/proc/%d/mem", pid), os.O_RDWR, 0)
	if err != nil {
		_ = unix.PtraceDetach(int(pid))
		return nil, fmt.Errorf("opening /proc/%d/mem: %w", pid, err)
	}

	return &linuxTarget{pid: pid, mem: mem}, nil
}

// linuxTarget attaches via ptrace and performs I/O through the target's
// /proc/<pid>/mem file rather than PTRACE_PEEKDATA/POKEDATA, which only
// move a word at a time; a single pread/pwrite handles arbitrarily large
// reads and writes in one syscall once ptrace has stopped the tracee.
type linuxTarget struct {
	pid uint32
	mem *os.File
}

func (t *linuxTarget) Pid() uint32 {
	return t.pid
}

func (t *linuxTarget) CollectMemoryInfo(_ context.Context) ([]Region, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", t.pid))
	if err != nil {
		return nil, fmt.Errorf("opening /proc/%d/maps: %w", t.pid, err)
	}
	defer f.Close()

	var regions []Region
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		r, ok := parseMapsLine(scanner.Text())
		if !ok {
			continue
		}
		regions = append(regions, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading /proc/%d/maps: %w", t.pid, err)
	}

	return regions, nil
}

// parseMapsLine parses one /proc/<pid>/maps record, e.g.:
//
//	7f2c1a000000-7f2c1a021000 rw-p 00000000 00:00 0  [heap]
func parseMapsLine(line string) (Region, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Region{}, false
	}

	addrRange := strings.SplitN(fields[0], "-", 2)
	if len(addrRange) != 2 {
		return Region{}, false
	}
	base, err := strconv.ParseUint(addrRange[0], 16, 64)
	if err != nil {
		return Region{}, false
	}
	end, err := strconv.ParseUint(addrRange[1], 16, 64)
	if err != nil {
		return Region{}, false
	}

	perms := fields[1]
	var protect ProtectFlags
	r := len(perms) > 0 && perms[0] == 'r'
	w := len(perms) > 1 && perms[1] == 'w'
	x := len(perms) > 2 && perms[2] == 'x'
	switch {
	case r && w && x:
		protect = ProtectExecuteReadWrite
	case r && w:
		protect = ProtectReadWrite
	case r && x:
		protect = ProtectExecuteRead
	case x:
		protect = ProtectExecute
	case r:
		protect = ProtectReadOnly
	default:
		protect = ProtectNoAccess
	}

	regionType := RegionPrivate
	usage := ""
	if len(fields) >= 6 {
		usage = fields[5]
		switch {
		case strings.HasPrefix(usage, "["):
			// Pseudo-paths such as [heap] and [stack] are anonymous memory.
			regionType = RegionPrivate
		case strings.HasSuffix(usage, ".so") || strings.Contains(usage, ".so."):
			regionType = RegionImage
		default:
			regionType = RegionMapped
		}
	}

	return Region{
		Base:      uintptr(base),
		Size:      uintptr(end - base),
		State:     RegionCommitted,
		Type:      regionType,
		Protect:   protect,
		AllocBase: uintptr(base),
		Usage:     usage,
	}, true
}

func (t *linuxTarget) ReadMemory(_ context.Context, address uintptr, dest []byte) ([]byte, error) {
	n, err := unix.Pread(int(t.mem.Fd()), dest, int64(address))
	if err != nil {
		if n <= 0 {
			return nil, nil
		}
	}
	if n < 0 {
		n = 0
	}
	return dest[:n], nil
}

func (t *linuxTarget) WriteMemory(_ context.Context, address uintptr, bytes []byte) (int, error) {
	n, err := unix.Pwrite(int(t.mem.Fd()), bytes, int64(address))
	if err != nil && n <= 0 {
		return 0, nil
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

func (t *linuxTarget) Detach() error {
	defer t.mem.Close()
	if err := unix.PtraceDetach(int(t.pid)); err != nil {
		return fmt.Errorf("ptrace detach pid %d: %w", t.pid, err)
	}
	return nil
}
