package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/memspy-dev/memspy/internal/config"
	"github.com/memspy-dev/memspy/pkg/memspy"
)

// AttachCmd attaches to a process by pid and prints the [memspy.Handle]
// assigned to it.
func AttachCmd(deps *Deps) *Command {
	return &Command{
		Usage: "attach <pid>",
		Short: "Attach to a process",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: <pid>")
			}

			pid, err := parsePid(args[0])
			if err != nil {
				return err
			}

			handle, err := deps.Lib.Attach(ctx, pid)
			if err != nil {
				return err
			}

			o.Printf("attached pid %d as handle %d\n", pid, handle)

			return nil
		},
	}
}

// DetachCmd detaches a process by pid and reports how many targets were
// released from the registry.
func DetachCmd(deps *Deps) *Command {
	return &Command{
		Usage: "detach <pid>",
		Short: "Detach from a process",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: <pid>")
			}

			pid, err := parsePid(args[0])
			if err != nil {
				return err
			}

			count, err := deps.Lib.Detach(pid)
			if err != nil {
				return err
			}

			o.Printf("detached pid %d (%d target(s) released)\n", pid, count)

			return nil
		},
	}
}

// PagesCmd lists handle's full, unfiltered virtual-memory map.
func PagesCmd(deps *Deps) *Command {
	return &Command{
		Usage: "pages <handle>",
		Short: "List virtual-memory regions",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: <handle>")
			}

			handle, err := parseHandle(args[0])
			if err != nil {
				return err
			}

			regions, err := deps.Lib.CollectPages(ctx, handle)
			if err != nil {
				return err
			}

			for _, r := range regions {
				o.Println(formatRegion(r))
			}

			o.Printf("%d region(s)\n", len(regions))

			return nil
		},
	}
}

// ScanCmd searches handle's memory for pattern, scoped to the capability
// mask requested via -r/-w/-x/-m.
func ScanCmd(deps *Deps) *Command {
	var readable, writable, executable, mapped bool

	flags := flag.NewFlagSet("scan", flag.ContinueOnError)
	flags.BoolVarP(&readable, "readable", "r", false, "scan regions with read capability")
	flags.BoolVarP(&writable, "writable", "w", false, "scan regions with write capability")
	flags.BoolVarP(&executable, "executable", "x", false, "scan regions with execute capability")
	flags.BoolVarP(&mapped, "mapped", "m", false, "restrict to file-backed mapped regions")

	return &Command{
		Flags: flags,
		Usage: "scan <handle> <pattern> [-rwxm]",
		Short: "Search for a byte pattern",
		Long:  "pattern is whitespace-separated hex bytes; use ?? for a wildcard byte, e.g. \"48 8b ?? 24\".",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected exactly two arguments: <handle> <pattern>")
			}

			handle, err := parseHandle(args[0])
			if err != nil {
				return err
			}

			pattern, err := memspy.CompilePattern(args[1])
			if err != nil {
				return err
			}

			mask := memspy.CapabilityMask{
				Readable:   readable,
				Writable:   writable,
				Executable: executable,
				Mapped:     mapped,
			}

			addresses, err := deps.Lib.Scan(ctx, handle, pattern, mask)
			if err != nil {
				return err
			}

			for _, addr := range addresses {
				o.Printf("0x%x\n", addr)
			}

			o.Printf("%d match(es)\n", len(addresses))

			return nil
		},
	}
}

// ReadCmd reads size bytes at addr from handle and prints them as hex.
func ReadCmd(deps *Deps) *Command {
	return &Command{
		Usage: "read <handle> <addr> <size>",
		Short: "Read bytes at an address",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("expected exactly three arguments: <handle> <addr> <size>")
			}

			handle, err := parseHandle(args[0])
			if err != nil {
				return err
			}

			addr, err := parseAddress(args[1])
			if err != nil {
				return err
			}

			size, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid size %q: %w", args[2], err)
			}

			data, err := deps.Lib.ReadBytes(ctx, handle, addr, size)
			if err != nil {
				return err
			}

			o.Println(hex.EncodeToString(data))

			return nil
		},
	}
}

// WriteCmd writes hex-encoded bytes at addr on handle.
func WriteCmd(deps *Deps) *Command {
	return &Command{
		Usage: "write <handle> <addr> <hex-bytes>",
		Short: "Write bytes at an address",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("expected exactly three arguments: <handle> <addr> <hex-bytes>")
			}

			handle, err := parseHandle(args[0])
			if err != nil {
				return err
			}

			addr, err := parseAddress(args[1])
			if err != nil {
				return err
			}

			data, err := hex.DecodeString(args[2])
			if err != nil {
				return fmt.Errorf("invalid hex bytes %q: %w", args[2], err)
			}

			written, err := deps.Lib.WriteMemory(ctx, handle, addr, data)
			if err != nil {
				return err
			}

			o.Printf("wrote %d byte(s)\n", written)

			return nil
		},
	}
}

// LogLevelCmd sets the minimum level reaching the current sink without
// touching whether that sink is the discard writer or a file.
func LogLevelCmd(deps *Deps) *Command {
	return &Command{
		Usage: "loglevel <0-5>",
		Short: "Set the log level",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: <0-5>")
			}

			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", args[0], err)
			}

			deps.Logger.SetLevel(level)
			o.Printf("log level set to %d\n", level)

			return nil
		},
	}
}

// LogFileCmd switches logging to memspy.log at the given level, or closes
// it again on level 0.
func LogFileCmd(deps *Deps) *Command {
	return &Command{
		Usage: "logfile <0-5>",
		Short: "Switch logging to memspy.log",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: <0-5>")
			}

			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", args[0], err)
			}

			if err := deps.Logger.SetFile(level); err != nil {
				return err
			}

			o.Printf("logging to memspy.log at level %d\n", level)

			return nil
		},
	}
}

// ConfigCmd prints the resolved configuration as indented JSON.
func ConfigCmd(deps *Deps) *Command {
	return &Command{
		Usage: "config",
		Short: "Show the resolved config",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			text, err := config.Format(deps.Cfg)
			if err != nil {
				return err
			}

			o.Println(text)

			return nil
		},
	}
}

func parsePid(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid pid %q: %w", s, err)
	}
	return uint32(n), nil
}

func parseHandle(s string) (memspy.Handle, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid handle %q: %w", s, err)
	}
	return memspy.Handle(n), nil
}

func parseAddress(s string) (uintptr, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uintptr(n), nil
}

func formatRegion(r memspy.Region) string {
	usage := r.Usage
	if usage == "" {
		usage = "-"
	}

	return fmt.Sprintf("0x%016x-0x%016x %-7s %-25s %s",
		r.Base, r.Base+r.Size, regionTypeString(r.Type), protectFlagsString(r.Protect), usage)
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
