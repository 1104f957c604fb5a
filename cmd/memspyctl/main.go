// memspyctl is an interactive console for memspy's library directly (no
// cgo boundary): attach, enumerate pages, scan for byte patterns, and
// read/write arbitrary addresses against one or more attached processes.
//
// Usage:
//
//	memspyctl [--config <path>] [--locale <code>]
//
// Commands (in REPL):
//
//	attach <pid>                                 Attach to a process
//	detach <pid>                                 Detach from a process
//	pages <handle>                                List virtual-memory regions
//	scan <handle> <pattern> [-rwxm]                Search for a byte pattern
//	read <handle> <addr> <size>                   Read bytes at an address
//	write <handle> <addr> <hex-bytes>              Write bytes at an address
//	loglevel <0-5>                                Set the log level
//	logfile <0-5>                                  Switch logging to memspy.log
//	config                                        Show the resolved config
//	help                                          Show this help
//	exit / quit / q                               Exit
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/memspy-dev/memspy/internal/config"
	"github.com/memspy-dev/memspy/internal/obslog"
	"github.com/memspy-dev/memspy/pkg/memspy"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := pflag.NewFlagSet("memspyctl", pflag.ContinueOnError)
	configPath := fs.String("config", "", "explicit config file path")
	locale := fs.String("locale", "", "locale override for error messages")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	override := config.Config{}
	if *locale != "" {
		override.Locale = *locale
	}

	cfg, _, err := config.Load(wd, *configPath, override, os.Environ())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := obslog.New()
	if cfg.LogFile != "" || cfg.LogLevel != 0 {
		if err := logger.SetFile(cfg.LogLevel); err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
	}

	lib := memspy.New(memspy.Options{
		AddressCeiling: uintptr(cfg.AddressCeiling),
		WorkerPoolSize: cfg.WorkerPoolSize,
		Logger:         logger,
	})

	repl := &REPL{
		lib:    lib,
		logger: logger,
		cfg:    cfg,
	}

	return repl.Run()
}
