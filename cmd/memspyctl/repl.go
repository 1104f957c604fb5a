package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/memspy-dev/memspy/internal/cli"
	"github.com/memspy-dev/memspy/internal/config"
	"github.com/memspy-dev/memspy/internal/obslog"
	"github.com/memspy-dev/memspy/pkg/memspy"
)

// replCommands lists the line-oriented commands memspyctl understands, in
// help/completion order. help/exit/quit/q are handled by the REPL loop
// itself; everything else is dispatched through internal/cli's Command
// table against the same Deps the command-line form of each command uses.
var replCommands = []string{
	"attach", "detach", "pages", "scan", "read", "write",
	"loglevel", "logfile", "config", "help", "exit", "quit", "q",
}

// REPL is memspyctl's interactive prompt loop: a direct port of
// cmd/sloty's liner-driven history/completion loop onto memspy's own
// command set, dispatched through internal/cli.Run rather than a
// slotcache-specific switch.
type REPL struct {
	lib    *memspy.Library
	logger *obslog.Logger
	cfg    config.Config

	liner *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".memspyctl_history")
}

// Run starts the prompt loop. It blocks until the user exits or input is
// exhausted.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Println("memspyctl - memspy interactive console")
	fmt.Println("Type 'help' for available commands, 'exit' to quit.")

	for {
		line, err := r.liner.Prompt("memspyctl> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")
				r.saveHistory()
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		switch strings.ToLower(parts[0]) {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()
			return nil
		case "help", "?":
			r.dispatch([]string{"--help"})
		default:
			r.dispatch(parts)
		}
	}
}

// dispatch runs one command line through internal/cli's Command table,
// printing stdout/stderr directly to the console.
func (r *REPL) dispatch(args []string) {
	deps := &cli.Deps{Lib: r.lib, Logger: r.logger, Cfg: r.cfg}

	var stdout, stderr bytes.Buffer
	cli.Run(nil, &stdout, &stderr, append([]string{"memspyctl"}, args...), deps, nil)

	if stdout.Len() > 0 {
		fmt.Print(stdout.String())
	}
	if stderr.Len() > 0 {
		fmt.Fprint(os.Stderr, stderr.String())
	}
}

func (r *REPL) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		_, _ = r.liner.WriteHistory(f)
		_ = f.Close()
	}
}

func (r *REPL) completer(line string) []string {
	lower := strings.ToLower(line)

	var completions []string
	for _, cmd := range replCommands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}
