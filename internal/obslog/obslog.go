// Package obslog wraps log/slog with memspy's 0..5 level numbering and a
// lockfile-guarded switch between a discarding sink and a file sink, so
// concurrent set_log_level/log_to_file calls from multiple threads never
// interleave file creation.
package obslog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/memspy-dev/memspy/internal/fs"
)

// Level numbering from spec §6: 0=off, 1=error, 2=warn, 3=info, 4=debug,
// 5=trace. Any other value is treated as off. slog has no "trace" level,
// so trace is mapped one notch below debug.
const (
	LevelOff = 0
	LevelError = 1
	LevelWarn = 2
	LevelInfo = 3
	LevelDebug = 4
	LevelTrace = 5
)

const traceLevel = slog.Level(-8)

func slogLevel(level int) (slog.Level, bool) {
	switch level {
	case LevelError:
		return slog.LevelError, true
	case LevelWarn:
		return slog.LevelWarn, true
	case LevelInfo:
		return slog.LevelInfo, true
	case LevelDebug:
		return slog.LevelDebug, true
	case LevelTrace:
		return traceLevel, true
	default:
		return 0, false
	}
}

// LogFileName is the fixed-name log file written in the working directory
// by SetFile, per spec §6 ("a fixed-name file in the working directory").
const LogFileName = "memspy.log"

// maxLogFileSize is the rotation threshold: once the sink file reaches
// this size, the next SetFile/log_to_file call rotates it before
// reopening rather than letting it grow without bound.
const maxLogFileSize = 10 * 1024 * 1024

// Logger is memspy's process-wide leveled logger. The zero value is not
// usable; construct with New.
type Logger struct {
	mu      sync.Mutex
	level   *slog.LevelVar
	handler slog.Handler
	logger  *slog.Logger
	backing fs.FS
	locker  *fs.Locker
	file    *os.File
}

// New constructs a Logger at LevelOff, discarding output until SetLevel
// and/or SetFile are called.
func New() *Logger {
	levelVar := &slog.LevelVar{}
	levelVar.Set(slog.LevelError + 100) // above any real level: nothing logs

	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelVar})

	backing := fs.NewReal()

	return &Logger{
		level:   levelVar,
		handler: handler,
		logger:  slog.New(handler),
		backing: backing,
		locker:  fs.NewLocker(backing),
	}
}

// SetLevel changes the minimum level that reaches the sink. An
// unrecognized value is treated as LevelOff.
func (l *Logger) SetLevel(level int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sl, ok := slogLevel(level)
	if !ok {
		sl = slog.LevelError + 100
	}
	l.level.Set(sl)
}

// SetFile switches the sink to LogFileName in the working directory,
// creating it if necessary. A lock guards the open against a racing
// SetFile call from another thread. Passing LevelOff closes any
// previously open file and reverts to discarding output.
func (l *Logger) SetFile(level int) error {
	l.SetLevel(level)

	if level == LevelOff {
		return l.closeFile()
	}

	lock, err := l.locker.Lock(LogFileName + ".lock")
	if err != nil {
		return fmt.Errorf("locking %s: %w", LogFileName, err)
	}
	defer lock.Close()

	if err := l.rotateIfOversize(); err != nil {
		return fmt.Errorf("rotating %s: %w", LogFileName, err)
	}

	f, err := os.OpenFile(LogFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", LogFileName, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	l.handler = slog.NewTextHandler(f, &slog.HandlerOptions{Level: l.level})
	l.logger = slog.New(l.handler)

	return nil
}

// rotateIfOversize replaces LogFileName with an empty file, atomically,
// once it has grown past maxLogFileSize. The caller holds the rotation
// lock, so no other SetFile call rotates or reopens the file concurrently
// (log calls on an already open sink do not take that lock); the
// atomic replace (temp file + rename) still matters because a reader
// tailing the log must never observe a plain truncate's zero-length
// intermediate state.
func (l *Logger) rotateIfOversize() error {
	info, err := l.backing.Stat(LogFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if info.Size() < maxLogFileSize {
		return nil
	}

	return l.backing.WriteFileAtomic(LogFileName, nil, 0o644)
}

func (l *Logger) closeFile() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file = nil
	l.handler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: l.level})
	l.logger = slog.New(l.handler)

	return err
}

// Info satisfies [pkg/memspy.ScanLogger].
func (l *Logger) Info(msg string, args ...any) {
	l.mu.Lock()
	logger := l.logger
	l.mu.Unlock()

	logger.Log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs at warn level, used for engine-layer open/detach failures
// (spec §7 propagation policy).
func (l *Logger) Warn(msg string, args ...any) {
	l.mu.Lock()
	logger := l.logger
	l.mu.Unlock()

	logger.Log(context.Background(), slog.LevelWarn, msg, args...)
}
