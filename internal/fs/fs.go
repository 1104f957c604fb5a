// Package fs provides the filesystem abstraction memspy's logging sink
// uses to lock, stat, and atomically replace its log file. The sink opens
// the log file itself with [os.OpenFile], not through [FS].
//
// The main types are:
//   - [FS]: interface for the filesystem operations the sink needs
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using the [os] package
//   - [Locker]: flock(2)-based locking on top of an [FS]
//
// Example usage:
//
//	locker := fs.NewLocker(fs.NewReal())
//	lock, err := locker.Lock("memspy.log.lock")
//	if err != nil {
//	    return err
//	}
//	defer lock.Close()
package fs

import (
	"io"
	"os"
)

// File represents an open file descriptor.
//
// This interface is satisfied by [os.File] and can be used with all
// standard library functions that accept [io.Reader], [io.Writer],
// [io.Seeker], or [io.Closer].
type File interface {
	// Embedded interfaces from [io] package.
	// These provide Read, Write, Close, and Seek methods.
	io.ReadWriteCloser
	io.Seeker

	// Fd returns the file descriptor. See [os.File.Fd].
	// Used for low-level operations like [syscall.Flock].
	Fd() uintptr

	// Stat returns the [os.FileInfo] for this file. See [os.File.Stat].
	Stat() (os.FileInfo, error)

	// Sync commits the file's contents to disk. See [os.File.Sync].
	Sync() error
}

// Locker represents a held file lock.
// Call [Locker.Close] to release the lock.
type Locker interface {
	io.Closer
}

// FS defines the narrow set of filesystem operations memspy's logging
// sink needs: opening/creating its log and lock files, ensuring their
// directory exists, and replacing the log file's contents atomically on
// rotation.
//
// [Real] is the only production implementation; tests substitute a stub
// satisfying this interface directly rather than a fault-injecting
// decorator, since the sink's own use of [FS] is narrow enough not to
// warrant one.
type FS interface {
	// OpenFile opens a file with specified flags and permissions. See
	// [os.OpenFile]. Used by [Locker] to open lock files.
	//
	// Common flags: [os.O_RDONLY], [os.O_WRONLY], [os.O_RDWR],
	// [os.O_APPEND], [os.O_CREATE], [os.O_EXCL], [os.O_TRUNC].
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	// Returns [os.ErrNotExist] if file doesn't exist.
	Stat(path string) (os.FileInfo, error)

	// WriteFileAtomic replaces a file's contents atomically (temp file +
	// rename), so a rotating log reader never observes a half-written or
	// truncated file.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error
}

// Compile-time interface checks.
var _ File = (*os.File)(nil)
