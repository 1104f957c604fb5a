package memspy

import "context"

// Options configures a [Library] at construction time.
type Options struct {
	// NewEngine constructs the platform engine on first use. Nil selects
	// [newPlatformEngine], the build-tagged default for GOOS.
	NewEngine func() Engine

	// AddressCeiling overrides [DefaultAddressCeiling] for FilterRegions.
	// Zero selects the default.
	AddressCeiling uintptr

	// WorkerPoolSize bounds the scanner's goroutine pool. Zero or
	// negative selects runtime.GOMAXPROCS(0).
	WorkerPoolSize int

	// Logger receives the scan-timing line described in the scanner's
	// doc comment. Nil disables it.
	Logger ScanLogger
}

// DefaultOptions returns the zero-value Options, which selects the
// platform-default engine, the 48-bit address ceiling, GOMAXPROCS(0)
// workers, and no logging.
func DefaultOptions() Options {
	return Options{}
}

// Library is the process-wide entry point: one Engine Holder, one Target
// Registry, and the Options governing scans issued through it.
//
// A Library is typically constructed once per process and shared; see
// [engineHolder]'s teardown note for why a second instance is unsafe to
// construct once the first has attached to anything.
type Library struct {
	opts     Options
	engine   *engineHolder
	registry *registry
}

// New constructs a Library from opts. Safe for concurrent use once
// constructed.
func New(opts Options) *Library {
	newFn := opts.NewEngine
	if newFn == nil {
		newFn = newPlatformEngine
	}

	return &Library{
		opts:     opts,
		engine:   newEngineHolder(newFn),
		registry: newRegistry(),
	}
}

// Attach opens pid through the engine and registers it under a fresh
// handle. Returns [ErrProcessAlreadyAttached] if pid is already attached.
func (l *Library) Attach(ctx context.Context, pid uint32) (Handle, error) {
	return l.registry.attach(ctx, l.engine, pid)
}

// Detach removes pid's Target from the registry and releases it through
// the engine. Returns [ErrProcessNotAttached] if pid has no live Target.
func (l *Library) Detach(pid uint32) (int, error) {
	return l.registry.detach(pid)
}

// CollectPages enumerates handle's full, unfiltered virtual-memory map.
func (l *Library) CollectPages(ctx context.Context, handle Handle) ([]Region, error) {
	target, err := l.registry.resolve(handle)
	if err != nil {
		return nil, err
	}

	return target.CollectMemoryInfo(ctx)
}

// Scan enumerates handle's memory map, filters it by mask, and searches
// the surviving regions for pattern.
func (l *Library) Scan(ctx context.Context, handle Handle, pattern Pattern, mask CapabilityMask) ([]uintptr, error) {
	target, err := l.registry.resolve(handle)
	if err != nil {
		return nil, err
	}

	regions, err := target.CollectMemoryInfo(ctx)
	if err != nil {
		return nil, err
	}

	eligible := FilterRegions(regions, mask, l.opts.AddressCeiling)

	return Scan(ctx, target, eligible, pattern, l.opts.WorkerPoolSize, l.opts.Logger)
}

// ReadBytes reads up to size bytes at address from handle's target.
func (l *Library) ReadBytes(ctx context.Context, handle Handle, address uintptr, size int) ([]byte, error) {
	target, err := l.registry.resolve(handle)
	if err != nil {
		return nil, err
	}

	return ReadBytes(ctx, target, address, size)
}

// WriteMemory writes bytes at address on handle's target.
func (l *Library) WriteMemory(ctx context.Context, handle Handle, address uintptr, bytes []byte) (int, error) {
	target, err := l.registry.resolve(handle)
	if err != nil {
		return 0, err
	}

	return WriteMemory(ctx, target, address, bytes)
}
