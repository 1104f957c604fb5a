package memspy

import (
	"context"
	"errors"
	"sync"
)

var errFakeOpenFailed = errors.New("fake engine: open failed")

// fakeEngine is an in-memory Engine for tests: no real process I/O, just a
// byte slab per pid that ReadMemory/WriteMemory index into.
type fakeEngine struct {
	mu      sync.Mutex
	opens   int
	regions map[uint32][]Region
	memory  map[uint32][]byte
	detach    map[uint32]bool
	failPid   map[uint32]bool
	failWrite map[uint32]bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		regions: make(map[uint32][]Region),
		memory:  make(map[uint32][]byte),
		detach:  make(map[uint32]bool),
		failPid: make(map[uint32]bool),
	}
}

func (e *fakeEngine) Open(_ context.Context, pid uint32) (Target, error) {
	e.mu.Lock()
	e.opens++
	fail := e.failPid[pid]
	e.mu.Unlock()

	if fail {
		return nil, errFakeOpenFailed
	}

	return &fakeTarget{engine: e, pid: pid}, nil
}

type fakeTarget struct {
	engine *fakeEngine
	pid    uint32
}

func (t *fakeTarget) Pid() uint32 { return t.pid }

func (t *fakeTarget) CollectMemoryInfo(_ context.Context) ([]Region, error) {
	t.engine.mu.Lock()
	defer t.engine.mu.Unlock()
	return t.engine.regions[t.pid], nil
}

func (t *fakeTarget) ReadMemory(_ context.Context, address uintptr, dest []byte) ([]byte, error) {
	t.engine.mu.Lock()
	defer t.engine.mu.Unlock()

	mem := t.engine.memory[t.pid]
	if int(address) >= len(mem) {
		return nil, nil
	}

	end := int(address) + len(dest)
	if end > len(mem) {
		end = len(mem)
	}

	n := copy(dest, mem[address:end])
	return dest[:n], nil
}

func (t *fakeTarget) WriteMemory(_ context.Context, address uintptr, bytes []byte) (int, error) {
	t.engine.mu.Lock()
	defer t.engine.mu.Unlock()

	if t.engine.failWrite[t.pid] {
		return 0, nil
	}

	mem := t.engine.memory[t.pid]
	end := int(address) + len(bytes)
	if end > len(mem) {
		grown := make([]byte, end)
		copy(grown, mem)
		mem = grown
	}

	n := copy(mem[address:], bytes)
	t.engine.memory[t.pid] = mem

	return n, nil
}

func (t *fakeTarget) Detach() error {
	t.engine.mu.Lock()
	defer t.engine.mu.Unlock()
	t.engine.detach[t.pid] = true
	return nil
}
