// Command libmem builds memspy as a C-callable shared library
// (-buildmode=c-shared). Every exported function here is a thin adapter:
// marshal C arguments into Go, call into [memspy.Library], marshal the
// [ffi.Result] back into a CallResult.
//
// Build with:
//
//	go build -buildmode=c-shared -o libmem.so ./cmd/libmem
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef struct CallResult {
	int64_t result; // payload, or a pointer cast to int64_t
	char* error;    // localized message, or NULL on success
} CallResult;

typedef struct ByteBuffer {
	uint8_t* data;
	size_t count;
	size_t capacity;
	size_t byte_size;
} ByteBuffer;

typedef struct RegionDescriptor {
	uintptr_t base;
	uintptr_t size;
	uint32_t flags;
	char* type;
	char* protect;
	char* usage;
	uintptr_t alloc_base;
} RegionDescriptor;
*/
import "C"

import (
	"os"
	"sync"
	"unsafe"

	"github.com/memspy-dev/memspy/internal/config"
	"github.com/memspy-dev/memspy/internal/obslog"
	"github.com/memspy-dev/memspy/pkg/memspy"
	"github.com/memspy-dev/memspy/pkg/memspy/ffi"
)

var (
	initOnce sync.Once
	lib      *memspy.Library
	logger   *obslog.Logger
	disposer *ffi.Disposer

	localeMu sync.RWMutex
	locale   = "en"
)

func initLibrary() {
	initOnce.Do(func() {
		logger = obslog.New()
		disposer = ffi.NewDisposer()

		wd, _ := os.Getwd()
		cfg, _, err := config.Load(wd, "", config.Config{}, os.Environ())
		if err != nil {
			cfg = config.Default()
		}

		setLocale(cfg.Locale)

		lib = memspy.New(memspy.Options{
			AddressCeiling: uintptr(cfg.AddressCeiling),
			WorkerPoolSize: cfg.WorkerPoolSize,
			Logger:         logger,
		})
	})
}

func setLocale(l string) {
	if l == "" {
		return
	}
	localeMu.Lock()
	locale = l
	localeMu.Unlock()
}

func currentLocale() string {
	localeMu.RLock()
	defer localeMu.RUnlock()
	return locale
}

// cResult converts an ffi.Result into a heap-allocated C CallResult. The
// caller on the foreign side owns the returned pointer and must release it
// via free_call_result.
func cResult(r ffi.Result) *C.CallResult {
	out := (*C.CallResult)(C.malloc(C.size_t(unsafe.Sizeof(C.CallResult{}))))
	disposer.Track(unsafe.Pointer(out))

	if r.IsErr() {
		msg := ffi.LocalizedError(currentLocale(), r.Error())
		out.result = 0
		out.error = C.CString(msg)
		disposer.Track(unsafe.Pointer(out.error))
		return out
	}

	out.error = nil
	out.result = payloadAsInt64(r)
	return out
}

func payloadAsInt64(r ffi.Result) C.int64_t {
	if h, err := r.IntoHandle(); err == nil {
		return C.int64_t(h)
	}
	if n, err := r.IntoInt(); err == nil {
		return C.int64_t(n)
	}
	if b, err := r.IntoBool(); err == nil {
		if b {
			return 1
		}
		return 0
	}
	return 0
}

func errResult(err error) *C.CallResult {
	return cResult(ffi.Err(err))
}

func main() {}
