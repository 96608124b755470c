//go:build (darwin || freebsd || linux || windows) && (amd64 || arm64)

package bridge

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/wippyai/hostfxr-go/errors"
)

// Callbacks created by purego.NewCallback are never released and their
// number is capped, so each entry point gets one trampoline for the life of
// the process. resolve_sdk2 and get_available_sdks callbacks carry no
// context argument; a call window per entry point routes them to the single
// in-flight Go handler. The environment callback has a context argument and
// is routed through a handle table instead.

type callWindow[F any] struct {
	fn F
	mu sync.Mutex
}

var (
	resolveWindow callWindow[func(int32, unsafe.Pointer)]
	sdksWindow    callWindow[func(int32, unsafe.Pointer)]
	envHandlers   handleTable[func(unsafe.Pointer)]

	trampolines struct {
		resolve uintptr
		sdks    uintptr
		env     uintptr
	}
	trampolinesOnce sync.Once
)

// Trampolines return uintptr because Windows callbacks need a pointer sized
// result; the native side declares them void. Integer arguments arrive in
// full registers and are truncated to their C width.

func resolveTrampoline(key uintptr, value unsafe.Pointer) uintptr {
	if fn := resolveWindow.fn; fn != nil {
		fn(int32(key), value)
	}
	return 0
}

func sdksTrampoline(count uintptr, dirs unsafe.Pointer) uintptr {
	if fn := sdksWindow.fn; fn != nil {
		fn(int32(count), dirs)
	}
	return 0
}

func envTrampoline(info unsafe.Pointer, ctx uintptr) uintptr {
	if fn, ok := envHandlers.get(ctx); ok {
		fn(info)
	}
	return 0
}

func initTrampolines() {
	trampolinesOnce.Do(func() {
		trampolines.resolve = purego.NewCallback(resolveTrampoline)
		trampolines.sdks = purego.NewCallback(sdksTrampoline)
		trampolines.env = purego.NewCallback(envTrampoline)
	})
}

type pureNative struct {
	resolveSdk2      func(exeDir, workingDir unsafe.Pointer, flags int32, cb uintptr) int32
	getAvailableSdks func(exeDir unsafe.Pointer, cb uintptr) int32
	getEnvInfo       func(root, reserved unsafe.Pointer, cb uintptr, ctx uintptr) int32
	envErr           error
}

func bindNative(syms Symbols) (Native, error) {
	n := &pureNative{}

	sym, err := syms.Symbol(SymbolResolveSdk2)
	if err != nil {
		return nil, asSymbolMissing(SymbolResolveSdk2, err)
	}
	purego.RegisterFunc(&n.resolveSdk2, sym)

	sym, err = syms.Symbol(SymbolGetAvailableSdks)
	if err != nil {
		return nil, asSymbolMissing(SymbolGetAvailableSdks, err)
	}
	purego.RegisterFunc(&n.getAvailableSdks, sym)

	if sym, err = syms.Symbol(SymbolGetDotnetEnvironmentInfo); err != nil {
		n.envErr = asSymbolMissing(SymbolGetDotnetEnvironmentInfo, err)
	} else {
		purego.RegisterFunc(&n.getEnvInfo, sym)
	}

	initTrampolines()
	return n, nil
}

func asSymbolMissing(name string, err error) error {
	if he, ok := err.(*errors.Error); ok && he.Kind == errors.KindSymbolMissing {
		return he
	}
	return errors.SymbolMissing(name, err)
}

func (n *pureNative) ResolveSdk2(exeDir, workingDir unsafe.Pointer, flags int32, fn func(int32, unsafe.Pointer)) (int32, error) {
	resolveWindow.mu.Lock()
	defer resolveWindow.mu.Unlock()

	resolveWindow.fn = fn
	defer func() { resolveWindow.fn = nil }()
	return n.resolveSdk2(exeDir, workingDir, flags, trampolines.resolve), nil
}

func (n *pureNative) GetAvailableSdks(exeDir unsafe.Pointer, fn func(int32, unsafe.Pointer)) (int32, error) {
	sdksWindow.mu.Lock()
	defer sdksWindow.mu.Unlock()

	sdksWindow.fn = fn
	defer func() { sdksWindow.fn = nil }()
	return n.getAvailableSdks(exeDir, trampolines.sdks), nil
}

func (n *pureNative) GetEnvironmentInfo(root unsafe.Pointer, fn func(unsafe.Pointer)) (int32, error) {
	if n.getEnvInfo == nil {
		return 0, n.envErr
	}
	id := envHandlers.put(fn)
	defer envHandlers.delete(id)
	return n.getEnvInfo(root, nil, trampolines.env, id), nil
}
