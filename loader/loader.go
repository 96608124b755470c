package loader

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/hostfxr-go/errors"
	"github.com/wippyai/hostfxr-go/locator"
)

// Library is a loaded host library. Symbols are resolved against this
// specific module, never through the system search order.
type Library interface {
	Path() string
	Symbol(name string) (uintptr, error)
}

// Opener loads the library at path.
type Opener func(path string) (Library, error)

// Loader loads a host library at most once.
type Loader struct {
	open   Opener
	lib    Library
	failed map[string]error
	mu     sync.Mutex
}

// New creates a Loader that uses open for the actual load.
func New(open Opener) *Loader {
	return &Loader{
		open:   open,
		failed: make(map[string]error),
	}
}

var defaultLoader = sync.OnceValue(func() *Loader {
	return New(openPlatform)
})

// Default returns the process-wide loader backed by the platform opener.
func Default() *Loader {
	return defaultLoader()
}

// EnsureLoaded loads loc.Path unless a library is already loaded. Concurrent
// first calls perform a single load and observe the same outcome. A path
// that failed once keeps failing with the same error; another path may still
// be tried by the caller.
func (l *Loader) EnsureLoaded(loc locator.Location) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lib != nil {
		if loc.Path != l.lib.Path() {
			Logger().Debug("host library already loaded, ignoring other path",
				zap.String("loaded", l.lib.Path()), zap.String("requested", loc.Path))
		}
		return nil
	}
	if err, ok := l.failed[loc.Path]; ok {
		return err
	}

	lib, err := l.open(loc.Path)
	if err != nil {
		loadErr := errors.LoadFailed(loc.Path, err)
		l.failed[loc.Path] = loadErr
		Logger().Debug("host library load failed", zap.String("path", loc.Path), zap.Error(err))
		return loadErr
	}

	l.lib = lib
	Logger().Debug("host library loaded",
		zap.String("path", loc.Path), zap.String("strategy", loc.Strategy))
	return nil
}

// Library returns the loaded library.
func (l *Loader) Library() (Library, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lib == nil {
		return nil, errors.NotInitialized(errors.PhaseLoad, "host library")
	}
	return l.lib, nil
}

// Loaded reports whether a library has been loaded.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lib != nil
}
