//go:build darwin || freebsd || linux

package loader

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/wippyai/hostfxr-go/errors"
)

type dlLibrary struct {
	path   string
	handle uintptr
}

// openPlatform loads path with RTLD_LOCAL so its exports never satisfy
// lookups for other modules, and a second copy of the library elsewhere on
// disk cannot be picked up by name.
func openPlatform(path string) (Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, err
	}
	if handle == 0 {
		return nil, fmt.Errorf("dlopen returned a nil handle for %s", path)
	}
	return &dlLibrary{path: path, handle: handle}, nil
}

func (l *dlLibrary) Path() string { return l.path }

func (l *dlLibrary) Symbol(name string) (uintptr, error) {
	sym, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, errors.SymbolMissing(name, err)
	}
	return sym, nil
}
