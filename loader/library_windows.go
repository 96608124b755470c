//go:build windows

package loader

import (
	"golang.org/x/sys/windows"

	"github.com/wippyai/hostfxr-go/errors"
	"github.com/wippyai/hostfxr-go/locator"
)

type dllLibrary struct {
	path   string
	handle windows.Handle
}

func init() {
	preload()
}

// preload maps the architecture subfolder copy of hostfxr.dll as soon as the
// package is initialized, restricting the search to the DLL's own directory
// and the default safe directories. Errors are ignored here; a
// missing or broken library surfaces through EnsureLoaded instead.
func preload() {
	hc, err := locator.CurrentHostContext()
	if err != nil || hc.HasOverride() {
		return
	}
	loc, err := locator.ArchSubfolder{}.Locate(hc)
	if err != nil {
		return
	}
	_, _ = windows.LoadLibraryEx(loc.Path, 0,
		windows.LOAD_LIBRARY_SEARCH_DLL_LOAD_DIR|windows.LOAD_LIBRARY_SEARCH_DEFAULT_DIRS)
}

// openPlatform loads path with the altered search order so dependencies are
// resolved next to the DLL rather than from the application directory.
func openPlatform(path string) (Library, error) {
	handle, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return nil, err
	}
	return &dllLibrary{path: path, handle: handle}, nil
}

func (l *dllLibrary) Path() string { return l.path }

func (l *dllLibrary) Symbol(name string) (uintptr, error) {
	proc, err := windows.GetProcAddress(l.handle, name)
	if err != nil {
		return 0, errors.SymbolMissing(name, err)
	}
	return proc, nil
}
