package locator

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/wippyai/hostfxr-go/errors"
)

// Environment variables consulted by CurrentHostContext.
const (
	EnvHostFxrPath = "DOTNET_HOSTFXR_PATH"
	EnvDotnetRoot  = "DOTNET_ROOT"
)

// HostContext describes the process the host library is being located for.
type HostContext struct {
	// InstallRoot is the directory holding either the architecture
	// subfolders or the host/fxr/<version> tree.
	InstallRoot string
	// OS is a GOOS value.
	OS string
	// PointerBits is the pointer width of the running process, 32 or 64.
	PointerBits int
	// OverridePath is a library path already resolved by an enclosing
	// process. When set it is used as-is.
	OverridePath string
}

// HasOverride reports whether an externally supplied library path is present.
func (hc HostContext) HasOverride() bool {
	return hc.OverridePath != ""
}

// Arch returns the architecture label for the context's pointer width.
func (hc HostContext) Arch() string {
	return ArchLabel(hc.PointerBits)
}

// LibraryFileName returns the host library file name for the context's OS.
func (hc HostContext) LibraryFileName() string {
	return LibraryFileName(hc.OS)
}

// CurrentHostContext describes the running process. The install root comes
// from DOTNET_ROOT_<ARCH>, then DOTNET_ROOT, then the directory of the
// current executable.
func CurrentHostContext() (HostContext, error) {
	hc := HostContext{
		OS:           runtime.GOOS,
		PointerBits:  strconv.IntSize,
		OverridePath: os.Getenv(EnvHostFxrPath),
	}

	root, err := installRoot(hc.PointerBits, os.Getenv, os.Executable)
	if err != nil {
		return HostContext{}, err
	}
	hc.InstallRoot = root
	return hc, nil
}

func installRoot(bits int, getenv func(string) string, executable func() (string, error)) (string, error) {
	for _, key := range []string{archRootVar(bits), EnvDotnetRoot} {
		if dir := getenv(key); dir != "" {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return "", errors.EnvironmentUnavailable("resolve "+key, err)
			}
			return abs, nil
		}
	}

	exe, err := executable()
	if err != nil {
		return "", errors.EnvironmentUnavailable("current executable path", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func archRootVar(bits int) string {
	if bits == 64 {
		return EnvDotnetRoot + "_X64"
	}
	return EnvDotnetRoot + "_X86"
}

// ArchLabel maps a pointer width to the architecture subfolder name.
func ArchLabel(bits int) string {
	if bits == 64 {
		return "x64"
	}
	return "x86"
}

// LibraryFileName returns the host library file name used on goos.
func LibraryFileName(goos string) string {
	switch goos {
	case "windows":
		return "hostfxr.dll"
	case "darwin", "ios":
		return "libhostfxr.dylib"
	default:
		return "libhostfxr.so"
	}
}
