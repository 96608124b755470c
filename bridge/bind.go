package bridge

import (
	"runtime"

	"github.com/wippyai/hostfxr-go/errors"
)

// Symbols resolves exported entry points of a loaded library.
type Symbols interface {
	Symbol(name string) (uintptr, error)
}

// Bind resolves the host library entry points from syms and returns a
// Bridge using the platform string encoding. hostfxr_resolve_sdk2 and
// hostfxr_get_available_sdks are required; hostfxr_get_dotnet_environment_info
// is absent from older host libraries and only fails GetEnvironmentInfo.
func Bind(syms Symbols) (*Bridge, error) {
	if syms == nil {
		return nil, errors.NotInitialized(errors.PhaseBind, "host library")
	}
	n, err := bindNative(syms)
	if err != nil {
		return nil, err
	}
	return New(n, PlatformEncoding(runtime.GOOS)), nil
}
