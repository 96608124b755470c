//go:build !darwin && !freebsd && !linux && !windows

package loader

import (
	"runtime"

	"github.com/wippyai/hostfxr-go/errors"
)

func openPlatform(path string) (Library, error) {
	return nil, errors.Unsupported(errors.PhaseLoad, "native library loading on "+runtime.GOOS)
}
