//go:build !((darwin || freebsd || linux || windows) && (amd64 || arm64))

package bridge

import (
	"runtime"

	"github.com/wippyai/hostfxr-go/errors"
)

func bindNative(Symbols) (Native, error) {
	return nil, errors.Unsupported(errors.PhaseBind, "native callbacks on "+runtime.GOOS+"/"+runtime.GOARCH)
}
