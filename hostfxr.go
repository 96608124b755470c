package hostfxr

import (
	"go.uber.org/zap"

	"github.com/wippyai/hostfxr-go/bridge"
	"github.com/wippyai/hostfxr-go/loader"
	"github.com/wippyai/hostfxr-go/locator"
)

// LocateAndLoad finds the host library for hc and loads it into the process
// through the default loader. It is a no-op once a library is loaded.
func LocateAndLoad(hc locator.HostContext) error {
	return locateAndLoad(loader.Default(), hc)
}

// Open loads the host library for hc, if needed, and binds its entry points.
func Open(hc locator.HostContext) (*bridge.Bridge, error) {
	return open(loader.Default(), hc)
}

func locateAndLoad(l *loader.Loader, hc locator.HostContext) error {
	if l.Loaded() {
		return nil
	}
	loc, err := locator.Locate(hc)
	if err != nil {
		return err
	}
	return l.EnsureLoaded(loc)
}

func open(l *loader.Loader, hc locator.HostContext) (*bridge.Bridge, error) {
	if err := locateAndLoad(l, hc); err != nil {
		return nil, err
	}
	lib, err := l.Library()
	if err != nil {
		return nil, err
	}
	return bridge.Bind(lib)
}

// SetLogger configures the logger of every package in this module.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	locator.SetLogger(l.Named("locator"))
	loader.SetLogger(l.Named("loader"))
	bridge.SetLogger(l.Named("bridge"))
}
