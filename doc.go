// Package hostfxr locates, loads and calls the .NET host resolver library
// (hostfxr) from Go without cgo.
//
// The library is organized into several packages with distinct responsibilities:
//
//	hostfxr/         Root package tying location, loading and binding together
//	├── version/     Installed version directory names and their ordering
//	├── locator/     Host context and per-platform library location strategies
//	├── loader/      Process-wide, load-once native library loader
//	├── bridge/      Typed calls into the SDK discovery entry points
//	├── errors/      Structured error types for debugging
//	└── cmd/hostfxr/ Command line front end and interactive viewer
//
// # Quick Start
//
// Locate the host library for the running process and list installed SDKs:
//
//	hc, err := locator.CurrentHostContext()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b, err := hostfxr.Open(hc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dirs, err := b.GetAvailableSdks("/usr/share/dotnet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Resolve the SDK a project directory would use:
//
//	res, err := b.ResolveSdk("/usr/share/dotnet", "/src/app", bridge.DisallowPrerelease)
//	if res.Resolved() {
//	    fmt.Println(res.ResolvedSdkDir)
//	}
//
// # Location
//
// DOTNET_HOSTFXR_PATH names the library file directly. Otherwise the
// installation root comes from DOTNET_ROOT_X64 or DOTNET_ROOT_X86, then
// DOTNET_ROOT, then the directory of the running executable. On Windows the
// library is expected in an architecture subfolder of the root; on Linux,
// macOS and FreeBSD the newest version directory under host/fxr that holds
// the library wins.
//
// # Loading
//
// The host library is loaded at most once per process. Later calls with a
// different path are ignored once a load has succeeded. A failed path is not
// retried, but another path may be.
//
// # Error Handling
//
// Errors carry a phase and a kind:
//
//	if errors.Is(err, hferrors.ErrNotFound) {
//	    // no host library under the installation root
//	}
//	if code, ok := hferrors.StatusCode(err); ok {
//	    fmt.Printf("hostfxr returned %#x\n", uint32(code))
//	}
//
// # Logging
//
// Packages log through zap and are silent by default. Use SetLogger to
// route all of them to one logger.
package hostfxr
