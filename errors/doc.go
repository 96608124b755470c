// Package errors provides structured error types for the hostfxr bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending path or entry point, an optional value
// (for example a native status code) and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLocate, errors.KindNotFound).
//		Path("/usr/share/dotnet/host/fxr").
//		Detail("no candidate contains %s", "libhostfxr.so").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.LoadFailed(path, cause)
//	err := errors.NativeStatus("hostfxr_get_available_sdks", code)
//
// All errors implement the standard error interface and support errors.Is/As.
// The ErrNotFound style sentinels match on kind regardless of phase.
package errors
