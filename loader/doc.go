// Package loader maps the host library into the process exactly once.
//
// The host library keeps process-global state, so only one copy may ever be
// loaded. Default returns the process-wide Loader; its first successful
// EnsureLoaded fixes which file is used for the rest of the process and
// nothing is ever unloaded.
//
// Entry points are looked up on the loaded handle itself (dlsym on the
// handle, GetProcAddress on the module), so another library with the same
// name elsewhere on the machine can never satisfy them. On unix the library
// is opened RTLD_LOCAL for the same reason.
//
// On Windows the package also preloads <root>/<arch>/hostfxr.dll during
// initialization with a search-path-restricted LoadLibraryEx. Failures there
// are ignored and show up later as a LoadFailed from EnsureLoaded.
package loader
