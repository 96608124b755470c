// Package bridge calls the SDK discovery entry points of a loaded host
// library and copies their callback payloads into Go values.
//
// The host library reports results only through callbacks, and the memory
// it hands to a callback is valid only while that callback runs. Every
// string, array and record is therefore copied before the callback returns;
// nothing returned by this package points into native memory.
//
// Strings cross the boundary in the platform encoding: NUL terminated
// UTF-16 on Windows, NUL terminated UTF-8 elsewhere. Inputs containing NUL
// are rejected before any native call. A native string that cannot be
// decoded degrades to the empty string and is logged at debug level.
//
// Status codes are passed through unchanged. ResolveSdk reports a non-zero
// status in its result; GetAvailableSdks and GetEnvironmentInfo return an
// error whose code can be recovered with errors.StatusCode.
package bridge
