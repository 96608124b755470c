package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse  Phase = "parse"  // version directory names
	PhaseLocate Phase = "locate" // library path resolution
	PhaseLoad   Phase = "load"   // library loading
	PhaseBind   Phase = "bind"   // entry point resolution
	PhaseCall   Phase = "call"   // native calls
	PhaseDecode Phase = "decode" // native to Go conversion
)

// Kind categorizes the error
type Kind string

const (
	KindNotAVersion            Kind = "not_a_version"
	KindNotFound               Kind = "not_found"
	KindEnvironmentUnavailable Kind = "environment_unavailable"
	KindLoadFailed             Kind = "load_failed"
	KindNotInitialized         Kind = "not_initialized"
	KindSymbolMissing          Kind = "symbol_missing"
	KindNativeStatus           Kind = "native_status"
	KindInvalidInput           Kind = "invalid_input"
	KindInvalidEncoding        Kind = "invalid_encoding"
	KindUnsupported            Kind = "unsupported"
)

// Sentinel targets for errors.Is. Matching ignores the phase.
var (
	ErrNotAVersion            = &Error{Kind: KindNotAVersion}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrEnvironmentUnavailable = &Error{Kind: KindEnvironmentUnavailable}
	ErrLoadFailed             = &Error{Kind: KindLoadFailed}
	ErrSymbolMissing          = &Error{Kind: KindSymbolMissing}
	ErrNativeStatus           = &Error{Kind: KindNativeStatus}
	ErrUnsupported            = &Error{Kind: KindUnsupported}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Path   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the filesystem path or entry point the error refers to
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotAVersion creates an error for a directory name that is not a version
func NotAVersion(name string, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindNotAVersion,
		Value:  name,
		Detail: fmt.Sprintf("%q: %s", name, detail),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, path string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Path:   path,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// EnvironmentUnavailable creates an error for an undeterminable host environment
func EnvironmentUnavailable(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLocate,
		Kind:   KindEnvironmentUnavailable,
		Detail: detail,
		Cause:  cause,
	}
}

// LoadFailed creates a library loading error
func LoadFailed(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindLoadFailed,
		Path:   path,
		Detail: "load library",
		Cause:  cause,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// SymbolMissing creates an error for an entry point absent from the library
func SymbolMissing(symbol string, cause error) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindSymbolMissing,
		Path:   symbol,
		Detail: "entry point not exported",
		Cause:  cause,
	}
}

// NativeStatus creates an error carrying a native status code unchanged
func NativeStatus(entryPoint string, code int32) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindNativeStatus,
		Path:   entryPoint,
		Value:  code,
		Detail: fmt.Sprintf("status %#x", uint32(code)),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidEncoding creates an error for a native string that cannot be decoded
func InvalidEncoding(encoding string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidEncoding,
		Detail: fmt.Sprintf("invalid %s string", encoding),
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// StatusCode extracts the native status code from a KindNativeStatus error
// anywhere in err's chain.
func StatusCode(err error) (int32, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == KindNativeStatus {
			code, ok := e.Value.(int32)
			return code, ok
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}
