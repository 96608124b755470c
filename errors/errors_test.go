package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindLoadFailed,
				Path:   "/opt/dotnet/host/fxr/8.0.0/libhostfxr.so",
				Detail: "load library",
			},
			contains: []string{"[load]", "load_failed", "/opt/dotnet/host/fxr/8.0.0/libhostfxr.so", "load library"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindNotAVersion,
			},
			contains: []string{"[parse]", "not_a_version"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLocate,
				Kind:   KindEnvironmentUnavailable,
				Detail: "executable path",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[locate]", "environment_unavailable", "executable path", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := LoadFailed("/x/libhostfxr.so", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause")
	}
}

func TestError_Is(t *testing.T) {
	err := NotFound(PhaseLocate, "host library", "/usr/share/dotnet/host/fxr")

	if !err.Is(&Error{Phase: PhaseLocate, Kind: KindNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseLoad, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseLocate, Kind: KindLoadFailed}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("sentinel without phase should match on kind")
	}
	if errors.Is(err, ErrLoadFailed) {
		t.Error("sentinel of another kind should not match")
	}

	wrapped := fmt.Errorf("locate: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseBind, KindSymbolMissing).
		Path("hostfxr_get_dotnet_environment_info").
		Value(42).
		Cause(cause).
		Detail("expected %s", "export").
		Build()

	if err.Phase != PhaseBind {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseBind)
	}
	if err.Kind != KindSymbolMissing {
		t.Errorf("Kind = %v, want %v", err.Kind, KindSymbolMissing)
	}
	if err.Path != "hostfxr_get_dotnet_environment_info" {
		t.Errorf("Path = %q", err.Path)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if err.Detail != "expected export" {
		t.Errorf("Detail = %q, want %q", err.Detail, "expected export")
	}
	if !errors.Is(err, cause) {
		t.Error("Cause not set")
	}
}

func TestNativeStatus(t *testing.T) {
	err := NativeStatus("hostfxr_get_available_sdks", int32(-2147450751))

	if !strings.Contains(err.Error(), "0x80008081") {
		t.Errorf("status not rendered as hex: %q", err.Error())
	}

	code, ok := StatusCode(fmt.Errorf("sdks: %w", err))
	if !ok {
		t.Fatal("StatusCode did not find native status")
	}
	if code != -2147450751 {
		t.Errorf("code = %d, want %d", code, -2147450751)
	}

	if _, ok := StatusCode(NotAVersion("garbage", "no digits")); ok {
		t.Error("StatusCode should not report a code for other kinds")
	}
	if _, ok := StatusCode(nil); ok {
		t.Error("StatusCode(nil) should report false")
	}
}

func TestNotAVersion(t *testing.T) {
	err := NotAVersion("garbage", "release part is not numeric")
	if err.Phase != PhaseParse || err.Kind != KindNotAVersion {
		t.Errorf("got %s/%s", err.Phase, err.Kind)
	}
	if err.Value != "garbage" {
		t.Errorf("Value = %v, want garbage", err.Value)
	}
	if !strings.Contains(err.Error(), `"garbage"`) {
		t.Errorf("message %q should quote the name", err.Error())
	}
}
