package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unsafe"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/hostfxr-go/bridge"
	hferrors "github.com/wippyai/hostfxr-go/errors"
	"github.com/wippyai/hostfxr-go/locator"
)

// stubNative answers every entry point from Go memory using UTF-8 strings.
type stubNative struct {
	resolved string
	status   int32
	sdks     []string
	info     bridge.EnvironmentInfo
}

func cstring(s string) unsafe.Pointer {
	buf, err := bridge.UTF8.Encode(s)
	if err != nil {
		panic(err)
	}
	return unsafe.Pointer(&buf[0])
}

func (s *stubNative) ResolveSdk2(_, _ unsafe.Pointer, _ int32, fn func(int32, unsafe.Pointer)) (int32, error) {
	if s.resolved != "" {
		fn(0, cstring(s.resolved))
	}
	return s.status, nil
}

func (s *stubNative) GetAvailableSdks(_ unsafe.Pointer, fn func(int32, unsafe.Pointer)) (int32, error) {
	if len(s.sdks) == 0 {
		return 0, nil
	}
	ptrs := make([]unsafe.Pointer, len(s.sdks))
	for i, d := range s.sdks {
		ptrs[i] = cstring(d)
	}
	fn(int32(len(ptrs)), unsafe.Pointer(&ptrs[0]))
	return 0, nil
}

func (s *stubNative) GetEnvironmentInfo(_ unsafe.Pointer, _ func(unsafe.Pointer)) (int32, error) {
	return 0, hferrors.SymbolMissing(bridge.SymbolGetDotnetEnvironmentInfo, nil)
}

func testApp(native bridge.Native) *app {
	a := newApp()
	a.currentContext = func() (locator.HostContext, error) {
		return locator.HostContext{InstallRoot: "/opt/dotnet", OS: "linux", PointerBits: 64}, nil
	}
	a.open = func(locator.HostContext) (*bridge.Bridge, error) {
		if native == nil {
			return nil, hferrors.LoadFailed("/opt/dotnet/host/fxr/8.0.0/libhostfxr.so", errors.New("no such file"))
		}
		return bridge.New(native, bridge.UTF8), nil
	}
	return a
}

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := a.rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLocateOverrideJSON(t *testing.T) {
	lib := filepath.Join(t.TempDir(), "libhostfxr.so")
	out, err := execute(t, testApp(nil), "locate", "--hostfxr-path", lib, "--json")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}

	var got locateView
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Strategy != locator.StrategyDirectPath || got.Path != lib {
		t.Errorf("locate = %+v", got)
	}
}

func TestLocateAllListsCandidates(t *testing.T) {
	root := t.TempDir()
	for _, v := range []string{"6.0.36", "8.0.11", "9.0.0"} {
		dir := filepath.Join(locator.FxrDir(root), v)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if v == "9.0.0" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, "libhostfxr.so"), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := execute(t, testApp(nil), "locate", "--root", root, "--all", "--json")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	var got locateView
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Strategy != locator.StrategyVersionScan || got.Version != "8.0.11" {
		t.Errorf("locate = %+v, want version-scan 8.0.11", got)
	}
	want := []candidateView{
		{Version: "9.0.0", Dir: filepath.Join(locator.FxrDir(root), "9.0.0"), HasLibrary: false},
		{Version: "8.0.11", Dir: filepath.Join(locator.FxrDir(root), "8.0.11"), HasLibrary: true},
		{Version: "6.0.36", Dir: filepath.Join(locator.FxrDir(root), "6.0.36"), HasLibrary: true},
	}
	if len(got.Candidates) != len(want) {
		t.Fatalf("candidates = %+v", got.Candidates)
	}
	for i := range want {
		if got.Candidates[i] != want[i] {
			t.Errorf("candidate %d = %+v, want %+v", i, got.Candidates[i], want[i])
		}
	}
}

func TestLocateNotFound(t *testing.T) {
	_, err := execute(t, testApp(nil), "locate", "--root", t.TempDir())
	if !errors.Is(err, hferrors.ErrNotFound) {
		t.Errorf("error = %v, want not_found", err)
	}
}

func TestSdksPlain(t *testing.T) {
	native := &stubNative{sdks: []string{"/opt/dotnet/sdk/8.0.404", "/opt/dotnet/sdk/9.0.100"}}
	out, err := execute(t, testApp(native), "sdks")
	if err != nil {
		t.Fatalf("sdks: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("output = %q", out)
	}
	if !strings.HasPrefix(lines[0], "8.0.404") || !strings.HasSuffix(lines[0], "/opt/dotnet/sdk/8.0.404") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "9.0.100") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestSdksJSONEmpty(t *testing.T) {
	out, err := execute(t, testApp(&stubNative{}), "sdks", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("output = %q, want []", out)
	}
}

func TestResolve(t *testing.T) {
	native := &stubNative{resolved: "/opt/dotnet/sdk/8.0.404"}
	out, err := execute(t, testApp(native), "resolve", "--working-dir", "/src", "--json")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	var got bridge.ResolveResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.ResolvedSdkDir != "/opt/dotnet/sdk/8.0.404" {
		t.Errorf("result = %+v", got)
	}
}

func TestResolveFailureExitsWithError(t *testing.T) {
	native := &stubNative{status: -2147450735}
	out, err := execute(t, testApp(native), "resolve", "--working-dir", "/src")
	if err == nil || !strings.Contains(err.Error(), "no SDK resolved") {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(out, "resolved sdk:") {
		t.Errorf("result not printed before failing: %q", out)
	}
}

func TestInfoPropagatesMissingSymbol(t *testing.T) {
	_, err := execute(t, testApp(&stubNative{}), "info")
	if !errors.Is(err, hferrors.ErrSymbolMissing) {
		t.Errorf("error = %v, want symbol_missing", err)
	}
}

func TestOpenFailure(t *testing.T) {
	_, err := execute(t, testApp(nil), "sdks")
	if !errors.Is(err, hferrors.ErrLoadFailed) {
		t.Errorf("error = %v, want load_failed", err)
	}
}

func TestHostContextFallsBackWhenExecutableUnknown(t *testing.T) {
	a := newApp()
	a.currentContext = func() (locator.HostContext, error) {
		return locator.HostContext{}, hferrors.EnvironmentUnavailable("current executable path", errors.New("unknown"))
	}
	cmd := a.rootCmd()
	root := t.TempDir()
	if err := cmd.PersistentFlags().Set(keyRoot, root); err != nil {
		t.Fatal(err)
	}

	hc, err := a.hostContext()
	if err != nil {
		t.Fatalf("hostContext: %v", err)
	}
	if hc.InstallRoot != root || hc.OS == "" || hc.PointerBits == 0 {
		t.Errorf("hostContext = %+v", hc)
	}

	a = newApp()
	a.currentContext = func() (locator.HostContext, error) {
		return locator.HostContext{}, hferrors.EnvironmentUnavailable("current executable path", nil)
	}
	a.rootCmd()
	if _, err := a.hostContext(); !errors.Is(err, hferrors.ErrEnvironmentUnavailable) {
		t.Errorf("error = %v, want environment_unavailable", err)
	}
}

func TestInteractiveModel(t *testing.T) {
	info := bridge.EnvironmentInfo{
		HostFxrVersion: "8.0.11",
		Sdks:           []bridge.SdkInfo{{Version: "8.0.404", Path: "/opt/dotnet/sdk"}},
		Frameworks: []bridge.FrameworkInfo{
			{Name: "Microsoft.NETCore.App", Version: "8.0.11", Path: "/opt/dotnet/shared/Microsoft.NETCore.App"},
		},
	}
	m := newInteractiveModel("/opt/dotnet",
		func() (bridge.EnvironmentInfo, error) { return info, nil },
		func() (bridge.ResolveResult, error) {
			return bridge.ResolveResult{ResolvedSdkDir: "/opt/dotnet/sdk/8.0.404"}, nil
		},
	)

	if v := m.View(); !strings.Contains(v, "Querying") {
		t.Errorf("initial view = %q", v)
	}

	m.Update(m.Init()())
	v := m.View()
	for _, want := range []string{"8.0.11", "SDKs (1)", "Frameworks (1)", "8.0.404"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != paneFrameworks {
		t.Errorf("focus = %d after tab", m.focus)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("r produced no command")
	}
	m.Update(cmd())
	if !strings.Contains(m.View(), "Resolved SDK") {
		t.Error("resolved SDK not shown")
	}
}

func TestInteractiveModelLoadError(t *testing.T) {
	m := newInteractiveModel("/opt/dotnet",
		func() (bridge.EnvironmentInfo, error) {
			return bridge.EnvironmentInfo{}, hferrors.NativeStatus(bridge.SymbolGetDotnetEnvironmentInfo, 1)
		},
		nil,
	)
	m.Update(m.Init()())
	if !strings.Contains(m.View(), "Error") {
		t.Errorf("view = %q", m.View())
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}); cmd != nil {
		t.Error("resolve offered before info loaded")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	lib := filepath.Join(t.TempDir(), "libhostfxr.so")
	t.Setenv(envHostFxrPath, lib)
	t.Setenv("HOSTFXR_JSON", "true")

	out, err := execute(t, testApp(nil), "locate")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	var got locateView
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Strategy != locator.StrategyDirectPath || got.Path != lib {
		t.Errorf("locate = %+v, want direct path %s", got, lib)
	}
}

func TestHelpListsEnvironmentVariables(t *testing.T) {
	long := newRootCmd().Long
	for _, name := range []string{"HOSTFXR_ROOT", envHostFxrPath, "HOSTFXR_VERBOSE", "HOSTFXR_JSON"} {
		if !strings.Contains(long, name) {
			t.Errorf("help does not mention %s", name)
		}
	}
}
