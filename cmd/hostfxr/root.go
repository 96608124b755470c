package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	hostfxr "github.com/wippyai/hostfxr-go"
	"github.com/wippyai/hostfxr-go/bridge"
	"github.com/wippyai/hostfxr-go/locator"
)

// Global option keys. Each is also read from the environment: HOSTFXR_ROOT,
// HOSTFXR_PATH, HOSTFXR_VERBOSE and HOSTFXR_JSON.
const (
	keyRoot        = "root"
	keyHostFxrPath = "hostfxr-path"
	keyVerbose     = "verbose"
	keyJSON        = "json"

	envHostFxrPath = "HOSTFXR_PATH"
)

type app struct {
	v   *viper.Viper
	log *zap.Logger

	// open binds the host library; replaced in tests.
	open func(locator.HostContext) (*bridge.Bridge, error)
	// currentContext describes the running process; replaced in tests.
	currentContext func() (locator.HostContext, error)
}

func newApp() *app {
	return &app{
		v:              viper.New(),
		log:            zap.NewNop(),
		open:           hostfxr.Open,
		currentContext: locator.CurrentHostContext,
	}
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostfxr",
		Short: "Locate the .NET host resolver and query installed SDKs",
		Long: titleStyle.Render("hostfxr") + ` - locate the .NET host resolver and query installed SDKs

The host library is found from --hostfxr-path (or DOTNET_HOSTFXR_PATH) when
given, otherwise under the installation root: --root, DOTNET_ROOT_X64 or
DOTNET_ROOT_X86, DOTNET_ROOT, then the directory of this executable.

Global flags may also be set through the environment:
  HOSTFXR_ROOT      same as --root
  HOSTFXR_PATH      same as --hostfxr-path
  HOSTFXR_VERBOSE   same as --verbose
  HOSTFXR_JSON      same as --json

Examples:
  hostfxr locate --all        Show the library that would be loaded
  hostfxr resolve             Resolve the SDK for the current directory
  hostfxr sdks --json         List installed SDK directories as JSON
  hostfxr info                Show host version, SDKs and frameworks
  hostfxr ui                  Browse the installation interactively`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}

	flags := cmd.PersistentFlags()
	flags.String(keyRoot, "", "installation root (overrides DOTNET_ROOT)")
	flags.String(keyHostFxrPath, "", "host library file to load (overrides DOTNET_HOSTFXR_PATH)")
	flags.BoolP(keyVerbose, "v", false, "log discovery and loading decisions to stderr")
	flags.Bool(keyJSON, false, "print results as JSON")
	_ = a.v.BindPFlags(flags)

	a.v.SetEnvPrefix("HOSTFXR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindEnv(keyHostFxrPath, envHostFxrPath)

	cmd.AddCommand(
		a.locateCmd(),
		a.resolveCmd(),
		a.sdksCmd(),
		a.infoCmd(),
		a.uiCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if !a.v.GetBool(keyVerbose) {
		return nil
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.log = log
	hostfxr.SetLogger(log)
	return nil
}

// hostContext describes the running process with the command line
// overrides applied. An undeterminable executable path is only fatal when
// no override supplies the missing information.
func (a *app) hostContext() (locator.HostContext, error) {
	root := a.v.GetString(keyRoot)
	override := a.v.GetString(keyHostFxrPath)

	hc, err := a.currentContext()
	if err != nil {
		if root == "" && override == "" {
			return locator.HostContext{}, err
		}
		hc = locator.HostContext{
			OS:           runtime.GOOS,
			PointerBits:  strconv.IntSize,
			OverridePath: os.Getenv(locator.EnvHostFxrPath),
		}
	}

	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return locator.HostContext{}, fmt.Errorf("resolve --root: %w", err)
		}
		hc.InstallRoot = abs
	}
	if override != "" {
		hc.OverridePath = override
	}

	a.log.Debug("host context",
		zap.String("install_root", hc.InstallRoot),
		zap.String("os", hc.OS),
		zap.Int("pointer_bits", hc.PointerBits),
		zap.String("override", hc.OverridePath))
	return hc, nil
}

func (a *app) openBridge() (*bridge.Bridge, locator.HostContext, error) {
	hc, err := a.hostContext()
	if err != nil {
		return nil, hc, err
	}
	b, err := a.open(hc)
	if err != nil {
		return nil, hc, err
	}
	return b, hc, nil
}

func (a *app) printer(cmd *cobra.Command) *printer {
	w := cmd.OutOrStdout()
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return &printer{w: w, json: a.v.GetBool(keyJSON), styled: styled}
}
