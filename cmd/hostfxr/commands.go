package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wippyai/hostfxr-go/bridge"
	"github.com/wippyai/hostfxr-go/locator"
)

type candidateView struct {
	Version    string `json:"version"`
	Dir        string `json:"dir"`
	HasLibrary bool   `json:"has_library"`
}

type locateView struct {
	Strategy    string          `json:"strategy"`
	Path        string          `json:"path"`
	Version     string          `json:"version,omitempty"`
	InstallRoot string          `json:"install_root,omitempty"`
	Candidates  []candidateView `json:"candidates,omitempty"`
}

func (a *app) locateCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Show which host library would be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hc, err := a.hostContext()
			if err != nil {
				return err
			}
			loc, err := locator.Locate(hc)
			if err != nil {
				return err
			}

			view := locateView{Strategy: loc.Strategy, Path: loc.Path, InstallRoot: hc.InstallRoot}
			if loc.Version != nil {
				view.Version = loc.Version.String()
			}
			if all && hc.InstallRoot != "" {
				view.Candidates = candidates(hc)
			}

			p := a.printer(cmd)
			return p.emit(view, func() {
				p.field("strategy", view.Strategy, labelStyle)
				p.field("path", view.Path, pathStyle)
				if view.Version != "" {
					p.field("version", view.Version, versionStyle)
				}
				if len(view.Candidates) == 0 {
					return
				}
				rows := make([][]string, 0, len(view.Candidates))
				for _, c := range view.Candidates {
					lib := "no"
					if c.HasLibrary {
						lib = "yes"
					}
					rows = append(rows, []string{c.Version, lib, c.Dir})
				}
				fmt.Fprintln(p.w)
				p.table([]string{"Version", "Library", "Directory"}, rows)
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also list every version directory under host/fxr")
	return cmd
}

// candidates lists the version directories a version scan would consider.
func candidates(hc locator.HostContext) []candidateView {
	lib := hc.LibraryFileName()
	found := locator.Scan(locator.FxrDir(hc.InstallRoot))
	out := make([]candidateView, 0, len(found))
	for _, c := range found {
		info, err := os.Stat(filepath.Join(c.Path, lib))
		out = append(out, candidateView{
			Version:    c.Version.String(),
			Dir:        c.Path,
			HasLibrary: err == nil && info.Mode().IsRegular(),
		})
	}
	return out
}

func (a *app) resolveCmd() *cobra.Command {
	var (
		exeDir       string
		workingDir   string
		noPrerelease bool
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the SDK a working directory would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, hc, err := a.openBridge()
			if err != nil {
				return err
			}
			if exeDir == "" {
				exeDir = hc.InstallRoot
			}
			if workingDir == "" {
				if workingDir, err = os.Getwd(); err != nil {
					return fmt.Errorf("working directory: %w", err)
				}
			}
			var flags bridge.ResolveFlags
			if noPrerelease {
				flags |= bridge.DisallowPrerelease
			}

			res, err := b.ResolveSdk(exeDir, workingDir, flags)
			if err != nil {
				return err
			}

			p := a.printer(cmd)
			if err := p.emit(res, func() {
				p.field("resolved sdk", res.ResolvedSdkDir, versionStyle)
				p.field("global.json", res.GlobalJSONPath, pathStyle)
				p.field("requested version", res.RequestedVersion, versionStyle)
			}); err != nil {
				return err
			}
			if !res.Resolved() {
				return fmt.Errorf("no SDK resolved for %s (status %#x)", workingDir, uint32(res.Status))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exeDir, "exe-dir", "", "directory of the dotnet executable (default: installation root)")
	cmd.Flags().StringVar(&workingDir, "working-dir", "", "directory to resolve from (default: current directory)")
	cmd.Flags().BoolVar(&noPrerelease, "no-prerelease", false, "exclude prerelease SDKs")
	return cmd
}

func (a *app) sdksCmd() *cobra.Command {
	var exeDir string
	cmd := &cobra.Command{
		Use:   "sdks",
		Short: "List installed SDK directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, hc, err := a.openBridge()
			if err != nil {
				return err
			}
			if exeDir == "" {
				exeDir = hc.InstallRoot
			}

			dirs, err := b.GetAvailableSdks(exeDir)
			if err != nil {
				return err
			}

			p := a.printer(cmd)
			return p.emit(dirs, func() {
				for _, d := range dirs {
					fmt.Fprintf(p.w, "%s %s\n",
						p.render(versionStyle, fmt.Sprintf("%-24s", filepath.Base(d))),
						p.render(pathStyle, d))
				}
			})
		},
	}
	cmd.Flags().StringVar(&exeDir, "exe-dir", "", "directory of the dotnet executable (default: installation root)")
	return cmd
}

func (a *app) infoCmd() *cobra.Command {
	var dotnetRoot string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the host version and installed SDKs and frameworks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, hc, err := a.openBridge()
			if err != nil {
				return err
			}
			if dotnetRoot == "" {
				dotnetRoot = hc.InstallRoot
			}

			info, err := b.GetEnvironmentInfo(dotnetRoot)
			if err != nil {
				return err
			}

			p := a.printer(cmd)
			return p.emit(info, func() { printEnvironment(p, info) })
		},
	}
	cmd.Flags().StringVar(&dotnetRoot, "dotnet-root", "", "installation to describe (default: installation root)")
	return cmd
}

func printEnvironment(p *printer, info bridge.EnvironmentInfo) {
	p.field("host version", info.HostFxrVersion, versionStyle)
	p.field("commit", info.HostFxrCommitHash, pathStyle)

	fmt.Fprintln(p.w)
	p.heading(fmt.Sprintf("SDKs (%d)", len(info.Sdks)))
	rows := make([][]string, 0, len(info.Sdks))
	for _, s := range info.Sdks {
		rows = append(rows, []string{s.Version, s.Path})
	}
	p.table([]string{"Version", "Path"}, rows)

	fmt.Fprintln(p.w)
	p.heading(fmt.Sprintf("Frameworks (%d)", len(info.Frameworks)))
	rows = make([][]string, 0, len(info.Frameworks))
	for _, f := range info.Frameworks {
		rows = append(rows, []string{f.Name, f.Version, f.Path})
	}
	p.table([]string{"Name", "Version", "Path"}, rows)
}
