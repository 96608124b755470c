package locator

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/wippyai/hostfxr-go/errors"
)

// Strategy resolves the host library path for a HostContext.
type Strategy interface {
	Name() string
	Locate(hc HostContext) (Location, error)
}

// Strategy names.
const (
	StrategyDirectPath    = "direct-path"
	StrategyArchSubfolder = "arch-subfolder"
	StrategyVersionScan   = "version-scan"
)

// DirectPath uses the externally supplied path without probing the
// filesystem.
type DirectPath struct{}

func (DirectPath) Name() string { return StrategyDirectPath }

func (DirectPath) Locate(hc HostContext) (Location, error) {
	if hc.OverridePath == "" {
		return Location{}, errors.InvalidInput(errors.PhaseLocate, "no override path supplied")
	}
	path := hc.OverridePath
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return Location{}, errors.EnvironmentUnavailable("resolve override path", err)
		}
		path = abs
	}
	return Location{Path: path, Strategy: StrategyDirectPath}, nil
}

// ArchSubfolder composes <root>/<arch>/<library>. The file is not checked;
// a missing library surfaces as a load failure.
type ArchSubfolder struct{}

func (ArchSubfolder) Name() string { return StrategyArchSubfolder }

func (ArchSubfolder) Locate(hc HostContext) (Location, error) {
	root, err := absRoot(hc)
	if err != nil {
		return Location{}, err
	}
	path := filepath.Join(root, hc.Arch(), hc.LibraryFileName())
	return Location{Path: path, Strategy: StrategyArchSubfolder}, nil
}

// VersionScan picks the newest <root>/host/fxr/<version> directory that
// contains the library file.
type VersionScan struct{}

func (VersionScan) Name() string { return StrategyVersionScan }

func (VersionScan) Locate(hc HostContext) (Location, error) {
	root, err := absRoot(hc)
	if err != nil {
		return Location{}, err
	}
	fxrDir := FxrDir(root)
	lib := hc.LibraryFileName()

	for _, candidate := range Scan(fxrDir) {
		path := filepath.Join(candidate.Path, lib)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			Logger().Debug("candidate has no host library",
				zap.String("dir", candidate.Path), zap.String("library", lib))
			continue
		}
		return Location{Path: path, Version: candidate.Version, Strategy: StrategyVersionScan}, nil
	}

	return Location{}, errors.NotFound(errors.PhaseLocate, lib+" in any version directory", fxrDir)
}

// absRoot returns the context's install root as an absolute path.
func absRoot(hc HostContext) (string, error) {
	if hc.InstallRoot == "" {
		return "", errors.EnvironmentUnavailable("install root not set", nil)
	}
	root, err := filepath.Abs(hc.InstallRoot)
	if err != nil {
		return "", errors.EnvironmentUnavailable("resolve install root", err)
	}
	return root, nil
}

// FxrDir returns the directory holding one subdirectory per installed host
// library version.
func FxrDir(root string) string {
	return filepath.Join(root, "host", "fxr")
}

type strategyKey struct {
	os       string
	override bool
}

var strategies = map[strategyKey]Strategy{
	{"windows", true}:  DirectPath{},
	{"windows", false}: ArchSubfolder{},
	{"linux", true}:    DirectPath{},
	{"linux", false}:   VersionScan{},
	{"darwin", true}:   DirectPath{},
	{"darwin", false}:  VersionScan{},
	{"freebsd", true}:  DirectPath{},
	{"freebsd", false}: VersionScan{},
}

// Select returns the strategy for the context's OS and override presence.
func Select(hc HostContext) (Strategy, error) {
	s, ok := strategies[strategyKey{os: hc.OS, override: hc.HasOverride()}]
	if !ok {
		return nil, errors.Unsupported(errors.PhaseLocate, "no host library strategy for "+hc.OS)
	}
	return s, nil
}

// Locate selects a strategy for hc and runs it.
func Locate(hc HostContext) (Location, error) {
	s, err := Select(hc)
	if err != nil {
		return Location{}, err
	}
	loc, err := s.Locate(hc)
	if err != nil {
		return Location{}, err
	}
	Logger().Debug("located host library",
		zap.String("strategy", s.Name()), zap.String("path", loc.Path))
	return loc, nil
}
