package locator

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/wippyai/hostfxr-go/version"
)

// Location is a resolved host library path.
type Location struct {
	// Path is absolute. For Scan results it is the version directory, for
	// Locate results it is the library file.
	Path string
	// Version is set only when the location came from a version scan.
	Version *version.Installed
	// Strategy names the strategy that produced the location.
	Strategy string
}

// Scan lists the immediate subdirectories of root whose names parse as
// versions, newest first. A missing or unreadable root yields no entries.
func Scan(root string) []Location {
	root, err := filepath.Abs(root)
	if err != nil {
		Logger().Debug("version scan root unresolvable", zap.String("root", root), zap.Error(err))
		return []Location{}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		Logger().Debug("version scan root unreadable", zap.String("root", root), zap.Error(err))
		return []Location{}
	}

	versions := make([]version.Installed, 0, len(entries))
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		if !isDir(entry, dir) {
			continue
		}
		v, err := version.Parse(entry.Name())
		if err != nil {
			Logger().Debug("skipped candidate", zap.String("dir", dir), zap.Error(err))
			continue
		}
		versions = append(versions, v)
	}

	version.SortNewestFirst(versions)
	found := make([]Location, len(versions))
	for i := range versions {
		found[i] = Location{Path: filepath.Join(root, versions[i].String()), Version: &versions[i]}
	}
	return found
}

func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
