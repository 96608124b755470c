// Package version parses installed runtime directory names into comparable
// values.
//
// A directory name is split at its first '-'. The part before is a dotted
// release of non-negative integers. The part after is reduced to its digits,
// which form one extra trailing component. "8.0.100-rc.1" therefore compares
// as 8.0.100.1 and "8.0.100-preview.3" as 8.0.100.3, so a suffixed name can
// sort above the plain release. This ordering is what installed host
// resolution has always used and is kept as-is.
package version

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/hostfxr-go/errors"
)

// Installed is a parsed version directory name.
type Installed struct {
	Original   string
	Release    []int
	Prerelease []int
}

// Parse parses a single path segment into an Installed version.
func Parse(name string) (Installed, error) {
	if name == "" {
		return Installed{}, errors.NotAVersion(name, "empty name")
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator) {
		return Installed{}, errors.NotAVersion(name, "not a single path segment")
	}

	release, suffix, hasSuffix := strings.Cut(name, "-")
	parts, err := parseRelease(release)
	if err != nil {
		return Installed{}, errors.NotAVersion(name, err.Error())
	}

	v := Installed{Original: name, Release: parts}
	if !hasSuffix {
		return v, nil
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, suffix)
	if digits == "" {
		return v, nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Installed{}, errors.NotAVersion(name, "prerelease digits out of range")
	}
	v.Prerelease = []int{n}
	return v, nil
}

type releaseError string

func (e releaseError) Error() string { return string(e) }

func parseRelease(s string) ([]int, error) {
	if s == "" {
		return nil, releaseError("empty release")
	}
	fields := strings.Split(s, ".")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			return nil, releaseError("empty release component")
		}
		for i := 0; i < len(f); i++ {
			if f[i] < '0' || f[i] > '9' {
				return nil, releaseError("release component " + strconv.Quote(f) + " is not numeric")
			}
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, releaseError("release component " + strconv.Quote(f) + " out of range")
		}
		out = append(out, n)
	}
	return out, nil
}

// MustParse is like Parse but panics on error.
func MustParse(name string) Installed {
	v, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the directory name the version was parsed from.
func (v Installed) String() string {
	return v.Original
}

// Components returns the release tuple followed by the prerelease digits.
func (v Installed) Components() []int {
	out := make([]int, 0, len(v.Release)+len(v.Prerelease))
	out = append(out, v.Release...)
	return append(out, v.Prerelease...)
}

// IsPrerelease reports whether the name carried a digit-bearing suffix.
func (v Installed) IsPrerelease() bool {
	return len(v.Prerelease) > 0
}

// Compare returns -1, 0 or +1 comparing the combined tuples of a and b,
// padded with zeros to equal length.
func Compare(a, b Installed) int {
	ac, bc := a.Components(), b.Components()
	n := max(len(ac), len(bc))
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(ac) {
			x = ac[i]
		}
		if i < len(bc) {
			y = bc[i]
		}
		switch {
		case x > y:
			return 1
		case x < y:
			return -1
		}
	}
	return 0
}

// SortNewestFirst sorts vs in descending order. Equal versions keep no
// particular relative order.
func SortNewestFirst(vs []Installed) {
	slices.SortFunc(vs, func(a, b Installed) int { return Compare(b, a) })
}
