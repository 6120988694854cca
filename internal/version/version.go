// Package version defines the application version model: three-part
// versions, the two build lineages (debug and release), and the ordering
// used for on-disk listings. Everything here is pure; no I/O.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat indicates a version string that is not
// "{major}.{minor}" or "{major}.{minor}.{patch}".
var ErrInvalidFormat = errors.New("invalid version format")

// Build identifies one of the two build lineages. Versions in different
// lineages are independent: the same triple may exist in both at once.
type Build int

const (
	Debug Build = iota
	Release
)

// String returns the lineage name as used in prompts and log output.
func (b Build) String() string {
	if b == Debug {
		return "debug"
	}
	return "release"
}

// FolderSuffix is appended to a version's folder name under the builds
// root so that a single directory listing recovers both the version and
// the lineage.
func (b Build) FolderSuffix() string {
	if b == Debug {
		return "_debug"
	}
	return "_release"
}

// ParseBuild converts a lineage name ("debug" or "release") to a Build.
func ParseBuild(s string) (Build, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "release":
		return Release, nil
	}
	return Debug, fmt.Errorf("unknown build lineage %q (want debug or release)", s)
}

// Version is a fully resolved three-part version. The patch component is
// always present; user input that omits it is a Fragment until the
// patcher resolves it.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String renders the canonical "{major}.{minor}.{patch}" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders two versions lexicographically on (major, minor, patch).
// It returns -1 if a < b, 0 if equal, 1 if a > b. Ordering is only
// meaningful within a single lineage.
func Compare(a, b Version) int {
	if a.Major != b.Major {
		return sign(a.Major - b.Major)
	}
	if a.Minor != b.Minor {
		return sign(a.Minor - b.Minor)
	}
	return sign(a.Patch - b.Patch)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Fragment is a user-supplied version request. The patch component is
// optional at this stage; it is assigned by the patcher, never by the
// user.
type Fragment struct {
	Major    int
	Minor    int
	Patch    int
	HasPatch bool
}

// String renders the fragment as entered: two segments without a patch,
// three with.
func (f Fragment) String() string {
	if f.HasPatch {
		return fmt.Sprintf("%d.%d.%d", f.Major, f.Minor, f.Patch)
	}
	return fmt.Sprintf("%d.%d", f.Major, f.Minor)
}

// Parse accepts "{major}.{minor}" or "{major}.{minor}.{patch}", optionally
// followed by a lineage folder suffix, and returns the corresponding
// Fragment. Fewer than two segments or any non-numeric segment is
// ErrInvalidFormat.
func Parse(text string) (Fragment, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSuffix(s, Debug.FolderSuffix())
	s = strings.TrimSuffix(s, Release.FolderSuffix())

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Fragment{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Fragment{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
		}
		nums[i] = n
	}

	f := Fragment{Major: nums[0], Minor: nums[1]}
	if len(nums) == 3 {
		f.Patch = nums[2]
		f.HasPatch = true
	}
	return f, nil
}

// ParseVersion parses a fully resolved three-segment version string.
func ParseVersion(text string) (Version, error) {
	f, err := Parse(text)
	if err != nil {
		return Version{}, err
	}
	if !f.HasPatch {
		return Version{}, fmt.Errorf("%w: %q (patch segment required)", ErrInvalidFormat, text)
	}
	return Version{Major: f.Major, Minor: f.Minor, Patch: f.Patch}, nil
}

// AppVersion pairs a resolved version with its lineage. It is the unit
// stored on disk as a folder name and referenced remotely by a release
// tag.
type AppVersion struct {
	Version Version
	Build   Build
}

// Folder is the on-disk folder name under the builds root:
// "{major}.{minor}.{patch}{lineage suffix}".
func (a AppVersion) Folder() string {
	return a.Version.String() + a.Build.FolderSuffix()
}

// Tag is the remote release tag: "v{x.y.z}" for the release lineage,
// "v{x.y.z}-dev" for debug.
func (a AppVersion) Tag() string {
	tag := "v" + a.Version.String()
	if a.Build == Debug {
		tag += "-dev"
	}
	return tag
}

// ParseFolder recovers an AppVersion from a builds-root folder name.
// Folder names without a recognized lineage suffix or without a resolved
// three-part version are rejected.
func ParseFolder(name string) (AppVersion, error) {
	var build Build
	switch {
	case strings.HasSuffix(name, Debug.FolderSuffix()):
		build = Debug
	case strings.HasSuffix(name, Release.FolderSuffix()):
		build = Release
	default:
		return AppVersion{}, fmt.Errorf("%w: folder %q has no lineage suffix", ErrInvalidFormat, name)
	}

	v, err := ParseVersion(strings.TrimSuffix(name, build.FolderSuffix()))
	if err != nil {
		return AppVersion{}, err
	}
	return AppVersion{Version: v, Build: build}, nil
}
