package version

import (
	"errors"
	"fmt"
)

// Patcher errors.
var (
	// ErrPatchNotAllowed is returned when a requested fragment carries a
	// patch segment. The patch is always assigned here, never by the
	// user, to rule out collisions with existing builds.
	ErrPatchNotAllowed = errors.New("patch segment must not be supplied")

	// ErrVersionTooLow is returned when the requested major/minor would
	// move the lineage backward relative to its current latest version.
	ErrVersionTooLow = errors.New("requested version is lower than the latest")
)

// Next resolves a user-supplied fragment against a lineage's existing
// versions (descending, latest first) and returns the next free version.
//
// Rules:
//   - the fragment must not carry a patch segment;
//   - going backward on (major, minor) relative to the lineage's latest
//     version is ErrVersionTooLow;
//   - the same (major, minor) as the latest continues that family with
//     latest.patch + 1;
//   - a strictly newer (major, minor) starts a new family at patch 0.
//
// An empty history behaves as if the latest version were 0.0.0. Next is a
// pure function of its inputs.
func Next(fragment Fragment, existingDesc []Version) (Version, error) {
	if fragment.HasPatch {
		return Version{}, fmt.Errorf("%w: got %q", ErrPatchNotAllowed, fragment)
	}

	latest := Version{}
	if len(existingDesc) > 0 {
		latest = existingDesc[0]
	}

	if fragment.Major < latest.Major ||
		(fragment.Major == latest.Major && fragment.Minor < latest.Minor) {
		return Version{}, fmt.Errorf("%w: requested %s, latest is %s", ErrVersionTooLow, fragment, latest)
	}

	next := Version{Major: fragment.Major, Minor: fragment.Minor}
	if fragment.Major == latest.Major && fragment.Minor == latest.Minor {
		next.Patch = latest.Patch + 1
	}
	return next, nil
}
