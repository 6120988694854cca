// Package hosting provides the remote hosting API client and its error
// types.
package hosting

import (
	"errors"
	"strings"
)

// ErrReleaseAlreadyExists indicates the service already has a release
// for the requested tag. The publish workflow propagates this without
// retrying; re-publishing a version requires deleting the release first.
var ErrReleaseAlreadyExists = errors.New("release already exists")

// ErrReleaseNotFound indicates no release exists for the requested tag.
var ErrReleaseNotFound = errors.New("release not found")

// IsTagConflict checks if an error indicates a duplicate release tag,
// either as a wrapped ErrReleaseAlreadyExists or as a conflict message
// coming back from the service.
func IsTagConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrReleaseAlreadyExists) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, indicator := range []string{"already_exists", "already exists", "tag conflict"} {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}
