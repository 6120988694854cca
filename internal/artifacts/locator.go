// Package artifacts locates the archive + detached signature pair that
// the bundler produces for a given version.
package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Locator errors.
var (
	// ErrArtifactNotFound indicates the archive or the signature (or
	// both) is missing from the searched directory. Both files must
	// exist for a build to be publishable.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrAmbiguousArtifact indicates more than one candidate matched.
	// The locator refuses to pick one arbitrarily.
	ErrAmbiguousArtifact = errors.New("ambiguous artifact match")
)

// BuildFiles is a located archive + signature pair.
type BuildFiles struct {
	ArchiveName string
	ArchivePath string
	SigName     string
	SigPath     string
}

// Locator finds build artifacts by extension and version substring.
type Locator struct {
	ArchiveExt string // e.g. ".msi.zip"
	SigExt     string // e.g. ".sig"
}

// Locate scans dir (non-recursive) for exactly one entry ending in
// ArchiveExt and exactly one ending in SigExt, each containing
// versionText as a substring. Zero matches for either is
// ErrArtifactNotFound naming what is missing; multiple matches is
// ErrAmbiguousArtifact.
func (l Locator) Locate(dir, versionText string) (BuildFiles, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BuildFiles{}, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var archives, sigs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.Contains(name, versionText) {
			continue
		}
		switch {
		case strings.HasSuffix(name, l.SigExt):
			sigs = append(sigs, name)
		case strings.HasSuffix(name, l.ArchiveExt):
			archives = append(archives, name)
		}
	}

	var missing []string
	if len(archives) == 0 {
		missing = append(missing, "archive ("+l.ArchiveExt+")")
	}
	if len(sigs) == 0 {
		missing = append(missing, "signature ("+l.SigExt+")")
	}
	if len(missing) > 0 {
		return BuildFiles{}, fmt.Errorf("%w: no %s for version %s in %s",
			ErrArtifactNotFound, strings.Join(missing, " and "), versionText, dir)
	}
	if len(archives) > 1 {
		return BuildFiles{}, fmt.Errorf("%w: %d archives for version %s in %s: %s",
			ErrAmbiguousArtifact, len(archives), versionText, dir, strings.Join(archives, ", "))
	}
	if len(sigs) > 1 {
		return BuildFiles{}, fmt.Errorf("%w: %d signatures for version %s in %s: %s",
			ErrAmbiguousArtifact, len(sigs), versionText, dir, strings.Join(sigs, ", "))
	}

	return BuildFiles{
		ArchiveName: archives[0],
		ArchivePath: filepath.Join(dir, archives[0]),
		SigName:     sigs[0],
		SigPath:     filepath.Join(dir, sigs[0]),
	}, nil
}
