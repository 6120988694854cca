// Package store manages the local builds root: one folder per built
// version, named "{major}.{minor}.{patch}{lineage suffix}". The folder
// listing is the source of truth for a lineage's version history.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/caldera-app/shipkit/internal/version"
)

// ErrFolderAlreadyExists indicates a prior build left a folder for the
// same version. Builds never overwrite existing artifacts.
var ErrFolderAlreadyExists = errors.New("version folder already exists")

// Store is a builds-root directory.
type Store struct {
	Root string
}

// List returns the versions recorded for one lineage, descending
// (latest first). Entries that are not version folders are skipped.
func (s Store) List(build version.Build) ([]version.AppVersion, error) {
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	var out []version.AppVersion
	for _, av := range all {
		if av.Build == build {
			out = append(out, av)
		}
	}
	return out, nil
}

// ListAll returns both lineages' versions merged, descending. Used for
// interactive selection; the patcher must only ever see a single
// lineage's slice from List.
func (s Store) ListAll() ([]version.AppVersion, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list builds root %s: %w", s.Root, err)
	}

	var out []version.AppVersion
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		av, err := version.ParseFolder(entry.Name())
		if err != nil {
			continue
		}
		out = append(out, av)
	}

	sort.Slice(out, func(i, j int) bool {
		return version.Compare(out[i].Version, out[j].Version) > 0
	})
	return out, nil
}

// Versions extracts the bare version triples from a lineage listing,
// preserving order. Convenience for feeding the patcher.
func Versions(list []version.AppVersion) []version.Version {
	out := make([]version.Version, len(list))
	for i, av := range list {
		out[i] = av.Version
	}
	return out
}

// CreateFolder creates the version's folder under the builds root. An
// existing folder is ErrFolderAlreadyExists; nothing is overwritten.
func (s Store) CreateFolder(av version.AppVersion) (string, error) {
	dir := s.FolderPath(av)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("%w: %s", ErrFolderAlreadyExists, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create version folder %s: %w", dir, err)
	}
	return dir, nil
}

// FolderPath returns the on-disk path for a version's folder.
func (s Store) FolderPath(av version.AppVersion) string {
	return filepath.Join(s.Root, av.Folder())
}

// Delete removes the version's folder recursively. Not recoverable.
func (s Store) Delete(av version.AppVersion) error {
	dir := s.FolderPath(av)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("version folder %s does not exist", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete version folder %s: %w", dir, err)
	}
	return nil
}

// CopyFile copies src into dstDir keeping the base name. Fails if the
// destination already exists.
func CopyFile(src, dstDir string) error {
	dst := filepath.Join(dstDir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("destination already exists: %s", dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finish copy to %s: %w", dst, err)
	}
	return nil
}
