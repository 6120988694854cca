// Package release sequences the build, publish, metadata-update, and
// delete workflows. One request runs to completion (or failure) at a
// time; there is no rollback, so partial side effects stay in place for
// inspection and every error names the step that failed.
package release

import (
	"context"
	"fmt"

	"github.com/caldera-app/shipkit/internal/artifacts"
	"github.com/caldera-app/shipkit/internal/config"
	"github.com/caldera-app/shipkit/internal/hosting"
	"github.com/caldera-app/shipkit/internal/logging"
	"github.com/caldera-app/shipkit/internal/manifest"
	"github.com/caldera-app/shipkit/internal/store"
	"github.com/caldera-app/shipkit/internal/updater"
	"github.com/caldera-app/shipkit/internal/version"
)

// Bundler runs the external packaging command for a lineage.
type Bundler interface {
	Run(ctx context.Context, build version.Build) error
}

// Host is the slice of the hosting API the workflows use.
type Host interface {
	CreateRelease(ctx context.Context, tag, name, notes string, prerelease bool) (*hosting.Release, error)
	UploadAsset(ctx context.Context, releaseID int64, name, path string) error
	DeleteRelease(ctx context.Context, releaseID int64) error
	DeleteTag(ctx context.Context, tag string) error
	GetReleaseByTag(ctx context.Context, tag string) (*hosting.Release, error)
	UpdateGistFile(ctx context.Context, gistID, fileName, content string) error
}

// Manager orchestrates the lifecycle workflows.
type Manager struct {
	cfg     *config.Config
	log     *logging.Logger
	store   store.Store
	locator artifacts.Locator
	bundler Bundler
	host    Host
}

// NewManager wires a Manager from the loaded configuration.
func NewManager(cfg *config.Config, log *logging.Logger, bundler Bundler, host Host) *Manager {
	return &Manager{
		cfg:     cfg,
		log:     log,
		store:   store.Store{Root: cfg.BuildsDir},
		locator: artifacts.Locator{ArchiveExt: cfg.ArchiveExt, SigExt: cfg.SigExt},
		bundler: bundler,
		host:    host,
	}
}

// Build resolves the next version for the lineage, rewrites both
// manifests, runs the bundler, and materializes the produced artifacts
// into a new version folder. Manifest edits are idempotent, so a failed
// build can be retried by re-running the same request.
func (m *Manager) Build(ctx context.Context, fragment version.Fragment, build version.Build) (version.AppVersion, error) {
	existing, err := m.store.List(build)
	if err != nil {
		return version.AppVersion{}, fmt.Errorf("build (%s): list versions: %w", build, err)
	}

	next, err := version.Next(fragment, store.Versions(existing))
	if err != nil {
		return version.AppVersion{}, fmt.Errorf("build (%s): resolve version: %w", build, err)
	}
	av := version.AppVersion{Version: next, Build: build}
	m.log.Info().Str("version", next.String()).Str("lineage", build.String()).Msg("resolved next version")

	if err := manifest.SetCargoVersion(m.cfg.CargoManifest, next.String()); err != nil {
		return av, fmt.Errorf("build %s (%s): update cargo manifest: %w", next, build, err)
	}
	if err := manifest.SetAppConfigVersion(m.cfg.AppManifest, next.String()); err != nil {
		return av, fmt.Errorf("build %s (%s): update app manifest: %w", next, build, err)
	}

	m.log.Info().Str("version", next.String()).Msg("running bundler")
	if err := m.bundler.Run(ctx, build); err != nil {
		return av, fmt.Errorf("build %s (%s): %w", next, build, err)
	}

	folder, err := m.store.CreateFolder(av)
	if err != nil {
		return av, fmt.Errorf("build %s (%s): create version folder: %w", next, build, err)
	}

	files, err := m.locator.Locate(m.cfg.BundleDir(build == version.Debug), next.String())
	if err != nil {
		return av, fmt.Errorf("build %s (%s): locate artifacts: %w", next, build, err)
	}

	if err := store.CopyFile(files.ArchivePath, folder); err != nil {
		return av, fmt.Errorf("build %s (%s): copy archive: %w", next, build, err)
	}
	if err := store.CopyFile(files.SigPath, folder); err != nil {
		return av, fmt.Errorf("build %s (%s): copy signature: %w", next, build, err)
	}

	m.log.Info().Str("version", next.String()).Str("folder", folder).Msg("build complete")
	return av, nil
}

// Publish creates a remote release tagged for the version and uploads
// both artifacts from the local version folder. The archive and the
// signature are uploaded sequentially; a tag conflict propagates as
// hosting.ErrReleaseAlreadyExists.
func (m *Manager) Publish(ctx context.Context, av version.AppVersion, notes string) (*hosting.Release, error) {
	files, err := m.locator.Locate(m.store.FolderPath(av), av.Version.String())
	if err != nil {
		return nil, fmt.Errorf("publish %s (%s): locate artifacts: %w", av.Version, av.Build, err)
	}

	name := fmt.Sprintf("%s %s", releaseTitle(av.Build), av.Version)
	rel, err := m.host.CreateRelease(ctx, av.Tag(), name, notes, av.Build == version.Debug)
	if err != nil {
		return nil, fmt.Errorf("publish %s (%s): create release: %w", av.Version, av.Build, err)
	}
	m.log.Info().Str("tag", av.Tag()).Int64("release_id", rel.ID).Msg("release created")

	if err := m.host.UploadAsset(ctx, rel.ID, files.ArchiveName, files.ArchivePath); err != nil {
		return nil, fmt.Errorf("publish %s (%s): upload archive: %w", av.Version, av.Build, err)
	}
	if err := m.host.UploadAsset(ctx, rel.ID, files.SigName, files.SigPath); err != nil {
		return nil, fmt.Errorf("publish %s (%s): upload signature: %w", av.Version, av.Build, err)
	}

	m.log.Info().Str("tag", av.Tag()).Msg("publish complete")
	return rel, nil
}

func releaseTitle(build version.Build) string {
	if build == version.Debug {
		return "Caldera (debug)"
	}
	return "Caldera"
}

// UpdateMetadata pushes the auto-update document for a published version
// into the single shared gist file. The latest write wins across both
// lineages.
func (m *Manager) UpdateMetadata(ctx context.Context, av version.AppVersion, notes string) error {
	files, err := m.locator.Locate(m.store.FolderPath(av), av.Version.String())
	if err != nil {
		return fmt.Errorf("update metadata %s (%s): locate artifacts: %w", av.Version, av.Build, err)
	}

	doc, err := updater.BuildDocument(m.cfg, av, files, notes)
	if err != nil {
		return fmt.Errorf("update metadata %s (%s): build document: %w", av.Version, av.Build, err)
	}
	content, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("update metadata %s (%s): %w", av.Version, av.Build, err)
	}

	if err := m.host.UpdateGistFile(ctx, m.cfg.GistID, m.cfg.GistFile, content); err != nil {
		return fmt.Errorf("update metadata %s (%s): %w", av.Version, av.Build, err)
	}

	m.log.Info().Str("version", av.Version.String()).Str("gist", m.cfg.GistID).Msg("update metadata pushed")
	return nil
}

// FindRelease resolves a version's remote release by tag.
func (m *Manager) FindRelease(ctx context.Context, av version.AppVersion) (*hosting.Release, error) {
	return m.host.GetReleaseByTag(ctx, av.Tag())
}

// DeleteRelease removes the remote release and its tag ref. It does not
// touch the local version folder; that is DeleteLocalVersion's job, and
// the caller chooses the scope explicitly.
func (m *Manager) DeleteRelease(ctx context.Context, releaseID int64, tag string) error {
	if err := m.host.DeleteRelease(ctx, releaseID); err != nil {
		return fmt.Errorf("delete release %s: %w", tag, err)
	}
	if err := m.host.DeleteTag(ctx, tag); err != nil {
		return fmt.Errorf("delete tag %s: %w", tag, err)
	}
	m.log.Info().Str("tag", tag).Msg("remote release deleted")
	return nil
}

// DeleteLocalVersion removes the version's folder recursively. Not
// recoverable.
func (m *Manager) DeleteLocalVersion(av version.AppVersion) error {
	if err := m.store.Delete(av); err != nil {
		return fmt.Errorf("delete local %s (%s): %w", av.Version, av.Build, err)
	}
	m.log.Info().Str("version", av.Version.String()).Str("lineage", av.Build.String()).Msg("local version deleted")
	return nil
}

// ListVersions returns one lineage's versions descending.
func (m *Manager) ListVersions(build version.Build) ([]version.AppVersion, error) {
	return m.store.List(build)
}

// ListAllVersions returns both lineages merged, descending. Used for
// interactive selection only.
func (m *Manager) ListAllVersions() ([]version.AppVersion, error) {
	return m.store.ListAll()
}
