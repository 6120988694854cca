// Package config provides configuration management for shipkit.
//
// Configuration is loaded once at process start into an explicit Config
// struct and passed into the components that need it; nothing reads the
// environment from deep inside component logic.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Config file location:
//   - Unix: ~/.config/shipkit/config
//   - Windows: %USERPROFILE%\.config\shipkit\config
//
// INI format:
//
//	[hosting]
//	repo = caldera-app/caldera
//	api_token = <token>
//	gist_id = <gist-id>
//	gist_file = latest.json
//
//	[paths]
//	builds_dir = /home/me/caldera/builds
//	debug_bundle_dir = /home/me/caldera/src-tauri/target/debug/bundle/msi
//	release_bundle_dir = /home/me/caldera/src-tauri/target/release/bundle/msi
//	cargo_manifest = /home/me/caldera/src-tauri/Cargo.toml
//	app_manifest = /home/me/caldera/src-tauri/tauri.conf.json
//
//	[bundler]
//	command = pnpm tauri build
//	archive_ext = .msi.zip
//	sig_ext = .sig
//
//	[platforms]
//	windows-x86_64 = caldera_{{version}}_x64_en-US.msi.zip
//
// Signing secrets are environment-only and never stored in the file:
// SHIPKIT_SIGNING_KEY, SHIPKIT_SIGNING_KEY_PASSWORD. SHIPKIT_API_TOKEN
// overrides api_token when set.
type Config struct {
	// Hosting settings
	Repo     string // "owner/name"
	APIToken string
	GistID   string
	GistFile string

	// Base URLs for the hosting API. Overridable for tests; the
	// defaults point at the public API.
	APIBaseURL    string
	UploadBaseURL string
	DownloadBase  string

	// Local paths
	BuildsDir        string
	DebugBundleDir   string
	ReleaseBundleDir string
	CargoManifest    string
	AppManifest      string

	// Bundler settings
	BundleCommand []string
	ArchiveExt    string
	SigExt        string

	// Signing secrets handed to the bundler process (environment-only).
	SigningKey         string
	SigningKeyPassword string

	// Platforms maps a platform identifier (e.g. "windows-x86_64") to
	// the release asset filename pattern for that platform. The literal
	// token {{version}} is substituted with the resolved version.
	Platforms map[string]string
}

// Validation errors.
var (
	ErrMissingRepo      = errors.New("repo is required (owner/name)")
	ErrMissingAPIToken  = errors.New("api_token is required")
	ErrMissingBuildsDir = errors.New("builds_dir is required")
	ErrMissingManifest  = errors.New("cargo_manifest and app_manifest are required")
	ErrMissingBundleCmd = errors.New("bundler command is required")
)

// DefaultConfigPath returns the default path for the shipkit config file.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "shipkit", "config"), nil
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		GistFile:      "latest.json",
		APIBaseURL:    "https://api.github.com",
		UploadBaseURL: "https://uploads.github.com",
		DownloadBase:  "https://github.com",
		ArchiveExt:    ".msi.zip",
		SigExt:        ".sig",
		Platforms:     make(map[string]string),
	}
}

// Load loads configuration from an INI file and applies environment
// overrides for secrets. If path is empty the default location is used;
// a missing file returns defaults with no error so that `config init`
// can run before any file exists.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.applyEnv()
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	hosting := iniFile.Section("hosting")
	cfg.Repo = hosting.Key("repo").String()
	cfg.APIToken = hosting.Key("api_token").String()
	cfg.GistID = hosting.Key("gist_id").String()
	cfg.GistFile = hosting.Key("gist_file").MustString(cfg.GistFile)
	cfg.APIBaseURL = hosting.Key("api_base_url").MustString(cfg.APIBaseURL)
	cfg.UploadBaseURL = hosting.Key("upload_base_url").MustString(cfg.UploadBaseURL)
	cfg.DownloadBase = hosting.Key("download_base").MustString(cfg.DownloadBase)

	paths := iniFile.Section("paths")
	cfg.BuildsDir = paths.Key("builds_dir").String()
	cfg.DebugBundleDir = paths.Key("debug_bundle_dir").String()
	cfg.ReleaseBundleDir = paths.Key("release_bundle_dir").String()
	cfg.CargoManifest = paths.Key("cargo_manifest").String()
	cfg.AppManifest = paths.Key("app_manifest").String()

	bundler := iniFile.Section("bundler")
	if cmd := bundler.Key("command").String(); cmd != "" {
		cfg.BundleCommand = strings.Fields(cmd)
	}
	cfg.ArchiveExt = bundler.Key("archive_ext").MustString(cfg.ArchiveExt)
	cfg.SigExt = bundler.Key("sig_ext").MustString(cfg.SigExt)

	for _, key := range iniFile.Section("platforms").Keys() {
		cfg.Platforms[key.Name()] = key.String()
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment-sourced secrets onto the config. This is
// the single place ambient environment is consulted.
func (cfg *Config) applyEnv() {
	if v := os.Getenv("SHIPKIT_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	cfg.SigningKey = os.Getenv("SHIPKIT_SIGNING_KEY")
	cfg.SigningKeyPassword = os.Getenv("SHIPKIT_SIGNING_KEY_PASSWORD")
}

// Save writes the non-secret configuration to an INI file. Creates
// parent directories if they don't exist and replaces the file
// atomically via tmp+rename.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()

	hosting, err := iniFile.NewSection("hosting")
	if err != nil {
		return fmt.Errorf("failed to create hosting section: %w", err)
	}
	hosting.Key("repo").SetValue(cfg.Repo)
	hosting.Key("api_token").SetValue(cfg.APIToken)
	hosting.Key("gist_id").SetValue(cfg.GistID)
	hosting.Key("gist_file").SetValue(cfg.GistFile)

	paths, err := iniFile.NewSection("paths")
	if err != nil {
		return fmt.Errorf("failed to create paths section: %w", err)
	}
	paths.Key("builds_dir").SetValue(cfg.BuildsDir)
	paths.Key("debug_bundle_dir").SetValue(cfg.DebugBundleDir)
	paths.Key("release_bundle_dir").SetValue(cfg.ReleaseBundleDir)
	paths.Key("cargo_manifest").SetValue(cfg.CargoManifest)
	paths.Key("app_manifest").SetValue(cfg.AppManifest)

	bundler, err := iniFile.NewSection("bundler")
	if err != nil {
		return fmt.Errorf("failed to create bundler section: %w", err)
	}
	bundler.Key("command").SetValue(strings.Join(cfg.BundleCommand, " "))
	bundler.Key("archive_ext").SetValue(cfg.ArchiveExt)
	bundler.Key("sig_ext").SetValue(cfg.SigExt)

	platforms, err := iniFile.NewSection("platforms")
	if err != nil {
		return fmt.Errorf("failed to create platforms section: %w", err)
	}
	for id, pattern := range cfg.Platforms {
		platforms.Key(id).SetValue(pattern)
	}

	// The token is sensitive; write restrictive permissions and rename
	// into place.
	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks that everything the build/publish workflows need is
// present.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Repo) == "" || !strings.Contains(cfg.Repo, "/") {
		return ErrMissingRepo
	}
	if strings.TrimSpace(cfg.APIToken) == "" {
		return ErrMissingAPIToken
	}
	if strings.TrimSpace(cfg.BuildsDir) == "" {
		return ErrMissingBuildsDir
	}
	if strings.TrimSpace(cfg.CargoManifest) == "" || strings.TrimSpace(cfg.AppManifest) == "" {
		return ErrMissingManifest
	}
	if len(cfg.BundleCommand) == 0 {
		return ErrMissingBundleCmd
	}
	return nil
}

// BundleDir returns the bundler output directory for a lineage name
// ("debug" or "release").
func (cfg *Config) BundleDir(debug bool) string {
	if debug {
		return cfg.DebugBundleDir
	}
	return cfg.ReleaseBundleDir
}
