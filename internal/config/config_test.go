package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	if cfg.GistFile != "latest.json" {
		t.Errorf("expected default GistFile latest.json, got %s", cfg.GistFile)
	}
	if cfg.ArchiveExt != ".msi.zip" {
		t.Errorf("expected default ArchiveExt .msi.zip, got %s", cfg.ArchiveExt)
	}
	if cfg.SigExt != ".sig" {
		t.Errorf("expected default SigExt .sig, got %s", cfg.SigExt)
	}
	if cfg.APIBaseURL != "https://api.github.com" {
		t.Errorf("expected default APIBaseURL, got %s", cfg.APIBaseURL)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")

	cfg := New()
	cfg.Repo = "caldera-app/caldera"
	cfg.APIToken = "test-token-12345"
	cfg.GistID = "abc123"
	cfg.BuildsDir = "/tmp/builds"
	cfg.DebugBundleDir = "/tmp/target/debug/bundle/msi"
	cfg.ReleaseBundleDir = "/tmp/target/release/bundle/msi"
	cfg.CargoManifest = "/tmp/src-tauri/Cargo.toml"
	cfg.AppManifest = "/tmp/src-tauri/tauri.conf.json"
	cfg.BundleCommand = []string{"pnpm", "tauri", "build"}
	cfg.Platforms = map[string]string{
		"windows-x86_64": "caldera_{{version}}_x64_en-US.msi.zip",
	}

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Repo != cfg.Repo {
		t.Errorf("Repo mismatch: expected %s, got %s", cfg.Repo, loaded.Repo)
	}
	if loaded.APIToken != cfg.APIToken {
		t.Errorf("APIToken mismatch: expected %s, got %s", cfg.APIToken, loaded.APIToken)
	}
	if loaded.GistID != cfg.GistID {
		t.Errorf("GistID mismatch: expected %s, got %s", cfg.GistID, loaded.GistID)
	}
	if loaded.BuildsDir != cfg.BuildsDir {
		t.Errorf("BuildsDir mismatch: expected %s, got %s", cfg.BuildsDir, loaded.BuildsDir)
	}
	if len(loaded.BundleCommand) != 3 || loaded.BundleCommand[0] != "pnpm" {
		t.Errorf("BundleCommand mismatch: got %v", loaded.BundleCommand)
	}
	if loaded.Platforms["windows-x86_64"] != cfg.Platforms["windows-x86_64"] {
		t.Errorf("Platforms mismatch: got %v", loaded.Platforms)
	}
}

func TestLoadNonExistentReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does", "not", "exist"))
	if err != nil {
		t.Fatalf("Load should not fail for non-existent file: %v", err)
	}
	if cfg.GistFile != "latest.json" {
		t.Error("expected defaults for non-existent file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SHIPKIT_API_TOKEN", "env-token")
	t.Setenv("SHIPKIT_SIGNING_KEY", "env-key")
	t.Setenv("SHIPKIT_SIGNING_KEY_PASSWORD", "env-pass")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config")
	cfg := New()
	cfg.APIToken = "file-token"
	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.APIToken != "env-token" {
		t.Errorf("expected env token to override file, got %s", loaded.APIToken)
	}
	if loaded.SigningKey != "env-key" || loaded.SigningKeyPassword != "env-pass" {
		t.Errorf("signing secrets not picked up from environment")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := New()
		cfg.Repo = "owner/name"
		cfg.APIToken = "t"
		cfg.BuildsDir = "/b"
		cfg.CargoManifest = "/c"
		cfg.AppManifest = "/a"
		cfg.BundleCommand = []string{"make", "bundle"}
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("valid config should pass, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing repo", func(c *Config) { c.Repo = "" }, ErrMissingRepo},
		{"repo without owner", func(c *Config) { c.Repo = "caldera" }, ErrMissingRepo},
		{"missing token", func(c *Config) { c.APIToken = "" }, ErrMissingAPIToken},
		{"missing builds dir", func(c *Config) { c.BuildsDir = "" }, ErrMissingBuildsDir},
		{"missing manifest", func(c *Config) { c.AppManifest = "" }, ErrMissingManifest},
		{"missing bundle command", func(c *Config) { c.BundleCommand = nil }, ErrMissingBundleCmd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
