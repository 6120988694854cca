package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cargoSample = `[package]
name = "caldera"
version = "1.4.2"
edition = "2021"

[dependencies]
serde = "1.0"
`

const appConfigSample = `{
  "productName": "Caldera",
  "version": "1.4.2",
  "identifier": "com.caldera.app"
}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestSetCargoVersion(t *testing.T) {
	path := writeTemp(t, "Cargo.toml", cargoSample)

	if err := SetCargoVersion(path, "1.4.3"); err != nil {
		t.Fatalf("SetCargoVersion failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, `version = "1.4.3"`) {
		t.Errorf("expected rewritten version line, got:\n%s", content)
	}
	if strings.Contains(content, "1.4.2") {
		t.Errorf("old version still present:\n%s", content)
	}
	// Unrelated lines untouched.
	if !strings.Contains(content, `name = "caldera"`) || !strings.Contains(content, `serde = "1.0"`) {
		t.Errorf("unrelated lines were modified:\n%s", content)
	}

	got, err := CargoVersion(path)
	if err != nil {
		t.Fatalf("CargoVersion failed: %v", err)
	}
	if got != "1.4.3" {
		t.Errorf("CargoVersion = %q, want 1.4.3", got)
	}
}

func TestSetAppConfigVersion(t *testing.T) {
	path := writeTemp(t, "tauri.conf.json", appConfigSample)

	if err := SetAppConfigVersion(path, "1.4.3"); err != nil {
		t.Fatalf("SetAppConfigVersion failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, `  "version": "1.4.3",`) {
		t.Errorf("expected rewritten version line with indentation and trailing comma, got:\n%s", content)
	}

	got, err := AppConfigVersion(path)
	if err != nil {
		t.Fatalf("AppConfigVersion failed after rewrite: %v", err)
	}
	if got != "1.4.3" {
		t.Errorf("AppConfigVersion = %q, want 1.4.3", got)
	}
}

func TestRewriteNoMatchIsNoOp(t *testing.T) {
	content := "[package]\nname = \"caldera\"\n"
	path := writeTemp(t, "Cargo.toml", content)

	if err := SetCargoVersion(path, "9.9.9"); err != nil {
		t.Fatalf("SetCargoVersion failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != content {
		t.Errorf("no-match rewrite should leave file unchanged, got:\n%s", data)
	}
}

func TestSetCargoVersionIgnoresNestedVersionKeys(t *testing.T) {
	// Dependency version lines are indented or prefixed and must not be
	// rewritten; only the bare `version = ` line at column zero matches.
	content := "[package]\nversion = \"1.0.0\"\n\n[dependencies.serde]\n  version = \"1.0\"\n"
	path := writeTemp(t, "Cargo.toml", content)

	if err := SetCargoVersion(path, "2.0.0"); err != nil {
		t.Fatalf("SetCargoVersion failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "  version = \"1.0\"") {
		t.Errorf("indented dependency version was rewritten:\n%s", data)
	}
	if !strings.Contains(string(data), `version = "2.0.0"`) {
		t.Errorf("package version was not rewritten:\n%s", data)
	}
}

func TestSetCargoVersionMissingFile(t *testing.T) {
	err := SetCargoVersion(filepath.Join(t.TempDir(), "nope.toml"), "1.0.0")
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
}
