package updater

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/caldera-app/shipkit/internal/artifacts"
	"github.com/caldera-app/shipkit/internal/config"
	"github.com/caldera-app/shipkit/internal/version"
)

func testFiles(t *testing.T) artifacts.BuildFiles {
	t.Helper()
	dir := t.TempDir()
	archive := filepath.Join(dir, "caldera_1.4.3_x64_en-US.msi.zip")
	sig := filepath.Join(dir, "caldera_1.4.3_x64_en-US.msi.zip.sig")
	if err := os.WriteFile(archive, []byte("archive"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sig, []byte("dW50cnVzdGVkIHNpZw=="), 0644); err != nil {
		t.Fatal(err)
	}
	return artifacts.BuildFiles{
		ArchiveName: filepath.Base(archive),
		ArchivePath: archive,
		SigName:     filepath.Base(sig),
		SigPath:     sig,
	}
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Repo = "caldera-app/caldera"
	cfg.Platforms = map[string]string{
		"windows-x86_64": "caldera_{{version}}_x64_en-US.msi.zip",
	}
	return cfg
}

func TestBuildDocument(t *testing.T) {
	cfg := testConfig()
	av := version.AppVersion{Version: version.Version{Major: 1, Minor: 4, Patch: 3}, Build: version.Release}

	doc, err := BuildDocument(cfg, av, testFiles(t), "bug fixes")
	if err != nil {
		t.Fatalf("BuildDocument failed: %v", err)
	}

	if doc.Version != "1.4.3" {
		t.Errorf("Version = %q, want 1.4.3", doc.Version)
	}
	if doc.Notes != "bug fixes" {
		t.Errorf("Notes = %q", doc.Notes)
	}
	if _, err := time.Parse(time.RFC3339, doc.PubDate); err != nil {
		t.Errorf("PubDate %q is not valid RFC 3339: %v", doc.PubDate, err)
	}

	platform, ok := doc.Platforms["windows-x86_64"]
	if !ok {
		t.Fatal("missing windows-x86_64 platform entry")
	}
	if !strings.Contains(platform.URL, "1.4.3") {
		t.Errorf("URL should contain the version: %q", platform.URL)
	}
	want := "https://github.com/caldera-app/caldera/releases/download/v1.4.3/caldera_1.4.3_x64_en-US.msi.zip"
	if platform.URL != want {
		t.Errorf("URL = %q, want %q", platform.URL, want)
	}
	if platform.Signature != "dW50cnVzdGVkIHNpZw==" {
		t.Errorf("Signature = %q", platform.Signature)
	}
}

func TestBuildDocumentDebugTagInURL(t *testing.T) {
	cfg := testConfig()
	av := version.AppVersion{Version: version.Version{Major: 1, Minor: 4, Patch: 3}, Build: version.Debug}

	doc, err := BuildDocument(cfg, av, testFiles(t), "")
	if err != nil {
		t.Fatalf("BuildDocument failed: %v", err)
	}
	if !strings.Contains(doc.Platforms["windows-x86_64"].URL, "/v1.4.3-dev/") {
		t.Errorf("debug URL should use the -dev tag: %q", doc.Platforms["windows-x86_64"].URL)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := testConfig()
	av := version.AppVersion{Version: version.Version{Major: 1, Minor: 4, Patch: 3}, Build: version.Release}

	doc, err := BuildDocument(cfg, av, testFiles(t), "notes")
	if err != nil {
		t.Fatal(err)
	}

	encoded, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded Document
	if err := json.Unmarshal([]byte(encoded), &decoded); err != nil {
		t.Fatalf("encoded document is not valid JSON: %v", err)
	}
	if decoded.Version != "1.4.3" || len(decoded.Platforms) != 1 {
		t.Errorf("decoded document mismatch: %+v", decoded)
	}
}

func TestBuildDocumentMissingSignature(t *testing.T) {
	cfg := testConfig()
	files := testFiles(t)
	os.Remove(files.SigPath)

	av := version.AppVersion{Version: version.Version{Major: 1, Minor: 4, Patch: 3}, Build: version.Release}
	if _, err := BuildDocument(cfg, av, files, ""); err == nil {
		t.Fatal("expected error when signature file is missing")
	}
}
