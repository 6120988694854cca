// Package updater builds the auto-update metadata document consumed by
// updater clients. The document lives in a single shared gist file:
// whichever lineage publishes last wins, which is intentional, since the
// document means "latest available update".
package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caldera-app/shipkit/internal/artifacts"
	"github.com/caldera-app/shipkit/internal/config"
	"github.com/caldera-app/shipkit/internal/version"
)

// Document is the update-metadata JSON pushed to the shared gist.
type Document struct {
	Version   string              `json:"version"`
	PubDate   string              `json:"pub_date"`
	Notes     string              `json:"notes"`
	Platforms map[string]Platform `json:"platforms"`
}

// Platform carries the per-platform signature and download URL.
type Platform struct {
	Signature string `json:"signature"`
	URL       string `json:"url"`
}

// BuildDocument assembles the document for a published version. The
// publish date is the archive's last-modified time; the signature
// contents are inlined from the local signature file; each platform URL
// points at the release asset named by the platform's filename pattern.
func BuildDocument(cfg *config.Config, av version.AppVersion, files artifacts.BuildFiles, notes string) (*Document, error) {
	info, err := os.Stat(files.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive %s: %w", files.ArchivePath, err)
	}

	sig, err := os.ReadFile(files.SigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature %s: %w", files.SigPath, err)
	}

	doc := &Document{
		Version:   av.Version.String(),
		PubDate:   info.ModTime().UTC().Format(time.RFC3339),
		Notes:     notes,
		Platforms: make(map[string]Platform),
	}

	for platformID, pattern := range cfg.Platforms {
		assetName := strings.ReplaceAll(pattern, "{{version}}", av.Version.String())
		doc.Platforms[platformID] = Platform{
			Signature: string(sig),
			URL: fmt.Sprintf("%s/%s/releases/download/%s/%s",
				strings.TrimSuffix(cfg.DownloadBase, "/"), cfg.Repo, av.Tag(), assetName),
		}
	}

	return doc, nil
}

// Encode renders the document as indented JSON for the gist file.
func (d *Document) Encode() (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode update document: %w", err)
	}
	return string(data), nil
}
