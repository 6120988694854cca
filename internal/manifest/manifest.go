// Package manifest rewrites the version fields of the two project
// manifests: the Cargo-style TOML manifest and the app's JSON config.
//
// Rewriting is deliberately line-based (whole-file read, line transform,
// whole-file write) so the rest of the file, including formatting and
// comments, is left untouched. If the version line is never matched the
// rewrite is a no-op; callers that need to notice a stale manifest can
// compare with CargoVersion/AppConfigVersion afterwards.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	tomlVersionPrefix = "version = "
	jsonVersionPrefix = `"version"`
)

// SetCargoVersion replaces the `version = "…"` line of the TOML manifest
// at path with the given version string.
func SetCargoVersion(path, version string) error {
	return rewriteLines(path, func(line string) string {
		if strings.HasPrefix(line, tomlVersionPrefix) {
			return fmt.Sprintf("version = %q", version)
		}
		return line
	})
}

// SetAppConfigVersion replaces the `"version": "…",` line of the JSON
// config at path, preserving the line's indentation. The trailing comma
// is always emitted; the version field must not be the last key of its
// object.
func SetAppConfigVersion(path, version string) error {
	return rewriteLines(path, func(line string) string {
		if strings.HasPrefix(strings.TrimSpace(line), jsonVersionPrefix) {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			return fmt.Sprintf("%s%q: %q,", indent, "version", version)
		}
		return line
	})
}

func rewriteLines(path string, transform func(string) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = transform(line)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

// CargoVersion reads the package version from the TOML manifest using a
// structural parser. Used for status display, not for rewriting.
func CargoVersion(path string) (string, error) {
	var doc struct {
		Package struct {
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc.Package.Version, nil
}

// AppConfigVersion reads the top-level version from the JSON config.
func AppConfigVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc.Version, nil
}
