package bundler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/caldera-app/shipkit/internal/config"
	"github.com/caldera-app/shipkit/internal/version"
)

func TestRunSuccess(t *testing.T) {
	cfg := config.New()
	cfg.BundleCommand = []string{"true"}

	if err := New(cfg).Run(context.Background(), version.Release); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestRunFailureCarriesOutput(t *testing.T) {
	cfg := config.New()
	cfg.BundleCommand = []string{"sh", "-c", "echo linker exploded >&2; exit 3"}

	err := New(cfg).Run(context.Background(), version.Release)
	if !errors.Is(err, ErrBuildFailed) {
		t.Fatalf("Run error = %v, want ErrBuildFailed", err)
	}
	if !strings.Contains(err.Error(), "linker exploded") {
		t.Errorf("error should carry captured output: %v", err)
	}
}

func TestRunDebugAppendsFlag(t *testing.T) {
	cfg := config.New()
	// Fails unless the last argument is --debug.
	cfg.BundleCommand = []string{"sh", "-c", `[ "$1" = "--debug" ]`, "bundler"}

	if err := New(cfg).Run(context.Background(), version.Debug); err != nil {
		t.Errorf("Run(debug) should pass --debug to the command: %v", err)
	}
	if err := New(cfg).Run(context.Background(), version.Release); err == nil {
		t.Error("Run(release) should not pass --debug")
	}
}

func TestRunPassesSigningEnv(t *testing.T) {
	cfg := config.New()
	cfg.SigningKey = "key-material"
	cfg.SigningKeyPassword = "hunter2"
	cfg.BundleCommand = []string{"sh", "-c",
		`[ "$SIGNING_PRIVATE_KEY" = "key-material" ] && [ "$SIGNING_KEY_PASSWORD" = "hunter2" ]`}

	if err := New(cfg).Run(context.Background(), version.Release); err != nil {
		t.Errorf("signing secrets not visible to the bundler process: %v", err)
	}
}
