// Package bundler invokes the external packaging command that builds and
// signs the application archive.
package bundler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/caldera-app/shipkit/internal/config"
	"github.com/caldera-app/shipkit/internal/version"
)

// ErrBuildFailed indicates a non-zero exit from the packaging command.
// The wrapped error message carries the captured combined output.
var ErrBuildFailed = errors.New("bundler failed")

// Bundler runs the configured packaging command.
type Bundler struct {
	cfg *config.Config
}

// New creates a Bundler for the given configuration.
func New(cfg *config.Config) *Bundler {
	return &Bundler{cfg: cfg}
}

// Run executes the packaging command in the mode implied by the lineage:
// the debug lineage appends --debug. The process inherits the current
// environment plus the two signing secrets. Output is captured, not
// streamed, so a failure report can include it verbatim.
func (b *Bundler) Run(ctx context.Context, build version.Build) error {
	args := append([]string(nil), b.cfg.BundleCommand...)
	if build == version.Debug {
		args = append(args, "--debug")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = append(os.Environ(),
		"SIGNING_PRIVATE_KEY="+b.cfg.SigningKey,
		"SIGNING_KEY_PASSWORD="+b.cfg.SigningKeyPassword,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w (%s lineage): %v\n%s", ErrBuildFailed, build, err, output)
	}
	return nil
}
