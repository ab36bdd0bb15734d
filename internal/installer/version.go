package installer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinimumVersion is the oldest package manager release known to support
// every flag Install passes.
const MinimumVersion = ">= 6.0.0"

// Version runs "<program> --version" and parses the reported release.
func (n *NPM) Version(ctx context.Context) (*semver.Version, error) {
	bin, err := exec.LookPath(n.program())
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", n.program(), err)
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--version")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s --version: %w", n.program(), err)
	}

	raw := strings.TrimPrefix(strings.TrimSpace(stdout.String()), "v")
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s version %q: %w", n.program(), raw, err)
	}
	return v, nil
}

// CheckVersion returns an error when v does not satisfy constraint.
func CheckVersion(v *semver.Version, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("version %s does not satisfy %s", v, constraint)
	}
	return nil
}
