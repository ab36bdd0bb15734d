package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/agentx-labs/create-jslib/internal/output"
)

// Request describes one installer invocation.
type Request struct {
	// Dir is the working directory whose manifest and dependency store the
	// installer mutates.
	Dir        string
	Specifiers []Specifier
	Dev        bool
	Verbose    bool
}

// Installer installs packages into a project directory.
type Installer interface {
	Install(ctx context.Context, req Request) error
}

// InstallationError reports an installer run that did not exit cleanly.
type InstallationError struct {
	// Command is the reconstructed command line, program included.
	Command  string
	ExitCode int
	Err      error
}

func (e *InstallationError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("running %s: %v", e.Command, e.Err)
}

func (e *InstallationError) Unwrap() error { return e.Err }

// NPM runs npm (or a CLI-compatible package manager).
type NPM struct {
	// Program is the package manager binary; defaults to "npm".
	Program string

	// Stdin, Stdout and Stderr can be set for testing; defaults to the
	// process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// mu serializes installs: concurrent runs would race on the same
	// manifest and dependency store.
	mu sync.Mutex
}

// NewNPM returns an NPM installer for the given program.
func NewNPM(program string) *NPM {
	return &NPM{Program: program}
}

func (n *NPM) program() string {
	if n.Program == "" {
		return "npm"
	}
	return n.Program
}

// Args builds the installer arguments for a request.
func Args(req Request) []string {
	save := "--save"
	if req.Dev {
		save = "--save-dev"
	}
	args := []string{"install", save, "--save-exact", "--loglevel", "error"}
	if req.Verbose {
		args = append(args, "--verbose")
	}
	return append(args, Strings(req.Specifiers)...)
}

// CommandLine returns the command line Install would run for req.
func (n *NPM) CommandLine(req Request) string {
	return strings.Join(append([]string{n.program()}, Args(req)...), " ")
}

// Install runs the package manager and blocks until it exits.
func (n *NPM) Install(ctx context.Context, req Request) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	args := Args(req)
	command := n.CommandLine(req)
	output.Debug("running installer", "dir", req.Dir, "command", command)

	bin, err := exec.LookPath(n.program())
	if err != nil {
		return &InstallationError{Command: command, ExitCode: -1, Err: err}
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = req.Dir
	cmd.Stdin = n.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = n.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = n.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		ie := &InstallationError{Command: command, ExitCode: -1, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			ie.ExitCode = exitErr.ExitCode()
		}
		return ie
	}
	return nil
}
