package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agentx-labs/create-jslib/internal/manifest"
	"github.com/agentx-labs/create-jslib/internal/output"
)

// DependencyStore is the directory the package manager installs into.
const DependencyStore = "node_modules"

// KnownArtifacts are the only root entries a rollback may delete.
var KnownArtifacts = []string{manifest.FileName, DependencyStore}

// safeFiles may already exist in a directory that is being bootstrapped.
var safeFiles = []string{
	".DS_Store",
	".git",
	".gitattributes",
	".gitignore",
	".gitlab-ci.yml",
	".hg",
	".hgcheck",
	".hgignore",
	".idea",
	".npmignore",
	".travis.yml",
	"docs",
	"LICENSE",
	"README.md",
	"mkdocs.yml",
	"Thumbs.db",
}

var errorLogPrefixes = []string{"npm-debug.log", "yarn-error.log", "yarn-debug.log"}

// Project is a target directory being bootstrapped.
type Project struct {
	Root    string
	AppName string
	Journal *Journal
	// Manifest is the in-memory package.json. It is written by Prepare and
	// again after the merge; installer results are folded in as they land.
	Manifest *manifest.Manifest
}

// Journal records what a run created under the project root so a rollback
// removes only that.
type Journal struct {
	root        string
	rootCreated bool
	created     []string
}

// NewJournal returns an empty journal for root.
func NewJournal(root string) *Journal {
	return &Journal{root: root}
}

// Track records name as created by this run if it is a known artifact that
// does not exist yet. Call it before the artifact is written.
func (j *Journal) Track(name string) {
	if !slices.Contains(KnownArtifacts, name) || slices.Contains(j.created, name) {
		return
	}
	if _, err := os.Lstat(filepath.Join(j.root, name)); err == nil {
		return
	}
	j.created = append(j.created, name)
}

// Created returns the tracked artifacts in tracking order.
func (j *Journal) Created() []string {
	return slices.Clone(j.created)
}

// RootCreated reports whether this run created the project root.
func (j *Journal) RootCreated() bool {
	return j.rootCreated
}

// Rollback deletes the tracked artifacts and, when nothing else is left in
// it, the project root itself.
func (j *Journal) Rollback(w io.Writer) error {
	var errs []error
	for _, name := range KnownArtifacts {
		if !slices.Contains(j.created, name) {
			continue
		}
		path := filepath.Join(j.root, name)
		if _, err := os.Lstat(path); err != nil {
			continue
		}
		fmt.Fprintf(w, "Deleting generated file... %s\n", output.Noun(name))
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, &FilesystemError{Op: "remove", Path: path, Err: err})
		}
	}
	j.created = nil

	entries, err := os.ReadDir(j.root)
	if err != nil || len(entries) > 0 {
		return errors.Join(errs...)
	}
	fmt.Fprintf(w, "Deleting %s from %s\n",
		output.Noun(filepath.Base(j.root)+"/"), output.Noun(filepath.Dir(j.root)))
	if err := os.Remove(j.root); err != nil {
		errs = append(errs, &FilesystemError{Op: "remove", Path: j.root, Err: err})
	}
	return errors.Join(errs...)
}

// ConflictError lists files that prevent bootstrapping into a directory.
type ConflictError struct {
	Root  string
	Files []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("directory %s contains files that could conflict: %s",
		e.Root, strings.Join(e.Files, ", "))
}

// Conflicts returns the entries of root that are not safe to keep in a new
// project.
func Conflicts(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var conflicts []string
	for _, e := range entries {
		if isSafeFile(e.Name()) {
			continue
		}
		conflicts = append(conflicts, e.Name())
	}
	return conflicts, nil
}

func isSafeFile(name string) bool {
	if slices.Contains(safeFiles, name) || strings.HasSuffix(name, ".iml") {
		return true
	}
	for _, prefix := range errorLogPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Prepare creates root if needed, checks it for conflicting files and writes
// the initial package.json. The returned project's journal covers both.
func Prepare(root, appName string) (*Project, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	j := NewJournal(root)

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, &FilesystemError{Op: "create", Path: root, Err: err}
		}
		j.rootCreated = true
	case err != nil:
		return nil, &FilesystemError{Op: "stat", Path: root, Err: err}
	case !info.IsDir():
		return nil, fmt.Errorf("%s exists and is not a directory", root)
	}

	conflicts, err := Conflicts(root)
	if err != nil {
		return nil, &FilesystemError{Op: "read", Path: root, Err: err}
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Root: root, Files: conflicts}
	}

	j.Track(manifest.FileName)
	m := manifest.New(appName)
	path := filepath.Join(root, manifest.FileName)
	if err := m.Write(path); err != nil {
		_ = j.Rollback(io.Discard)
		return nil, &FilesystemError{Op: "write", Path: path, Err: err}
	}
	output.Debug("prepared project", "root", root, "created", j.rootCreated)

	return &Project{Root: root, AppName: appName, Journal: j, Manifest: m}, nil
}
