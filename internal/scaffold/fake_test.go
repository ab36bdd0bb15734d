package scaffold

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/create-jslib/internal/installer"
	"github.com/agentx-labs/create-jslib/internal/manifest"
	"github.com/agentx-labs/create-jslib/internal/resolver"
)

// fakeNPM mimics npm against the filesystem: installs add entries to the
// manifest in req.Dir and create directories in its node_modules. A scratch
// install drops the configured template package into place.
type fakeNPM struct {
	pkgName  string
	metadata string
	files    map[string]string
	// failOn is the zero-based call index that fails; -1 never fails.
	failOn int
	calls  []installer.Request
}

func newFakeNPM(pkgName, metadata string) *fakeNPM {
	return &fakeNPM{pkgName: pkgName, metadata: metadata, failOn: -1}
}

func (f *fakeNPM) Install(_ context.Context, req installer.Request) error {
	idx := len(f.calls)
	f.calls = append(f.calls, req)
	if idx == f.failOn {
		return &installer.InstallationError{
			Command:  "npm " + strings.Join(installer.Args(req), " "),
			ExitCode: 1,
			Err:      errors.New("exit status 1"),
		}
	}

	store := filepath.Join(req.Dir, DependencyStore)
	if err := os.MkdirAll(store, 0755); err != nil {
		return err
	}

	if filepath.Base(req.Dir) == ScratchDirName {
		if err := f.writeTemplate(filepath.Join(store, filepath.FromSlash(f.pkgName))); err != nil {
			return err
		}
		return addDeps(req.Dir, manifest.FieldDependencies,
			[]installer.Specifier{{Name: f.pkgName, Version: "1.0.0"}})
	}

	for _, spec := range req.Specifiers {
		if err := os.MkdirAll(filepath.Join(store, filepath.FromSlash(spec.Name)), 0755); err != nil {
			return err
		}
	}
	section := manifest.FieldDependencies
	if req.Dev {
		section = manifest.FieldDevDependencies
	}
	return addDeps(req.Dir, section, req.Specifiers)
}

func (f *fakeNPM) writeTemplate(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if f.metadata != "" {
		if err := os.WriteFile(filepath.Join(dir, "template.json"), []byte(f.metadata), 0644); err != nil {
			return err
		}
	}
	for rel, content := range f.files {
		path := filepath.Join(dir, "template", filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

func addDeps(dir, section string, specs []installer.Specifier) error {
	if len(specs) == 0 {
		return nil
	}
	path := filepath.Join(dir, manifest.FileName)
	m, err := manifest.Read(path)
	if err != nil {
		return err
	}
	deps, err := m.Dependencies(section)
	if err != nil {
		return err
	}
	for _, s := range specs {
		version := s.Version
		if version == "" {
			version = "1.0.0"
		}
		deps[s.Name] = version
	}
	raw, err := json.Marshal(deps)
	if err != nil {
		return err
	}
	m.Set(section, raw)
	return m.Write(path)
}

// names returns the specifier strings of a recorded call.
func names(req installer.Request) []string {
	return installer.Strings(req.Specifiers)
}

func newTestScaffolder(npm *fakeNPM, out *strings.Builder, stages *[]Stage) *Scaffolder {
	opts := Options{
		Installer: npm,
		Resolver:  &resolver.Resolver{Prefix: "jslib-template"},
		Out:       out,
	}
	if stages != nil {
		opts.OnStage = func(s Stage) { *stages = append(*stages, s) }
	}
	return New(opts)
}

func prepareProject(t *testing.T, root string) *Project {
	t.Helper()
	p, err := Prepare(root, "my-lib")
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	return p
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
