package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentx-labs/create-jslib/internal/filetree"
	"github.com/agentx-labs/create-jslib/internal/installer"
	"github.com/agentx-labs/create-jslib/internal/manifest"
	"github.com/agentx-labs/create-jslib/internal/output"
	"github.com/agentx-labs/create-jslib/internal/resolver"
	"github.com/agentx-labs/create-jslib/internal/template"
)

// ScratchDirName is the workspace under the project root that the template
// package is installed into. It never outlives a run.
const ScratchDirName = "tmp-template"

// Options configures a Scaffolder.
type Options struct {
	Installer installer.Installer
	Resolver  *resolver.Resolver
	// Out receives progress narration. Defaults to os.Stdout.
	Out     io.Writer
	Verbose bool
	// OnStage, if set, is called as each stage begins.
	OnStage func(Stage)
}

// Scaffolder runs the bootstrap sequence for a prepared project.
type Scaffolder struct {
	opts Options
	out  io.Writer
}

// New returns a Scaffolder.
func New(opts Options) *Scaffolder {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Resolver == nil {
		opts.Resolver = &resolver.Resolver{}
	}
	return &Scaffolder{opts: opts, out: out}
}

// Run bootstraps p from the template named by templateName, as the user
// typed it. An empty name selects the default template.
//
// A failure to fetch the template returns a *TemplateFetchError and leaves
// the project as prepared. Any later failure rolls back the project and
// returns an *AbortError.
func (s *Scaffolder) Run(ctx context.Context, p *Project, templateName string) error {
	s.println("Installing packages. This might take a couple of minutes.")

	scratch := filepath.Join(p.Root, ScratchDirName)
	templateDir, err := s.fetchTemplate(ctx, p, templateName, scratch)
	if err != nil {
		s.removeScratch(scratch)
		s.println("Fail to get template package:", err)
		return err
	}

	stage, err := s.build(ctx, p, templateName, templateDir)
	s.removeScratch(scratch)
	if err != nil {
		s.abort(p, err)
		return &AbortError{Stage: stage, Err: err}
	}

	s.enter(StageDone)
	return nil
}

// fetchTemplate installs the template package into scratch and returns the
// installed package directory.
func (s *Scaffolder) fetchTemplate(ctx context.Context, p *Project, name, scratch string) (string, error) {
	s.enter(StageResolvingTemplate)
	tpl, err := s.opts.Resolver.Resolve(name)
	if err != nil {
		return "", &TemplateFetchError{Template: name, Err: err}
	}
	fail := func(err error) (string, error) {
		return "", &TemplateFetchError{Template: tpl.Spec.String(), Err: err}
	}

	s.enter(StageInstallingTemplatePackage)
	s.println("Getting template")
	s.println()

	if err := os.MkdirAll(scratch, 0755); err != nil {
		return fail(&FilesystemError{Op: "create", Path: scratch, Err: err})
	}
	scratchManifest := filepath.Join(scratch, manifest.FileName)
	if err := copyManifest(filepath.Join(p.Root, manifest.FileName), scratchManifest); err != nil {
		return fail(err)
	}

	err = s.opts.Installer.Install(ctx, installer.Request{
		Dir:        scratch,
		Specifiers: []installer.Specifier{tpl.Spec},
		Verbose:    s.opts.Verbose,
	})
	if err != nil {
		return fail(err)
	}

	pkgName := tpl.Name
	if pkgName == "" {
		if pkgName, err = installedName(scratchManifest); err != nil {
			return fail(err)
		}
	}
	if err := os.Remove(scratchManifest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fail(&FilesystemError{Op: "remove", Path: scratchManifest, Err: err})
	}

	dir := filepath.Join(scratch, DependencyStore, filepath.FromSlash(pkgName))
	output.Debug("template installed", "package", pkgName, "dir", dir)
	return dir, nil
}

// build runs every stage after the template fetch. It returns the stage that
// was active when an error occurred.
func (s *Scaffolder) build(ctx context.Context, p *Project, templateName, templateDir string) (Stage, error) {
	s.enter(StageLoadingTemplateMetadata)
	meta, err := template.Load(templateDir)
	if err != nil {
		return StageLoadingTemplateMetadata, err
	}
	deps := RuntimeDependencies(meta)
	devDeps := DevDependencies(meta, templateName)

	s.println("Installing dependencies")
	s.println()
	p.Journal.Track(DependencyStore)

	s.enter(StageInstallingDependencies)
	err = s.opts.Installer.Install(ctx, installer.Request{
		Dir:        p.Root,
		Specifiers: deps,
		Verbose:    s.opts.Verbose,
	})
	if err != nil {
		return StageInstallingDependencies, err
	}
	if err := s.adoptInstalled(p, manifest.FieldDependencies); err != nil {
		return StageInstallingDependencies, err
	}

	s.enter(StageInstallingDevDependencies)
	err = s.opts.Installer.Install(ctx, installer.Request{
		Dir:        p.Root,
		Specifiers: devDeps,
		Dev:        true,
		Verbose:    s.opts.Verbose,
	})
	if err != nil {
		return StageInstallingDevDependencies, err
	}
	if err := s.adoptInstalled(p, manifest.FieldDevDependencies); err != nil {
		return StageInstallingDevDependencies, err
	}

	s.enter(StageMergingManifest)
	if p.Manifest.MergeScripts(meta.Package.Scripts) {
		path := filepath.Join(p.Root, manifest.FileName)
		if err := p.Manifest.Write(path); err != nil {
			return StageMergingManifest, &FilesystemError{Op: "write", Path: path, Err: err}
		}
	}

	s.enter(StageMaterializingFiles)
	s.println("Creating files from template")
	s.println()
	result, err := filetree.Materialize(meta.FilesDir(), p.Root)
	if err != nil {
		return StageMaterializingFiles, &FilesystemError{Op: "copy", Path: meta.FilesDir(), Err: err}
	}
	output.Debug("template files copied", "count", len(result.Files))

	return StageDone, nil
}

// adoptInstalled folds the dependency section an install just recorded in
// package.json into the project's in-memory manifest.
func (s *Scaffolder) adoptInstalled(p *Project, section string) error {
	path := filepath.Join(p.Root, manifest.FileName)
	installed, err := manifest.Read(path)
	if err != nil {
		return &FilesystemError{Op: "read", Path: path, Err: err}
	}
	if p.Manifest == nil {
		p.Manifest = installed
		return nil
	}
	p.Manifest.Adopt(installed, section)
	return nil
}

func (s *Scaffolder) abort(p *Project, err error) {
	s.enter(StageRollingBack)
	s.println()
	s.println("Aborting installation.")

	var installErr *installer.InstallationError
	if errors.As(err, &installErr) {
		fmt.Fprintf(s.out, "  %s has failed.\n", output.Noun(installErr.Command))
	} else {
		s.println(output.Failure("Unexpected error. Please report it as a bug:"))
		s.println(err)
	}
	s.println()

	if rbErr := p.Journal.Rollback(s.out); rbErr != nil {
		output.Error("rollback incomplete", "err", rbErr)
	}
	s.println("Done.")
	s.enter(StageAborted)
}

func (s *Scaffolder) removeScratch(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		output.Warn("could not remove scratch directory", "dir", dir, "err", err)
	}
}

func (s *Scaffolder) enter(stage Stage) {
	output.Debug("stage", "name", stage.String())
	if s.opts.OnStage != nil {
		s.opts.OnStage(stage)
	}
}

func (s *Scaffolder) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func copyManifest(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return &FilesystemError{Op: "read", Path: src, Err: err}
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return &FilesystemError{Op: "write", Path: dst, Err: err}
	}
	return nil
}

// installedName reads the name of the single package the scratch install
// added, for templates given as a path, URL or tarball.
func installedName(path string) (string, error) {
	m, err := manifest.Read(path)
	if err != nil {
		return "", err
	}
	deps, err := m.Dependencies(manifest.FieldDependencies)
	if err != nil {
		return "", err
	}
	if len(deps) != 1 {
		return "", fmt.Errorf("expected one installed template package in %s, found %d", path, len(deps))
	}
	for name := range deps {
		return name, nil
	}
	return "", nil
}
