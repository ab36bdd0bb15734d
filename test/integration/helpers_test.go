//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	NPM         string // fake package manager script
	LogFile     string // one line per install: "<cwd> <args>"
	TemplateDir string // package contents the fake installs for a template
	ParentDir   string // where projects are created
}

// fakeNPMScript mimics "npm install": it logs the call, creates
// node_modules/<name> for every specifier and, inside the scratch
// directory, fills the package with $TEMPLATE_SRC. With FAIL_DEV set it
// fails every --save-dev install.
const fakeNPMScript = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "10.2.4"
  exit 0
fi
echo "$(pwd) $*" >> "$NPM_LOG"
if [ -n "$FAIL_DEV" ] && [ "$2" = "--save-dev" ]; then
  echo "npm ERR! simulated failure" >&2
  exit 1
fi
shift 5
if [ "$1" = "--verbose" ]; then
  shift
fi
mkdir -p node_modules
for spec in "$@"; do
  name="${spec%@*}"
  if [ -z "$name" ]; then
    name="$spec"
  fi
  mkdir -p "node_modules/$name"
  if [ "$(basename "$(pwd)")" = "tmp-template" ]; then
    cp -R "$TEMPLATE_SRC/." "node_modules/$name/"
  fi
done
exit 0
`

// setupTestEnv writes the fake package manager and an empty template
// package, and points the script's environment variables at them.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake package manager needs a POSIX shell")
	}

	binDir := t.TempDir()
	env := &testEnv{
		NPM:         filepath.Join(binDir, "npm"),
		LogFile:     filepath.Join(binDir, "npm.log"),
		TemplateDir: t.TempDir(),
		ParentDir:   t.TempDir(),
	}
	writeFile(t, env.NPM, fakeNPMScript)
	if err := os.Chmod(env.NPM, 0755); err != nil {
		t.Fatalf("chmod %s: %v", env.NPM, err)
	}

	t.Setenv("NPM_LOG", env.LogFile)
	t.Setenv("TEMPLATE_SRC", env.TemplateDir)
	t.Setenv("HOME", t.TempDir())
	return env
}

// setupTemplate fills the template package with metadata and bundled files.
func setupTemplate(t *testing.T, env *testEnv, metadata string, files map[string]string) {
	t.Helper()
	writeFile(t, filepath.Join(env.TemplateDir, "template.json"), metadata)
	for rel, content := range files {
		writeFile(t, filepath.Join(env.TemplateDir, "template", filepath.FromSlash(rel)), content)
	}
}

// installCalls returns the logged installer invocations.
func installCalls(t *testing.T, env *testEnv) []string {
	t.Helper()
	data, err := os.ReadFile(env.LogFile)
	if err != nil {
		t.Fatalf("reading npm log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// writeFile creates parent directories and writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if path does not exist as a regular file.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file to exist: %s (%v)", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("expected file but got directory: %s", path)
	}
}

// assertNotExists fails the test if path exists.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s to be removed", path)
	}
}
