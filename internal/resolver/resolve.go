package resolver

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentx-labs/create-jslib/internal/installer"
	"github.com/agentx-labs/create-jslib/internal/manifest"
)

// packagePattern splits "@scope/name@version" into its optional parts.
var packagePattern = regexp.MustCompile(`^(@[^/]+/)?([^@]+)?(@.+)?$`)

// Template is a resolved template package.
type Template struct {
	// Spec is what gets handed to the installer.
	Spec installer.Specifier
	// Name is the package name the template installs under. It is empty
	// for URL and tarball sources, whose name is only known after install.
	Name string
}

// Resolver turns user input into installable template packages.
type Resolver struct {
	// Prefix is the official template package name, e.g. "jslib-template".
	Prefix string
	// BaseDir anchors relative file: paths, normally the directory the
	// CLI was started from.
	BaseDir string
}

// Resolve maps input to a Template. Empty input selects the prefix package
// itself.
func (r *Resolver) Resolve(input string) (*Template, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return &Template{Spec: installer.Specifier{Name: r.Prefix}, Name: r.Prefix}, nil
	}

	if rest, ok := strings.CutPrefix(input, "file:"); ok {
		return r.resolveFile(rest)
	}

	if installer.IsRawSource(input) {
		return &Template{Spec: installer.Specifier{Raw: input}}, nil
	}

	spec, err := r.prefixed(input)
	if err != nil {
		return nil, err
	}
	return &Template{Spec: spec, Name: spec.Name}, nil
}

// prefixed adds the template prefix to non-prefixed names, leaving any
// @scope/ and @version intact.
func (r *Resolver) prefixed(input string) (installer.Specifier, error) {
	match := packagePattern.FindStringSubmatch(input)
	if match == nil {
		return installer.Specifier{}, fmt.Errorf("invalid template name %q", input)
	}
	scope, name, version := match[1], match[2], match[3]

	var full string
	switch {
	case name == r.Prefix || strings.HasPrefix(name, r.Prefix+"-"):
		full = scope + name + version
	case version != "" && scope == "" && name == "":
		// A bare scope such as "@acme".
		full = version + "/" + r.Prefix
	default:
		full = scope + r.Prefix + "-" + name + version
	}
	return installer.ParseSpecifier(full), nil
}

// resolveFile anchors a local template path and reads its package name.
func (r *Resolver) resolveFile(path string) (*Template, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.BaseDir, path)
	}
	path = filepath.Clean(path)

	m, err := manifest.Read(filepath.Join(path, manifest.FileName))
	if err != nil {
		return nil, fmt.Errorf("reading local template: %w", err)
	}
	raw, ok := m.Get("name")
	if !ok {
		return nil, fmt.Errorf("local template %s has no package name", path)
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil || name == "" {
		return nil, fmt.Errorf("local template %s has an invalid package name", path)
	}

	return &Template{Spec: installer.Specifier{Raw: "file:" + path}, Name: name}, nil
}
