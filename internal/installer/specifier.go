package installer

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Specifier identifies a package to install: a registry name with an
// optional version, or a raw source such as a file: path or tarball URL.
type Specifier struct {
	Name    string
	Version string
	// Raw is set for sources that are not registry names and is passed to
	// the installer verbatim.
	Raw string
}

// ParseSpecifier splits "name", "name@version", "@scope/name@version" or a
// raw source into a Specifier.
func ParseSpecifier(s string) Specifier {
	if IsRawSource(s) {
		return Specifier{Raw: s}
	}
	idx := strings.LastIndex(s, "@")
	if idx <= 0 {
		return Specifier{Name: s}
	}
	return Specifier{Name: s[:idx], Version: s[idx+1:]}
}

// IsRawSource reports whether s names a package source the installer must
// fetch itself (local path, URL, git remote or tarball).
func IsRawSource(s string) bool {
	switch {
	case strings.HasPrefix(s, "file:"),
		strings.HasPrefix(s, "git+"),
		strings.Contains(s, "://"),
		strings.HasSuffix(s, ".tgz"),
		strings.HasSuffix(s, ".tar.gz"):
		return true
	}
	return false
}

// String returns the form handed to the installer.
func (s Specifier) String() string {
	if s.Raw != "" {
		return s.Raw
	}
	if s.Version == "" {
		return s.Name
	}
	return s.Name + "@" + s.Version
}

// Exact reports whether the specifier pins a single semver version rather
// than a range, tag or nothing at all.
func (s Specifier) Exact() bool {
	if s.Version == "" {
		return false
	}
	_, err := semver.StrictNewVersion(s.Version)
	return err == nil
}

// Strings formats every specifier for the command line.
func Strings(specs []Specifier) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.String()
	}
	return out
}
