package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/create-jslib/internal/manifest"
	"go.yaml.in/yaml/v3"
)

// FilesDirName is the directory inside a template package that is copied
// into the new project.
const FilesDirName = "template"

// Metadata is the declared content of a template package.
type Metadata struct {
	Package Package `yaml:"package" json:"package"`

	// Dir is the installed template package directory.
	Dir string `yaml:"-" json:"-"`
	// Source is the metadata file that was loaded.
	Source string `yaml:"-" json:"-"`
}

// Package holds the package.json contributions of a template.
type Package struct {
	Dependencies    map[string]string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DevDependencies map[string]string `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
	Scripts         Scripts           `yaml:"scripts,omitempty" json:"scripts,omitempty"`
}

// FilesDir returns the path of the template's bundled file tree. The
// directory may not exist.
func (m *Metadata) FilesDir() string {
	return filepath.Join(m.Dir, FilesDirName)
}

// Scripts keeps script declarations in the order the template wrote them.
// A nil Scripts means the template did not declare any; a declared empty
// mapping decodes to a non-nil empty slice.
type Scripts []manifest.Script

// UnmarshalYAML decodes a mapping node pair by pair.
func (s *Scripts) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: scripts must be a mapping", value.Line)
	}
	out := make(Scripts, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var script manifest.Script
		if err := value.Content[i].Decode(&script.Name); err != nil {
			return err
		}
		if err := value.Content[i+1].Decode(&script.Command); err != nil {
			return fmt.Errorf("script %q: %w", script.Name, err)
		}
		out = append(out, script)
	}
	*s = out
	return nil
}

// UnmarshalJSON decodes an object token by token.
func (s *Scripts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("scripts must be an object")
	}

	out := Scripts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var command string
		if err := dec.Decode(&command); err != nil {
			return fmt.Errorf("script %q: %w", name, err)
		}
		out = append(out, manifest.Script{Name: name, Command: command})
	}
	*s = out
	return nil
}
