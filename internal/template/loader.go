package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// metadataFiles is the lookup order for the metadata file in a template
// package.
var metadataFiles = []string{"template.json", "template.yaml", "template.yml"}

// LoadError reports a template package whose metadata could not be loaded.
type LoadError struct {
	Dir string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading template at %s: %v", e.Dir, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// InvalidError lists schema violations found in a metadata file.
type InvalidError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("%s has %d validation issue(s): %s", e.Path, len(e.Issues), strings.Join(msgs, "; "))
}

// FindMetadata returns the metadata file inside an installed template
// package.
func FindMetadata(dir string) (string, error) {
	for _, name := range metadataFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no %s found in %s", strings.Join(metadataFiles, " or "), dir)
}

// Load reads, validates and decodes the metadata of the template package
// installed at dir. Every failure is returned as a *LoadError.
func Load(dir string) (*Metadata, error) {
	m, err := load(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Err: err}
	}
	return m, nil
}

func load(dir string) (*Metadata, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	path, err := FindMetadata(dir)
	if err != nil {
		return nil, err
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	jsonData, err := toJSON(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result, err := Validate(jsonData)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}

	m := &Metadata{Dir: dir, Source: path}
	if isYAML(path) {
		err = yaml.Unmarshal(data, m)
	} else {
		err = json.Unmarshal(jsonData, m)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return m, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
