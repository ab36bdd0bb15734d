// Package template loads the metadata a template package declares about the
// project it generates: dependencies, devDependencies, scripts, and an
// optional template/ file tree. Metadata is read from template.json (HuJSON
// tolerated) or template.yaml and validated against an embedded JSON Schema
// before use.
package template
