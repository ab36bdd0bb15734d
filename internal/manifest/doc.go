// Package manifest reads and rewrites a project's package.json while keeping
// the order of its top-level fields. It provides the script merge applied
// after template dependencies are installed: the template's scripts replace
// the project's wholesale and are positioned before the dependency sections.
package manifest
