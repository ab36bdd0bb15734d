// Package scaffold bootstraps a project from a template package. It installs
// the template into a scratch workspace, loads its metadata, installs the
// declared dependencies into the project, merges the template's scripts into
// package.json and copies the template's file tree. A failure after the
// template is fetched rolls back the artifacts this run created, as recorded
// in the project's Journal.
package scaffold
