// Package filetree copies a template's bundled file tree into a project
// root. A missing source tree is not an error: templates may ship metadata
// only.
package filetree
