// Package cli defines the Cobra command tree for the create-jslib CLI. The
// root command bootstraps a project; each other file registers one
// subcommand (version, config, doctor). Commands delegate to internal
// packages and only handle flag parsing, I/O formatting and exit codes.
package cli
