// Package installer drives the external package manager. It builds the
// install command line for an ordered list of package specifiers, runs it in
// an explicit working directory with inherited stdio, and reports non-zero
// exits as InstallationError values carrying the reconstructed command.
package installer
