// Package config manages user-level settings stored at
// ~/.create-jslib/config.yaml. It provides functions to load, read, and write
// configuration keys such as the package manager binary and the default
// template, with CREATE_JSLIB_* environment variables taking precedence.
package config
