package cli

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/agentx-labs/create-jslib/internal/scaffold"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxNameLength = 214

// urlSafe matches the characters encodeURIComponent leaves alone.
var urlSafe = regexp.MustCompile(`^[A-Za-z0-9\-_.!~*'()]+$`)

var reservedNames = []string{"node_modules", "favicon.ico"}

var coreModules = []string{
	"assert", "buffer", "child_process", "cluster", "crypto", "dgram", "dns",
	"events", "fs", "http", "http2", "https", "net", "os", "path", "process",
	"querystring", "readline", "stream", "string_decoder", "timers", "tls",
	"tty", "url", "util", "v8", "vm", "worker_threads", "zlib",
}

// ValidateProjectName applies npm's rules for new package names and refuses
// names of packages every project installs.
func ValidateProjectName(name string) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	switch {
	case name == "":
		add("name length must be greater than zero")
	case strings.TrimSpace(name) != name:
		add("name cannot contain leading or trailing spaces")
	}
	if strings.HasPrefix(name, ".") {
		add("name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		add("name cannot start with an underscore")
	}
	if len(name) > maxNameLength {
		add("name can no longer contain more than %d characters", maxNameLength)
	}
	if slices.Contains(reservedNames, strings.ToLower(name)) {
		add("%s is a blacklisted name", name)
	}
	if slices.Contains(coreModules, name) {
		add("%s is a core module name", name)
	}
	if cases.Lower(language.Und).String(name) != name {
		add("name can no longer contain capital letters")
	}
	if strings.ContainsAny(name, "~'!()*") {
		add(`name can no longer contain special characters ("~'!()*")`)
	}
	if name != "" && !urlSafe.MatchString(name) {
		add("name can only contain URL-friendly characters")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	if name == scaffold.TestRunner || slices.Contains(scaffold.TypedTooling, name) {
		return fmt.Errorf("a package named %s is installed into every project; choose a different name", name)
	}
	return nil
}
