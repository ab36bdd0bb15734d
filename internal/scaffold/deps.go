package scaffold

import (
	"sort"
	"strings"

	"github.com/agentx-labs/create-jslib/internal/installer"
	"github.com/agentx-labs/create-jslib/internal/output"
	"github.com/agentx-labs/create-jslib/internal/template"
)

// TestRunner is always installed as a devDependency.
const TestRunner = "jest"

// TypedMarker selects the typed variant when it appears anywhere in the
// template name the user typed. It is a plain substring match.
const TypedMarker = "typescript"

// TypedTooling is appended to the devDependencies of typed templates.
var TypedTooling = []string{"@types/node", "@types/jest", "typescript"}

// RuntimeDependencies returns the template's dependencies as name@version
// specifiers, sorted by name.
func RuntimeDependencies(meta *template.Metadata) []installer.Specifier {
	return specifiers(meta.Package.Dependencies)
}

// DevDependencies returns the test runner, the template's devDependencies
// and, for typed templates, the typed tooling packages not already listed.
func DevDependencies(meta *template.Metadata, templateName string) []installer.Specifier {
	specs := []installer.Specifier{{Name: TestRunner}}
	specs = append(specs, specifiers(meta.Package.DevDependencies)...)

	if strings.Contains(templateName, TypedMarker) {
		for _, name := range TypedTooling {
			if !containsName(specs, name) {
				specs = append(specs, installer.Specifier{Name: name})
			}
		}
	}
	return specs
}

func specifiers(deps map[string]string) []installer.Specifier {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]installer.Specifier, 0, len(names))
	for _, name := range names {
		spec := installer.Specifier{Name: name, Version: deps[name]}
		if spec.Version != "" && !spec.Exact() {
			output.Debug("template declares a version range; --save-exact pins the resolved release",
				"package", name, "range", spec.Version)
		}
		specs = append(specs, spec)
	}
	return specs
}

func containsName(specs []installer.Specifier, name string) bool {
	for _, s := range specs {
		if s.Name == name {
			return true
		}
	}
	return false
}
