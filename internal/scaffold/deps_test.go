package scaffold

import (
	"reflect"
	"testing"

	"github.com/agentx-labs/create-jslib/internal/installer"
	"github.com/agentx-labs/create-jslib/internal/template"
)

func TestRuntimeDependencies_SortedByName(t *testing.T) {
	meta := &template.Metadata{Package: template.Package{
		Dependencies: map[string]string{"zod": "3.22.4", "axios": "1.6.0", "@acme/util": "^1.0.0"},
	}}
	got := installer.Strings(RuntimeDependencies(meta))
	want := []string{"@acme/util@^1.0.0", "axios@1.6.0", "zod@3.22.4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RuntimeDependencies() = %v, want %v", got, want)
	}
}

func TestRuntimeDependencies_Empty(t *testing.T) {
	if got := RuntimeDependencies(&template.Metadata{}); len(got) != 0 {
		t.Errorf("RuntimeDependencies() = %v, want empty", got)
	}
}

func TestDevDependencies(t *testing.T) {
	tests := []struct {
		name     string
		template string
		devDeps  map[string]string
		want     []string
	}{
		{
			name: "plain template",
			want: []string{"jest"},
		},
		{
			name:    "template devDependencies follow jest",
			devDeps: map[string]string{"prettier": "3.0.0", "eslint": "8.57.0"},
			want:    []string{"jest", "eslint@8.57.0", "prettier@3.0.0"},
		},
		{
			name:     "typed template",
			template: "typescript",
			want:     []string{"jest", "@types/node", "@types/jest", "typescript"},
		},
		{
			name:     "substring match anywhere",
			template: "@acme/react-typescript@1.0.0",
			want:     []string{"jest", "@types/node", "@types/jest", "typescript"},
		},
		{
			name:     "declared tooling is not duplicated",
			template: "typescript",
			devDeps:  map[string]string{"@types/node": "20.0.0"},
			want:     []string{"jest", "@types/node@20.0.0", "@types/jest", "typescript"},
		},
		{
			name:     "abbreviation does not match",
			template: "ts",
			want:     []string{"jest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &template.Metadata{Package: template.Package{DevDependencies: tt.devDeps}}
			got := installer.Strings(DevDependencies(meta, tt.template))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DevDependencies() = %v, want %v", got, tt.want)
			}
		})
	}
}
