package manifest

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMergeScripts_ReplacesAndReorders(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}

	if !m.MergeScripts([]Script{{Name: "build", Command: "x"}}) {
		t.Fatal("MergeScripts() = false, want true")
	}

	wantOrder := []string{"name", "version", "private", "license", "scripts", "dependencies", "devDependencies"}
	if got := m.Names(); !reflect.DeepEqual(got, wantOrder) {
		t.Errorf("Names() = %v, want %v", got, wantOrder)
	}

	raw, _ := m.Get(FieldScripts)
	var scripts map[string]string
	if err := json.Unmarshal(raw, &scripts); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(scripts, map[string]string{"build": "x"}) {
		t.Errorf("scripts = %v, want exactly {build: x}", scripts)
	}

	deps, _ := m.Dependencies(FieldDependencies)
	if deps["left-pad"] != "1.3.0" {
		t.Errorf("dependencies not preserved: %v", deps)
	}
	devDeps, _ := m.Dependencies(FieldDevDependencies)
	if devDeps["jest"] != "29.7.0" {
		t.Errorf("devDependencies not preserved: %v", devDeps)
	}
}

func TestMergeScripts_KeepsTemplateOrder(t *testing.T) {
	m := New("x")
	m.MergeScripts([]Script{
		{Name: "test", Command: "jest"},
		{Name: "build", Command: "tsc && rollup -c"},
		{Name: "lint", Command: "eslint ."},
	})

	raw, _ := m.Get(FieldScripts)
	want := `{"test":"jest","build":"tsc && rollup -c","lint":"eslint ."}`
	if string(raw) != want {
		t.Errorf("scripts = %s, want %s", raw, want)
	}
}

func TestMergeScripts_OmitsAbsentDependencySections(t *testing.T) {
	m := New("x")
	m.MergeScripts([]Script{{Name: "build", Command: "x"}})

	want := []string{"name", "version", "private", "scripts"}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestMergeScripts_DeclaredEmptyReplacesScripts(t *testing.T) {
	m, err := Parse([]byte(`{
  "name": "my-lib",
  "dependencies": {"left-pad": "1.3.0"},
  "scripts": {"old": "echo old"},
  "license": "MIT"
}`))
	if err != nil {
		t.Fatal(err)
	}

	if !m.MergeScripts([]Script{}) {
		t.Fatal("MergeScripts([]Script{}) = false, want true")
	}

	want := []string{"name", "license", "scripts", "dependencies"}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	raw, _ := m.Get(FieldScripts)
	if string(raw) != "{}" {
		t.Errorf("scripts = %s, want {}", raw)
	}
}

func TestMergeScripts_NilIsNoop(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}
	before := m.Names()

	if m.MergeScripts(nil) {
		t.Error("MergeScripts(nil) = true, want false")
	}
	if got := m.Names(); !reflect.DeepEqual(got, before) {
		t.Errorf("Names() changed to %v", got)
	}
}

func TestAdopt(t *testing.T) {
	m := New("my-lib")
	installed, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}

	m.Adopt(installed, FieldDependencies, "missing")

	want := []string{"name", "version", "private", "dependencies"}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	deps, _ := m.Dependencies(FieldDependencies)
	if deps["left-pad"] != "1.3.0" {
		t.Errorf("dependencies = %v", deps)
	}
	name, _ := m.Get("name")
	if string(name) != `"my-lib"` {
		t.Errorf("name = %s, want unchanged", name)
	}
}

func TestMergeScripts_RoundTrip(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatal(err)
	}
	m.MergeScripts([]Script{{Name: "build", Command: "x"}, {Name: "test", Command: "jest && tsc"}})

	path := filepath.Join(t.TempDir(), FileName)
	if err := m.Write(path); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	reread, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	// The reparsed file must deep-equal the in-memory merge result.
	wantBytes, err := m.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	gotBytes, err := reread.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	var want, got map[string]interface{}
	if err := json.Unmarshal(wantBytes, &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(gotBytes, &got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", got, want)
	}
	if !reflect.DeepEqual(reread.Names(), m.Names()) {
		t.Errorf("field order changed: %v vs %v", reread.Names(), m.Names())
	}
}
