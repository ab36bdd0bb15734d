package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/tailscale/hujson"
)

// FileName is the package manifest file name.
const FileName = "package.json"

// Top-level fields with dedicated handling.
const (
	FieldScripts         = "scripts"
	FieldDependencies    = "dependencies"
	FieldDevDependencies = "devDependencies"
)

// EOL is the line terminator appended after the serialized manifest.
var EOL = "\n"

func init() {
	if runtime.GOOS == "windows" {
		EOL = "\r\n"
	}
}

// Member is one top-level field of the manifest.
type Member struct {
	Name  string
	Value json.RawMessage
}

// Manifest is a package.json object with its field order preserved.
type Manifest struct {
	members []Member
}

// New returns the initial manifest written into a fresh project.
func New(name string) *Manifest {
	m := &Manifest{}
	m.Set("name", mustString(name))
	m.Set("version", json.RawMessage(`"0.1.0"`))
	m.Set("private", json.RawMessage(`true`))
	return m
}

// Parse decodes a manifest. Comments and trailing commas are tolerated and
// dropped.
func Parse(data []byte) (*Manifest, error) {
	v, err := hujson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing package manifest: %w", err)
	}
	v.Standardize()

	obj, ok := v.Value.(*hujson.Object)
	if !ok {
		return nil, fmt.Errorf("package manifest is not a JSON object")
	}

	m := &Manifest{members: make([]Member, 0, len(obj.Members))}
	for _, om := range obj.Members {
		var name string
		if err := json.Unmarshal(om.Name.Pack(), &name); err != nil {
			return nil, fmt.Errorf("decoding field name: %w", err)
		}
		var value bytes.Buffer
		if err := json.Compact(&value, om.Value.Pack()); err != nil {
			return nil, fmt.Errorf("compacting field %q: %w", name, err)
		}
		m.Set(name, value.Bytes())
	}
	return m, nil
}

// Read loads the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Names returns the top-level field names in order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.members))
	for i, mem := range m.members {
		names[i] = mem.Name
	}
	return names
}

// Get returns the raw JSON value of a top-level field.
func (m *Manifest) Get(name string) (json.RawMessage, bool) {
	for _, mem := range m.members {
		if mem.Name == name {
			return mem.Value, true
		}
	}
	return nil, false
}

// Set replaces a field in place, or appends it when absent.
func (m *Manifest) Set(name string, value json.RawMessage) {
	for i, mem := range m.members {
		if mem.Name == name {
			m.members[i].Value = value
			return
		}
	}
	m.members = append(m.members, Member{Name: name, Value: value})
}

// Delete removes a field if present.
func (m *Manifest) Delete(name string) {
	for i, mem := range m.members {
		if mem.Name == name {
			m.members = append(m.members[:i], m.members[i+1:]...)
			return
		}
	}
}

// Dependencies decodes a dependency section (FieldDependencies or
// FieldDevDependencies). A missing section yields an empty map.
func (m *Manifest) Dependencies(section string) (map[string]string, error) {
	deps := map[string]string{}
	raw, ok := m.Get(section)
	if !ok {
		return deps, nil
	}
	if err := json.Unmarshal(raw, &deps); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", section, err)
	}
	return deps, nil
}

// Marshal serializes the manifest with 2-space indentation followed by EOL.
func (m *Manifest) Marshal() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, mem := range m.members {
		if i > 0 {
			compact.WriteByte(',')
		}
		compact.Write(mustString(mem.Name))
		compact.WriteByte(':')
		compact.Write(mem.Value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting package manifest: %w", err)
	}
	out.WriteString(EOL)
	return out.Bytes(), nil
}

// Write serializes the manifest to path.
func (m *Manifest) Write(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// mustString encodes s as a JSON string without HTML escaping, so shell
// operators like && survive verbatim.
func mustString(s string) json.RawMessage {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}
