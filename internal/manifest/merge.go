package manifest

import (
	"bytes"
)

// Script is a named command from a "scripts" section.
type Script struct {
	Name    string
	Command string
}

// encodeScripts renders scripts as a JSON object in slice order.
func encodeScripts(scripts []Script) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range scripts {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(mustString(s.Name))
		buf.WriteByte(':')
		buf.Write(mustString(s.Command))
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// MergeScripts replaces the scripts section with scripts and reorders the
// manifest so scripts precede dependencies and devDependencies. Every other
// field keeps its position. A nil scripts means none were declared: it
// reports false and leaves the manifest untouched. A non-nil empty slice
// still replaces the section with {}.
func (m *Manifest) MergeScripts(scripts []Script) bool {
	if scripts == nil {
		return false
	}

	deps, hasDeps := m.Get(FieldDependencies)
	devDeps, hasDevDeps := m.Get(FieldDevDependencies)

	merged := make([]Member, 0, len(m.members)+1)
	for _, mem := range m.members {
		switch mem.Name {
		case FieldScripts, FieldDependencies, FieldDevDependencies:
			continue
		}
		merged = append(merged, mem)
	}
	merged = append(merged, Member{Name: FieldScripts, Value: encodeScripts(scripts)})
	if hasDeps {
		merged = append(merged, Member{Name: FieldDependencies, Value: deps})
	}
	if hasDevDeps {
		merged = append(merged, Member{Name: FieldDevDependencies, Value: devDeps})
	}

	m.members = merged
	return true
}

// Adopt copies the named fields from other into m, replacing them in place
// or appending them. Fields other lacks are left alone.
func (m *Manifest) Adopt(other *Manifest, names ...string) {
	for _, name := range names {
		if value, ok := other.Get(name); ok {
			m.Set(name, value)
		}
	}
}
