package versionbump

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

const (
	// DefaultManifestPath is the manifest used when none is given.
	DefaultManifestPath = "Cargo.toml"
	// DefaultField is the dotted key path of the version string.
	DefaultField = "package.version"
)

// Manifest is a TOML document holding a version string at a known key path.
// Only the bytes of that string change when the version is replaced; every
// other byte of the document is written back as it was read.
type Manifest struct {
	path   string // as given by the caller
	target string // symlinks resolved, the file that gets replaced on Save
	mode   fs.FileMode
	field  []string
	data   []byte

	// byte range of the string literal, quotes included
	start, end int
	delim      string
	value      string
}

// ParseFieldPath splits a dotted key path such as "package.version".
func ParseFieldPath(field string) ([]string, error) {
	parts := strings.Split(field, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid field path %q", field)
		}
	}
	return parts, nil
}

// LoadManifest reads the manifest at path and locates the version string
// at the dotted key path field.
func LoadManifest(path, field string) (*Manifest, error) {
	keys, err := ParseFieldPath(field)
	if err != nil {
		return nil, err
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, wrapErrorWithContext(ErrCodeManifestIO,
			fmt.Sprintf("could not find manifest %s", path), err, map[string]any{"path": path})
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, wrapErrorWithContext(ErrCodeManifestIO,
			fmt.Sprintf("could not stat manifest %s", path), err, map[string]any{"path": path})
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, wrapErrorWithContext(ErrCodeManifestIO,
			fmt.Sprintf("could not read manifest %s", path), err, map[string]any{"path": path})
	}

	m := &Manifest{
		path:   path,
		target: target,
		mode:   info.Mode().Perm(),
		field:  keys,
		data:   data,
	}
	if err := m.locate(); err != nil {
		return nil, err
	}

	slog.Debug("manifest loaded",
		"path", path,
		"field", field,
		"version", m.value)
	return m, nil
}

// locate validates the document, checks that the field holds a string and
// records the byte range of that string.
func (m *Manifest) locate() error {
	var doc map[string]any
	if err := toml.Unmarshal(m.data, &doc); err != nil {
		ctx := map[string]any{"path": m.path}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			ctx["line"] = row
			ctx["column"] = col
		}
		return wrapErrorWithContext(ErrCodeManifestFormat,
			fmt.Sprintf("invalid manifest %s", m.path), err, ctx)
	}

	value, err := m.lookup(doc)
	if err != nil {
		return err
	}

	node, err := findStringNode(m.data, m.field)
	if err != nil {
		return wrapErrorWithContext(ErrCodeManifestFormat,
			fmt.Sprintf("invalid manifest %s", m.path), err, map[string]any{"path": m.path})
	}
	if node == nil || node.Raw.Length == 0 {
		return newError(ErrCodeManifestFormat,
			fmt.Sprintf("could not locate %s in %s", m.fieldName(), m.path))
	}

	start := int(node.Raw.Offset)
	end := start + int(node.Raw.Length)
	raw := m.data[start:end]
	var delim string
	for _, d := range []string{`"""`, `'''`, `"`, `'`} {
		if bytes.HasPrefix(raw, []byte(d)) && bytes.HasSuffix(raw, []byte(d)) && len(raw) >= 2*len(d) {
			delim = d
			break
		}
	}
	if delim == "" {
		return newError(ErrCodeManifestFormat,
			fmt.Sprintf("unexpected string literal %s for %s in %s", raw, m.fieldName(), m.path))
	}

	m.start, m.end, m.delim, m.value = start, end, delim, value
	return nil
}

func (m *Manifest) lookup(doc map[string]any) (string, error) {
	var cur any = doc
	for i, key := range m.field {
		table, ok := cur.(map[string]any)
		if !ok {
			return "", newError(ErrCodeMissingVersionField,
				fmt.Sprintf("%s is not a table in %s", strings.Join(m.field[:i], "."), m.path))
		}
		cur, ok = table[key]
		if !ok {
			return "", newErrorWithContext(ErrCodeMissingVersionField,
				fmt.Sprintf("manifest %s has no %s", m.path, m.fieldName()),
				map[string]any{"path": m.path, "field": m.fieldName()})
		}
	}
	s, ok := cur.(string)
	if !ok {
		return "", newError(ErrCodeUnparsableManifestVersion,
			fmt.Sprintf("%s in %s is a %T, not a string", m.fieldName(), m.path, cur))
	}
	return s, nil
}

// findStringNode walks the top-level expressions of data and returns the
// string value node stored at keys, or nil if there is none.
func findStringNode(data []byte, keys []string) (*unstable.Node, error) {
	p := &unstable.Parser{}
	p.Reset(data)

	var table []string
	inArrayTable := false
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table:
			table = keyOf(e.Key())
			inArrayTable = false
		case unstable.ArrayTable:
			table = keyOf(e.Key())
			inArrayTable = true
		case unstable.KeyValue:
			if inArrayTable {
				continue
			}
			path := append(slices.Clone(table), keyOf(e.Key())...)
			if n := findInValue(path, e.Value(), keys); n != nil {
				return n, nil
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return nil, nil
}

func findInValue(path []string, value *unstable.Node, keys []string) *unstable.Node {
	if slices.Equal(path, keys) {
		if value.Kind == unstable.String {
			return value
		}
		return nil
	}
	if value.Kind != unstable.InlineTable || len(path) >= len(keys) || !slices.Equal(path, keys[:len(path)]) {
		return nil
	}
	it := value.Children()
	for it.Next() {
		kv := it.Node()
		if kv.Kind != unstable.KeyValue {
			continue
		}
		child := append(slices.Clone(path), keyOf(kv.Key())...)
		if n := findInValue(child, kv.Value(), keys); n != nil {
			return n
		}
	}
	return nil
}

func keyOf(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func (m *Manifest) fieldName() string {
	return strings.Join(m.field, ".")
}

// Path returns the manifest path as given to LoadManifest.
func (m *Manifest) Path() string {
	return m.path
}

// RawVersion returns the version string as it currently appears in the
// document.
func (m *Manifest) RawVersion() string {
	return m.value
}

// Version parses the document's version string.
func (m *Manifest) Version() (Version, error) {
	v, err := ParseVersion(m.value)
	if err != nil {
		return Version{}, wrapErrorWithContext(ErrCodeUnparsableManifestVersion,
			fmt.Sprintf("invalid package version %q in %s", m.value, m.path), err,
			map[string]any{"path": m.path, "field": m.fieldName()})
	}
	return v, nil
}

// SetVersion replaces the version string in memory, keeping its quoting.
// Nothing is written until Save is called.
func (m *Manifest) SetVersion(v Version) {
	s := v.String()
	literal := m.delim + s + m.delim

	out := make([]byte, 0, len(m.data)-(m.end-m.start)+len(literal))
	out = append(out, m.data[:m.start]...)
	out = append(out, literal...)
	out = append(out, m.data[m.end:]...)

	m.data = out
	m.end = m.start + len(literal)
	m.value = s
}

// Bytes returns the current document contents.
func (m *Manifest) Bytes() []byte {
	return m.data
}

// Save replaces the manifest file with the current document. The new
// contents are written to a temporary file in the same directory and
// renamed into place, so the manifest is never left half written. When the
// directory does not allow creating files the manifest is rewritten in
// place instead.
func (m *Manifest) Save() error {
	tmp, err := os.CreateTemp(filepath.Dir(m.target), "."+filepath.Base(m.target)+".*")
	if errors.Is(err, fs.ErrPermission) {
		return m.saveInPlace()
	}
	if err != nil {
		return wrapError(ErrCodeManifestIO, fmt.Sprintf("failed to write manifest %s", m.path), err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(m.data); err != nil {
		tmp.Close()
		return wrapError(ErrCodeManifestIO, fmt.Sprintf("failed to write manifest %s", m.path), err)
	}
	if err := tmp.Chmod(m.mode); err != nil {
		tmp.Close()
		return wrapError(ErrCodeManifestIO, fmt.Sprintf("failed to write manifest %s", m.path), err)
	}
	if err := tmp.Close(); err != nil {
		return wrapError(ErrCodeManifestIO, fmt.Sprintf("failed to write manifest %s", m.path), err)
	}
	if err := os.Rename(tmpPath, m.target); err != nil {
		return wrapError(ErrCodeManifestIO, fmt.Sprintf("failed to replace manifest %s", m.path), err)
	}

	slog.Debug("manifest written", "path", m.path, "version", m.value)
	return nil
}

func (m *Manifest) saveInPlace() error {
	if err := os.WriteFile(m.target, m.data, m.mode); err != nil {
		return wrapError(ErrCodeManifestIO, fmt.Sprintf("failed to write manifest %s", m.path), err)
	}
	slog.Debug("manifest written in place", "path", m.path, "version", m.value)
	return nil
}
