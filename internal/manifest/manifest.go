// Package manifest loads project manifests (JSON or YAML), validates their
// envelope and exposes the entries undecoded so each project can fail on
// its own.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/production-feasibility/internal/common"
)

// Manifest is a validated manifest document.
type Manifest struct {
	Path     string
	root     map[string]any
	Projects []json.RawMessage
}

// Load reads, parses and validates a manifest file. Every failure is fatal
// for the run and comes back as an AppError wrapping ErrManifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, manifestError("read manifest "+path, err)
	}
	m, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Format of a manifest document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte, format Format) (*Manifest, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, manifestError("parse yaml manifest", err)
		}
		data = converted
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, manifestError("parse manifest", err)
	}
	if err := Validate(doc); err != nil {
		return nil, manifestError("invalid manifest", err)
	}
	root := doc.(map[string]any)
	return fromRoot(root)
}

func fromRoot(root map[string]any) (*Manifest, error) {
	list, _ := root["projects"].([]any)
	projects := make([]json.RawMessage, 0, len(list))
	for i, p := range list {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, manifestError(fmt.Sprintf("encode project %d", i), err)
		}
		projects = append(projects, b)
	}
	return &Manifest{root: root, Projects: projects}, nil
}

// Rewrite returns a copy of m with path prefixes rewritten.
func (m *Manifest) Rewrite(from, to string) (*Manifest, error) {
	if from == "" {
		return m, nil
	}
	root, _ := RewritePaths(m.root, from, to).(map[string]any)
	out, err := fromRoot(root)
	if err != nil {
		return nil, err
	}
	out.Path = m.Path
	return out, nil
}

// JSON renders the whole document, two-space indented. Object keys come
// out sorted; array order is kept.
func (m *Manifest) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.root); err != nil {
		return nil, common.NewAppError(common.CodeOutput, "encode manifest", err)
	}
	return buf.Bytes(), nil
}

func manifestError(msg string, err error) error {
	return common.NewAppError(common.CodeManifest, msg, fmt.Errorf("%w: %v", common.ErrManifest, err))
}

// yamlToJSON re-encodes YAML as JSON so both formats share one validation
// and decoding path.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(stringKeys(v))
}

// stringKeys converts map[any]any, which yaml.v3 yields for non-string
// keys, into JSON-encodable maps.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = stringKeys(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = stringKeys(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = stringKeys(child)
		}
		return t
	default:
		return v
	}
}
