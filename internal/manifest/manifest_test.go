package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/production-feasibility/internal/common"
)

const sampleJSON = `{
  "generated": "2024-05-01",
  "projects": [
    {"project_name": "Alpha", "files": {"script": {"path": "/cloud/alpha/script.pdf"}}},
    {"project_name": "Broken"},
    "not-an-object"
  ]
}`

func TestParse_JSONKeepsMalformedEntries(t *testing.T) {
	m, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)
	require.Len(t, m.Projects, 3)

	var first map[string]any
	require.NoError(t, json.Unmarshal(m.Projects[0], &first))
	assert.Equal(t, "Alpha", first["project_name"])
	assert.JSONEq(t, `"not-an-object"`, string(m.Projects[2]))
}

func TestParse_YAML(t *testing.T) {
	doc := `
projects:
  - project_name: Beta
    complete: true
    files:
      budget:
        - path: /cloud/beta/b1.xlsx
          exists: true
        - path: /cloud/beta/b2.pdf
`
	m, err := Parse([]byte(doc), FormatYAML)
	require.NoError(t, err)
	require.Len(t, m.Projects, 1)
	assert.JSONEq(t,
		`{"project_name":"Beta","complete":true,"files":{"budget":[{"path":"/cloud/beta/b1.xlsx","exists":true},{"path":"/cloud/beta/b2.pdf"}]}}`,
		string(m.Projects[0]))
}

func TestParse_FatalErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{projects:`},
		{"missing projects", `{"items": []}`},
		{"projects not array", `{"projects": {}}`},
		{"top-level array", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrManifest))
			var appErr *common.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, common.CodeManifest, appErr.Code)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrManifest)
}

func TestLoad_DetectsYAMLByExtension(t *testing.T) {
	p := filepath.Join(t.TempDir(), "m.yml")
	require.NoError(t, os.WriteFile(p, []byte("projects: []\n"), 0o644))
	m, err := Load(p)
	require.NoError(t, err)
	assert.Empty(t, m.Projects)
	assert.Equal(t, p, m.Path)
}

func TestManifest_Rewrite(t *testing.T) {
	m, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	r, err := m.Rewrite("/cloud", "/local")
	require.NoError(t, err)
	assert.Contains(t, string(r.Projects[0]), `"/local/alpha/script.pdf"`)
	assert.Contains(t, string(m.Projects[0]), `"/cloud/alpha/script.pdf"`, "original untouched")

	out, err := r.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"generated": "2024-05-01"`)
}
