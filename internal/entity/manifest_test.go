package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
)

func TestFileBinding_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    BindingKind
		paths   []string
		skipped int
	}{
		{"single", `{"path":"/a.pdf"}`, BindingSingle, []string{"/a.pdf"}, 0},
		{"single without path", `{"name":"a.pdf"}`, BindingNone, nil, 0},
		{"list", `[{"path":"/a.pdf"},{"path":"/b.xlsx","exists":true}]`, BindingMultiple, []string{"/a.pdf", "/b.xlsx"}, 0},
		{"list with junk", `[{"path":"/a.pdf"}, "x", 3, {"nope":1}]`, BindingMultiple, []string{"/a.pdf"}, 3},
		{"empty list", `[]`, BindingMultiple, []string{}, 0},
		{"string", `"/a.pdf"`, BindingNone, nil, 0},
		{"null", `null`, BindingNone, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b FileBinding
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &b))
			assert.Equal(t, tt.kind, b.Kind)
			assert.Equal(t, tt.skipped, b.Skipped)
			if tt.paths == nil {
				assert.Empty(t, b.Refs)
				return
			}
			got := make([]string, 0, len(b.Refs))
			for _, r := range b.Refs {
				got = append(got, r.Path)
			}
			assert.Equal(t, tt.paths, got)
		})
	}
}

func TestFileRef_Flagged(t *testing.T) {
	var b FileBinding
	require.NoError(t, json.Unmarshal([]byte(`[{"path":"/a"},{"path":"/b","exists":false},{"path":"/c","exists":true}]`), &b))
	require.Len(t, b.Refs, 3)
	assert.False(t, b.Refs[0].Flagged())
	assert.False(t, b.Refs[1].Flagged())
	assert.True(t, b.Refs[2].Flagged())
}

func TestDecodeProjectEntry(t *testing.T) {
	raw := json.RawMessage(`{
		"project_name": "Spot",
		"client": "Acme",
		"complete": true,
		"files": {
			"Script": {"path": "/s.pdf"},
			"budget": [{"path": "/b1.pdf"}, {"path": "/b2.xlsx"}],
			"treatment": {"path": "/t.pdf"}
		}
	}`)
	e, err := DecodeProjectEntry(raw)
	require.NoError(t, err)
	assert.Equal(t, "Spot", e.ProjectName)
	assert.Equal(t, "Acme", e.Client)
	assert.True(t, e.Complete)

	script, ok := e.Binding(constants.RoleScript).Single()
	require.True(t, ok)
	assert.Equal(t, "/s.pdf", script.Path)
	assert.Equal(t, BindingMultiple, e.Binding(constants.RoleBudget).Kind)
	assert.Equal(t, BindingNone, e.Binding(constants.RoleSchedule).Kind)
	assert.Len(t, e.Files, 2, "unknown roles are dropped")
}

func TestDecodeProjectEntry_Errors(t *testing.T) {
	_, err := DecodeProjectEntry(json.RawMessage(`{"project_name":"X"}`))
	assert.ErrorIs(t, err, common.ErrMissingFiles)

	_, err = DecodeProjectEntry(json.RawMessage(`{"project_name":"X","files":"nope"}`))
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = DecodeProjectEntry(json.RawMessage(`[1]`))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestProjectNameOf(t *testing.T) {
	assert.Equal(t, "A", ProjectNameOf(json.RawMessage(`{"project_name":"A"}`)))
	assert.Equal(t, "42", ProjectNameOf(json.RawMessage(`{"project_name":42}`)))
	assert.Equal(t, UnknownProject, ProjectNameOf(json.RawMessage(`{"project_name":"  "}`)))
	assert.Equal(t, UnknownProject, ProjectNameOf(json.RawMessage(`{}`)))
	assert.Equal(t, UnknownProject, ProjectNameOf(json.RawMessage(`"str"`)))
}
