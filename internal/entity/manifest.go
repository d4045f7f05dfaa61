package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
)

// UnknownProject is used when an entry carries no usable project_name.
const UnknownProject = "Unknown"

// FileRef points at a document on disk. It does not own the file.
type FileRef struct {
	Path   string `json:"path"`
	Exists *bool  `json:"exists,omitempty"` // only consulted for schedule lists
}

// Flagged reports whether the manifest marked this ref as existing.
func (r FileRef) Flagged() bool {
	return r.Exists != nil && *r.Exists
}

// BindingKind tags the shape of a role value in the files mapping.
type BindingKind int

const (
	BindingNone BindingKind = iota
	BindingSingle
	BindingMultiple
)

func (k BindingKind) String() string {
	switch k {
	case BindingSingle:
		return "single"
	case BindingMultiple:
		return "multiple"
	default:
		return "none"
	}
}

// FileBinding is Single(FileRef) | Multiple([]FileRef) for one role.
type FileBinding struct {
	Kind BindingKind
	Refs []FileRef
	// Skipped counts list elements that were not path-bearing objects.
	Skipped int
}

// Single returns the bound ref when Kind is BindingSingle.
func (b FileBinding) Single() (FileRef, bool) {
	if b.Kind != BindingSingle || len(b.Refs) == 0 {
		return FileRef{}, false
	}
	return b.Refs[0], true
}

// UnmarshalJSON resolves the role shape: an object becomes Single, an array
// becomes Multiple. Objects without a path, and any other shape, decode to
// BindingNone rather than failing the entry.
func (b *FileBinding) UnmarshalJSON(data []byte) error {
	*b = FileBinding{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '{':
		ref, ok := decodeRef(trimmed)
		if ok {
			b.Kind = BindingSingle
			b.Refs = []FileRef{ref}
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("decode file list: %w", err)
		}
		b.Kind = BindingMultiple
		b.Refs = make([]FileRef, 0, len(items))
		for _, item := range items {
			ref, ok := decodeRef(bytes.TrimSpace(item))
			if !ok {
				b.Skipped++
				continue
			}
			b.Refs = append(b.Refs, ref)
		}
	}
	return nil
}

// MarshalJSON writes the binding back in manifest shape.
func (b FileBinding) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BindingSingle:
		return json.Marshal(b.Refs[0])
	case BindingMultiple:
		refs := b.Refs
		if refs == nil {
			refs = []FileRef{}
		}
		return json.Marshal(refs)
	default:
		return []byte("null"), nil
	}
}

func decodeRef(data []byte) (FileRef, bool) {
	if len(data) == 0 || data[0] != '{' {
		return FileRef{}, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return FileRef{}, false
	}
	rawPath, ok := fields["path"]
	if !ok {
		return FileRef{}, false
	}
	var ref FileRef
	if err := json.Unmarshal(rawPath, &ref.Path); err != nil || ref.Path == "" {
		return FileRef{}, false
	}
	if rawExists, ok := fields["exists"]; ok {
		var exists bool
		if err := json.Unmarshal(rawExists, &exists); err == nil {
			ref.Exists = &exists
		}
	}
	return ref, true
}

// ProjectManifestEntry is one project in the manifest. Immutable once decoded.
type ProjectManifestEntry struct {
	ProjectName string                         `json:"project_name"`
	Client      string                         `json:"client,omitempty"`
	Complete    bool                           `json:"complete"`
	Files       map[constants.Role]FileBinding `json:"files"`
}

// Binding returns the binding for role; absent roles yield BindingNone.
func (e ProjectManifestEntry) Binding(role constants.Role) FileBinding {
	if e.Files == nil {
		return FileBinding{}
	}
	return e.Files[role]
}

// DecodeProjectEntry decodes one raw manifest entry. A missing or
// non-object files mapping is an error so the caller can emit an
// error-shaped record for this project only.
func DecodeProjectEntry(raw json.RawMessage) (ProjectManifestEntry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ProjectManifestEntry{}, fmt.Errorf("%w: project entry is not an object: %v", common.ErrInvalidInput, err)
	}

	entry := ProjectManifestEntry{ProjectName: ProjectNameOf(raw)}
	if v, ok := fields["client"]; ok {
		_ = json.Unmarshal(v, &entry.Client)
	}
	if v, ok := fields["complete"]; ok {
		_ = json.Unmarshal(v, &entry.Complete)
	}

	rawFiles, ok := fields["files"]
	if !ok || bytes.Equal(bytes.TrimSpace(rawFiles), []byte("null")) {
		return entry, fmt.Errorf("%w: %q", common.ErrMissingFiles, entry.ProjectName)
	}
	var roles map[string]json.RawMessage
	if err := json.Unmarshal(rawFiles, &roles); err != nil {
		return entry, fmt.Errorf("%w: files must be an object: %v", common.ErrInvalidInput, err)
	}

	entry.Files = make(map[constants.Role]FileBinding, len(roles))
	for name, v := range roles {
		role, ok := constants.ParseRole(name)
		if !ok {
			continue
		}
		var b FileBinding
		if err := b.UnmarshalJSON(v); err != nil {
			return entry, fmt.Errorf("%w: role %s: %v", common.ErrInvalidInput, role, err)
		}
		entry.Files[role] = b
	}
	return entry, nil
}

// ProjectNameOf extracts project_name from a raw entry on a best-effort
// basis so that error records stay attributable.
func ProjectNameOf(raw json.RawMessage) string {
	var probe struct {
		ProjectName any `json:"project_name"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.ProjectName == nil {
		return UnknownProject
	}
	switch v := probe.ProjectName.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return UnknownProject
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}
