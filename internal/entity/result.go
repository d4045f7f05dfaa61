package entity

import (
	"encoding/json"

	"github.com/joseph-ayodele/production-feasibility/constants"
)

// ScriptFeatures is the fixed-schema signal set derived from script text.
type ScriptFeatures struct {
	Techniques     []constants.Technique `json:"techniques"`
	Locations      []constants.Location  `json:"locations"`
	EstimatedShots *int                  `json:"estimated_shots"`
	HasChildren    bool                  `json:"has_children"`
	HasAnimals     bool                  `json:"has_animals"`
	HasVehicles    bool                  `json:"has_vehicles"`
	TextLength     int                   `json:"text_length"`
}

// HasTechnique reports whether t was detected.
func (s ScriptFeatures) HasTechnique(t constants.Technique) bool {
	for _, have := range s.Techniques {
		if have == t {
			return true
		}
	}
	return false
}

// BudgetData is the budget block. TotalGBP is the headline value.
type BudgetData struct {
	TotalGBP     *float64 `json:"total_gbp"`
	Source       string   `json:"source,omitempty"`
	AmountsFound int      `json:"amounts_found,omitempty"`
	File         string   `json:"file,omitempty"`
	Note         string   `json:"note,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// ScheduleData is the schedule block. ShootDays is the headline value.
type ScheduleData struct {
	ShootDays      *int   `json:"shoot_days"`
	CallTimesFound int    `json:"call_times_found"`
	SetupMentions  int    `json:"setup_mentions"`
	TextLength     int    `json:"text_length"`
	File           string `json:"file,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ProjectResult is the per-project output record. When Error is set the
// record serializes in its error shape: {project_name, error}.
type ProjectResult struct {
	ProjectName    string
	Client         string
	Complete       bool
	ScriptFeatures *ScriptFeatures
	BudgetData     *BudgetData
	ScheduleData   *ScheduleData
	Error          string
}

// NewErrorResult builds an error-shaped record.
func NewErrorResult(projectName string, err error) ProjectResult {
	if projectName == "" {
		projectName = UnknownProject
	}
	return ProjectResult{ProjectName: projectName, Error: err.Error()}
}

// Failed reports whether this is an error-shaped record.
func (r ProjectResult) Failed() bool { return r.Error != "" }

// HasScriptText reports whether a script produced any text.
func (r ProjectResult) HasScriptText() bool {
	return r.ScriptFeatures != nil && r.ScriptFeatures.TextLength > 0
}

// HasBudget reports whether a budget headline value was extracted.
func (r ProjectResult) HasBudget() bool {
	return r.BudgetData != nil && r.BudgetData.TotalGBP != nil
}

// HasSchedule reports whether a schedule headline value was extracted.
func (r ProjectResult) HasSchedule() bool {
	return r.ScheduleData != nil && r.ScheduleData.ShootDays != nil
}

type errorRecord struct {
	ProjectName string `json:"project_name"`
	Error       string `json:"error"`
}

type fullRecord struct {
	ProjectName    string `json:"project_name"`
	Client         string `json:"client"`
	Complete       bool   `json:"complete"`
	ScriptFeatures any    `json:"script_features"`
	BudgetData     any    `json:"budget_data"`
	ScheduleData   any    `json:"schedule_data"`
}

var emptyBlock = struct{}{}

// MarshalJSON emits either the full or the error shape. Absent blocks are {}.
func (r ProjectResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(errorRecord{ProjectName: r.ProjectName, Error: r.Error})
	}
	rec := fullRecord{
		ProjectName:    r.ProjectName,
		Client:         r.Client,
		Complete:       r.Complete,
		ScriptFeatures: emptyBlock,
		BudgetData:     emptyBlock,
		ScheduleData:   emptyBlock,
	}
	if r.ScriptFeatures != nil {
		rec.ScriptFeatures = r.ScriptFeatures
	}
	if r.BudgetData != nil {
		rec.BudgetData = r.BudgetData
	}
	if r.ScheduleData != nil {
		rec.ScheduleData = r.ScheduleData
	}
	return json.Marshal(rec)
}

// UnmarshalJSON reads either shape back, e.g. from a checkpoint file.
func (r *ProjectResult) UnmarshalJSON(data []byte) error {
	var probe struct {
		ProjectName    string          `json:"project_name"`
		Client         string          `json:"client"`
		Complete       bool            `json:"complete"`
		ScriptFeatures json.RawMessage `json:"script_features"`
		BudgetData     json.RawMessage `json:"budget_data"`
		ScheduleData   json.RawMessage `json:"schedule_data"`
		Error          string          `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	*r = ProjectResult{
		ProjectName: probe.ProjectName,
		Client:      probe.Client,
		Complete:    probe.Complete,
		Error:       probe.Error,
	}
	if r.Failed() {
		return nil
	}
	var err error
	if r.ScriptFeatures, err = decodeBlock[ScriptFeatures](probe.ScriptFeatures); err != nil {
		return err
	}
	if r.BudgetData, err = decodeBlock[BudgetData](probe.BudgetData); err != nil {
		return err
	}
	if r.ScheduleData, err = decodeBlock[ScheduleData](probe.ScheduleData); err != nil {
		return err
	}
	return nil
}

func decodeBlock[T any](raw json.RawMessage) (*T, error) {
	s := string(raw)
	if s == "" || s == "null" || s == "{}" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ResultSet is index-aligned with manifest order and append-only during a run.
type ResultSet []ProjectResult
