package core

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

type fakeExtractor struct {
	budgets   map[string]entity.BudgetData
	schedules map[string]entity.ScheduleData
	opened    []string
}

func (f *fakeExtractor) Script(_ context.Context, path string) entity.ScriptFeatures {
	f.opened = append(f.opened, path)
	return entity.ScriptFeatures{Techniques: []constants.Technique{constants.Drone}, Locations: []constants.Location{}, TextLength: 42}
}

func (f *fakeExtractor) Budget(_ context.Context, path string) entity.BudgetData {
	f.opened = append(f.opened, path)
	return f.budgets[path]
}

func (f *fakeExtractor) Schedule(_ context.Context, path string) entity.ScheduleData {
	f.opened = append(f.opened, path)
	return f.schedules[path]
}

func ptr[T any](v T) *T { return &v }

func allExist(string) bool { return true }

func newTestProcessor(fx *fakeExtractor, exists func(string) bool) *Processor {
	return NewProcessor(nil, fx, WithExistsFunc(exists))
}

func TestProcess_BudgetListShortCircuits(t *testing.T) {
	fx := &fakeExtractor{budgets: map[string]entity.BudgetData{
		"/b1.pdf": {TotalGBP: ptr(50000.0), Source: "pdf_extracted", AmountsFound: 1},
		"/b2.pdf": {TotalGBP: ptr(90000.0)},
	}}
	raw := json.RawMessage(`{"project_name":"P","files":{"budget":[{"path":"/b1.pdf"},{"path":"/b2.pdf"}]}}`)

	res, err := newTestProcessor(fx, allExist).Process(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, res.BudgetData)
	assert.Equal(t, 50000.0, *res.BudgetData.TotalGBP)
	assert.Equal(t, []string{"/b1.pdf"}, fx.opened, "second file must not be read")
}

func TestProcess_BudgetListFallsThroughNullTotals(t *testing.T) {
	fx := &fakeExtractor{budgets: map[string]entity.BudgetData{
		"/b1.pdf":  {Note: "No amounts in PDF"},
		"/b3.xlsx": {TotalGBP: ptr(70000.0), Source: "xlsx"},
	}}
	raw := json.RawMessage(`{"project_name":"P","files":{"budget":[{"path":"/b1.pdf"},{"path":"/missing.pdf"},{"path":"/b3.xlsx"}]}}`)
	exists := func(p string) bool { return p != "/missing.pdf" }

	res, err := newTestProcessor(fx, exists).Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 70000.0, *res.BudgetData.TotalGBP)
	assert.Equal(t, []string{"/b1.pdf", "/b3.xlsx"}, fx.opened)
}

func TestProcess_ScheduleListRequiresExistsFlag(t *testing.T) {
	fx := &fakeExtractor{schedules: map[string]entity.ScheduleData{
		"/s1.pdf": {ShootDays: ptr(9)},
		"/s2.pdf": {ShootDays: ptr(4)},
		"/s3.pdf": {ShootDays: ptr(7)},
	}}
	raw := json.RawMessage(`{"project_name":"P","files":{"schedule":[
		{"path":"/s1.pdf"},
		{"path":"/s2.pdf","exists":false},
		{"path":"/s3.pdf","exists":true}
	]}}`)

	res, err := newTestProcessor(fx, allExist).Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 7, *res.ScheduleData.ShootDays)
	assert.Equal(t, []string{"/s3.pdf"}, fx.opened)
}

func TestProcess_SingleBindingsAndPassThrough(t *testing.T) {
	fx := &fakeExtractor{
		budgets:   map[string]entity.BudgetData{"/b.xlsx": {TotalGBP: ptr(12345.0)}},
		schedules: map[string]entity.ScheduleData{"/s.pdf": {ShootDays: ptr(2)}},
	}
	raw := json.RawMessage(`{"project_name":"Ad","client":"Acme","complete":true,"files":{
		"script":{"path":"/sc.pdf"},"budget":{"path":"/b.xlsx"},"schedule":{"path":"/s.pdf"}}}`)

	res, err := newTestProcessor(fx, allExist).Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "Ad", res.ProjectName)
	assert.Equal(t, "Acme", res.Client)
	assert.True(t, res.Complete)
	require.NotNil(t, res.ScriptFeatures)
	assert.Equal(t, 42, res.ScriptFeatures.TextLength)
	assert.True(t, res.HasBudget())
	assert.True(t, res.HasSchedule())
}

func TestProcess_MissingSingleFileLeavesBlockEmpty(t *testing.T) {
	fx := &fakeExtractor{}
	raw := json.RawMessage(`{"project_name":"P","files":{"script":{"path":"/gone.pdf"}}}`)

	res, err := newTestProcessor(fx, func(string) bool { return false }).Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Nil(t, res.ScriptFeatures)
	assert.Empty(t, fx.opened)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"project_name":"P","client":"","complete":false,"script_features":{},"budget_data":{},"schedule_data":{}}`, string(b))
}

func TestProcess_ScriptListIsIgnored(t *testing.T) {
	fx := &fakeExtractor{}
	raw := json.RawMessage(`{"project_name":"P","files":{"script":[{"path":"/a.pdf"},{"path":"/b.pdf"}]}}`)

	res, err := newTestProcessor(fx, allExist).Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Nil(t, res.ScriptFeatures)
	assert.Empty(t, fx.opened)
}

func TestProcess_MalformedEntries(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantErr  error
	}{
		{"missing files", `{"project_name":"NoFiles"}`, "NoFiles", common.ErrMissingFiles},
		{"null files", `{"project_name":"Null","files":null}`, "Null", common.ErrMissingFiles},
		{"files not object", `{"project_name":"Bad","files":[1,2]}`, "Bad", common.ErrInvalidInput},
		{"entry not object", `"just a string"`, entity.UnknownProject, common.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestProcessor(&fakeExtractor{}, allExist).Process(context.Background(), json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantName, res.ProjectName)
		})
	}
}
