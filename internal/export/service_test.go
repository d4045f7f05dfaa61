package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

func TestResultsXLSX(t *testing.T) {
	total := 45000.5
	days := 4
	shots := 12
	results := entity.ResultSet{
		{
			ProjectName: "Alpha",
			Client:      "Acme",
			Complete:    true,
			ScriptFeatures: &entity.ScriptFeatures{
				Techniques:     []constants.Technique{constants.Drone, constants.VFX},
				Locations:      []constants.Location{constants.Outdoor},
				EstimatedShots: &shots,
				TextLength:     900,
			},
			BudgetData:   &entity.BudgetData{TotalGBP: &total, Source: "xlsx", AmountsFound: 3, File: "budget.xlsx"},
			ScheduleData: &entity.ScheduleData{ShootDays: &days, CallTimesFound: 2, File: "sched.pdf"},
		},
		entity.NewErrorResult("Broken", errors.New("files missing")),
	}

	b, err := NewService(nil).ResultsXLSX(results)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])

	assert.Equal(t, "Alpha", rows[1][0])
	assert.Equal(t, "drone, vfx", rows[1][5])
	assert.Equal(t, "outdoor", rows[1][6])
	assert.Equal(t, "12", rows[1][7])
	assert.Equal(t, "sched.pdf", rows[1][17])

	raw, err := f.GetCellValue(SheetName, "L2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "45000.5", raw)

	assert.Equal(t, "Broken", rows[2][0])
	assert.Equal(t, "files missing", rows[2][3])
	assert.Equal(t, "", rows[2][1])
}
