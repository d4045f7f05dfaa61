package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleFromText(t *testing.T) {
	text := "SHOOT DAY 1\nCall: 07:30\nDay 3 unit move\nDay 2\ncall 6.45\nSet-up 4, setup 5"
	s := ScheduleFromText(text)
	require.NotNil(t, s.ShootDays)
	assert.Equal(t, 3, *s.ShootDays)
	assert.Equal(t, 2, s.CallTimesFound)
	assert.Equal(t, 2, s.SetupMentions)
	assert.Equal(t, len([]rune(text)), s.TextLength)
}

func TestScheduleFromText_NoDays(t *testing.T) {
	s := ScheduleFromText("prep week only")
	assert.Nil(t, s.ShootDays)
	assert.Zero(t, s.CallTimesFound)
	assert.Empty(t, s.Error)
}
