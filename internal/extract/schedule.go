package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

var (
	reDay      = regexp.MustCompile(`day\s+(\d+)`)
	reShootDay = regexp.MustCompile(`shoot\s+day\s+(\d+)`)
	reCallTime = regexp.MustCompile(`call[:\s]+(\d{1,2})[:.](\d{2})`)
	reSetup    = regexp.MustCompile(`setup|set[\s-]up`)
)

// ScheduleFromText derives schedule signals. Schedules enumerate Day 1..N,
// so the largest day index seen approximates the shoot-day count.
func ScheduleFromText(text string) entity.ScheduleData {
	lower := strings.ToLower(text)

	data := entity.ScheduleData{
		CallTimesFound: len(reCallTime.FindAllStringIndex(lower, -1)),
		SetupMentions:  len(reSetup.FindAllStringIndex(lower, -1)),
		TextLength:     utf8.RuneCountInString(text),
	}

	maxDay, found := 0, false
	for _, re := range []*regexp.Regexp{reDay, reShootDay} {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if !found || n > maxDay {
				maxDay, found = n, true
			}
		}
	}
	if found {
		data.ShootDays = &maxDay
	}
	return data
}
