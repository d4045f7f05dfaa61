package ingest

import (
	"strings"

	"github.com/joseph-ayodele/production-feasibility/constants"
)

// roleKeywords is checked in order; the first role with a matching keyword
// wins, so "budget schedule.xlsx" is a budget.
var roleKeywords = []struct {
	role     constants.Role
	keywords []string
}{
	{constants.RoleBudget, []string{"budget", "costing", "cost report", "estimate", "quote"}},
	{constants.RoleSchedule, []string{"schedule", "call sheet", "callsheet", "shooting order", "stripboard"}},
	{constants.RoleScript, []string{"script", "screenplay", "shooting board"}},
}

// ClassifyFile maps a filename to a document role.
func ClassifyFile(name string) (constants.Role, bool) {
	lower := strings.ToLower(name)
	lower = strings.NewReplacer("-", " ", "_", " ").Replace(lower)
	for _, rk := range roleKeywords {
		for _, k := range rk.keywords {
			if strings.Contains(lower, k) {
				return rk.role, true
			}
		}
	}
	return "", false
}
