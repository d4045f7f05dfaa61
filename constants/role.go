package constants

import "strings"

// Role is the semantic purpose a document serves within a project.
type Role string

const (
	RoleScript   Role = "script"
	RoleBudget   Role = "budget"
	RoleSchedule Role = "schedule"
)

// Roles lists every role in processing order.
var Roles = []Role{RoleScript, RoleBudget, RoleSchedule}

// ParseRole canonicalizes a role name.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == strings.ToLower(strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}
