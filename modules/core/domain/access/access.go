// Package access holds the stateless permission resolution logic: given a
// principal's tier and organization, a requested action and the target
// resource's organization scope, it decides whether the action is permitted.
package access

import (
	"strings"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
)

// Tier is one of the four platform role tiers, ordered by privilege.
type Tier string

const (
	TierSuperAdministrator Tier = "SuperAdministrator"
	TierAdministrator      Tier = "Administrator"
	TierDeveloper          Tier = "Developer"
	TierViewer             Tier = "Viewer"
)

var tierLevels = map[Tier]int{
	TierViewer:             1,
	TierDeveloper:          2,
	TierAdministrator:      3,
	TierSuperAdministrator: 4,
}

func ParseTier(raw string) (Tier, bool) {
	t := Tier(raw)
	_, ok := tierLevels[t]
	return t, ok
}

// Level returns the tier's privilege rank; unknown tiers rank at zero.
func (t Tier) Level() int {
	return tierLevels[t]
}

// AtLeast reports whether t is at least as privileged as other. Defined for
// policies that restrict a principal to managing roles no more privileged
// than their own; not consulted by the assignment pipeline itself.
func (t Tier) AtLeast(other Tier) bool {
	return t.Level() >= other.Level()
}

// Action verbs; actions are "resource:verb" strings, e.g. "user:delete".
const (
	VerbCreate = "create"
	VerbRead   = "read"
	VerbUpdate = "update"
	VerbDelete = "delete"
)

// Verb extracts the verb from an action name: the segment after the last
// colon, or the whole action when it carries no resource prefix.
func Verb(action string) string {
	if i := strings.LastIndex(action, ":"); i >= 0 {
		return action[i+1:]
	}
	return action
}

// Scope carries the organization context of an authorization check. A zero
// ResourceOrganization means the resource is not organization-scoped.
type Scope struct {
	PrincipalOrganization identity.OrganizationID
	ResourceOrganization  identity.OrganizationID
}

// sameOrganization holds when the resource carries no organization scope or
// the principal belongs to the resource's organization.
func (s Scope) sameOrganization() bool {
	if s.ResourceOrganization.IsNil() {
		return true
	}
	return s.ResourceOrganization == s.PrincipalOrganization
}

// Decide applies the tier capability rules, in order:
//  1. SuperAdministrator is granted every action, regardless of scope.
//  2. Any other tier is denied when the resource belongs to a different
//     organization; the scope check precedes the capability check.
//  3. Viewer may only read; Developer may create, read and update but never
//     delete; Administrator has full create/read/update/delete.
func Decide(tier Tier, action string, scope Scope) bool {
	if tier == TierSuperAdministrator {
		return true
	}
	if !scope.sameOrganization() {
		return false
	}
	switch verb := Verb(action); tier {
	case TierAdministrator:
		return verb == VerbCreate || verb == VerbRead || verb == VerbUpdate || verb == VerbDelete
	case TierDeveloper:
		return verb == VerbCreate || verb == VerbRead || verb == VerbUpdate
	case TierViewer:
		return verb == VerbRead
	}
	return false
}
