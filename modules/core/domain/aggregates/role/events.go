package role

import (
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
)

// Domain events recorded by the Role aggregate. Plain data records: the
// entity identifier plus the scalar fields a consumer needs, no behavior.

type Created struct {
	RoleID   identity.RoleID
	Name     string
	TenantID identity.TenantID
	System   bool
	At       time.Time
}

type Updated struct {
	RoleID      identity.RoleID
	Name        string
	Description string
	At          time.Time
}

type PermissionAssigned struct {
	RoleID       identity.RoleID
	PermissionID identity.PermissionID
	At           time.Time
}

type PermissionRemoved struct {
	RoleID       identity.RoleID
	PermissionID identity.PermissionID
	At           time.Time
}

type Deleted struct {
	RoleID identity.RoleID
	At     time.Time
}
