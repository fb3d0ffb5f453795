package user

import (
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/access"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
)

type Created struct {
	UserID         identity.UserID
	Email          string
	Tier           access.Tier
	TenantID       identity.TenantID
	OrganizationID identity.OrganizationID
	At             time.Time
}

type PasswordChanged struct {
	UserID identity.UserID
	At     time.Time
}

type Activated struct {
	UserID identity.UserID
	At     time.Time
}

type Deactivated struct {
	UserID identity.UserID
	At     time.Time
}

type EmailVerified struct {
	UserID identity.UserID
	Email  string
	At     time.Time
}

type MFAEnabled struct {
	UserID identity.UserID
	At     time.Time
}

type MFADisabled struct {
	UserID identity.UserID
	At     time.Time
}

type TenantAssigned struct {
	UserID   identity.UserID
	TenantID identity.TenantID
	At       time.Time
}

type OrganizationAssigned struct {
	UserID         identity.UserID
	OrganizationID identity.OrganizationID
	At             time.Time
}

type Deleted struct {
	UserID identity.UserID
	At     time.Time
}

// Assignment events published by the application services once the junction
// mutation has been persisted and the permission cache invalidated.

type RoleAssigned struct {
	UserID identity.UserID
	RoleID identity.RoleID
	At     time.Time
}

type RoleRevoked struct {
	UserID identity.UserID
	RoleID identity.RoleID
	At     time.Time
}

type PermissionDirectlyAssigned struct {
	UserID       identity.UserID
	PermissionID identity.PermissionID
	At           time.Time
}

type PermissionDirectlyRevoked struct {
	UserID       identity.UserID
	PermissionID identity.PermissionID
	At           time.Time
}
