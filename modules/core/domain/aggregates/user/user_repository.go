package user

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
)

type FindParams struct {
	TenantID       identity.TenantID
	OrganizationID identity.OrganizationID
	IncludeDeleted bool
	Limit          int
	Offset         int
}

type Repository interface {
	Create(ctx context.Context, data User) (User, error)
	Update(ctx context.Context, data User) error
	GetByID(ctx context.Context, id identity.UserID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetAll(ctx context.Context, params *FindParams) ([]User, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// Delete performs a soft delete; the row stays addressable by ID.
	Delete(ctx context.Context, id identity.UserID) error
}

// RoleGrants is the User↔Role junction store. Pairs have no identity beyond
// (user, role); the store enforces uniqueness on the pair.
type RoleGrants interface {
	Assign(ctx context.Context, userID identity.UserID, roleID identity.RoleID) error
	Revoke(ctx context.Context, userID identity.UserID, roleID identity.RoleID) error
	ListByUser(ctx context.Context, userID identity.UserID) ([]identity.RoleID, error)
	ListByRole(ctx context.Context, roleID identity.RoleID) ([]identity.UserID, error)
	Exists(ctx context.Context, userID identity.UserID, roleID identity.RoleID) (bool, error)
}

// PermissionGrants is the User↔Permission junction store for direct grants
// that bypass roles.
type PermissionGrants interface {
	Assign(ctx context.Context, userID identity.UserID, permissionID identity.PermissionID) error
	Revoke(ctx context.Context, userID identity.UserID, permissionID identity.PermissionID) error
	ListByUser(ctx context.Context, userID identity.UserID) ([]identity.PermissionID, error)
	ListByPermission(ctx context.Context, permissionID identity.PermissionID) ([]identity.UserID, error)
	Exists(ctx context.Context, userID identity.UserID, permissionID identity.PermissionID) (bool, error)
}
