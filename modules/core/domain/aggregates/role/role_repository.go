package role

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
)

type FindParams struct {
	TenantID       identity.TenantID
	IncludeDeleted bool
	Limit          int
	Offset         int
}

type Repository interface {
	Create(ctx context.Context, data Role) (Role, error)
	Update(ctx context.Context, data Role) (Role, error)
	GetByID(ctx context.Context, id identity.RoleID) (Role, error)
	GetByName(ctx context.Context, name string, tenantID identity.TenantID) (Role, error)
	GetAll(ctx context.Context, params *FindParams) ([]Role, error)
	// Delete performs a soft delete; the row stays addressable by ID for
	// audit purposes.
	Delete(ctx context.Context, id identity.RoleID) error
}
