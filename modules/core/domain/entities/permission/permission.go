package permission

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
)

type (
	Resource string
	Action   string
)

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Permission is a named capability on a resource. Names are globally unique.
type Permission struct {
	ID          identity.PermissionID
	Name        string
	Resource    Resource
	Action      Action
	Description string
}

type Repository interface {
	Save(ctx context.Context, p *Permission) error
	GetByID(ctx context.Context, id identity.PermissionID) (*Permission, error)
	GetByName(ctx context.Context, name string) (*Permission, error)
	GetAll(ctx context.Context) ([]*Permission, error)
	Delete(ctx context.Context, id identity.PermissionID) error
}
