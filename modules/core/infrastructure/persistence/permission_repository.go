package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/permission"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence/models"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrPermissionNotFound  = serrors.NewNotFound("PERMISSION_NOT_FOUND", "permission not found")
	ErrPermissionDuplicate = serrors.NewConflict("PERMISSION_DUPLICATE", "a permission with this name already exists")
)

const (
	permissionFindQuery = `
        SELECT p.id, p.name, p.resource, p.action, p.description
        FROM permissions p`

	permissionUpsertQuery = `
        INSERT INTO permissions (id, name, resource, action, description)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name,
            resource = EXCLUDED.resource,
            action = EXCLUDED.action,
            description = EXCLUDED.description`

	permissionDeleteQuery = `DELETE FROM permissions WHERE id = $1`
)

type PgPermissionRepository struct{}

func NewPermissionRepository() permission.Repository {
	return &PgPermissionRepository{}
}

// Save upserts so seeding the registered permission set stays idempotent.
func (g *PgPermissionRepository) Save(ctx context.Context, p *permission.Permission) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	row := toDBPermission(p)
	if _, err := tx.Exec(ctx, permissionUpsertQuery, row.ID, row.Name, row.Resource, row.Action, row.Description); err != nil {
		if isUniqueViolation(err) {
			return ErrPermissionDuplicate.WithCause(err)
		}
		return errors.Wrapf(err, "failed to save permission %s", row.Name)
	}
	return nil
}

func (g *PgPermissionRepository) GetByID(ctx context.Context, id identity.PermissionID) (*permission.Permission, error) {
	permissions, err := g.queryPermissions(ctx, permissionFindQuery+" WHERE p.id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(permissions) == 0 {
		return nil, ErrPermissionNotFound.WithMessagef("permission %s not found", id)
	}
	return permissions[0], nil
}

func (g *PgPermissionRepository) GetByName(ctx context.Context, name string) (*permission.Permission, error) {
	permissions, err := g.queryPermissions(ctx, permissionFindQuery+" WHERE p.name = $1", name)
	if err != nil {
		return nil, err
	}
	if len(permissions) == 0 {
		return nil, ErrPermissionNotFound.WithMessagef("permission %s not found", name)
	}
	return permissions[0], nil
}

func (g *PgPermissionRepository) GetAll(ctx context.Context) ([]*permission.Permission, error) {
	return g.queryPermissions(ctx, permissionFindQuery+" ORDER BY p.name")
}

func (g *PgPermissionRepository) Delete(ctx context.Context, id identity.PermissionID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, permissionDeleteQuery, id.String())
	if err != nil {
		return errors.Wrapf(err, "failed to delete permission %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrPermissionNotFound
	}
	return nil
}

func (g *PgPermissionRepository) queryPermissions(ctx context.Context, query string, args ...any) ([]*permission.Permission, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var entities []*permission.Permission
	for rows.Next() {
		var p models.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Resource, &p.Action, &p.Description); err != nil {
			return nil, errors.Wrap(err, "failed to scan permission row")
		}
		entity, err := toDomainPermission(&p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to map permission %s", p.ID)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return entities, nil
}
