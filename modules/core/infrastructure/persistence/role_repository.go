package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence/models"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/repo"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrRoleNotFound  = serrors.NewNotFound("ROLE_NOT_FOUND", "role not found")
	ErrRoleDuplicate = serrors.NewConflict("ROLE_DUPLICATE", "a role with this name already exists in the scope")
)

const (
	roleFindQuery = `
        SELECT
            r.id,
            r.tenant_id,
            r.name,
            r.description,
            r.is_system,
            r.created_at,
            r.updated_at,
            r.deleted_at
        FROM roles r`

	rolePermissionIDsQuery = `
        SELECT rp.permission_id
        FROM role_permissions rp
        WHERE rp.role_id = $1
        ORDER BY rp.position`

	rolePermissionsDeleteQuery = `DELETE FROM role_permissions WHERE role_id = $1`
	rolePermissionsInsertQuery = `INSERT INTO role_permissions (role_id, permission_id, position) VALUES`

	roleSoftDeleteQuery = `UPDATE roles SET deleted_at = now(), updated_at = now() WHERE id = $1`
)

type PgRoleRepository struct{}

func NewRoleRepository() role.Repository {
	return &PgRoleRepository{}
}

func (g *PgRoleRepository) Create(ctx context.Context, data role.Role) (role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	row := toDBRole(data)
	fields := []string{"id", "tenant_id", "name", "description", "is_system", "created_at", "updated_at"}
	values := []any{row.ID, row.TenantID, row.Name, row.Description, row.IsSystem, row.CreatedAt, row.UpdatedAt}
	if _, err := tx.Exec(ctx, repo.Insert("roles", fields), values...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrRoleDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to insert role")
	}
	if err := g.replacePermissions(ctx, data.ID(), data.PermissionIDs()); err != nil {
		return nil, err
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgRoleRepository) Update(ctx context.Context, data role.Role) (role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	row := toDBRole(data)
	fields := []string{"name", "description", "updated_at", "deleted_at"}
	values := []any{row.Name, row.Description, row.UpdatedAt, row.DeletedAt, row.ID}
	tag, err := tx.Exec(ctx, repo.Update("roles", fields, "id = $5"), values...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrRoleDuplicate.WithCause(err)
		}
		return nil, errors.Wrapf(err, "failed to update role %s", row.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrRoleNotFound
	}
	if err := g.replacePermissions(ctx, data.ID(), data.PermissionIDs()); err != nil {
		return nil, err
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgRoleRepository) GetByID(ctx context.Context, id identity.RoleID) (role.Role, error) {
	roles, err := g.queryRoles(ctx, roleFindQuery+" WHERE r.id = $1", id.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query role %s", id)
	}
	if len(roles) == 0 {
		return nil, ErrRoleNotFound.WithMessagef("role %s not found", id)
	}
	return roles[0], nil
}

func (g *PgRoleRepository) GetByName(ctx context.Context, name string, tenantID identity.TenantID) (role.Role, error) {
	var (
		query string
		args  []any
	)
	if tenantID.IsNil() {
		query = roleFindQuery + " WHERE r.name = $1 AND r.tenant_id IS NULL AND r.deleted_at IS NULL"
		args = []any{name}
	} else {
		query = roleFindQuery + " WHERE r.name = $1 AND r.tenant_id = $2 AND r.deleted_at IS NULL"
		args = []any{name, tenantID.String()}
	}
	roles, err := g.queryRoles(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query role by name %s", name)
	}
	if len(roles) == 0 {
		return nil, ErrRoleNotFound.WithMessagef("role %s not found", name)
	}
	return roles[0], nil
}

func (g *PgRoleRepository) GetAll(ctx context.Context, params *role.FindParams) ([]role.Role, error) {
	var (
		where []string
		args  []any
	)
	if !params.IncludeDeleted {
		where = append(where, "r.deleted_at IS NULL")
	}
	if !params.TenantID.IsNil() {
		args = append(args, params.TenantID.String())
		where = append(where, "r.tenant_id = $1")
	}
	query := repo.Join(
		roleFindQuery,
		repo.JoinWhere(where...),
		"ORDER BY r.name",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	return g.queryRoles(ctx, query, args...)
}

func (g *PgRoleRepository) Delete(ctx context.Context, id identity.RoleID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, roleSoftDeleteQuery, id.String())
	if err != nil {
		return errors.Wrapf(err, "failed to soft delete role %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoleNotFound
	}
	return nil
}

func (g *PgRoleRepository) queryRoles(ctx context.Context, query string, args ...any) ([]role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var dbRoles []*models.Role
	for rows.Next() {
		var r models.Role
		if err := rows.Scan(
			&r.ID,
			&r.TenantID,
			&r.Name,
			&r.Description,
			&r.IsSystem,
			&r.CreatedAt,
			&r.UpdatedAt,
			&r.DeletedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan role row")
		}
		dbRoles = append(dbRoles, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	entities := make([]role.Role, 0, len(dbRoles))
	for _, r := range dbRoles {
		permissionIDs, err := g.rolePermissionIDs(ctx, r.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get permissions for role %s", r.ID)
		}
		entity, err := toDomainRole(r, permissionIDs)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to map role %s", r.ID)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (g *PgRoleRepository) rolePermissionIDs(ctx context.Context, roleID string) ([]identity.PermissionID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, rolePermissionIDsQuery, roleID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query role permissions")
	}
	defer rows.Close()

	var ids []identity.PermissionID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "failed to scan permission ID")
		}
		id, err := identity.ParsePermissionID(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid permission ID %s", raw)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return ids, nil
}

// replacePermissions rewrites the role's ordered permission set. Position
// preserves the aggregate's insertion order across reloads.
func (g *PgRoleRepository) replacePermissions(ctx context.Context, roleID identity.RoleID, permissionIDs []identity.PermissionID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, rolePermissionsDeleteQuery, roleID.String()); err != nil {
		return errors.Wrapf(err, "failed to clear permissions for role %s", roleID)
	}
	if len(permissionIDs) == 0 {
		return nil
	}
	values := make([][]any, 0, len(permissionIDs))
	for i, id := range permissionIDs {
		values = append(values, []any{roleID.String(), id.String(), i})
	}
	q, args := repo.BatchInsertQueryN(rolePermissionsInsertQuery, values)
	if _, err := tx.Exec(ctx, q, args...); err != nil {
		return errors.Wrapf(err, "failed to insert permissions for role %s", roleID)
	}
	return nil
}
