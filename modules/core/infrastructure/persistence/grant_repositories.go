package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrRoleAlreadyAssigned      = serrors.NewConflict("ROLE_ALREADY_ASSIGNED", "role is already assigned to the user")
	ErrRoleNotAssigned          = serrors.NewNotFound("ROLE_NOT_ASSIGNED", "role is not assigned to the user")
	ErrPermissionAlreadyGranted = serrors.NewConflict("PERMISSION_ALREADY_GRANTED", "permission is already granted to the user")
	ErrPermissionNotGranted     = serrors.NewNotFound("PERMISSION_NOT_GRANTED", "permission is not granted to the user")
)

const (
	userRoleInsertQuery = `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`
	userRoleDeleteQuery = `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`
	userRoleByUserQuery = `SELECT role_id FROM user_roles WHERE user_id = $1`
	userRoleByRoleQuery = `SELECT user_id FROM user_roles WHERE role_id = $1`
	userRoleExistsQuery = `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role_id = $2)`

	userPermissionInsertQuery = `INSERT INTO user_permissions (user_id, permission_id) VALUES ($1, $2)`
	userPermissionDeleteQuery = `DELETE FROM user_permissions WHERE user_id = $1 AND permission_id = $2`
	userPermissionByUserQuery = `SELECT permission_id FROM user_permissions WHERE user_id = $1`
	userPermissionByPermQuery = `SELECT user_id FROM user_permissions WHERE permission_id = $1`
	userPermissionExistsQuery = `SELECT EXISTS (SELECT 1 FROM user_permissions WHERE user_id = $1 AND permission_id = $2)`
)

// PgRoleGrantRepository is the User↔Role junction store. The primary key on
// (user_id, role_id) is the arbiter for concurrent assignments: the losing
// insert surfaces as ErrRoleAlreadyAssigned.
type PgRoleGrantRepository struct{}

func NewRoleGrantRepository() user.RoleGrants {
	return &PgRoleGrantRepository{}
}

func (g *PgRoleGrantRepository) Assign(ctx context.Context, userID identity.UserID, roleID identity.RoleID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, userRoleInsertQuery, userID.String(), roleID.String()); err != nil {
		if isUniqueViolation(err) {
			return ErrRoleAlreadyAssigned.WithCause(err)
		}
		return errors.Wrapf(err, "failed to assign role %s to user %s", roleID, userID)
	}
	return nil
}

func (g *PgRoleGrantRepository) Revoke(ctx context.Context, userID identity.UserID, roleID identity.RoleID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, userRoleDeleteQuery, userID.String(), roleID.String())
	if err != nil {
		return errors.Wrapf(err, "failed to revoke role %s from user %s", roleID, userID)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoleNotAssigned
	}
	return nil
}

func (g *PgRoleGrantRepository) ListByUser(ctx context.Context, userID identity.UserID) ([]identity.RoleID, error) {
	raws, err := queryIDs(ctx, userRoleByUserQuery, userID.String())
	if err != nil {
		return nil, err
	}
	ids := make([]identity.RoleID, 0, len(raws))
	for _, raw := range raws {
		id, err := identity.ParseRoleID(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid role ID %s", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (g *PgRoleGrantRepository) ListByRole(ctx context.Context, roleID identity.RoleID) ([]identity.UserID, error) {
	raws, err := queryIDs(ctx, userRoleByRoleQuery, roleID.String())
	if err != nil {
		return nil, err
	}
	ids := make([]identity.UserID, 0, len(raws))
	for _, raw := range raws {
		id, err := identity.ParseUserID(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid user ID %s", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (g *PgRoleGrantRepository) Exists(ctx context.Context, userID identity.UserID, roleID identity.RoleID) (bool, error) {
	return queryExists(ctx, userRoleExistsQuery, userID.String(), roleID.String())
}

// PgPermissionGrantRepository is the User↔Permission junction store for
// direct grants.
type PgPermissionGrantRepository struct{}

func NewPermissionGrantRepository() user.PermissionGrants {
	return &PgPermissionGrantRepository{}
}

func (g *PgPermissionGrantRepository) Assign(ctx context.Context, userID identity.UserID, permissionID identity.PermissionID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, userPermissionInsertQuery, userID.String(), permissionID.String()); err != nil {
		if isUniqueViolation(err) {
			return ErrPermissionAlreadyGranted.WithCause(err)
		}
		return errors.Wrapf(err, "failed to grant permission %s to user %s", permissionID, userID)
	}
	return nil
}

func (g *PgPermissionGrantRepository) Revoke(ctx context.Context, userID identity.UserID, permissionID identity.PermissionID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, userPermissionDeleteQuery, userID.String(), permissionID.String())
	if err != nil {
		return errors.Wrapf(err, "failed to revoke permission %s from user %s", permissionID, userID)
	}
	if tag.RowsAffected() == 0 {
		return ErrPermissionNotGranted
	}
	return nil
}

func (g *PgPermissionGrantRepository) ListByUser(ctx context.Context, userID identity.UserID) ([]identity.PermissionID, error) {
	raws, err := queryIDs(ctx, userPermissionByUserQuery, userID.String())
	if err != nil {
		return nil, err
	}
	ids := make([]identity.PermissionID, 0, len(raws))
	for _, raw := range raws {
		id, err := identity.ParsePermissionID(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid permission ID %s", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (g *PgPermissionGrantRepository) ListByPermission(ctx context.Context, permissionID identity.PermissionID) ([]identity.UserID, error) {
	raws, err := queryIDs(ctx, userPermissionByPermQuery, permissionID.String())
	if err != nil {
		return nil, err
	}
	ids := make([]identity.UserID, 0, len(raws))
	for _, raw := range raws {
		id, err := identity.ParseUserID(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid user ID %s", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (g *PgPermissionGrantRepository) Exists(ctx context.Context, userID identity.UserID, permissionID identity.PermissionID) (bool, error) {
	return queryExists(ctx, userPermissionExistsQuery, userID.String(), permissionID.String())
}

func queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan ID")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return ids, nil
}

func queryExists(ctx context.Context, query string, args ...any) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}
	exists := false
	if err := tx.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "existence check failed")
	}
	return exists, nil
}
