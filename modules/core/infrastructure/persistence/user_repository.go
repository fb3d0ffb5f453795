package persistence

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence/models"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/repo"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrUserNotFound  = serrors.NewNotFound("USER_NOT_FOUND", "user not found")
	ErrUserDuplicate = serrors.NewConflict("USER_DUPLICATE", "a user with this email already exists")
)

const (
	userFindQuery = `
        SELECT
            u.id,
            u.email,
            u.password_hash,
            u.tier,
            u.tenant_id,
            u.organization_id,
            u.is_active,
            u.email_verified,
            u.mfa_enabled,
            u.mfa_secret,
            u.created_at,
            u.updated_at,
            u.deleted_at
        FROM users u`

	userCountQuery  = `SELECT COUNT(u.id) FROM users u`
	userExistsQuery = `SELECT 1 FROM users u`

	userSoftDeleteQuery = `UPDATE users SET deleted_at = now(), updated_at = now() WHERE id = $1`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) Create(ctx context.Context, data user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	row := toDBUser(data)
	fields := []string{
		"id",
		"email",
		"password_hash",
		"tier",
		"tenant_id",
		"organization_id",
		"is_active",
		"email_verified",
		"mfa_enabled",
		"mfa_secret",
		"created_at",
		"updated_at",
	}
	values := []any{
		row.ID,
		row.Email,
		row.PasswordHash,
		row.Tier,
		row.TenantID,
		row.OrganizationID,
		row.IsActive,
		row.EmailVerified,
		row.MFAEnabled,
		row.MFASecret,
		row.CreatedAt,
		row.UpdatedAt,
	}
	if _, err := tx.Exec(ctx, repo.Insert("users", fields), values...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to insert user")
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgUserRepository) Update(ctx context.Context, data user.User) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	row := toDBUser(data)
	fields := []string{
		"email",
		"password_hash",
		"tier",
		"tenant_id",
		"organization_id",
		"is_active",
		"email_verified",
		"mfa_enabled",
		"mfa_secret",
		"updated_at",
		"deleted_at",
	}
	values := []any{
		row.Email,
		row.PasswordHash,
		row.Tier,
		row.TenantID,
		row.OrganizationID,
		row.IsActive,
		row.EmailVerified,
		row.MFAEnabled,
		row.MFASecret,
		row.UpdatedAt,
		row.DeletedAt,
		row.ID,
	}
	tag, err := tx.Exec(ctx, repo.Update("users", fields, "id = $12"), values...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserDuplicate.WithCause(err)
		}
		return errors.Wrapf(err, "failed to update user %s", row.ID)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetByID resolves users regardless of their soft-delete state so deleted
// principals stay addressable for audit.
func (g *PgUserRepository) GetByID(ctx context.Context, id identity.UserID) (user.User, error) {
	users, err := g.queryUsers(ctx, userFindQuery+" WHERE u.id = $1", id.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query user %s", id)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound.WithMessagef("user %s not found", id)
	}
	return users[0], nil
}

func (g *PgUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	users, err := g.queryUsers(ctx, userFindQuery+" WHERE u.email = $1 AND u.deleted_at IS NULL", email)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query user by email %s", email)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound.WithMessagef("user with email %s not found", email)
	}
	return users[0], nil
}

func (g *PgUserRepository) GetAll(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	where, args := buildUserFilters(params)
	query := repo.Join(
		userFindQuery,
		repo.JoinWhere(where...),
		"ORDER BY u.created_at",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	return g.queryUsers(ctx, query, args...)
}

func (g *PgUserRepository) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}
	where, args := buildUserFilters(params)
	var count int64
	if err := tx.QueryRow(ctx, repo.Join(userCountQuery, repo.JoinWhere(where...)), args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}
	return count, nil
}

func (g *PgUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}
	query := repo.Exists(repo.Join(userExistsQuery, "WHERE u.email = $1 AND u.deleted_at IS NULL"))
	exists := false
	if err := tx.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "checking email existence failed")
	}
	return exists, nil
}

func (g *PgUserRepository) Delete(ctx context.Context, id identity.UserID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, userSoftDeleteQuery, id.String())
	if err != nil {
		return errors.Wrapf(err, "failed to soft delete user %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func buildUserFilters(params *user.FindParams) ([]string, []any) {
	var (
		where []string
		args  []any
	)
	if !params.IncludeDeleted {
		where = append(where, "u.deleted_at IS NULL")
	}
	if !params.TenantID.IsNil() {
		args = append(args, params.TenantID.String())
		where = append(where, "u.tenant_id = $"+strconv.Itoa(len(args)))
	}
	if !params.OrganizationID.IsNil() {
		args = append(args, params.OrganizationID.String())
		where = append(where, "u.organization_id = $"+strconv.Itoa(len(args)))
	}
	return where, args
}

func (g *PgUserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var entities []user.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.PasswordHash,
			&u.Tier,
			&u.TenantID,
			&u.OrganizationID,
			&u.IsActive,
			&u.EmailVerified,
			&u.MFAEnabled,
			&u.MFASecret,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.DeletedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan user row")
		}
		entity, err := toDomainUser(&u)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to map user %s", u.ID)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return entities, nil
}
