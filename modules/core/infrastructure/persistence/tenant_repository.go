package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/tenant"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence/models"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/repo"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrTenantNotFound  = serrors.NewNotFound("TENANT_NOT_FOUND", "tenant not found")
	ErrTenantDuplicate = serrors.NewConflict("TENANT_DUPLICATE", "tenant already exists")
)

const (
	tenantFindQuery = `
		SELECT
			t.id,
			t.workspace_id,
			t.name,
			t.domain,
			t.is_active,
			t.created_at,
			t.updated_at,
			t.deleted_at
		FROM tenants t`

	tenantSoftDeleteQuery = `UPDATE tenants SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
)

type PgTenantRepository struct{}

func NewTenantRepository() tenant.Repository {
	return &PgTenantRepository{}
}

func (r *PgTenantRepository) Create(ctx context.Context, data *tenant.Tenant) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbTenant := toDBTenant(data)
	fields := []string{
		"id",
		"workspace_id",
		"name",
		"domain",
		"is_active",
		"created_at",
		"updated_at",
	}
	values := []interface{}{
		dbTenant.ID,
		dbTenant.WorkspaceID,
		dbTenant.Name,
		dbTenant.Domain,
		dbTenant.IsActive,
		dbTenant.CreatedAt,
		dbTenant.UpdatedAt,
	}
	if _, err := tx.Exec(ctx, repo.Insert("tenants", fields), values...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTenantDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to create tenant")
	}
	return r.GetByID(ctx, data.ID())
}

func (r *PgTenantRepository) Update(ctx context.Context, data *tenant.Tenant) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbTenant := toDBTenant(data)
	fields := []string{
		"name",
		"domain",
		"is_active",
		"updated_at",
	}
	values := []interface{}{
		dbTenant.Name,
		dbTenant.Domain,
		dbTenant.IsActive,
		dbTenant.UpdatedAt,
		dbTenant.ID,
	}
	tag, err := tx.Exec(ctx, repo.Update("tenants", fields, "id = $5"), values...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTenantDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to update tenant")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTenantNotFound
	}
	return r.GetByID(ctx, data.ID())
}

// GetByID returns the tenant regardless of its deleted_at marker so that
// audit flows can still inspect removed tenants.
func (r *PgTenantRepository) GetByID(ctx context.Context, id identity.TenantID) (*tenant.Tenant, error) {
	tenants, err := r.queryTenants(ctx, tenantFindQuery+" WHERE t.id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, ErrTenantNotFound
	}
	return tenants[0], nil
}

func (r *PgTenantRepository) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	tenants, err := r.queryTenants(ctx, tenantFindQuery+" WHERE t.domain = $1 AND t.deleted_at IS NULL", domain)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, ErrTenantNotFound
	}
	return tenants[0], nil
}

func (r *PgTenantRepository) GetByWorkspace(ctx context.Context, workspaceID identity.WorkspaceID) ([]*tenant.Tenant, error) {
	query := tenantFindQuery + " WHERE t.workspace_id = $1 AND t.deleted_at IS NULL ORDER BY t.created_at DESC"
	return r.queryTenants(ctx, query, workspaceID.String())
}

func (r *PgTenantRepository) Delete(ctx context.Context, id identity.TenantID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, tenantSoftDeleteQuery, id.String())
	if err != nil {
		return errors.Wrap(err, "failed to delete tenant")
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func (r *PgTenantRepository) queryTenants(ctx context.Context, query string, args ...any) ([]*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tenants")
	}
	defer rows.Close()

	tenants := make([]*tenant.Tenant, 0)
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(
			&t.ID,
			&t.WorkspaceID,
			&t.Name,
			&t.Domain,
			&t.IsActive,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.DeletedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan tenant row")
		}
		entity, err := toDomainTenant(&t)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return tenants, nil
}
