package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/organization"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence/models"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/repo"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrOrganizationNotFound  = serrors.NewNotFound("ORGANIZATION_NOT_FOUND", "organization not found")
	ErrOrganizationDuplicate = serrors.NewConflict("ORGANIZATION_DUPLICATE", "organization already exists")
)

const (
	organizationFindQuery = `
		SELECT
			o.id,
			o.region_id,
			o.name,
			o.slug,
			o.is_active,
			o.created_at,
			o.updated_at,
			o.deleted_at
		FROM organizations o`

	organizationSoftDeleteQuery = `UPDATE organizations SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
)

type PgOrganizationRepository struct{}

func NewOrganizationRepository() organization.Repository {
	return &PgOrganizationRepository{}
}

func (r *PgOrganizationRepository) Create(ctx context.Context, data *organization.Organization) (*organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbOrg := toDBOrganization(data)
	fields := []string{
		"id",
		"region_id",
		"name",
		"slug",
		"is_active",
		"created_at",
		"updated_at",
	}
	values := []interface{}{
		dbOrg.ID,
		dbOrg.RegionID,
		dbOrg.Name,
		dbOrg.Slug,
		dbOrg.IsActive,
		dbOrg.CreatedAt,
		dbOrg.UpdatedAt,
	}
	if _, err := tx.Exec(ctx, repo.Insert("organizations", fields), values...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrOrganizationDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to create organization")
	}
	return r.GetByID(ctx, data.ID())
}

func (r *PgOrganizationRepository) Update(ctx context.Context, data *organization.Organization) (*organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbOrg := toDBOrganization(data)
	fields := []string{
		"name",
		"slug",
		"is_active",
		"updated_at",
	}
	values := []interface{}{
		dbOrg.Name,
		dbOrg.Slug,
		dbOrg.IsActive,
		dbOrg.UpdatedAt,
		dbOrg.ID,
	}
	tag, err := tx.Exec(ctx, repo.Update("organizations", fields, "id = $5"), values...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrOrganizationDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to update organization")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrOrganizationNotFound
	}
	return r.GetByID(ctx, data.ID())
}

// GetByID returns the organization regardless of its deleted_at marker so
// that audit flows can still inspect removed organizations.
func (r *PgOrganizationRepository) GetByID(ctx context.Context, id identity.OrganizationID) (*organization.Organization, error) {
	orgs, err := r.queryOrganizations(ctx, organizationFindQuery+" WHERE o.id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, ErrOrganizationNotFound
	}
	return orgs[0], nil
}

func (r *PgOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*organization.Organization, error) {
	orgs, err := r.queryOrganizations(ctx, organizationFindQuery+" WHERE o.slug = $1 AND o.deleted_at IS NULL", slug)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, ErrOrganizationNotFound
	}
	return orgs[0], nil
}

func (r *PgOrganizationRepository) GetByRegion(ctx context.Context, regionID identity.RegionID) ([]*organization.Organization, error) {
	query := organizationFindQuery + " WHERE o.region_id = $1 AND o.deleted_at IS NULL ORDER BY o.created_at DESC"
	return r.queryOrganizations(ctx, query, regionID.String())
}

func (r *PgOrganizationRepository) Delete(ctx context.Context, id identity.OrganizationID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, organizationSoftDeleteQuery, id.String())
	if err != nil {
		return errors.Wrap(err, "failed to delete organization")
	}
	if tag.RowsAffected() == 0 {
		return ErrOrganizationNotFound
	}
	return nil
}

func (r *PgOrganizationRepository) queryOrganizations(ctx context.Context, query string, args ...any) ([]*organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query organizations")
	}
	defer rows.Close()

	orgs := make([]*organization.Organization, 0)
	for rows.Next() {
		var o models.Organization
		if err := rows.Scan(
			&o.ID,
			&o.RegionID,
			&o.Name,
			&o.Slug,
			&o.IsActive,
			&o.CreatedAt,
			&o.UpdatedAt,
			&o.DeletedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan organization row")
		}
		entity, err := toDomainOrganization(&o)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return orgs, nil
}
