package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/region"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence/models"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/repo"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrRegionNotFound  = serrors.NewNotFound("REGION_NOT_FOUND", "region not found")
	ErrRegionDuplicate = serrors.NewConflict("REGION_DUPLICATE", "region already exists")
)

const (
	regionFindQuery = `
		SELECT
			r.id,
			r.name,
			r.code,
			r.is_active,
			r.created_at,
			r.updated_at,
			r.deleted_at
		FROM regions r`

	regionSoftDeleteQuery = `UPDATE regions SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
)

type PgRegionRepository struct{}

func NewRegionRepository() region.Repository {
	return &PgRegionRepository{}
}

func (r *PgRegionRepository) Create(ctx context.Context, data *region.Region) (*region.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbRegion := toDBRegion(data)
	fields := []string{
		"id",
		"name",
		"code",
		"is_active",
		"created_at",
		"updated_at",
	}
	values := []interface{}{
		dbRegion.ID,
		dbRegion.Name,
		dbRegion.Code,
		dbRegion.IsActive,
		dbRegion.CreatedAt,
		dbRegion.UpdatedAt,
	}
	if _, err := tx.Exec(ctx, repo.Insert("regions", fields), values...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrRegionDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to create region")
	}
	return r.GetByID(ctx, data.ID())
}

func (r *PgRegionRepository) Update(ctx context.Context, data *region.Region) (*region.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbRegion := toDBRegion(data)
	fields := []string{
		"name",
		"code",
		"is_active",
		"updated_at",
	}
	values := []interface{}{
		dbRegion.Name,
		dbRegion.Code,
		dbRegion.IsActive,
		dbRegion.UpdatedAt,
		dbRegion.ID,
	}
	tag, err := tx.Exec(ctx, repo.Update("regions", fields, "id = $5"), values...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrRegionDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to update region")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrRegionNotFound
	}
	return r.GetByID(ctx, data.ID())
}

// GetByID returns the region regardless of its deleted_at marker so that
// audit flows can still inspect removed regions.
func (r *PgRegionRepository) GetByID(ctx context.Context, id identity.RegionID) (*region.Region, error) {
	regions, err := r.queryRegions(ctx, regionFindQuery+" WHERE r.id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, ErrRegionNotFound
	}
	return regions[0], nil
}

func (r *PgRegionRepository) GetByCode(ctx context.Context, code string) (*region.Region, error) {
	regions, err := r.queryRegions(ctx, regionFindQuery+" WHERE r.code = $1 AND r.deleted_at IS NULL", code)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, ErrRegionNotFound
	}
	return regions[0], nil
}

func (r *PgRegionRepository) GetAll(ctx context.Context) ([]*region.Region, error) {
	return r.queryRegions(ctx, regionFindQuery+" WHERE r.deleted_at IS NULL ORDER BY r.name ASC")
}

func (r *PgRegionRepository) Delete(ctx context.Context, id identity.RegionID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, regionSoftDeleteQuery, id.String())
	if err != nil {
		return errors.Wrap(err, "failed to delete region")
	}
	if tag.RowsAffected() == 0 {
		return ErrRegionNotFound
	}
	return nil
}

func (r *PgRegionRepository) queryRegions(ctx context.Context, query string, args ...any) ([]*region.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query regions")
	}
	defer rows.Close()

	regions := make([]*region.Region, 0)
	for rows.Next() {
		var reg models.Region
		if err := rows.Scan(
			&reg.ID,
			&reg.Name,
			&reg.Code,
			&reg.IsActive,
			&reg.CreatedAt,
			&reg.UpdatedAt,
			&reg.DeletedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan region row")
		}
		entity, err := toDomainRegion(&reg)
		if err != nil {
			return nil, err
		}
		regions = append(regions, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return regions, nil
}
