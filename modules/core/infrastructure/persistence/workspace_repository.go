package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/workspace"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence/models"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/repo"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrWorkspaceNotFound  = serrors.NewNotFound("WORKSPACE_NOT_FOUND", "workspace not found")
	ErrWorkspaceDuplicate = serrors.NewConflict("WORKSPACE_DUPLICATE", "workspace already exists")
)

const (
	workspaceFindQuery = `
		SELECT
			w.id,
			w.organization_id,
			w.name,
			w.is_active,
			w.created_at,
			w.updated_at,
			w.deleted_at
		FROM workspaces w`

	workspaceSoftDeleteQuery = `UPDATE workspaces SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
)

type PgWorkspaceRepository struct{}

func NewWorkspaceRepository() workspace.Repository {
	return &PgWorkspaceRepository{}
}

func (r *PgWorkspaceRepository) Create(ctx context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbWorkspace := toDBWorkspace(data)
	fields := []string{
		"id",
		"organization_id",
		"name",
		"is_active",
		"created_at",
		"updated_at",
	}
	values := []interface{}{
		dbWorkspace.ID,
		dbWorkspace.OrganizationID,
		dbWorkspace.Name,
		dbWorkspace.IsActive,
		dbWorkspace.CreatedAt,
		dbWorkspace.UpdatedAt,
	}
	if _, err := tx.Exec(ctx, repo.Insert("workspaces", fields), values...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrWorkspaceDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to create workspace")
	}
	return r.GetByID(ctx, data.ID())
}

func (r *PgWorkspaceRepository) Update(ctx context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbWorkspace := toDBWorkspace(data)
	fields := []string{
		"name",
		"is_active",
		"updated_at",
	}
	values := []interface{}{
		dbWorkspace.Name,
		dbWorkspace.IsActive,
		dbWorkspace.UpdatedAt,
		dbWorkspace.ID,
	}
	tag, err := tx.Exec(ctx, repo.Update("workspaces", fields, "id = $4"), values...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrWorkspaceDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to update workspace")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrWorkspaceNotFound
	}
	return r.GetByID(ctx, data.ID())
}

// GetByID returns the workspace regardless of its deleted_at marker so that
// audit flows can still inspect removed workspaces.
func (r *PgWorkspaceRepository) GetByID(ctx context.Context, id identity.WorkspaceID) (*workspace.Workspace, error) {
	workspaces, err := r.queryWorkspaces(ctx, workspaceFindQuery+" WHERE w.id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, ErrWorkspaceNotFound
	}
	return workspaces[0], nil
}

func (r *PgWorkspaceRepository) GetByOrganization(ctx context.Context, organizationID identity.OrganizationID) ([]*workspace.Workspace, error) {
	query := workspaceFindQuery + " WHERE w.organization_id = $1 AND w.deleted_at IS NULL ORDER BY w.created_at DESC"
	return r.queryWorkspaces(ctx, query, organizationID.String())
}

func (r *PgWorkspaceRepository) Delete(ctx context.Context, id identity.WorkspaceID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, workspaceSoftDeleteQuery, id.String())
	if err != nil {
		return errors.Wrap(err, "failed to delete workspace")
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

func (r *PgWorkspaceRepository) queryWorkspaces(ctx context.Context, query string, args ...any) ([]*workspace.Workspace, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query workspaces")
	}
	defer rows.Close()

	workspaces := make([]*workspace.Workspace, 0)
	for rows.Next() {
		var w models.Workspace
		if err := rows.Scan(
			&w.ID,
			&w.OrganizationID,
			&w.Name,
			&w.IsActive,
			&w.CreatedAt,
			&w.UpdatedAt,
			&w.DeletedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan workspace row")
		}
		entity, err := toDomainWorkspace(&w)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return workspaces, nil
}
