package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/group"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence/models"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/repo"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrGroupNotFound  = serrors.NewNotFound("GROUP_NOT_FOUND", "group not found")
	ErrGroupDuplicate = serrors.NewConflict("GROUP_DUPLICATE", "group already exists")
)

const (
	groupFindQuery = `
		SELECT
			g.id,
			g.organization_id,
			g.name,
			g.description,
			g.created_at,
			g.updated_at,
			g.deleted_at
		FROM groups g`

	groupMembersQuery = `SELECT user_id FROM group_users WHERE group_id = $1`

	groupDeleteMembersQuery = `DELETE FROM group_users WHERE group_id = $1`

	groupSoftDeleteQuery = `UPDATE groups SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
)

type PgGroupRepository struct{}

func NewGroupRepository() group.Repository {
	return &PgGroupRepository{}
}

func (g *PgGroupRepository) Create(ctx context.Context, data group.Group) (group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbGroup := toDBGroup(data)
	fields := []string{
		"id",
		"organization_id",
		"name",
		"description",
		"created_at",
		"updated_at",
	}
	values := []interface{}{
		dbGroup.ID,
		dbGroup.OrganizationID,
		dbGroup.Name,
		dbGroup.Description,
		dbGroup.CreatedAt,
		dbGroup.UpdatedAt,
	}
	if _, err := tx.Exec(ctx, repo.Insert("groups", fields), values...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrGroupDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to create group")
	}
	if err := g.replaceMembers(ctx, data.ID(), data.MemberIDs()); err != nil {
		return nil, err
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgGroupRepository) Update(ctx context.Context, data group.Group) (group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	dbGroup := toDBGroup(data)
	fields := []string{
		"name",
		"description",
		"updated_at",
	}
	values := []interface{}{
		dbGroup.Name,
		dbGroup.Description,
		dbGroup.UpdatedAt,
		dbGroup.ID,
	}
	tag, err := tx.Exec(ctx, repo.Update("groups", fields, "id = $4"), values...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrGroupDuplicate.WithCause(err)
		}
		return nil, errors.Wrap(err, "failed to update group")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrGroupNotFound
	}
	if err := g.replaceMembers(ctx, data.ID(), data.MemberIDs()); err != nil {
		return nil, err
	}
	return g.GetByID(ctx, data.ID())
}

// GetByID returns the group regardless of its deleted_at marker so that
// audit flows can still inspect removed groups.
func (g *PgGroupRepository) GetByID(ctx context.Context, id identity.GroupID) (group.Group, error) {
	groups, err := g.queryGroups(ctx, groupFindQuery+" WHERE g.id = $1", id.String())
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrGroupNotFound
	}
	return groups[0], nil
}

func (g *PgGroupRepository) GetByOrganization(ctx context.Context, organizationID identity.OrganizationID) ([]group.Group, error) {
	query := groupFindQuery + " WHERE g.organization_id = $1 AND g.deleted_at IS NULL ORDER BY g.created_at DESC"
	return g.queryGroups(ctx, query, organizationID.String())
}

func (g *PgGroupRepository) Delete(ctx context.Context, id identity.GroupID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, groupSoftDeleteQuery, id.String())
	if err != nil {
		return errors.Wrap(err, "failed to delete group")
	}
	if tag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return nil
}

func (g *PgGroupRepository) replaceMembers(ctx context.Context, id identity.GroupID, members []identity.UserID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, groupDeleteMembersQuery, id.String()); err != nil {
		return errors.Wrap(err, "failed to clear group members")
	}
	if len(members) == 0 {
		return nil
	}
	rows := make([][]interface{}, 0, len(members))
	for _, userID := range members {
		rows = append(rows, []interface{}{id.String(), userID.String()})
	}
	query, args := repo.BatchInsertQueryN("INSERT INTO group_users (group_id, user_id) VALUES", rows)
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "failed to insert group members")
	}
	return nil
}

func (g *PgGroupRepository) queryGroups(ctx context.Context, query string, args ...any) ([]group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query groups")
	}
	defer rows.Close()

	dbGroups := make([]*models.Group, 0)
	for rows.Next() {
		var gr models.Group
		if err := rows.Scan(
			&gr.ID,
			&gr.OrganizationID,
			&gr.Name,
			&gr.Description,
			&gr.CreatedAt,
			&gr.UpdatedAt,
			&gr.DeletedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan group row")
		}
		dbGroups = append(dbGroups, &gr)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	groups := make([]group.Group, 0, len(dbGroups))
	for _, dbGroup := range dbGroups {
		memberRaws, err := queryIDs(ctx, groupMembersQuery, dbGroup.ID)
		if err != nil {
			return nil, err
		}
		memberIDs := make([]identity.UserID, 0, len(memberRaws))
		for _, raw := range memberRaws {
			memberID, err := identity.ParseUserID(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid member ID %s", raw)
			}
			memberIDs = append(memberIDs, memberID)
		}
		entity, err := toDomainGroup(dbGroup, memberIDs)
		if err != nil {
			return nil, err
		}
		groups = append(groups, entity)
	}
	return groups, nil
}
