// Package seed brings a fresh database to the baseline the platform expects:
// the registered permission constants and the four system tier roles. Every
// function is idempotent and safe to run at each startup.
package seed

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/access"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/permission"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/permissions"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

// Fixed IDs keep reseeding stable across environments.
var systemRoleIDs = map[access.Tier]identity.RoleID{
	access.TierSuperAdministrator: identity.MustParseRoleID("e65a0e5a-1f1a-4183-b708-8bdb0e2b9b01"),
	access.TierAdministrator:      identity.MustParseRoleID("e65a0e5a-1f1a-4183-b708-8bdb0e2b9b02"),
	access.TierDeveloper:          identity.MustParseRoleID("e65a0e5a-1f1a-4183-b708-8bdb0e2b9b03"),
	access.TierViewer:             identity.MustParseRoleID("e65a0e5a-1f1a-4183-b708-8bdb0e2b9b04"),
}

// tierPermissions lists which registered permissions each system role grants.
func tierPermissions(tier access.Tier) []*permission.Permission {
	switch tier {
	case access.TierSuperAdministrator, access.TierAdministrator:
		return permissions.Permissions
	case access.TierDeveloper:
		granted := make([]*permission.Permission, 0, len(permissions.Permissions))
		for _, p := range permissions.Permissions {
			if p.Action != permission.ActionDelete {
				granted = append(granted, p)
			}
		}
		return granted
	default:
		granted := make([]*permission.Permission, 0, len(permissions.Permissions))
		for _, p := range permissions.Permissions {
			if p.Action == permission.ActionRead {
				granted = append(granted, p)
			}
		}
		return granted
	}
}

// Permissions upserts every registered permission constant.
func Permissions(ctx context.Context, repo permission.Repository) error {
	for _, p := range permissions.Permissions {
		if err := repo.Save(ctx, p); err != nil {
			return errors.Wrapf(err, "failed to seed permission %s", p.Name)
		}
	}
	return nil
}

// SystemRoles ensures the four tier roles exist with their expected
// permission sets. Existing roles keep their IDs; their permission lists are
// rewritten to match the registry.
func SystemRoles(ctx context.Context, roles role.Repository) error {
	log := composables.UseLogger(ctx)
	for _, tier := range []access.Tier{
		access.TierSuperAdministrator,
		access.TierAdministrator,
		access.TierDeveloper,
		access.TierViewer,
	} {
		id := systemRoleIDs[tier]
		granted := tierPermissions(tier)
		permIDs := make([]identity.PermissionID, 0, len(granted))
		for _, p := range granted {
			permIDs = append(permIDs, p.ID)
		}
		entity := role.Rehydrate(id, string(tier),
			role.WithDescription("System "+string(tier)+" role"),
			role.WithPermissionIDs(permIDs),
			role.WithSystem(),
		)
		if _, err := roles.GetByID(ctx, id); err != nil {
			if !serrors.IsNotFound(err) {
				return errors.Wrapf(err, "failed to look up system role %s", tier)
			}
			if _, err := roles.Create(ctx, entity); err != nil {
				return errors.Wrapf(err, "failed to seed system role %s", tier)
			}
			log.WithField("role", string(tier)).Info("seeded system role")
			continue
		}
		if _, err := roles.Update(ctx, entity); err != nil {
			return errors.Wrapf(err, "failed to refresh system role %s", tier)
		}
	}
	return nil
}
