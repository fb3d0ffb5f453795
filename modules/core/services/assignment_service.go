package services

import (
	"context"
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/permission"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/cache"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/eventbus"
)

// AssignmentService owns the user↔role and user↔permission junctions. Every
// mutation follows the same pipeline: resolve both sides, guard idempotency,
// mutate the junction inside a transaction, evict the user's cached
// permission set, then publish the domain event. Eviction happens before
// success is reported; a failed eviction surfaces but never rolls back the
// committed mutation.
type AssignmentService struct {
	users      user.Repository
	roles      role.Repository
	perms      permission.Repository
	roleGrants user.RoleGrants
	permGrants user.PermissionGrants
	cache      cache.Cache
	publisher  eventbus.EventBus
}

func NewAssignmentService(
	users user.Repository,
	roles role.Repository,
	perms permission.Repository,
	roleGrants user.RoleGrants,
	permGrants user.PermissionGrants,
	c cache.Cache,
	publisher eventbus.EventBus,
) *AssignmentService {
	return &AssignmentService{
		users:      users,
		roles:      roles,
		perms:      perms,
		roleGrants: roleGrants,
		permGrants: permGrants,
		cache:      c,
		publisher:  publisher,
	}
}

func (s *AssignmentService) AssignRoleToUser(ctx context.Context, userID identity.UserID, roleID identity.RoleID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		return err
	}
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.roleGrants.Assign(txCtx, userID, roleID)
	})
	if err != nil {
		return err
	}
	if err := s.evictUser(ctx, userID); err != nil {
		return err
	}
	s.publisher.Publish(user.RoleAssigned{UserID: userID, RoleID: roleID, At: time.Now()})
	return nil
}

func (s *AssignmentService) RevokeRoleFromUser(ctx context.Context, userID identity.UserID, roleID identity.RoleID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.roles.GetByID(ctx, roleID); err != nil {
		return err
	}
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.roleGrants.Revoke(txCtx, userID, roleID)
	})
	if err != nil {
		return err
	}
	if err := s.evictUser(ctx, userID); err != nil {
		return err
	}
	s.publisher.Publish(user.RoleRevoked{UserID: userID, RoleID: roleID, At: time.Now()})
	return nil
}

func (s *AssignmentService) AssignPermissionToUser(ctx context.Context, userID identity.UserID, permissionID identity.PermissionID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.perms.GetByID(ctx, permissionID); err != nil {
		return err
	}
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.permGrants.Assign(txCtx, userID, permissionID)
	})
	if err != nil {
		return err
	}
	if err := s.evictUser(ctx, userID); err != nil {
		return err
	}
	s.publisher.Publish(user.PermissionDirectlyAssigned{UserID: userID, PermissionID: permissionID, At: time.Now()})
	return nil
}

func (s *AssignmentService) RevokePermissionFromUser(ctx context.Context, userID identity.UserID, permissionID identity.PermissionID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.perms.GetByID(ctx, permissionID); err != nil {
		return err
	}
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.permGrants.Revoke(txCtx, userID, permissionID)
	})
	if err != nil {
		return err
	}
	if err := s.evictUser(ctx, userID); err != nil {
		return err
	}
	s.publisher.Publish(user.PermissionDirectlyRevoked{UserID: userID, PermissionID: permissionID, At: time.Now()})
	return nil
}

func (s *AssignmentService) RolesOfUser(ctx context.Context, userID identity.UserID) ([]identity.RoleID, error) {
	return s.roleGrants.ListByUser(ctx, userID)
}

func (s *AssignmentService) UsersWithRole(ctx context.Context, roleID identity.RoleID) ([]identity.UserID, error) {
	return s.roleGrants.ListByRole(ctx, roleID)
}

func (s *AssignmentService) DirectPermissionsOfUser(ctx context.Context, userID identity.UserID) ([]identity.PermissionID, error) {
	return s.permGrants.ListByUser(ctx, userID)
}

func (s *AssignmentService) evictUser(ctx context.Context, userID identity.UserID) error {
	key := permissionCacheKey(userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("key", key).Error("failed to evict permission cache entry")
		return invalidationError(err)
	}
	return nil
}
