package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/access"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/permission"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/internet"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/services"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/cache"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

type assignmentFixture struct {
	users      *fakeUserRepository
	roles      *fakeRoleRepository
	perms      *fakePermissionRepository
	roleGrants *fakeRoleGrants
	permGrants *fakePermissionGrants
	cache      cache.Cache
	bus        *recordingBus
	service    *services.AssignmentService
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	f := &assignmentFixture{
		users:      newFakeUserRepository(),
		roles:      newFakeRoleRepository(),
		perms:      newFakePermissionRepository(),
		roleGrants: newFakeRoleGrants(),
		permGrants: newFakePermissionGrants(),
		cache:      cache.NewMemoryCache(),
		bus:        &recordingBus{},
	}
	f.service = services.NewAssignmentService(
		f.users, f.roles, f.perms, f.roleGrants, f.permGrants, f.cache, f.bus,
	)
	return f
}

func (f *assignmentFixture) seedUser(t *testing.T) user.User {
	t.Helper()
	email, err := internet.NewEmail("principal@example.com")
	require.NoError(t, err)
	entity := user.New(email, user.WithTier(access.TierDeveloper), user.WithActive(true))
	entity.PullEvents()
	_, err = f.users.Create(testContext(), entity)
	require.NoError(t, err)
	return entity
}

func (f *assignmentFixture) seedRole(t *testing.T, name string) role.Role {
	t.Helper()
	entity, err := role.New(name)
	require.NoError(t, err)
	entity.PullEvents()
	_, err = f.roles.Create(testContext(), entity)
	require.NoError(t, err)
	return entity
}

func (f *assignmentFixture) seedPermission(t *testing.T, name string) *permission.Permission {
	t.Helper()
	p := &permission.Permission{
		ID:       identity.NewPermissionID(),
		Name:     name,
		Resource: permission.Resource("user"),
		Action:   permission.ActionRead,
	}
	require.NoError(t, f.perms.Save(testContext(), p))
	return p
}

func TestAssignRoleToUser(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := testContext()
	principal := f.seedUser(t)
	auditor := f.seedRole(t, "auditor")

	require.NoError(t, f.service.AssignRoleToUser(ctx, principal.ID(), auditor.ID()))

	roleIDs, err := f.service.RolesOfUser(ctx, principal.ID())
	require.NoError(t, err)
	assert.Equal(t, []identity.RoleID{auditor.ID()}, roleIDs)

	events := f.bus.published()
	require.Len(t, events, 1)
	assigned, ok := events[0].(user.RoleAssigned)
	require.True(t, ok, "expected user.RoleAssigned, got %T", events[0])
	assert.Equal(t, principal.ID(), assigned.UserID)
	assert.Equal(t, auditor.ID(), assigned.RoleID)
}

func TestAssignRoleToUser_DoubleAssignConflicts(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := testContext()
	principal := f.seedUser(t)
	auditor := f.seedRole(t, "auditor")

	require.NoError(t, f.service.AssignRoleToUser(ctx, principal.ID(), auditor.ID()))

	err := f.service.AssignRoleToUser(ctx, principal.ID(), auditor.ID())
	require.ErrorIs(t, err, persistence.ErrRoleAlreadyAssigned)
	assert.True(t, serrors.IsConflict(err))
	assert.Len(t, f.bus.published(), 1, "the rejected assignment must not publish")
}

func TestAssignRoleToUser_UnknownParties(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := testContext()
	principal := f.seedUser(t)
	auditor := f.seedRole(t, "auditor")

	err := f.service.AssignRoleToUser(ctx, identity.NewUserID(), auditor.ID())
	require.ErrorIs(t, err, persistence.ErrUserNotFound)

	err = f.service.AssignRoleToUser(ctx, principal.ID(), identity.NewRoleID())
	require.ErrorIs(t, err, persistence.ErrRoleNotFound)

	assert.Empty(t, f.bus.published())
}

func TestRevokeRoleFromUser(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := testContext()
	principal := f.seedUser(t)
	auditor := f.seedRole(t, "auditor")

	require.NoError(t, f.service.AssignRoleToUser(ctx, principal.ID(), auditor.ID()))
	require.NoError(t, f.service.RevokeRoleFromUser(ctx, principal.ID(), auditor.ID()))

	roleIDs, err := f.service.RolesOfUser(ctx, principal.ID())
	require.NoError(t, err)
	assert.Empty(t, roleIDs)

	events := f.bus.published()
	require.Len(t, events, 2)
	assert.IsType(t, user.RoleRevoked{}, events[1])
}

func TestRevokeRoleFromUser_NotAssigned(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := testContext()
	principal := f.seedUser(t)
	auditor := f.seedRole(t, "auditor")

	err := f.service.RevokeRoleFromUser(ctx, principal.ID(), auditor.ID())
	require.ErrorIs(t, err, persistence.ErrRoleNotAssigned)
	assert.True(t, serrors.IsNotFound(err))
}

func TestAssignRoleToUser_EvictsCachedPermissions(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := testContext()
	principal := f.seedUser(t)
	auditor := f.seedRole(t, "auditor")

	key := "permissions:" + principal.ID().String()
	require.NoError(t, f.cache.Set(ctx, key, []byte("[]"), 0))

	require.NoError(t, f.service.AssignRoleToUser(ctx, principal.ID(), auditor.ID()))

	_, err := f.cache.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrCacheMiss, "the stale permission set must be gone")
}

func TestAssignRoleToUser_EvictionFailureSurfaces(t *testing.T) {
	f := newAssignmentFixture(t)
	evictionErr := errors.New("redis: connection refused")
	f.service = services.NewAssignmentService(
		f.users, f.roles, f.perms, f.roleGrants, f.permGrants,
		&brokenCache{Cache: f.cache, evictionErr: evictionErr},
		f.bus,
	)
	ctx := testContext()
	principal := f.seedUser(t)
	auditor := f.seedRole(t, "auditor")

	err := f.service.AssignRoleToUser(ctx, principal.ID(), auditor.ID())
	require.ErrorIs(t, err, cache.ErrInvalidation)

	// The junction mutation is committed even though eviction failed.
	assigned, existsErr := f.roleGrants.Exists(ctx, principal.ID(), auditor.ID())
	require.NoError(t, existsErr)
	assert.True(t, assigned)
	assert.Empty(t, f.bus.published(), "the event follows successful eviction")
}

func TestDirectPermissionGrants(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := testContext()
	principal := f.seedUser(t)
	readUsers := f.seedPermission(t, "user:read")

	require.NoError(t, f.service.AssignPermissionToUser(ctx, principal.ID(), readUsers.ID))

	err := f.service.AssignPermissionToUser(ctx, principal.ID(), readUsers.ID)
	require.ErrorIs(t, err, persistence.ErrPermissionAlreadyGranted)

	direct, err := f.service.DirectPermissionsOfUser(ctx, principal.ID())
	require.NoError(t, err)
	assert.Equal(t, []identity.PermissionID{readUsers.ID}, direct)

	require.NoError(t, f.service.RevokePermissionFromUser(ctx, principal.ID(), readUsers.ID))

	err = f.service.RevokePermissionFromUser(ctx, principal.ID(), readUsers.ID)
	require.ErrorIs(t, err, persistence.ErrPermissionNotGranted)

	events := f.bus.published()
	require.Len(t, events, 2)
	assert.IsType(t, user.PermissionDirectlyAssigned{}, events[0])
	assert.IsType(t, user.PermissionDirectlyRevoked{}, events[1])
}

func TestUsersWithRole(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := testContext()
	principal := f.seedUser(t)
	auditor := f.seedRole(t, "auditor")

	require.NoError(t, f.service.AssignRoleToUser(ctx, principal.ID(), auditor.ID()))

	userIDs, err := f.service.UsersWithRole(ctx, auditor.ID())
	require.NoError(t, err)
	assert.Equal(t, []identity.UserID{principal.ID()}, userIDs)
}
