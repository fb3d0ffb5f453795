package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/services"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/cache"
)

type roleFixture struct {
	repo    *fakeRoleRepository
	cache   cache.Cache
	bus     *recordingBus
	service *services.RoleService
}

func newRoleFixture(t *testing.T) *roleFixture {
	t.Helper()
	f := &roleFixture{
		repo:  newFakeRoleRepository(),
		cache: cache.NewMemoryCache(),
		bus:   &recordingBus{},
	}
	f.service = services.NewRoleService(f.repo, f.cache, f.bus)
	return f
}

func TestRoleService_Create(t *testing.T) {
	f := newRoleFixture(t)
	ctx := testContext()

	entity, err := role.New("auditor", role.WithDescription("read-only reviewer"))
	require.NoError(t, err)

	created, err := f.service.Create(ctx, entity)
	require.NoError(t, err)
	assert.Equal(t, "auditor", created.Name())

	events := f.bus.published()
	require.Len(t, events, 1)
	assert.IsType(t, role.Created{}, events[0])

	_, err = f.service.GetByName(ctx, "auditor", identity.TenantID{})
	require.NoError(t, err)
}

func TestRoleService_Create_DuplicateName(t *testing.T) {
	f := newRoleFixture(t)
	ctx := testContext()

	first, err := role.New("auditor")
	require.NoError(t, err)
	_, err = f.service.Create(ctx, first)
	require.NoError(t, err)

	second, err := role.New("auditor")
	require.NoError(t, err)
	_, err = f.service.Create(ctx, second)
	require.ErrorIs(t, err, persistence.ErrRoleDuplicate)
}

func TestRoleService_Update_EvictsAllCachedPermissionSets(t *testing.T) {
	f := newRoleFixture(t)
	ctx := testContext()

	entity, err := role.New("auditor")
	require.NoError(t, err)
	created, err := f.service.Create(ctx, entity)
	require.NoError(t, err)

	// Two users hold cached sets; a role mutation can affect any of them.
	require.NoError(t, f.cache.Set(ctx, "permissions:"+identity.NewUserID().String(), []byte("[]"), 0))
	require.NoError(t, f.cache.Set(ctx, "permissions:"+identity.NewUserID().String(), []byte("[]"), 0))

	require.NoError(t, created.AddPermission(identity.NewPermissionID()))
	_, err = f.service.Update(ctx, created)
	require.NoError(t, err)

	removed, err := f.cache.DeleteByPrefix(ctx, "permissions:")
	require.NoError(t, err)
	assert.Zero(t, removed, "update should have already evicted every entry")
}

func TestRoleService_Update_EvictionFailureSurfaces(t *testing.T) {
	f := newRoleFixture(t)
	ctx := testContext()

	entity, err := role.New("auditor")
	require.NoError(t, err)
	created, err := f.service.Create(ctx, entity)
	require.NoError(t, err)
	f.bus = &recordingBus{}

	evictionErr := errors.New("redis: connection refused")
	broken := services.NewRoleService(f.repo, &brokenCache{Cache: f.cache, evictionErr: evictionErr}, f.bus)

	require.NoError(t, created.Update("auditor", "updated description"))
	updated, err := broken.Update(ctx, created)
	require.ErrorIs(t, err, cache.ErrInvalidation)

	// The write is committed; only the eviction failed.
	require.NotNil(t, updated)
	stored, getErr := f.repo.GetByID(ctx, created.ID())
	require.NoError(t, getErr)
	assert.Equal(t, "updated description", stored.Description())
	assert.Empty(t, f.bus.published(), "events follow successful eviction")
}

func TestRoleService_Delete(t *testing.T) {
	f := newRoleFixture(t)
	ctx := testContext()

	entity, err := role.New("ephemeral")
	require.NoError(t, err)
	created, err := f.service.Create(ctx, entity)
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, created.ID()))

	events := f.bus.published()
	require.Len(t, events, 2)
	assert.IsType(t, role.Deleted{}, events[1])
}

func TestRoleService_Delete_SystemRoleRefused(t *testing.T) {
	f := newRoleFixture(t)
	ctx := testContext()

	system := role.Rehydrate(identity.NewRoleID(), "Administrator", role.WithSystem())
	_, err := f.repo.Create(ctx, system)
	require.NoError(t, err)

	err = f.service.Delete(ctx, system.ID())
	require.ErrorIs(t, err, role.ErrSystemRole)
}

func TestRoleService_Delete_Unknown(t *testing.T) {
	f := newRoleFixture(t)
	err := f.service.Delete(testContext(), identity.NewRoleID())
	require.ErrorIs(t, err, persistence.ErrRoleNotFound)
}
