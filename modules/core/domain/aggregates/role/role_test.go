package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

func TestNew_RecordsCreatedEvent(t *testing.T) {
	entity, err := role.New("Auditor", role.WithDescription("read only auditing"))
	require.NoError(t, err)

	events := entity.PullEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(role.Created)
	require.True(t, ok, "expected role.Created, got %T", events[0])
	assert.Equal(t, entity.ID(), created.RoleID)
	assert.Equal(t, "Auditor", created.Name)

	assert.Empty(t, entity.PullEvents(), "drain must clear the buffer")
}

func TestNew_EmptyNameRejected(t *testing.T) {
	_, err := role.New("   ")
	require.ErrorIs(t, err, role.ErrEmptyName)
	assert.True(t, serrors.IsValidation(err))
}

func TestRehydrate_RecordsNoEvents(t *testing.T) {
	entity := role.Rehydrate(identity.NewRoleID(), "Auditor",
		role.WithPermissionIDs([]identity.PermissionID{identity.NewPermissionID()}),
	)
	assert.Empty(t, entity.PullEvents())
}

func TestAddPermission_Duplicate(t *testing.T) {
	entity, err := role.New("Auditor")
	require.NoError(t, err)

	permID := identity.NewPermissionID()
	require.NoError(t, entity.AddPermission(permID))

	err = entity.AddPermission(permID)
	require.ErrorIs(t, err, role.ErrPermissionPresent)
	assert.True(t, serrors.IsConflict(err))
	assert.Len(t, entity.PermissionIDs(), 1)
}

func TestRemovePermission_Absent(t *testing.T) {
	entity, err := role.New("Auditor")
	require.NoError(t, err)

	err = entity.RemovePermission(identity.NewPermissionID())
	require.ErrorIs(t, err, role.ErrPermissionAbsent)
	assert.True(t, serrors.IsNotFound(err))
}

func TestSystemRole_Guards(t *testing.T) {
	entity := role.Rehydrate(identity.NewRoleID(), "Administrator", role.WithSystem())

	assert.ErrorIs(t, entity.Update("Renamed", ""), role.ErrSystemRole)
	assert.ErrorIs(t, entity.MarkDeleted(), role.ErrSystemRole)
	assert.True(t, serrors.IsDomain(entity.Update("Renamed", "")))
}

func TestEventOrdering_CreateAssignRemove(t *testing.T) {
	entity, err := role.New("Auditor")
	require.NoError(t, err)

	permID := identity.NewPermissionID()
	require.NoError(t, entity.AddPermission(permID))
	require.NoError(t, entity.RemovePermission(permID))

	events := entity.PullEvents()
	require.Len(t, events, 3)
	_, ok := events[0].(role.Created)
	require.True(t, ok, "first event should be Created, got %T", events[0])
	assigned, ok := events[1].(role.PermissionAssigned)
	require.True(t, ok, "second event should be PermissionAssigned, got %T", events[1])
	removed, ok := events[2].(role.PermissionRemoved)
	require.True(t, ok, "third event should be PermissionRemoved, got %T", events[2])
	assert.Equal(t, permID, assigned.PermissionID)
	assert.Equal(t, permID, removed.PermissionID)
}

func TestPermissionOrder_Preserved(t *testing.T) {
	first := identity.NewPermissionID()
	second := identity.NewPermissionID()
	third := identity.NewPermissionID()

	entity, err := role.New("Auditor")
	require.NoError(t, err)
	require.NoError(t, entity.AddPermission(first))
	require.NoError(t, entity.AddPermission(second))
	require.NoError(t, entity.AddPermission(third))
	require.NoError(t, entity.RemovePermission(second))

	assert.Equal(t, []identity.PermissionID{first, third}, entity.PermissionIDs())
}

func TestMarkDeleted(t *testing.T) {
	entity, err := role.New("Auditor")
	require.NoError(t, err)

	require.NoError(t, entity.MarkDeleted())
	assert.True(t, entity.IsDeleted())
	assert.NotNil(t, entity.DeletedAt())

	events := entity.PullEvents()
	require.Len(t, events, 2)
	_, ok := events[1].(role.Deleted)
	assert.True(t, ok, "expected role.Deleted, got %T", events[1])
}
