package group_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/group"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

func TestNew_RecordsCreatedEvent(t *testing.T) {
	orgID := identity.NewOrganizationID()
	g, err := group.New("platform-engineers", orgID)
	require.NoError(t, err)

	events := g.PullEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(group.Created)
	require.True(t, ok, "expected group.Created, got %T", events[0])
	assert.Equal(t, "platform-engineers", created.Name)
	assert.Equal(t, orgID, created.OrganizationID)
}

func TestNew_EmptyNameRejected(t *testing.T) {
	_, err := group.New("  ", identity.NewOrganizationID())
	require.ErrorIs(t, err, group.ErrEmptyName)
	assert.True(t, serrors.IsValidation(err))
}

func TestMembership(t *testing.T) {
	g, err := group.New("oncall", identity.NewOrganizationID())
	require.NoError(t, err)
	g.PullEvents()

	userID := identity.NewUserID()

	t.Run("add", func(t *testing.T) {
		require.NoError(t, g.AddMember(userID))
		assert.True(t, g.HasMember(userID))

		events := g.PullEvents()
		require.Len(t, events, 1)
		assert.IsType(t, group.MemberAdded{}, events[0])
	})

	t.Run("duplicate add conflicts", func(t *testing.T) {
		err := g.AddMember(userID)
		require.ErrorIs(t, err, group.ErrMemberPresent)
		assert.True(t, serrors.IsConflict(err))
		assert.Empty(t, g.PullEvents())
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, g.RemoveMember(userID))
		assert.False(t, g.HasMember(userID))

		events := g.PullEvents()
		require.Len(t, events, 1)
		assert.IsType(t, group.MemberRemoved{}, events[0])
	})

	t.Run("remove absent member", func(t *testing.T) {
		err := g.RemoveMember(userID)
		require.ErrorIs(t, err, group.ErrMemberAbsent)
		assert.True(t, serrors.IsNotFound(err))
	})
}

func TestMemberIDs_ReturnsCopy(t *testing.T) {
	g, err := group.New("readers", identity.NewOrganizationID())
	require.NoError(t, err)
	require.NoError(t, g.AddMember(identity.NewUserID()))

	ids := g.MemberIDs()
	ids[0] = identity.NewUserID()
	assert.NotEqual(t, ids[0], g.MemberIDs()[0], "mutating the returned slice must not affect the group")
}

func TestMarkDeleted(t *testing.T) {
	g, err := group.New("ephemeral", identity.NewOrganizationID())
	require.NoError(t, err)
	g.PullEvents()

	require.NoError(t, g.MarkDeleted())
	assert.True(t, g.IsDeleted())

	events := g.PullEvents()
	require.Len(t, events, 1)
	assert.IsType(t, group.Deleted{}, events[0])
}
