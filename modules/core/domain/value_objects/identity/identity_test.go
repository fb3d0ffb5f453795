package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

func TestParseUserID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		raw := identity.NewUserID().String()
		id, err := identity.ParseUserID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
		assert.False(t, id.IsNil())
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		raw := identity.NewUserID().String()
		id, err := identity.ParseUserID("  " + raw + "\n")
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := identity.ParseUserID("")
		require.ErrorIs(t, err, identity.ErrInvalidID)
		assert.True(t, serrors.IsValidation(err))
	})

	t.Run("not a uuid", func(t *testing.T) {
		_, err := identity.ParseUserID("user-42")
		require.ErrorIs(t, err, identity.ErrInvalidID)
	})
}

func TestIDsAreDistinctTypes(t *testing.T) {
	// Generated identifiers are unique and a zero value is nil.
	assert.NotEqual(t, identity.NewRoleID().String(), identity.NewRoleID().String())
	assert.True(t, identity.RoleID{}.IsNil())
	assert.True(t, identity.TenantID{}.IsNil())
	assert.True(t, identity.OrganizationID{}.IsNil())
}

func TestMustParseRoleID(t *testing.T) {
	raw := identity.NewRoleID().String()
	assert.Equal(t, raw, identity.MustParseRoleID(raw).String())
	assert.Panics(t, func() { identity.MustParseRoleID("not-a-uuid") })
}
