package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/access"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/internet"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

func mustEmail(t *testing.T, raw string) internet.Email {
	t.Helper()
	email, err := internet.NewEmail(raw)
	require.NoError(t, err)
	return email
}

func TestNew_RecordsCreatedEvent(t *testing.T) {
	orgID := identity.NewOrganizationID()
	u := user.New(
		mustEmail(t, "dev@example.com"),
		user.WithTier(access.TierDeveloper),
		user.WithOrganizationID(orgID),
	)

	events := u.PullEvents()
	require.Len(t, events, 1)

	created, ok := events[0].(user.Created)
	require.True(t, ok, "expected user.Created, got %T", events[0])
	assert.Equal(t, u.ID(), created.UserID)
	assert.Equal(t, "dev@example.com", created.Email)
	assert.Equal(t, access.TierDeveloper, created.Tier)
	assert.Equal(t, orgID, created.OrganizationID)

	assert.Empty(t, u.PullEvents(), "pull must drain the buffer")
}

func TestNew_DefaultsToViewer(t *testing.T) {
	u := user.New(mustEmail(t, "nobody@example.com"))
	assert.Equal(t, access.TierViewer, u.Tier())
	assert.False(t, u.IsActive())
	assert.False(t, u.IsEmailVerified())
}

func TestRehydrate_RecordsNoEvents(t *testing.T) {
	u := user.Rehydrate(
		identity.NewUserID(),
		mustEmail(t, "stored@example.com"),
		user.WithTier(access.TierAdministrator),
		user.WithActive(true),
	)
	assert.Empty(t, u.PullEvents())
	assert.Equal(t, access.TierAdministrator, u.Tier())
	assert.True(t, u.IsActive())
}

func TestSetPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		u := user.New(mustEmail(t, "pw@example.com"))
		require.NoError(t, u.SetPassword("correct horse battery"))

		assert.NotEmpty(t, u.PasswordHash())
		assert.NotEqual(t, "correct horse battery", u.PasswordHash())
		assert.True(t, u.CheckPassword("correct horse battery"))
		assert.False(t, u.CheckPassword("wrong password"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		u := user.New(mustEmail(t, "pw@example.com"))
		err := u.SetPassword("seven77")
		require.ErrorIs(t, err, user.ErrWeakPassword)
		assert.True(t, serrors.IsValidation(err))
		assert.Empty(t, u.PasswordHash())
	})
}

func TestLifecycleEvents(t *testing.T) {
	u := user.New(mustEmail(t, "life@example.com"))
	u.PullEvents()

	require.NoError(t, u.Activate())
	require.NoError(t, u.VerifyEmail())
	require.NoError(t, u.Deactivate())

	events := u.PullEvents()
	require.Len(t, events, 3)
	assert.IsType(t, user.Activated{}, events[0])
	assert.IsType(t, user.EmailVerified{}, events[1])
	assert.IsType(t, user.Deactivated{}, events[2])
	assert.False(t, u.IsActive())
	assert.True(t, u.IsEmailVerified())
}

func TestMFA(t *testing.T) {
	u := user.New(mustEmail(t, "mfa@example.com"))

	err := u.DisableMFA()
	require.ErrorIs(t, err, user.ErrMFADisabled)
	assert.True(t, serrors.IsNotFound(err))

	require.NoError(t, u.EnableMFA("totp-secret"))
	assert.True(t, u.MFAEnabled())
	assert.Equal(t, "totp-secret", u.MFASecret())

	err = u.EnableMFA("another-secret")
	require.ErrorIs(t, err, user.ErrMFAEnabled)
	assert.True(t, serrors.IsConflict(err))

	require.NoError(t, u.DisableMFA())
	assert.False(t, u.MFAEnabled())
	assert.Empty(t, u.MFASecret())
}

func TestMarkDeleted_BlocksFurtherMutation(t *testing.T) {
	u := user.New(mustEmail(t, "gone@example.com"))
	u.PullEvents()

	require.NoError(t, u.MarkDeleted())
	require.True(t, u.IsDeleted())
	require.NotNil(t, u.DeletedAt())

	events := u.PullEvents()
	require.Len(t, events, 1)
	assert.IsType(t, user.Deleted{}, events[0])

	for name, mutate := range map[string]func() error{
		"SetPassword":          func() error { return u.SetPassword("long enough password") },
		"Activate":             func() error { return u.Activate() },
		"Deactivate":           func() error { return u.Deactivate() },
		"VerifyEmail":          func() error { return u.VerifyEmail() },
		"EnableMFA":            func() error { return u.EnableMFA("secret") },
		"AssignToTenant":       func() error { return u.AssignToTenant(identity.NewTenantID()) },
		"AssignToOrganization": func() error { return u.AssignToOrganization(identity.NewOrganizationID()) },
		"MarkDeleted":          func() error { return u.MarkDeleted() },
	} {
		t.Run(name, func(t *testing.T) {
			err := mutate()
			require.ErrorIs(t, err, user.ErrDeleted)
			assert.True(t, serrors.IsDomain(err))
		})
	}

	assert.Empty(t, u.PullEvents(), "rejected mutations must not record events")
}

func TestAssignToTenant(t *testing.T) {
	u := user.New(mustEmail(t, "tenant@example.com"))
	u.PullEvents()

	tenantID := identity.NewTenantID()
	require.NoError(t, u.AssignToTenant(tenantID))
	assert.Equal(t, tenantID, u.TenantID())

	events := u.PullEvents()
	require.Len(t, events, 1)
	assigned, ok := events[0].(user.TenantAssigned)
	require.True(t, ok)
	assert.Equal(t, tenantID, assigned.TenantID)
}
