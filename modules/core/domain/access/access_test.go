package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/access"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
)

func TestDecide_TierCapabilities(t *testing.T) {
	orgID := identity.NewOrganizationID()
	sameOrg := access.Scope{PrincipalOrganization: orgID, ResourceOrganization: orgID}

	cases := []struct {
		tier   access.Tier
		action string
		want   bool
	}{
		{access.TierViewer, "user:read", true},
		{access.TierViewer, "user:create", false},
		{access.TierViewer, "user:update", false},
		{access.TierViewer, "user:delete", false},

		{access.TierDeveloper, "workspace:read", true},
		{access.TierDeveloper, "workspace:create", true},
		{access.TierDeveloper, "workspace:update", true},
		{access.TierDeveloper, "workspace:delete", false},

		{access.TierAdministrator, "role:read", true},
		{access.TierAdministrator, "role:create", true},
		{access.TierAdministrator, "role:update", true},
		{access.TierAdministrator, "role:delete", true},
	}
	for _, tc := range cases {
		t.Run(string(tc.tier)+"/"+tc.action, func(t *testing.T) {
			assert.Equal(t, tc.want, access.Decide(tc.tier, tc.action, sameOrg))
		})
	}
}

func TestDecide_SuperAdministratorBypassesScope(t *testing.T) {
	scope := access.Scope{
		PrincipalOrganization: identity.NewOrganizationID(),
		ResourceOrganization:  identity.NewOrganizationID(),
	}
	assert.True(t, access.Decide(access.TierSuperAdministrator, "tenant:delete", scope))
	assert.True(t, access.Decide(access.TierSuperAdministrator, "anything:at-all", scope))
}

func TestDecide_CrossOrganizationDenied(t *testing.T) {
	scope := access.Scope{
		PrincipalOrganization: identity.NewOrganizationID(),
		ResourceOrganization:  identity.NewOrganizationID(),
	}
	// Scope precedes capability: even a read an administrator could
	// otherwise perform is denied across organizations.
	assert.False(t, access.Decide(access.TierAdministrator, "user:read", scope))
	assert.False(t, access.Decide(access.TierViewer, "user:read", scope))
}

func TestDecide_UnscopedResource(t *testing.T) {
	scope := access.Scope{PrincipalOrganization: identity.NewOrganizationID()}
	assert.True(t, access.Decide(access.TierViewer, "region:read", scope))
	assert.False(t, access.Decide(access.TierViewer, "region:delete", scope))
}

func TestDecide_UnknownVerbDenied(t *testing.T) {
	orgID := identity.NewOrganizationID()
	scope := access.Scope{PrincipalOrganization: orgID, ResourceOrganization: orgID}
	assert.False(t, access.Decide(access.TierAdministrator, "user:impersonate", scope))
	assert.False(t, access.Decide(access.TierDeveloper, "user:", scope))
}

func TestDecide_UnknownTierDenied(t *testing.T) {
	orgID := identity.NewOrganizationID()
	scope := access.Scope{PrincipalOrganization: orgID, ResourceOrganization: orgID}
	assert.False(t, access.Decide(access.Tier("Auditor"), "user:read", scope))
}

func TestVerb(t *testing.T) {
	assert.Equal(t, "delete", access.Verb("user:delete"))
	assert.Equal(t, "read", access.Verb("billing:invoice:read"))
	assert.Equal(t, "read", access.Verb("read"))
	assert.Equal(t, "", access.Verb("user:"))
}

func TestParseTier(t *testing.T) {
	tier, ok := access.ParseTier("Developer")
	assert.True(t, ok)
	assert.Equal(t, access.TierDeveloper, tier)

	_, ok = access.ParseTier("developer")
	assert.False(t, ok, "tier names are case sensitive")

	_, ok = access.ParseTier("")
	assert.False(t, ok)
}

func TestTierOrdering(t *testing.T) {
	assert.True(t, access.TierSuperAdministrator.AtLeast(access.TierAdministrator))
	assert.True(t, access.TierAdministrator.AtLeast(access.TierAdministrator))
	assert.False(t, access.TierViewer.AtLeast(access.TierDeveloper))
	assert.Equal(t, 0, access.Tier("Auditor").Level())
}
