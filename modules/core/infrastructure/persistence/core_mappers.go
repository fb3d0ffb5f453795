package persistence

import (
	"database/sql"
	"time"

	"github.com/go-faster/errors"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/access"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/group"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/organization"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/permission"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/region"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/tenant"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/workspace"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/internet"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence/models"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}

func toDBUser(entity user.User) *models.User {
	var tenantID, organizationID sql.NullString
	if !entity.TenantID().IsNil() {
		tenantID = nullString(entity.TenantID().String())
	}
	if !entity.OrganizationID().IsNil() {
		organizationID = nullString(entity.OrganizationID().String())
	}
	return &models.User{
		ID:             entity.ID().String(),
		Email:          entity.Email().Value(),
		PasswordHash:   entity.PasswordHash(),
		Tier:           string(entity.Tier()),
		TenantID:       tenantID,
		OrganizationID: organizationID,
		IsActive:       entity.IsActive(),
		EmailVerified:  entity.IsEmailVerified(),
		MFAEnabled:     entity.MFAEnabled(),
		MFASecret:      nullString(entity.MFASecret()),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
		DeletedAt:      nullTime(entity.DeletedAt()),
	}
}

func toDomainUser(row *models.User) (user.User, error) {
	id, err := identity.ParseUserID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}
	email, err := internet.NewEmail(row.Email)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user email")
	}
	tier, ok := access.ParseTier(row.Tier)
	if !ok {
		return nil, errors.Errorf("unknown role tier: %s", row.Tier)
	}
	opts := []user.Option{
		user.WithPasswordHash(row.PasswordHash),
		user.WithTier(tier),
		user.WithActive(row.IsActive),
		user.WithEmailVerified(row.EmailVerified),
		user.WithMFA(row.MFAEnabled, row.MFASecret.String),
		user.WithCreatedAt(row.CreatedAt),
		user.WithUpdatedAt(row.UpdatedAt),
		user.WithDeletedAt(timePtr(row.DeletedAt)),
	}
	if row.TenantID.Valid {
		tenantID, err := identity.ParseTenantID(row.TenantID.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid user tenant ID")
		}
		opts = append(opts, user.WithTenantID(tenantID))
	}
	if row.OrganizationID.Valid {
		organizationID, err := identity.ParseOrganizationID(row.OrganizationID.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid user organization ID")
		}
		opts = append(opts, user.WithOrganizationID(organizationID))
	}
	return user.Rehydrate(id, email, opts...), nil
}

func toDBRole(entity role.Role) *models.Role {
	var tenantID sql.NullString
	if !entity.TenantID().IsNil() {
		tenantID = nullString(entity.TenantID().String())
	}
	return &models.Role{
		ID:          entity.ID().String(),
		TenantID:    tenantID,
		Name:        entity.Name(),
		Description: entity.Description(),
		IsSystem:    entity.IsSystem(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
		DeletedAt:   nullTime(entity.DeletedAt()),
	}
}

func toDomainRole(row *models.Role, permissionIDs []identity.PermissionID) (role.Role, error) {
	id, err := identity.ParseRoleID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid role ID")
	}
	opts := []role.Option{
		role.WithDescription(row.Description),
		role.WithPermissionIDs(permissionIDs),
		role.WithCreatedAt(row.CreatedAt),
		role.WithUpdatedAt(row.UpdatedAt),
		role.WithDeletedAt(timePtr(row.DeletedAt)),
	}
	if row.IsSystem {
		opts = append(opts, role.WithSystem())
	}
	if row.TenantID.Valid {
		tenantID, err := identity.ParseTenantID(row.TenantID.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid role tenant ID")
		}
		opts = append(opts, role.WithTenantID(tenantID))
	}
	return role.Rehydrate(id, row.Name, opts...), nil
}

func toDBPermission(entity *permission.Permission) *models.Permission {
	return &models.Permission{
		ID:          entity.ID.String(),
		Name:        entity.Name,
		Resource:    string(entity.Resource),
		Action:      string(entity.Action),
		Description: entity.Description,
	}
}

func toDomainPermission(row *models.Permission) (*permission.Permission, error) {
	id, err := identity.ParsePermissionID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid permission ID")
	}
	return &permission.Permission{
		ID:          id,
		Name:        row.Name,
		Resource:    permission.Resource(row.Resource),
		Action:      permission.Action(row.Action),
		Description: row.Description,
	}, nil
}

func toDBGroup(entity group.Group) *models.Group {
	return &models.Group{
		ID:             entity.ID().String(),
		OrganizationID: entity.OrganizationID().String(),
		Name:           entity.Name(),
		Description:    entity.Description(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
		DeletedAt:      nullTime(entity.DeletedAt()),
	}
}

func toDomainGroup(row *models.Group, memberIDs []identity.UserID) (group.Group, error) {
	id, err := identity.ParseGroupID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid group ID")
	}
	organizationID, err := identity.ParseOrganizationID(row.OrganizationID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid group organization ID")
	}
	return group.Rehydrate(id, row.Name, organizationID,
		group.WithDescription(row.Description),
		group.WithMemberIDs(memberIDs),
		group.WithCreatedAt(row.CreatedAt),
		group.WithUpdatedAt(row.UpdatedAt),
		group.WithDeletedAt(timePtr(row.DeletedAt)),
	), nil
}

func toDBTenant(entity *tenant.Tenant) *models.Tenant {
	return &models.Tenant{
		ID:          entity.ID().String(),
		WorkspaceID: entity.WorkspaceID().String(),
		Name:        entity.Name(),
		Domain:      nullString(entity.Domain()),
		IsActive:    entity.IsActive(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
		DeletedAt:   nullTime(entity.DeletedAt()),
	}
}

func toDomainTenant(row *models.Tenant) (*tenant.Tenant, error) {
	id, err := identity.ParseTenantID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tenant ID")
	}
	workspaceID, err := identity.ParseWorkspaceID(row.WorkspaceID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tenant workspace ID")
	}
	return tenant.Rehydrate(id, row.Name, workspaceID,
		tenant.WithDomain(row.Domain.String),
		tenant.WithIsActive(row.IsActive),
		tenant.WithCreatedAt(row.CreatedAt),
		tenant.WithUpdatedAt(row.UpdatedAt),
		tenant.WithDeletedAt(timePtr(row.DeletedAt)),
	), nil
}

func toDBOrganization(entity *organization.Organization) *models.Organization {
	return &models.Organization{
		ID:        entity.ID().String(),
		RegionID:  entity.RegionID().String(),
		Name:      entity.Name(),
		Slug:      nullString(entity.Slug()),
		IsActive:  entity.IsActive(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
		DeletedAt: nullTime(entity.DeletedAt()),
	}
}

func toDomainOrganization(row *models.Organization) (*organization.Organization, error) {
	id, err := identity.ParseOrganizationID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid organization ID")
	}
	regionID, err := identity.ParseRegionID(row.RegionID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid organization region ID")
	}
	return organization.Rehydrate(id, row.Name, regionID,
		organization.WithSlug(row.Slug.String),
		organization.WithIsActive(row.IsActive),
		organization.WithCreatedAt(row.CreatedAt),
		organization.WithUpdatedAt(row.UpdatedAt),
		organization.WithDeletedAt(timePtr(row.DeletedAt)),
	), nil
}

func toDBWorkspace(entity *workspace.Workspace) *models.Workspace {
	return &models.Workspace{
		ID:             entity.ID().String(),
		OrganizationID: entity.OrganizationID().String(),
		Name:           entity.Name(),
		IsActive:       entity.IsActive(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
		DeletedAt:      nullTime(entity.DeletedAt()),
	}
}

func toDomainWorkspace(row *models.Workspace) (*workspace.Workspace, error) {
	id, err := identity.ParseWorkspaceID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid workspace ID")
	}
	organizationID, err := identity.ParseOrganizationID(row.OrganizationID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid workspace organization ID")
	}
	return workspace.Rehydrate(id, row.Name, organizationID,
		workspace.WithIsActive(row.IsActive),
		workspace.WithCreatedAt(row.CreatedAt),
		workspace.WithUpdatedAt(row.UpdatedAt),
		workspace.WithDeletedAt(timePtr(row.DeletedAt)),
	), nil
}

func toDBRegion(entity *region.Region) *models.Region {
	return &models.Region{
		ID:        entity.ID().String(),
		Name:      entity.Name(),
		Code:      nullString(entity.Code()),
		IsActive:  entity.IsActive(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
		DeletedAt: nullTime(entity.DeletedAt()),
	}
}

func toDomainRegion(row *models.Region) (*region.Region, error) {
	id, err := identity.ParseRegionID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid region ID")
	}
	return region.Rehydrate(id, row.Name,
		region.WithCode(row.Code.String),
		region.WithIsActive(row.IsActive),
		region.WithCreatedAt(row.CreatedAt),
		region.WithUpdatedAt(row.UpdatedAt),
		region.WithDeletedAt(timePtr(row.DeletedAt)),
	), nil
}
