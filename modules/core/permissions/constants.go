package permissions

import (
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/permission"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
)

const (
	ResourceUser         permission.Resource = "user"
	ResourceRole         permission.Resource = "role"
	ResourceGroup        permission.Resource = "group"
	ResourceTenant       permission.Resource = "tenant"
	ResourceOrganization permission.Resource = "organization"
	ResourceWorkspace    permission.Resource = "workspace"
	ResourceRegion       permission.Resource = "region"
)

var (
	UserCreate = &permission.Permission{
		ID:       identity.MustParsePermissionID("8b6060b3-af5e-4ae0-b32d-b33695141066"),
		Name:     "user:create",
		Resource: ResourceUser,
		Action:   permission.ActionCreate,
	}
	UserRead = &permission.Permission{
		ID:       identity.MustParsePermissionID("13f011c8-1107-4957-ad19-70cfc167a775"),
		Name:     "user:read",
		Resource: ResourceUser,
		Action:   permission.ActionRead,
	}
	UserUpdate = &permission.Permission{
		ID:       identity.MustParsePermissionID("1c351fd3-9a2b-40b9-80b1-11ba81e645c8"),
		Name:     "user:update",
		Resource: ResourceUser,
		Action:   permission.ActionUpdate,
	}
	UserDelete = &permission.Permission{
		ID:       identity.MustParsePermissionID("547cded3-6754-4a05-aeb0-a38d12ed05ee"),
		Name:     "user:delete",
		Resource: ResourceUser,
		Action:   permission.ActionDelete,
	}
	RoleCreate = &permission.Permission{
		ID:       identity.MustParsePermissionID("60f195ed-d373-41c3-a39d-bb7484850840"),
		Name:     "role:create",
		Resource: ResourceRole,
		Action:   permission.ActionCreate,
	}
	RoleRead = &permission.Permission{
		ID:       identity.MustParsePermissionID("51d1025e-11fe-405e-9ab4-88078c28e110"),
		Name:     "role:read",
		Resource: ResourceRole,
		Action:   permission.ActionRead,
	}
	RoleUpdate = &permission.Permission{
		ID:       identity.MustParsePermissionID("ea18e9d1-6ac4-4b2a-861c-cc89d95d7a19"),
		Name:     "role:update",
		Resource: ResourceRole,
		Action:   permission.ActionUpdate,
	}
	RoleDelete = &permission.Permission{
		ID:       identity.MustParsePermissionID("5fcea09b-913e-4bbf-bb00-66586c29e930"),
		Name:     "role:delete",
		Resource: ResourceRole,
		Action:   permission.ActionDelete,
	}
	GroupCreate = &permission.Permission{
		ID:       identity.MustParsePermissionID("7e8f9a0b-1c2d-3e4f-5a6b-7c8d9e0f1a2b"),
		Name:     "group:create",
		Resource: ResourceGroup,
		Action:   permission.ActionCreate,
	}
	GroupRead = &permission.Permission{
		ID:       identity.MustParsePermissionID("8f9a0b1c-2d3e-4f5a-6b7c-8d9e0f1a2b3c"),
		Name:     "group:read",
		Resource: ResourceGroup,
		Action:   permission.ActionRead,
	}
	GroupUpdate = &permission.Permission{
		ID:       identity.MustParsePermissionID("9a0b1c2d-3e4f-5a6b-7c8d-9e0f1a2b3c4d"),
		Name:     "group:update",
		Resource: ResourceGroup,
		Action:   permission.ActionUpdate,
	}
	GroupDelete = &permission.Permission{
		ID:       identity.MustParsePermissionID("a0b1c2d3-4e5f-6a7b-8c9d-0e1f2a3b4c5d"),
		Name:     "group:delete",
		Resource: ResourceGroup,
		Action:   permission.ActionDelete,
	}
	TenantCreate = &permission.Permission{
		ID:       identity.MustParsePermissionID("a1b2c3d4-e5f6-7890-abcd-ef1234567890"),
		Name:     "tenant:create",
		Resource: ResourceTenant,
		Action:   permission.ActionCreate,
	}
	TenantRead = &permission.Permission{
		ID:       identity.MustParsePermissionID("b2c3d4e5-f6a7-8901-bcde-f23456789012"),
		Name:     "tenant:read",
		Resource: ResourceTenant,
		Action:   permission.ActionRead,
	}
	TenantUpdate = &permission.Permission{
		ID:       identity.MustParsePermissionID("c3d4e5f6-a7b8-9012-cdef-345678901234"),
		Name:     "tenant:update",
		Resource: ResourceTenant,
		Action:   permission.ActionUpdate,
	}
	TenantDelete = &permission.Permission{
		ID:       identity.MustParsePermissionID("d4e5f6a7-b8c9-0123-defa-456789012345"),
		Name:     "tenant:delete",
		Resource: ResourceTenant,
		Action:   permission.ActionDelete,
	}
	OrganizationCreate = &permission.Permission{
		ID:       identity.MustParsePermissionID("0f65fd1a-0edb-4c38-ae4f-6b4ef95c5e6f"),
		Name:     "organization:create",
		Resource: ResourceOrganization,
		Action:   permission.ActionCreate,
	}
	OrganizationRead = &permission.Permission{
		ID:       identity.MustParsePermissionID("3ea1a6dd-7b73-4397-9a07-6e4220348452"),
		Name:     "organization:read",
		Resource: ResourceOrganization,
		Action:   permission.ActionRead,
	}
	OrganizationUpdate = &permission.Permission{
		ID:       identity.MustParsePermissionID("738cb963-78dd-42fe-b9ee-97f1dbe6cfe5"),
		Name:     "organization:update",
		Resource: ResourceOrganization,
		Action:   permission.ActionUpdate,
	}
	OrganizationDelete = &permission.Permission{
		ID:       identity.MustParsePermissionID("8c8a4b94-16df-4bd9-b88c-fc1f30f51e78"),
		Name:     "organization:delete",
		Resource: ResourceOrganization,
		Action:   permission.ActionDelete,
	}
	WorkspaceRead = &permission.Permission{
		ID:       identity.MustParsePermissionID("cd5f48da-cc30-4ca7-b6f8-21016fe03186"),
		Name:     "workspace:read",
		Resource: ResourceWorkspace,
		Action:   permission.ActionRead,
	}
	WorkspaceUpdate = &permission.Permission{
		ID:       identity.MustParsePermissionID("1de23bcf-4b0a-47a5-9f1d-61dbcfd9d4a3"),
		Name:     "workspace:update",
		Resource: ResourceWorkspace,
		Action:   permission.ActionUpdate,
	}
	RegionRead = &permission.Permission{
		ID:       identity.MustParsePermissionID("6cf902c8-0c4e-42a6-9e3e-74cd46bbdabb"),
		Name:     "region:read",
		Resource: ResourceRegion,
		Action:   permission.ActionRead,
	}
)

var Permissions = []*permission.Permission{
	UserCreate,
	UserRead,
	UserUpdate,
	UserDelete,
	RoleCreate,
	RoleRead,
	RoleUpdate,
	RoleDelete,
	GroupCreate,
	GroupRead,
	GroupUpdate,
	GroupDelete,
	TenantCreate,
	TenantRead,
	TenantUpdate,
	TenantDelete,
	OrganizationCreate,
	OrganizationRead,
	OrganizationUpdate,
	OrganizationDelete,
	WorkspaceRead,
	WorkspaceUpdate,
	RegionRead,
}
