package dtos

type CreateUserRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Tier           string `json:"tier" validate:"required"`
	TenantID       string `json:"tenant_id" validate:"omitempty,uuid4"`
	OrganizationID string `json:"organization_id" validate:"omitempty,uuid4"`
}

type UserResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Tier           string `json:"tier"`
	TenantID       string `json:"tenant_id,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	IsActive       bool   `json:"is_active"`
	EmailVerified  bool   `json:"email_verified"`
}

type UserListResponse struct {
	Data  []UserResponse `json:"data"`
	Total int64          `json:"total"`
}

type CreateGroupRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=255"`
	Description    string `json:"description" validate:"max=1024"`
	OrganizationID string `json:"organization_id" validate:"required,uuid4"`
}

type GroupMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
}

type GroupResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	OrganizationID string   `json:"organization_id"`
	Members        []string `json:"members"`
}

type CreateRegionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Code string `json:"code" validate:"omitempty,max=64"`
}

type CreateOrganizationRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	RegionID string `json:"region_id" validate:"required,uuid4"`
	Slug     string `json:"slug" validate:"omitempty,max=255"`
}

type CreateWorkspaceRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=255"`
	OrganizationID string `json:"organization_id" validate:"required,uuid4"`
}

type CreateTenantRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	WorkspaceID string `json:"workspace_id" validate:"required,uuid4"`
	Domain      string `json:"domain" validate:"omitempty,fqdn"`
}

type HierarchyNodeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Domain   string `json:"domain,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
	IsActive bool   `json:"is_active"`
}
