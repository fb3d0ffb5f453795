package dtos

// APIError standardizes JSON error responses.
type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"max=1024"`
	TenantID    string   `json:"tenant_id" validate:"omitempty,uuid4"`
	Permissions []string `json:"permissions" validate:"dive,uuid4"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=1024"`
}

type RolePermissionRequest struct {
	PermissionID string `json:"permission_id" validate:"required,uuid4"`
}

type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	TenantID    string   `json:"tenant_id,omitempty"`
	IsSystem    bool     `json:"is_system"`
	Permissions []string `json:"permissions"`
}

type RoleListResponse struct {
	Data  []RoleResponse `json:"data"`
	Total int            `json:"total"`
}

type AssignRoleRequest struct {
	RoleID string `json:"role_id" validate:"required,uuid4"`
}

type AssignPermissionRequest struct {
	PermissionID string `json:"permission_id" validate:"required,uuid4"`
}

type AccessCheckRequest struct {
	UserID         string `json:"user_id" validate:"required,uuid4"`
	Action         string `json:"action" validate:"required"`
	OrganizationID string `json:"organization_id" validate:"omitempty,uuid4"`
}

type AccessCheckResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

type PermissionListResponse struct {
	Data  []PermissionResponse `json:"data"`
	Total int                  `json:"total"`
}
