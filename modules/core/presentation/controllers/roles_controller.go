package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/presentation/controllers/dtos"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/services"
)

type RolesController struct {
	service *services.RoleService
}

func NewRolesController(service *services.RoleService) *RolesController {
	return &RolesController{service: service}
}

func (c *RolesController) Register(r *mux.Router) {
	r.HandleFunc("/roles", c.Create).Methods(http.MethodPost)
	r.HandleFunc("/roles", c.List).Methods(http.MethodGet)
	r.HandleFunc("/roles/{id}", c.Get).Methods(http.MethodGet)
	r.HandleFunc("/roles/{id}", c.Update).Methods(http.MethodPut)
	r.HandleFunc("/roles/{id}", c.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/roles/{id}/permissions", c.AddPermission).Methods(http.MethodPost)
	r.HandleFunc("/roles/{id}/permissions/{permissionID}", c.RemovePermission).Methods(http.MethodDelete)
}

func (c *RolesController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	opts := []role.Option{role.WithDescription(req.Description)}
	if req.TenantID != "" {
		tenantID, err := identity.ParseTenantID(req.TenantID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		opts = append(opts, role.WithTenantID(tenantID))
	}
	if len(req.Permissions) > 0 {
		permIDs := make([]identity.PermissionID, 0, len(req.Permissions))
		for _, raw := range req.Permissions {
			id, err := identity.ParsePermissionID(raw)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			permIDs = append(permIDs, id)
		}
		opts = append(opts, role.WithPermissionIDs(permIDs))
	}
	entity, err := role.New(req.Name, opts...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := c.service.Create(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoleResponse(created))
}

func (c *RolesController) List(w http.ResponseWriter, r *http.Request) {
	params := &role.FindParams{}
	if raw := r.URL.Query().Get("tenant_id"); raw != "" {
		tenantID, err := identity.ParseTenantID(raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		params.TenantID = tenantID
	}
	roles, err := c.service.GetAll(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data := make([]dtos.RoleResponse, 0, len(roles))
	for _, entity := range roles {
		data = append(data, toRoleResponse(entity))
	}
	writeJSON(w, http.StatusOK, &dtos.RoleListResponse{Data: data, Total: len(data)})
}

func (c *RolesController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identity.ParseRoleID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entity, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoleResponse(entity))
}

func (c *RolesController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := identity.ParseRoleID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req dtos.UpdateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	entity, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := entity.Update(req.Name, req.Description); err != nil {
		writeServiceError(w, err)
		return
	}
	updated, err := c.service.Update(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoleResponse(updated))
}

func (c *RolesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := identity.ParseRoleID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *RolesController) AddPermission(w http.ResponseWriter, r *http.Request) {
	id, err := identity.ParseRoleID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req dtos.RolePermissionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	permID, err := identity.ParsePermissionID(req.PermissionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entity, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := entity.AddPermission(permID); err != nil {
		writeServiceError(w, err)
		return
	}
	updated, err := c.service.Update(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoleResponse(updated))
}

func (c *RolesController) RemovePermission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := identity.ParseRoleID(vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	permID, err := identity.ParsePermissionID(vars["permissionID"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entity, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := entity.RemovePermission(permID); err != nil {
		writeServiceError(w, err)
		return
	}
	updated, err := c.service.Update(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoleResponse(updated))
}

func toRoleResponse(entity role.Role) dtos.RoleResponse {
	permIDs := entity.PermissionIDs()
	perms := make([]string, 0, len(permIDs))
	for _, id := range permIDs {
		perms = append(perms, id.String())
	}
	resp := dtos.RoleResponse{
		ID:          entity.ID().String(),
		Name:        entity.Name(),
		Description: entity.Description(),
		IsSystem:    entity.IsSystem(),
		Permissions: perms,
	}
	if !entity.TenantID().IsNil() {
		resp.TenantID = entity.TenantID().String()
	}
	return resp
}
