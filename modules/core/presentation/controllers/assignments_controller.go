package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/presentation/controllers/dtos"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/services"
)

type AssignmentsController struct {
	service *services.AssignmentService
}

func NewAssignmentsController(service *services.AssignmentService) *AssignmentsController {
	return &AssignmentsController{service: service}
}

func (c *AssignmentsController) Register(r *mux.Router) {
	r.HandleFunc("/users/{id}/roles", c.AssignRole).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}/roles/{roleID}", c.RevokeRole).Methods(http.MethodDelete)
	r.HandleFunc("/users/{id}/permissions", c.AssignPermission).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}/permissions/{permissionID}", c.RevokePermission).Methods(http.MethodDelete)
}

func (c *AssignmentsController) AssignRole(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req dtos.AssignRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	roleID, err := identity.ParseRoleID(req.RoleID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := c.service.AssignRoleToUser(r.Context(), userID, roleID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *AssignmentsController) RevokeRole(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := identity.ParseUserID(vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	roleID, err := identity.ParseRoleID(vars["roleID"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := c.service.RevokeRoleFromUser(r.Context(), userID, roleID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *AssignmentsController) AssignPermission(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req dtos.AssignPermissionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	permID, err := identity.ParsePermissionID(req.PermissionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := c.service.AssignPermissionToUser(r.Context(), userID, permID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (c *AssignmentsController) RevokePermission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := identity.ParseUserID(vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	permID, err := identity.ParsePermissionID(vars["permissionID"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := c.service.RevokePermissionFromUser(r.Context(), userID, permID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
