package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/presentation/controllers/dtos"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/services"
)

type AccessController struct {
	service *services.AccessService
}

func NewAccessController(service *services.AccessService) *AccessController {
	return &AccessController{service: service}
}

func (c *AccessController) Register(r *mux.Router) {
	r.HandleFunc("/access/check", c.Check).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}/effective-permissions", c.EffectivePermissions).Methods(http.MethodGet)
}

func (c *AccessController) Check(w http.ResponseWriter, r *http.Request) {
	var req dtos.AccessCheckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, err := identity.ParseUserID(req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var orgID identity.OrganizationID
	if req.OrganizationID != "" {
		orgID, err = identity.ParseOrganizationID(req.OrganizationID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}
	allowed, err := c.service.Can(r.Context(), userID, req.Action, orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &dtos.AccessCheckResponse{Allowed: allowed})
}

func (c *AccessController) EffectivePermissions(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	perms, err := c.service.EffectivePermissions(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data := make([]dtos.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		data = append(data, dtos.PermissionResponse{
			ID:          p.ID.String(),
			Name:        p.Name,
			Resource:    string(p.Resource),
			Action:      string(p.Action),
			Description: p.Description,
		})
	}
	writeJSON(w, http.StatusOK, &dtos.PermissionListResponse{Data: data, Total: len(data)})
}
