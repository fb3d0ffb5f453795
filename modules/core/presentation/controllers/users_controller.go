package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/access"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/internet"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/presentation/controllers/dtos"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/services"
)

type UsersController struct {
	service *services.UserService
}

func NewUsersController(service *services.UserService) *UsersController {
	return &UsersController{service: service}
}

func (c *UsersController) Register(r *mux.Router) {
	r.HandleFunc("/users", c.Create).Methods(http.MethodPost)
	r.HandleFunc("/users", c.List).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", c.Get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	email, err := internet.NewEmail(req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	tier, ok := access.ParseTier(req.Tier)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "INVALID_TIER", "unknown tier "+req.Tier)
		return
	}
	opts := []user.Option{user.WithTier(tier)}
	if req.TenantID != "" {
		tenantID, err := identity.ParseTenantID(req.TenantID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		opts = append(opts, user.WithTenantID(tenantID))
	}
	if req.OrganizationID != "" {
		orgID, err := identity.ParseOrganizationID(req.OrganizationID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		opts = append(opts, user.WithOrganizationID(orgID))
	}
	entity := user.New(email, opts...)
	if err := entity.SetPassword(req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := c.service.Create(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	params := &user.FindParams{}
	if raw := r.URL.Query().Get("tenant_id"); raw != "" {
		tenantID, err := identity.ParseTenantID(raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		params.TenantID = tenantID
	}
	if raw := r.URL.Query().Get("organization_id"); raw != "" {
		orgID, err := identity.ParseOrganizationID(raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		params.OrganizationID = orgID
	}
	users, err := c.service.GetAll(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	total, err := c.service.Count(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data := make([]dtos.UserResponse, 0, len(users))
	for _, entity := range users {
		data = append(data, toUserResponse(entity))
	}
	writeJSON(w, http.StatusOK, &dtos.UserListResponse{Data: data, Total: total})
}

func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identity.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entity, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(entity))
}

func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := identity.ParseUserID(mux.Vars(r)["id"])
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

func toUserResponse(entity user.User) dtos.UserResponse {
	resp := dtos.UserResponse{
		ID:            entity.ID().String(),
		Email:         entity.Email().Value(),
		Tier:          string(entity.Tier()),
		IsActive:      entity.IsActive(),
		EmailVerified: entity.IsEmailVerified(),
	}
	if !entity.TenantID().IsNil() {
		resp.TenantID = entity.TenantID().String()
	}
	if !entity.OrganizationID().IsNil() {
		resp.OrganizationID = entity.OrganizationID().String()
	}
	return resp
}
