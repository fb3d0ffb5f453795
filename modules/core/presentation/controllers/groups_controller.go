package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/group"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/presentation/controllers/dtos"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/services"
)

type GroupsController struct {
	service *services.GroupService
}

func NewGroupsController(service *services.GroupService) *GroupsController {
	return &GroupsController{service: service}
}

func (c *GroupsController) Register(r *mux.Router) {
	r.HandleFunc("/groups", c.Create).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id}", c.Get).Methods(http.MethodGet)
	r.HandleFunc("/groups/{id}", c.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/groups/{id}/members", c.AddMember).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id}/members/{userID}", c.RemoveMember).Methods(http.MethodDelete)
}

func (c *GroupsController) Create(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	orgID, err := identity.ParseOrganizationID(req.OrganizationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entity, err := group.New(req.Name, orgID, group.WithDescription(req.Description))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := c.service.Create(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(created))
}

func (c *GroupsController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := identity.ParseGroupID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entity, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(entity))
}

func (c *GroupsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := identity.ParseGroupID(mux.Vars(r)["id"])
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

func (c *GroupsController) AddMember(w http.ResponseWriter, r *http.Request) {
	id, err := identity.ParseGroupID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req dtos.GroupMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, err := identity.ParseUserID(req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	updated, err := c.service.AddMember(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(updated))
}

func (c *GroupsController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := identity.ParseGroupID(vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	userID, err := identity.ParseUserID(vars["userID"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	updated, err := c.service.RemoveMember(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(updated))
}

func toGroupResponse(entity group.Group) dtos.GroupResponse {
	memberIDs := entity.MemberIDs()
	members := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		members = append(members, id.String())
	}
	return dtos.GroupResponse{
		ID:             entity.ID().String(),
		Name:           entity.Name(),
		Description:    entity.Description(),
		OrganizationID: entity.OrganizationID().String(),
		Members:        members,
	}
}
