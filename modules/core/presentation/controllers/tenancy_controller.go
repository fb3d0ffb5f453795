package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/organization"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/region"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/tenant"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/workspace"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/presentation/controllers/dtos"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/services"
)

// TenancyController exposes the Region → Organization → Workspace → Tenant
// hierarchy.
type TenancyController struct {
	regions       *services.RegionService
	organizations *services.OrganizationService
	workspaces    *services.WorkspaceService
	tenants       *services.TenantService
}

func NewTenancyController(
	regions *services.RegionService,
	organizations *services.OrganizationService,
	workspaces *services.WorkspaceService,
	tenants *services.TenantService,
) *TenancyController {
	return &TenancyController{
		regions:       regions,
		organizations: organizations,
		workspaces:    workspaces,
		tenants:       tenants,
	}
}

func (c *TenancyController) Register(r *mux.Router) {
	r.HandleFunc("/regions", c.CreateRegion).Methods(http.MethodPost)
	r.HandleFunc("/regions", c.ListRegions).Methods(http.MethodGet)
	r.HandleFunc("/regions/{id}/organizations", c.ListOrganizations).Methods(http.MethodGet)
	r.HandleFunc("/organizations", c.CreateOrganization).Methods(http.MethodPost)
	r.HandleFunc("/organizations/{id}/workspaces", c.ListWorkspaces).Methods(http.MethodGet)
	r.HandleFunc("/workspaces", c.CreateWorkspace).Methods(http.MethodPost)
	r.HandleFunc("/workspaces/{id}/tenants", c.ListTenants).Methods(http.MethodGet)
	r.HandleFunc("/tenants", c.CreateTenant).Methods(http.MethodPost)
}

func (c *TenancyController) CreateRegion(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateRegionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	entity, err := region.New(req.Name, region.WithCode(req.Code))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := c.regions.Create(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRegionNode(created))
}

func (c *TenancyController) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := c.regions.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data := make([]dtos.HierarchyNodeResponse, 0, len(regions))
	for _, entity := range regions {
		data = append(data, toRegionNode(entity))
	}
	writeJSON(w, http.StatusOK, data)
}

func (c *TenancyController) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateOrganizationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	regionID, err := identity.ParseRegionID(req.RegionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entity, err := organization.New(req.Name, regionID, organization.WithSlug(req.Slug))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := c.organizations.Create(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrganizationNode(created))
}

func (c *TenancyController) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	regionID, err := identity.ParseRegionID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	orgs, err := c.organizations.GetByRegion(r.Context(), regionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data := make([]dtos.HierarchyNodeResponse, 0, len(orgs))
	for _, entity := range orgs {
		data = append(data, toOrganizationNode(entity))
	}
	writeJSON(w, http.StatusOK, data)
}

func (c *TenancyController) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateWorkspaceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	orgID, err := identity.ParseOrganizationID(req.OrganizationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entity, err := workspace.New(req.Name, orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := c.workspaces.Create(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkspaceNode(created))
}

func (c *TenancyController) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	orgID, err := identity.ParseOrganizationID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	workspaces, err := c.workspaces.GetByOrganization(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data := make([]dtos.HierarchyNodeResponse, 0, len(workspaces))
	for _, entity := range workspaces {
		data = append(data, toWorkspaceNode(entity))
	}
	writeJSON(w, http.StatusOK, data)
}

func (c *TenancyController) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	workspaceID, err := identity.ParseWorkspaceID(req.WorkspaceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entity, err := tenant.New(req.Name, workspaceID, tenant.WithDomain(req.Domain))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := c.tenants.Create(r.Context(), entity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTenantNode(created))
}

func (c *TenancyController) ListTenants(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := identity.ParseWorkspaceID(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	tenants, err := c.tenants.GetByWorkspace(r.Context(), workspaceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data := make([]dtos.HierarchyNodeResponse, 0, len(tenants))
	for _, entity := range tenants {
		data = append(data, toTenantNode(entity))
	}
	writeJSON(w, http.StatusOK, data)
}

func toRegionNode(entity *region.Region) dtos.HierarchyNodeResponse {
	return dtos.HierarchyNodeResponse{
		ID:       entity.ID().String(),
		Name:     entity.Name(),
		Code:     entity.Code(),
		IsActive: entity.IsActive(),
	}
}

func toOrganizationNode(entity *organization.Organization) dtos.HierarchyNodeResponse {
	return dtos.HierarchyNodeResponse{
		ID:       entity.ID().String(),
		Name:     entity.Name(),
		Slug:     entity.Slug(),
		ParentID: entity.RegionID().String(),
		IsActive: entity.IsActive(),
	}
}

func toWorkspaceNode(entity *workspace.Workspace) dtos.HierarchyNodeResponse {
	return dtos.HierarchyNodeResponse{
		ID:       entity.ID().String(),
		Name:     entity.Name(),
		ParentID: entity.OrganizationID().String(),
		IsActive: entity.IsActive(),
	}
}

func toTenantNode(entity *tenant.Tenant) dtos.HierarchyNodeResponse {
	return dtos.HierarchyNodeResponse{
		ID:       entity.ID().String(),
		Name:     entity.Name(),
		Domain:   entity.Domain(),
		ParentID: entity.WorkspaceID().String(),
		IsActive: entity.IsActive(),
	}
}
