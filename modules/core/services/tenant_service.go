package services

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/tenant"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/eventbus"
)

type TenantService struct {
	repo      tenant.Repository
	publisher eventbus.EventBus
}

func NewTenantService(repo tenant.Repository, publisher eventbus.EventBus) *TenantService {
	return &TenantService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *TenantService) GetByID(ctx context.Context, id identity.TenantID) (*tenant.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TenantService) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	return s.repo.GetByDomain(ctx, domain)
}

func (s *TenantService) GetByWorkspace(ctx context.Context, workspaceID identity.WorkspaceID) ([]*tenant.Tenant, error) {
	return s.repo.GetByWorkspace(ctx, workspaceID)
}

func (s *TenantService) Create(ctx context.Context, data *tenant.Tenant) (*tenant.Tenant, error) {
	var created *tenant.Tenant
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishAll(data.PullEvents())
	return created, nil
}

func (s *TenantService) Update(ctx context.Context, data *tenant.Tenant) (*tenant.Tenant, error) {
	var updated *tenant.Tenant
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishAll(data.PullEvents())
	return updated, nil
}

func (s *TenantService) Delete(ctx context.Context, id identity.TenantID) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	entity.MarkDeleted()
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publishAll(entity.PullEvents())
	return nil
}

func (s *TenantService) publishAll(events []interface{}) {
	for _, event := range events {
		s.publisher.Publish(event)
	}
}
