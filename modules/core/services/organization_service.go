package services

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/organization"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/eventbus"
)

type OrganizationService struct {
	repo      organization.Repository
	publisher eventbus.EventBus
}

func NewOrganizationService(repo organization.Repository, publisher eventbus.EventBus) *OrganizationService {
	return &OrganizationService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *OrganizationService) GetByID(ctx context.Context, id identity.OrganizationID) (*organization.Organization, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OrganizationService) GetBySlug(ctx context.Context, slug string) (*organization.Organization, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *OrganizationService) GetByRegion(ctx context.Context, regionID identity.RegionID) ([]*organization.Organization, error) {
	return s.repo.GetByRegion(ctx, regionID)
}

func (s *OrganizationService) Create(ctx context.Context, data *organization.Organization) (*organization.Organization, error) {
	var created *organization.Organization
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

func (s *OrganizationService) Update(ctx context.Context, data *organization.Organization) (*organization.Organization, error) {
	var updated *organization.Organization
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

func (s *OrganizationService) Delete(ctx context.Context, id identity.OrganizationID) error {
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

func (s *OrganizationService) publishAll(events []interface{}) {
	for _, event := range events {
		s.publisher.Publish(event)
	}
}
