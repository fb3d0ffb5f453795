package services

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/region"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/eventbus"
)

type RegionService struct {
	repo      region.Repository
	publisher eventbus.EventBus
}

func NewRegionService(repo region.Repository, publisher eventbus.EventBus) *RegionService {
	return &RegionService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *RegionService) GetByID(ctx context.Context, id identity.RegionID) (*region.Region, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RegionService) GetByCode(ctx context.Context, code string) (*region.Region, error) {
	return s.repo.GetByCode(ctx, code)
}

func (s *RegionService) GetAll(ctx context.Context) ([]*region.Region, error) {
	return s.repo.GetAll(ctx)
}

func (s *RegionService) Create(ctx context.Context, data *region.Region) (*region.Region, error) {
	var created *region.Region
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

func (s *RegionService) Update(ctx context.Context, data *region.Region) (*region.Region, error) {
	var updated *region.Region
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

func (s *RegionService) Delete(ctx context.Context, id identity.RegionID) error {
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

func (s *RegionService) publishAll(events []interface{}) {
	for _, event := range events {
		s.publisher.Publish(event)
	}
}
