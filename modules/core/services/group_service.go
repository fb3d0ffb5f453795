package services

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/group"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/eventbus"
)

type GroupService struct {
	repo      group.Repository
	publisher eventbus.EventBus
}

func NewGroupService(repo group.Repository, publisher eventbus.EventBus) *GroupService {
	return &GroupService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *GroupService) GetByID(ctx context.Context, id identity.GroupID) (group.Group, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GroupService) GetByOrganization(ctx context.Context, organizationID identity.OrganizationID) ([]group.Group, error) {
	return s.repo.GetByOrganization(ctx, organizationID)
}

func (s *GroupService) Create(ctx context.Context, data group.Group) (group.Group, error) {
	var created group.Group
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

func (s *GroupService) Update(ctx context.Context, data group.Group) (group.Group, error) {
	var updated group.Group
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

func (s *GroupService) AddMember(ctx context.Context, groupID identity.GroupID, userID identity.UserID) (group.Group, error) {
	entity, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := entity.AddMember(userID); err != nil {
		return nil, err
	}
	return s.Update(ctx, entity)
}

func (s *GroupService) RemoveMember(ctx context.Context, groupID identity.GroupID, userID identity.UserID) (group.Group, error) {
	entity, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := entity.RemoveMember(userID); err != nil {
		return nil, err
	}
	return s.Update(ctx, entity)
}

func (s *GroupService) Delete(ctx context.Context, id identity.GroupID) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := entity.MarkDeleted(); err != nil {
		return err
	}
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publishAll(entity.PullEvents())
	return nil
}

func (s *GroupService) publishAll(events []interface{}) {
	for _, event := range events {
		s.publisher.Publish(event)
	}
}
