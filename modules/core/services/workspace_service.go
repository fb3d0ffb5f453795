package services

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/workspace"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/eventbus"
)

type WorkspaceService struct {
	repo      workspace.Repository
	publisher eventbus.EventBus
}

func NewWorkspaceService(repo workspace.Repository, publisher eventbus.EventBus) *WorkspaceService {
	return &WorkspaceService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *WorkspaceService) GetByID(ctx context.Context, id identity.WorkspaceID) (*workspace.Workspace, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *WorkspaceService) GetByOrganization(ctx context.Context, organizationID identity.OrganizationID) ([]*workspace.Workspace, error) {
	return s.repo.GetByOrganization(ctx, organizationID)
}

func (s *WorkspaceService) Create(ctx context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	var created *workspace.Workspace
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

func (s *WorkspaceService) Update(ctx context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	var updated *workspace.Workspace
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

func (s *WorkspaceService) Delete(ctx context.Context, id identity.WorkspaceID) error {
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

func (s *WorkspaceService) publishAll(events []interface{}) {
	for _, event := range events {
		s.publisher.Publish(event)
	}
}
