package services

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/cache"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/eventbus"
)

type RoleService struct {
	repo      role.Repository
	cache     cache.Cache
	publisher eventbus.EventBus
}

func NewRoleService(repo role.Repository, c cache.Cache, publisher eventbus.EventBus) *RoleService {
	return &RoleService{
		repo:      repo,
		cache:     c,
		publisher: publisher,
	}
}

func (s *RoleService) GetByID(ctx context.Context, id identity.RoleID) (role.Role, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RoleService) GetByName(ctx context.Context, name string, tenantID identity.TenantID) (role.Role, error) {
	return s.repo.GetByName(ctx, name, tenantID)
}

func (s *RoleService) GetAll(ctx context.Context, params *role.FindParams) ([]role.Role, error) {
	return s.repo.GetAll(ctx, params)
}

func (s *RoleService) Create(ctx context.Context, data role.Role) (role.Role, error) {
	var created role.Role
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

// Update persists the mutated role and evicts every cached permission set.
// A role's permission list feeds an unknown set of users, so the eviction is
// by prefix rather than per user. Eviction happens before success is
// reported; if it fails the committed write stands and the error surfaces.
func (s *RoleService) Update(ctx context.Context, data role.Role) (role.Role, error) {
	var updated role.Role
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.cache.DeleteByPrefix(ctx, permissionCachePrefix); err != nil {
		return updated, invalidationError(err)
	}
	s.publishAll(data.PullEvents())
	return updated, nil
}

func (s *RoleService) Delete(ctx context.Context, id identity.RoleID) error {
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
	if _, err := s.cache.DeleteByPrefix(ctx, permissionCachePrefix); err != nil {
		return invalidationError(err)
	}
	s.publishAll(entity.PullEvents())
	return nil
}

func (s *RoleService) publishAll(events []interface{}) {
	for _, event := range events {
		s.publisher.Publish(event)
	}
}
