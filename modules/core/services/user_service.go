package services

import (
	"context"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/cache"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/eventbus"
)

type UserService struct {
	repo      user.Repository
	cache     cache.Cache
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, c cache.Cache, publisher eventbus.EventBus) *UserService {
	return &UserService{
		repo:      repo,
		cache:     c,
		publisher: publisher,
	}
}

func (s *UserService) GetByID(ctx context.Context, id identity.UserID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) GetAll(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	return s.repo.GetAll(ctx, params)
}

func (s *UserService) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	return s.repo.Count(ctx, params)
}

func (s *UserService) Create(ctx context.Context, data user.User) (user.User, error) {
	var created user.User
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

func (s *UserService) Update(ctx context.Context, data user.User) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Update(txCtx, data)
	})
	if err != nil {
		return err
	}
	s.publishAll(data.PullEvents())
	return nil
}

// Delete soft-deletes the user and evicts the cached permission set: a
// deleted principal must not keep resolving permissions from a warm cache.
func (s *UserService) Delete(ctx context.Context, id identity.UserID) error {
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
	if err := s.cache.Delete(ctx, permissionCacheKey(id)); err != nil {
		return invalidationError(err)
	}
	s.publishAll(entity.PullEvents())
	return nil
}

func (s *UserService) publishAll(events []interface{}) {
	for _, event := range events {
		s.publisher.Publish(event)
	}
}
