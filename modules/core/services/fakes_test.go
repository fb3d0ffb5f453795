package services_test

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/permission"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/infrastructure/persistence"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/cache"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
)

// stubTx satisfies repo.Tx so services run their transactional closures
// against in-memory fakes. The fakes never touch the transaction itself.
type stubTx struct{}

func (stubTx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (stubTx) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (stubTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func testContext() context.Context {
	return composables.WithTx(context.Background(), stubTx{})
}

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[identity.UserID]user.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[identity.UserID]user.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, data user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[data.ID()] = data
	return data, nil
}

func (r *fakeUserRepository) Update(_ context.Context, data user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[data.ID()]; !ok {
		return persistence.ErrUserNotFound
	}
	r.users[data.ID()] = data
	return nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id identity.UserID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity, ok := r.users[id]
	if !ok {
		return nil, persistence.ErrUserNotFound
	}
	return entity, nil
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entity := range r.users {
		if entity.Email().Value() == email && !entity.IsDeleted() {
			return entity, nil
		}
	}
	return nil, persistence.ErrUserNotFound
}

func (r *fakeUserRepository) GetAll(_ context.Context, _ *user.FindParams) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]user.User, 0, len(r.users))
	for _, entity := range r.users {
		all = append(all, entity)
	}
	return all, nil
}

func (r *fakeUserRepository) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	all, err := r.GetAll(ctx, params)
	return int64(len(all)), err
}

func (r *fakeUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepository) Delete(ctx context.Context, id identity.UserID) error {
	entity, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := entity.MarkDeleted(); err != nil {
		return err
	}
	return r.Update(ctx, entity)
}

type fakeRoleRepository struct {
	mu    sync.Mutex
	roles map[identity.RoleID]role.Role
}

func newFakeRoleRepository() *fakeRoleRepository {
	return &fakeRoleRepository{roles: make(map[identity.RoleID]role.Role)}
}

func (r *fakeRoleRepository) Create(_ context.Context, data role.Role) (role.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.roles {
		if existing.Name() == data.Name() && existing.TenantID() == data.TenantID() && !existing.IsDeleted() {
			return nil, persistence.ErrRoleDuplicate
		}
	}
	r.roles[data.ID()] = data
	return data, nil
}

func (r *fakeRoleRepository) Update(_ context.Context, data role.Role) (role.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[data.ID()]; !ok {
		return nil, persistence.ErrRoleNotFound
	}
	r.roles[data.ID()] = data
	return data, nil
}

func (r *fakeRoleRepository) GetByID(_ context.Context, id identity.RoleID) (role.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity, ok := r.roles[id]
	if !ok {
		return nil, persistence.ErrRoleNotFound
	}
	return entity, nil
}

func (r *fakeRoleRepository) GetByName(_ context.Context, name string, tenantID identity.TenantID) (role.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entity := range r.roles {
		if entity.Name() == name && entity.TenantID() == tenantID && !entity.IsDeleted() {
			return entity, nil
		}
	}
	return nil, persistence.ErrRoleNotFound
}

func (r *fakeRoleRepository) GetAll(_ context.Context, params *role.FindParams) ([]role.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]role.Role, 0, len(r.roles))
	for _, entity := range r.roles {
		if entity.IsDeleted() && (params == nil || !params.IncludeDeleted) {
			continue
		}
		all = append(all, entity)
	}
	return all, nil
}

func (r *fakeRoleRepository) Delete(ctx context.Context, id identity.RoleID) error {
	entity, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !entity.IsDeleted() {
		if err := entity.MarkDeleted(); err != nil {
			return err
		}
	}
	return nil
}

type fakePermissionRepository struct {
	mu    sync.Mutex
	perms map[identity.PermissionID]*permission.Permission
}

func newFakePermissionRepository() *fakePermissionRepository {
	return &fakePermissionRepository{perms: make(map[identity.PermissionID]*permission.Permission)}
}

func (r *fakePermissionRepository) Save(_ context.Context, p *permission.Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.perms[p.ID] = p
	return nil
}

func (r *fakePermissionRepository) GetByID(_ context.Context, id identity.PermissionID) (*permission.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.perms[id]
	if !ok {
		return nil, persistence.ErrPermissionNotFound
	}
	return p, nil
}

func (r *fakePermissionRepository) GetByName(_ context.Context, name string) (*permission.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.perms {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, persistence.ErrPermissionNotFound
}

func (r *fakePermissionRepository) GetAll(_ context.Context) ([]*permission.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*permission.Permission, 0, len(r.perms))
	for _, p := range r.perms {
		all = append(all, p)
	}
	return all, nil
}

func (r *fakePermissionRepository) Delete(_ context.Context, id identity.PermissionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.perms[id]; !ok {
		return persistence.ErrPermissionNotFound
	}
	delete(r.perms, id)
	return nil
}

// fakeRoleGrants keeps per-user role lists in assignment order so resolution
// tests see a stable traversal.
type fakeRoleGrants struct {
	mu     sync.Mutex
	byUser map[identity.UserID][]identity.RoleID
}

func newFakeRoleGrants() *fakeRoleGrants {
	return &fakeRoleGrants{byUser: make(map[identity.UserID][]identity.RoleID)}
}

func (g *fakeRoleGrants) Assign(_ context.Context, userID identity.UserID, roleID identity.RoleID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, existing := range g.byUser[userID] {
		if existing == roleID {
			return persistence.ErrRoleAlreadyAssigned
		}
	}
	g.byUser[userID] = append(g.byUser[userID], roleID)
	return nil
}

func (g *fakeRoleGrants) Revoke(_ context.Context, userID identity.UserID, roleID identity.RoleID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, existing := range g.byUser[userID] {
		if existing == roleID {
			g.byUser[userID] = append(g.byUser[userID][:i], g.byUser[userID][i+1:]...)
			return nil
		}
	}
	return persistence.ErrRoleNotAssigned
}

func (g *fakeRoleGrants) ListByUser(_ context.Context, userID identity.UserID) ([]identity.RoleID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]identity.RoleID, len(g.byUser[userID]))
	copy(ids, g.byUser[userID])
	return ids, nil
}

func (g *fakeRoleGrants) ListByRole(_ context.Context, roleID identity.RoleID) ([]identity.UserID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var ids []identity.UserID
	for userID, roleIDs := range g.byUser {
		for _, existing := range roleIDs {
			if existing == roleID {
				ids = append(ids, userID)
			}
		}
	}
	return ids, nil
}

func (g *fakeRoleGrants) Exists(ctx context.Context, userID identity.UserID, roleID identity.RoleID) (bool, error) {
	ids, err := g.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, existing := range ids {
		if existing == roleID {
			return true, nil
		}
	}
	return false, nil
}

type fakePermissionGrants struct {
	mu     sync.Mutex
	byUser map[identity.UserID][]identity.PermissionID
}

func newFakePermissionGrants() *fakePermissionGrants {
	return &fakePermissionGrants{byUser: make(map[identity.UserID][]identity.PermissionID)}
}

func (g *fakePermissionGrants) Assign(_ context.Context, userID identity.UserID, permissionID identity.PermissionID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, existing := range g.byUser[userID] {
		if existing == permissionID {
			return persistence.ErrPermissionAlreadyGranted
		}
	}
	g.byUser[userID] = append(g.byUser[userID], permissionID)
	return nil
}

func (g *fakePermissionGrants) Revoke(_ context.Context, userID identity.UserID, permissionID identity.PermissionID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, existing := range g.byUser[userID] {
		if existing == permissionID {
			g.byUser[userID] = append(g.byUser[userID][:i], g.byUser[userID][i+1:]...)
			return nil
		}
	}
	return persistence.ErrPermissionNotGranted
}

func (g *fakePermissionGrants) ListByUser(_ context.Context, userID identity.UserID) ([]identity.PermissionID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]identity.PermissionID, len(g.byUser[userID]))
	copy(ids, g.byUser[userID])
	return ids, nil
}

func (g *fakePermissionGrants) ListByPermission(_ context.Context, permissionID identity.PermissionID) ([]identity.UserID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var ids []identity.UserID
	for userID, permIDs := range g.byUser {
		for _, existing := range permIDs {
			if existing == permissionID {
				ids = append(ids, userID)
			}
		}
	}
	return ids, nil
}

func (g *fakePermissionGrants) Exists(ctx context.Context, userID identity.UserID, permissionID identity.PermissionID) (bool, error) {
	ids, err := g.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, existing := range ids {
		if existing == permissionID {
			return true, nil
		}
	}
	return false, nil
}

// brokenCache delegates to an inner cache but fails evictions, for
// exercising the invalidation failure path.
type brokenCache struct {
	cache.Cache
	evictionErr error
}

func (c *brokenCache) Delete(context.Context, string) error {
	return c.evictionErr
}

func (c *brokenCache) DeleteByPrefix(context.Context, string) (int64, error) {
	return 0, c.evictionErr
}

// recordingBus captures published events in order.
type recordingBus struct {
	mu     sync.Mutex
	events []interface{}
}

func (b *recordingBus) Publish(args ...interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, args...)
}

func (b *recordingBus) Subscribe(interface{})   {}
func (b *recordingBus) Unsubscribe(interface{}) {}
func (b *recordingBus) Clear()                  {}
func (b *recordingBus) SubscribersCount() int   { return 0 }

func (b *recordingBus) published() []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := make([]interface{}, len(b.events))
	copy(events, b.events)
	return events
}
