package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/access"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/role"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/aggregates/user"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/entities/permission"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/cache"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/composables"
)

// permissionCachePrefix namespaces every cached permission set. Per-user
// entries hang off it as permissions:<userID>.
const permissionCachePrefix = "permissions:"

func permissionCacheKey(userID identity.UserID) string {
	return permissionCachePrefix + userID.String()
}

func invalidationError(cause error) error {
	return fmt.Errorf("%w: %v", cache.ErrInvalidation, cause)
}

// cachedPermission is the wire shape of one entry in a cached permission
// set. The cache stays content-agnostic; the shape is owned here.
type cachedPermission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

// AccessService answers permission questions for a principal. Computed
// permission sets are cached per user and evicted by the mutation paths in
// AssignmentService and RoleService.
type AccessService struct {
	users      user.Repository
	roles      role.Repository
	roleGrants user.RoleGrants
	permGrants user.PermissionGrants
	perms      permission.Repository
	cache      cache.Cache
	ttl        time.Duration
}

func NewAccessService(
	users user.Repository,
	roles role.Repository,
	roleGrants user.RoleGrants,
	permGrants user.PermissionGrants,
	perms permission.Repository,
	c cache.Cache,
	ttl time.Duration,
) *AccessService {
	return &AccessService{
		users:      users,
		roles:      roles,
		roleGrants: roleGrants,
		permGrants: permGrants,
		perms:      perms,
		cache:      c,
		ttl:        ttl,
	}
}

// Can reports whether the principal may perform action against a resource
// owned by resourceOrgID. Inactive and deleted principals are always denied.
func (s *AccessService) Can(ctx context.Context, userID identity.UserID, action string, resourceOrgID identity.OrganizationID) (bool, error) {
	principal, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !principal.IsActive() || principal.IsDeleted() {
		return false, nil
	}
	scope := access.Scope{
		PrincipalOrganization: principal.OrganizationID(),
		ResourceOrganization:  resourceOrgID,
	}
	return access.Decide(principal.Tier(), action, scope), nil
}

// EffectivePermissions returns the union of the user's role permissions and
// direct grants, deduplicated and sorted by name. The computed set is cached
// under permissions:<userID> until evicted or expired.
func (s *AccessService) EffectivePermissions(ctx context.Context, userID identity.UserID) ([]*permission.Permission, error) {
	key := permissionCacheKey(userID)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		perms, err := decodePermissionSet(raw)
		if err == nil {
			return perms, nil
		}
		// Corrupt entry: recompute below, the Set overwrites it.
		composables.UseLogger(ctx).WithError(err).WithField("key", key).Warn("discarding undecodable permission cache entry")
	}

	perms, err := s.computeEffectivePermissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	raw, err := encodePermissionSet(perms)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		// A cold cache is a performance problem, not a correctness one.
		composables.UseLogger(ctx).WithError(err).WithField("key", key).Warn("failed to cache permission set")
	}
	return perms, nil
}

func (s *AccessService) computeEffectivePermissions(ctx context.Context, userID identity.UserID) ([]*permission.Permission, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	seen := make(map[identity.PermissionID]struct{})
	ids := make([]identity.PermissionID, 0)

	roleIDs, err := s.roleGrants.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, roleID := range roleIDs {
		entity, err := s.roles.GetByID(ctx, roleID)
		if err != nil {
			return nil, err
		}
		if entity.IsDeleted() {
			continue
		}
		for _, permID := range entity.PermissionIDs() {
			if _, ok := seen[permID]; ok {
				continue
			}
			seen[permID] = struct{}{}
			ids = append(ids, permID)
		}
	}

	direct, err := s.permGrants.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, permID := range direct {
		if _, ok := seen[permID]; ok {
			continue
		}
		seen[permID] = struct{}{}
		ids = append(ids, permID)
	}

	perms := make([]*permission.Permission, 0, len(ids))
	for _, id := range ids {
		p, err := s.perms.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i].Name < perms[j].Name })
	return perms, nil
}

func encodePermissionSet(perms []*permission.Permission) ([]byte, error) {
	entries := make([]cachedPermission, 0, len(perms))
	for _, p := range perms {
		entries = append(entries, cachedPermission{
			ID:          p.ID.String(),
			Name:        p.Name,
			Resource:    string(p.Resource),
			Action:      string(p.Action),
			Description: p.Description,
		})
	}
	return json.Marshal(entries)
}

func decodePermissionSet(raw []byte) ([]*permission.Permission, error) {
	var entries []cachedPermission
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	perms := make([]*permission.Permission, 0, len(entries))
	for _, entry := range entries {
		id, err := identity.ParsePermissionID(entry.ID)
		if err != nil {
			return nil, err
		}
		perms = append(perms, &permission.Permission{
			ID:          id,
			Name:        entry.Name,
			Resource:    permission.Resource(entry.Resource),
			Action:      permission.Action(entry.Action),
			Description: entry.Description,
		})
	}
	return perms, nil
}
