package role

import (
	"strings"
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrEmptyName         = serrors.NewValidation("ROLE_NAME_EMPTY", "role name must not be empty")
	ErrSystemRole        = serrors.NewDomain("ROLE_SYSTEM_IMMUTABLE", "system roles cannot be modified or deleted")
	ErrPermissionPresent = serrors.NewConflict("ROLE_PERMISSION_PRESENT", "permission is already assigned to the role")
	ErrPermissionAbsent  = serrors.NewNotFound("ROLE_PERMISSION_ABSENT", "permission is not assigned to the role")
)

// Role is a named, optionally tenant-scoped set of permissions. A role with
// a zero tenant ID is a global (system-wide) role. Roles flagged as system
// are platform-defined and immutable.
type Role interface {
	ID() identity.RoleID
	Name() string
	Description() string
	PermissionIDs() []identity.PermissionID
	HasPermission(id identity.PermissionID) bool
	TenantID() identity.TenantID
	IsSystem() bool
	IsDeleted() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time
	DeletedAt() *time.Time

	Update(name, description string) error
	AddPermission(id identity.PermissionID) error
	RemovePermission(id identity.PermissionID) error
	MarkDeleted() error

	// PullEvents drains the aggregate's event buffer: it returns the events
	// recorded since the last drain and clears the buffer.
	PullEvents() []interface{}
}

type roleImpl struct {
	id            identity.RoleID
	name          string
	description   string
	permissionIDs []identity.PermissionID
	tenantID      identity.TenantID
	system        bool
	createdAt     time.Time
	updatedAt     time.Time
	deletedAt     *time.Time
	events        []interface{}
}

type Option func(*roleImpl)

func WithID(id identity.RoleID) Option {
	return func(r *roleImpl) { r.id = id }
}

func WithDescription(description string) Option {
	return func(r *roleImpl) { r.description = description }
}

func WithPermissionIDs(ids []identity.PermissionID) Option {
	return func(r *roleImpl) { r.permissionIDs = dedupe(ids) }
}

func WithTenantID(id identity.TenantID) Option {
	return func(r *roleImpl) { r.tenantID = id }
}

func WithSystem() Option {
	return func(r *roleImpl) { r.system = true }
}

func WithCreatedAt(t time.Time) Option {
	return func(r *roleImpl) { r.createdAt = t }
}

func WithUpdatedAt(t time.Time) Option {
	return func(r *roleImpl) { r.updatedAt = t }
}

func WithDeletedAt(t *time.Time) Option {
	return func(r *roleImpl) { r.deletedAt = t }
}

// New creates a role and records a Created event.
func New(name string, opts ...Option) (Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	r := &roleImpl{
		id:        identity.NewRoleID(),
		name:      name,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.record(Created{
		RoleID:   r.id,
		Name:     r.name,
		TenantID: r.tenantID,
		System:   r.system,
		At:       r.createdAt,
	})
	return r, nil
}

// Rehydrate rebuilds a persisted role without recording any event.
func Rehydrate(id identity.RoleID, name string, opts ...Option) Role {
	r := &roleImpl{id: id, name: name}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *roleImpl) ID() identity.RoleID { return r.id }
func (r *roleImpl) Name() string { return r.name }
func (r *roleImpl) Description() string { return r.description }
func (r *roleImpl) TenantID() identity.TenantID { return r.tenantID }
func (r *roleImpl) IsSystem() bool { return r.system }
func (r *roleImpl) IsDeleted() bool { return r.deletedAt != nil }
func (r *roleImpl) CreatedAt() time.Time { return r.createdAt }
func (r *roleImpl) UpdatedAt() time.Time { return r.updatedAt }
func (r *roleImpl) DeletedAt() *time.Time { return r.deletedAt }

func (r *roleImpl) PermissionIDs() []identity.PermissionID {
	ids := make([]identity.PermissionID, len(r.permissionIDs))
	copy(ids, r.permissionIDs)
	return ids
}

func (r *roleImpl) HasPermission(id identity.PermissionID) bool {
	for _, existing := range r.permissionIDs {
		if existing == id {
			return true
		}
	}
	return false
}

func (r *roleImpl) Update(name, description string) error {
	if r.system {
		return ErrSystemRole
	}
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	r.name = name
	r.description = description
	r.touch()
	r.record(Updated{
		RoleID:      r.id,
		Name:        r.name,
		Description: r.description,
		At:          r.updatedAt,
	})
	return nil
}

func (r *roleImpl) AddPermission(id identity.PermissionID) error {
	if r.HasPermission(id) {
		return ErrPermissionPresent
	}
	r.permissionIDs = append(r.permissionIDs, id)
	r.touch()
	r.record(PermissionAssigned{
		RoleID:       r.id,
		PermissionID: id,
		At:           r.updatedAt,
	})
	return nil
}

func (r *roleImpl) RemovePermission(id identity.PermissionID) error {
	for i, existing := range r.permissionIDs {
		if existing == id {
			r.permissionIDs = append(r.permissionIDs[:i], r.permissionIDs[i+1:]...)
			r.touch()
			r.record(PermissionRemoved{
				RoleID:       r.id,
				PermissionID: id,
				At:           r.updatedAt,
			})
			return nil
		}
	}
	return ErrPermissionAbsent
}

func (r *roleImpl) MarkDeleted() error {
	if r.system {
		return ErrSystemRole
	}
	now := time.Now()
	r.deletedAt = &now
	r.updatedAt = now
	r.record(Deleted{RoleID: r.id, At: now})
	return nil
}

func (r *roleImpl) PullEvents() []interface{} {
	events := r.events
	r.events = nil
	return events
}

func (r *roleImpl) record(event interface{}) {
	r.events = append(r.events, event)
}

func (r *roleImpl) touch() {
	r.updatedAt = time.Now()
}

func dedupe(ids []identity.PermissionID) []identity.PermissionID {
	seen := make(map[identity.PermissionID]struct{}, len(ids))
	out := make([]identity.PermissionID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
