package tenant

import (
	"context"
	"strings"
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var ErrEmptyName = serrors.NewValidation("TENANT_NAME_EMPTY", "tenant name must not be empty")

// Tenant is workspace-scoped and is the unit users are associated with.
type Tenant struct {
	id          identity.TenantID
	workspaceID identity.WorkspaceID
	name        string
	domain      string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
	events      []interface{}
}

type Option func(*Tenant)

func WithID(id identity.TenantID) Option {
	return func(t *Tenant) { t.id = id }
}

func WithDomain(domain string) Option {
	return func(t *Tenant) { t.domain = domain }
}

func WithIsActive(isActive bool) Option {
	return func(t *Tenant) { t.isActive = isActive }
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(t *Tenant) { t.createdAt = createdAt }
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(t *Tenant) { t.updatedAt = updatedAt }
}

func WithDeletedAt(deletedAt *time.Time) Option {
	return func(t *Tenant) { t.deletedAt = deletedAt }
}

func New(name string, workspaceID identity.WorkspaceID, opts ...Option) (*Tenant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	t := &Tenant{
		id:          identity.NewTenantID(),
		workspaceID: workspaceID,
		name:        name,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.events = append(t.events, Created{TenantID: t.id, WorkspaceID: t.workspaceID, Name: t.name, At: t.createdAt})
	return t, nil
}

func Rehydrate(id identity.TenantID, name string, workspaceID identity.WorkspaceID, opts ...Option) *Tenant {
	t := &Tenant{id: id, name: name, workspaceID: workspaceID}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tenant) ID() identity.TenantID { return t.id }
func (t *Tenant) WorkspaceID() identity.WorkspaceID { return t.workspaceID }
func (t *Tenant) Name() string { return t.name }
func (t *Tenant) Domain() string { return t.domain }
func (t *Tenant) IsActive() bool { return t.isActive }
func (t *Tenant) IsDeleted() bool { return t.deletedAt != nil }
func (t *Tenant) CreatedAt() time.Time { return t.createdAt }
func (t *Tenant) UpdatedAt() time.Time { return t.updatedAt }
func (t *Tenant) DeletedAt() *time.Time { return t.deletedAt }

func (t *Tenant) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	t.name = name
	t.updatedAt = time.Now()
	t.events = append(t.events, Updated{TenantID: t.id, Name: t.name, At: t.updatedAt})
	return nil
}

func (t *Tenant) SetDomain(domain string) {
	t.domain = domain
	t.updatedAt = time.Now()
	t.events = append(t.events, Updated{TenantID: t.id, Name: t.name, At: t.updatedAt})
}

func (t *Tenant) MarkDeleted() {
	now := time.Now()
	t.deletedAt = &now
	t.updatedAt = now
	t.events = append(t.events, Deleted{TenantID: t.id, At: now})
}

func (t *Tenant) PullEvents() []interface{} {
	events := t.events
	t.events = nil
	return events
}

type Created struct {
	TenantID    identity.TenantID
	WorkspaceID identity.WorkspaceID
	Name        string
	At          time.Time
}

type Updated struct {
	TenantID identity.TenantID
	Name     string
	At       time.Time
}

type Deleted struct {
	TenantID identity.TenantID
	At       time.Time
}

type Repository interface {
	Create(ctx context.Context, data *Tenant) (*Tenant, error)
	Update(ctx context.Context, data *Tenant) (*Tenant, error)
	GetByID(ctx context.Context, id identity.TenantID) (*Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)
	GetByWorkspace(ctx context.Context, workspaceID identity.WorkspaceID) ([]*Tenant, error)
	Delete(ctx context.Context, id identity.TenantID) error
}
