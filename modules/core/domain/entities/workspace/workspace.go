package workspace

import (
	"context"
	"strings"
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var ErrEmptyName = serrors.NewValidation("WORKSPACE_NAME_EMPTY", "workspace name must not be empty")

// Workspace is organization-scoped and owns tenants.
type Workspace struct {
	id             identity.WorkspaceID
	organizationID identity.OrganizationID
	name           string
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
	events         []interface{}
}

type Option func(*Workspace)

func WithID(id identity.WorkspaceID) Option {
	return func(w *Workspace) { w.id = id }
}

func WithIsActive(isActive bool) Option {
	return func(w *Workspace) { w.isActive = isActive }
}

func WithCreatedAt(t time.Time) Option {
	return func(w *Workspace) { w.createdAt = t }
}

func WithUpdatedAt(t time.Time) Option {
	return func(w *Workspace) { w.updatedAt = t }
}

func WithDeletedAt(t *time.Time) Option {
	return func(w *Workspace) { w.deletedAt = t }
}

func New(name string, organizationID identity.OrganizationID, opts ...Option) (*Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	w := &Workspace{
		id:             identity.NewWorkspaceID(),
		organizationID: organizationID,
		name:           name,
		isActive:       true,
		createdAt:      now,
		updatedAt:      now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.events = append(w.events, Created{WorkspaceID: w.id, OrganizationID: w.organizationID, Name: w.name, At: w.createdAt})
	return w, nil
}

func Rehydrate(id identity.WorkspaceID, name string, organizationID identity.OrganizationID, opts ...Option) *Workspace {
	w := &Workspace{id: id, name: name, organizationID: organizationID}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) ID() identity.WorkspaceID { return w.id }
func (w *Workspace) OrganizationID() identity.OrganizationID { return w.organizationID }
func (w *Workspace) Name() string { return w.name }
func (w *Workspace) IsActive() bool { return w.isActive }
func (w *Workspace) IsDeleted() bool { return w.deletedAt != nil }
func (w *Workspace) CreatedAt() time.Time { return w.createdAt }
func (w *Workspace) UpdatedAt() time.Time { return w.updatedAt }
func (w *Workspace) DeletedAt() *time.Time { return w.deletedAt }

func (w *Workspace) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	w.name = name
	w.updatedAt = time.Now()
	w.events = append(w.events, Updated{WorkspaceID: w.id, Name: w.name, At: w.updatedAt})
	return nil
}

func (w *Workspace) MarkDeleted() {
	now := time.Now()
	w.deletedAt = &now
	w.updatedAt = now
	w.events = append(w.events, Deleted{WorkspaceID: w.id, At: now})
}

func (w *Workspace) PullEvents() []interface{} {
	events := w.events
	w.events = nil
	return events
}

type Created struct {
	WorkspaceID    identity.WorkspaceID
	OrganizationID identity.OrganizationID
	Name           string
	At             time.Time
}

type Updated struct {
	WorkspaceID identity.WorkspaceID
	Name        string
	At          time.Time
}

type Deleted struct {
	WorkspaceID identity.WorkspaceID
	At          time.Time
}

type Repository interface {
	Create(ctx context.Context, data *Workspace) (*Workspace, error)
	Update(ctx context.Context, data *Workspace) (*Workspace, error)
	GetByID(ctx context.Context, id identity.WorkspaceID) (*Workspace, error)
	GetByOrganization(ctx context.Context, organizationID identity.OrganizationID) ([]*Workspace, error)
	Delete(ctx context.Context, id identity.WorkspaceID) error
}
