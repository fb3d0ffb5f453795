package organization

import (
	"context"
	"strings"
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var ErrEmptyName = serrors.NewValidation("ORGANIZATION_NAME_EMPTY", "organization name must not be empty")

// Organization is region-scoped and owns workspaces and groups.
type Organization struct {
	id        identity.OrganizationID
	regionID  identity.RegionID
	name      string
	slug      string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
	events    []interface{}
}

type Option func(*Organization)

func WithID(id identity.OrganizationID) Option {
	return func(o *Organization) { o.id = id }
}

func WithSlug(slug string) Option {
	return func(o *Organization) { o.slug = slug }
}

func WithIsActive(isActive bool) Option {
	return func(o *Organization) { o.isActive = isActive }
}

func WithCreatedAt(t time.Time) Option {
	return func(o *Organization) { o.createdAt = t }
}

func WithUpdatedAt(t time.Time) Option {
	return func(o *Organization) { o.updatedAt = t }
}

func WithDeletedAt(t *time.Time) Option {
	return func(o *Organization) { o.deletedAt = t }
}

func New(name string, regionID identity.RegionID, opts ...Option) (*Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	o := &Organization{
		id:        identity.NewOrganizationID(),
		regionID:  regionID,
		name:      name,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.events = append(o.events, Created{OrganizationID: o.id, RegionID: o.regionID, Name: o.name, At: o.createdAt})
	return o, nil
}

func Rehydrate(id identity.OrganizationID, name string, regionID identity.RegionID, opts ...Option) *Organization {
	o := &Organization{id: id, name: name, regionID: regionID}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Organization) ID() identity.OrganizationID { return o.id }
func (o *Organization) RegionID() identity.RegionID { return o.regionID }
func (o *Organization) Name() string { return o.name }
func (o *Organization) Slug() string { return o.slug }
func (o *Organization) IsActive() bool { return o.isActive }
func (o *Organization) IsDeleted() bool { return o.deletedAt != nil }
func (o *Organization) CreatedAt() time.Time { return o.createdAt }
func (o *Organization) UpdatedAt() time.Time { return o.updatedAt }
func (o *Organization) DeletedAt() *time.Time { return o.deletedAt }

func (o *Organization) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	o.name = name
	o.updatedAt = time.Now()
	o.events = append(o.events, Updated{OrganizationID: o.id, Name: o.name, At: o.updatedAt})
	return nil
}

func (o *Organization) MarkDeleted() {
	now := time.Now()
	o.deletedAt = &now
	o.updatedAt = now
	o.events = append(o.events, Deleted{OrganizationID: o.id, At: now})
}

func (o *Organization) PullEvents() []interface{} {
	events := o.events
	o.events = nil
	return events
}

type Created struct {
	OrganizationID identity.OrganizationID
	RegionID       identity.RegionID
	Name           string
	At             time.Time
}

type Updated struct {
	OrganizationID identity.OrganizationID
	Name           string
	At             time.Time
}

type Deleted struct {
	OrganizationID identity.OrganizationID
	At             time.Time
}

type Repository interface {
	Create(ctx context.Context, data *Organization) (*Organization, error)
	Update(ctx context.Context, data *Organization) (*Organization, error)
	GetByID(ctx context.Context, id identity.OrganizationID) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	GetByRegion(ctx context.Context, regionID identity.RegionID) ([]*Organization, error)
	Delete(ctx context.Context, id identity.OrganizationID) error
}
