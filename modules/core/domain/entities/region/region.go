package region

import (
	"context"
	"strings"
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var ErrEmptyName = serrors.NewValidation("REGION_NAME_EMPTY", "region name must not be empty")

// Region is the top of the tenancy hierarchy.
type Region struct {
	id        identity.RegionID
	name      string
	code      string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
	events    []interface{}
}

type Option func(*Region)

func WithID(id identity.RegionID) Option {
	return func(r *Region) { r.id = id }
}

func WithCode(code string) Option {
	return func(r *Region) { r.code = code }
}

func WithIsActive(isActive bool) Option {
	return func(r *Region) { r.isActive = isActive }
}

func WithCreatedAt(t time.Time) Option {
	return func(r *Region) { r.createdAt = t }
}

func WithUpdatedAt(t time.Time) Option {
	return func(r *Region) { r.updatedAt = t }
}

func WithDeletedAt(t *time.Time) Option {
	return func(r *Region) { r.deletedAt = t }
}

func New(name string, opts ...Option) (*Region, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	r := &Region{
		id:        identity.NewRegionID(),
		name:      name,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.events = append(r.events, Created{RegionID: r.id, Name: r.name, Code: r.code, At: r.createdAt})
	return r, nil
}

func Rehydrate(id identity.RegionID, name string, opts ...Option) *Region {
	r := &Region{id: id, name: name}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Region) ID() identity.RegionID { return r.id }
func (r *Region) Name() string { return r.name }
func (r *Region) Code() string { return r.code }
func (r *Region) IsActive() bool { return r.isActive }
func (r *Region) IsDeleted() bool { return r.deletedAt != nil }
func (r *Region) CreatedAt() time.Time { return r.createdAt }
func (r *Region) UpdatedAt() time.Time { return r.updatedAt }
func (r *Region) DeletedAt() *time.Time { return r.deletedAt }

func (r *Region) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	r.name = name
	r.updatedAt = time.Now()
	r.events = append(r.events, Updated{RegionID: r.id, Name: r.name, At: r.updatedAt})
	return nil
}

func (r *Region) MarkDeleted() {
	now := time.Now()
	r.deletedAt = &now
	r.updatedAt = now
	r.events = append(r.events, Deleted{RegionID: r.id, At: now})
}

func (r *Region) PullEvents() []interface{} {
	events := r.events
	r.events = nil
	return events
}

type Created struct {
	RegionID identity.RegionID
	Name     string
	Code     string
	At       time.Time
}

type Updated struct {
	RegionID identity.RegionID
	Name     string
	At       time.Time
}

type Deleted struct {
	RegionID identity.RegionID
	At       time.Time
}

type Repository interface {
	Create(ctx context.Context, data *Region) (*Region, error)
	Update(ctx context.Context, data *Region) (*Region, error)
	GetByID(ctx context.Context, id identity.RegionID) (*Region, error)
	GetByCode(ctx context.Context, code string) (*Region, error)
	GetAll(ctx context.Context) ([]*Region, error)
	Delete(ctx context.Context, id identity.RegionID) error
}
