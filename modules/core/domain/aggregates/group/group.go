package group

import (
	"context"
	"strings"
	"time"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrEmptyName     = serrors.NewValidation("GROUP_NAME_EMPTY", "group name must not be empty")
	ErrMemberPresent = serrors.NewConflict("GROUP_MEMBER_PRESENT", "user is already a member of the group")
	ErrMemberAbsent  = serrors.NewNotFound("GROUP_MEMBER_ABSENT", "user is not a member of the group")
)

// Group is an organization-scoped set of users.
type Group interface {
	ID() identity.GroupID
	Name() string
	Description() string
	OrganizationID() identity.OrganizationID
	MemberIDs() []identity.UserID
	HasMember(id identity.UserID) bool
	IsDeleted() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time
	DeletedAt() *time.Time

	Rename(name, description string) error
	AddMember(id identity.UserID) error
	RemoveMember(id identity.UserID) error
	MarkDeleted() error

	PullEvents() []interface{}
}

type groupImpl struct {
	id             identity.GroupID
	name           string
	description    string
	organizationID identity.OrganizationID
	memberIDs      []identity.UserID
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
	events         []interface{}
}

type Option func(*groupImpl)

func WithID(id identity.GroupID) Option {
	return func(g *groupImpl) { g.id = id }
}

func WithDescription(description string) Option {
	return func(g *groupImpl) { g.description = description }
}

func WithMemberIDs(ids []identity.UserID) Option {
	return func(g *groupImpl) { g.memberIDs = ids }
}

func WithCreatedAt(t time.Time) Option {
	return func(g *groupImpl) { g.createdAt = t }
}

func WithUpdatedAt(t time.Time) Option {
	return func(g *groupImpl) { g.updatedAt = t }
}

func WithDeletedAt(t *time.Time) Option {
	return func(g *groupImpl) { g.deletedAt = t }
}

func New(name string, organizationID identity.OrganizationID, opts ...Option) (Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	g := &groupImpl{
		id:             identity.NewGroupID(),
		name:           name,
		organizationID: organizationID,
		createdAt:      now,
		updatedAt:      now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.record(Created{GroupID: g.id, Name: g.name, OrganizationID: g.organizationID, At: g.createdAt})
	return g, nil
}

func Rehydrate(id identity.GroupID, name string, organizationID identity.OrganizationID, opts ...Option) Group {
	g := &groupImpl{id: id, name: name, organizationID: organizationID}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *groupImpl) ID() identity.GroupID { return g.id }
func (g *groupImpl) Name() string { return g.name }
func (g *groupImpl) Description() string { return g.description }
func (g *groupImpl) OrganizationID() identity.OrganizationID { return g.organizationID }
func (g *groupImpl) IsDeleted() bool { return g.deletedAt != nil }
func (g *groupImpl) CreatedAt() time.Time { return g.createdAt }
func (g *groupImpl) UpdatedAt() time.Time { return g.updatedAt }
func (g *groupImpl) DeletedAt() *time.Time { return g.deletedAt }

func (g *groupImpl) MemberIDs() []identity.UserID {
	ids := make([]identity.UserID, len(g.memberIDs))
	copy(ids, g.memberIDs)
	return ids
}

func (g *groupImpl) HasMember(id identity.UserID) bool {
	for _, existing := range g.memberIDs {
		if existing == id {
			return true
		}
	}
	return false
}

func (g *groupImpl) Rename(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	g.name = name
	g.description = description
	g.touch()
	g.record(Updated{GroupID: g.id, Name: g.name, Description: g.description, At: g.updatedAt})
	return nil
}

func (g *groupImpl) AddMember(id identity.UserID) error {
	if g.HasMember(id) {
		return ErrMemberPresent
	}
	g.memberIDs = append(g.memberIDs, id)
	g.touch()
	g.record(MemberAdded{GroupID: g.id, UserID: id, At: g.updatedAt})
	return nil
}

func (g *groupImpl) RemoveMember(id identity.UserID) error {
	for i, existing := range g.memberIDs {
		if existing == id {
			g.memberIDs = append(g.memberIDs[:i], g.memberIDs[i+1:]...)
			g.touch()
			g.record(MemberRemoved{GroupID: g.id, UserID: id, At: g.updatedAt})
			return nil
		}
	}
	return ErrMemberAbsent
}

func (g *groupImpl) MarkDeleted() error {
	now := time.Now()
	g.deletedAt = &now
	g.updatedAt = now
	g.record(Deleted{GroupID: g.id, At: now})
	return nil
}

func (g *groupImpl) PullEvents() []interface{} {
	events := g.events
	g.events = nil
	return events
}

func (g *groupImpl) record(event interface{}) {
	g.events = append(g.events, event)
}

func (g *groupImpl) touch() {
	g.updatedAt = time.Now()
}

// Events.

type Created struct {
	GroupID        identity.GroupID
	Name           string
	OrganizationID identity.OrganizationID
	At             time.Time
}

type Updated struct {
	GroupID     identity.GroupID
	Name        string
	Description string
	At          time.Time
}

type MemberAdded struct {
	GroupID identity.GroupID
	UserID  identity.UserID
	At      time.Time
}

type MemberRemoved struct {
	GroupID identity.GroupID
	UserID  identity.UserID
	At      time.Time
}

type Deleted struct {
	GroupID identity.GroupID
	At      time.Time
}

type Repository interface {
	Create(ctx context.Context, data Group) (Group, error)
	Update(ctx context.Context, data Group) (Group, error)
	GetByID(ctx context.Context, id identity.GroupID) (Group, error)
	GetByOrganization(ctx context.Context, organizationID identity.OrganizationID) ([]Group, error)
	Delete(ctx context.Context, id identity.GroupID) error
}
