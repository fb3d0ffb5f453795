// Package identity defines the typed identifiers used across the core
// domain. Each identifier wraps a UUID behind its own type so a RoleID can
// never be passed where a UserID is expected; equality is by value.
package identity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var ErrInvalidID = serrors.NewValidation("IDENTITY_INVALID", "identifier must be a non-empty UUID")

func parse(raw string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return uuid.Nil, ErrInvalidID
	}
	value, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, ErrInvalidID.WithCause(err)
	}
	return value, nil
}

type UserID struct{ value uuid.UUID }

func NewUserID() UserID { return UserID{value: uuid.New()} }
func ParseUserID(raw string) (UserID, error) { v, err := parse(raw); return UserID{value: v}, err }
func (id UserID) String() string { return id.value.String() }
func (id UserID) IsNil() bool { return id.value == uuid.Nil }

type RoleID struct{ value uuid.UUID }

func NewRoleID() RoleID { return RoleID{value: uuid.New()} }
func ParseRoleID(raw string) (RoleID, error) { v, err := parse(raw); return RoleID{value: v}, err }
func (id RoleID) String() string { return id.value.String() }
func (id RoleID) IsNil() bool { return id.value == uuid.Nil }

// MustParseRoleID is for fixed system role IDs; it panics on malformed input.
func MustParseRoleID(raw string) RoleID { return RoleID{value: uuid.MustParse(raw)} }

type PermissionID struct{ value uuid.UUID }

func NewPermissionID() PermissionID { return PermissionID{value: uuid.New()} }
func ParsePermissionID(raw string) (PermissionID, error) {
	v, err := parse(raw)
	return PermissionID{value: v}, err
}
func (id PermissionID) String() string { return id.value.String() }
func (id PermissionID) IsNil() bool { return id.value == uuid.Nil }

// MustParsePermissionID is for registered permission constants; it panics on
// malformed input.
func MustParsePermissionID(raw string) PermissionID {
	return PermissionID{value: uuid.MustParse(raw)}
}

type TenantID struct{ value uuid.UUID }

func NewTenantID() TenantID { return TenantID{value: uuid.New()} }
func ParseTenantID(raw string) (TenantID, error) {
	v, err := parse(raw)
	return TenantID{value: v}, err
}
func (id TenantID) String() string { return id.value.String() }
func (id TenantID) IsNil() bool { return id.value == uuid.Nil }

type OrganizationID struct{ value uuid.UUID }

func NewOrganizationID() OrganizationID { return OrganizationID{value: uuid.New()} }
func ParseOrganizationID(raw string) (OrganizationID, error) {
	v, err := parse(raw)
	return OrganizationID{value: v}, err
}
func (id OrganizationID) String() string { return id.value.String() }
func (id OrganizationID) IsNil() bool { return id.value == uuid.Nil }

type WorkspaceID struct{ value uuid.UUID }

func NewWorkspaceID() WorkspaceID { return WorkspaceID{value: uuid.New()} }
func ParseWorkspaceID(raw string) (WorkspaceID, error) {
	v, err := parse(raw)
	return WorkspaceID{value: v}, err
}
func (id WorkspaceID) String() string { return id.value.String() }
func (id WorkspaceID) IsNil() bool { return id.value == uuid.Nil }

type RegionID struct{ value uuid.UUID }

func NewRegionID() RegionID { return RegionID{value: uuid.New()} }
func ParseRegionID(raw string) (RegionID, error) {
	v, err := parse(raw)
	return RegionID{value: v}, err
}
func (id RegionID) String() string { return id.value.String() }
func (id RegionID) IsNil() bool { return id.value == uuid.Nil }

type GroupID struct{ value uuid.UUID }

func NewGroupID() GroupID { return GroupID{value: uuid.New()} }
func ParseGroupID(raw string) (GroupID, error) {
	v, err := parse(raw)
	return GroupID{value: v}, err
}
func (id GroupID) String() string { return id.value.String() }
func (id GroupID) IsNil() bool { return id.value == uuid.Nil }
