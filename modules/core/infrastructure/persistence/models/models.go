// Package models holds the database row shapes for the core module. Mapping
// to and from domain entities lives in the persistence mappers.
package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID             string
	Email          string
	PasswordHash   string
	Tier           string
	TenantID       sql.NullString
	OrganizationID sql.NullString
	IsActive       bool
	EmailVerified  bool
	MFAEnabled     bool
	MFASecret      sql.NullString
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      sql.NullTime
}

type Role struct {
	ID          string
	TenantID    sql.NullString
	Name        string
	Description string
	IsSystem    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   sql.NullTime
}

type Permission struct {
	ID          string
	Name        string
	Resource    string
	Action      string
	Description string
}

type Group struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      sql.NullTime
}

type Tenant struct {
	ID          string
	WorkspaceID string
	Name        string
	Domain      sql.NullString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   sql.NullTime
}

type Organization struct {
	ID        string
	RegionID  string
	Name      string
	Slug      sql.NullString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt sql.NullTime
}

type Workspace struct {
	ID             string
	OrganizationID string
	Name           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      sql.NullTime
}

type Region struct {
	ID        string
	Name      string
	Code      sql.NullString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt sql.NullTime
}
