package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/access"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/internet"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var (
	ErrWeakPassword = serrors.NewValidation("USER_PASSWORD_WEAK", "password must be at least 8 characters")
	ErrDeleted      = serrors.NewDomain("USER_DELETED", "user is deleted")
	ErrMFAEnabled   = serrors.NewConflict("USER_MFA_ENABLED", "multi-factor authentication is already enabled")
	ErrMFADisabled  = serrors.NewNotFound("USER_MFA_DISABLED", "multi-factor authentication is not enabled")
)

const minPasswordLength = 8

// User is a platform principal. A user belongs to at most one tenant and at
// most one organization; both associations are optional.
type User interface {
	ID() identity.UserID
	Email() internet.Email
	PasswordHash() string
	Tier() access.Tier
	TenantID() identity.TenantID
	OrganizationID() identity.OrganizationID
	IsActive() bool
	IsEmailVerified() bool
	MFAEnabled() bool
	MFASecret() string
	IsDeleted() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time
	DeletedAt() *time.Time

	CheckPassword(password string) bool
	SetPassword(password string) error
	Activate() error
	Deactivate() error
	VerifyEmail() error
	EnableMFA(secret string) error
	DisableMFA() error
	AssignToTenant(id identity.TenantID) error
	AssignToOrganization(id identity.OrganizationID) error
	MarkDeleted() error

	PullEvents() []interface{}
}

type userImpl struct {
	id             identity.UserID
	email          internet.Email
	passwordHash   string
	tier           access.Tier
	tenantID       identity.TenantID
	organizationID identity.OrganizationID
	active         bool
	emailVerified  bool
	mfaEnabled     bool
	mfaSecret      string
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
	events         []interface{}
}

type Option func(*userImpl)

func WithID(id identity.UserID) Option {
	return func(u *userImpl) { u.id = id }
}

func WithPasswordHash(hash string) Option {
	return func(u *userImpl) { u.passwordHash = hash }
}

func WithTier(tier access.Tier) Option {
	return func(u *userImpl) { u.tier = tier }
}

func WithTenantID(id identity.TenantID) Option {
	return func(u *userImpl) { u.tenantID = id }
}

func WithOrganizationID(id identity.OrganizationID) Option {
	return func(u *userImpl) { u.organizationID = id }
}

func WithActive(active bool) Option {
	return func(u *userImpl) { u.active = active }
}

func WithEmailVerified(verified bool) Option {
	return func(u *userImpl) { u.emailVerified = verified }
}

func WithMFA(enabled bool, secret string) Option {
	return func(u *userImpl) {
		u.mfaEnabled = enabled
		u.mfaSecret = secret
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(u *userImpl) { u.createdAt = t }
}

func WithUpdatedAt(t time.Time) Option {
	return func(u *userImpl) { u.updatedAt = t }
}

func WithDeletedAt(t *time.Time) Option {
	return func(u *userImpl) { u.deletedAt = t }
}

// New creates a user and records a Created event. New users start inactive
// and unverified; activation and email verification are separate mutations.
func New(email internet.Email, opts ...Option) User {
	now := time.Now()
	u := &userImpl{
		id:        identity.NewUserID(),
		email:     email,
		tier:      access.TierViewer,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	u.record(Created{
		UserID:         u.id,
		Email:          u.email.Value(),
		Tier:           u.tier,
		TenantID:       u.tenantID,
		OrganizationID: u.organizationID,
		At:             u.createdAt,
	})
	return u
}

// Rehydrate rebuilds a persisted user without recording any event.
func Rehydrate(id identity.UserID, email internet.Email, opts ...Option) User {
	u := &userImpl{id: id, email: email, tier: access.TierViewer}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *userImpl) ID() identity.UserID { return u.id }
func (u *userImpl) Email() internet.Email { return u.email }
func (u *userImpl) PasswordHash() string { return u.passwordHash }
func (u *userImpl) Tier() access.Tier { return u.tier }
func (u *userImpl) TenantID() identity.TenantID { return u.tenantID }
func (u *userImpl) OrganizationID() identity.OrganizationID { return u.organizationID }
func (u *userImpl) IsActive() bool { return u.active }
func (u *userImpl) IsEmailVerified() bool { return u.emailVerified }
func (u *userImpl) MFAEnabled() bool { return u.mfaEnabled }
func (u *userImpl) MFASecret() string { return u.mfaSecret }
func (u *userImpl) IsDeleted() bool { return u.deletedAt != nil }
func (u *userImpl) CreatedAt() time.Time { return u.createdAt }
func (u *userImpl) UpdatedAt() time.Time { return u.updatedAt }
func (u *userImpl) DeletedAt() *time.Time { return u.deletedAt }

func (u *userImpl) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u *userImpl) SetPassword(password string) error {
	if err := u.ensureMutable(); err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.passwordHash = string(hash)
	u.touch()
	u.record(PasswordChanged{UserID: u.id, At: u.updatedAt})
	return nil
}

func (u *userImpl) Activate() error {
	if err := u.ensureMutable(); err != nil {
		return err
	}
	u.active = true
	u.touch()
	u.record(Activated{UserID: u.id, At: u.updatedAt})
	return nil
}

func (u *userImpl) Deactivate() error {
	if err := u.ensureMutable(); err != nil {
		return err
	}
	u.active = false
	u.touch()
	u.record(Deactivated{UserID: u.id, At: u.updatedAt})
	return nil
}

func (u *userImpl) VerifyEmail() error {
	if err := u.ensureMutable(); err != nil {
		return err
	}
	u.emailVerified = true
	u.touch()
	u.record(EmailVerified{UserID: u.id, Email: u.email.Value(), At: u.updatedAt})
	return nil
}

func (u *userImpl) EnableMFA(secret string) error {
	if err := u.ensureMutable(); err != nil {
		return err
	}
	if u.mfaEnabled {
		return ErrMFAEnabled
	}
	u.mfaEnabled = true
	u.mfaSecret = secret
	u.touch()
	u.record(MFAEnabled{UserID: u.id, At: u.updatedAt})
	return nil
}

func (u *userImpl) DisableMFA() error {
	if err := u.ensureMutable(); err != nil {
		return err
	}
	if !u.mfaEnabled {
		return ErrMFADisabled
	}
	u.mfaEnabled = false
	u.mfaSecret = ""
	u.touch()
	u.record(MFADisabled{UserID: u.id, At: u.updatedAt})
	return nil
}

func (u *userImpl) AssignToTenant(id identity.TenantID) error {
	if err := u.ensureMutable(); err != nil {
		return err
	}
	u.tenantID = id
	u.touch()
	u.record(TenantAssigned{UserID: u.id, TenantID: id, At: u.updatedAt})
	return nil
}

func (u *userImpl) AssignToOrganization(id identity.OrganizationID) error {
	if err := u.ensureMutable(); err != nil {
		return err
	}
	u.organizationID = id
	u.touch()
	u.record(OrganizationAssigned{UserID: u.id, OrganizationID: id, At: u.updatedAt})
	return nil
}

func (u *userImpl) MarkDeleted() error {
	if err := u.ensureMutable(); err != nil {
		return err
	}
	now := time.Now()
	u.deletedAt = &now
	u.updatedAt = now
	u.record(Deleted{UserID: u.id, At: now})
	return nil
}

func (u *userImpl) PullEvents() []interface{} {
	events := u.events
	u.events = nil
	return events
}

func (u *userImpl) ensureMutable() error {
	if u.deletedAt != nil {
		return ErrDeleted
	}
	return nil
}

func (u *userImpl) record(event interface{}) {
	u.events = append(u.events, event)
}

func (u *userImpl) touch() {
	u.updatedAt = time.Now()
}
