package internet

import (
	"net/mail"
	"strings"

	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var ErrInvalidEmail = serrors.NewValidation("EMAIL_INVALID", "invalid email address")

// Email is a normalized email address: trimmed and lowercased so uniqueness
// checks compare the canonical form.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return Email{}, ErrInvalidEmail.WithCause(err)
	}
	return Email{value: normalized}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) Domain() string {
	at := strings.LastIndex(e.value, "@")
	if at < 0 {
		return ""
	}
	return e.value[at+1:]
}
