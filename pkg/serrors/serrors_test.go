package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var errSample = serrors.NewNotFound("ROLE_NOT_FOUND", "role not found")

func TestIs_ComparesByCode(t *testing.T) {
	assert.ErrorIs(t, errSample, serrors.NewNotFound("ROLE_NOT_FOUND", "different message"))
	assert.NotErrorIs(t, errSample, serrors.NewNotFound("USER_NOT_FOUND", "user not found"))
}

func TestWithCause(t *testing.T) {
	cause := errors.New("no rows in result set")
	wrapped := errSample.WithCause(cause)

	assert.ErrorIs(t, wrapped, errSample, "identity survives wrapping")
	assert.ErrorIs(t, wrapped, cause, "cause is reachable through Unwrap")
	assert.Contains(t, wrapped.Error(), "ROLE_NOT_FOUND")
	assert.Contains(t, wrapped.Error(), "no rows in result set")

	assert.Nil(t, errSample.Unwrap(), "WithCause must not mutate the sentinel")
}

func TestWithMessagef(t *testing.T) {
	custom := errSample.WithMessagef("role %q not found", "auditor")
	assert.ErrorIs(t, custom, errSample)
	assert.Equal(t, `role "auditor" not found`, custom.Message)
}

func TestKindOf(t *testing.T) {
	require.Equal(t, serrors.KindValidation, serrors.KindOf(serrors.NewValidation("C", "m")))
	require.Equal(t, serrors.KindNotFound, serrors.KindOf(errSample))
	require.Equal(t, serrors.KindConflict, serrors.KindOf(serrors.NewConflict("C", "m")))
	require.Equal(t, serrors.KindDomain, serrors.KindOf(serrors.NewDomain("C", "m")))
	require.Equal(t, serrors.Kind(""), serrors.KindOf(errors.New("plain")))
	require.Equal(t, serrors.Kind(""), serrors.KindOf(nil))
}

func TestKindOf_SeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading role: %w", errSample)
	assert.True(t, serrors.IsNotFound(wrapped))
	assert.False(t, serrors.IsConflict(wrapped))
}
