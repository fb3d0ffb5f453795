package composables

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/domain/value_objects/identity"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/constants"
)

var (
	ErrNoTenantID = errors.New("no tenant ID found in context")
	ErrNoUserID   = errors.New("no user ID found in context")
)

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the request-scoped logger, or a discard-free default
// entry so callers never have to nil-check before logging.
func UseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithTenantID(ctx context.Context, id identity.TenantID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, id)
}

func UseTenantID(ctx context.Context) (identity.TenantID, error) {
	id, ok := ctx.Value(constants.TenantIDKey).(identity.TenantID)
	if !ok {
		return identity.TenantID{}, ErrNoTenantID
	}
	return id, nil
}

func WithUserID(ctx context.Context, id identity.UserID) context.Context {
	return context.WithValue(ctx, constants.UserIDKey, id)
}

func UseUserID(ctx context.Context) (identity.UserID, error) {
	id, ok := ctx.Value(constants.UserIDKey).(identity.UserID)
	if !ok {
		return identity.UserID{}, ErrNoUserID
	}
	return id, nil
}
