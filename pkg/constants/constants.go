package constants

type contextKey string

const (
	PoolKey     contextKey = "pool"
	TxKey       contextKey = "tx"
	LoggerKey   contextKey = "logger"
	TenantIDKey contextKey = "tenant_id"
	UserIDKey   contextKey = "user_id"
)
