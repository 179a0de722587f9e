package config

const (
	EnvPrefix = "musicstore"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "MUSICSTORE_APP_ENV"
	EnvPort     = "MUSICSTORE_APP_PORT"
	EnvDBDSN    = "MUSICSTORE_DB_DSN"
	EnvDBHost   = "MUSICSTORE_DB_HOST"
	EnvDBUser   = "MUSICSTORE_DB_USER"
	EnvDBName   = "MUSICSTORE_DB_NAME"
	EnvRedisURL = "MUSICSTORE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
