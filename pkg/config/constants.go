package config

// EnvPrefix scopes every environment variable this service reads.
const EnvPrefix = "URBANLAND"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "URBANLAND_DB_DSN"
	EnvDBHost = "URBANLAND_DB_HOST"
	EnvDBUser = "URBANLAND_DB_USER"
	EnvDBName = "URBANLAND_DB_NAME"
)

var componentDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
