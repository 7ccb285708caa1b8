package config

const (
	EnvPrefix = "medledger"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "MEDLEDGER_DB_DSN"
	EnvDBHost = "MEDLEDGER_DB_HOST"
	EnvDBUser = "MEDLEDGER_DB_USER"
	EnvDBName = "MEDLEDGER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
