package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "SALESLEDGER"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv        = "SALESLEDGER_APP_ENV"
	EnvPort          = "SALESLEDGER_APP_PORT"
	EnvDBDSN         = "SALESLEDGER_DB_DSN"
	EnvDBHost        = "SALESLEDGER_DB_HOST"
	EnvDBUser        = "SALESLEDGER_DB_USER"
	EnvDBName        = "SALESLEDGER_DB_NAME"
	EnvWebhookSecret = "SALESLEDGER_WEBHOOK_SECRET"
	EnvAdminToken    = "SALESLEDGER_ADMIN_TOKEN"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
