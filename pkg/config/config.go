package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Webhook      WebhookConfig
	Admin        AdminConfig
	Discord      DiscordConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SALESLEDGER_APP_ENV" required:"true"`
	Port         string `envconfig:"SALESLEDGER_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SALESLEDGER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SALESLEDGER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SALESLEDGER_DB_DSN"`
	Driver string `envconfig:"SALESLEDGER_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SALESLEDGER_DB_HOST"`
	Port     int    `envconfig:"SALESLEDGER_DB_PORT" default:"5432"`
	User     string `envconfig:"SALESLEDGER_DB_USER"`
	Password string `envconfig:"SALESLEDGER_DB_PASSWORD"`
	Name     string `envconfig:"SALESLEDGER_DB_NAME"`
	SSLMode  string `envconfig:"SALESLEDGER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SALESLEDGER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SALESLEDGER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SALESLEDGER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SALESLEDGER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// WebhookConfig carries the shared secret that inbound sale
// notifications must present.
type WebhookConfig struct {
	Secret string `envconfig:"SALESLEDGER_WEBHOOK_SECRET" required:"true"`
}

// AdminConfig guards the admin HTTP surface (rate changes).
type AdminConfig struct {
	Token string `envconfig:"SALESLEDGER_ADMIN_TOKEN"`
}

type DiscordConfig struct {
	BotToken    string `envconfig:"SALESLEDGER_DISCORD_BOT_TOKEN"`
	ChannelID   string `envconfig:"SALESLEDGER_DISCORD_CHANNEL_ID"`
	AdminRoleID string `envconfig:"SALESLEDGER_DISCORD_ADMIN_ROLE_ID"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SALESLEDGER_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SALESLEDGER_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
