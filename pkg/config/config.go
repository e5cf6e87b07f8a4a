package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BOOSTACART"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv   = "BOOSTACART_APP_ENV"
	EnvPort     = "BOOSTACART_APP_PORT"
	EnvDBDSN    = "BOOSTACART_DB_DSN"
	EnvDBHost   = "BOOSTACART_DB_HOST"
	EnvDBUser   = "BOOSTACART_DB_USER"
	EnvDBName   = "BOOSTACART_DB_NAME"
	EnvRedisURL = "BOOSTACART_REDIS_URL"

	EnvAdminUsername     = "BOOSTACART_ADMIN_USERNAME"
	EnvAdminPasswordHash = "BOOSTACART_ADMIN_PASSWORD_HASH"
	EnvSessionSecret     = "BOOSTACART_SESSION_SECRET"
	EnvSessionIssuer     = "BOOSTACART_SESSION_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Admin        AdminConfig
	Password     PasswordConfig
	Throttle     ThrottleConfig
	Widget       WidgetConfig
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
	Env          string `envconfig:"BOOSTACART_APP_ENV" required:"true"`
	Port         string `envconfig:"BOOSTACART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BOOSTACART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOOSTACART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BOOSTACART_DB_DSN"`
	Driver string `envconfig:"BOOSTACART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BOOSTACART_DB_HOST"`
	LegacyPort     int    `envconfig:"BOOSTACART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BOOSTACART_DB_USER"`
	LegacyPassword string `envconfig:"BOOSTACART_DB_PASSWORD"`
	LegacyName     string `envconfig:"BOOSTACART_DB_NAME"`
	LegacySSLMode  string `envconfig:"BOOSTACART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BOOSTACART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BOOSTACART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BOOSTACART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BOOSTACART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BOOSTACART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BOOSTACART_REDIS_ADDR"`
	Password     string        `envconfig:"BOOSTACART_REDIS_PASSWORD"`
	DB           int           `envconfig:"BOOSTACART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BOOSTACART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BOOSTACART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BOOSTACART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BOOSTACART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BOOSTACART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AdminConfig holds the single operator credential plus the session JWT settings.
type AdminConfig struct {
	Username          string `envconfig:"BOOSTACART_ADMIN_USERNAME" required:"true"`
	PasswordHash      string `envconfig:"BOOSTACART_ADMIN_PASSWORD_HASH" required:"true"`
	SessionSecret     string `envconfig:"BOOSTACART_SESSION_SECRET" required:"true"`
	SessionIssuer     string `envconfig:"BOOSTACART_SESSION_ISSUER" default:"boostacart"`
	SessionTTLMinutes int    `envconfig:"BOOSTACART_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the admin session lifetime.
func (a AdminConfig) SessionTTL() time.Duration {
	if a.SessionTTLMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BOOSTACART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BOOSTACART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BOOSTACART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BOOSTACART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BOOSTACART_ARGON_KEY_LEN" default:"32"`
}

// ThrottleConfig covers the admin login throttle and the public submit limiter.
type ThrottleConfig struct {
	LoginWindow   time.Duration `envconfig:"BOOSTACART_THROTTLE_LOGIN_WINDOW" default:"15m"`
	LoginIPLimit  int           `envconfig:"BOOSTACART_THROTTLE_LOGIN_IP_LIMIT" default:"5"`
	SubmitWindow  time.Duration `envconfig:"BOOSTACART_THROTTLE_SUBMIT_WINDOW" default:"1m"`
	SubmitIPLimit int           `envconfig:"BOOSTACART_THROTTLE_SUBMIT_IP_LIMIT" default:"30"`
}

// WidgetConfig carries submit-path knobs for the embedded widget.
type WidgetConfig struct {
	IdempotencyTTL time.Duration `envconfig:"BOOSTACART_WIDGET_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BOOSTACART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
