package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "MACROPLATE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MACROPLATE_DB_DSN"
	EnvDBHost = "MACROPLATE_DB_HOST"
	EnvDBUser = "MACROPLATE_DB_USER"
	EnvDBName = "MACROPLATE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Cart          CartConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"MACROPLATE_APP_ENV" required:"true"`
	Port         string `envconfig:"MACROPLATE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MACROPLATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MACROPLATE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MACROPLATE_DB_DSN"`
	Driver string `envconfig:"MACROPLATE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MACROPLATE_DB_HOST"`
	LegacyPort     int    `envconfig:"MACROPLATE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MACROPLATE_DB_USER"`
	LegacyPassword string `envconfig:"MACROPLATE_DB_PASSWORD"`
	LegacyName     string `envconfig:"MACROPLATE_DB_NAME"`
	LegacySSLMode  string `envconfig:"MACROPLATE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MACROPLATE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MACROPLATE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MACROPLATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MACROPLATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MACROPLATE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MACROPLATE_REDIS_ADDR"`
	Password     string        `envconfig:"MACROPLATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MACROPLATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MACROPLATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MACROPLATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MACROPLATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MACROPLATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MACROPLATE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MACROPLATE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MACROPLATE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MACROPLATE_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MACROPLATE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MACROPLATE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MACROPLATE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MACROPLATE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MACROPLATE_ARGON_KEY_LEN" default:"32"`
}

// CartConfig tunes the redis-backed cart store. The TTL is refreshed on every
// write so an actively used cart never expires mid-session.
type CartConfig struct {
	TTL time.Duration `envconfig:"MACROPLATE_CART_TTL" default:"720h"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MACROPLATE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MACROPLATE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MACROPLATE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MACROPLATE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MACROPLATE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MACROPLATE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MACROPLATE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MACROPLATE_AUTO_MIGRATE" default:"false"`
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
