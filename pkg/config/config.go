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
	Redis        RedisConfig
	Session      SessionConfig
	Catalog      CatalogConfig
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
	Env          string `envconfig:"MUSICSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"MUSICSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MUSICSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MUSICSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MUSICSTORE_DB_DSN"`
	Driver string `envconfig:"MUSICSTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MUSICSTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"MUSICSTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MUSICSTORE_DB_USER"`
	LegacyPassword string `envconfig:"MUSICSTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"MUSICSTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"MUSICSTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MUSICSTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MUSICSTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MUSICSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MUSICSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MUSICSTORE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MUSICSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"MUSICSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MUSICSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MUSICSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MUSICSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MUSICSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MUSICSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MUSICSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"MUSICSTORE_SESSION_COOKIE" default:"musicstore_session"`
	TTL        time.Duration `envconfig:"MUSICSTORE_SESSION_TTL" default:"168h"`
	Secure     bool          `envconfig:"MUSICSTORE_SESSION_SECURE" default:"false"`
}

type CatalogConfig struct {
	GenreMenuLimit int           `envconfig:"MUSICSTORE_CATALOG_GENRE_MENU_LIMIT" default:"9"`
	TopSellerLimit int           `envconfig:"MUSICSTORE_CATALOG_TOP_SELLER_LIMIT" default:"6"`
	AlbumDetailTTL time.Duration `envconfig:"MUSICSTORE_CATALOG_ALBUM_DETAIL_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MUSICSTORE_AUTO_MIGRATE" default:"false"`
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
