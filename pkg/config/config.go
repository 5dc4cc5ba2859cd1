package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "eshop"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Storage      StorageConfig
	Media        MediaConfig
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
	Env          string   `envconfig:"ESHOP_APP_ENV" default:"dev"`
	Port         string   `envconfig:"ESHOP_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"ESHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"ESHOP_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"ESHOP_CORS_ORIGINS"`
	MaxBodyBytes int64    `envconfig:"ESHOP_MAX_BODY_BYTES" default:"1048576"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ESHOP_DB_DSN"`
	Driver string `envconfig:"ESHOP_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"ESHOP_DB_HOST"`
	Port     int    `envconfig:"ESHOP_DB_PORT" default:"5432"`
	User     string `envconfig:"ESHOP_DB_USER"`
	Password string `envconfig:"ESHOP_DB_PASSWORD"`
	Name     string `envconfig:"ESHOP_DB_NAME"`
	SSLMode  string `envconfig:"ESHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ESHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ESHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ESHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ESHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// StorageConfig describes the local blob store that backs media uploads.
type StorageConfig struct {
	UploadRoot    string `envconfig:"ESHOP_STORAGE_UPLOAD_ROOT" default:"uploads"`
	PublicBaseURL string `envconfig:"ESHOP_STORAGE_PUBLIC_BASE_URL" default:"/uploads"`
}

type MediaConfig struct {
	MaxUploadBytes int64 `envconfig:"ESHOP_MEDIA_MAX_UPLOAD_BYTES" default:"10485760"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ESHOP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"ESHOP_DB_HOST": db.Host,
		"ESHOP_DB_USER": db.User,
		"ESHOP_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either ESHOP_DB_DSN or %s are required", strings.Join(missing, ", "))
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
