package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable consumed by the app.
	EnvPrefix = "PRIMEHUB"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "PRIMEHUB_DB_DSN"
	EnvDBHost = "PRIMEHUB_DB_HOST"
	EnvDBUser = "PRIMEHUB_DB_USER"
	EnvDBName = "PRIMEHUB_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
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
	Env          string `envconfig:"PRIMEHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"PRIMEHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PRIMEHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRIMEHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PRIMEHUB_DB_DSN"`
	Driver string `envconfig:"PRIMEHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRIMEHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"PRIMEHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRIMEHUB_DB_USER"`
	LegacyPassword string `envconfig:"PRIMEHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRIMEHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRIMEHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRIMEHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRIMEHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRIMEHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRIMEHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"PRIMEHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRIMEHUB_REDIS_ADDR"`
	Password     string        `envconfig:"PRIMEHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRIMEHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRIMEHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRIMEHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRIMEHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRIMEHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRIMEHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PRIMEHUB_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PRIMEHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PRIMEHUB_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"PRIMEHUB_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PRIMEHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PRIMEHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PRIMEHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PRIMEHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PRIMEHUB_ARGON_KEY_LEN" default:"32"`
	MinLength        int `envconfig:"PRIMEHUB_PASSWORD_MIN_LENGTH" default:"6"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PRIMEHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PRIMEHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PRIMEHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow       time.Duration `envconfig:"PRIMEHUB_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit   int           `envconfig:"PRIMEHUB_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit      int           `envconfig:"PRIMEHUB_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PRIMEHUB_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"PRIMEHUB_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"PRIMEHUB_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"PRIMEHUB_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"PRIMEHUB_GCS_BUCKET_NAME"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"PRIMEHUB_MAX_UPLOAD_MB" default:"20"`
}

// MaxUploadBytes converts the configured upload ceiling to bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	if m.MaxUploadMB <= 0 {
		return 0
	}
	return int64(m.MaxUploadMB) << 20
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.IsSQLite() {
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
