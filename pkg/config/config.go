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
	JWT          JWTConfig
	Password     PasswordConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Uploads      UploadsConfig
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
	Env          string `envconfig:"URBANLAND_APP_ENV" required:"true"`
	Port         string `envconfig:"URBANLAND_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"URBANLAND_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"URBANLAND_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"URBANLAND_DB_DSN"`
	Driver string `envconfig:"URBANLAND_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"URBANLAND_DB_HOST"`
	Port     int    `envconfig:"URBANLAND_DB_PORT" default:"5432"`
	User     string `envconfig:"URBANLAND_DB_USER"`
	Password string `envconfig:"URBANLAND_DB_PASSWORD"`
	Name     string `envconfig:"URBANLAND_DB_NAME"`
	SSLMode  string `envconfig:"URBANLAND_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"URBANLAND_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"URBANLAND_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"URBANLAND_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"URBANLAND_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"URBANLAND_REDIS_URL" required:"true"`
	Address      string        `envconfig:"URBANLAND_REDIS_ADDR"`
	Password     string        `envconfig:"URBANLAND_REDIS_PASSWORD"`
	DB           int           `envconfig:"URBANLAND_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"URBANLAND_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"URBANLAND_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"URBANLAND_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"URBANLAND_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"URBANLAND_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"URBANLAND_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"URBANLAND_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"URBANLAND_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"URBANLAND_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"URBANLAND_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"URBANLAND_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"URBANLAND_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"URBANLAND_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"URBANLAND_ARGON_KEY_LEN" default:"32"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"URBANLAND_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"URBANLAND_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"URBANLAND_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"URBANLAND_GCS_BUCKET_NAME" required:"true"`
	UploadURLExpiry   time.Duration `envconfig:"URBANLAND_GCS_UPLOAD_URL_EXPIRY" default:"15m"`
	DownloadURLExpiry time.Duration `envconfig:"URBANLAND_GCS_DOWNLOAD_URL_EXPIRY" default:"1h"`
}

type UploadsConfig struct {
	MaxUploadMB int `envconfig:"URBANLAND_MAX_UPLOAD_MB" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"URBANLAND_AUTO_MIGRATE" default:"false"`
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
	for _, env := range componentDBEnvVars {
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
