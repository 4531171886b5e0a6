package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "WIGMATCH"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	GCP          GCPConfig
	GCS          GCSConfig
	PubSub       PubSubConfig
	Matching     MatchingConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlags
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Matching.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WIGMATCH_APP_ENV" required:"true"`
	Port         string `envconfig:"WIGMATCH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WIGMATCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WIGMATCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"WIGMATCH_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"WIGMATCH_DB_DSN"`
	Driver string `envconfig:"WIGMATCH_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"WIGMATCH_DB_HOST"`
	Port     int    `envconfig:"WIGMATCH_DB_PORT" default:"5432"`
	User     string `envconfig:"WIGMATCH_DB_USER"`
	Password string `envconfig:"WIGMATCH_DB_PASSWORD"`
	Name     string `envconfig:"WIGMATCH_DB_NAME"`
	SSLMode  string `envconfig:"WIGMATCH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WIGMATCH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WIGMATCH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WIGMATCH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WIGMATCH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name components are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"WIGMATCH_REDIS_URL"`
	Address      string        `envconfig:"WIGMATCH_REDIS_ADDR"`
	Password     string        `envconfig:"WIGMATCH_REDIS_PASSWORD"`
	DB           int           `envconfig:"WIGMATCH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WIGMATCH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WIGMATCH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WIGMATCH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WIGMATCH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WIGMATCH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlags struct {
	AutoMigrate bool `envconfig:"WIGMATCH_FEATURE_AUTO_MIGRATE" default:"false"`
}

// RateLimitConfig throttles recommendation traffic per tenant. A zero limit
// or window disables the middleware.
type RateLimitConfig struct {
	Window      time.Duration `envconfig:"WIGMATCH_RATE_LIMIT_WINDOW" default:"1m"`
	TenantLimit int           `envconfig:"WIGMATCH_RATE_LIMIT_TENANT" default:"120"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"WIGMATCH_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"WIGMATCH_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
}

// GCSConfig drives signed variant image URLs. When disabled the catalog
// returns bare object keys and the storefront resolves them itself.
type GCSConfig struct {
	Enabled      bool          `envconfig:"WIGMATCH_GCS_ENABLED" default:"false"`
	BucketName   string        `envconfig:"WIGMATCH_GCS_BUCKET"`
	SignedURLTTL time.Duration `envconfig:"WIGMATCH_GCS_SIGNED_URL_TTL" default:"15m"`
}

type PubSubConfig struct {
	Enabled                bool   `envconfig:"WIGMATCH_PUBSUB_ENABLED" default:"false"`
	RecommendationTopic    string `envconfig:"WIGMATCH_PUBSUB_RECOMMENDATION_TOPIC" default:"recommendation-events"`
	EngagementSubscription string `envconfig:"WIGMATCH_PUBSUB_ENGAGEMENT_SUBSCRIPTION" default:"variant-engagement-worker"`
}

// MatchingConfig carries the scoring pipeline tunables. The values here are
// operational knobs; per-tenant weights and family centroids live in the
// database and are validated by internal/matchconfig.
type MatchingConfig struct {
	// DeltaEThreshold is the ΔE at which a same-family shade contributes zero
	// color score. ΔE below 5 keeps the score at or above 0.8.
	DeltaEThreshold float64 `envconfig:"WIGMATCH_MATCH_DELTA_E_THRESHOLD" default:"25"`
	// DefaultLimit is the result count when the request does not specify one.
	DefaultLimit int `envconfig:"WIGMATCH_MATCH_DEFAULT_LIMIT" default:"12"`
	// MaxLimit caps the requested result count.
	MaxLimit int `envconfig:"WIGMATCH_MATCH_MAX_LIMIT" default:"50"`
	// RetrievalTimeout is the per-request deadline for the partitioned
	// candidate retrieval fan-out.
	RetrievalTimeout time.Duration `envconfig:"WIGMATCH_MATCH_RETRIEVAL_TIMEOUT" default:"800ms"`
	// MaxPartitionWorkers bounds the retrieval worker pool.
	MaxPartitionWorkers int `envconfig:"WIGMATCH_MATCH_MAX_PARTITION_WORKERS" default:"4"`
	// PartitionLimit bounds how many variants a single partition may return.
	PartitionLimit int `envconfig:"WIGMATCH_MATCH_PARTITION_LIMIT" default:"200"`
	// TopMatchFloor is the minimum total score for the first result to carry
	// the top match badge.
	TopMatchFloor float64 `envconfig:"WIGMATCH_MATCH_TOP_MATCH_FLOOR" default:"0.5"`
	// SoldOutAvailabilityScore keeps sold-out items rankable without letting
	// them beat in-stock equivalents.
	SoldOutAvailabilityScore float64 `envconfig:"WIGMATCH_MATCH_SOLD_OUT_AVAILABILITY" default:"0.2"`
}

func (m *MatchingConfig) validate() error {
	if m.DeltaEThreshold <= 0 {
		return fmt.Errorf("delta E threshold must be positive, got %v", m.DeltaEThreshold)
	}
	if m.DefaultLimit <= 0 || m.MaxLimit <= 0 || m.DefaultLimit > m.MaxLimit {
		return fmt.Errorf("invalid result limits: default=%d max=%d", m.DefaultLimit, m.MaxLimit)
	}
	if m.MaxPartitionWorkers <= 0 {
		return fmt.Errorf("max partition workers must be positive, got %d", m.MaxPartitionWorkers)
	}
	if m.PartitionLimit <= 0 {
		return fmt.Errorf("partition limit must be positive, got %d", m.PartitionLimit)
	}
	if m.SoldOutAvailabilityScore < 0 || m.SoldOutAvailabilityScore > 1 {
		return fmt.Errorf("sold-out availability score must be in [0,1], got %v", m.SoldOutAvailabilityScore)
	}
	return nil
}
