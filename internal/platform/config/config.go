package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server captures process level configuration for both the HTTP server and
// the admin CLI.
type Server struct {
	Addr             string `env:"GOVPUB_ADDR" envDefault:":8080"`
	EnvironmentLabel string `env:"GOVPUB_ENVIRONMENT_LABEL" envDefault:"development"`
	JWTSigningKey    string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"json"`
	PublicHost       string `env:"GOVPUB_PUBLIC_HOST" envDefault:"https://www.gov.uk"`
	AdminHost        string `env:"GOVPUB_ADMIN_HOST" envDefault:"https://whitehall-admin.publishing.service.gov.uk"`

	Database      DatabaseConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	PublishingAPI PublishingAPIConfig
	Tracing       TracingConfig

	ForcePublishLogPath string        `env:"FORCE_PUBLISH_LOG_PATH" envDefault:"log/force_publish.log"`
	TopicCacheTTL       time.Duration `env:"TOPIC_CACHE_TTL" envDefault:"5m"`
	JobPollInterval     time.Duration `env:"JOB_POLL_INTERVAL" envDefault:"1s"`
	AttachmentCacheDir  string        `env:"ATTACHMENT_CACHE_DIR" envDefault:"tmp/attachment-cache"`
}

// DatabaseConfig configures the content store. An empty URL selects the
// in-memory store.
type DatabaseConfig struct {
	URL          string        `env:"DATABASE_URL"`
	MaxOpenConns int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLife  time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig configures the job queue and topic cache. An empty URL selects
// in-process fallbacks.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	QueueKey     string        `env:"REDIS_QUEUE_KEY" envDefault:"govpub:jobs"`
}

// KafkaConfig configures the search index producer.
type KafkaConfig struct {
	Brokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	SearchTopic string   `env:"KAFKA_SEARCH_TOPIC" envDefault:"search.documents"`
}

// PublishingAPIConfig configures the downstream content API client.
type PublishingAPIConfig struct {
	URL         string        `env:"PUBLISHING_API_URL" envDefault:"http://publishing-api.dev.gov.uk"`
	BearerToken string        `env:"PUBLISHING_API_BEARER_TOKEN" envDefault:"example"`
	Timeout     time.Duration `env:"PUBLISHING_API_TIMEOUT" envDefault:"10s"`
	AppName     string        `env:"PUBLISHING_APP_NAME" envDefault:"whitehall"`
}

// TracingConfig enables OTLP trace export when an endpoint is set.
type TracingConfig struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"govpub"`
}

// Load reads an optional .env file and parses the environment.
func Load() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses configuration from environment variables only.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
