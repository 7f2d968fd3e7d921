package config

import (
	"time"

	"github.com/joho/godotenv"
)

type MongoConfig struct {
	URI                    string
	Database               string
	Timeout                time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type RabbitMQConfig struct {
	URL             string
	MaxRetries      int
	RetryDelay      time.Duration
	ExchangeConfigs []ExchangeConfig
}

type ExchangeConfig struct {
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type OutboxConfig struct {
	BatchSize int
	Interval  time.Duration
}

type HTTPConfig struct {
	Port          string
	BindInterface string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	AdminUsername string
	AdminPassword string
}

type IdempotencyConfig struct {
	TTL          time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type RateLimitConfig struct {
	LoginPerMinute  int
	ImportPerMinute int
}

type ImportConfig struct {
	MaxUploadBytes int64
}

type Config struct {
	Mongo       MongoConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Outbox      OutboxConfig
	HTTP        HTTPConfig
	Logger      LoggerConfig
	Auth        AuthConfig
	Idempotency IdempotencyConfig
	RateLimit   RateLimitConfig
	Import      ImportConfig
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	Environment  string
	Level        string
	IsProduction bool
}

func NewConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:               getStringEnv("MONGO_DATABASE", "inventory"),
			Timeout:                getDurationEnv("MONGO_TIMEOUT", 10, time.Second),
			MaxPoolSize:            uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:            uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 10)),
			ConnectTimeout:         getDurationEnv("MONGO_CONNECT_TIMEOUT", 10, time.Second),
			ServerSelectionTimeout: getDurationEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5, time.Second),
		},
		Redis: RedisConfig{
			URL:      getStringEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getStringEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Outbox: OutboxConfig{
			BatchSize: getIntEnv("OUTBOX_BATCH_SIZE", 100),
			Interval:  getDurationEnv("OUTBOX_INTERVAL", 500, time.Millisecond),
		},
		HTTP: HTTPConfig{
			Port:          getStringEnv("HTTP_PORT", "8000"),
			BindInterface: getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getStringEnv("RABBITMQ_URL", "amqp://localhost:5672"),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: getDurationEnv("RABBITMQ_RETRY_DELAY", 1, time.Second),
			ExchangeConfigs: []ExchangeConfig{
				{
					Name:       getStringEnv("RABBITMQ_EXCHANGE_NAME", "exchange.product"),
					Type:       getStringEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
					Durable:    getBoolEnv("RABBITMQ_EXCHANGE_DURABLE", true),
					AutoDelete: getBoolEnv("RABBITMQ_EXCHANGE_AUTO_DELETE", false),
				},
			},
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "inventory"),
			Environment:  getStringEnv("ENVIRONMENT", "development"),
			Level:        getStringEnv("LOG_LEVEL", "info"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
		},
		Auth: AuthConfig{
			JWTSecret:     getStringEnv("JWT_SECRET", "change-me-in-production"),
			TokenTTL:      getDurationEnv("JWT_TTL_MINUTES", 1440, time.Minute),
			BcryptCost:    getIntEnv("BCRYPT_COST", 10),
			AdminUsername: getStringEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getStringEnv("ADMIN_PASSWORD", "admin123"),
		},
		Idempotency: IdempotencyConfig{
			TTL:          getDurationEnv("IDEMPOTENCY_TTL_MINUTES", 15, time.Minute),
			PollInterval: getDurationEnv("IDEMPOTENCY_POLL_INTERVAL_MS", 100, time.Millisecond),
			PollTimeout:  getDurationEnv("IDEMPOTENCY_POLL_TIMEOUT_MS", 5000, time.Millisecond),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute:  getIntEnv("RATE_LIMIT_LOGIN_PER_MINUTE", 10),
			ImportPerMinute: getIntEnv("RATE_LIMIT_IMPORT_PER_MINUTE", 5),
		},
		Import: ImportConfig{
			MaxUploadBytes: getInt64Env("IMPORT_MAX_UPLOAD_BYTES", 10<<20),
		},
	}
}
