package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment  string
	LogLevel     string
	Name         string
	Version      string
	HTTP         HTTPConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	JWT          JWTConfig
	S3           S3Config
	Consultation ConsultationConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// ProviderCacheTTL bounds staleness of cached provider configuration.
	ProviderCacheTTL time.Duration
}

type JWTConfig struct {
	SigningKey     string
	AccessTokenTTL time.Duration
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

type ConsultationConfig struct {
	// AverageVisitMinutes drives the waiting-room ETA estimate.
	AverageVisitMinutes int
	// StaleWaitThreshold marks waiting-room entries as abandoned.
	StaleWaitThreshold time.Duration
}

func NewConfig() (*Config, error) {
	// Missing .env is fine; the environment may be set by the runtime.
	_ = godotenv.Load()

	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	jwtAccessTokenTTL, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, err
	}

	providerCacheTTL, err := time.ParseDuration(getEnv("REDIS_PROVIDER_CACHE_TTL", "5m"))
	if err != nil {
		return nil, err
	}

	staleWaitThreshold, err := time.ParseDuration(getEnv("CONSULTATION_STALE_WAIT_THRESHOLD", "60m"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Name:        getEnv("APP_NAME", "telemed"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		HTTP: HTTPConfig{
			Port:         getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
			MaxHeaderMB:  getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "telemed"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
		},
		Redis: RedisConfig{
			Addr:             getEnv("REDIS_ADDR", ""),
			Password:         getEnv("REDIS_PASSWORD", ""),
			DB:               getEnvAsInt("REDIS_DB", 0),
			ProviderCacheTTL: providerCacheTTL,
		},
		JWT: JWTConfig{
			SigningKey:     getEnv("JWT_SIGNING_KEY", "your_secret_key"),
			AccessTokenTTL: jwtAccessTokenTTL,
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "telemed"),
			UseSSL:          getEnv("S3_USE_SSL", "true") == "true",
		},
		Consultation: ConsultationConfig{
			AverageVisitMinutes: getEnvAsInt("CONSULTATION_AVG_VISIT_MINUTES", 15),
			StaleWaitThreshold:  staleWaitThreshold,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}
