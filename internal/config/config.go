package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the API server and the CLI client.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
	Scheduler    SchedulerConfig
	Client       ClientConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	TimeZone              string
	SeedFixtures          bool
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior. An empty File logs to stdout only.
type LoggerConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret              string
	AccessTokenTTLMinutes  int
	RefreshTokenTTLHours   int
	BcryptCost             int
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

// NotificationConfig holds notification endpoints and the async dispatch pool size.
type NotificationConfig struct {
	EmailFrom             string
	WebhookURL            string
	PoolSize              int
	WebhookTimeoutSeconds int
}

// SchedulerConfig drives the invitation expiry job.
type SchedulerConfig struct {
	Enabled               bool
	InvitationTTLHours    int
	ExpiryIntervalMinutes int
}

// ClientConfig configures swiftctl.
type ClientConfig struct {
	BaseURL        string
	TimeoutSeconds int
	UseMock        bool
	MockDelayMS    int
	SessionStore   string
	SessionFile    string
	SessionNS      string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	sessionStore := strings.ToLower(getEnv("CLIENT_SESSION_STORE", "file"))
	if sessionStore != "file" && sessionStore != "redis" {
		return nil, fmt.Errorf("invalid CLIENT_SESSION_STORE %q: want file or redis", sessionStore)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "swift-staff-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			TimeZone:              getEnv("APP_TIMEZONE", "Australia/Sydney"),
			SeedFixtures:          getEnvAsBool("APP_SEED_FIXTURES", true),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
			Compress:   getEnvAsBool("LOG_COMPRESS", true),
		},
		Auth: AuthConfig{
			JWTSecret:              getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes:  getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			RefreshTokenTTLHours:   getEnvAsInt("AUTH_REFRESH_TOKEN_TTL_HOURS", 24*30),
			BcryptCost:             getEnvAsInt("AUTH_BCRYPT_COST", 12),
			BootstrapAdminEmail:    os.Getenv("AUTH_BOOTSTRAP_ADMIN_EMAIL"),
			BootstrapAdminPassword: os.Getenv("AUTH_BOOTSTRAP_ADMIN_PASSWORD"),
		},
		Notification: NotificationConfig{
			EmailFrom:             getEnv("NOTIFY_EMAIL_FROM", "noreply@swiftapp.com.au"),
			WebhookURL:            getEnv("NOTIFY_WEBHOOK_URL", ""),
			PoolSize:              getEnvAsInt("NOTIFY_POOL_SIZE", 8),
			WebhookTimeoutSeconds: getEnvAsInt("NOTIFY_WEBHOOK_TIMEOUT_SECONDS", 5),
		},
		Scheduler: SchedulerConfig{
			Enabled:               getEnvAsBool("SCHEDULER_ENABLED", true),
			InvitationTTLHours:    getEnvAsInt("INVITATION_TTL_HOURS", 24*7),
			ExpiryIntervalMinutes: getEnvAsInt("INVITATION_EXPIRY_INTERVAL_MINUTES", 15),
		},
		Client: ClientConfig{
			BaseURL:        getEnv("CLIENT_BASE_URL", "http://localhost:8080/"),
			TimeoutSeconds: getEnvAsInt("CLIENT_TIMEOUT_SECONDS", 30),
			UseMock:        getEnvAsBool("CLIENT_USE_MOCK", false),
			MockDelayMS:    getEnvAsInt("CLIENT_MOCK_DELAY_MS", 1000),
			SessionStore:   sessionStore,
			SessionFile:    getEnv("CLIENT_SESSION_FILE", defaultSessionFile()),
			SessionNS:      getEnv("CLIENT_SESSION_NAMESPACE", "@swift_app"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Location resolves TimeZone, falling back to UTC.
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-request client timeout, 30s when unset.
func (c ClientConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MockDelay returns the artificial latency applied to fixture loads.
func (c ClientConfig) MockDelay() time.Duration {
	if c.MockDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.MockDelayMS) * time.Millisecond
}

// InvitationTTL returns how long a sent invitation stays valid.
func (s SchedulerConfig) InvitationTTL() time.Duration {
	return time.Duration(s.InvitationTTLHours) * time.Hour
}

// ExpiryInterval returns the period of the invitation expiry job.
func (s SchedulerConfig) ExpiryInterval() time.Duration {
	if s.ExpiryIntervalMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(s.ExpiryIntervalMinutes) * time.Minute
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".swiftctl-session.yaml"
	}
	return filepath.Join(home, ".swiftctl", "session.yaml")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
