package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Booking   BookingConfig   `mapstructure:"booking"`
	Outbox    OutboxConfig    `mapstructure:"outbox"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

// BookingConfig holds the scheduling business rules. Lead windows and the
// generation horizon vary by jurisdiction and practice policy, so they are
// configuration rather than constants.
type BookingConfig struct {
	HorizonDays           int           `mapstructure:"horizon_days"`
	DefaultSessionMinutes int           `mapstructure:"default_session_minutes"`
	DefaultBufferMinutes  int           `mapstructure:"default_buffer_minutes"`
	CancelLeadWindow      time.Duration `mapstructure:"cancel_lead_window"`
	RescheduleLeadWindow  time.Duration `mapstructure:"reschedule_lead_window"`
	SlotCacheTTL          time.Duration `mapstructure:"slot_cache_ttl"`
}

type OutboxConfig struct {
	BatchSize     int           `mapstructure:"batch_size"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

type WorkerConfig struct {
	SlotRegenInterval  time.Duration `mapstructure:"slot_regen_interval"`
	NoShowInterval     time.Duration `mapstructure:"no_show_interval"`
	NoShowBatchSize    int           `mapstructure:"no_show_batch_size"`
	AuditRetentionDays int           `mapstructure:"audit_retention_days"`
	CleanupInterval    time.Duration `mapstructure:"cleanup_interval"`
	HealthPort         int           `mapstructure:"health_port"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// envOverrides are the deployment-level settings injected through the
// environment (container secrets), taking precedence over the YAML file.
type envOverrides struct {
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	RedisURL   string `envconfig:"REDIS_URL"`
	JWTSecret  string `envconfig:"JWT_SECRET"`
	SMTPHost   string `envconfig:"SMTP_HOST"`
	SMTPUser   string `envconfig:"SMTP_USER"`
	SMTPPass   string `envconfig:"SMTP_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app/config")

	setDefaults()

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	applyOverrides(&config, &env)

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.request_timeout", "30s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)

	viper.SetDefault("redis.url", "redis://localhost:6379/0")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.retry_backoff", "100ms")
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.min_idle_conns", 2)

	viper.SetDefault("jwt.expiry_hours", 24)

	viper.SetDefault("booking.horizon_days", 30)
	viper.SetDefault("booking.default_session_minutes", 50)
	viper.SetDefault("booking.cancel_lead_window", "24h")
	viper.SetDefault("booking.reschedule_lead_window", "48h")
	viper.SetDefault("booking.default_buffer_minutes", 10)
	viper.SetDefault("booking.slot_cache_ttl", "30s")

	viper.SetDefault("outbox.batch_size", 100)
	viper.SetDefault("outbox.poll_interval", "5s")
	viper.SetDefault("outbox.retry_attempts", 3)
	viper.SetDefault("outbox.retry_delay", "5s")

	viper.SetDefault("worker.slot_regen_interval", "1h")
	viper.SetDefault("worker.no_show_interval", "10m")
	viper.SetDefault("worker.no_show_batch_size", 200)
	viper.SetDefault("worker.audit_retention_days", 2555) // 7 years, AHPRA record keeping
	viper.SetDefault("worker.cleanup_interval", "24h")
	viper.SetDefault("worker.health_port", 8081)

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)

	viper.SetDefault("smtp.port", 587)
}

func applyOverrides(cfg *Config, env *envOverrides) {
	if env.DBHost != "" {
		cfg.Database.Host = env.DBHost
	}
	if env.DBPort != 0 {
		cfg.Database.Port = env.DBPort
	}
	if env.DBUser != "" {
		cfg.Database.User = env.DBUser
	}
	if env.DBPassword != "" {
		cfg.Database.Password = env.DBPassword
	}
	if env.DBName != "" {
		cfg.Database.Name = env.DBName
	}
	if env.RedisURL != "" {
		cfg.Redis.URL = env.RedisURL
	}
	if env.JWTSecret != "" {
		cfg.JWT.Secret = env.JWTSecret
	}
	if env.SMTPHost != "" {
		cfg.SMTP.Host = env.SMTPHost
	}
	if env.SMTPUser != "" {
		cfg.SMTP.Username = env.SMTPUser
	}
	if env.SMTPPass != "" {
		cfg.SMTP.Password = env.SMTPPass
	}
}
