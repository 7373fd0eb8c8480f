package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Booking     BookingConfig     `mapstructure:"booking"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Vitals      VitalsConfig      `mapstructure:"vitals"`
	Events      EventsConfig      `mapstructure:"events"`
	SMTP        SMTPConfig        `mapstructure:"smtp"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	MetricsPrefix   string        `mapstructure:"metrics_prefix"`
}

type CatalogConfig struct {
	// File is a YAML doctor catalog. Empty uses the built-in sample.
	File string `mapstructure:"file"`
}

type BookingConfig struct {
	ResetDelay    time.Duration `mapstructure:"reset_delay"`
	WindowStart   string        `mapstructure:"window_start"`
	WindowDays    int           `mapstructure:"window_days"`
	DefaultOffset int           `mapstructure:"default_offset"`
	TimeSlots     []string      `mapstructure:"time_slots"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	CleanupPeriod time.Duration `mapstructure:"cleanup_period"`
}

// WindowStartDate parses WindowStart, falling back to today.
func (b BookingConfig) WindowStartDate(now time.Time) (time.Time, error) {
	if b.WindowStart == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.Parse("2006-01-02", b.WindowStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid booking.window_start %q: %w", b.WindowStart, err)
	}
	return t, nil
}

type PreferencesConfig struct {
	// Driver is one of memory, redis, postgres.
	Driver   string `mapstructure:"driver"`
	RedisURL string `mapstructure:"redis_url"`
	Postgres string `mapstructure:"postgres_dsn"`
}

type VitalsConfig struct {
	// Driver is one of memory, postgres.
	Driver   string `mapstructure:"driver"`
	Postgres string `mapstructure:"postgres_dsn"`
}

type EventsConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	RedisURL     string        `mapstructure:"redis_url"`
	Channel      string        `mapstructure:"channel"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.rate_limit", 50.0)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("server.metrics_prefix", "care")

	v.SetDefault("catalog.file", "")

	v.SetDefault("booking.reset_delay", 3*time.Second)
	v.SetDefault("booking.window_start", "")
	v.SetDefault("booking.window_days", 7)
	v.SetDefault("booking.default_offset", 2)
	v.SetDefault("booking.time_slots", []string{
		"09:00 AM", "10:00 AM", "11:00 AM", "02:00 PM", "03:00 PM", "04:00 PM",
	})
	v.SetDefault("booking.session_ttl", 30*time.Minute)
	v.SetDefault("booking.cleanup_period", 5*time.Minute)

	v.SetDefault("preferences.driver", "memory")
	v.SetDefault("preferences.redis_url", "redis://localhost:6379/0")
	v.SetDefault("preferences.postgres_dsn", "")

	v.SetDefault("vitals.driver", "memory")
	v.SetDefault("vitals.postgres_dsn", "")

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.redis_url", "redis://localhost:6379/0")
	v.SetDefault("events.channel", "booking.confirmed")
	v.SetDefault("events.max_retries", 3)
	v.SetDefault("events.retry_backoff", 100*time.Millisecond)
	v.SetDefault("events.pool_size", 10)

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)
}

// LoadConfig reads config.yaml from path, or from . and ./config when path
// is empty. A missing file is not an error; defaults and CARE_* environment
// variables still apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Preferences.Driver {
	case "memory", "redis":
	case "postgres":
		if c.Preferences.Postgres == "" {
			return errors.New("preferences.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown preferences.driver %q", c.Preferences.Driver)
	}

	switch c.Vitals.Driver {
	case "memory":
	case "postgres":
		if c.Vitals.Postgres == "" {
			return errors.New("vitals.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown vitals.driver %q", c.Vitals.Driver)
	}

	if c.SMTP.Enabled && (c.SMTP.Host == "" || c.SMTP.From == "" || c.SMTP.To == "") {
		return errors.New("smtp.host, smtp.from and smtp.to are required when smtp is enabled")
	}
	return nil
}
