package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/logger"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Notifier  NotifierConfig  `toml:"notifier"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConfig настройки кеша занятости. Пустой addr отключает кеш.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// Enabled возвращает true, если кеш настроен
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// NotifierConfig настройки webhook уведомлений. Пустой url отключает уведомления.
type NotifierConfig struct {
	URL     string `toml:"url"`
	Secret  string `toml:"secret"`
	Timeout int    `toml:"timeout"` // секунды
}

// Enabled возвращает true, если задан адрес webhook
func (n NotifierConfig) Enabled() bool {
	return n.URL != ""
}

// BookingConfig настройки движка бронирования
type BookingConfig struct {
	AvailabilityScope string `toml:"availability_scope"`
	CatalogFile       string `toml:"catalog_file"`
}

// Scope возвращает область проверки занятости
func (b BookingConfig) Scope() domain.AvailabilityScope {
	return domain.AvailabilityScope(b.AvailabilityScope)
}

// RateLimitConfig ограничение частоты отправки бронирований
type RateLimitConfig struct {
	Enabled   bool `toml:"enabled"`
	PerMinute int  `toml:"per_minute"`
	Burst     int  `toml:"burst"`
}

// Load читает конфигурацию из TOML файла.
// Перед чтением подгружается .env, секреты из окружения перекрывают значения файла.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"DB_PASSWORD", &c.Database.Password},
		{"REDIS_PASSWORD", &c.Redis.Password},
		{"NOTIFIER_SECRET", &c.Notifier.Secret},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok {
			*o.dst = v
		}
	}
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 10)
	setInt(&c.Server.WriteTimeout, 10)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 15)

	setString(&c.Database.Host, "localhost")
	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setInt(&c.Redis.TTL, 120)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "drone-booking-service")

	setInt(&c.Notifier.Timeout, 5)

	setString(&c.Booking.AvailabilityScope, string(domain.AvailabilityScopeAsset))

	setInt(&c.RateLimit.PerMinute, 30)
	setInt(&c.RateLimit.Burst, 5)
}

// Validate проверяет значения после подстановки значений по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port %d out of range", ErrInvalidConfig, c.Database.Port)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if _, err := logger.ParseLevel(c.Logs.Level); err != nil {
		return fmt.Errorf("%w: logs.level: %v", ErrInvalidConfig, err)
	}
	if !c.Booking.Scope().IsValid() {
		return fmt.Errorf("%w: booking.availability_scope %q, expected asset or company",
			ErrInvalidConfig, c.Booking.AvailabilityScope)
	}
	if c.RateLimit.Enabled && c.RateLimit.PerMinute < 1 {
		return fmt.Errorf("%w: rate_limit.per_minute must be positive", ErrInvalidConfig)
	}
	if c.Notifier.Enabled() {
		if _, err := url.ParseRequestURI(c.Notifier.URL); err != nil {
			return fmt.Errorf("%w: notifier.url: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
