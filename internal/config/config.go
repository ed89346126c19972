package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

const (
	minJWTSecretLength = 32
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Storage   StorageConfig   `toml:"storage"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Telegram  TelegramConfig  `toml:"telegram"`
	Document  DocumentConfig  `toml:"document"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig параметры выдачи токенов и начального администратора
type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLMinutes   int    `toml:"token_ttl_minutes"`
	Issuer            string `toml:"issuer"`
	BcryptCost        int    `toml:"bcrypt_cost"`
	BootstrapUsername string `toml:"bootstrap_username"`
	BootstrapPassword string `toml:"bootstrap_password"`
	BootstrapEmail    string `toml:"bootstrap_email"`
}

// TokenTTL время жизни токена
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// StorageConfig таймауты и повторы обращений к БД
type StorageConfig struct {
	QueryTimeoutMs      int    `toml:"query_timeout_ms"`
	ReadRetries         uint64 `toml:"read_retries"`
	ReadRetryBaseMs     int    `toml:"read_retry_base_ms"`
	ReadRetryMaxDelayMs int    `toml:"read_retry_max_delay_ms"`
}

func (s StorageConfig) QueryTimeout() time.Duration {
	return time.Duration(s.QueryTimeoutMs) * time.Millisecond
}

func (s StorageConfig) ReadRetryBase() time.Duration {
	return time.Duration(s.ReadRetryBaseMs) * time.Millisecond
}

func (s StorageConfig) ReadRetryMaxDelay() time.Duration {
	return time.Duration(s.ReadRetryMaxDelayMs) * time.Millisecond
}

// SchedulerConfig параметры ежедневной проверки дедлайнов
type SchedulerConfig struct {
	Enabled       bool   `toml:"enabled"`
	DeadlineSweep string `toml:"deadline_sweep"` // cron выражение
	Timezone      string `toml:"timezone"`
}

// Location часовой пояс для дат мероприятий и расписания
func (s SchedulerConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// TelegramConfig уведомления в чат сотрудников
type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
	ChatID   int64  `toml:"chat_id"`
}

// Enabled уведомления включены, если заданы токен и чат
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

// DocumentConfig параметры PDF котировок
type DocumentConfig struct {
	CompanyName string `toml:"company_name"`
	PublicURL   string `toml:"public_url"` // префикс ссылки в QR коде
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "events_booking",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrateOnStart:  true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "events-booking-service",
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 720,
			Issuer:          "events-booking-service",
			BcryptCost:      12,
			BootstrapEmail:  "admin@localhost",
		},
		Storage: StorageConfig{
			QueryTimeoutMs:      5000,
			ReadRetries:         3,
			ReadRetryBaseMs:     50,
			ReadRetryMaxDelayMs: 1000,
		},
		Scheduler: SchedulerConfig{
			Enabled:       true,
			DeadlineSweep: "0 8 * * *",
		},
		Document: DocumentConfig{
			CompanyName: "Events Production",
		},
	}
}

// Load читает .env (если есть), TOML файл и переменные окружения
// Приоритет: окружение > TOML > значения по умолчанию
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.ConfigurationError{Key: ".env", Reason: err.Error()}
	}

	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, &domain.ConfigurationError{Key: path, Reason: err.Error()}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv секреты берутся только из окружения, чтобы не хранить их в config.toml
func (c *Config) applyEnv() {
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.Auth.BootstrapUsername, "BOOTSTRAP_ADMIN_USERNAME")
	setString(&c.Auth.BootstrapPassword, "BOOTSTRAP_ADMIN_PASSWORD")
	setString(&c.Auth.BootstrapEmail, "BOOTSTRAP_ADMIN_EMAIL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return &domain.ConfigurationError{Key: "server.http_port", Reason: "must be in 1..65535"}
	case c.Database.Host == "":
		return &domain.ConfigurationError{Key: "database.host", Reason: "is required"}
	case c.Database.DBName == "":
		return &domain.ConfigurationError{Key: "database.dbname", Reason: "is required"}
	case c.Database.User == "":
		return &domain.ConfigurationError{Key: "database.user", Reason: "is required"}
	case c.Database.MaxOpenConns < 1:
		return &domain.ConfigurationError{Key: "database.max_open_conns", Reason: "must be at least 1"}
	case len(c.Auth.JWTSecret) < minJWTSecretLength:
		return &domain.ConfigurationError{Key: "auth.jwt_secret", Reason: fmt.Sprintf("must be at least %d bytes (set JWT_SECRET)", minJWTSecretLength)}
	case c.Auth.TokenTTLMinutes <= 0:
		return &domain.ConfigurationError{Key: "auth.token_ttl_minutes", Reason: "must be positive"}
	case c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31:
		return &domain.ConfigurationError{Key: "auth.bcrypt_cost", Reason: "must be in 4..31"}
	case (c.Auth.BootstrapUsername == "") != (c.Auth.BootstrapPassword == ""):
		return &domain.ConfigurationError{Key: "auth.bootstrap", Reason: "username and password must be set together"}
	case c.Storage.QueryTimeoutMs <= 0:
		return &domain.ConfigurationError{Key: "storage.query_timeout_ms", Reason: "must be positive"}
	case c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/"):
		return &domain.ConfigurationError{Key: "metrics.path", Reason: "must start with /"}
	case strings.TrimSpace(c.Document.CompanyName) == "":
		return &domain.ConfigurationError{Key: "document.company_name", Reason: "is required"}
	case c.Scheduler.Enabled && c.Scheduler.DeadlineSweep == "":
		return &domain.ConfigurationError{Key: "scheduler.deadline_sweep", Reason: "is required when the scheduler is enabled"}
	}

	if _, err := c.Scheduler.Location(); err != nil {
		return &domain.ConfigurationError{Key: "scheduler.timezone", Reason: err.Error()}
	}

	return nil
}
