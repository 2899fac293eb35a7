package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	GridBackendMemory   = "memory"
	GridBackendSheets   = "sheets"
	GridBackendPostgres = "postgres"

	PendingBackendMemory = "memory"
	PendingBackendRedis  = "redis"

	credentialsJSONEnv = "GOOGLE_CREDENTIALS_JSON"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Services  []ServiceConfig `toml:"services"`
	Grid      GridConfig      `toml:"grid"`
	Pending   PendingConfig   `toml:"pending"`
	Mail      MailConfig      `toml:"mail"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig параметры временной сетки
type ScheduleConfig struct {
	SlotIntervalMinutes int      `toml:"slot_interval_minutes"`
	MaxBookingDays      int      `toml:"max_booking_days"`
	WorkingDays         []string `toml:"working_days"`
	OpenTime            string   `toml:"open_time"`
	CloseTime           string   `toml:"close_time"`
	Timezone            string   `toml:"timezone"`
	DurationPolicy      string   `toml:"duration_policy"` // round_up | exact | truncate
}

// Location возвращает часовой пояс расписания
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// ServiceConfig элемент каталога услуг
type ServiceConfig struct {
	ID              string `toml:"id"`
	Name            string `toml:"name"`
	DurationMinutes int    `toml:"duration_minutes"`
}

type GridConfig struct {
	Backend        string         `toml:"backend"`
	TimeoutSeconds int            `toml:"timeout_seconds"`
	Sheets         SheetsConfig   `toml:"sheets"`
	Database       DatabaseConfig `toml:"database"`
}

// SheetsConfig Google-таблица с сеткой занятости
type SheetsConfig struct {
	CredentialsFile string `toml:"credentials_file"`
	CredentialsJSON string `toml:"credentials_json"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
	SheetName       string `toml:"sheet_name"`
	DateFormat      string `toml:"date_format"`
}

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
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// PendingConfig хранилище неподтвержденных бронирований
type PendingConfig struct {
	Backend              string      `toml:"backend"`
	TTLMinutes           int         `toml:"ttl_minutes"`
	CodeLength           int         `toml:"code_length"`
	RetentionMinutes     int         `toml:"retention_minutes"`
	SweepIntervalSeconds int         `toml:"sweep_interval_seconds"`
	Redis                RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Address   string `toml:"address"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	PoolSize  int    `toml:"pool_size"`
	KeyPrefix string `toml:"key_prefix"`
}

// MailConfig SMTP для доставки кодов подтверждения
// Пустые Username/Password включают логирующую заглушку
type MailConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	From           string `toml:"from"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Enabled сообщает, настроена ли реальная отправка почты
func (m MailConfig) Enabled() bool {
	return m.Username != "" && m.Password != ""
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

// Load читает .env (если есть), подставляет ${VAR} и декодирует TOML
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := decode(os.ExpandEnv(string(raw)))
	if err != nil {
		return nil, err
	}

	// JSON ключ сервисного аккаунта не помещается в строку TOML
	if cfg.Grid.Sheets.CredentialsJSON == "" {
		cfg.Grid.Sheets.CredentialsJSON = os.Getenv(credentialsJSONEnv)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse декодирует TOML, применяет значения по умолчанию и валидирует
func Parse(data string) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) finish() error {
	c.applyDefaults()
	return c.Validate()
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "barber-booking"
	}

	setDefault(&c.Schedule.SlotIntervalMinutes, 15)
	setDefault(&c.Schedule.MaxBookingDays, 7)
	if len(c.Schedule.WorkingDays) == 0 {
		c.Schedule.WorkingDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "sunday"}
	}
	if c.Schedule.OpenTime == "" {
		c.Schedule.OpenTime = "09:00"
	}
	if c.Schedule.CloseTime == "" {
		c.Schedule.CloseTime = "15:00"
	}
	if c.Schedule.DurationPolicy == "" {
		c.Schedule.DurationPolicy = "round_up"
	}

	if len(c.Services) == 0 {
		c.Services = []ServiceConfig{
			{ID: "haircut", Name: "Haircut", DurationMinutes: 30},
			{ID: "beard_trim", Name: "Beard trim", DurationMinutes: 15},
			{ID: "waxing", Name: "Waxing", DurationMinutes: 10},
		}
	}

	if c.Grid.Backend == "" {
		c.Grid.Backend = GridBackendMemory
	}
	setDefault(&c.Grid.TimeoutSeconds, 5)
	if c.Grid.Sheets.SheetName == "" {
		c.Grid.Sheets.SheetName = "Sheet1"
	}
	if c.Grid.Sheets.DateFormat == "" {
		c.Grid.Sheets.DateFormat = "02/01"
	}
	setDefault(&c.Grid.Database.Port, 5432)
	if c.Grid.Database.SSLMode == "" {
		c.Grid.Database.SSLMode = "disable"
	}
	setDefault(&c.Grid.Database.MaxOpenConns, 10)
	setDefault(&c.Grid.Database.MaxIdleConns, 5)
	setDefault(&c.Grid.Database.ConnMaxLifetime, 300)

	if c.Pending.Backend == "" {
		c.Pending.Backend = PendingBackendMemory
	}
	setDefault(&c.Pending.TTLMinutes, 30)
	setDefault(&c.Pending.CodeLength, 6)
	setDefault(&c.Pending.RetentionMinutes, 60)
	setDefault(&c.Pending.SweepIntervalSeconds, 60)
	setDefault(&c.Pending.Redis.PoolSize, 10)
	if c.Pending.Redis.KeyPrefix == "" {
		c.Pending.Redis.KeyPrefix = "barber:pending:"
	}

	if c.Mail.Host == "" {
		c.Mail.Host = "smtp.gmail.com"
	}
	setDefault(&c.Mail.Port, 587)
	setDefault(&c.Mail.TimeoutSeconds, 10)
	if c.Mail.From == "" {
		c.Mail.From = c.Mail.Username
	}

	setDefault(&c.RateLimit.RequestsPerMinute, 30)
	setDefault(&c.RateLimit.Burst, 10)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	if c.Schedule.SlotIntervalMinutes <= 0 {
		problems = append(problems, "schedule.slot_interval_minutes must be positive")
	}
	if c.Schedule.MaxBookingDays < 0 {
		problems = append(problems, "schedule.max_booking_days must not be negative")
	}
	open, errOpen := time.Parse("15:04", c.Schedule.OpenTime)
	if errOpen != nil {
		problems = append(problems, fmt.Sprintf("schedule.open_time %q is not HH:MM", c.Schedule.OpenTime))
	}
	closeAt, errClose := time.Parse("15:04", c.Schedule.CloseTime)
	if errClose != nil {
		problems = append(problems, fmt.Sprintf("schedule.close_time %q is not HH:MM", c.Schedule.CloseTime))
	}
	if errOpen == nil && errClose == nil && !open.Before(closeAt) {
		problems = append(problems, "schedule.open_time must be before schedule.close_time")
	}
	switch c.Schedule.DurationPolicy {
	case "round_up", "exact", "truncate":
	default:
		problems = append(problems, fmt.Sprintf("schedule.duration_policy %q is unknown", c.Schedule.DurationPolicy))
	}
	if _, err := c.Schedule.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("schedule.timezone: %v", err))
	}

	seen := make(map[string]struct{}, len(c.Services))
	for _, s := range c.Services {
		if s.ID == "" || s.DurationMinutes <= 0 {
			problems = append(problems, fmt.Sprintf("service %q needs id and positive duration_minutes", s.ID))
		}
		if _, dup := seen[s.ID]; dup {
			problems = append(problems, fmt.Sprintf("service %q is declared twice", s.ID))
		}
		seen[s.ID] = struct{}{}
	}

	switch c.Grid.Backend {
	case GridBackendMemory:
	case GridBackendSheets:
		if c.Grid.Sheets.SpreadsheetID == "" {
			problems = append(problems, "grid.sheets.spreadsheet_id is required")
		}
		if c.Grid.Sheets.CredentialsFile == "" && c.Grid.Sheets.CredentialsJSON == "" {
			problems = append(problems, "grid.sheets needs credentials_file or credentials_json")
		}
	case GridBackendPostgres:
		if c.Grid.Database.Host == "" || c.Grid.Database.DBName == "" {
			problems = append(problems, "grid.database.host and grid.database.dbname are required")
		}
	default:
		problems = append(problems, fmt.Sprintf("grid.backend %q is unknown", c.Grid.Backend))
	}

	switch c.Pending.Backend {
	case PendingBackendMemory:
	case PendingBackendRedis:
		if c.Pending.Redis.Address == "" {
			problems = append(problems, "pending.redis.address is required")
		}
	default:
		problems = append(problems, fmt.Sprintf("pending.backend %q is unknown", c.Pending.Backend))
	}
	if c.Pending.CodeLength < 4 {
		problems = append(problems, "pending.code_length must be at least 4")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
