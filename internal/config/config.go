package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Stripe    StripeConfig    `toml:"stripe"`
	Email     EmailConfig     `toml:"email"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Pickup    PickupConfig    `toml:"pickup"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Admin     AdminConfig     `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type StripeConfig struct {
	SecretKey     string `toml:"secret_key"`
	WebhookSecret string `toml:"webhook_secret"`
	SuccessURL    string `toml:"success_url"`
	CancelURL     string `toml:"cancel_url"`
	Timeout       int    `toml:"timeout"`
	MaxRetries    int    `toml:"max_retries"`
}

type EmailConfig struct {
	Enabled    bool   `toml:"enabled"`
	APIKey     string `toml:"api_key"`
	From       string `toml:"from"`
	MaxRetries int    `toml:"max_retries"`
}

type CalendarConfig struct {
	FeedURL string `toml:"feed_url"`
	Timeout int    `toml:"timeout"`
}

type PickupConfig struct {
	Timezone            string `toml:"timezone"`
	GenerateWindowDays  int    `toml:"generate_window_days"`
	HoldTTLMinutes      int    `toml:"hold_ttl_minutes"`
	OccupancyWindowDays int    `toml:"occupancy_window_days"`
}

// Location часовой пояс, в котором считаются границы дня
func (c PickupConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HoldTTL время жизни удержания слота
func (c PickupConfig) HoldTTL() time.Duration {
	return time.Duration(c.HoldTTLMinutes) * time.Minute
}

type SchedulerConfig struct {
	Enabled       bool   `toml:"enabled"`
	GenerateSpec  string `toml:"generate_spec"`
	SweepSpec     string `toml:"sweep_spec"`
	OccupancySpec string `toml:"occupancy_spec"`
}

type AdminConfig struct {
	Token string `toml:"token"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию
// и переопределения секретов из переменных окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет корректность значений
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Pickup.GenerateWindowDays <= 0 || c.Pickup.GenerateWindowDays > domain.MaxGenerateWindowDays {
		errs = append(errs, fmt.Errorf("pickup.generate_window_days must be between 1 and %d: %d",
			domain.MaxGenerateWindowDays, c.Pickup.GenerateWindowDays))
	}
	if c.Pickup.HoldTTLMinutes <= 0 {
		errs = append(errs, fmt.Errorf("pickup.hold_ttl_minutes must be positive: %d", c.Pickup.HoldTTLMinutes))
	}
	if c.Pickup.OccupancyWindowDays <= 0 {
		errs = append(errs, fmt.Errorf("pickup.occupancy_window_days must be positive: %d", c.Pickup.OccupancyWindowDays))
	}
	if _, err := time.LoadLocation(c.Pickup.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("pickup.timezone %q: %v", c.Pickup.Timezone, err))
	}
	if c.Email.Enabled && c.Email.From == "" {
		errs = append(errs, errors.New("email.from is required when email is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "farmstand-pickup",
			Path:        "/metrics",
		},
		Stripe: StripeConfig{
			Timeout:    10,
			MaxRetries: 3,
		},
		Email: EmailConfig{
			MaxRetries: 3,
		},
		Calendar: CalendarConfig{
			Timeout: 10,
		},
		Pickup: PickupConfig{
			Timezone:            "UTC",
			GenerateWindowDays:  14,
			HoldTTLMinutes:      15,
			OccupancyWindowDays: 60,
		},
		Scheduler: SchedulerConfig{
			GenerateSpec:  "0 3 * * *",
			SweepSpec:     "@every 1m",
			OccupancySpec: "30 2 * * *",
		},
	}
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{"DB_PASSWORD", &cfg.Database.Password},
		{"STRIPE_SECRET_KEY", &cfg.Stripe.SecretKey},
		{"STRIPE_WEBHOOK_SECRET", &cfg.Stripe.WebhookSecret},
		{"RESEND_API_KEY", &cfg.Email.APIKey},
		{"ADMIN_TOKEN", &cfg.Admin.Token},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.target = v
		}
	}
}
