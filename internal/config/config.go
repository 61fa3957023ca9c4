package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	AppName     string `mapstructure:"APP_NAME"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Vacío => auth por headers X-Debug-* (solo ENV=development).
	AuthJWTSecret string `mapstructure:"AUTH_JWT_SECRET"`

	ShareBaseURL      string  `mapstructure:"SHARE_BASE_URL"`
	ShareDefaultHours float64 `mapstructure:"SHARE_DEFAULT_HOURS"`
	ShareMaxHours     float64 `mapstructure:"SHARE_MAX_HOURS"`

	PINMaxFailures   int           `mapstructure:"PIN_MAX_FAILURES"`
	PINFailureWindow time.Duration `mapstructure:"PIN_FAILURE_WINDOW"`
	PINLockout       time.Duration `mapstructure:"PIN_LOCKOUT"`
	RequestTimeout   time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	AuditWebhookURL  string        `mapstructure:"AUDIT_WEBHOOK_URL"`
	AuditWebhookKey  string        `mapstructure:"AUDIT_WEBHOOK_API_KEY"`
	AuditSQLitePath  string        `mapstructure:"AUDIT_SQLITE_PATH"`
}

var keys = []string{
	"PORT", "ENV", "APP_NAME", "DATABASE_URL", "DB_MAX_CONNS",
	"LOG_LEVEL", "LOG_FORMAT",
	"AUTH_JWT_SECRET",
	"SHARE_BASE_URL", "SHARE_DEFAULT_HOURS", "SHARE_MAX_HOURS",
	"PIN_MAX_FAILURES", "PIN_FAILURE_WINDOW", "PIN_LOCKOUT",
	"REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"AUDIT_WEBHOOK_URL", "AUDIT_WEBHOOK_API_KEY", "AUDIT_SQLITE_PATH",
}

// Load lee env vars y, si existe, un .env en el directorio actual.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "health-vault")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHARE_BASE_URL", "http://localhost:8080")
	v.SetDefault("SHARE_DEFAULT_HOURS", 1)
	v.SetDefault("SHARE_MAX_HOURS", 168)
	v.SetDefault("PIN_MAX_FAILURES", 5)
	v.SetDefault("PIN_FAILURE_WINDOW", "15m")
	v.SetDefault("PIN_LOCKOUT", "15m")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) UsesPostgres() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

// Validate rechaza combinaciones inseguras o incoherentes.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if !c.IsDev() && strings.TrimSpace(c.AuthJWTSecret) == "" {
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET is required when ENV=%q (debug headers are development only)", c.Env))
	}
	if secret := strings.TrimSpace(c.AuthJWTSecret); secret != "" && len(secret) < 32 {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must be at least 32 characters"))
	}

	if u, err := url.Parse(c.ShareBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("SHARE_BASE_URL must be an absolute URL, got %q", c.ShareBaseURL))
	}
	if c.ShareDefaultHours <= 0 {
		errs = append(errs, errors.New("SHARE_DEFAULT_HOURS must be positive"))
	}
	if c.ShareMaxHours < c.ShareDefaultHours {
		errs = append(errs, errors.New("SHARE_MAX_HOURS must be >= SHARE_DEFAULT_HOURS"))
	}

	if c.PINMaxFailures < 1 {
		errs = append(errs, errors.New("PIN_MAX_FAILURES must be >= 1"))
	}
	if c.PINFailureWindow <= 0 || c.PINLockout <= 0 {
		errs = append(errs, errors.New("PIN_FAILURE_WINDOW and PIN_LOCKOUT must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.DBMaxConns < 0 {
		errs = append(errs, errors.New("DB_MAX_CONNS must not be negative"))
	}

	if raw := strings.TrimSpace(c.AuditWebhookURL); raw != "" {
		if u, err := url.ParseRequestURI(raw); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("AUDIT_WEBHOOK_URL is not a valid URL: %q", raw))
		}
	}

	return errors.Join(errs...)
}
