// Package config loads application settings from configs/config.yml and
// CARBON_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"carbon_netzero/internal/advice"

	"github.com/spf13/viper"
)

const envPrefix = "CARBON"

// Config is the full application configuration.
type Config struct {
	Port      string          `mapstructure:"port"`
	LogLevel  string          `mapstructure:"log_level"`
	LogFormat string          `mapstructure:"log_format"`
	Env       string          `mapstructure:"env"`
	DB        DBConfig        `mapstructure:"db"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
	AI        AIConfig        `mapstructure:"ai"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// IngestConfig guards POST /api/v1/emissions. An empty token leaves ingest open.
type IngestConfig struct {
	Token string `mapstructure:"token"`
}

// AlertsConfig drives threshold notifications. A zero threshold disables them.
type AlertsConfig struct {
	CO2ThresholdKg float64       `mapstructure:"co2_threshold_kg"`
	QueueSize      int           `mapstructure:"queue_size"`
	Workers        int           `mapstructure:"workers"`
	SendTimeout    time.Duration `mapstructure:"send_timeout"`
	OrgName        string        `mapstructure:"org_name"`
	DashboardURL   string        `mapstructure:"dashboard_url"`
	Email          EmailConfig   `mapstructure:"email"`
	SMS            SMSConfig     `mapstructure:"sms"`
}

// EmailConfig configures the SMTP sender. Department keys are matched
// case-insensitively.
type EmailConfig struct {
	Host        string            `mapstructure:"host"`
	Port        int               `mapstructure:"port"`
	Username    string            `mapstructure:"username"`
	Password    string            `mapstructure:"password"`
	From        string            `mapstructure:"from"`
	DefaultTo   string            `mapstructure:"default_to"`
	Departments map[string]string `mapstructure:"departments"`
}

// SMSConfig configures the Twilio sender.
type SMSConfig struct {
	AccountSID  string            `mapstructure:"account_sid"`
	AuthToken   string            `mapstructure:"auth_token"`
	From        string            `mapstructure:"from"`
	DefaultTo   string            `mapstructure:"default_to"`
	BaseURL     string            `mapstructure:"base_url"`
	Departments map[string]string `mapstructure:"departments"`
}

type AIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	PrimaryModel    string        `mapstructure:"primary_model"`
	FallbackModel   string        `mapstructure:"fallback_model"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	MaxRetries      int           `mapstructure:"max_retries"`
	BackoffBase     time.Duration `mapstructure:"backoff_base"`
	BackoffCap      time.Duration `mapstructure:"backoff_cap"`
	JitterMax       time.Duration `mapstructure:"jitter_max"`
	GenerateTimeout time.Duration `mapstructure:"generate_timeout"`
	JSONMode        bool          `mapstructure:"json_mode"`
}

type SimulatorConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Tick    time.Duration `mapstructure:"tick"`
}

// Policy converts the retry settings for the advice invoker.
func (c AIConfig) Policy() advice.Policy {
	return advice.Policy{
		Primary:     c.PrimaryModel,
		Fallback:    c.FallbackModel,
		MaxRetries:  c.MaxRetries,
		BackoffBase: c.BackoffBase,
		BackoffCap:  c.BackoffCap,
		JitterMax:   c.JitterMax,
	}
}

// Pipeline returns the advice pipeline settings.
func (c AIConfig) Pipeline() advice.Config {
	return advice.Config{
		Policy:          c.Policy(),
		CacheTTL:        c.CacheTTL,
		GenerateTimeout: c.GenerateTimeout,
	}
}

// IsProduction reports whether dev-only routes must stay disabled.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration. An empty path searches ./configs/config.yml and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.DB.Path == "" {
		errs = append(errs, errors.New("db.path is required"))
	}
	if c.Auth.SigningKey == "" {
		errs = append(errs, errors.New("auth.signing_key is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Alerts.CO2ThresholdKg < 0 {
		errs = append(errs, errors.New("alerts.co2_threshold_kg must not be negative"))
	}
	if c.AI.MaxRetries < 0 {
		errs = append(errs, errors.New("ai.max_retries must not be negative"))
	}
	if c.Simulator.Enabled && c.Simulator.Tick <= 0 {
		errs = append(errs, errors.New("simulator.tick must be positive when enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("env", "development")
	v.SetDefault("db.path", "app.db")

	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("ingest.token", "")

	v.SetDefault("alerts.co2_threshold_kg", 0.0)
	v.SetDefault("alerts.queue_size", 64)
	v.SetDefault("alerts.workers", 2)
	v.SetDefault("alerts.send_timeout", 15*time.Second)
	v.SetDefault("alerts.org_name", "Your Organization")
	v.SetDefault("alerts.dashboard_url", "")
	v.SetDefault("alerts.email.host", "")
	v.SetDefault("alerts.email.port", 587)
	v.SetDefault("alerts.email.username", "")
	v.SetDefault("alerts.email.password", "")
	v.SetDefault("alerts.email.from", "")
	v.SetDefault("alerts.email.default_to", "")
	v.SetDefault("alerts.sms.account_sid", "")
	v.SetDefault("alerts.sms.auth_token", "")
	v.SetDefault("alerts.sms.from", "")
	v.SetDefault("alerts.sms.default_to", "")
	v.SetDefault("alerts.sms.base_url", "https://api.twilio.com")

	p := advice.DefaultPolicy()
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.primary_model", p.Primary)
	v.SetDefault("ai.fallback_model", p.Fallback)
	v.SetDefault("ai.cache_ttl", advice.DefaultCacheTTL)
	v.SetDefault("ai.max_retries", p.MaxRetries)
	v.SetDefault("ai.backoff_base", p.BackoffBase)
	v.SetDefault("ai.backoff_cap", p.BackoffCap)
	v.SetDefault("ai.jitter_max", p.JitterMax)
	v.SetDefault("ai.generate_timeout", advice.DefaultGenerateTimeout)
	v.SetDefault("ai.json_mode", false)

	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", 5*time.Second)
}
