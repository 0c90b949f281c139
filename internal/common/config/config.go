package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/stemwithlyn/booking/pkg/helper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// SuperAdminConfig represents the super admin configuration
	SuperAdminConfig struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Email    string `yaml:"email"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
		TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps, e.g., "UTC", default is local
		TimeFormat string `yaml:"time_format"` // time format for log timestamps, default is "2006-01-02 15:04:05"
	}
)

var envPattern = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// LoadConfig loads configuration from a YAML file with environment variable support
func LoadConfig(filename string) (*APIServerConfig, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	data = resolveEnv(data)
	var cfg APIServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cfgPath, err
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, cfgPath, err
	}
	return &cfg, cfgPath, nil
}

// resolveEnv replaces environment variable placeholders in YAML content
func resolveEnv(content []byte) []byte {
	return envPattern.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := envPattern.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}

// SetDefaults fills zero values with working defaults
func (c *APIServerConfig) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5234
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.Type == "sqlite" && c.Database.DBName == "" {
		c.Database.DBName = "./data/booking.db"
	}
	if c.JWT.Duration <= 0 {
		c.JWT.Duration = 24 * time.Hour
	}
	if c.I18n.Path == "" {
		c.I18n.Path = "configs/i18n"
	}
	if c.I18n.DefaultLang == "" {
		c.I18n.DefaultLang = "en"
	}
	if c.Booking.DefaultCategory == "" {
		c.Booking.DefaultCategory = "StemwithLyn"
	}
	if c.Booking.TutoringCategories == nil {
		c.Booking.TutoringCategories = []string{"StemwithLyn"}
	}
	if c.Booking.LedgerCategory == "" {
		c.Booking.LedgerCategory = "Tutoring"
	}
	if c.Booking.LedgerDescription == "" {
		c.Booking.LedgerDescription = DefaultLedgerDescription
	}
	if c.Booking.SlotMinutes == 0 {
		c.Booking.SlotMinutes = 60
	}
	if c.Payment.Processor == "" {
		c.Payment.Processor = "paypal"
	}
	if c.Payment.Timeout <= 0 {
		c.Payment.Timeout = 15 * time.Second
	}
	if c.Notifier.Type == "" {
		c.Notifier.Type = "noop"
	}
	if c.Notifier.Redis.Stream == "" {
		c.Notifier.Redis.Stream = "booking:events"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "booking"
	}
}

// DefaultLedgerDescription is the ledger row description for paid bookings
const DefaultLedgerDescription = "Tutoring Payment – {{ .Title }} ({{ .Date }} {{ .Time }})"

// Validate checks values that would otherwise fail deep inside start-up
func (c *APIServerConfig) Validate() error {
	var errs []error
	switch c.Database.Type {
	case "sqlite", "postgres", "mysql":
	default:
		errs = append(errs, fmt.Errorf("unsupported database type: %q", c.Database.Type))
	}
	if c.JWT.SecretKey != "" && len(c.JWT.SecretKey) < 32 {
		errs = append(errs, errors.New("jwt.secret_key must be at least 32 characters"))
	}
	if c.Booking.SlotMinutes < 0 || (c.Booking.SlotMinutes > 0 && 24*60%c.Booking.SlotMinutes != 0) {
		errs = append(errs, fmt.Errorf("booking.slot_minutes must divide a day, got %d", c.Booking.SlotMinutes))
	}
	if c.Payment.Enabled && (c.Payment.BaseURL == "" || c.Payment.ClientID == "") {
		errs = append(errs, errors.New("payment.base_url and payment.client_id are required when payment is enabled"))
	}
	switch c.Notifier.Type {
	case "", "noop", "log", "redis", "composite":
	default:
		errs = append(errs, fmt.Errorf("unsupported notifier type: %q", c.Notifier.Type))
	}
	return errors.Join(errs...)
}
