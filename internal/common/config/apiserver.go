package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stemwithlyn/booking/pkg/trace"
)

type (
	APIServerConfig struct {
		Server     ServerConfig     `yaml:"server"`
		Database   DatabaseConfig   `yaml:"database"`
		Logger     LoggerConfig     `yaml:"logger"`
		JWT        JWTConfig        `yaml:"jwt"`
		SuperAdmin SuperAdminConfig `yaml:"super_admin"`
		I18n       I18nConfig       `yaml:"i18n"`
		Booking    BookingConfig    `yaml:"booking"`
		Payment    PaymentConfig    `yaml:"payment"`
		Notifier   NotifierConfig   `yaml:"notifier"`
		Metrics    MetricsConfig    `yaml:"metrics"`
		Tracing    trace.Config     `yaml:"tracing"`
	}

	ServerConfig struct {
		Port int    `yaml:"port"`
		Mode string `yaml:"mode"` // debug, release, test
	}

	// I18nConfig represents the internationalization configuration
	I18nConfig struct {
		Path        string `yaml:"path"` // Path to i18n translation files
		DefaultLang string `yaml:"default_lang"`
	}

	DatabaseConfig struct {
		Type     string `yaml:"type"`     // mysql, postgres, sqlite
		Host     string `yaml:"host"`     // localhost
		Port     int    `yaml:"port"`     // 3306 (for mysql), 5432 (for postgres)
		User     string `yaml:"user"`     // root (for mysql), postgres (for postgres)
		Password string `yaml:"password"` // password
		DBName   string `yaml:"dbname"`   // database name, file path for sqlite
		SSLMode  string `yaml:"sslmode"`  // disable (for postgres)
	}

	JWTConfig struct {
		SecretKey string        `yaml:"secret_key"`
		Duration  time.Duration `yaml:"duration"`
	}

	// BookingConfig tunes the booking engine
	BookingConfig struct {
		DefaultCategory    string   `yaml:"default_category"`
		TutoringCategories []string `yaml:"tutoring_categories"` // categories where siblings may share an email
		LedgerCategory     string   `yaml:"ledger_category"`
		LedgerDescription  string   `yaml:"ledger_description"` // text/template rendered per ledger row
		SlotMinutes        int      `yaml:"slot_minutes"`
	}

	// PaymentConfig describes the external payment processor
	PaymentConfig struct {
		Enabled      bool          `yaml:"enabled"`
		Processor    string        `yaml:"processor"`
		BaseURL      string        `yaml:"base_url"`
		ClientID     string        `yaml:"client_id"`
		ClientSecret string        `yaml:"client_secret"`
		Timeout      time.Duration `yaml:"timeout"`
	}

	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}
)

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case "postgres":
		return c.getPostgresDSN()
	case "mysql":
		return c.getMySQLDSN()
	case "sqlite":
		if c.DBName != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(c.DBName), 0755); err != nil {
				panic(fmt.Errorf("failed to create directory for sqlite database: %w", err))
			}
		}
		return c.DBName // For SQLite, DBName is the file path
	default:
		return ""
	}
}

// getPostgresDSN returns PostgreSQL connection string
func (c *DatabaseConfig) getPostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getMySQLDSN returns MySQL connection string
func (c *DatabaseConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// IsTutoringCategory reports whether siblings may share an email within category
func (c *BookingConfig) IsTutoringCategory(category string) bool {
	for _, cat := range c.TutoringCategories {
		if cat == category {
			return true
		}
	}
	return false
}
