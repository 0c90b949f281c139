package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnv(t *testing.T) {
	t.Setenv("X_A", "va")
	in := []byte("a: ${X_A:da}\nb: ${X_B:db}")
	out := resolveEnv(in)
	assert.Contains(t, string(out), "a: va")
	assert.Contains(t, string(out), "b: db")
}

func TestLoadConfig_APIServer(t *testing.T) {
	tmp := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(tmp)
	t.Setenv("BOOKING_DB", filepath.Join(tmp, "data", "test.db"))

	yaml := `
server:
  port: 8088
database:
  type: sqlite
  dbname: ${BOOKING_DB:./data/booking.db}
jwt:
  secret_key: this-is-a-very-long-secret-key-for-testing
  duration: 2h
booking:
  tutoring_categories: ["StemwithLyn", "Tutoring"]
  slot_minutes: 30
notifier:
  type: redis
  redis:
    addr: 127.0.0.1:6379
  staff:
    - name: Lyn
      phone: "5550100"
      carrier: att
`
	file := filepath.Join(tmp, "apiserver.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	cfg, path, err := LoadConfig("apiserver.yaml")
	require.NoError(t, err)
	realFile, _ := filepath.EvalSymlinks(file)
	realPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, realFile, realPath)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, filepath.Join(tmp, "data", "test.db"), cfg.Database.DBName)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Duration)
	assert.True(t, cfg.Booking.IsTutoringCategory("Tutoring"))
	assert.False(t, cfg.Booking.IsTutoringCategory("Consulting"))
	assert.Equal(t, 30, cfg.Booking.SlotMinutes)
	assert.Equal(t, "booking:events", cfg.Notifier.Redis.Stream)
	require.Len(t, cfg.Notifier.Staff, 1)
	assert.Equal(t, "att", cfg.Notifier.Staff[0].Carrier)

	// defaults
	assert.Equal(t, DefaultLedgerDescription, cfg.Booking.LedgerDescription)
	assert.Equal(t, "Tutoring", cfg.Booking.LedgerCategory)
	assert.Equal(t, "en", cfg.I18n.DefaultLang)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &APIServerConfig{}
	cfg.SetDefaults()
	assert.NoError(t, cfg.Validate())

	bad := *cfg
	bad.Database.Type = "oracle"
	bad.JWT.SecretKey = "short"
	bad.Booking.SlotMinutes = 7
	bad.Notifier.Type = "carrier-pigeon"
	err := bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
	assert.Contains(t, err.Error(), "jwt.secret_key")
	assert.Contains(t, err.Error(), "slot_minutes")
	assert.Contains(t, err.Error(), "notifier type")

	pay := *cfg
	pay.Payment.Enabled = true
	assert.Error(t, pay.Validate())
}

func TestGetDSN(t *testing.T) {
	pg := &DatabaseConfig{Type: "postgres", User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", pg.GetDSN())

	my := &DatabaseConfig{Type: "mysql", User: "u", Password: "p", Host: "h", Port: 3306, DBName: "d"}
	assert.Contains(t, my.GetDSN(), "u:p@tcp(h:3306)/d")

	lite := &DatabaseConfig{Type: "sqlite", DBName: ":memory:"}
	assert.Equal(t, ":memory:", lite.GetDSN())

	assert.Equal(t, "", (&DatabaseConfig{Type: "x"}).GetDSN())
}
