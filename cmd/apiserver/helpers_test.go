package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/common/config"
)

const testSecret = "this-is-a-very-long-secret-key-for-testing-purposes-only"

func TestInitLogger(t *testing.T) {
	cfg := &config.APIServerConfig{}
	lg := initLogger(cfg)
	require.NotNil(t, lg)
	_ = lg.Sync()
}

func TestInitDatabase_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "apiserver.db")
	db := initDatabase(zap.NewNop(), &config.DatabaseConfig{Type: "sqlite", DBName: dbPath})
	t.Cleanup(func() { _ = db.Close() })
	assert.FileExists(t, dbPath)
}

func TestInitNotifier(t *testing.T) {
	for _, typ := range []string{"", "noop", "log", "composite"} {
		n := initNotifier(context.Background(), zap.NewNop(), &config.NotifierConfig{Type: typ})
		require.NotNil(t, n, typ)
		assert.NoError(t, n.Close())
	}
}

func TestInitI18n(t *testing.T) {
	// a missing directory only logs
	initI18n(zap.NewNop(), &config.I18nConfig{Path: "configs/i18n", DefaultLang: "en"})
	initI18n(zap.NewNop(), &config.I18nConfig{Path: "../../configs/i18n", DefaultLang: "en"})
}

func routerConfig(dbPath string) *config.APIServerConfig {
	cfg := &config.APIServerConfig{
		Database:   config.DatabaseConfig{Type: "sqlite", DBName: dbPath},
		SuperAdmin: config.SuperAdminConfig{Username: "admin", Password: "admin-password"},
		JWT:        config.JWTConfig{SecretKey: testSecret, Duration: time.Hour},
		Metrics:    config.MetricsConfig{Enabled: true, Namespace: "test"},
	}
	cfg.SetDefaults()
	cfg.Server.Mode = "test"
	return cfg
}

func TestInitRouter(t *testing.T) {
	ctx := context.Background()
	cfg := routerConfig(filepath.Join(t.TempDir(), "api.db"))
	db := initDatabase(zap.NewNop(), &cfg.Database)
	t.Cleanup(func() { _ = db.Close() })
	_, _, err := database.InitSuperAdmin(ctx, db, &cfg.SuperAdmin)
	require.NoError(t, err)

	r, err := initRouter(ctx, db, initNotifier(ctx, zap.NewNop(), &cfg.Notifier), cfg, zap.NewNop())
	require.NoError(t, err)

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"POST /api/auth/login",
		"POST /api/users",
		"POST /appointments",
		"GET /appointments",
		"PATCH /appointments/:id",
		"DELETE /appointments/:id",
		"PATCH /appointments/:id/paid",
		"GET /client/appointments",
		"POST /client/appointments/:id/cancel",
		"POST /client/appointments/:id/reschedule",
		"POST /api/finalize-payment-and-book",
		"GET /availability",
		"POST /schedule-blocks",
		"POST /weekly-availability",
		"GET /metrics",
	} {
		assert.True(t, routes[want], want)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/appointments", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}

func TestInitRouter_RejectsWeakSecret(t *testing.T) {
	cfg := routerConfig(":memory:")
	cfg.JWT.SecretKey = ""
	db := initDatabase(zap.NewNop(), &cfg.Database)
	t.Cleanup(func() { _ = db.Close() })

	_, err := initRouter(context.Background(), db, initNotifier(context.Background(), zap.NewNop(), &cfg.Notifier), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestMintToken(t *testing.T) {
	ctx := context.Background()
	cfg := routerConfig(":memory:")
	db := initDatabase(zap.NewNop(), &cfg.Database)
	t.Cleanup(func() { _ = db.Close() })
	_, _, err := database.InitSuperAdmin(ctx, db, &cfg.SuperAdmin)
	require.NoError(t, err)
	require.NoError(t, db.CreateUser(ctx, &database.User{Username: "parent", PasswordHash: "x", Role: "client"}))

	token, err := mintToken(ctx, db, cfg.JWT, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = mintToken(ctx, db, cfg.JWT, "parent")
	assert.Error(t, err)
	_, err = mintToken(ctx, db, cfg.JWT, "ghost")
	assert.ErrorIs(t, err, database.ErrRecordNotFound)
}
