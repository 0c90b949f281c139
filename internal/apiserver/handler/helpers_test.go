package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/apiserver/middleware"
	"github.com/stemwithlyn/booking/internal/auth/jwt"
	"github.com/stemwithlyn/booking/internal/booking"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/config"
	"github.com/stemwithlyn/booking/internal/common/errorx"
)

const adminPassword = "correct-horse-battery"

type testEnv struct {
	db     database.Database
	jwt    *jwt.Service
	router *gin.Engine
	admin  *database.User
	token  string
}

func newTestEnv(t *testing.T, opts ...booking.Option) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	jwtService, err := jwt.NewService(config.JWTConfig{
		SecretKey: "this-is-a-very-long-secret-key-for-testing",
		Duration:  time.Hour,
	})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &database.User{Username: "lyn", PasswordHash: string(hash), Role: cnst.RoleAdmin}
	require.NoError(t, db.CreateUser(context.Background(), admin))
	token, err := jwtService.GenerateToken(admin.ID, admin.Username, admin.Role)
	require.NoError(t, err)

	lg := zap.NewNop()
	svc := booking.NewService(db, config.BookingConfig{
		DefaultCategory:    "StemwithLyn",
		TutoringCategories: []string{"StemwithLyn"},
		LedgerCategory:     "Tutoring",
		SlotMinutes:        60,
	}, lg, opts...)
	eh := errorx.NewErrorHandler(lg, MapBookingError)

	authH := NewAuth(db, jwtService, eh, lg)
	apptH := NewAppointment(svc, eh)
	portalH := NewPortal(svc, eh)
	payH := NewPayment(svc, eh)
	schedH := NewSchedule(svc, eh)

	r := gin.New()
	r.Use(eh.RecoveryMiddleware())
	r.POST("/api/auth/login", authH.Login)
	r.POST("/api/finalize-payment-and-book", payH.Finalize)
	r.GET("/availability", schedH.Availability)
	r.POST("/appointments", middleware.OptionalJWTMiddleware(jwtService, eh), apptH.Create)

	operator := r.Group("", middleware.JWTAuthMiddleware(jwtService, eh), middleware.AdminOnly(eh))
	operator.POST("/api/users", authH.InviteUser)
	operator.GET("/appointments", apptH.List)
	operator.GET("/appointments/:id", apptH.Get)
	operator.PATCH("/appointments/:id", apptH.Update)
	operator.DELETE("/appointments/:id", apptH.Delete)
	operator.PATCH("/appointments/:id/paid", apptH.SetPaid)
	operator.POST("/schedule-blocks", schedH.CreateBlock)
	operator.GET("/schedule-blocks", schedH.ListBlocks)
	operator.DELETE("/schedule-blocks/:id", schedH.DeleteBlock)
	operator.POST("/weekly-availability", schedH.SaveWeekly)
	operator.GET("/weekly-availability", schedH.ListWeekly)

	portal := r.Group("/client/appointments", middleware.ClientIdentity(db, eh))
	portal.GET("", portalH.List)
	portal.POST("/:id/cancel", portalH.Cancel)
	portal.POST("/:id/reschedule", portalH.Reschedule)

	return &testEnv{db: db, jwt: jwtService, router: r, admin: admin, token: token}
}

type request struct {
	method  string
	path    string
	body    any
	headers map[string]string
}

func (e *testEnv) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if req.body != nil {
		switch b := req.body.(type) {
		case string:
			body.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&body).Encode(b))
		}
	}
	r := httptest.NewRequest(req.method, req.path, &body)
	r.Header.Set("Content-Type", "application/json")
	for k, v := range req.headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func (e *testEnv) bearer() map[string]string {
	return map[string]string{cnst.HeaderAuthorization: cnst.BearerPrefix + e.token}
}

// portalUser creates a client-role user linked to one client record
func (e *testEnv) portalUser(t *testing.T, username string) (map[string]string, *database.Client) {
	t.Helper()
	ctx := context.Background()
	u := &database.User{Username: username, PasswordHash: "x", Role: cnst.RoleClient}
	require.NoError(t, e.db.CreateUser(ctx, u))
	c := &database.Client{FullName: username, Category: "Consulting", UserID: &u.ID}
	require.NoError(t, e.db.CreateClient(ctx, c))
	return map[string]string{
		cnst.XUserID:   strconv.FormatUint(uint64(u.ID), 10),
		cnst.XUsername: username,
	}, c
}

func (e *testEnv) appointment(t *testing.T, clientID uint, date, tm string) *database.Appointment {
	t.Helper()
	a := &database.Appointment{Title: "Lesson", ClientID: clientID, Date: date, Time: tm}
	require.NoError(t, e.db.CreateAppointment(context.Background(), a))
	return a
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decode(t, w)["code"].(string)
	return code
}

func bookingBody(date string, tm any) map[string]any {
	return map[string]any{
		"title":        "Algebra",
		"client_name":  "Sam Student",
		"client_email": "sam@example.com",
		"category":     "Consulting",
		"date":         date,
		"time":         tm,
	}
}
