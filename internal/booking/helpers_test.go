package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/config"
	"github.com/stemwithlyn/booking/internal/common/dto"
	"github.com/stemwithlyn/booking/internal/notifier"
	"github.com/stemwithlyn/booking/pkg/metrics"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []*notifier.Event
}

func (r *recordingNotifier) Notify(_ context.Context, ev *notifier.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingNotifier) Close() error { return nil }

func (r *recordingNotifier) types() []notifier.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifier.EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	db     database.Database
	svc    *Service
	events *recordingNotifier
}

var testStaff = []config.StaffContact{{Name: "Lyn", Phone: "5550100", Carrier: "att"}}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	db, err := database.NewSQLite(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	events := &recordingNotifier{}
	cfg := config.BookingConfig{
		DefaultCategory:    "StemwithLyn",
		TutoringCategories: []string{"StemwithLyn"},
		LedgerCategory:     "Tutoring",
		LedgerDescription:  config.DefaultLedgerDescription,
		SlotMinutes:        60,
	}
	opts = append([]Option{
		WithNotifier(events, testStaff),
		WithMetrics(metrics.New(config.MetricsConfig{Namespace: "test"})),
	}, opts...)
	return &fixture{
		db:     db,
		svc:    NewService(db, cfg, zap.NewNop(), opts...),
		events: events,
	}
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func bookingReq(date string, tm string) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		Title:      "Algebra",
		ClientName: "Sam Student",
		Category:   "Consulting",
		Date:       date,
		Time:       dto.FlexTime(tm),
	}
}

var admin = NewIdentity(1, "lyn", cnst.RoleAdmin)

// portalUser creates a user owning one client and returns its identity and client id
func (f *fixture) portalUser(t *testing.T, username string) (Identity, uint) {
	t.Helper()
	ctx := context.Background()
	u := &database.User{Username: username, PasswordHash: "x", Role: cnst.RoleClient}
	require.NoError(t, f.db.CreateUser(ctx, u))
	c := &database.Client{FullName: username, Category: "Consulting", UserID: &u.ID}
	require.NoError(t, f.db.CreateClient(ctx, c))
	return NewIdentity(u.ID, username, cnst.RoleClient), c.ID
}

func (f *fixture) appointment(t *testing.T, clientID uint, date, tm string) *database.Appointment {
	t.Helper()
	a := &database.Appointment{Title: "Lesson", ClientID: clientID, Date: date, Time: tm}
	require.NoError(t, f.db.CreateAppointment(context.Background(), a))
	return a
}

func (f *fixture) profits(t *testing.T) []*database.Profit {
	t.Helper()
	// at most a handful of rows exist in a test, probe by appointment id
	var out []*database.Profit
	appts, err := f.db.ListAppointments(context.Background(), database.AppointmentFilter{})
	require.NoError(t, err)
	for _, a := range appts {
		if p, err := f.db.GetProfitByAppointment(context.Background(), a.ID); err == nil {
			out = append(out, p)
		}
	}
	return out
}
