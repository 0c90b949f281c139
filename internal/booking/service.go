package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/config"
	"github.com/stemwithlyn/booking/internal/common/dto"
	"github.com/stemwithlyn/booking/internal/notifier"
	"github.com/stemwithlyn/booking/internal/payment"
	"github.com/stemwithlyn/booking/internal/template"
	"github.com/stemwithlyn/booking/pkg/metrics"
	"github.com/stemwithlyn/booking/pkg/trace"
)

// Self-service allowances per appointment
const (
	CancelLimit     = 1
	RescheduleLimit = 1
)

const notifyTimeout = 5 * time.Second

// PaymentVerifier looks up an order at the payment processor
type PaymentVerifier interface {
	VerifyOrder(ctx context.Context, orderID string) (*payment.Confirmation, error)
}

// Service is the booking engine. All calendar, ledger and self-service
// mutations go through it.
type Service struct {
	db        database.Database
	cfg       config.BookingConfig
	clients   *ClientResolver
	conflicts *ConflictChecker
	renderer  *template.Renderer
	notifier  notifier.Notifier
	staff     []config.StaffContact
	verifier  PaymentVerifier
	metrics   *metrics.Metrics
	tracer    *trace.Builder
	logger    *zap.Logger
}

// Option configures optional collaborators of a Service
type Option func(*Service)

// WithNotifier publishes committed changes, staff is attached to every event
func WithNotifier(n notifier.Notifier, staff []config.StaffContact) Option {
	return func(s *Service) {
		s.notifier = n
		s.staff = staff
	}
}

// WithPaymentVerifier enables FinalizePayment
func WithPaymentVerifier(v PaymentVerifier) Option {
	return func(s *Service) { s.verifier = v }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService wires the engine to its store
func NewService(db database.Database, cfg config.BookingConfig, logger *zap.Logger, opts ...Option) *Service {
	if cfg.LedgerDescription == "" {
		cfg.LedgerDescription = config.DefaultLedgerDescription
	}
	if cfg.SlotMinutes <= 0 {
		cfg.SlotMinutes = 60
	}
	s := &Service{
		db:        db,
		cfg:       cfg,
		conflicts: NewConflictChecker(db),
		renderer:  template.NewRenderer(),
		notifier:  notifier.NoopNotifier{},
		tracer:    trace.Tracer(cnst.TraceBooking),
		logger:    logger.Named("booking"),
	}
	s.clients = NewClientResolver(db, s.cfg.IsTutoringCategory)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateResult lists what a booking request produced
type CreateResult struct {
	Appointments []*database.Appointment
	Requested    int
	// Skipped holds the dates an admin booking passed over because they were taken
	Skipped []string
}

// bookingPlan is a validated and normalized booking request
type bookingPlan struct {
	origin      string
	title       string
	description string
	client      ClientInput
	dates       []string
	time        string
	endTime     *string
	price       decimal.Decimal
	amount      decimal.Decimal
	paid        bool
	addons      string
	recurrence  string
}

func (s *Service) planBooking(req *dto.CreateAppointmentRequest, admin bool) (*bookingPlan, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("title", "is required")
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, invalid("client_name", "is required")
	}
	date, slot, err := normalizeSlot(req.Date, req.Time.String())
	if err != nil {
		return nil, err
	}
	endTime, err := normalizeOptionalTime("end_time", req.EndTime.String())
	if err != nil {
		return nil, err
	}
	dates, err := ExpandDates(RecurrenceRule{
		StartDate:   date,
		Recurrence:  req.Recurrence,
		Occurrences: req.Occurrences,
		Weekdays:    req.Weekdays,
	})
	if err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if req.AmountPaid != nil {
		amount = *req.AmountPaid
	}
	if amount.IsNegative() {
		return nil, invalid("amount_paid", "must not be negative")
	}
	price := amount
	if admin && req.Price != nil {
		price = *req.Price
	}
	if price.IsNegative() {
		return nil, invalid("price", "must not be negative")
	}

	var addons string
	if raw := strings.TrimSpace(string(req.Addons)); raw != "" && raw != "null" {
		if !json.Valid(req.Addons) {
			return nil, invalid("addons", "must be JSON")
		}
		addons = raw
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = s.cfg.DefaultCategory
	}

	origin := cnst.OriginClient
	if admin {
		origin = cnst.OriginAdmin
	}
	return &bookingPlan{
		origin:      origin,
		title:       title,
		description: req.Description,
		client: ClientInput{
			Name:     req.ClientName,
			Email:    req.ClientEmail,
			Phone:    req.ClientPhone,
			Category: category,
		},
		dates:      dates,
		time:       slot,
		endTime:    endTime,
		price:      price,
		amount:     amount,
		paid:       !admin && amount.IsPositive(),
		addons:     addons,
		recurrence: req.Recurrence,
	}, nil
}

// CreateAppointments books one slot or a recurring series.
//
// A client booking is all or nothing, one taken date fails the whole request
// with ErrSlotConflict. An admin booking commits each free date on its own and
// skips taken ones, failing with ErrNoSlotsAvailable only when none was free.
// Only the caller's token decides whether the admin path may be used.
func (s *Service) CreateAppointments(ctx context.Context, who Identity, req *dto.CreateAppointmentRequest) (res *CreateResult, err error) {
	started := time.Now()
	if req.IsAdmin && !who.IsAdmin() {
		return nil, ErrForbidden
	}
	plan, err := s.planBooking(req, req.IsAdmin)
	if err != nil {
		s.metrics.BookingDone(originOf(req.IsAdmin), resultLabel(err), started)
		return nil, err
	}

	scope := s.tracer.Start(ctx, cnst.SpanCreateAppointments).WithAttrs(
		attribute.String(cnst.AttrOrigin, plan.origin),
		attribute.String(cnst.AttrSlotDate, plan.dates[0]),
		attribute.String(cnst.AttrSlotTime, plan.time),
		attribute.String(cnst.AttrRecurrence, plan.recurrence))
	ctx = scope.Ctx
	defer func() {
		scope.Fail(err)
		scope.End()
		s.metrics.BookingDone(plan.origin, resultLabel(err), started)
	}()

	if req.IsAdmin {
		res, err = s.createBestEffort(ctx, plan)
	} else {
		res, err = s.createAtomic(ctx, plan)
	}
	fields := []zap.Field{
		zap.String("origin", plan.origin),
		zap.Strings("dates", plan.dates),
		zap.String("time", plan.time),
	}
	if err != nil {
		s.logOutcome("booking rejected", err, fields...)
		return res, err
	}

	scope.WithAttrs(attribute.Int(cnst.AttrCreatedCount, len(res.Appointments)))
	s.logger.Info("appointments booked", append(fields,
		zap.Uints("ids", appointmentIDs(res.Appointments)),
		zap.Strings("skipped", res.Skipped))...)

	ev := s.appointmentEvent(notifier.EventAppointmentCreated, plan.origin, res.Appointments...)
	ev.ClientName = plan.client.Name
	ev.ClientEmail = plan.client.Email
	if plan.paid {
		ev.Amount = plan.amount.StringFixed(2)
	}
	s.publish(ctx, ev)
	return res, nil
}

func (s *Service) createAtomic(ctx context.Context, plan *bookingPlan) (*CreateResult, error) {
	res := &CreateResult{Requested: len(plan.dates)}
	err := s.db.Transaction(ctx, func(ctx context.Context) error {
		client, err := s.clients.Resolve(ctx, plan.client)
		if err != nil {
			return err
		}
		created := make([]*database.Appointment, 0, len(plan.dates))
		for _, date := range plan.dates {
			appt, err := s.insertAppointment(ctx, plan, client.ID, date, true)
			if err != nil {
				return err
			}
			created = append(created, appt)
		}
		if plan.paid {
			if _, err := s.recordLedger(ctx, created[0], ledgerEntry{
				amount:    plan.amount,
				processor: cnst.ProcessorManual,
			}); err != nil {
				return err
			}
		}
		res.Appointments = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) createBestEffort(ctx context.Context, plan *bookingPlan) (*CreateResult, error) {
	res := &CreateResult{Requested: len(plan.dates)}
	client, err := s.clients.Resolve(ctx, plan.client)
	if err != nil {
		return nil, err
	}
	for _, date := range plan.dates {
		var appt *database.Appointment
		err := s.db.Transaction(ctx, func(ctx context.Context) error {
			var err error
			appt, err = s.insertAppointment(ctx, plan, client.ID, date, false)
			return err
		})
		switch {
		case errors.Is(err, ErrSlotConflict):
			s.logger.Info("admin booking skipped taken date", zap.String("date", date), zap.String("time", plan.time))
			res.Skipped = append(res.Skipped, date)
		case err != nil:
			return res, err
		default:
			res.Appointments = append(res.Appointments, appt)
		}
	}
	if len(res.Appointments) == 0 {
		return res, ErrNoSlotsAvailable
	}
	return res, nil
}

// insertAppointment pre-checks the slot and inserts. The unique slot index
// turns a lost race into ErrSlotConflict as well.
func (s *Service) insertAppointment(ctx context.Context, plan *bookingPlan, clientID uint, date string, honourBlocks bool) (*database.Appointment, error) {
	var (
		free bool
		err  error
	)
	if honourBlocks {
		free, err = s.conflicts.Available(ctx, date, plan.time, 0)
	} else {
		var taken bool
		taken, err = s.conflicts.HasConflict(ctx, date, plan.time, 0)
		free = !taken
	}
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, slotConflict(date, plan.time)
	}

	appt := &database.Appointment{
		Title:       plan.title,
		ClientID:    clientID,
		Date:        date,
		Time:        plan.time,
		EndTime:     plan.endTime,
		Description: plan.description,
		Price:       plan.price,
		Paid:        plan.paid,
		Addons:      plan.addons,
	}
	if err := s.db.CreateAppointment(ctx, appt); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, slotConflict(date, plan.time)
		}
		return nil, err
	}
	return appt, nil
}

func slotConflict(date, time string) error {
	return fmt.Errorf("%w: %s %s", ErrSlotConflict, date, time)
}

func (s *Service) appointmentEvent(typ notifier.EventType, origin string, appts ...*database.Appointment) *notifier.Event {
	ev := notifier.NewEvent(typ)
	ev.Origin = origin
	ev.AppointmentIDs = appointmentIDs(appts)
	for _, a := range appts {
		ev.Dates = append(ev.Dates, a.Date)
	}
	if len(appts) > 0 {
		ev.Title = appts[0].Title
		ev.Time = appts[0].Time
		if appts[0].EndTime != nil {
			ev.EndTime = *appts[0].EndTime
		}
	}
	return ev
}

// publish runs after commit, a failed delivery is logged and counted only
func (s *Service) publish(ctx context.Context, ev *notifier.Event) {
	if s.notifier == nil {
		return
	}
	ev.Staff = s.staff
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	status := "sent"
	if err := s.notifier.Notify(ctx, ev); err != nil {
		status = "failed"
		s.logger.Warn("failed to publish booking event",
			zap.String("type", string(ev.Type)),
			zap.Uints("ids", ev.AppointmentIDs),
			zap.Error(err))
	}
	s.metrics.Notification(string(ev.Type), status)
}

// logOutcome logs expected rejections at Info and everything else at Error
func (s *Service) logOutcome(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if isDomainError(err) {
		s.logger.Info(msg, fields...)
		return
	}
	s.logger.Error(msg, fields...)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrValidation, ErrSlotConflict, ErrNoSlotsAvailable, ErrLimitReached, ErrOwnership,
		ErrNotFound, ErrDuplicatePerson, ErrPaymentNotCompleted, ErrForbidden,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, ErrSlotConflict), errors.Is(err, ErrNoSlotsAvailable):
		return "conflict"
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicatePerson), errors.Is(err, ErrForbidden),
		errors.Is(err, ErrPaymentNotCompleted):
		return "rejected"
	default:
		return "error"
	}
}

func originOf(admin bool) string {
	if admin {
		return cnst.OriginAdmin
	}
	return cnst.OriginClient
}

func appointmentIDs(appts []*database.Appointment) []uint {
	ids := make([]uint, 0, len(appts))
	for _, a := range appts {
		ids = append(ids, a.ID)
	}
	return ids
}
