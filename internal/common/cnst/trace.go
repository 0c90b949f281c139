package cnst

// Tracer names
const (
	TraceBooking = "booking/engine"
	TracePayment = "booking/payment"
)

// Span names
const (
	SpanCreateAppointments = "booking.create_appointments"
	SpanSelfCancel         = "booking.self_service.cancel"
	SpanSelfReschedule     = "booking.self_service.reschedule"
	SpanFinalizePayment    = "booking.payment.finalize"
	SpanVerifyOrder        = "payment.verify_order"
)

// Span attribute keys
const (
	AttrOrigin        = "booking.origin"
	AttrSlotDate      = "booking.slot.date"
	AttrSlotTime      = "booking.slot.time"
	AttrRecurrence    = "booking.recurrence"
	AttrCreatedCount  = "booking.created"
	AttrAppointmentID = "booking.appointment_id"
	AttrTransactionID = "payment.transaction_id"
	AttrOrderStatus   = "payment.order_status"
)
