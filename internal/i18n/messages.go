package i18n

// Error message IDs
const (
	ErrorBadRequest          = "ErrorBadRequest"
	ErrorValidation          = "ErrorValidation"
	ErrorUnauthorized        = "ErrorUnauthorized"
	ErrorInvalidCredentials  = "ErrorInvalidCredentials"
	ErrorForbidden           = "ErrorForbidden"
	ErrorLimitReached        = "ErrorLimitReached"
	ErrorAppointmentNotFound = "ErrorAppointmentNotFound"
	ErrorResourceNotFound    = "ErrorResourceNotFound"
	ErrorSlotConflict        = "ErrorSlotConflict"
	ErrorNoSlotsAvailable    = "ErrorNoSlotsAvailable"
	ErrorDuplicatePerson     = "ErrorDuplicatePerson"
	ErrorDuplicateEntity     = "ErrorDuplicateEntity"
	ErrorPaymentNotCompleted = "ErrorPaymentNotCompleted"
	ErrorPaymentUnavailable  = "ErrorPaymentUnavailable"
	ErrorInternalServer      = "ErrorInternalServer"
	ErrorServerPanic         = "ErrorServerPanic"
)

// Success message IDs
const (
	SuccessLogin                  = "SuccessLogin"
	SuccessAppointmentsCreated    = "SuccessAppointmentsCreated"
	SuccessAppointmentUpdated     = "SuccessAppointmentUpdated"
	SuccessAppointmentDeleted     = "SuccessAppointmentDeleted"
	SuccessAppointmentCancelled   = "SuccessAppointmentCancelled"
	SuccessAppointmentRescheduled = "SuccessAppointmentRescheduled"
	SuccessPaymentStatusUpdated   = "SuccessPaymentStatusUpdated"
	SuccessPaymentFinalized       = "SuccessPaymentFinalized"
	SuccessPaymentAlreadyBooked   = "SuccessPaymentAlreadyBooked"
	SuccessScheduleBlockCreated   = "SuccessScheduleBlockCreated"
	SuccessScheduleBlockDeleted   = "SuccessScheduleBlockDeleted"
	SuccessAvailabilitySaved      = "SuccessAvailabilitySaved"
	SuccessUserInvited            = "SuccessUserInvited"
)
