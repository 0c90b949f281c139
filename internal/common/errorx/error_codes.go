package errorx

import (
	"fmt"
	"net/http"

	"github.com/stemwithlyn/booking/internal/i18n"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryValidation     ErrorCategory = "validation"
	CategoryAuthentication ErrorCategory = "authentication"
	CategoryAuthorization  ErrorCategory = "authorization"
	CategoryNotFound       ErrorCategory = "not_found"
	CategoryConflict       ErrorCategory = "conflict"
	CategoryPayment        ErrorCategory = "payment"
	CategoryInternal       ErrorCategory = "internal"
	CategoryExternal       ErrorCategory = "external"
)

// Severity represents the severity level of an error
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// APIError is a catalog entry. Handlers never mutate catalog values, use With* which copy.
type APIError struct {
	Code       string
	MessageID  string
	Category   ErrorCategory
	Severity   Severity
	HTTPStatus int
	Details    map[string]any
	TraceID    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Category, e.MessageID)
}

func (e *APIError) clone() *APIError {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details))
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	return &cp
}

// WithDetail returns a copy carrying key, details double as message template data
func (e *APIError) WithDetail(key string, value any) *APIError {
	cp := e.clone()
	cp.Details[key] = value
	return cp
}

var (
	// Validation (E1xxx)
	ErrInvalidInput = &APIError{
		Code: "E1001", MessageID: i18n.ErrorValidation,
		Category: CategoryValidation, Severity: SeverityInfo, HTTPStatus: http.StatusBadRequest,
	}
	ErrPaymentNotCompleted = &APIError{
		Code: "E1101", MessageID: i18n.ErrorPaymentNotCompleted,
		Category: CategoryPayment, Severity: SeverityWarning, HTTPStatus: http.StatusBadRequest,
	}

	// Authentication / authorization (E2xxx)
	ErrUnauthorized = &APIError{
		Code: "E2001", MessageID: i18n.ErrorUnauthorized,
		Category: CategoryAuthentication, Severity: SeverityInfo, HTTPStatus: http.StatusUnauthorized,
	}
	ErrInvalidCredentials = &APIError{
		Code: "E2002", MessageID: i18n.ErrorInvalidCredentials,
		Category: CategoryAuthentication, Severity: SeverityWarning, HTTPStatus: http.StatusUnauthorized,
	}
	ErrForbidden = &APIError{
		Code: "E2003", MessageID: i18n.ErrorForbidden,
		Category: CategoryAuthorization, Severity: SeverityWarning, HTTPStatus: http.StatusForbidden,
	}

	// Self-service limits (E3xxx)
	ErrLimitReached = &APIError{
		Code: "E3001", MessageID: i18n.ErrorLimitReached,
		Category: CategoryAuthorization, Severity: SeverityInfo, HTTPStatus: http.StatusForbidden,
	}

	// Not found (E404x)
	ErrAppointmentNotFound = &APIError{
		Code: "E4041", MessageID: i18n.ErrorAppointmentNotFound,
		Category: CategoryNotFound, Severity: SeverityInfo, HTTPStatus: http.StatusNotFound,
	}
	ErrResourceNotFound = &APIError{
		Code: "E4042", MessageID: i18n.ErrorResourceNotFound,
		Category: CategoryNotFound, Severity: SeverityInfo, HTTPStatus: http.StatusNotFound,
	}

	// Conflicts (E409x)
	ErrSlotConflict = &APIError{
		Code: "E4091", MessageID: i18n.ErrorSlotConflict,
		Category: CategoryConflict, Severity: SeverityInfo, HTTPStatus: http.StatusConflict,
	}
	ErrNoSlotsAvailable = &APIError{
		Code: "E4092", MessageID: i18n.ErrorNoSlotsAvailable,
		Category: CategoryConflict, Severity: SeverityInfo, HTTPStatus: http.StatusConflict,
	}
	ErrDuplicatePerson = &APIError{
		Code: "E4093", MessageID: i18n.ErrorDuplicatePerson,
		Category: CategoryConflict, Severity: SeverityInfo, HTTPStatus: http.StatusConflict,
	}
	ErrDuplicateEntity = &APIError{
		Code: "E4094", MessageID: i18n.ErrorDuplicateEntity,
		Category: CategoryConflict, Severity: SeverityInfo, HTTPStatus: http.StatusConflict,
	}

	// Internal (E5xxx)
	ErrServerPanic = &APIError{
		Code: "E5000", MessageID: i18n.ErrorServerPanic,
		Category: CategoryInternal, Severity: SeverityCritical, HTTPStatus: http.StatusInternalServerError,
	}
	ErrInternalServer = &APIError{
		Code: "E5001", MessageID: i18n.ErrorInternalServer,
		Category: CategoryInternal, Severity: SeverityCritical, HTTPStatus: http.StatusInternalServerError,
	}
	ErrPaymentUnavailable = &APIError{
		Code: "E5021", MessageID: i18n.ErrorPaymentUnavailable,
		Category: CategoryExternal, Severity: SeverityError, HTTPStatus: http.StatusBadGateway,
	}
)

// ValidationError creates a validation error naming the offending input
func ValidationError(reason string) *APIError {
	return ErrInvalidInput.WithDetail("Reason", reason)
}
