package errorx

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/i18n"
	"go.uber.org/zap"
)

// Mapper turns a domain error into a catalog entry, nil when it does not apply
type Mapper func(err error) *APIError

// ErrorHandler provides unified error handling capabilities
type ErrorHandler struct {
	logger  *zap.Logger
	mappers []Mapper
}

// NewErrorHandler creates a new error handler. Mappers run in order.
func NewErrorHandler(logger *zap.Logger, mappers ...Mapper) *ErrorHandler {
	return &ErrorHandler{logger: logger.Named("errorx"), mappers: mappers}
}

// HandleError writes {"error", "code", "traceId"} for err
func (h *ErrorHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	apiErr := h.ConvertToAPIError(err).clone()
	apiErr.TraceID = ExtractTraceID(c)

	h.logError(c, apiErr, err)

	c.AbortWithStatusJSON(apiErr.HTTPStatus, gin.H{
		"error":   i18n.TranslateMessage(c, apiErr.MessageID, apiErr.Details),
		"code":    apiErr.Code,
		"traceId": apiErr.TraceID,
	})
}

// ConvertToAPIError resolves err through the mappers, unknown errors are internal
func (h *ErrorHandler) ConvertToAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	for _, m := range h.mappers {
		if mapped := m(err); mapped != nil {
			return mapped
		}
	}
	return ErrInternalServer
}

func (h *ErrorHandler) logError(c *gin.Context, apiErr *APIError, originalErr error) {
	fields := []zap.Field{
		zap.String("trace_id", apiErr.TraceID),
		zap.String("error_code", apiErr.Code),
		zap.String("category", string(apiErr.Category)),
		zap.Int("http_status", apiErr.HTTPStatus),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("client_ip", c.ClientIP()),
		zap.Error(originalErr),
	}
	switch apiErr.Severity {
	case SeverityCritical:
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		fields = append(fields, zap.String("stack_trace", string(buf[:n])))
		h.logger.Error(apiErr.MessageID, fields...)
	case SeverityError:
		h.logger.Error(apiErr.MessageID, fields...)
	case SeverityWarning:
		h.logger.Warn(apiErr.MessageID, fields...)
	default:
		h.logger.Info(apiErr.MessageID, fields...)
	}
}

// RecoveryMiddleware converts panics into E5000 responses
func (h *ErrorHandler) RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		h.HandleError(c, ErrServerPanic.WithDetail("panic", fmt.Sprintf("%v", recovered)))
	})
}

// ExtractTraceID reuses the request's trace id or generates one
func ExtractTraceID(c *gin.Context) string {
	if traceID := c.GetString(cnst.CtxKeyTraceID); traceID != "" {
		return traceID
	}
	traceID := c.GetHeader(cnst.XTraceID)
	if traceID == "" {
		traceID = uuid.New().String()
	}
	c.Set(cnst.CtxKeyTraceID, traceID)
	return traceID
}
