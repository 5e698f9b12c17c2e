package observability

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-api/pkg/util/errorutil"
)

// UnknownEndpoint labels failures on requests that matched no named route.
const UnknownEndpoint = "unknown"

// Scope describes the request a unit of work is handling.
type Scope struct {
	Endpoint  string
	Method    string
	RequestID string
}

// ExceptionTracker observes handler failures: it logs and counts them,
// then hands the same error back to the caller.
type ExceptionTracker struct {
	logger  *zap.Logger
	metrics *Registry
}

// NewExceptionTracker wires a tracker to the shared registry.
func NewExceptionTracker(logger *zap.Logger, metrics *Registry) *ExceptionTracker {
	return &ExceptionTracker{logger: logger, metrics: metrics}
}

// Track runs work and records its error, if any. The returned error is
// always the one work returned.
func (t *ExceptionTracker) Track(scope Scope, work func() error) error {
	err := work()
	if err != nil {
		t.observe(scope, err)
	}
	return err
}

// Middleware tracks every downstream handler. The endpoint label is the
// matched route's name, read after the chain ran. The method is copied
// because fiber reuses request buffers and label values outlive the request.
func (t *ExceptionTracker) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}
		t.observe(Scope{
			Endpoint:  c.Route().Name,
			Method:    strings.Clone(c.Method()),
			RequestID: requestID(c),
		}, err)
		return err
	}
}

func (t *ExceptionTracker) observe(scope Scope, err error) {
	// Recording is best effort; it must never replace the handler's error.
	defer func() {
		if r := recover(); r != nil {
			t.logger.Warn("exception tracking failed", zap.Any("panic", r))
		}
	}()

	endpoint := scope.Endpoint
	if endpoint == "" {
		endpoint = UnknownEndpoint
	}
	kind := errorutil.Kind(err)

	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("method", scope.Method),
		zap.String("exception_type", kind),
		zap.String("error", err.Error()),
	}
	if scope.RequestID != "" {
		fields = append(fields, zap.String(RequestIDKey, scope.RequestID))
	}
	t.logger.Error("request exception", fields...)

	t.metrics.RecordException(endpoint, scope.Method, kind)
}
