package http

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-api/internal/observability"
	apperrors "github.com/spec-kit/catalog-api/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares. Order matters: the error
// responder sits outside the exception tracker so the tracker sees the raw
// handler error, and panics are turned into errors inside the tracker.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, tracker *observability.ExceptionTracker, timeout time.Duration) {
	app.Use(requestIDMiddleware())
	app.Use(observability.RequestLogger(logger))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger))
	app.Use(tracker.Middleware())
	app.Use(recoverMiddleware(logger))
}

func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.Clone(c.Get(fiber.HeaderXRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(observability.RequestIDKey, id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func recoverMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
		}()
		return c.Next()
	}
}

// errorHandlingMiddleware is the default error response path: it renders any
// error left by the chain and clears it.
func errorHandlingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		domainErr := apperrors.ToDomainError(err)
		response := fiber.Map{"error": fiber.Map{
			"code":    domainErr.Code,
			"message": domainErr.Message,
		}}
		if len(domainErr.Details) > 0 {
			response["error"].(fiber.Map)["details"] = domainErr.Details
		}
		if domainErr.HTTPStatus >= 500 {
			logger.Error("request failed", zap.Error(domainErr))
		}
		return c.Status(domainErr.HTTPStatus).JSON(response)
	}
}
