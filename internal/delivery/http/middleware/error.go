package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/hamzahalilovic/social-network-developers/internal/pkg/response"
	"github.com/hamzahalilovic/social-network-developers/internal/pkg/validate"
)

// AppError carries an HTTP status plus either a single message or a list of
// field errors. Handlers return it; the error middleware renders it.
type AppError struct {
	StatusCode int
	Message    string
	Fields     []validate.FieldError
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Cause: cause}
}

func NewValidationError(fields []validate.FieldError) *AppError {
	return &AppError{StatusCode: fiber.StatusBadRequest, Fields: fields}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered: %v", r)
				err = response.ServerError(c)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode >= 500 || appErr.StatusCode <= 0 {
				// Internal detail is logged, never leaked to the client.
				m.logger.Printf("server error: %v", appErr)
				return response.ServerError(c)
			}
			if len(appErr.Fields) > 0 {
				return response.FieldErrors(c, appErr.StatusCode, appErr.Fields)
			}
			return response.Msg(c, appErr.StatusCode, appErr.Message)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code > 0 && fiberErr.Code < 500 {
			return response.Msg(c, fiberErr.Code, fiberErr.Message)
		}

		m.logger.Printf("server error: %v", err)
		return response.ServerError(c)
	}
}
