package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/apperr"
	"docportal/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorFields(c, status, code, message, nil)
}

func writeErrorFields(c *fiber.Ctx, status int, code, message string, fields map[string]string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
	}
	return c.Status(status).JSON(res)
}

// classify maps an application error kind to a status and error code.
func classify(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return fiber.StatusBadRequest, "VALIDATION_FAILED"
	case apperr.KindAuth:
		return fiber.StatusUnauthorized, "AUTH_FAILED"
	case apperr.KindNotFound:
		return fiber.StatusNotFound, "NOT_FOUND"
	case apperr.KindBusy:
		return fiber.StatusConflict, "BUSY"
	case apperr.KindNetwork:
		return fiber.StatusBadGateway, "BACKEND_UNAVAILABLE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeAppError renders any error as the standard envelope. Only the safe
// message of an *apperr.Error reaches the client.
func writeAppError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	msg := apperr.MessageOf(err)
	if status == fiber.StatusInternalServerError {
		msg = "internal server error"
	}
	return writeErrorFields(c, status, code, msg, apperr.FieldsOf(err))
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if apperr.KindOf(err) != "" {
			return writeAppError(c, err)
		}

		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "file too large")
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, "SERVICE_UNAVAILABLE", "service unavailable")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
