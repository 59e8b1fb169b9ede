package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// DefaultServerMessage is returned for 5xx failures whose cause must not leak.
const DefaultServerMessage = "Server error."

// FiberErrorHandler renders every error as {"message": ...}. Server-side failures are
// logged with the request line; their cause is never sent to the client.
func FiberErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg := Render(err)
		if status >= fiber.StatusInternalServerError {
			logger.WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
				"status": status,
			}).Error(err.Error())
		}
		return c.Status(status).JSON(fiber.Map{"message": msg})
	}
}

// Render resolves the status code and client message for err.
func Render(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		status := appErr.Kind.Status()
		if appErr.Message == "" {
			return status, DefaultServerMessage
		}
		return status, appErr.Message
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	return fiber.StatusInternalServerError, DefaultServerMessage
}
