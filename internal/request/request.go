// Package request parses and validates incoming request bodies and path ids.
package request

import (
	"errors"
	"strings"
	"sync"

	"inventory-backend/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Normalizer is implemented by bodies that trim or default fields before validation.
type Normalizer interface {
	Normalize()
}

// Bind parses the JSON body into dst and validates it. Any failure is reported as a
// validation error carrying msg.
func Bind(c *fiber.Ctx, dst any, msg string) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation(msg)
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	if err := Validator().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &apperr.Error{Kind: apperr.KindValidation, Message: msg, Err: err}
		}
		return apperr.Internal("", err)
	}
	return nil
}

// IsUUID reports whether s is a UUID in its canonical hyphenated form.
func IsUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}

// UUIDParam returns the named path parameter in lowercase canonical form, or a
// validation error carrying msg when it is not a UUID.
func UUIDParam(c *fiber.Ctx, name, msg string) (string, error) {
	v := c.Params(name)
	if !IsUUID(v) {
		return "", apperr.Validation(msg)
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return "", apperr.Validation(msg)
	}
	return id.String(), nil
}

func TrimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
