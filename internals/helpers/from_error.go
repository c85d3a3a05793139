package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

// FromError turns a domain error into the standard JSON error envelope.
// Unknown errors are logged and reported as a generic 500 so internals never
// leak to the client.
func FromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}

	code := errs.HTTPStatus(err)
	if code == fiber.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
		return Error(c, code, "Internal server error")
	}
	return Error(c, code, err.Error())
}
