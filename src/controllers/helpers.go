package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseAndValidate decodes the JSON body into dst and runs the validate tags.
// Handlers translate a non-nil error into their own 400 message.
func parseAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
