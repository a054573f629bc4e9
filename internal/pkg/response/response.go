package response

import (
	"github.com/gofiber/fiber/v3"

	"github.com/hamzahalilovic/social-network-developers/internal/pkg/validate"
)

// The API speaks three failure shapes, kept exactly as clients expect them:
// a {"msg": ...} object, an {"errors": [{"msg": ...}]} list for validation
// failures, and a plain-text body for the 500 path.

type msgBody struct {
	Msg string `json:"msg"`
}

type errorsBody struct {
	Errors []validate.FieldError `json:"errors"`
}

func Msg(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(msgBody{Msg: msg})
}

func FieldErrors(c fiber.Ctx, status int, errs []validate.FieldError) error {
	return c.Status(status).JSON(errorsBody{Errors: errs})
}

func ServerError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
}
