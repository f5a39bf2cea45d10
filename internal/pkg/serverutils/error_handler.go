package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts unhandled controller errors into the
// common envelope so clients never see a bare Fiber error page.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
