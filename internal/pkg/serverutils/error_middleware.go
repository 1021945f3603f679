package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"loremaker-codex-be/internal/apperror"
)

// ErrorHandlerMiddleware is the single place engine errors become HTTP
// responses. The typed taxonomy stays internal; clients only ever see
// the flattened public phrase.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		status := fiber.StatusInternalServerError
		var (
			missing     *apperror.MissingConfigError
			unavailable *apperror.UnavailableUpstreamError
			upstream    *apperror.UpstreamFailureError
			envelope    *apperror.BadEnvelopeError
		)
		switch {
		case errors.As(err, &missing), errors.As(err, &unavailable):
			status = fiber.StatusServiceUnavailable
		case errors.As(err, &upstream), errors.As(err, &envelope):
			status = fiber.StatusBadGateway
		}

		return ctx.Status(status).JSON(fiber.Map{"message": apperror.PublicErrorMessage(err)})
	}
}
