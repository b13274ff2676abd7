package transport

import (
	"errors"
	"net/http"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/N08I40K/schedule-parser-next/domain/dtos"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var ErrBadRequest = errors.New("bad request")

// StatusOf http-код для ошибки сервиса
func StatusOf(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, app.ErrSourceUnconfigured):
		return http.StatusServiceUnavailable
	case app.IsProbeFailure(err):
		return http.StatusNotAcceptable
	case errors.Is(err, app.ErrUnknownGroup),
		errors.Is(err, app.ErrUnknownTeacher),
		errors.Is(err, app.ErrOverrideNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, app.ErrEmptyOverride),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func WriteError(fctx fiber.Ctx, err error) error {
	return fctx.Status(StatusOf(err)).JSON(dtos.ErrorResponse{Message: err.Error()})
}
