package schedule_http_handler

import (
	"fmt"
	"net/url"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/N08I40K/schedule-parser-next/domain/dtos"
	"github.com/N08I40K/schedule-parser-next/internal/transport"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/invopop/jsonschema"
)

type ScheduleHttpHandler struct {
	service  app.ScheduleService
	legacy   app.LegacyScheduleService
	validate *validator.Validate
	schema   *jsonschema.Schema
}

func New(service app.ScheduleService, legacy app.LegacyScheduleService) *ScheduleHttpHandler {
	reflector := jsonschema.Reflector{AllowAdditionalProperties: false}
	return &ScheduleHttpHandler{
		service:  service,
		legacy:   legacy,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		schema:   reflector.Reflect(&app.ScheduleResponse{}),
	}
}

func (this *ScheduleHttpHandler) Register(mainApp *fiber.App) {
	var v2 = mainApp.Group("/v2/schedule")

	v2.Get("/", this.getSchedule)
	v2.Get("/schema", this.getSchema)
	v2.Get("/group-names", this.getGroupNames)
	v2.Get("/group/:name", this.getGroup)
	v2.Get("/teacher-names", this.getTeacherNames)
	v2.Get("/teacher/:name", this.getTeacher)
	v2.Get("/cache-status", this.getCacheStatus)
	v2.Post("/update-download-url", this.updateDownloadUrl)
	v2.Post("/refresh", this.refresh)

	var v1 = mainApp.Group("/v1/schedule")

	v1.Get("/", this.getLegacySchedule)
	v1.Get("/group-names", this.getLegacyGroupNames)
	v1.Get("/group/:name", this.getLegacyGroup)
	v1.Get("/cache-status", this.getLegacyCacheStatus)
}

// respond 200 с телом или ответ с ошибкой
func respond[T any](fctx fiber.Ctx, value T, err error) error {
	if err != nil {
		return transport.WriteError(fctx, err)
	}
	return fctx.JSON(value)
}

func nameParam(fctx fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(fctx.Params("name"))
	if err != nil || name == "" {
		return "", fmt.Errorf("%w: invalid name", transport.ErrBadRequest)
	}
	return name, nil
}

func (this *ScheduleHttpHandler) getSchedule(fctx fiber.Ctx) error {
	res, err := this.service.GetSchedule(fctx.Context())
	return respond(fctx, res, err)
}

func (this *ScheduleHttpHandler) getSchema(fctx fiber.Ctx) error {
	return fctx.JSON(this.schema)
}

func (this *ScheduleHttpHandler) getGroupNames(fctx fiber.Ctx) error {
	res, err := this.service.GetGroupNames(fctx.Context())
	return respond(fctx, res, err)
}

func (this *ScheduleHttpHandler) getGroup(fctx fiber.Ctx) error {
	name, err := nameParam(fctx)
	if err != nil {
		return transport.WriteError(fctx, err)
	}
	res, err := this.service.GetGroup(fctx.Context(), name)
	return respond(fctx, res, err)
}

func (this *ScheduleHttpHandler) getTeacherNames(fctx fiber.Ctx) error {
	res, err := this.service.GetTeacherNames(fctx.Context())
	return respond(fctx, res, err)
}

func (this *ScheduleHttpHandler) getTeacher(fctx fiber.Ctx) error {
	name, err := nameParam(fctx)
	if err != nil {
		return transport.WriteError(fctx, err)
	}
	res, err := this.service.GetTeacher(fctx.Context(), name)
	return respond(fctx, res, err)
}

func (this *ScheduleHttpHandler) getCacheStatus(fctx fiber.Ctx) error {
	return fctx.JSON(this.service.GetCacheStatus())
}

func (this *ScheduleHttpHandler) updateDownloadUrl(fctx fiber.Ctx) error {
	var req dtos.UpdateDownloadUrlRequest
	if err := fctx.Bind().Body(&req); err != nil {
		return transport.WriteError(fctx, fmt.Errorf("%w: %v", transport.ErrBadRequest, err))
	}
	if err := this.validate.Struct(req); err != nil {
		return transport.WriteError(fctx, err)
	}

	status, err := this.service.UpdateDownloadURL(fctx.Context(), req.Url)
	return respond(fctx, status, err)
}

func (this *ScheduleHttpHandler) refresh(fctx fiber.Ctx) error {
	if err := this.service.RefreshCache(fctx.Context()); err != nil {
		return transport.WriteError(fctx, err)
	}
	return fctx.JSON(this.service.GetCacheStatus())
}

func (this *ScheduleHttpHandler) getLegacySchedule(fctx fiber.Ctx) error {
	res, err := this.legacy.GetSchedule(fctx.Context())
	return respond(fctx, res, err)
}

func (this *ScheduleHttpHandler) getLegacyGroupNames(fctx fiber.Ctx) error {
	res, err := this.legacy.GetGroupNames(fctx.Context())
	return respond(fctx, res, err)
}

func (this *ScheduleHttpHandler) getLegacyGroup(fctx fiber.Ctx) error {
	name, err := nameParam(fctx)
	if err != nil {
		return transport.WriteError(fctx, err)
	}
	res, err := this.legacy.GetGroup(fctx.Context(), name)
	return respond(fctx, res, err)
}

func (this *ScheduleHttpHandler) getLegacyCacheStatus(fctx fiber.Ctx) error {
	return fctx.JSON(this.legacy.GetCacheStatus())
}
