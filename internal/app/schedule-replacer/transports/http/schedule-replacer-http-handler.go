package schedule_replacer_http_handler

import (
	"fmt"
	"io"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/N08I40K/schedule-parser-next/internal/transport"

	"github.com/gofiber/fiber/v3"
)

// максимальный размер загружаемого файла
const maxUploadSize = 10 << 20

type ScheduleReplacerHttpHandler struct {
	service app.ScheduleReplacerService
}

func New(service app.ScheduleReplacerService) *ScheduleReplacerHttpHandler {
	return &ScheduleReplacerHttpHandler{service}
}

func (this *ScheduleReplacerHttpHandler) Register(mainApp *fiber.App) {
	var app = mainApp.Group("/v2/schedule-replacer")

	app.Post("/set", this.manualUpload)
	app.Get("/", this.list)
	app.Post("/clear", this.clear)
}

func (this *ScheduleReplacerHttpHandler) manualUpload(fctx fiber.Ctx) error {
	header, err := fctx.FormFile("file")
	if err != nil {
		return transport.WriteError(fctx, fmt.Errorf("%w: file is required", transport.ErrBadRequest))
	}
	if header.Size > maxUploadSize {
		return transport.WriteError(fctx, fmt.Errorf("%w: file is too large", transport.ErrBadRequest))
	}

	file, err := header.Open()
	if err != nil {
		return transport.WriteError(fctx, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return transport.WriteError(fctx, err)
	}

	info, err := this.service.SetForCurrent(fctx.Context(), data)
	if err != nil {
		return transport.WriteError(fctx, err)
	}
	return fctx.JSON(info)
}

func (this *ScheduleReplacerHttpHandler) list(fctx fiber.Ctx) error {
	infos, err := this.service.List(fctx.Context())
	if err != nil {
		return transport.WriteError(fctx, err)
	}
	return fctx.JSON(infos)
}

func (this *ScheduleReplacerHttpHandler) clear(fctx fiber.Ctx) error {
	res, err := this.service.Clear(fctx.Context())
	if err != nil {
		return transport.WriteError(fctx, err)
	}
	return fctx.JSON(res)
}
