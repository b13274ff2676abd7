package schedule_replacer_module

import (
	"log/slog"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	schedule_replacer_repository "github.com/N08I40K/schedule-parser-next/internal/app/schedule-replacer/repository"
	schedule_replacer_service "github.com/N08I40K/schedule-parser-next/internal/app/schedule-replacer/service"
	schedule_replacer_http_handler "github.com/N08I40K/schedule-parser-next/internal/app/schedule-replacer/transports/http"
	postgres_client "github.com/N08I40K/schedule-parser-next/internal/clients/postgres"
	"github.com/N08I40K/schedule-parser-next/internal/config"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
)

// newStore postgres при заданном DB_DSN, иначе память процесса
func newStore(cfg *config.Config, log *slog.Logger) (app.OverrideStore, error) {
	if cfg.Infrastructure.Db.Dsn == "" {
		log.Warn("DB_DSN is empty, schedule overrides are kept in memory")
		return schedule_replacer_repository.NewMemory(), nil
	}

	db, err := postgres_client.New(cfg)
	if err != nil {
		return nil, err
	}
	return schedule_replacer_repository.New(db), nil
}

func Register() fx.Option {
	return fx.Options(
		fx.Provide(
			newStore,
			fx.Annotate(schedule_replacer_service.New, fx.As(new(app.ScheduleReplacerService))),
			schedule_replacer_http_handler.New,
		),
		fx.Invoke(func(h *schedule_replacer_http_handler.ScheduleReplacerHttpHandler, mainApp *fiber.App) {
			h.Register(mainApp)
		}),
	)
}
