package schedule_module

import (
	"log/slog"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	schedule_service "github.com/N08I40K/schedule-parser-next/internal/app/schedule/service"
	schedule_http_handler "github.com/N08I40K/schedule-parser-next/internal/app/schedule/transports/http"
	"github.com/N08I40K/schedule-parser-next/internal/config"
	"github.com/N08I40K/schedule-parser-next/internal/metrics"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
)

// collaborators общие зависимости обеих проекций
type collaborators struct {
	fx.In

	Config    *config.Config
	Log       *slog.Logger
	Fetcher   app.SourceFetcher
	Overrides app.OverrideStore
	Parser    app.ScheduleParser
	Caches    app.MemoCacheFactory
	Notifier  app.NotificationDispatcher
	Bus       *schedule_service.InvalidationBus
	Metrics   *metrics.Metrics
}

func ttl(cfg *config.Config) schedule_service.TTLConfig {
	return schedule_service.TTLConfig{Names: cfg.Schedule.NamesTTL, Tree: cfg.Schedule.TreeTTL}
}

func newCurrent(c collaborators) *schedule_service.ScheduleService {
	memo := c.Caches.Namespace("v2")
	ctl := schedule_service.NewController(
		schedule_service.ControllerConfig{
			Projection:      "v2",
			InvalidateDelay: c.Config.Schedule.CacheInvalidateDelay,
			NotifyTopic:     c.Config.Schedule.NotifyTopic,
		},
		schedule_service.NewState(),
		c.Fetcher, c.Overrides, c.Parser, memo, c.Notifier, c.Bus, c.Metrics, c.Log,
	)
	return schedule_service.NewScheduleService(ctl, memo, c.Fetcher, c.Bus, ttl(c.Config), c.Log)
}

// v1 читает тот же файл, но уведомления рассылает только v2
func newLegacy(c collaborators) *schedule_service.LegacyScheduleService {
	memo := c.Caches.Namespace("v1")
	ctl := schedule_service.NewController(
		schedule_service.ControllerConfig{
			Projection:      "v1",
			InvalidateDelay: c.Config.Schedule.CacheInvalidateDelay,
		},
		schedule_service.NewState(),
		c.Fetcher, c.Overrides, c.Parser, memo, nil, c.Bus, c.Metrics, c.Log,
	)
	return schedule_service.NewLegacyScheduleService(ctl, memo, ttl(c.Config), c.Log)
}

func Register() fx.Option {
	return fx.Options(
		fx.Provide(
			schedule_service.NewInvalidationBus,
			// подмена расписания сбрасывает обе проекции через шину
			func(bus *schedule_service.InvalidationBus) app.CacheInvalidator { return bus },
			fx.Annotate(newCurrent, fx.As(new(app.ScheduleService))),
			fx.Annotate(newLegacy, fx.As(new(app.LegacyScheduleService))),
			schedule_http_handler.New,
		),
		fx.Invoke(func(h *schedule_http_handler.ScheduleHttpHandler, mainApp *fiber.App) {
			h.Register(mainApp)
		}),
	)
}
