package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/N08I40K/schedule-parser-next/internal/config"
	"github.com/N08I40K/schedule-parser-next/internal/logger"
	"github.com/N08I40K/schedule-parser-next/internal/metrics"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

func newFiber(lc fx.Lifecycle, cfg *config.Config, m *metrics.Metrics, log *slog.Logger) *fiber.App {
	mainApp := fiber.New(fiber.Config{AppName: "schedule-parser"})

	mainApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", cfg.Http.Addr)
			if err != nil {
				return err
			}
			log.Info("http server started", slog.String("addr", cfg.Http.Addr))

			go func() {
				if err := mainApp.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}); err != nil && !errors.Is(err, net.ErrClosed) {
					log.Error("http server stopped", slog.Any("error", err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return mainApp.ShutdownWithContext(ctx)
		},
	})

	return mainApp
}

func coreOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			config.MustLoad,
			logger.New,
			metrics.New,
			newFiber,
		),
	)
}
