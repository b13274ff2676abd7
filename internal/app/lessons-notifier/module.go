package lessons_notifier_module

import (
	"context"
	"log/slog"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	lessons_notifier_service "github.com/N08I40K/schedule-parser-next/internal/app/lessons-notifier/service"
	"github.com/N08I40K/schedule-parser-next/internal/config"
	"github.com/N08I40K/schedule-parser-next/internal/metrics"
	"go.uber.org/fx"
)

func newNotifier(cfg *config.Config, dispatcher app.NotificationDispatcher, m *metrics.Metrics, log *slog.Logger) (*lessons_notifier_service.LessonsNotifier, error) {
	hour, minute, err := cfg.Schedule.LessonsStart()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return nil, err
	}
	return lessons_notifier_service.New(hour, minute, loc, cfg.Schedule.NotifyTopic, dispatcher, m, log), nil
}

// start таймер живёт отдельно от запросов и останавливается вместе с приложением
func start(lc fx.Lifecycle, n *lessons_notifier_service.LessonsNotifier) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				n.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func Register() fx.Option {
	return fx.Options(
		fx.Provide(newNotifier),
		fx.Invoke(start),
	)
}
