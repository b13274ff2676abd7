package schedule_parser_module

import (
	"log/slog"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	schedule_parser_service "github.com/N08I40K/schedule-parser-next/internal/app/schedule-parser/service"
	"github.com/N08I40K/schedule-parser-next/internal/config"
	"go.uber.org/fx"
)

func newParser(log *slog.Logger, cfg *config.Config) (*schedule_parser_service.ScheduleParserService, error) {
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return nil, err
	}
	return schedule_parser_service.New(log, loc), nil
}

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(newParser, fx.As(new(app.ScheduleParser))),
	)
}
