package bootstrap

import (
	lessons_notifier_module "github.com/N08I40K/schedule-parser-next/internal/app/lessons-notifier"
	schedule_module "github.com/N08I40K/schedule-parser-next/internal/app/schedule"
	schedule_parser_module "github.com/N08I40K/schedule-parser-next/internal/app/schedule-parser"
	schedule_replacer_module "github.com/N08I40K/schedule-parser-next/internal/app/schedule-replacer"
	"go.uber.org/fx"
)

func appOptions() fx.Option {
	return fx.Options(
		schedule_parser_module.Register(),
		schedule_replacer_module.Register(),
		schedule_module.Register(),
		lessons_notifier_module.Register(),
	)
}
