package bootstrap

import (
	"github.com/N08I40K/schedule-parser-next/domain/app"
	rabbitmq_client "github.com/N08I40K/schedule-parser-next/internal/clients/rabbitmq"
	redis_client "github.com/N08I40K/schedule-parser-next/internal/clients/redis"
	xls_downloader_client "github.com/N08I40K/schedule-parser-next/internal/clients/xls-downloader"
	"go.uber.org/fx"
)

func clientsOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(xls_downloader_client.New, fx.As(new(app.SourceFetcher))),
			redis_client.NewCacheFactory,
			rabbitmq_client.New,
		),
	)
}
