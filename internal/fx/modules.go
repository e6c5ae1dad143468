package fx

import (
	"vct-tracker/internal/config"
	"vct-tracker/internal/database"
	"vct-tracker/internal/logger"
	"vct-tracker/internal/notify"
	"vct-tracker/internal/repository"
	"vct-tracker/internal/server"
	"vct-tracker/internal/service"
	"vct-tracker/internal/sheets"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewSnapshotRepository),
	fx.Provide(repository.NewUpdateRepository),
	fx.Provide(repository.NewMessageRepository),
	// outbound clients
	fx.Provide(sheets.NewClient),
	fx.Provide(notify.NewPushClient),
	fx.Provide(notify.NewSocialClient),
	// svc
	fx.Provide(service.NewRecorder),
	fx.Provide(service.NewPoller),
	// server
	fx.Provide(server.NewFeedServer),
	// interface bindings for the service layer
	fx.Provide(
		func(r *repository.SnapshotRepository) service.SnapshotStore { return r },
		func(r *repository.UpdateRepository) service.UpdateStore { return r },
		func(r *repository.MessageRepository) service.MessageStore { return r },
		func(c *notify.PushClient) service.Notifier { return c },
		func(c *notify.SocialClient) service.Poster { return c },
		func(c *sheets.Client) service.Fetcher { return c },
	),
)
