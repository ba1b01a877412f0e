package server

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fieldtrace-io/fieldtrace/internal/config"
	"github.com/fieldtrace-io/fieldtrace/internal/infra/blob"
	"github.com/fieldtrace-io/fieldtrace/internal/infra/cache"
	"github.com/fieldtrace-io/fieldtrace/internal/infra/db"
	"github.com/fieldtrace-io/fieldtrace/internal/infra/logger"
	mq "github.com/fieldtrace-io/fieldtrace/internal/infra/queue"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/handler"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/notify"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/repo"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/service"
)

// BuildInjector wires infra, repos, services and handlers. Everything
// is lazy: a dependency connects on first invoke.
func BuildInjector() *do.Injector {
	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.App.Name)
	})
	do.Provide(injector, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return db.NewPostgres(cfg)
	})
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.NewRedis(context.Background(), cfg)
	})
	do.Provide(injector, func(i *do.Injector) (*cache.LookupCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb := do.MustInvoke[*redis.Client](i)
		return cache.NewLookupCache(rdb, cfg.Redis.LookupTTL), nil
	})
	do.Provide(injector, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})
	do.Provide(injector, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return mq.Dial(cfg)
	})
	do.Provide(injector, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		return mq.NewPublisher(conn, log, cfg, func() (*amqp.Connection, error) {
			return mq.Dial(cfg)
		})
	})
	do.Provide(injector, func(i *do.Injector) (*mq.Consumer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		return mq.NewConsumer(conn, cfg.RabbitMQ.Queue, "change.#", cfg.RabbitMQ.Prefetch, log, cfg)
	})

	// Repos
	do.Provide(injector, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repo.SiteRepo, error) {
		return repo.NewSiteRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repo.AssetRepo, error) {
		return repo.NewAssetRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repo.PhotoRepo, error) {
		return repo.NewPhotoRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repo.LookupRepo, error) {
		return repo.NewLookupRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Event pipeline
	do.Provide(injector, func(i *do.Injector) (notify.Notifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		pub := do.MustInvoke[*mq.Publisher](i)
		return notify.NewAMQPNotifier(pub, cfg, log), nil
	})
	do.Provide(injector, func(i *do.Injector) (*notify.Hub, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		rdb := do.MustInvoke[*redis.Client](i)
		return notify.NewHub(rdb, cfg.Redis.ChangeChannel, log), nil
	})
	do.Provide(injector, func(i *do.Injector) (*notify.Reconciler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		rdb := do.MustInvoke[*redis.Client](i)
		consumer := do.MustInvoke[*mq.Consumer](i)
		assets := do.MustInvoke[repo.AssetRepo](i)
		sink := notify.NewRedisSink(rdb, cfg.Redis.ChangeChannel)
		return notify.NewReconciler(consumer, assets, sink, log), nil
	})

	// Services
	do.Provide(injector, func(i *do.Injector) (service.SessionService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewSessionService(do.MustInvoke[repo.UserRepo](i), cfg), nil
	})
	do.Provide(injector, func(i *do.Injector) (service.SiteService, error) {
		return service.NewSiteService(do.MustInvoke[repo.SiteRepo](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (service.AssetService, error) {
		return service.NewAssetService(
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[repo.SiteRepo](i),
			do.MustInvoke[notify.Notifier](i),
			do.MustInvoke[*cache.LookupCache](i),
		), nil
	})
	do.Provide(injector, func(i *do.Injector) (service.LookupService, error) {
		log := do.MustInvoke[*zap.Logger](i)
		return service.NewLookupService(
			do.MustInvoke[repo.LookupRepo](i),
			do.MustInvoke[*cache.LookupCache](i),
			log,
		), nil
	})
	do.Provide(injector, func(i *do.Injector) (service.PhotoService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return service.NewPhotoService(
			do.MustInvoke[repo.PhotoRepo](i),
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[notify.Notifier](i),
			cfg.S3.PresignTTL,
			log,
		), nil
	})

	// Handlers
	do.Provide(injector, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.SessionService](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*handler.SiteHandler, error) {
		return handler.NewSiteHandler(do.MustInvoke[service.SiteService](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*handler.AssetHandler, error) {
		return handler.NewAssetHandler(do.MustInvoke[service.AssetService](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*handler.LookupHandler, error) {
		return handler.NewLookupHandler(do.MustInvoke[service.LookupService](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*handler.PhotoHandler, error) {
		return handler.NewPhotoHandler(do.MustInvoke[service.PhotoService](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*handler.StreamHandler, error) {
		log := do.MustInvoke[*zap.Logger](i)
		return handler.NewStreamHandler(do.MustInvoke[*notify.Hub](i), log), nil
	})

	return injector
}
