package app

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/study"
	"github.com/Alijeyrad/dentclinic/pkg/database"
	"github.com/Alijeyrad/dentclinic/pkg/email"
	"github.com/Alijeyrad/dentclinic/pkg/events"
	"github.com/Alijeyrad/dentclinic/pkg/observability"
	"github.com/Alijeyrad/dentclinic/pkg/phone"
	redispkg "github.com/Alijeyrad/dentclinic/pkg/redis"
	s3pkg "github.com/Alijeyrad/dentclinic/pkg/s3"
	"github.com/Alijeyrad/dentclinic/pkg/sms"
	"github.com/Alijeyrad/dentclinic/pkg/util/codes"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideRepoClient),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideSMSClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideEventMetrics),
	fx.Provide(ProvideStudyStorage),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvideEventPublisher),
	fx.Provide(ProvidePhoneNormalizer),
	fx.Provide(ProvideCodeGenerator),
)

func ProvideRepoClient(lc fx.Lifecycle, cfg *config.Config) (*repo.Client, error) {
	client, err := database.NewClient(cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Database.Migrations.AutoMigrate {
				return nil
			}
			slog.Info("running auto migration", "safe_mode", cfg.Database.Migrations.SafeMode)
			return database.Migrate(ctx, client, cfg.Database.Migrations.SafeMode)
		},
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing main database connection")
			return client.Close()
		},
	})
	return client, nil
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideEmailClient(cfg *config.Config) *email.Client {
	return email.NewFromCentral(cfg.Email)
}

func ProvideSMSClient(cfg *config.Config) (*sms.Client, error) {
	return sms.NewFromConfig(cfg.SMS)
}

// ProvideStudyStorage returns nil when no bucket is configured; study
// uploads are then rejected while the rest of the API keeps working.
func ProvideStudyStorage(cfg *config.Config) (study.Storage, error) {
	if cfg.S3.Bucket == "" {
		slog.Warn("s3 bucket not configured, study uploads disabled")
		return nil, nil
	}
	cli, err := s3pkg.New(context.Background(), cfg.S3)
	if err != nil {
		return nil, err
	}
	return cli, nil
}

// ProvideNatsClient returns nil when no NATS URL is configured.
func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if cfg.Nats.URL == "" {
		slog.Warn("nats url not configured, domain events disabled")
		return nil, nil
	}
	opts := []nats.Option{}
	if cfg.Nats.Name != "" {
		opts = append(opts, nats.Name(cfg.Nats.Name))
	}
	nc, err := nats.Connect(cfg.Nats.URL, opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvideEventPublisher(nc *nats.Conn) events.Publisher {
	if nc == nil {
		return events.Nop{}
	}
	return nc
}

func ProvidePhoneNormalizer(cfg *config.Config) *phone.Normalizer {
	return phone.NewNormalizer(cfg.Clinic.DefaultRegion)
}

func ProvideCodeGenerator(cfg *config.Config) (*codes.Generator, error) {
	return codes.New(codes.FromCentralConfig(cfg.Codes))
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.NewConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

// ProvideEventMetrics depends on the OTel provider so the counters bind to
// the configured meter provider.
func ProvideEventMetrics(_ *observability.Provider) (*observability.EventMetrics, error) {
	return observability.NewEventMetrics()
}
