// Package app opens the infrastructure shared by the server and the admin
// CLI. Each backing service is optional; when it is not configured an
// in-process fallback is used.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"govpub/internal/content/store"
	"govpub/internal/jobs"
	"govpub/internal/platform/config"
	"govpub/internal/platform/kafka"
	"govpub/internal/platform/postgres"
	"govpub/internal/platform/redis"
	"govpub/internal/search"
)

const memoryQueueCapacity = 1024

// Stores groups the content stores.
type Stores struct {
	Editions      store.EditionStore
	Organisations store.OrganisationStore
	Users         store.UserStore
	Roles         store.RoleStore
	Attachments   store.AttachmentStore
	Announcements store.StatisticsAnnouncementStore
	Taxonomy      store.TaxonomyStore
	// QueryLog is set when the edition store logs SQL statements.
	QueryLog interface {
		QueryLogger() *slog.Logger
		SetQueryLogger(*slog.Logger)
	}
}

// Infra is the opened infrastructure. Close releases it.
type Infra struct {
	Stores
	Queue   jobs.Queue
	Indexer search.Indexer
	// Redis is nil when REDIS_URL is unset.
	Redis goredis.UniversalClient

	closers []func() error
}

// Open connects to every configured backing service.
func Open(ctx context.Context, cfg config.Server, logger *slog.Logger) (*Infra, error) {
	infra := &Infra{}
	if err := infra.openStores(ctx, cfg.Database, logger); err != nil {
		return nil, errors.Join(err, infra.Close())
	}
	if err := infra.openQueue(ctx, cfg.Redis, cfg.JobPollInterval, logger); err != nil {
		return nil, errors.Join(err, infra.Close())
	}
	if err := infra.openIndexer(ctx, cfg.Kafka, logger); err != nil {
		return nil, errors.Join(err, infra.Close())
	}
	return infra, nil
}

func (i *Infra) openStores(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return err
	}
	if db == nil {
		logger.Warn("DATABASE_URL not set, using in-memory content stores")
		i.Stores = Stores{
			Editions:      store.NewInMemoryEditionStore(),
			Organisations: store.NewInMemoryOrganisationStore(),
			Users:         store.NewInMemoryUserStore(),
			Roles:         store.NewInMemoryRoleStore(),
			Attachments:   store.NewInMemoryAttachmentStore(),
			Announcements: store.NewInMemoryStatisticsAnnouncementStore(),
			Taxonomy:      store.NewInMemoryTaxonomyStore(),
		}
		return nil
	}
	i.closers = append(i.closers, db.Close)
	if err := store.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	editions := store.NewPostgresEditionStore(db)
	editions.SetQueryLogger(logger)
	i.Stores = Stores{
		Editions:      editions,
		Organisations: store.NewPostgresOrganisationStore(db),
		Users:         store.NewPostgresUserStore(db),
		Roles:         store.NewPostgresRoleStore(db),
		Attachments:   store.NewPostgresAttachmentStore(db),
		Announcements: store.NewPostgresStatisticsAnnouncementStore(db),
		Taxonomy:      store.NewPostgresTaxonomyStore(db),
		QueryLog:      editions,
	}
	logger.Info("connected to postgres")
	return nil
}

func (i *Infra) openQueue(ctx context.Context, cfg config.RedisConfig, poll time.Duration, logger *slog.Logger) error {
	client, err := redis.Open(ctx, cfg)
	if err != nil {
		return err
	}
	if client == nil {
		logger.Warn("REDIS_URL not set, jobs run from an in-process queue")
		i.Queue = jobs.NewMemoryQueue(memoryQueueCapacity, poll)
		return nil
	}
	i.closers = append(i.closers, client.Close)
	i.Redis = client

	queue, err := jobs.NewRedisQueue(client, cfg.QueueKey, poll)
	if err != nil {
		return err
	}
	i.Queue = queue
	logger.Info("connected to redis", "queue_key", cfg.QueueKey)
	return nil
}

func (i *Infra) openIndexer(ctx context.Context, cfg config.KafkaConfig, logger *slog.Logger) error {
	client, err := kafka.NewProducer(ctx, cfg)
	if err != nil {
		return err
	}
	if client == nil {
		logger.Warn("KAFKA_BROKERS not set, search documents are kept in memory")
		i.Indexer = search.NewMemoryIndexer()
		return nil
	}
	i.closers = append(i.closers, func() error {
		client.Close()
		return nil
	})

	indexer, err := search.NewKafkaIndexer(client, cfg.SearchTopic)
	if err != nil {
		return err
	}
	i.Indexer = indexer
	logger.Info("connected to kafka", "topic", cfg.SearchTopic)
	return nil
}

// Close releases connections in reverse order of opening.
func (i *Infra) Close() error {
	var errs []error
	for j := len(i.closers) - 1; j >= 0; j-- {
		if err := i.closers[j](); err != nil {
			errs = append(errs, err)
		}
	}
	i.closers = nil
	return errors.Join(errs...)
}
