package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	messagingmetrics "trustgate/internal/messaging/metrics"
	messagingservice "trustgate/internal/messaging/service"
	"trustgate/internal/messaging/store/message"
	"trustgate/internal/notification"
	notificationamqp "trustgate/internal/notification/amqp"
	notificationkafka "trustgate/internal/notification/kafka"
	notificationmetrics "trustgate/internal/notification/metrics"
	notificationredis "trustgate/internal/notification/redis"
	"trustgate/internal/platform/config"
	platformkafka "trustgate/internal/platform/kafka"
	"trustgate/internal/platform/postgres"
	platformredis "trustgate/internal/platform/redis"
	"trustgate/internal/trust/adapters"
	trustmetrics "trustgate/internal/trust/metrics"
	trustservice "trustgate/internal/trust/service"
	"trustgate/internal/trust/store/profile"
	verificationmetrics "trustgate/internal/verification/metrics"
	verificationservice "trustgate/internal/verification/service"
	"trustgate/internal/verification/store/document"
	audit "trustgate/pkg/platform/audit"
	auditmemory "trustgate/pkg/platform/audit/store/memory"
	auditpostgres "trustgate/pkg/platform/audit/store/postgres"
)

// documentStore is what both the validator and the trust adapter need from
// the document store.
type documentStore interface {
	verificationservice.DocumentStore
	adapters.DocumentLister
}

// infra holds the stores and outbound connections. Postgres replaces every
// in-memory store when DATABASE_URL is set.
type infra struct {
	db        *sql.DB
	redis     *platformredis.Client
	documents documentStore
	profiles  trustservice.ProfileStore
	messages  messagingservice.MessageStore
	audit     audit.Store
	notifier  *notification.Dispatcher
	closers   []io.Closer
}

func buildInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	in := &infra{}
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		in.db = db
		in.closers = append(in.closers, db)
		in.documents = document.NewPostgres(db)
		in.profiles = profile.NewPostgres(db)
		in.messages = message.NewPostgres(db)
		in.audit = auditpostgres.New(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		in.documents = document.NewInMemoryStore()
		in.profiles = profile.NewInMemoryStore()
		in.messages = message.NewInMemoryStore()
		in.audit = auditmemory.NewInMemoryStore()
	}

	publishers, err := in.buildPublishers(ctx, cfg, log)
	if err != nil {
		in.Close(log)
		return nil, err
	}
	in.notifier = notification.NewDispatcher(publishers,
		notification.WithLogger(log),
		notification.WithMetrics(notificationmetrics.New()),
		notification.WithTimeout(cfg.Notifications.Timeout),
	)
	return in, nil
}

func (in *infra) buildPublishers(ctx context.Context, cfg config.Server, log *slog.Logger) ([]notification.Publisher, error) {
	var publishers []notification.Publisher
	for _, name := range cfg.Notifications.Publishers {
		switch name {
		case config.PublisherLog:
			publishers = append(publishers, notification.NewLogPublisher(log))
		case config.PublisherKafka:
			client, err := platformkafka.NewClient(cfg.Kafka)
			if err != nil {
				return nil, err
			}
			in.closers = append(in.closers, kafkaCloser{client})
			if err := platformkafka.EnsureTopic(ctx, client, cfg.Kafka); err != nil {
				return nil, err
			}
			publishers = append(publishers, notificationkafka.New(client, cfg.Kafka.Topic))
		case config.PublisherRedis:
			if err := in.connectRedis(ctx, cfg.Redis); err != nil {
				return nil, err
			}
			publishers = append(publishers, notificationredis.New(in.redis.Client, cfg.Redis.Stream))
		case config.PublisherAMQP:
			p, err := notificationamqp.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
			if err != nil {
				return nil, err
			}
			in.closers = append(in.closers, p)
			publishers = append(publishers, p)
		default:
			return nil, fmt.Errorf("unknown notification publisher %q", name)
		}
	}
	return publishers, nil
}

func (in *infra) connectRedis(ctx context.Context, cfg config.RedisConfig) error {
	if in.redis != nil {
		return nil
	}
	client, err := platformredis.New(ctx, cfg)
	if err != nil {
		return err
	}
	in.redis = client
	in.closers = append(in.closers, client)
	return nil
}

// Close releases connections in reverse order of creation.
func (in *infra) Close(log *slog.Logger) {
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i].Close(); err != nil {
			log.Warn("failed to close resource", "error", err)
		}
	}
}

type kafkaCloser struct{ client *kgo.Client }

func (k kafkaCloser) Close() error {
	k.client.Close()
	return nil
}

type app struct {
	verification *verificationservice.Service
	trust        *trustservice.Service
	messaging    *messagingservice.Service
}

// buildApp wires the three modules. Document decisions rescore the owner
// through the trust service, and the trust service gates message senders.
func buildApp(_ config.Server, in *infra, log *slog.Logger) *app {
	auditPublisher := audit.NewPublisher(in.audit, audit.WithLogger(log))

	trust := trustservice.New(in.profiles, adapters.NewVerificationAdapter(in.documents),
		trustservice.WithLogger(log),
		trustservice.WithMetrics(trustmetrics.New()),
		trustservice.WithAuditPublisher(auditPublisher),
	)
	verificationOpts := []verificationservice.Option{
		verificationservice.WithLogger(log),
		verificationservice.WithMetrics(verificationmetrics.New()),
		verificationservice.WithAuditPublisher(auditPublisher),
		verificationservice.WithTrustScorer(trust),
		verificationservice.WithNotifier(in.notifier),
	}
	if in.db != nil {
		verificationOpts = append(verificationOpts, verificationservice.WithTxRunner(postgres.NewTxRunner(in.db)))
	}
	verification := verificationservice.New(in.documents, verificationOpts...)
	messaging := messagingservice.New(in.messages, trust,
		messagingservice.WithLogger(log),
		messagingservice.WithMetrics(messagingmetrics.New()),
		messagingservice.WithAuditPublisher(auditPublisher),
		messagingservice.WithNotifier(in.notifier),
	)
	return &app{verification: verification, trust: trust, messaging: messaging}
}
