package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"govpub/internal/app"
	"govpub/internal/bulkupload"
	"govpub/internal/emailsignup"
	"govpub/internal/jobs"
	jwttoken "govpub/internal/jwt_token"
	"govpub/internal/ministers"
	"govpub/internal/notifications"
	"govpub/internal/organisations"
	"govpub/internal/platform/config"
	"govpub/internal/platform/httpserver"
	"govpub/internal/platform/logger"
	"govpub/internal/platform/metrics"
	"govpub/internal/platform/tracing"
	"govpub/internal/publishingapi"
	"govpub/internal/speeches"
	"govpub/internal/statsannouncement"
	"govpub/internal/topics"
	httptransport "govpub/internal/transport/http"
)

// main wires the stores, the job worker and the HTTP router, then runs the
// server and the worker until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("failed to flush traces", "error", err)
		}
	}()

	infra, err := app.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := infra.Close(); err != nil {
			log.Warn("failed to close connections", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api, err := publishingapi.New(cfg.PublishingAPI.URL, cfg.PublishingAPI.BearerToken, cfg.PublishingAPI.Timeout)
	if err != nil {
		return err
	}
	worker, err := newWorker(cfg, infra, api, reg, log)
	if err != nil {
		return err
	}
	handlers, err := newHandlers(cfg, infra, api, reg, log)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Config{
		Logger:    log,
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
		Validator: jwttoken.NewJWTService(cfg.JWTSigningKey, "govpub"),
	}, handlers)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, log)
	})
	g.Go(func() error {
		return worker.Run(gctx)
	})
	return g.Wait()
}

func newWorker(cfg config.Server, infra *app.Infra, api *publishingapi.Client, reg prometheus.Registerer, log *slog.Logger) (*jobs.Worker, error) {
	sync, err := publishingapi.NewEditionSync(infra.Editions, api, cfg.PublishingAPI.AppName, log)
	if err != nil {
		return nil, err
	}
	worker, err := jobs.NewWorker(infra.Queue, jobs.WithLogger(log), jobs.WithMetrics(jobs.NewMetrics(reg)))
	if err != nil {
		return nil, err
	}
	worker.Handle(jobs.KindPublishingAPIEdition, sync.HandleJob)
	worker.Handle(jobs.KindDeliverMail, notifications.DeliveryHandler(log))
	return worker, nil
}

func newHandlers(cfg config.Server, infra *app.Infra, api *publishingapi.Client, reg prometheus.Registerer, log *slog.Logger) (httptransport.Handlers, error) {
	ministerService, err := ministers.NewService(infra.Roles, infra.Organisations, ministers.WithLogger(log))
	if err != nil {
		return httptransport.Handlers{}, err
	}
	speechService, err := speeches.NewService(infra.Editions, infra.Taxonomy, log)
	if err != nil {
		return httptransport.Handlers{}, err
	}
	organisationService, err := organisations.NewService(infra.Organisations, infra.Roles, infra.Editions, log)
	if err != nil {
		return httptransport.Handlers{}, err
	}

	fileCache, err := bulkupload.NewDiskFileCache(cfg.AttachmentCacheDir)
	if err != nil {
		return httptransport.Handlers{}, err
	}
	uploads, err := bulkupload.NewService(infra.Editions, infra.Attachments, fileCache,
		bulkupload.WithLogger(log),
		bulkupload.WithMetrics(bulkupload.NewMetrics(reg)),
	)
	if err != nil {
		return httptransport.Handlers{}, err
	}

	announcements, err := statsannouncement.NewService(infra.Announcements, statsannouncement.WithLogger(log))
	if err != nil {
		return httptransport.Handlers{}, err
	}

	topicOpts := []topics.ServiceOption{topics.WithLogger(log)}
	if infra.Redis != nil {
		cache, err := topics.NewRedisCache(infra.Redis)
		if err != nil {
			return httptransport.Handlers{}, err
		}
		topicOpts = append(topicOpts, topics.WithCache(cache, cfg.TopicCacheTTL))
	}
	topicService, err := topics.NewService(api, topicOpts...)
	if err != nil {
		return httptransport.Handlers{}, err
	}

	return httptransport.Handlers{
		Ministers:         ministers.NewHandler(ministerService, log),
		Speeches:          speeches.NewHandler(speechService, log),
		Organisations:     organisations.NewHandler(organisationService, log),
		EmailSignup:       emailsignup.NewHandler(emailsignup.NewResolver(infra.Organisations), log),
		BulkUpload:        bulkupload.NewHandler(uploads, log),
		StatsAnnouncement: statsannouncement.NewHandler(announcements, log),
		Topics:            topics.NewHandler(topicService, log),
	}, nil
}
