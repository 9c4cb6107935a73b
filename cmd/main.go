package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/handler"
	"github.com/KasumiMercury/primind-event-reminder/internal/health"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/calendar"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/deliveryrecorder"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/slackbot"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-event-reminder/internal/scheduler"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/compose"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/description"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/reminder"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/timing"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("event-reminder")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	obs.SetLogLevel(cfg.LogLevel)

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reminderMetrics, err := metrics.NewReminderMetrics(registry)
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := deliveryrecorder.NewRecorder(ctx, deliveryrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize delivery result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close delivery result recorder", slog.String("error", err.Error()))
		}
	}()

	redisOpts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	eventSource, err := newEventSource(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize calendar source", slog.String("error", err.Error()))
		return 1
	}

	slackAPI := slackbot.NewClient(cfg.Slack)
	directory := slackbot.NewDirectory(slackAPI, cfg.Workspace.DefaultChannelIDs)
	messenger := slackbot.NewMessenger(slackAPI, slackbot.DefaultDirectMessagePause)
	emojiSupplier := slackbot.NewEmojiSupplier(slackAPI)

	deliveryRepo := repository.NewDeliveryRepository(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.DeliveryTTL)

	reminderService := reminder.NewService(
		eventSource,
		directory,
		messenger,
		deliveryRepo,
		resultRecorder,
		timing.NewClassifierFromConfig(cfg.Timing),
		description.NewParser(),
		compose.NewComposer(emojiSupplier, cfg.Workspace),
		reminderMetrics,
		reminder.Config{
			EventLimit: cfg.EventLimit,
			LogChannel: cfg.Slack.LogChannel,
		},
	)
	reminderHandler := handler.NewReminderHandler(reminderService, directory)

	if cfg.CheckCron != "" {
		sched, err := scheduler.New(cfg.CheckCron, cfg.Workspace.Location(), func(ctx context.Context, now time.Time, runID string) error {
			_, err := reminderService.CheckEvents(ctx, now, runID)
			return err
		})
		if err != nil {
			slog.Error("failed to initialize scheduler", slog.String("error", err.Error()))
			return 1
		}
		sched.Start(ctx)
		defer sched.Stop()
	}

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-event-reminder/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, Version,
		health.Probe{Name: "slack", Check: slackbot.AuthCheck(slackAPI)},
	)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/reminders/check", reminderHandler.HandleCheck)
		v1.POST("/descriptions/preview", reminderHandler.HandlePreview)
		v1.POST("/channels/refresh", reminderHandler.HandleRefreshChannels)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("event_limit", cfg.EventLimit),
			slog.Duration("near_window", cfg.Timing.Near),
			slog.Duration("far_window", cfg.Timing.Far),
			slog.String("check_cron", cfg.CheckCron),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

// newEventSource prefers an ICS feed when one is configured.
func newEventSource(ctx context.Context, cfg *config.Config) (domain.EventSource, error) {
	if cfg.Calendar.UsesICS() {
		slog.Info("calendar source initialized",
			slog.String("type", "ics"),
		)
		return calendar.NewICSSource(cfg.Calendar.ICSURL, cfg.Workspace.Location(), calendar.DefaultICSHorizon), nil
	}

	opts, err := calendar.ClientOptions(ctx, &cfg.Calendar)
	if err != nil {
		return nil, err
	}

	src, err := calendar.NewGoogleSource(ctx, cfg.Calendar.CalendarID, opts...)
	if err != nil {
		return nil, err
	}

	slog.Info("calendar source initialized",
		slog.String("type", "google"),
		slog.String("calendar_id", cfg.Calendar.CalendarID),
	)
	return src, nil
}
