package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-vault/api/controllers"
	"github.com/angelmondragon/storefront-vault/api/routes"
	"github.com/angelmondragon/storefront-vault/internal/assistant"
	"github.com/angelmondragon/storefront-vault/internal/cron"
	"github.com/angelmondragon/storefront-vault/internal/gates"
	"github.com/angelmondragon/storefront-vault/internal/messaging"
	"github.com/angelmondragon/storefront-vault/internal/orders"
	product "github.com/angelmondragon/storefront-vault/internal/products"
	"github.com/angelmondragon/storefront-vault/internal/storefront"
	"github.com/angelmondragon/storefront-vault/pkg/config"
	"github.com/angelmondragon/storefront-vault/pkg/db"
	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/env"
	"github.com/angelmondragon/storefront-vault/pkg/genai"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/metrics"
	"github.com/angelmondragon/storefront-vault/pkg/migrate"
	"github.com/angelmondragon/storefront-vault/pkg/redis"
	"github.com/angelmondragon/storefront-vault/pkg/sendgrid"
	"github.com/angelmondragon/storefront-vault/pkg/vault"
)

const (
	serviceName     = "storefront"
	shutdownTimeout = 10 * time.Second
)

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Instance:    env.InstanceID(),
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readiness := map[string]controllers.Pinger{}

	var gormDB *gorm.DB
	if cfg.Store.LocalBackend == config.BackendSQL {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}
		gormDB = dbClient.DB()
		readiness["database"] = dbClient
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		readiness["redis"] = redisClient
	}

	local, err := vault.LocalBackendFor(cfg.Store, gormDB)
	if err != nil {
		logg.Error(ctx, "failed to create local vault backend", err)
		os.Exit(1)
	}
	session, err := vault.SessionBackendFor(cfg.Store, redisClient)
	if err != nil {
		logg.Error(ctx, "failed to create session vault backend", err)
		os.Exit(1)
	}
	v, err := vault.New(vault.Params{
		Local:   local,
		Session: session,
		Logger:  logg,
		Metrics: metrics.NewVaultMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(ctx, "failed to create vault", err)
		os.Exit(1)
	}

	store, err := storefront.Open(ctx, storefront.Params{Vault: v, Logger: logg})
	if err != nil {
		logg.Error(ctx, "failed to open storefront", err)
		os.Exit(1)
	}

	gateKeeper, err := gates.New(gates.Params{
		Store:           store,
		Logger:          logg,
		ErrorResetDelay: cfg.Storefront.GateErrorReset,
	})
	if err != nil {
		logg.Error(ctx, "failed to create gates", err)
		os.Exit(1)
	}

	assistantSvc := assistant.NewService(assistant.Params{
		Collaborator: newCollaborator(ctx, cfg, logg),
		Logger:       logg,
	})

	editor, err := product.NewEditor(product.EditorParams{
		Store:     store,
		Assistant: assistantSvc,
		Logger:    logg,
		Delay:     cfg.Storefront.AutosaveDelay,
	})
	if err != nil {
		logg.Error(ctx, "failed to create product editor", err)
		os.Exit(1)
	}

	messagingSvc, err := messaging.NewService(messaging.ServiceParams{
		Store:  store,
		Writer: assistantSvc.Collaborator(),
		Logger: logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create messaging service", err)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Store:  store,
		Pickup: messagingSvc,
		Logger: logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}

	cronSvc, err := newDispatchCron(cfg, logg, store, redisClient)
	if err != nil {
		logg.Error(ctx, "failed to create message dispatcher", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, readiness, prometheus.DefaultGatherer, store, gateKeeper, ordersSvc, editor, assistantSvc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env":             cfg.App.Env,
		"addr":            addr,
		"local_backend":   cfg.Store.LocalBackend,
		"session_backend": cfg.Store.SessionBackend,
		"ai_enabled":      assistantSvc.Enabled(),
	})
	logg.Info(ctx, "starting storefront")

	go func() {
		if err := cronSvc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "message dispatcher stopped unexpectedly", err)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "storefront server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "http shutdown failed", err)
	}
	if err := editor.FlushAll(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "pending product edits were not saved", err)
	}
	logg.Info(shutdownCtx, "storefront shutting down gracefully")
}

// newCollaborator returns the Gemini backend when an API key is configured.
func newCollaborator(ctx context.Context, cfg *config.Config, logg *logger.Logger) assistant.Collaborator {
	if !cfg.GenAI.Enabled() {
		logg.Warn(ctx, "genai api key missing, assistant features disabled")
		return assistant.Disabled{}
	}
	client, err := genai.NewClient(
		ctx,
		cfg.GenAI.APIKey,
		genai.WithBaseURL(cfg.GenAI.BaseURL),
		genai.WithAPIVersion(cfg.GenAI.APIVersion),
		genai.WithTextModel(cfg.GenAI.TextModel),
		genai.WithImageModel(cfg.GenAI.ImageModel),
		genai.WithSpeechModel(cfg.GenAI.SpeechModel),
		genai.WithHTTPClient(&http.Client{Timeout: cfg.GenAI.Timeout}),
	)
	if err != nil {
		logg.Error(ctx, "failed to create genai client, assistant features disabled", err)
		return assistant.Disabled{}
	}
	gemini, err := assistant.NewGemini(client)
	if err != nil {
		logg.Error(ctx, "failed to create gemini collaborator, assistant features disabled", err)
		return assistant.Disabled{}
	}
	return gemini
}

// newDispatchCron schedules queued thank-you messages. SMS is logged only;
// email goes out through SendGrid when it is configured.
func newDispatchCron(cfg *config.Config, logg *logger.Logger, store *storefront.Store, redisClient *redis.Client) (*cron.Service, error) {
	senders := map[enums.MessageChannel]messaging.Sender{
		enums.MessageChannelSMS: messaging.NewLogSender(logg),
	}
	if cfg.Sendgrid.Enabled() {
		mail, err := sendgrid.NewClient(cfg.Sendgrid.APIKey, cfg.Sendgrid.DefaultFrom, cfg.Sendgrid.FromName)
		if err != nil {
			return nil, err
		}
		email, err := messaging.NewEmailSender(mail, cfg.Messaging.Subject)
		if err != nil {
			return nil, err
		}
		senders[enums.MessageChannelEmail] = email
	}

	job, err := messaging.NewDispatchJob(messaging.DispatchParams{
		Store:   store,
		Senders: senders,
		Logger:  logg,
	})
	if err != nil {
		return nil, err
	}

	var lock cron.Lock = cron.NewLocalLock()
	if redisClient != nil {
		redisLock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(cfg.App.Env, messaging.DispatchJobName), 0)
		if err != nil {
			return nil, err
		}
		lock = redisLock
	}

	return cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(job),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Messaging.DispatchInterval,
	})
}
