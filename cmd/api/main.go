package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/insurly/autoquote/internal/assess"
	"github.com/insurly/autoquote/internal/core"
	transporthttp "github.com/insurly/autoquote/internal/http"
	"github.com/insurly/autoquote/internal/http/handlers"
	"github.com/insurly/autoquote/internal/http/health"
	"github.com/insurly/autoquote/internal/jobs"
	"github.com/insurly/autoquote/internal/middleware"
	"github.com/insurly/autoquote/internal/platform/config"
	"github.com/insurly/autoquote/internal/platform/logging"
	"github.com/insurly/autoquote/internal/store/dynamo"
	"github.com/insurly/autoquote/internal/store/memory"
	"github.com/insurly/autoquote/internal/store/mongo"
)

func main() {
	cfg := config.MustLoad()
	logger := logging.New(cfg.Env)
	addr := fmt.Sprintf(":%s", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	quotes, pinger, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to set up store: %v", err)
	}
	defer cleanup()

	var assessor core.RiskAssessor
	if cfg.RiskAssessor == "static" {
		assessor = assess.NewStaticAssessor()
	}

	svc := core.NewQuotationService(
		core.NewValidationEngine(core.ValidationConfig{
			MaxVehicleAge: cfg.MaxVehicleAge,
			MinDriverAge:  cfg.MinDriverAge,
			MaxDriverAge:  cfg.MaxDriverAge,
			MinCoverage:   cfg.MinCoverage,
			MaxCoverage:   cfg.MaxCoverage,
		}),
		core.NewRiskCalculator(cfg.BasePremiumRate),
		core.NewDiscountCalculator(),
		core.NewQuoteBuilder(cfg.QuoteValidityDays),
		quotes,
		assessor,
	)

	// ---- Router ----
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(time.Duration(cfg.HTTPRequestTimeoutSec) * time.Second))

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.LimitRequestBody(middleware.MaxBodySize))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPM, time.Minute)
	limiter.StartWithContext(ctx)
	r.Use(limiter.Middleware)
	r.Use(middleware.SimpleAPIKey(cfg.APIKey))

	hh := health.New(logger, pinger, 2*time.Second)
	r.Handle("/health", hh)
	r.Handle("/readyz", hh)

	r.Mount("/", transporthttp.NewRouter(transporthttp.Deps{
		Mounts: []handlers.Mountable{
			handlers.NewQuoteHandler(svc, logger),
		},
	}))

	// ---- Retention worker ----
	retention := jobs.NewRetentionWorker(quotes,
		time.Duration(cfg.WorkerIntervalSec)*time.Second,
		time.Duration(cfg.QuoteRetentionDays)*24*time.Hour,
		logger)
	go retention.Start(ctx)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "env", cfg.Env, "db", cfg.DBType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}

type alwaysReady struct{}

func (alwaysReady) Ping(context.Context) error { return nil }

// buildStore selects the quote repository backend from configuration and
// returns it together with a readiness pinger and a cleanup function.
func buildStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.QuoteRepo, health.Pinger, func(), error) {
	switch cfg.DBType {
	case "mongo":
		client, err := mongo.NewClient(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to mongo: %w", err)
		}
		if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
			_ = client.Close(context.Background())
			return nil, nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		repo := mongo.NewQuoteRepo(client.DB, time.Duration(cfg.MongoOpTimeoutMs)*time.Millisecond)
		cleanup := func() { _ = client.Close(context.Background()) }
		return repo, client, cleanup, nil

	case "dynamodb":
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to dynamodb: %w", err)
		}
		if err := dynamo.EnsureTables(ctx, client.DB, logger); err != nil {
			return nil, nil, nil, fmt.Errorf("ensure tables: %w", err)
		}
		return dynamo.NewQuoteRepo(client.DB), client, func() {}, nil

	case "memory":
		return memory.NewQuoteRepo(), alwaysReady{}, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown DB_TYPE %q", cfg.DBType)
	}
}
