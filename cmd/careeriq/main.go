package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/careeriq/internal/adapters/advisor"
	"github.com/okian/careeriq/internal/adapters/auth"
	"github.com/okian/careeriq/internal/adapters/http/api"
	"github.com/okian/careeriq/internal/adapters/repository"
	app "github.com/okian/careeriq/internal/app"
	"github.com/okian/careeriq/internal/config"
	"github.com/okian/careeriq/internal/domain/cohort"
	"github.com/okian/careeriq/internal/domain/scoring"
	"github.com/okian/careeriq/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := repository.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Error(ctx, "failed to connect to store", logger.Error(err))
		return
	}
	defer func() {
		_ = store.Close(context.Background())
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Error(ctx, "failed to ensure indexes", logger.Error(err))
		return
	}

	var verifier api.TokenVerifier
	if cfg.IssuerURL != "" {
		v, err := auth.NewVerifier(cfg.IssuerURL, auth.WithAudience(cfg.Audience))
		if err != nil {
			log.Error(ctx, "failed to build token verifier", logger.Error(err))
			return
		}
		verifier = v
	} else {
		log.Warn(ctx, "no issuer configured, accepting unverified bearer tokens")
		verifier = auth.NewStaticVerifier()
	}

	var provider advisor.Provider
	if cfg.GeminiAPIKey != "" {
		gemini, err := advisor.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn(ctx, "advice provider unavailable, plans fall back to template", logger.Error(err))
		} else {
			provider = gemini
		}
	} else {
		log.Warn(ctx, "no advice provider credentials, plans fall back to template")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithProfileStore(store.Profiles()),
		app.WithReportStore(store.Reports()),
		app.WithPlanStore(store.Plans()),
		app.WithResolver(cohort.NewResolver(store.Surveys(), cohort.WithMinSampleSize(cfg.MinCohortSize))),
		app.WithEngine(scoring.NewEngine(
			scoring.WithSkillWeights(cfg.TechnicalWeight, cfg.SoftWeight),
			scoring.WithSoftSkillDefault(cfg.SoftSkillDefault),
		)),
		app.WithAdvisor(provider),
	)

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, verifier)
	apiServer.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
