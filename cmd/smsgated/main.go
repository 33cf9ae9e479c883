package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/platform/config"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/platform/database"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/platform/logger"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/platform/messagebroker"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/adapters/compat"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/adapters/emergency"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/adapters/platformfeature"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/adapters/radiostate"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/adapters/sim"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/adapters/transmission"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/app"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/guard"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/middleware"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/repository"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/repository/memory"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/repository/postgres"
	httptransport "github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/transport/http"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/wappush"
)

func main() {
	cfgManager, err := config.Load("./configs", "config.defaults")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := cfgManager.Current()

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("SMS admission gate service starting...", "port", cfg.HTTPPort, "log_level", cfg.LogLevel)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Subscription registry and decision journal. Without Postgres the
	// service still gates sends, with an in-memory registry and no audit
	// trail.
	var registry guard.SubscriptionUserRegistry
	var journal repository.DecisionJournal
	if cfg.PostgresDSN != "" {
		dbPool, err := database.NewDBPool(rootCtx, cfg.PostgresDSN)
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		appLogger.Info("Successfully connected to PostgreSQL database")

		registry = postgres.NewPgSubscriptionUserRegistry(dbPool, appLogger)
		journal = postgres.NewPgDecisionJournal(dbPool, appLogger)
	} else {
		appLogger.Warn("POSTGRES_DSN not set; using in-memory subscription registry, decision journaling disabled")
		registry = memory.NewInMemorySubscriptionUserRegistry()
	}

	if cfg.NATSUrl == "" {
		appLogger.Error("NATS URL is not configured (APP_NATS_URL)")
		os.Exit(1)
	}
	natsClient, err := messagebroker.NewNatsClient(cfg.NATSUrl, "smsgated", appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer natsClient.Close()
	appLogger.Info("Successfully connected to NATS")

	// SIM profile snapshots and radio ECM state arrive over NATS and are
	// kept resident for synchronous gate evaluation.
	simStore := sim.NewStore(appLogger)
	if err := simStore.StartConsuming(rootCtx, natsClient, cfg.SimProfileSnapshotSubject); err != nil {
		appLogger.Error("Failed to subscribe to SIM profile snapshots", "error", err)
		os.Exit(1)
	}
	defer simStore.StopConsuming()

	radioTracker := radiostate.NewTracker(appLogger)
	if err := radioTracker.StartConsuming(rootCtx, natsClient, cfg.RadioEcmStateSubject); err != nil {
		appLogger.Error("Failed to subscribe to radio ECM state", "error", err)
		os.Exit(1)
	}
	defer radioTracker.StopConsuming()

	var wapCache wappush.Store
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(rootCtx).Err(); err != nil {
			appLogger.Error("Failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		wapCache = wappush.NewRedisStore(redisClient)
		appLogger.Info("Using Redis WAP push size cache", "addr", cfg.RedisAddr)
	} else {
		wapCache = wappush.NewMemoryStore()
	}

	compatToggle := compat.NewToggle(cfg.CompatChanges)
	cfgManager.OnReload(func(fresh *config.Config) {
		compatToggle.Reload(fresh.CompatChanges)
		appLogger.Info("Compatibility change state reloaded", "changes", len(fresh.CompatChanges))
	})
	cfgManager.Watch(appLogger)

	featureGate := guard.NewFeatureRequirementGate(platformfeature.NewRegistry(cfg.PlatformFeatures), compatToggle)
	subscriptionGuard := guard.NewSubscriptionAccessGuard(registry, guard.GrantPermissionChecker{}, appLogger)
	ecmGate := guard.NewEcmGate(radioTracker)

	dispatcher := transmission.NewNatsDispatcher(natsClient, cfg.RadioDispatchSubject, appLogger)

	admissionService := app.NewSmsAdmissionService(
		simStore,
		simStore,
		emergency.NewClassifier(cfg.EmergencyNumbers),
		subscriptionGuard,
		ecmGate,
		featureGate,
		wapCache,
		dispatcher,
		journal,
		appLogger,
	)

	smsHandler := httptransport.NewSmsHandler(admissionService, appLogger)

	router := chi.NewRouter()
	router.Use(chi_middleware.RequestID)
	router.Use(chi_middleware.RealIP)
	router.Use(chi_middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CallerIdentity(cfg.CallerTokenSecret, appLogger))
		smsHandler.RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		appLogger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutdown signal received, stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("SMS admission gate service shut down successfully.")
}
