package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pairloom/garden-engine/internal/bootstrap"
	"github.com/pairloom/garden-engine/internal/config"
	"github.com/pairloom/garden-engine/internal/database"
	"github.com/pairloom/garden-engine/internal/garden"
	"github.com/pairloom/garden-engine/internal/handler"
	"github.com/pairloom/garden-engine/internal/pairing"
	"github.com/pairloom/garden-engine/internal/profile"
	"github.com/pairloom/garden-engine/internal/scheduler"
	"github.com/pairloom/garden-engine/internal/server"
	"github.com/pairloom/garden-engine/internal/sse"
	"github.com/pairloom/garden-engine/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	for _, warning := range warnings {
		slog.Warn(warning)
	}

	// Database
	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(dbPool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	// Event system
	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	// SSE hub (also serves as the presence source for harmony notifications)
	sseHub := sse.NewHub()
	sseHub.Start()

	// Services
	profileService := profile.NewService(repos.Profile)
	pairingService := pairing.NewService(repos.Pair)

	gardenCfg := garden.DefaultConfig()
	gardenCfg.StreakThreshold = cfg.StreakThreshold
	gardenCfg.StreakRewardGold = cfg.StreakRewardGold
	gardenCfg.HarmonyBonusGold = cfg.HarmonyBonusGold
	gardenCfg.RevivalCostGold = cfg.RevivalCostGold
	gardenCfg.RewaterCooldown = cfg.RewaterCooldown
	gardenCfg.RefundPercent = cfg.RefundPercent
	gardenCfg.TreeRadiusMultiplier = cfg.TreeRadiusMultiplier
	gardenCfg.BroadcastBothSessions = cfg.BroadcastBothSessions

	gardenService := garden.NewService(
		gardenCfg,
		repos.Garden,
		profileService,
		pairingService,
		sseHub,
		resilientPublisher,
		garden.SystemClock{},
	)

	// Event handlers
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		SSEHub:   sseHub,
		Config:   cfg,
	}); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	// Background neglect sweep
	workerPool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	workerPool.Start()

	sweepJob := worker.NewNeglectSweepJob(gardenService, repos.Garden, cfg.NeglectThreshold)
	sched := scheduler.New(workerPool)
	sched.Schedule(cfg.NeglectSweepInterval, sweepJob)

	// HTTP server
	handler.InitValidator()
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, gardenService, profileService, pairingService, sseHub)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         workerPool,
		SSEHub:             sseHub,
		ResilientPublisher: resilientPublisher,
	})
}
