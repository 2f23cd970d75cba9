// Package main provides the entry point for the lap time estimation API.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/autorev/laptime-engine/internal/config"
	"github.com/autorev/laptime-engine/internal/database"
	"github.com/autorev/laptime-engine/internal/estimation"
	"github.com/autorev/laptime-engine/internal/health"
	"github.com/autorev/laptime-engine/internal/logger"
	"github.com/autorev/laptime-engine/internal/metrics"
	"github.com/autorev/laptime-engine/internal/repository"
	"github.com/autorev/laptime-engine/internal/scheduler"
	"github.com/autorev/laptime-engine/internal/server"
	"github.com/autorev/laptime-engine/internal/similar"
	"github.com/autorev/laptime-engine/internal/trackstats"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "laptime-api",
	Short: "AutoRev lap time estimation API",
	Long:  `Serves tiered lap time estimates computed from recorded lap times, professional references and comparable cars.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	appLog = logger.NewLogger(cfg.App.LogLevel)
	return nil
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.InitRegistry()

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to create repositories: %w", err)
	}

	classifier := trackstats.NewDefaultClassifier()
	cache := trackstats.NewCache(cfg.CacheTTL())
	builder := trackstats.NewBuilder(repos.LapTime, repos.Track, classifier, cache, appLog)
	finder := similar.NewFinder(repos.LapTime, classifier, cfg.Engine.SimilarCarLimit, appLog)
	engine := estimation.NewEngine(builder, finder, appLog)

	// Health endpoints
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        strconv.Itoa(cfg.Server.HealthPort),
		Logger:      appLog,
		DB:          db,
		Cache:       cache,
	})
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	// Prometheus endpoint
	if cfg.Metrics.Enabled {
		go serveMetrics(appLog)
	}

	// Public estimation API
	apiServer := server.NewServer(&cfg.Server, engine, appLog)
	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	// Cache prewarm for popular tracks
	var sched *scheduler.Scheduler
	if cfg.Engine.PrewarmSchedule != "" && len(cfg.Engine.PrewarmTracks) > 0 {
		sched = scheduler.NewScheduler(builder, cfg.Engine.PrewarmTracks, appLog)
		if err := sched.SchedulePrewarm(cfg.Engine.PrewarmSchedule); err != nil {
			return fmt.Errorf("failed to schedule prewarm: %w", err)
		}
		sched.Start()
	}

	healthServer.SetReady(true)
	appLog.WithFields(logrus.Fields{
		"version":     Version,
		"environment": cfg.App.Environment,
	}).Info("Lap time estimation service started")

	// Block until shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLog.WithField("signal", sig.String()).Info("Shutting down")

	healthServer.SetReady(false)
	if sched != nil {
		sched.Stop()
	}
	cancel()

	// Give the servers a moment to drain
	time.Sleep(time.Second)
	return nil
}

func serveMetrics(logger *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	addr := ":" + strconv.Itoa(cfg.Metrics.Port)
	logger.WithField("addr", addr).Info("Metrics server starting")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.WithError(err).Error("Metrics server error")
	}
}
