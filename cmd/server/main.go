package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"

	"github.com/bryanmalak/real-time-power-monitoring/internal/api"
	"github.com/bryanmalak/real-time-power-monitoring/internal/energy"
	"github.com/bryanmalak/real-time-power-monitoring/internal/history"
	"github.com/bryanmalak/real-time-power-monitoring/internal/metrics"
	"github.com/bryanmalak/real-time-power-monitoring/internal/models"
	"github.com/bryanmalak/real-time-power-monitoring/internal/simulator"
	"github.com/bryanmalak/real-time-power-monitoring/pkg/config"
)

func main() {
	log.Println("Starting Power Monitoring Dashboard...")

	// Load configuration
	cfg := config.Load()

	// In-memory series store: one bounded rolling window per device
	store := history.NewStore(models.AllDevices(), cfg.MaxSamples)

	// Sample generator driving the store
	sim, err := simulator.New(simulator.Config{
		Interval: cfg.TickInterval,
		Seed:     cfg.RandomSeed,
	}, store)
	if err != nil {
		log.Fatalf("Failed to initialize simulator: %v", err)
	}

	// Live stream hub for connected dashboards
	hub := api.NewHub()

	// Each tick updates the metrics gauges and redraws connected charts
	sim.SetTickCallback(func(snap simulator.TickSnapshot) {
		metrics.ObserveTick(snap)
		hub.Broadcast(snap)
	})

	h := &api.Handlers{
		Devices:   sim,
		Store:     store,
		Estimator: energy.NewEstimator(cfg.EnergyRateUSDPerKWh),
	}
	router := api.NewRouter(h, hub)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handlers.LoggingHandler(os.Stdout, router),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the tick loop
	sim.Run(ctx)

	go func() {
		log.Printf("Dashboard listening on %s (tick every %s, window %d samples)",
			cfg.HTTPAddr, cfg.TickInterval, cfg.MaxSamples)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
	hub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	log.Println("Shutdown complete")
}
