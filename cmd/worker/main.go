package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"civica/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
//  1. Load config.
//  2. Build app wiring.
//  3. Run the outbox relay and the election status reconciler on the
//     configured cron schedule.
func main() {
	log.Println("civica worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := app.Relay()
	reconciler := app.Reconciler()
	logger := app.Logger()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(app.Schedule(), func() {
		if err := relay.RunOnce(ctx); err != nil {
			logger.Error("outbox relay run failed",
				"event", "worker_relay_failed",
				"module", "cmd/worker",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		if err := reconciler.RunOnce(ctx); err != nil {
			logger.Error("election reconcile run failed",
				"event", "worker_reconcile_failed",
				"module", "cmd/worker",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}); err != nil {
		log.Fatalf("invalid worker schedule %q: %v", app.Schedule(), err)
	}
	scheduler.Start()

	logger.Info("worker scheduler started",
		"event", "worker_started",
		"module", "cmd/worker",
		"layer", "platform",
		"schedule", app.Schedule(),
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cancel()
	<-scheduler.Stop().Done()
	log.Println("civica worker stopped")
}
