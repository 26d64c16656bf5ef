package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/cli"
	"tally/internal/notify"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting tally-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL must be set for the notification worker")
		os.Exit(1)
	}

	amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP notifier", "error", err)
		os.Exit(1)
	}
	defer amqpNotifier.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpNotifier.Consume(gctx, deliver)
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
			return nil
		case <-gctx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}

// deliver is the delivery step for queued notifications. There is no
// outbound mail or push integration here, delivery means writing a
// structured log line an operator can route.
func deliver(ctx context.Context, msg *notify.Message) error {
	if msg.Recipient == "" {
		return fmt.Errorf("notification has no recipient")
	}
	slog.InfoContext(ctx, "Notification delivered",
		"recipient", msg.Recipient,
		"body", msg.Body,
		"queued_at", msg.Timestamp.Format(time.RFC3339))
	return nil
}
