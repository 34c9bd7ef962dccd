package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hebed-ai/accelerator-landing/config"
	"github.com/hebed-ai/accelerator-landing/domain"
	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/pkg/utils"
)

const defaultShutdownTimeout = 30 * time.Second

func main() {
	logger := log.NewLoggerWithJSONOutput()
	logger.Info("Accelerator landing server starting")

	if err := run(logger, wantsAutoMigrate(os.Args[1:])); err != nil {
		logger.Error("Server stopped with error", "error", err.Error())
		os.Exit(1)
	}
}

// wantsAutoMigrate looks for --auto-migrate or -m among the arguments.
func wantsAutoMigrate(args []string) bool {
	for _, arg := range args {
		switch strings.ToLower(strings.TrimSpace(arg)) {
		case "--auto-migrate", "-m":
			return true
		}
	}
	return false
}

func run(logger *log.Logger, autoMigrate bool) error {
	appConfig, err := config.LoadApplicationConfiguration(logger, autoMigrate)
	if err != nil {
		return err
	}
	defer appConfig.Cleanup()

	domain.SetupCoreDomain(appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, draining requests")

	timeout := utils.GetEnvPositiveDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("Graceful shutdown completed")
	return nil
}
