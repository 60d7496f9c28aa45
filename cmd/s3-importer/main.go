// Command s3-importer imports newly created S3 objects into a dataset
// catalog.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/s3-importer/internal/adapters/driving/cli"
	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// version is set by the linker.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetRuntimeBuilder(buildRuntime)

	if err := cli.Execute(ctx); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes configuration errors from runtime failures.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingAPIKey), errors.Is(err, domain.ErrInvalidConfig):
		return 2
	default:
		return 1
	}
}
