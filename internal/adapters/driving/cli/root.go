// Package cli provides the s3-importer command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driving"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// version is set at build time.
var version = "dev"

// Persistent flag values.
var (
	cfgFile   string
	verbose   bool
	logFormat string
)

// Runtime is the wired application a command runs against.
type Runtime struct {
	Settings   *domain.ImporterSettings
	Dispatcher driving.EventDispatcher
	Grouping   driving.GroupingService
}

// RuntimeOptions select how a Runtime is wired.
type RuntimeOptions struct {
	// ConfigPath is an optional TOML file.
	ConfigPath string

	// DryRun uses an in-memory catalog and does not require an API key.
	DryRun bool
}

// RuntimeBuilder wires a Runtime.
type RuntimeBuilder func(ctx context.Context, opts RuntimeOptions) (*Runtime, error)

var buildRuntime RuntimeBuilder

// SetRuntimeBuilder injects the wiring used by every command.
func SetRuntimeBuilder(b RuntimeBuilder) {
	buildRuntime = b
}

// SetVersion sets the reported version.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "s3-importer",
	Short: "Import S3 objects into a dataset catalog",
	Long: `s3-importer registers newly created S3 objects with a Roboto-style
dataset catalog. Each object is grouped into a dataset chosen by name,
by device and day, or by day, and imported by reference without copying.

Run it as an AWS Lambda function subscribed to bucket notifications (or an
SQS queue receiving them), replay saved notifications, or watch a spool
directory for notification files.

Configuration is read from an optional TOML file and the environment;
ROBOTO_API_KEY is required for anything that talks to the catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if logFormat != "" && !domain.LogFormat(logFormat).IsValid() {
			return fmt.Errorf("%w: --log-format %q (want text or json)", domain.ErrInvalidConfig, logFormat)
		}
		if logFormat != "" {
			logger.SetFormat(logFormat)
		}
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $S3_IMPORTER_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log encoding: text or json")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadRuntime builds the runtime and applies logging settings that were
// not given on the command line.
func loadRuntime(ctx context.Context, dryRun bool) (*Runtime, error) {
	if buildRuntime == nil {
		return nil, errors.New("runtime not configured")
	}
	rt, err := buildRuntime(ctx, RuntimeOptions{ConfigPath: cfgFile, DryRun: dryRun})
	if err != nil {
		return nil, err
	}
	if rt.Settings != nil {
		if rt.Settings.Verbose && !verbose {
			logger.SetVerbose(true)
		}
		if logFormat == "" && rt.Settings.LogFormat != "" {
			logger.SetFormat(string(rt.Settings.LogFormat))
		}
	}
	return rt, nil
}
