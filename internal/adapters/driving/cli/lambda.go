package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/s3-importer/internal/adapters/driving/lambda"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// startLambda hands the handler to the Lambda runtime. Replaced in tests.
var startLambda = func(h *lambda.Handler) {
	h.Start()
}

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as an AWS Lambda function",
	Long: `Serve AWS Lambda invocations. The function accepts S3 event
notifications directly, or SQS events whose message bodies are S3
notifications. For SQS, failed messages are reported as partial batch
failures so only they are redelivered.

Logs are JSON unless --log-format is given.`,
	Args: cobra.NoArgs,
	RunE: runLambda,
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

func runLambda(cmd *cobra.Command, _ []string) error {
	if logFormat == "" {
		logger.SetFormat(logger.FormatJSON)
	}

	rt, err := loadRuntime(cmd.Context(), false)
	if err != nil {
		return err
	}
	// loadRuntime applies the configured format, which defaults to text.
	if logFormat == "" {
		logger.SetFormat(logger.FormatJSON)
	}

	startLambda(lambda.NewHandler(rt.Dispatcher, rt.Settings.URIScheme, rt.Settings.FailureMode))
	return nil
}
