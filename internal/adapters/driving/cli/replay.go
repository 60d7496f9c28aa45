package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/s3-importer/internal/adapters/driving/events"
	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

// stdinIsTerminal reports whether stdin is interactive. Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var replayCmd = &cobra.Command{
	Use:   "replay [file...]",
	Short: "Replay saved S3 event notifications",
	Long: `Replay S3 event notification documents from files, or from stdin
when no file is given. A file may hold several concatenated documents;
all of its records are dispatched as one batch.

Examples:
  s3-importer replay event.json
  aws s3api ... | s3-importer replay
  s3-importer replay --dry-run events/*.json`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Bool("dry-run", false, "use an in-memory catalog instead of the API")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("getting dry-run flag: %w", err)
	}

	if len(args) == 0 && stdinIsTerminal() {
		return fmt.Errorf("%w: no event files given and stdin is a terminal", domain.ErrInvalidInput)
	}

	rt, err := loadRuntime(cmd.Context(), dryRun)
	if err != nil {
		return err
	}
	replayer := events.NewReplayer(rt.Dispatcher, rt.Settings.URIScheme)

	if len(args) == 0 {
		return replayOne(cmd, replayer, cmd.InOrStdin(), "stdin")
	}

	var errs []error
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		err = replayOne(cmd, replayer, f, path)
		f.Close()
		if err != nil {
			errs = append(errs, err)
			if rt.Settings.FailureMode == domain.FailureModeFailFast {
				break
			}
		}
	}
	return errors.Join(errs...)
}

func replayOne(cmd *cobra.Command, replayer *events.Replayer, r io.Reader, name string) error {
	result, err := replayer.Replay(cmd.Context(), r, name, domain.SourceReplay)
	if result != nil {
		printBatchResult(cmd.OutOrStdout(), name, result)
	}
	return err
}

func printBatchResult(w io.Writer, name string, result *domain.BatchResult) {
	fmt.Fprintf(w, "%s: %d received, %d processed, %d skipped, %d failed\n",
		name, result.Received, result.Processed, result.Skipped, result.Failed)
	for _, r := range result.Results {
		switch {
		case r.Skipped:
			fmt.Fprintf(w, "  skip    %s (%s)\n", r.Record.URI(), r.Record.EventName)
		case r.Err != nil:
			fmt.Fprintf(w, "  fail    %s: %v\n", r.Record.URI(), r.Err)
		default:
			fmt.Fprintf(w, "  import  %s -> %s\n", r.URI, r.DatasetID)
		}
	}
}
