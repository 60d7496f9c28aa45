package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/s3-importer/internal/adapters/driving/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Import S3 event files dropped into a spool directory",
	Long: `Watch a directory for S3 event notification files (*.json) and
replay each one as it arrives. Handled files are moved into processed/ or
failed/ beneath the directory. Files already present are handled first.

Writers should create files under a temporary name and rename them into
place once complete.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("dry-run", false, "use an in-memory catalog instead of the API")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("getting dry-run flag: %w", err)
	}

	rt, err := loadRuntime(cmd.Context(), dryRun)
	if err != nil {
		return err
	}

	watcher := events.NewWatcher(args[0], events.NewReplayer(rt.Dispatcher, rt.Settings.URIScheme))
	return watcher.Run(cmd.Context())
}
