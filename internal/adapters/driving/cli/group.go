package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/services"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Print the dataset query for a name, device or day",
	Long: `Print the dataset match query the importer would use for a file.

Precedence: a dataset name selects per-name grouping; otherwise a device id
selects per-device-per-day grouping; otherwise files are grouped per UTC day.

Examples:
  s3-importer group --name flight-42
  s3-importer group --device-id robot-1 --at 2024-03-15T23:59:59Z`,
	Args: cobra.NoArgs,
	RunE: runGroup,
}

func init() {
	groupCmd.Flags().String("name", "", "dataset name")
	groupCmd.Flags().String("device-id", "", "device id")
	groupCmd.Flags().String("at", "", "reference time, RFC 3339 (default now)")
	rootCmd.AddCommand(groupCmd)
}

func runGroup(cmd *cobra.Command, _ []string) error {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("getting name flag: %w", err)
	}
	deviceID, err := cmd.Flags().GetString("device-id")
	if err != nil {
		return fmt.Errorf("getting device-id flag: %w", err)
	}
	at, err := cmd.Flags().GetString("at")
	if err != nil {
		return fmt.Errorf("getting at flag: %w", err)
	}

	ref := time.Now()
	if at != "" {
		ref, err = time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("%w: --at %q is not RFC 3339", domain.ErrInvalidInput, at)
		}
	}

	args := domain.DatasetCreationArgs{Name: name, DeviceID: deviceID}
	fmt.Fprintln(cmd.OutOrStdout(), services.BestFitForArgsAt(args, ref))
	return nil
}
