package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show effective settings",
	Long: `Show the settings the importer would run with, after merging
defaults, the config file and the environment. The API key is masked.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	settings := rt.Settings
	if settings == nil {
		return fmt.Errorf("settings not available")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Endpoint: %s\n", settings.Catalog.Endpoint)
	if settings.Catalog.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Catalog.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	if settings.Catalog.OrgID != "" {
		cmd.Printf("  Org ID: %s\n", settings.Catalog.OrgID)
	} else {
		cmd.Printf("  Org ID: (not set)\n")
	}
	if settings.Catalog.RequestsPerSecond > 0 {
		cmd.Printf("  Rate Limit: %g req/s\n", settings.Catalog.RequestsPerSecond)
	} else {
		cmd.Printf("  Rate Limit: none\n")
	}
	if settings.Catalog.Timeout > 0 {
		cmd.Printf("  Timeout: %s\n", settings.Catalog.Timeout)
	} else {
		cmd.Printf("  Timeout: none\n")
	}
	cmd.Println()

	cmd.Println("[Grouping]")
	cmd.Printf("  Reference Time: %s\n", settings.Grouping.Reference)
	cmd.Println()

	cmd.Println("[Extractor]")
	pattern := settings.Extractor.KeyPattern
	if pattern == "" {
		pattern = "(none)"
	}
	cmd.Printf("  Key Pattern: %s\n", pattern)
	cmd.Printf("  Object Metadata: %s\n", yesNo(settings.Extractor.ObjectMetadata))
	if len(settings.Extractor.Tags) > 0 {
		cmd.Printf("  Tags: %s\n", strings.Join(settings.Extractor.Tags, ", "))
	}
	cmd.Println()

	cmd.Println("[Importer]")
	cmd.Printf("  Failure Mode: %s\n", settings.FailureMode.Description())
	cmd.Printf("  URI Scheme: %s\n", settings.URIScheme)
	cmd.Printf("  Log Format: %s\n", settings.LogFormat)

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
