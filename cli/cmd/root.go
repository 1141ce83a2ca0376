// ABOUTME: Root command for the smallworld CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// version is stamped into --version output.
const version = "1.0.0"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:     "smallworld",
	Short:   "CLI for the Small-World Topology Analyzer",
	Version: version,
	Long: `smallworld analyzes service dependency topologies for small-world
network properties and proposes shortcut edges that reduce path lengths
and relieve bottleneck services.

Environment Variables:
  SMALLWORLD_API_URL  Backend API URL (default: http://localhost:8080)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SMALLWORLD_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("SMALLWORLD_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
