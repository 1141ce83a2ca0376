// ABOUTME: Metrics command printing graph and per-service metrics
// ABOUTME: Runs the metrics engine in-process on a topology file

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/topologylab/smallworld/cli/internal/render"
	"github.com/topologylab/smallworld/graph"
	"github.com/topologylab/smallworld/models"
	"github.com/topologylab/smallworld/services"
)

var metricsNode string

var metricsCmd = &cobra.Command{
	Use:   "metrics <topology-file>",
	Short: "Compute metrics for a topology",
	Long:  `Metrics computes graph-level and per-service small-world metrics without running the shortcut search.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runMetrics(os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	metricsCmd.Flags().StringVarP(&metricsNode, "node", "n", "", "Show metrics for a single service")
	rootCmd.AddCommand(metricsCmd)
}

// runMetrics executes the metrics computation and returns exit code
func runMetrics(w io.Writer, path string) int {
	topo, code := loadTopology(w, path)
	if code != 0 {
		return code
	}

	g, err := graph.FromTopology(topo)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	metricsEngine := services.NewMetricsEngine()
	graphMetrics, nodeMetrics := metricsEngine.CalculateAll(g)

	if metricsNode != "" {
		nm, ok := nodeMetrics[metricsNode]
		if !ok {
			fmt.Fprintf(w, "Error: service %q not found in topology\n", metricsNode)
			return 1
		}
		if IsJSONOutput() {
			data, _ := json.MarshalIndent(nm.Rounded(), "", "  ")
			fmt.Fprintln(w, string(data))
		} else {
			fmt.Fprintln(w, render.NodeMetrics([]models.NodeMetrics{nm.Rounded()}))
		}
		return 0
	}

	if IsJSONOutput() {
		out := map[string]interface{}{
			"metrics":      graphMetrics.Rounded(),
			"node_metrics": roundedNodeList(nodeMetrics),
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, render.GraphMetrics(graphMetrics))
	fmt.Fprintln(w, render.NodeMetrics(roundedNodeList(nodeMetrics)))
	return 0
}
