// ABOUTME: Analyze command running the full metrics and shortcut pipeline
// ABOUTME: Loads a topology file, runs the in-process engines, and renders results

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/topologylab/smallworld/cli/internal/render"
	"github.com/topologylab/smallworld/graph"
	"github.com/topologylab/smallworld/loader"
	"github.com/topologylab/smallworld/models"
	"github.com/topologylab/smallworld/services"
)

var (
	analyzeGoal      string
	analyzeShortcuts int
	analyzeOutput    string
	analyzeVerbose   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <topology-file>",
	Short: "Analyze a topology and propose shortcuts",
	Long: `Analyze computes small-world metrics for a service topology and
proposes shortcut edges that reduce the optimization objective.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAnalyze(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeGoal, "goal", "g", "balanced", "Optimization goal: latency, paths, load, balanced")
	analyzeCmd.Flags().IntVarP(&analyzeShortcuts, "shortcuts", "k", 5, "Maximum number of shortcuts to propose")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "text", "Output format: text or json")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Include per-service metrics")
	rootCmd.AddCommand(analyzeCmd)
}

// runAnalyze executes the analysis and returns exit code
func runAnalyze(ctx context.Context, w io.Writer, path string) int {
	topo, code := loadTopology(w, path)
	if code != 0 {
		return code
	}

	goal, _, err := models.ParseGoal(analyzeGoal)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	g, err := graph.FromTopology(topo)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	metricsEngine := services.NewMetricsEngine()
	engine := services.NewShortcutSearchEngine(metricsEngine)
	engine.SetGoal(goal)

	graphMetrics, nodeMetrics := metricsEngine.CalculateAll(g)
	shortcuts, err := engine.FindShortcuts(ctx, g, analyzeShortcuts, models.DefaultPolicy())
	if err != nil {
		fmt.Fprintf(w, "Error: analysis interrupted: %v\n", err)
		return 1
	}
	summary := services.BuildSummary(graphMetrics, nodeMetrics, shortcuts)

	if IsJSONOutput() || analyzeOutput == "json" {
		rounded := make([]models.ShortcutCandidate, len(shortcuts))
		for i, sc := range shortcuts {
			rounded[i] = sc.Rounded()
		}
		out := map[string]interface{}{
			"metrics":       graphMetrics.Rounded(),
			"shortcuts":     rounded,
			"graph_summary": summary,
			"goal":          string(goal),
		}
		if analyzeVerbose {
			out["node_metrics"] = roundedNodeList(nodeMetrics)
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, render.GraphMetrics(graphMetrics))
	if analyzeVerbose {
		fmt.Fprintln(w, render.NodeMetrics(roundedNodeList(nodeMetrics)))
	}
	fmt.Fprintln(w, render.Shortcuts(shortcuts))
	fmt.Fprintln(w, render.Summary(summary))
	return 0
}

// loadTopology reads and validates a topology file. Exit code 2 means
// the file could not be read or parsed; 1 means it failed validation.
func loadTopology(w io.Writer, path string) (models.Topology, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return models.Topology{}, 2
	}
	topo, err := loader.FromBytes(data)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return models.Topology{}, 1
		}
		return models.Topology{}, 2
	}
	return topo, 0
}

// roundedNodeList flattens node metrics to a name-sorted, rounded slice.
func roundedNodeList(nodeMetrics map[string]models.NodeMetrics) []models.NodeMetrics {
	names := make([]string, 0, len(nodeMetrics))
	for name := range nodeMetrics {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]models.NodeMetrics, len(names))
	for i, name := range names {
		list[i] = nodeMetrics[name].Rounded()
	}
	return list
}
