// ABOUTME: Terminal rendering for analysis results using lipgloss
// ABOUTME: Formats graph metrics, node tables, shortcuts, and summaries

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/topologylab/smallworld/models"
)

var (
	// Colors
	primary = lipgloss.Color("#7C3AED") // Purple
	good    = lipgloss.Color("#10B981") // Green
	warning = lipgloss.Color("#F59E0B") // Amber
	muted   = lipgloss.Color("#6B7280") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(muted)

	goodStyle = lipgloss.NewStyle().Foreground(good)
	warnStyle = lipgloss.NewStyle().Foreground(warning)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
)

// GraphMetrics renders the graph-level metrics panel.
func GraphMetrics(gm models.GraphMetrics) string {
	gm = gm.Rounded()

	connected := warnStyle.Render("no")
	if gm.IsConnected {
		connected = goodStyle.Render("yes")
	}
	smallWorld := fmt.Sprintf("%.4f", gm.SmallWorldCoefficient)
	if gm.SmallWorldCoefficient > 1.0 {
		smallWorld = goodStyle.Render(smallWorld)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Graph Metrics"))
	b.WriteString("\n")
	rows := []struct {
		label string
		value string
	}{
		{"Services", fmt.Sprintf("%d", gm.NodeCount)},
		{"Dependencies", fmt.Sprintf("%d", gm.EdgeCount)},
		{"Density", fmt.Sprintf("%.4f", gm.Density)},
		{"Avg path length", fmt.Sprintf("%.4f", gm.AveragePathLength)},
		{"Weighted path length", fmt.Sprintf("%.4f", gm.WeightedAveragePathLength)},
		{"Diameter", fmt.Sprintf("%d", gm.Diameter)},
		{"Avg clustering", fmt.Sprintf("%.4f", gm.AverageClustering)},
		{"Connected", connected},
		{"Max betweenness", fmt.Sprintf("%.4f", gm.MaxBetweenness)},
		{"Hubs / bottlenecks", fmt.Sprintf("%d / %d", gm.HubCount, gm.BottleneckCount)},
		{"Small-world coefficient", smallWorld},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-24s %s\n", row.label, row.value))
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// NodeMetrics renders a per-service metrics table.
func NodeMetrics(nodes []models.NodeMetrics) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Service Metrics"))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %5s %5s %10s %10s %10s %5s %5s",
		"SERVICE", "IN", "OUT", "BETWEEN", "PAGERANK", "VULN", "HUB", "BTLN")))
	b.WriteString("\n")
	for _, nm := range nodes {
		hub := ""
		if nm.IsHub {
			hub = goodStyle.Render("*")
		}
		bottleneck := ""
		if nm.IsBottleneck {
			bottleneck = warnStyle.Render("!")
		}
		b.WriteString(fmt.Sprintf("%-24s %5d %5d %10.4f %10.4f %10.4f %5s %5s\n",
			nm.Name, nm.InDegree, nm.OutDegree,
			nm.BetweennessCentrality, nm.PageRank, nm.VulnerabilityScore,
			hub, bottleneck))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Shortcuts renders the ranked shortcut proposals.
func Shortcuts(shortcuts []models.ShortcutCandidate) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Proposed Shortcuts"))
	b.WriteString("\n")
	if len(shortcuts) == 0 {
		b.WriteString(headerStyle.Render("No beneficial shortcuts found."))
		return b.String()
	}
	for i, sc := range shortcuts {
		sc = sc.Rounded()
		b.WriteString(fmt.Sprintf("%d. %s -> %s  score=%.4f  improvement=%.4f  risk=%.2f  confidence=%.2f\n",
			i+1, sc.Source, sc.Target, sc.Score, sc.Improvement(), sc.RiskScore, sc.Confidence))
		b.WriteString(headerStyle.Render("   " + sc.Rationale))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Summary renders the operator-facing graph summary.
func Summary(s models.GraphSummary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Summary"))
	b.WriteString("\n")
	if s.IsSmallWorld {
		b.WriteString(goodStyle.Render("Topology exhibits small-world structure."))
	} else {
		b.WriteString(warnStyle.Render("Topology does not exhibit small-world structure."))
	}
	b.WriteString("\n")
	if len(s.HubServices) > 0 {
		b.WriteString(fmt.Sprintf("Hubs:        %s\n", strings.Join(s.HubServices, ", ")))
	}
	if len(s.BottleneckServices) > 0 {
		b.WriteString(fmt.Sprintf("Bottlenecks: %s\n", strings.Join(s.BottleneckServices, ", ")))
	}
	if s.MostConnectedService != "" {
		b.WriteString(fmt.Sprintf("Most connected: %s\n", s.MostConnectedService))
	}
	if s.HighestLoadService != "" {
		b.WriteString(fmt.Sprintf("Highest load:   %s\n", s.HighestLoadService))
	}
	for _, rec := range s.Recommendations {
		b.WriteString("- " + rec + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
