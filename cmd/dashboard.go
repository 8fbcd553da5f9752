package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/ui"
	"taskdeck/metrics"
	"taskdeck/models"
	"taskdeck/query"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "stats"},
	Short:   "Show task metrics",
	Long: `Show aggregate task metrics: total count, completion rate, overdue
count, and a per-status breakdown chart.

With --interactive, opens a live dashboard where picking a status segment
filters the task list underneath it.`,
	RunE: runDashboard,
}

var dashboardInteractive bool

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().BoolVarP(&dashboardInteractive, "interactive", "i", false, "open the interactive dashboard")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = taskStore.Close() }()

	tasks, err := taskStore.ListTasks(nil, nil)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	now := time.Now()

	if dashboardInteractive {
		selection, err := ui.RunDashboard(tasks, now)
		if err != nil {
			return err
		}
		return reportSelection(cmd, tasks, selection)
	}

	summary := metrics.Compute(tasks, now)

	if isJSON() {
		return printJSON(struct {
			Summary  metrics.Summary   `json:"summary"`
			Segments []metrics.Segment `json:"segments"`
		}{summary, metrics.ChartSegments(summary)})
	}

	fmt.Print(ui.RenderSummary(summary))
	fmt.Println()
	fmt.Print(ui.RenderStatusBars(metrics.ChartSegments(summary)))
	return nil
}

// reportSelection prints the task list matching the filter the user left the
// interactive dashboard with, so the selection carries over to the terminal.
func reportSelection(cmd *cobra.Command, tasks []models.Task, selection ui.DashboardSelection) error {
	params := query.DefaultParams()
	params.Status = selection.Status
	params.Search = selection.Search

	view := query.Apply(tasks, params)

	if isJSON() {
		return printJSON(struct {
			Status query.StatusFilter `json:"status"`
			Search string             `json:"search,omitempty"`
			Tasks  []models.Task      `json:"tasks"`
		}{selection.Status, selection.Search, view})
	}

	if selection.Status != query.StatusAll || selection.Search != "" {
		label := string(selection.Status)
		if selection.Search != "" {
			label += fmt.Sprintf(" matching %q", selection.Search)
		}
		cmd.Printf("Filter: %s (%d tasks)\n", label, len(view))
	}
	if len(view) == 0 {
		cmd.Println("No matching tasks.")
		return nil
	}
	fmt.Print(ui.RenderTaskTable(view))
	return nil
}
