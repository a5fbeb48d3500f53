package insights

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/insights/application/queries"
)

var insightsJSON bool

// Cmd generates insights on demand; nothing is stored.
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Show productivity insights",
	Long: `Generate insights from your completed-task history: category
concentration, estimation accuracy, streak milestones, and daily
momentum. Insights are computed fresh each run.

Examples:
  focusfive insights
  focusfive insights --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GenerateInsightsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		today, err := app.Today(ctx)
		if err != nil {
			return err
		}

		result, err := app.GenerateInsightsHandler.Handle(ctx, queries.GenerateInsightsQuery{
			UserID: app.CurrentUserID,
			Date:   today,
		})
		if err != nil {
			return fmt.Errorf("failed to generate insights: %w", err)
		}

		if insightsJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		}

		if len(result.Insights) == 0 {
			fmt.Println("Nothing to report yet. Insights need a few days of history.")
			return nil
		}

		for _, insight := range result.Insights {
			fmt.Printf("\n  %s  [%s, %.0f%% confidence]\n", insight.Title, insight.Kind, insight.Confidence*100)
			fmt.Printf("  %s\n", insight.Description)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVar(&insightsJSON, "json", false, "output as JSON")
}
