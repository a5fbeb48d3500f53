package progress

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/progress/application/queries"
)

var streakJSON bool

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current streak",
	Long: `Show how many consecutive days, today included, have at least
one completed task. A day without a completion breaks the chain.

Examples:
  focusfive progress streak`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetStreakHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		today, err := app.Today(ctx)
		if err != nil {
			return err
		}

		result, err := app.GetStreakHandler.Handle(ctx, queries.GetStreakQuery{
			UserID: app.CurrentUserID,
			Today:  today,
		})
		if err != nil {
			return fmt.Errorf("failed to compute streak: %w", err)
		}

		if streakJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		}

		switch result.Streak {
		case 0:
			fmt.Println("No streak yet. Complete a task today to start one.")
		case 1:
			fmt.Println("Streak: 1 day")
		default:
			fmt.Printf("Streak: %d days\n", result.Streak)
		}
		return nil
	},
}

func init() {
	streakCmd.Flags().BoolVar(&streakJSON, "json", false, "output as JSON")
}
