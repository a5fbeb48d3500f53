package progress

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/progress/application/queries"
	"github.com/felixgeelhaar/focusfive/internal/progress/domain"
)

var badgesJSON bool

var badgeLabels = map[string]string{
	string(domain.BadgeStreak3):    "3-day streak",
	string(domain.BadgeStreak7):    "7-day streak",
	string(domain.BadgeStreak14):   "14-day streak",
	string(domain.BadgeStreak30):   "30-day streak",
	string(domain.BadgeWeeklyGoal): "Weekly goal",
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List earned badges",
	Long: `List the badges earned so far, newest first.

Examples:
  focusfive progress badges`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListBadgesHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		badges, err := app.ListBadgesHandler.Handle(cmd.Context(), queries.ListBadgesQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to list badges: %w", err)
		}

		if badgesJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(badges)
		}

		if len(badges) == 0 {
			fmt.Println("No badges yet. Keep the streak going.")
			return nil
		}

		for _, badge := range badges {
			label := badgeLabels[badge.Type]
			if label == "" {
				label = badge.Type
			}
			fmt.Printf("  %-14s earned %s\n", label, badge.EarnedAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	badgesCmd.Flags().BoolVar(&badgesJSON, "json", false, "output as JSON")
}
