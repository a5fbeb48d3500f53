package task

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
	"github.com/felixgeelhaar/focusfive/internal/tasks/domain"
)

var (
	category string
	energy   string
	estimate int
	date     string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a task on a day's list. A day holds as many tasks as
your daily goal (five by default).

Examples:
  focusfive task create "Complete project report"
  focusfive task create "Review PR" --category work --estimate 30
  focusfive task create "Stretch" --date 2026-09-01 --energy low`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		day, err := app.ResolveDate(ctx, date)
		if err != nil {
			return err
		}

		title := args[0]
		result, err := app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
			UserID:           app.CurrentUserID,
			Title:            title,
			Date:             day,
			Category:         category,
			EnergyLevel:      energy,
			EstimatedMinutes: estimate,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDailyCapacityReached) {
				return fmt.Errorf("%s has reached your daily goal", day.String())
			}
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("Task created: %s\n", result.TaskID)
		fmt.Printf("  title: %s\n", title)
		fmt.Printf("  slot:  %d\n", result.Priority)
		if category != "" {
			fmt.Printf("  category: %s\n", category)
		}
		if estimate > 0 {
			fmt.Printf("  estimate: %d minutes\n", estimate)
		}

		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&category, "category", "", "task category (work, health, learning, personal)")
	createCmd.Flags().StringVar(&energy, "energy", "", "energy level (low, medium, high)")
	createCmd.Flags().IntVar(&estimate, "estimate", 0, "estimated minutes")
	createCmd.Flags().StringVar(&date, "date", "", "day to create on (YYYY-MM-DD)")
}
