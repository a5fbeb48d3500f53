package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	taskCommands "github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
	tasksDomain "github.com/felixgeelhaar/focusfive/internal/tasks/domain"
)

var (
	addCategory string
	addEnergy   string
	addEstimate int
	addDate     string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Quick add a task to today",
	Long: `Add a task to today's list. The day holds as many tasks as your
daily goal (five by default); the new task takes the next free slot.

Examples:
  focusfive add "Finish quarterly report"
  focusfive add "Review PR" --category work --estimate 30
  focusfive add "Morning run" --category health --energy high`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		date, err := app.ResolveDate(ctx, addDate)
		if err != nil {
			return err
		}

		title := strings.Join(args, " ")
		result, err := app.CreateTaskHandler.Handle(ctx, taskCommands.CreateTaskCommand{
			UserID:           app.CurrentUserID,
			Title:            title,
			Date:             date,
			Category:         addCategory,
			EnergyLevel:      addEnergy,
			EstimatedMinutes: addEstimate,
		})
		if err != nil {
			if errors.Is(err, tasksDomain.ErrDailyCapacityReached) {
				return fmt.Errorf("the day has reached your daily goal - finish or remove a task first")
			}
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("Task added at slot %d: %s\n", result.Priority, title)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addCategory, "category", "", "task category (work, health, learning, personal)")
	addCmd.Flags().StringVar(&addEnergy, "energy", "", "energy level (low, medium, high)")
	addCmd.Flags().IntVar(&addEstimate, "estimate", 0, "estimated minutes")
	addCmd.Flags().StringVar(&addDate, "date", "", "day to add to (YYYY-MM-DD)")
	rootCmd.AddCommand(addCmd)
}
