package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
)

var (
	updateTitle    string
	updateCategory string
	updateEnergy   string
	updateEstimate int
	updateActual   int
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task's details",
	Long: `Update a task's title, category, energy level, or minute
estimates. Only the provided flags change.

Examples:
  focusfive task update 2f3c9a10-... --title "New title"
  focusfive task update 2f3c9a10-... --actual 45`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		update := commands.UpdateTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		}
		if cmd.Flags().Changed("title") {
			update.Title = &updateTitle
		}
		if cmd.Flags().Changed("category") {
			update.Category = &updateCategory
		}
		if cmd.Flags().Changed("energy") {
			update.EnergyLevel = &updateEnergy
		}
		if cmd.Flags().Changed("estimate") {
			update.EstimatedMinutes = &updateEstimate
		}
		if cmd.Flags().Changed("actual") {
			update.ActualMinutes = &updateActual
		}

		if err := app.UpdateTaskHandler.Handle(cmd.Context(), update); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Println("Task updated")
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "new category")
	updateCmd.Flags().StringVar(&updateEnergy, "energy", "", "new energy level")
	updateCmd.Flags().IntVar(&updateEstimate, "estimate", 0, "estimated minutes")
	updateCmd.Flags().IntVar(&updateActual, "actual", 0, "actual minutes spent")
}
