package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
)

var doneActual int

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a task's completion",
	Long: `Toggle a task between done and not done by its ID.
For completing by slot number, use the top-level done command.

Examples:
  focusfive task done 2f3c9a10-...
  focusfive task done 2f3c9a10-... --actual 25`,
	Aliases: []string{"toggle"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ToggleTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		result, err := app.ToggleTaskHandler.Handle(cmd.Context(), commands.ToggleTaskCommand{
			TaskID:        taskID,
			UserID:        app.CurrentUserID,
			ActualMinutes: doneActual,
		})
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		if result.Completed {
			fmt.Println("Task completed")
		} else {
			fmt.Println("Task reopened")
		}
		return nil
	},
}

func init() {
	doneCmd.Flags().IntVar(&doneActual, "actual", 0, "actual minutes spent (recorded on completion)")
}
