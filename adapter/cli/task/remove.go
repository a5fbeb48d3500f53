package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
)

var removeCmd = &cobra.Command{
	Use:   "remove <task-id>",
	Short: "Remove a task",
	Long: `Remove a task from its day. Tasks below it move up so slots
stay contiguous.

Examples:
  focusfive task remove 2f3c9a10-...`,
	Aliases: []string{"rm", "delete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RemoveTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		if err := app.RemoveTaskHandler.Handle(cmd.Context(), commands.RemoveTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		}); err != nil {
			return fmt.Errorf("failed to remove task: %w", err)
		}

		fmt.Println("Task removed")
		return nil
	},
}
