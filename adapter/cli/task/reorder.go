package task

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
)

var reorderDate string

var reorderCmd = &cobra.Command{
	Use:   "reorder <from> <to>",
	Short: "Move a task to a new slot",
	Long: `Move the task in slot <from> to slot <to>; everything between
shifts by one. Out-of-range targets clamp to the list's edges.

Examples:
  focusfive task reorder 4 1
  focusfive task reorder 1 5 --date 2026-08-29`,
	Aliases: []string{"move"},
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ReorderTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		from, err := strconv.Atoi(args[0])
		if err != nil || from < 1 {
			return fmt.Errorf("from must be a slot number")
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("to must be a slot number")
		}

		ctx := cmd.Context()
		day, err := app.ResolveDate(ctx, reorderDate)
		if err != nil {
			return err
		}

		result, err := app.ReorderTasksHandler.Handle(ctx, commands.ReorderTasksCommand{
			UserID:    app.CurrentUserID,
			Date:      day,
			FromIndex: from - 1,
			ToIndex:   to - 1,
		})
		if err != nil {
			return fmt.Errorf("failed to reorder tasks: %w", err)
		}

		if !result.Moved {
			fmt.Println("Nothing to move")
			return nil
		}
		fmt.Printf("Moved slot %d to %d\n", from, to)
		return nil
	},
}

func init() {
	reorderCmd.Flags().StringVar(&reorderDate, "date", "", "day to reorder (YYYY-MM-DD)")
}
