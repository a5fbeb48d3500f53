package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	taskCommands "github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
	taskQueries "github.com/felixgeelhaar/focusfive/internal/tasks/application/queries"
)

var (
	doneDate   string
	doneActual int
)

var doneCmd = &cobra.Command{
	Use:   "done <slot>",
	Short: "Toggle a task by its slot number",
	Long: `Toggle completion of one of today's tasks by its slot (1-5).
Running it again on a completed task reopens it.

Examples:
  focusfive done 1
  focusfive done 2 --actual 45
  focusfive done 3 --date 2026-08-29`,
	Aliases: []string{"toggle", "x"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ToggleTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		slot, err := strconv.Atoi(args[0])
		if err != nil || slot < 1 {
			return fmt.Errorf("slot must be a task number between 1 and 5")
		}

		ctx := cmd.Context()
		date, err := app.ResolveDate(ctx, doneDate)
		if err != nil {
			return err
		}

		day, err := app.ListDayTasksHandler.Handle(ctx, taskQueries.ListDayTasksQuery{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to load day: %w", err)
		}

		for _, t := range day.Tasks {
			if t.Priority != slot {
				continue
			}
			result, err := app.ToggleTaskHandler.Handle(ctx, taskCommands.ToggleTaskCommand{
				TaskID:        t.ID,
				UserID:        app.CurrentUserID,
				ActualMinutes: doneActual,
			})
			if err != nil {
				return fmt.Errorf("failed to toggle task: %w", err)
			}
			if result.Completed {
				fmt.Printf("Done: %s\n", t.Title)
			} else {
				fmt.Printf("Reopened: %s\n", t.Title)
			}
			return nil
		}

		return fmt.Errorf("no task in slot %d on %s", slot, date.String())
	},
}

func init() {
	doneCmd.Flags().StringVar(&doneDate, "date", "", "day to toggle on (YYYY-MM-DD)")
	doneCmd.Flags().IntVar(&doneActual, "actual", 0, "actual minutes spent (recorded on completion)")
	rootCmd.AddCommand(doneCmd)
}
