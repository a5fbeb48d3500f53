package task

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/queries"
)

var (
	listDate string
	listJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a day's tasks",
	Long: `List the tasks for a day in slot order.

Examples:
  focusfive task list
  focusfive task list --date 2026-08-29
  focusfive task list --json`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListDayTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		day, err := app.ResolveDate(ctx, listDate)
		if err != nil {
			return err
		}

		result, err := app.ListDayTasksHandler.Handle(ctx, queries.ListDayTasksQuery{
			UserID: app.CurrentUserID,
			Date:   day,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if listJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		}

		if len(result.Tasks) == 0 {
			fmt.Printf("No tasks on %s\n", day.String())
			return nil
		}

		fmt.Printf("Tasks for %s:\n", day.String())
		for _, t := range result.Tasks {
			marker := " "
			if t.Completed {
				marker = "x"
			}
			line := fmt.Sprintf("  [%s] %d. %s", marker, t.Priority, t.Title)
			if t.Category != "" {
				line += fmt.Sprintf("  (%s)", t.Category)
			}
			if t.EstimatedMinutes > 0 {
				line += fmt.Sprintf("  ~%dm", t.EstimatedMinutes)
			}
			fmt.Println(line)
		}
		fmt.Printf("%d done, %d remaining\n", result.CompletedCount, result.Remaining)

		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "day to list (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}
