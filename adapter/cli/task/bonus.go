package task

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
	"github.com/felixgeelhaar/focusfive/internal/tasks/application/queries"
)

var bonusDate string

// Bonus tasks sit outside the five-task limit. They count toward
// nothing except the day's bonus list.
var bonusCmd = &cobra.Command{
	Use:   "bonus",
	Short: "Manage bonus tasks",
	Long:  `Bonus tasks are extras beyond the day's five. There is no cap on them.`,
}

var bonusAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a bonus task to today",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateAdditionalTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		day, err := app.ResolveDate(ctx, bonusDate)
		if err != nil {
			return err
		}

		title := strings.Join(args, " ")
		result, err := app.CreateAdditionalTaskHandler.Handle(ctx, commands.CreateAdditionalTaskCommand{
			UserID: app.CurrentUserID,
			Title:  title,
			Date:   day,
		})
		if err != nil {
			return fmt.Errorf("failed to create bonus task: %w", err)
		}

		fmt.Printf("Bonus task created: %s\n", result.TaskID)
		return nil
	},
}

var bonusDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a bonus task's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ToggleAdditionalTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		result, err := app.ToggleAdditionalTaskHandler.Handle(cmd.Context(), commands.ToggleAdditionalTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to toggle bonus task: %w", err)
		}

		if result.Completed {
			fmt.Println("Bonus task completed")
		} else {
			fmt.Println("Bonus task reopened")
		}
		return nil
	},
}

var bonusListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List a day's bonus tasks",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListAdditionalTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		day, err := app.ResolveDate(ctx, bonusDate)
		if err != nil {
			return err
		}

		tasks, err := app.ListAdditionalTasksHandler.Handle(ctx, queries.ListAdditionalTasksQuery{
			UserID: app.CurrentUserID,
			Date:   day,
		})
		if err != nil {
			return fmt.Errorf("failed to list bonus tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Printf("No bonus tasks on %s\n", day.String())
			return nil
		}

		fmt.Printf("Bonus tasks for %s:\n", day.String())
		for _, t := range tasks {
			marker := " "
			if t.Completed {
				marker = "x"
			}
			fmt.Printf("  [%s] %s  (%s)\n", marker, t.Title, t.ID.String()[:8])
		}
		return nil
	},
}

func init() {
	bonusCmd.PersistentFlags().StringVar(&bonusDate, "date", "", "day to use (YYYY-MM-DD)")
	bonusCmd.AddCommand(bonusAddCmd)
	bonusCmd.AddCommand(bonusDoneCmd)
	bonusCmd.AddCommand(bonusListCmd)
}
