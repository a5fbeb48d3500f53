package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	progressQueries "github.com/felixgeelhaar/focusfive/internal/progress/application/queries"
	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	taskQueries "github.com/felixgeelhaar/focusfive/internal/tasks/application/queries"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the current day",
	Long: `Display the day at a glance: the five focus tasks, any bonus
tasks, and the current streak.

Examples:
  focusfive today
  focusfive today --date 2026-08-29`,
	Aliases: []string{"day", "now"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ListDayTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		date, err := app.ResolveDate(ctx, todayDate)
		if err != nil {
			return err
		}

		// The three panels load concurrently. Results are only applied
		// while this user and date are still the selected view.
		guard := sharedApplication.NewStaleGuard()
		key := guard.Select(app.CurrentUserID.String() + ":" + date.String())

		var (
			day    *taskQueries.ListDayTasksResult
			bonus  []taskQueries.AdditionalTaskDTO
			streak int
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			result, err := app.ListDayTasksHandler.Handle(gctx, taskQueries.ListDayTasksQuery{
				UserID: app.CurrentUserID,
				Date:   date,
			})
			if err != nil {
				return err
			}
			guard.Apply(key, func() { day = result })
			return nil
		})
		g.Go(func() error {
			result, err := app.ListAdditionalTasksHandler.Handle(gctx, taskQueries.ListAdditionalTasksQuery{
				UserID: app.CurrentUserID,
				Date:   date,
			})
			if err != nil {
				return err
			}
			guard.Apply(key, func() { bonus = result })
			return nil
		})
		g.Go(func() error {
			result, err := app.GetStreakHandler.Handle(gctx, progressQueries.GetStreakQuery{
				UserID: app.CurrentUserID,
				Today:  date,
			})
			if err != nil {
				return err
			}
			guard.Apply(key, func() { streak = result.Streak })
			return nil
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("failed to load day: %w", err)
		}

		fmt.Printf("\n  %s\n", date.String())
		fmt.Println(strings.Repeat("=", 50))

		if len(day.Tasks) == 0 {
			fmt.Println("\n  No tasks yet. Add up to five with: focusfive add <title>")
		} else {
			fmt.Println()
			for _, t := range day.Tasks {
				fmt.Printf("  %s %d. %s\n", checkbox(t.Completed), t.Priority, t.Title)
			}
			fmt.Printf("\n  %d of %d done, %d remaining\n", day.CompletedCount, len(day.Tasks), day.Remaining)
		}

		if len(bonus) > 0 {
			fmt.Println("\n  Bonus:")
			for _, t := range bonus {
				fmt.Printf("  %s %s\n", checkbox(t.Completed), t.Title)
			}
		}

		if streak > 0 {
			fmt.Printf("\n  Streak: %d day(s)\n", streak)
		}
		fmt.Println()

		return nil
	},
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func init() {
	todayCmd.Flags().StringVar(&todayDate, "date", "", "day to show (YYYY-MM-DD)")
	rootCmd.AddCommand(todayCmd)
}
