package task

import (
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the day's tasks",
	Long:  `Create, list, complete, reorder, and remove the day's five tasks.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(reorderCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(bonusCmd)
}
