package progress

import (
	"github.com/spf13/cobra"
)

// Cmd is the progress command group
var Cmd = &cobra.Command{
	Use:   "progress",
	Short: "Streaks and badges",
	Long:  `Show the current completion streak and earned badges.`,
}

func init() {
	Cmd.AddCommand(streakCmd)
	Cmd.AddCommand(badgesCmd)
}
