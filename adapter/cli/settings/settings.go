package settings

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	identitySettings "github.com/felixgeelhaar/focusfive/internal/identity/application/settings"
)

var (
	settingsJSON bool

	setDarkMode   bool
	setSound      bool
	setDailyGoal  int
	setWeeklyGoal int
	setResetTime  string
	setTimezone   string
)

var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage user settings",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SettingsService == nil {
			return errors.New("settings service not configured")
		}
		if app.CurrentUserID == uuid.Nil {
			return errors.New("current user not configured")
		}

		dto, err := app.SettingsService.GetOrCreate(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return err
		}

		if settingsJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(dto)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "daily goal:    %d\n", dto.DailyGoal)
		fmt.Fprintf(cmd.OutOrStdout(), "weekly goal:   %d\n", dto.WeeklyGoal)
		fmt.Fprintf(cmd.OutOrStdout(), "reset time:    %s\n", dto.ResetTime)
		fmt.Fprintf(cmd.OutOrStdout(), "timezone:      %s\n", dto.Timezone)
		fmt.Fprintf(cmd.OutOrStdout(), "dark mode:     %t\n", dto.DarkMode)
		fmt.Fprintf(cmd.OutOrStdout(), "sound enabled: %t\n", dto.SoundEnabled)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings",
	Long: `Update one or more settings. Only the provided flags change.

Examples:
  focusfive settings set --daily-goal 3
  focusfive settings set --reset-time 04:00 --timezone Europe/Berlin
  focusfive settings set --dark-mode=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SettingsService == nil {
			return errors.New("settings service not configured")
		}
		if app.CurrentUserID == uuid.Nil {
			return errors.New("current user not configured")
		}

		patch := identitySettings.UpdateSettings{UserID: app.CurrentUserID}
		changed := false
		if cmd.Flags().Changed("dark-mode") {
			patch.DarkMode = &setDarkMode
			changed = true
		}
		if cmd.Flags().Changed("sound") {
			patch.SoundEnabled = &setSound
			changed = true
		}
		if cmd.Flags().Changed("daily-goal") {
			patch.DailyGoal = &setDailyGoal
			changed = true
		}
		if cmd.Flags().Changed("weekly-goal") {
			patch.WeeklyGoal = &setWeeklyGoal
			changed = true
		}
		if cmd.Flags().Changed("reset-time") {
			patch.ResetTime = &setResetTime
			changed = true
		}
		if cmd.Flags().Changed("timezone") {
			patch.Timezone = &setTimezone
			changed = true
		}
		if !changed {
			return errors.New("nothing to change - pass at least one flag")
		}

		dto, err := app.SettingsService.Update(cmd.Context(), patch)
		if err != nil {
			return err
		}

		if settingsJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(dto)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings updated")
		return nil
	},
}

func init() {
	Cmd.PersistentFlags().BoolVar(&settingsJSON, "json", false, "output as JSON")

	setCmd.Flags().BoolVar(&setDarkMode, "dark-mode", false, "enable dark mode")
	setCmd.Flags().BoolVar(&setSound, "sound", true, "enable completion sounds")
	setCmd.Flags().IntVar(&setDailyGoal, "daily-goal", 0, "daily completion goal (1-10)")
	setCmd.Flags().IntVar(&setWeeklyGoal, "weekly-goal", 0, "weekly completion goal")
	setCmd.Flags().StringVar(&setResetTime, "reset-time", "", "day reset time (HH:MM)")
	setCmd.Flags().StringVar(&setTimezone, "timezone", "", "IANA timezone name")

	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(setCmd)
}
