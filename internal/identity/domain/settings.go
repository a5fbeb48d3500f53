package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
)

var (
	ErrSettingsInvalidUser       = errors.New("user ID is required")
	ErrSettingsInvalidDailyGoal  = errors.New("daily goal must be between 1 and 10")
	ErrSettingsInvalidWeeklyGoal = errors.New("weekly goal must be positive")
	ErrSettingsInvalidResetTime  = errors.New("reset time must be in HH:MM format")
	ErrSettingsInvalidTimezone   = errors.New("unknown timezone")
)

const (
	MinDailyGoal = 1
	MaxDailyGoal = 10

	DefaultResetTime = "00:00"
	DefaultTimezone  = "UTC"
)

var resetTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// UserSettings holds one user's preferences. Exactly one settings row
// exists per user; it is created on first access and patched afterwards,
// never recreated.
type UserSettings struct {
	sharedDomain.BaseAggregateRoot
	userID       uuid.UUID
	darkMode     bool
	dailyGoal    int
	weeklyGoal   int
	soundEnabled bool
	resetTime    string
	timezone     string
}

// NewUserSettings creates settings for a user with the given goal defaults.
func NewUserSettings(userID uuid.UUID, dailyGoal, weeklyGoal int) (*UserSettings, error) {
	if userID == uuid.Nil {
		return nil, ErrSettingsInvalidUser
	}
	if dailyGoal < MinDailyGoal || dailyGoal > MaxDailyGoal {
		return nil, ErrSettingsInvalidDailyGoal
	}
	if weeklyGoal < 1 {
		return nil, ErrSettingsInvalidWeeklyGoal
	}

	s := &UserSettings{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		dailyGoal:         dailyGoal,
		weeklyGoal:        weeklyGoal,
		soundEnabled:      true,
		resetTime:         DefaultResetTime,
		timezone:          DefaultTimezone,
	}

	s.AddDomainEvent(NewSettingsCreated(s.ID(), userID, dailyGoal, weeklyGoal))

	return s, nil
}

// Getters
func (s *UserSettings) UserID() uuid.UUID  { return s.userID }
func (s *UserSettings) DarkMode() bool     { return s.darkMode }
func (s *UserSettings) DailyGoal() int     { return s.dailyGoal }
func (s *UserSettings) WeeklyGoal() int    { return s.weeklyGoal }
func (s *UserSettings) SoundEnabled() bool { return s.soundEnabled }
func (s *UserSettings) ResetTime() string  { return s.resetTime }
func (s *UserSettings) Timezone() string   { return s.timezone }

// SetDarkMode toggles the dark mode preference.
func (s *UserSettings) SetDarkMode(enabled bool) {
	if s.darkMode == enabled {
		return
	}
	s.darkMode = enabled
	s.Touch()
}

// SetSoundEnabled toggles the completion sound preference.
func (s *UserSettings) SetSoundEnabled(enabled bool) {
	if s.soundEnabled == enabled {
		return
	}
	s.soundEnabled = enabled
	s.Touch()
}

// SetDailyGoal changes the daily task limit.
func (s *UserSettings) SetDailyGoal(goal int) error {
	if goal < MinDailyGoal || goal > MaxDailyGoal {
		return ErrSettingsInvalidDailyGoal
	}
	if s.dailyGoal == goal {
		return nil
	}
	s.dailyGoal = goal
	s.Touch()
	return nil
}

// SetWeeklyGoal changes the weekly completion target.
func (s *UserSettings) SetWeeklyGoal(goal int) error {
	if goal < 1 {
		return ErrSettingsInvalidWeeklyGoal
	}
	if s.weeklyGoal == goal {
		return nil
	}
	s.weeklyGoal = goal
	s.Touch()
	return nil
}

// SetResetTime changes the time of day at which a new task day starts.
func (s *UserSettings) SetResetTime(resetTime string) error {
	if !resetTimePattern.MatchString(resetTime) {
		return ErrSettingsInvalidResetTime
	}
	if s.resetTime == resetTime {
		return nil
	}
	s.resetTime = resetTime
	s.Touch()
	return nil
}

// SetTimezone changes the user's timezone. The name must resolve in the
// IANA database.
func (s *UserSettings) SetTimezone(timezone string) error {
	if _, err := time.LoadLocation(timezone); err != nil || timezone == "" {
		return ErrSettingsInvalidTimezone
	}
	if s.timezone == timezone {
		return nil
	}
	s.timezone = timezone
	s.Touch()
	return nil
}

// RehydrateUserSettings reconstructs settings from storage without
// emitting events.
func RehydrateUserSettings(
	id uuid.UUID,
	userID uuid.UUID,
	darkMode bool,
	dailyGoal int,
	weeklyGoal int,
	soundEnabled bool,
	resetTime string,
	timezone string,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *UserSettings {
	entity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &UserSettings{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(entity, version),
		userID:            userID,
		darkMode:          darkMode,
		dailyGoal:         dailyGoal,
		weeklyGoal:        weeklyGoal,
		soundEnabled:      soundEnabled,
		resetTime:         resetTime,
		timezone:          timezone,
	}
}
