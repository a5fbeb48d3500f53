package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/focusfive/internal/identity/domain"
	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
)

// SettingsDTO is the application-facing representation of user settings.
type SettingsDTO struct {
	UserID       uuid.UUID `json:"user_id"`
	DarkMode     bool      `json:"dark_mode"`
	DailyGoal    int       `json:"daily_goal"`
	WeeklyGoal   int       `json:"weekly_goal"`
	SoundEnabled bool      `json:"sound_enabled"`
	ResetTime    string    `json:"reset_time"`
	Timezone     string    `json:"timezone"`
}

// UpdateSettings is a partial patch; nil fields are left unchanged.
type UpdateSettings struct {
	UserID       uuid.UUID
	DarkMode     *bool
	DailyGoal    *int
	WeeklyGoal   *int
	SoundEnabled *bool
	ResetTime    *string
	Timezone     *string
}

// Service manages user settings. Settings follow a read-and-patch
// lifecycle: the row is created once with configured defaults on first
// access and only ever patched afterwards.
type Service struct {
	repo              domain.SettingsRepository
	outboxRepo        outbox.Repository
	uow               sharedApplication.UnitOfWork
	defaultDailyGoal  int
	defaultWeeklyGoal int
}

// NewService creates a settings service.
func NewService(
	repo domain.SettingsRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	defaultDailyGoal int,
	defaultWeeklyGoal int,
) *Service {
	return &Service{
		repo:              repo,
		outboxRepo:        outboxRepo,
		uow:               uow,
		defaultDailyGoal:  defaultDailyGoal,
		defaultWeeklyGoal: defaultWeeklyGoal,
	}
}

// GetOrCreate returns the user's settings, creating the row with the
// configured defaults when none exists yet.
func (s *Service) GetOrCreate(ctx context.Context, userID uuid.UUID) (*SettingsDTO, error) {
	settings, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTO(settings), nil
}

func (s *Service) getOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	created, err := domain.NewUserSettings(userID, s.defaultDailyGoal, s.defaultWeeklyGoal)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, created); err != nil {
			return err
		}
		return s.saveEvents(txCtx, userID, created)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update applies a partial patch and persists the result.
func (s *Service) Update(ctx context.Context, patch UpdateSettings) (*SettingsDTO, error) {
	settings, err := s.getOrCreate(ctx, patch.UserID)
	if err != nil {
		return nil, err
	}

	if patch.DarkMode != nil {
		settings.SetDarkMode(*patch.DarkMode)
	}
	if patch.SoundEnabled != nil {
		settings.SetSoundEnabled(*patch.SoundEnabled)
	}
	if patch.DailyGoal != nil {
		if err := settings.SetDailyGoal(*patch.DailyGoal); err != nil {
			return nil, err
		}
	}
	if patch.WeeklyGoal != nil {
		if err := settings.SetWeeklyGoal(*patch.WeeklyGoal); err != nil {
			return nil, err
		}
	}
	if patch.ResetTime != nil {
		if err := settings.SetResetTime(*patch.ResetTime); err != nil {
			return nil, err
		}
	}
	if patch.Timezone != nil {
		if err := settings.SetTimezone(*patch.Timezone); err != nil {
			return nil, err
		}
	}

	settings.AddDomainEvent(domain.NewSettingsUpdated(settings))

	err = sharedApplication.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, settings); err != nil {
			return err
		}
		return s.saveEvents(txCtx, patch.UserID, settings)
	})
	if err != nil {
		return nil, err
	}

	return toDTO(settings), nil
}

// DailyGoal returns the user's daily task limit, creating default
// settings when none exist.
func (s *Service) DailyGoal(ctx context.Context, userID uuid.UUID) (int, error) {
	dto, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	return dto.DailyGoal, nil
}

// WeeklyGoal returns the user's weekly completion target, creating
// default settings when none exist.
func (s *Service) WeeklyGoal(ctx context.Context, userID uuid.UUID) (int, error) {
	dto, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	return dto.WeeklyGoal, nil
}

func (s *Service) saveEvents(ctx context.Context, userID uuid.UUID, settings *domain.UserSettings) error {
	events := settings.DomainEvents()
	if len(events) == 0 {
		return nil
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(userID))

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := s.outboxRepo.SaveBatch(ctx, msgs); err != nil {
		return err
	}
	settings.ClearDomainEvents()
	return nil
}

func toDTO(settings *domain.UserSettings) *SettingsDTO {
	return &SettingsDTO{
		UserID:       settings.UserID(),
		DarkMode:     settings.DarkMode(),
		DailyGoal:    settings.DailyGoal(),
		WeeklyGoal:   settings.WeeklyGoal(),
		SoundEnabled: settings.SoundEnabled(),
		ResetTime:    settings.ResetTime(),
		Timezone:     settings.Timezone(),
	}
}
