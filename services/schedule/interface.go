package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hibiken/asynq"

	slotRepo "slotwise/database/repository/slot"
	"slotwise/models"
)

// Service is the provider-facing scheduling surface: loading a week grid,
// saving an edited week, replicating it over future weeks, and the preset
// shortcuts.
type Service interface {
	LoadWeek(ctx context.Context, providerID string, weekStart time.Time) (*models.WeekTemplate, error)
	SaveWeek(ctx context.Context, tpl *models.WeekTemplate) (*models.WeekSaveResult, error)
	SavePattern(ctx context.Context, providerID string, weekStart time.Time, days []models.DayPattern) (*models.WeekSaveResult, error)
	ApplyToFutureWeeks(ctx context.Context, tpl *models.WeekTemplate, horizonWeeks int) (*models.PropagationResult, error)
	ApplyPreset(ctx context.Context, providerID string, weekStart time.Time, preset string) (*models.WeekSaveResult, error)
}

// SummarySyncer recomputes the denormalized availability summary for a set of
// affected dates. Implementations must be idempotent: re-running a resync for
// the same range always converges to the same summary.
type SummarySyncer interface {
	Resync(ctx context.Context, providerID string, dates []string) error
}

// DefaultScheduleService is the production Service. Queue is optional; when
// set, failed summary resyncs are handed to the background worker for a
// deferred retry.
type DefaultScheduleService struct {
	Slots        slotRepo.SlotStore
	Sync         SummarySyncer
	Queue        *asynq.Client
	Logger       *zap.Logger
	BatchTimeout time.Duration
	HorizonWeeks int
	Now          func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultScheduleService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
