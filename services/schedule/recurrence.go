package schedule

import (
	"context"

	"go.uber.org/zap"

	"slotwise/models"
)

// ApplyToFutureWeeks replicates the template's pattern onto horizonWeeks
// consecutive weeks, starting at the template's own week. Each target week is
// loaded first so slots that have been booked in the meantime keep their
// stored state regardless of the pattern, which makes a re-run safe after new
// bookings have landed. The weeks are saved strictly one after another, and a
// failure on one week never stops the weeks after it.
func (s *DefaultScheduleService) ApplyToFutureWeeks(ctx context.Context, tpl *models.WeekTemplate, horizonWeeks int) (*models.PropagationResult, error) {
	if !tpl.Editable(s.now()) {
		return nil, ErrNotEditable
	}
	if horizonWeeks <= 0 {
		horizonWeeks = s.HorizonWeeks
	}
	if horizonWeeks <= 0 {
		horizonWeeks = 52
	}

	result := &models.PropagationResult{}
	for week := 0; week < horizonWeeks; week++ {
		target := tpl.WeekStart.AddDate(0, 0, 7*week)
		outcome := models.WeekOutcome{WeekStart: target.Format(models.DateLayout)}

		loaded, err := s.LoadWeek(ctx, tpl.ProviderID, target)
		if err != nil {
			outcome.Error = err.Error()
			result.WeeksFailed++
			result.Weeks = append(result.Weeks, outcome)
			s.logger().Warn("propagation: failed to load target week",
				zap.String("weekStart", outcome.WeekStart), zap.Error(err))
			continue
		}
		overlayTemplate(loaded, tpl)

		saved, err := s.SaveWeek(ctx, loaded)
		outcome.Result = saved
		if err != nil {
			outcome.Error = err.Error()
			result.WeeksFailed++
			s.logger().Warn("propagation: week save failed",
				zap.String("weekStart", outcome.WeekStart), zap.Error(err))
		} else {
			result.WeeksApplied++
		}
		result.Weeks = append(result.Weeks, outcome)
	}
	return result, nil
}

// overlayTemplate copies the source pattern (enabled flags plus per-index
// availability) onto the loaded target week. Booked target slots are left
// exactly as loaded.
func overlayTemplate(target, src *models.WeekTemplate) {
	for d := range target.Days {
		target.Days[d].Enabled = src.Days[d].Enabled
		for i := range target.Days[d].Slots {
			cell := &target.Days[d].Slots[i]
			if cell.IsBooked {
				continue
			}
			cell.IsAvailable = src.Days[d].Slots[i].IsAvailable
		}
	}
}
