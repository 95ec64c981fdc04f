package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/tasks"
)

// LoadWeek reads every stored slot in [weekStart, weekStart+6d] and builds
// the full 7-day grid, defaulting cells without a record to unavailable and
// unbooked. weekStart is normalized to its Monday.
func (s *DefaultScheduleService) LoadWeek(ctx context.Context, providerID string, weekStart time.Time) (*models.WeekTemplate, error) {
	monday := models.WeekStartOf(weekStart)
	from := monday.Format(models.DateLayout)
	to := monday.AddDate(0, 0, 6).Format(models.DateLayout)

	stored, err := s.Slots.ListByDateRange(ctx, providerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load week %s: %w", from, err)
	}
	return models.NewWeekTemplate(providerID, monday, stored), nil
}

// slotWrite is one pending write of a week save batch.
type slotWrite struct {
	op   models.SlotWriteOp
	slot models.AvailabilitySlot
}

// SaveWeek diffs the template's intended state against the store and submits
// every resulting create/update/delete concurrently. Booked slots are always
// a no-op. The batch waits for all writes to settle, then (and only then)
// triggers the summary resync for the week's dates. Partial failures are
// reported, not rolled back: slot writes are independent and a rollback would
// itself be a second fallible batch.
func (s *DefaultScheduleService) SaveWeek(ctx context.Context, tpl *models.WeekTemplate) (*models.WeekSaveResult, error) {
	if !tpl.Editable(s.now()) {
		return nil, ErrNotEditable
	}
	if s.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.BatchTimeout)
		defer cancel()
	}

	from := tpl.WeekStart.Format(models.DateLayout)
	to := tpl.WeekStart.AddDate(0, 0, 6).Format(models.DateLayout)
	stored, err := s.Slots.ListByDateRange(ctx, tpl.ProviderID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored slots for diff: %w", err)
	}
	storedByKey := make(map[string]models.AvailabilitySlot, len(stored))
	for _, sl := range stored {
		storedByKey[sl.SummaryToken()] = sl
	}

	result := &models.WeekSaveResult{WeekStart: from}
	var writes []slotWrite
	for _, day := range tpl.Days {
		for _, cell := range day.Slots {
			prev, exists := storedByKey[models.SummaryToken(cell.Date, cell.Hour)]
			if exists && prev.IsBooked {
				result.Unchanged++
				continue
			}
			intended := day.Enabled && cell.IsAvailable && !cell.IsBooked

			switch {
			case !exists && intended:
				writes = append(writes, slotWrite{op: models.SlotOpCreate, slot: models.AvailabilitySlot{
					ProviderID:  tpl.ProviderID,
					Date:        cell.Date,
					Hour:        cell.Hour,
					IsAvailable: true,
				}})
			case exists && !day.Enabled:
				// Disabling a day removes its non-booked records entirely.
				writes = append(writes, slotWrite{op: models.SlotOpDelete, slot: prev})
			case exists && prev.IsAvailable != intended:
				next := prev
				next.IsAvailable = intended
				writes = append(writes, slotWrite{op: models.SlotOpUpdate, slot: next})
			default:
				result.Unchanged++
			}
		}
	}

	s.runBatch(ctx, writes, result)

	if len(writes) > 0 {
		s.resyncAfterSave(ctx, tpl, result)
	}
	if len(result.Failures) > 0 {
		return result, newPartialWriteError(len(result.Failures), len(writes))
	}
	return result, nil
}

// runBatch submits every write in its own goroutine and waits for all of
// them to settle. Writes target distinct records, so they need no ordering
// among themselves; the only ordering that matters is batch-then-resync.
func (s *DefaultScheduleService) runBatch(ctx context.Context, writes []slotWrite, result *models.WeekSaveResult) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, w := range writes {
		wg.Add(1)
		go func(w slotWrite) {
			defer wg.Done()
			var err error
			switch w.op {
			case models.SlotOpCreate:
				_, err = s.Slots.Create(ctx, w.slot)
			case models.SlotOpUpdate:
				err = s.Slots.Update(ctx, w.slot)
			case models.SlotOpDelete:
				err = s.Slots.Delete(ctx, w.slot.ProviderID, w.slot.ID)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, models.SlotWriteFailure{
					Date:   w.slot.Date,
					Hour:   w.slot.Hour,
					Op:     w.op,
					Reason: err.Error(),
				})
				return
			}
			switch w.op {
			case models.SlotOpCreate:
				result.Created++
			case models.SlotOpUpdate:
				result.Updated++
			case models.SlotOpDelete:
				result.Deleted++
			}
		}(w)
	}
	wg.Wait()
}

// resyncAfterSave refreshes the availability summary once the batch has
// settled. A resync failure never fails the save: the slot store already
// holds the truth and re-running the resync later converges, so the failure
// is downgraded to a warning and queued for retry.
func (s *DefaultScheduleService) resyncAfterSave(ctx context.Context, tpl *models.WeekTemplate, result *models.WeekSaveResult) {
	dates := tpl.Dates()
	if err := s.Sync.Resync(ctx, tpl.ProviderID, dates); err != nil {
		result.SyncWarning = fmt.Sprintf("availability summary not refreshed: %v", err)
		s.logger().Warn("summary resync failed after week save",
			zap.String("providerId", tpl.ProviderID),
			zap.String("weekStart", result.WeekStart),
			zap.Error(err),
		)
		s.enqueueResync(tpl.ProviderID, dates)
	}
}

func (s *DefaultScheduleService) enqueueResync(providerID string, dates []string) {
	if s.Queue == nil {
		return
	}
	task, opts, err := tasks.NewResyncTask(models.ResyncPayload{ProviderID: providerID, Dates: dates})
	if err != nil {
		s.logger().Warn("failed to build resync task", zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		s.logger().Warn("failed to enqueue resync task", zap.Error(err))
	}
}

// SavePattern loads the authoritative week, overlays the client's intended
// enabled flags and available hours (booked slots keep their stored state no
// matter what the pattern says), and saves the result.
func (s *DefaultScheduleService) SavePattern(ctx context.Context, providerID string, weekStart time.Time, days []models.DayPattern) (*models.WeekSaveResult, error) {
	if len(days) != 7 {
		return nil, &ServiceError{Code: "INVALID_PATTERN", Message: "expected exactly 7 day patterns"}
	}
	tpl, err := s.LoadWeek(ctx, providerID, weekStart)
	if err != nil {
		return nil, err
	}
	if !tpl.Editable(s.now()) {
		return nil, ErrNotEditable
	}

	for d, pattern := range days {
		tpl.Days[d].Enabled = pattern.Enabled
		hours := make(map[int]bool, len(pattern.Hours))
		for _, h := range pattern.Hours {
			if !models.ValidHour(h) {
				return nil, &ServiceError{
					Code:    "INVALID_PATTERN",
					Message: fmt.Sprintf("hour %d is outside the day grid", h),
				}
			}
			hours[h] = true
		}
		for i := range tpl.Days[d].Slots {
			cell := &tpl.Days[d].Slots[i]
			if cell.IsBooked {
				continue
			}
			cell.IsAvailable = hours[cell.Hour]
		}
	}
	return s.SaveWeek(ctx, tpl)
}

// ApplyPreset loads the week, applies a named preset through the editor, and
// saves.
func (s *DefaultScheduleService) ApplyPreset(ctx context.Context, providerID string, weekStart time.Time, preset string) (*models.WeekSaveResult, error) {
	tpl, err := s.LoadWeek(ctx, providerID, weekStart)
	if err != nil {
		return nil, err
	}
	ed := NewEditorAt(tpl, s.now)
	switch preset {
	case "weekdays_9_5":
		err = ed.PresetWeekdays9to5()
	case "all_days_8_6":
		err = ed.PresetAllDays8to6()
	default:
		err = ErrUnknownPreset
	}
	if err != nil {
		return nil, err
	}
	return s.SaveWeek(ctx, tpl)
}
