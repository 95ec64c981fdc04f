package schedule

import (
	"time"

	"slotwise/models"
)

// Editor applies a provider's edits to a loaded week template, entirely in
// memory; nothing is persisted until the template goes through SaveWeek.
// Every mutating operation enforces two rules: the week must still be inside
// the editable window, and a booked slot's availability is never changed.
type Editor struct {
	tpl *models.WeekTemplate
	now func() time.Time
}

// NewEditor wraps a loaded template for editing.
func NewEditor(tpl *models.WeekTemplate) *Editor {
	return NewEditorAt(tpl, time.Now)
}

// NewEditorAt wraps a template with an explicit clock.
func NewEditorAt(tpl *models.WeekTemplate, now func() time.Time) *Editor {
	return &Editor{tpl: tpl, now: now}
}

// Template returns the template being edited.
func (e *Editor) Template() *models.WeekTemplate { return e.tpl }

func (e *Editor) ensureEditable() error {
	if !e.tpl.Editable(e.now()) {
		return ErrNotEditable
	}
	return nil
}

func (e *Editor) slot(day, index int) (*models.AvailabilitySlot, error) {
	if day < 0 || day > 6 || index < 0 || index >= models.SlotsPerDay {
		return nil, newInvalidSlotError(day, index)
	}
	return &e.tpl.Days[day].Slots[index], nil
}

// ToggleSlot flips one slot's availability. Booked slots are silently left
// alone, matching how the grid renders them as untouchable.
func (e *Editor) ToggleSlot(day, index int) error {
	if err := e.ensureEditable(); err != nil {
		return err
	}
	s, err := e.slot(day, index)
	if err != nil {
		return err
	}
	if s.IsBooked {
		return nil
	}
	s.IsAvailable = !s.IsAvailable
	return nil
}

// SelectRange paints every non-booked slot between anchor and target (either
// order, same day) to one state. The anchor slot's pre-toggle state decides
// the paint mode: an unavailable anchor paints the range available, and vice
// versa.
func (e *Editor) SelectRange(day, anchor, target int) error {
	if err := e.ensureEditable(); err != nil {
		return err
	}
	anchorSlot, err := e.slot(day, anchor)
	if err != nil {
		return err
	}
	if _, err := e.slot(day, target); err != nil {
		return err
	}

	paint := !anchorSlot.IsAvailable
	lo, hi := anchor, target
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		s := &e.tpl.Days[day].Slots[i]
		if s.IsBooked {
			continue
		}
		s.IsAvailable = paint
	}
	return nil
}

// ToggleEach flips each listed slot independently (the multi-select
// modifier): no continuous range is required.
func (e *Editor) ToggleEach(day int, indexes []int) error {
	for _, idx := range indexes {
		if err := e.ToggleSlot(day, idx); err != nil {
			return err
		}
	}
	return nil
}

// SetDayEnabled turns a whole day on or off. Disabling keeps the per-slot
// flags in memory so re-enabling restores the previous pattern; the save path
// is what removes a disabled day's records.
func (e *Editor) SetDayEnabled(day int, enabled bool) error {
	if err := e.ensureEditable(); err != nil {
		return err
	}
	if day < 0 || day > 6 {
		return newInvalidSlotError(day, 0)
	}
	e.tpl.Days[day].Enabled = enabled
	return nil
}

// SetDayHours marks every non-booked slot whose hour falls in
// [startHour, endHour) available and every one outside it unavailable.
func (e *Editor) SetDayHours(day, startHour, endHour int) error {
	if err := e.ensureEditable(); err != nil {
		return err
	}
	if day < 0 || day > 6 {
		return newInvalidSlotError(day, 0)
	}
	for i := range e.tpl.Days[day].Slots {
		s := &e.tpl.Days[day].Slots[i]
		if s.IsBooked {
			continue
		}
		s.IsAvailable = s.Hour >= startHour && s.Hour < endHour
	}
	return nil
}

// CopyDayToAll applies the source day's enabled flag and per-index
// availability pattern to every other day, skipping indices booked in the
// target day.
func (e *Editor) CopyDayToAll(srcDay int) error {
	if err := e.ensureEditable(); err != nil {
		return err
	}
	if srcDay < 0 || srcDay > 6 {
		return newInvalidSlotError(srcDay, 0)
	}
	src := e.tpl.Days[srcDay]
	for d := range e.tpl.Days {
		if d == srcDay {
			continue
		}
		e.tpl.Days[d].Enabled = src.Enabled
		for i := range e.tpl.Days[d].Slots {
			s := &e.tpl.Days[d].Slots[i]
			if s.IsBooked {
				continue
			}
			s.IsAvailable = src.Slots[i].IsAvailable
		}
	}
	return nil
}

// ClearDay marks all non-booked slots in a day unavailable.
func (e *Editor) ClearDay(day int) error {
	return e.SetDayHours(day, 0, 0)
}

// PresetWeekdays9to5 enables Monday through Friday with 09:00-17:00 and
// disables the weekend.
func (e *Editor) PresetWeekdays9to5() error {
	for d := 0; d < 5; d++ {
		if err := e.SetDayEnabled(d, true); err != nil {
			return err
		}
		if err := e.SetDayHours(d, 9, 17); err != nil {
			return err
		}
	}
	for d := 5; d < 7; d++ {
		if err := e.SetDayEnabled(d, false); err != nil {
			return err
		}
	}
	return nil
}

// PresetAllDays8to6 enables every day with 08:00-18:00.
func (e *Editor) PresetAllDays8to6() error {
	for d := 0; d < 7; d++ {
		if err := e.SetDayEnabled(d, true); err != nil {
			return err
		}
		if err := e.SetDayHours(d, 8, 18); err != nil {
			return err
		}
	}
	return nil
}
