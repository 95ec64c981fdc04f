package models

import "time"

var dayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DaySchedule is one day of the editable week grid. Enabled=false means the
// whole day is treated as unavailable on save, regardless of the per-slot
// flags (which are kept in memory so re-enabling restores the pattern).
type DaySchedule struct {
	Label   string                        `json:"label"`
	Date    string                        `json:"date"`
	Enabled bool                          `json:"enabled"`
	Slots   [SlotsPerDay]AvailabilitySlot `json:"slots"`
}

// WeekTemplate is the transient 7xSlotsPerDay grid being edited. It is never
// persisted as a single object; it is the unit of edit and of recurrence
// propagation.
type WeekTemplate struct {
	ProviderID string         `json:"providerId"`
	WeekStart  time.Time      `json:"weekStart"`
	Days       [7]DaySchedule `json:"days"`
}

// DayPattern is the wire form of one day's intended state: enabled flag plus
// the hours marked available.
type DayPattern struct {
	Enabled bool  `json:"enabled"`
	Hours   []int `json:"hours"`
}

// WeekStartOf returns the Monday (midnight) of the week containing t.
func WeekStartOf(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int((d.Weekday()+6)%7))
}

// NewWeekTemplate builds the full week grid anchored at the Monday of
// weekStart. Stored slots fill their grid positions; every other position
// defaults to an unavailable, unbooked slot with no record id. A day is
// enabled iff at least one stored record exists on that date.
func NewWeekTemplate(providerID string, weekStart time.Time, stored []AvailabilitySlot) *WeekTemplate {
	monday := WeekStartOf(weekStart)

	byKey := make(map[string]AvailabilitySlot, len(stored))
	for _, s := range stored {
		if ValidHour(s.Hour) {
			byKey[s.SummaryToken()] = s
		}
	}

	tpl := &WeekTemplate{ProviderID: providerID, WeekStart: monday}
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i).Format(DateLayout)
		day := DaySchedule{Label: dayLabels[i], Date: date}
		for j := 0; j < SlotsPerDay; j++ {
			hour := SlotHour(j)
			if s, ok := byKey[SummaryToken(date, hour)]; ok {
				day.Slots[j] = s
				day.Enabled = true
			} else {
				day.Slots[j] = AvailabilitySlot{
					ProviderID: providerID,
					Date:       date,
					Hour:       hour,
				}
			}
		}
		tpl.Days[i] = day
	}
	return tpl
}

// Dates returns the seven calendar days covered by the template.
func (t *WeekTemplate) Dates() []string {
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = t.WeekStart.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates
}

// Editable reports whether the week may still be modified: its Monday must be
// at least one full week after the Monday of the current week. The same rule
// applies to every mutating operation, including recurrence propagation.
func (t *WeekTemplate) Editable(now time.Time) bool {
	return !t.WeekStart.Before(WeekStartOf(now).AddDate(0, 0, 7))
}
