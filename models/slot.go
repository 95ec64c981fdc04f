package models

import "fmt"

const (
	// DayStartHour is the first bookable hour of a working day.
	DayStartHour = 6
	// SlotsPerDay is the number of hourly slots in a day grid.
	SlotsPerDay = 18
	// DateLayout is the calendar-day format used on slot records and summary tokens.
	DateLayout = "2006-01-02"
)

// AvailabilitySlot is one hour of a provider's calendar, addressed by
// provider + date + hour. Version is the optimistic-concurrency token:
// updates must match the stored version and bump it.
type AvailabilitySlot struct {
	ID          string `bson:"id" json:"id,omitempty"`
	ProviderID  string `bson:"providerId" json:"providerId"`
	Date        string `bson:"date" json:"date"`
	Hour        int    `bson:"hour" json:"hour"`
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
	IsBooked    bool   `bson:"isBooked" json:"isBooked"`
	Version     int    `bson:"version" json:"version"`
}

// SummaryToken renders this slot as a "YYYY-MM-DD:HH" availability token.
func (s AvailabilitySlot) SummaryToken() string {
	return SummaryToken(s.Date, s.Hour)
}

// SummaryToken builds the denormalized availability token for a date and hour.
// The zero-padded 24h format is consumed by external readers of the provider
// profile and must not change.
func SummaryToken(date string, hour int) string {
	return fmt.Sprintf("%s:%02d", date, hour)
}

// SlotHour maps a grid index (0..SlotsPerDay-1) to its hour of day.
func SlotHour(index int) int { return DayStartHour + index }

// SlotIndex maps an hour of day to its grid index.
func SlotIndex(hour int) int { return hour - DayStartHour }

// ValidHour reports whether hour falls on the day grid.
func ValidHour(hour int) bool {
	return hour >= DayStartHour && hour < DayStartHour+SlotsPerDay
}
