package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/models"
)

// fakeBookingStore is an in-memory BookingStore whose FinalizeIfPending is
// atomic under the mutex, mirroring the conditional update semantics of the
// real store.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[string]models.Booking)}
}

func (f *fakeBookingStore) get(id string) (models.Booking, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	return b, ok
}

func (f *fakeBookingStore) Create(ctx context.Context, b models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.bookings[b.ID]; exists {
		return fmt.Errorf("duplicate booking id %s", b.ID)
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &b, nil
}

func (f *fakeBookingStore) FinalizeIfPending(ctx context.Context, id string, status models.BookingStatus, response string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != models.BookingPending {
		return false, nil
	}
	b.Status = status
	b.ProviderResponse = response
	b.ResponseAt = &at
	f.bookings[id] = b
	return true, nil
}

func (f *fakeBookingStore) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return f.list(func(b models.Booking) bool { return b.ProviderID == providerID }), nil
}

func (f *fakeBookingStore) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return f.list(func(b models.Booking) bool { return b.ClientID == clientID }), nil
}

func (f *fakeBookingStore) list(match func(models.Booking) bool) []models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeBookingStore) EnsureIndexes() error { return nil }

// fakeNotificationStore is an in-memory NotificationStore whose MarkActioned
// matches the real store's flip-at-most-once contract.
type fakeNotificationStore struct {
	mu      sync.Mutex
	records []models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{}
}

func (f *fakeNotificationStore) byType(typ string) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.records {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

func (f *fakeNotificationStore) Insert(ctx context.Context, n models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, n)
	return nil
}

func (f *fakeNotificationStore) ListByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.records {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].IsRead = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].RecipientID == recipientID {
			f.records[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) MarkActioned(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id && !f.records[i].IsActioned {
			f.records[i].IsActioned = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) EnsureIndexes() error { return nil }

// fakeSlotStore covers the slot operations the booking lifecycle touches.
type fakeSlotStore struct {
	mu    sync.Mutex
	slots map[string]models.AvailabilitySlot // by "date:hour"
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{slots: make(map[string]models.AvailabilitySlot)}
}

func (f *fakeSlotStore) seed(s models.AvailabilitySlot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[s.SummaryToken()] = s
}

func (f *fakeSlotStore) byDateHour(date string, hour int) (models.AvailabilitySlot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[models.SummaryToken(date, hour)]
	return s, ok
}

func (f *fakeSlotStore) Create(ctx context.Context, s models.AvailabilitySlot) (string, error) {
	f.seed(s)
	return s.ID, nil
}

func (f *fakeSlotStore) Update(ctx context.Context, s models.AvailabilitySlot) error {
	f.seed(s)
	return nil
}

func (f *fakeSlotStore) Delete(ctx context.Context, providerID, slotID string) error {
	return nil
}

func (f *fakeSlotStore) ListByDateRange(ctx context.Context, providerID, from, to string) ([]models.AvailabilitySlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilitySlot
	for _, s := range f.slots {
		if s.ProviderID == providerID && s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) ListByDates(ctx context.Context, providerID string, dates []string) ([]models.AvailabilitySlot, error) {
	want := make(map[string]bool, len(dates))
	for _, d := range dates {
		want[d] = true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilitySlot
	for _, s := range f.slots {
		if s.ProviderID == providerID && want[s.Date] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) MarkBooked(ctx context.Context, providerID, date string, hour int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := models.SummaryToken(date, hour)
	s, ok := f.slots[key]
	if !ok || s.ProviderID != providerID {
		return fmt.Errorf("no slot at %s", key)
	}
	s.IsBooked = true
	s.IsAvailable = false
	s.Version++
	f.slots[key] = s
	return nil
}

func (f *fakeSlotStore) EnsureIndexes() error { return nil }

// fakeProfileStore backs the summary syncer in lifecycle tests.
type fakeProfileStore struct {
	mu           sync.Mutex
	availability map[string][]string
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{availability: make(map[string][]string)}
}

func (f *fakeProfileStore) GetAvailability(ctx context.Context, providerID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.availability[providerID]...), nil
}

func (f *fakeProfileStore) SetAvailability(ctx context.Context, providerID string, tokens []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.availability[providerID] = append([]string(nil), tokens...)
	return nil
}
