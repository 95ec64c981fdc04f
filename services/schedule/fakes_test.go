package schedule

import (
	"context"
	"fmt"
	"sync"

	"slotwise/models"
)

// fakeSlotStore is an in-memory SlotStore. failOps maps "op:token" (token as
// in models.SummaryToken) to an error, to simulate partial batch failures.
type fakeSlotStore struct {
	mu      sync.Mutex
	seq     int
	slots   map[string]models.AvailabilitySlot // by record id
	failOps map[string]error
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{
		slots:   make(map[string]models.AvailabilitySlot),
		failOps: make(map[string]error),
	}
}

func (f *fakeSlotStore) failOn(op models.SlotWriteOp, date string, hour int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOps[string(op)+":"+models.SummaryToken(date, hour)] = err
}

func (f *fakeSlotStore) seed(slot models.AvailabilitySlot) models.AvailabilitySlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if slot.ID == "" {
		f.seq++
		slot.ID = fmt.Sprintf("slot-%d", f.seq)
	}
	f.slots[slot.ID] = slot
	return slot
}

func (f *fakeSlotStore) byDateHour(date string, hour int) (models.AvailabilitySlot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slots {
		if s.Date == date && s.Hour == hour {
			return s, true
		}
	}
	return models.AvailabilitySlot{}, false
}

func (f *fakeSlotStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.slots)
}

func (f *fakeSlotStore) Create(ctx context.Context, slot models.AvailabilitySlot) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOps["create:"+slot.SummaryToken()]; err != nil {
		return "", err
	}
	f.seq++
	slot.ID = fmt.Sprintf("slot-%d", f.seq)
	f.slots[slot.ID] = slot
	return slot.ID, nil
}

func (f *fakeSlotStore) Update(ctx context.Context, slot models.AvailabilitySlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOps["update:"+slot.SummaryToken()]; err != nil {
		return err
	}
	stored, ok := f.slots[slot.ID]
	if !ok || stored.Version != slot.Version {
		return fmt.Errorf("slot missing or stale version")
	}
	stored.IsAvailable = slot.IsAvailable
	stored.IsBooked = slot.IsBooked
	stored.Version++
	f.slots[slot.ID] = stored
	return nil
}

func (f *fakeSlotStore) Delete(ctx context.Context, providerID, slotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.slots[slotID]
	if !ok {
		return fmt.Errorf("no such slot %s", slotID)
	}
	if err := f.failOps["delete:"+stored.SummaryToken()]; err != nil {
		return err
	}
	delete(f.slots, slotID)
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
	for id, s := range f.slots {
		if s.ProviderID == providerID && s.Date == date && s.Hour == hour {
			s.IsBooked = true
			s.IsAvailable = false
			s.Version++
			f.slots[id] = s
			return nil
		}
	}
	return fmt.Errorf("no slot at %s %02d:00", date, hour)
}

func (f *fakeSlotStore) EnsureIndexes() error { return nil }

// fakeProfileStore is an in-memory ProfileStore recording every write.
type fakeProfileStore struct {
	mu           sync.Mutex
	availability map[string][]string
	setCalls     int
	failSet      error
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
	if f.failSet != nil {
		return f.failSet
	}
	f.setCalls++
	f.availability[providerID] = append([]string(nil), tokens...)
	return nil
}
