package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotwise/models"
)

func newTestService(slots *fakeSlotStore, profiles *fakeProfileStore) *DefaultScheduleService {
	return &DefaultScheduleService{
		Slots: slots,
		Sync: &DefaultSummarySyncer{
			Slots:    slots,
			Profiles: profiles,
			Logger:   zap.NewNop(),
		},
		Logger: zap.NewNop(),
		Now:    fixedNow,
	}
}

func mondayTokens(from, to int) []string {
	var tokens []string
	for h := from; h < to; h++ {
		tokens = append(tokens, models.SummaryToken("2026-03-16", h))
	}
	return tokens
}

func TestSaveWeekCreatesEnabledSlots(t *testing.T) {
	slots := newFakeSlotStore()
	profiles := newFakeProfileStore()
	svc := newTestService(slots, profiles)
	ctx := context.Background()

	tpl, err := svc.LoadWeek(ctx, "prov-1", editableWeek)
	require.NoError(t, err)
	ed := NewEditorAt(tpl, fixedNow)
	require.NoError(t, ed.SetDayEnabled(0, true))
	require.NoError(t, ed.SetDayHours(0, 9, 17))

	result, err := svc.SaveWeek(ctx, tpl)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Created)
	assert.Zero(t, result.Updated)
	assert.Zero(t, result.Deleted)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 8, slots.count())

	// The summary resync runs after the batch and mirrors exactly the slots
	// that were written.
	assert.Equal(t, mondayTokens(9, 17), profiles.availability["prov-1"])
	assert.Equal(t, 1, profiles.setCalls)
}

func TestSaveWeekDisabledDayDeletesRecords(t *testing.T) {
	slots := newFakeSlotStore()
	profiles := newFakeProfileStore()
	for h := 9; h < 17; h++ {
		slots.seed(models.AvailabilitySlot{
			ProviderID:  "prov-1",
			Date:        "2026-03-16",
			Hour:        h,
			IsAvailable: true,
		})
	}
	profiles.availability["prov-1"] = mondayTokens(9, 17)
	svc := newTestService(slots, profiles)
	ctx := context.Background()

	tpl, err := svc.LoadWeek(ctx, "prov-1", editableWeek)
	require.NoError(t, err)
	require.True(t, tpl.Days[0].Enabled)
	require.NoError(t, NewEditorAt(tpl, fixedNow).SetDayEnabled(0, false))

	result, err := svc.SaveWeek(ctx, tpl)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Deleted)
	assert.Zero(t, slots.count())
	assert.Empty(t, profiles.availability["prov-1"])
}

func TestSaveWeekUpdatesChangedSlots(t *testing.T) {
	slots := newFakeSlotStore()
	profiles := newFakeProfileStore()
	seeded := slots.seed(models.AvailabilitySlot{
		ProviderID:  "prov-1",
		Date:        "2026-03-16",
		Hour:        9,
		IsAvailable: true,
		Version:     3,
	})
	svc := newTestService(slots, profiles)
	ctx := context.Background()

	tpl, err := svc.LoadWeek(ctx, "prov-1", editableWeek)
	require.NoError(t, err)
	require.NoError(t, NewEditorAt(tpl, fixedNow).ToggleSlot(0, models.SlotIndex(9)))

	result, err := svc.SaveWeek(ctx, tpl)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	got, ok := slots.byDateHour("2026-03-16", 9)
	require.True(t, ok)
	assert.Equal(t, seeded.ID, got.ID)
	assert.False(t, got.IsAvailable)
	assert.Equal(t, 4, got.Version)
	assert.Empty(t, profiles.availability["prov-1"])
}

func TestSaveWeekNeverTouchesBookedSlots(t *testing.T) {
	slots := newFakeSlotStore()
	profiles := newFakeProfileStore()
	booked := slots.seed(models.AvailabilitySlot{
		ProviderID: "prov-1",
		Date:       "2026-03-16",
		Hour:       10,
		IsBooked:   true,
		Version:    2,
	})
	svc := newTestService(slots, profiles)
	ctx := context.Background()

	tpl, err := svc.LoadWeek(ctx, "prov-1", editableWeek)
	require.NoError(t, err)
	// Disabling the whole day would normally delete its records.
	require.NoError(t, NewEditorAt(tpl, fixedNow).SetDayEnabled(0, false))

	result, err := svc.SaveWeek(ctx, tpl)
	require.NoError(t, err)

	assert.Zero(t, result.Deleted)
	got, ok := slots.byDateHour("2026-03-16", 10)
	require.True(t, ok)
	assert.Equal(t, booked, got)
}

func TestSaveWeekReportsPartialFailures(t *testing.T) {
	slots := newFakeSlotStore()
	profiles := newFakeProfileStore()
	slots.failOn(models.SlotOpCreate, "2026-03-16", 9, errors.New("write timeout"))
	slots.failOn(models.SlotOpCreate, "2026-03-16", 10, errors.New("write timeout"))
	svc := newTestService(slots, profiles)
	ctx := context.Background()

	tpl, err := svc.LoadWeek(ctx, "prov-1", editableWeek)
	require.NoError(t, err)
	ed := NewEditorAt(tpl, fixedNow)
	require.NoError(t, ed.SetDayEnabled(0, true))
	require.NoError(t, ed.SetDayHours(0, 9, 17))

	result, err := svc.SaveWeek(ctx, tpl)
	require.Error(t, err)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "PARTIAL_WRITE", svcErr.Code)

	require.NotNil(t, result)
	assert.Equal(t, 6, result.Created)
	assert.Len(t, result.Failures, 2)
	for _, f := range result.Failures {
		assert.Equal(t, models.SlotOpCreate, f.Op)
		assert.Equal(t, "write timeout", f.Reason)
	}

	// The successful writes stay written and are reflected in the summary.
	assert.Equal(t, 6, slots.count())
	assert.Equal(t, mondayTokens(11, 17), profiles.availability["prov-1"])
}

func TestSaveWeekRejectsFrozenWeek(t *testing.T) {
	slots := newFakeSlotStore()
	svc := newTestService(slots, newFakeProfileStore())

	tpl := models.NewWeekTemplate("prov-1", models.WeekStartOf(fixedNow()), nil)
	tpl.Days[0].Enabled = true
	tpl.Days[0].Slots[3].IsAvailable = true

	result, err := svc.SaveWeek(context.Background(), tpl)
	assert.ErrorIs(t, err, ErrNotEditable)
	assert.Nil(t, result)
	assert.Zero(t, slots.count())
}

func TestSaveWeekDowngradesSyncFailureToWarning(t *testing.T) {
	slots := newFakeSlotStore()
	profiles := newFakeProfileStore()
	profiles.failSet = errors.New("profile store down")
	svc := newTestService(slots, profiles)
	ctx := context.Background()

	tpl, err := svc.LoadWeek(ctx, "prov-1", editableWeek)
	require.NoError(t, err)
	ed := NewEditorAt(tpl, fixedNow)
	require.NoError(t, ed.SetDayEnabled(0, true))
	require.NoError(t, ed.SetDayHours(0, 9, 11))

	result, err := svc.SaveWeek(ctx, tpl)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Contains(t, result.SyncWarning, "availability summary not refreshed")
	assert.Equal(t, 2, slots.count())
}

func TestSavePatternOverlaysAuthoritativeWeek(t *testing.T) {
	slots := newFakeSlotStore()
	profiles := newFakeProfileStore()
	booked := slots.seed(models.AvailabilitySlot{
		ProviderID: "prov-1",
		Date:       "2026-03-16",
		Hour:       9,
		IsBooked:   true,
	})
	svc := newTestService(slots, profiles)

	days := make([]models.DayPattern, 7)
	days[0] = models.DayPattern{Enabled: true, Hours: []int{9, 10, 11}}

	result, err := svc.SavePattern(context.Background(), "prov-1", editableWeek, days)
	require.NoError(t, err)

	// Hour 9 is booked: the pattern cannot reclaim it, so only two creates.
	assert.Equal(t, 2, result.Created)
	got, ok := slots.byDateHour("2026-03-16", 9)
	require.True(t, ok)
	assert.Equal(t, booked, got)
	assert.Equal(t, mondayTokens(10, 12), profiles.availability["prov-1"])
}

func TestSavePatternValidation(t *testing.T) {
	svc := newTestService(newFakeSlotStore(), newFakeProfileStore())
	ctx := context.Background()

	_, err := svc.SavePattern(ctx, "prov-1", editableWeek, make([]models.DayPattern, 3))
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "INVALID_PATTERN", svcErr.Code)

	days := make([]models.DayPattern, 7)
	days[2] = models.DayPattern{Enabled: true, Hours: []int{5}}
	_, err = svc.SavePattern(ctx, "prov-1", editableWeek, days)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "INVALID_PATTERN", svcErr.Code)
}

func TestApplyPresetWeekdays(t *testing.T) {
	slots := newFakeSlotStore()
	svc := newTestService(slots, newFakeProfileStore())

	result, err := svc.ApplyPreset(context.Background(), "prov-1", editableWeek, "weekdays_9_5")
	require.NoError(t, err)

	// 5 weekdays x 8 hours.
	assert.Equal(t, 40, result.Created)
	assert.Equal(t, 40, slots.count())
}

func TestApplyPresetUnknownName(t *testing.T) {
	svc := newTestService(newFakeSlotStore(), newFakeProfileStore())

	_, err := svc.ApplyPreset(context.Background(), "prov-1", editableWeek, "nights_only")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestLoadWeekNormalizesToMonday(t *testing.T) {
	slots := newFakeSlotStore()
	slots.seed(models.AvailabilitySlot{
		ProviderID:  "prov-1",
		Date:        "2026-03-16",
		Hour:        9,
		IsAvailable: true,
	})
	svc := newTestService(slots, newFakeProfileStore())

	// Thursday of the same week.
	thursday := editableWeek.AddDate(0, 0, 3)
	tpl, err := svc.LoadWeek(context.Background(), "prov-1", thursday)
	require.NoError(t, err)

	assert.Equal(t, editableWeek, tpl.WeekStart)
	assert.Equal(t, "2026-03-16", tpl.Days[0].Date)
	assert.True(t, tpl.Days[0].Slots[models.SlotIndex(9)].IsAvailable)
	for d := 1; d < 7; d++ {
		assert.False(t, tpl.Days[d].Enabled, "day %d", d)
	}
}

func TestLoadWeekFailurePropagates(t *testing.T) {
	svc := newTestService(newFakeSlotStore(), newFakeProfileStore())
	svc.Slots = failingSlotStore{}

	_, err := svc.LoadWeek(context.Background(), "prov-1", editableWeek)
	assert.Error(t, err)
}

// failingSlotStore errors every call; used where a store outage must surface.
type failingSlotStore struct{}

func (failingSlotStore) Create(context.Context, models.AvailabilitySlot) (string, error) {
	return "", fmt.Errorf("store down")
}
func (failingSlotStore) Update(context.Context, models.AvailabilitySlot) error {
	return fmt.Errorf("store down")
}
func (failingSlotStore) Delete(context.Context, string, string) error {
	return fmt.Errorf("store down")
}
func (failingSlotStore) ListByDateRange(context.Context, string, string, string) ([]models.AvailabilitySlot, error) {
	return nil, fmt.Errorf("store down")
}
func (failingSlotStore) ListByDates(context.Context, string, []string) ([]models.AvailabilitySlot, error) {
	return nil, fmt.Errorf("store down")
}
func (failingSlotStore) MarkBooked(context.Context, string, string, int) error {
	return fmt.Errorf("store down")
}
func (failingSlotStore) EnsureIndexes() error { return nil }
