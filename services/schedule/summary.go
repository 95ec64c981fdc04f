package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	profileRepo "slotwise/database/repository/profile"
	slotRepo "slotwise/database/repository/slot"
)

// DefaultSummarySyncer keeps the provider profile's denormalized
// availability field equal to the set of available slots in the slot store.
// Cache is optional: when set, the freshly computed token list is mirrored to
// Redis for fast external reads, and a mirror failure is only logged.
type DefaultSummarySyncer struct {
	Slots    slotRepo.SlotStore
	Profiles profileRepo.ProfileStore
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// summaryCacheKey builds the Redis key mirroring a provider's summary.
func summaryCacheKey(providerID string) string {
	return "availability:" + providerID
}

// Resync re-reads every slot on the affected dates and replaces those dates'
// tokens in the provider's summary. Tokens for untouched dates are preserved;
// tokens no longer backed by an available slot are dropped. The whole
// computation is a pure function of the slot store, so re-running it always
// converges to the same summary.
func (s *DefaultSummarySyncer) Resync(ctx context.Context, providerID string, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	affected := make(map[string]bool, len(dates))
	for _, d := range dates {
		affected[d] = true
	}

	existing, err := s.Profiles.GetAvailability(ctx, providerID)
	if err != nil {
		return fmt.Errorf("failed to read current summary: %w", err)
	}
	tokens := make([]string, 0, len(existing))
	for _, tok := range existing {
		if !affected[tokenDate(tok)] {
			tokens = append(tokens, tok)
		}
	}

	slots, err := s.Slots.ListByDates(ctx, providerID, dates)
	if err != nil {
		return fmt.Errorf("failed to list slots for resync: %w", err)
	}
	for _, slot := range slots {
		if slot.IsAvailable {
			tokens = append(tokens, slot.SummaryToken())
		}
	}
	sort.Strings(tokens)

	if err := s.Profiles.SetAvailability(ctx, providerID, tokens); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	s.mirror(ctx, providerID, tokens)
	return nil
}

// mirror writes the summary to the Redis fast path, best effort.
func (s *DefaultSummarySyncer) mirror(ctx context.Context, providerID string, tokens []string) {
	if s.Cache == nil {
		return
	}
	payload, err := json.Marshal(tokens)
	if err != nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if err := s.Cache.Set(ctx, summaryCacheKey(providerID), payload, ttl).Err(); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to mirror availability summary to cache",
			zap.String("providerId", providerID), zap.Error(err))
	}
}

// tokenDate extracts the "YYYY-MM-DD" part of a "YYYY-MM-DD:HH" token.
func tokenDate(token string) string {
	if i := strings.LastIndex(token, ":"); i >= 0 {
		return token[:i]
	}
	return token
}
