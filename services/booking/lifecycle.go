package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"slotwise/models"
)

// Request creates a pending booking and notifies the provider with a
// booking_request carrying a 24h urgency hint. The hint is advisory: nothing
// expires or auto-declines the booking when it passes.
func (s *DefaultBookingService) Request(ctx context.Context, in RequestInput) (*models.Booking, error) {
	if in.ClientID == "" || in.ProviderID == "" {
		return nil, newInvalidInputError("clientId and providerId are required")
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return nil, newInvalidInputError(fmt.Sprintf("invalid date %q", in.Date))
	}
	if !models.ValidHour(in.Hour) {
		return nil, newInvalidInputError(fmt.Sprintf("hour %d is outside the bookable day", in.Hour))
	}
	if in.Duration <= 0 {
		in.Duration = 1
	}

	now := s.now()
	bk := models.Booking{
		ID:           uuid.New().String(),
		ClientID:     in.ClientID,
		ClientName:   in.ClientName,
		ProviderID:   in.ProviderID,
		ProviderName: in.ProviderName,
		Date:         in.Date,
		Hour:         in.Hour,
		Duration:     in.Duration,
		TotalCost:    in.TotalCost,
		Status:       models.BookingPending,
		CreatedAt:    now,
	}
	if err := s.Bookings.Create(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	ttl := s.RequestTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	expires := now.Add(ttl)
	s.notify(ctx, models.Notification{
		RecipientID:   bk.ProviderID,
		RecipientType: models.RecipientProvider,
		SenderID:      bk.ClientID,
		SenderName:    bk.ClientName,
		Type:          models.NotificationBookingRequest,
		Title:         "New booking request",
		Message:       fmt.Sprintf("%s requested %s at %02d:00 (%dh)", bk.ClientName, bk.Date, bk.Hour, bk.Duration),
		BookingID:     bk.ID,
		ExpiresAt:     &expires,
	})
	return &bk, nil
}

// Accept moves a pending booking to accepted, notifies the client, marks the
// originating notification actioned, and flags the slot as booked.
func (s *DefaultBookingService) Accept(ctx context.Context, in ResolveInput) (*models.Booking, error) {
	bk, err := s.resolve(ctx, in, models.BookingAccepted)
	if err != nil {
		return nil, err
	}
	s.markSlotBooked(ctx, bk)
	return bk, nil
}

// Decline moves a pending booking to declined and notifies the client. The
// slot stays untouched: the provider keeps the hour open for someone else.
func (s *DefaultBookingService) Decline(ctx context.Context, in ResolveInput) (*models.Booking, error) {
	return s.resolve(ctx, in, models.BookingDeclined)
}

// resolve is the single transition path for both terminal states. The store
// write is conditional on the status still being pending, so of two racing
// resolutions exactly one wins; the loser observes ErrAlreadyResolved and
// emits nothing.
func (s *DefaultBookingService) resolve(ctx context.Context, in ResolveInput, next models.BookingStatus) (*models.Booking, error) {
	bk, err := s.Bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load booking %s: %w", in.BookingID, err)
	}
	// Only the booked provider may resolve the request. A foreign actor gets
	// the same answer as a missing booking, so the id leaks nothing.
	if in.ActorID != bk.ProviderID {
		return nil, ErrNotFound
	}
	if bk.Status.Terminal() {
		return nil, ErrAlreadyResolved
	}
	if !bk.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	resolved, err := s.Bookings.FinalizeIfPending(ctx, bk.ID, next, string(next), now)
	if err != nil {
		return nil, fmt.Errorf("failed to finalize booking %s: %w", bk.ID, err)
	}
	if !resolved {
		return nil, ErrAlreadyResolved
	}
	bk.Status = next
	bk.ProviderResponse = string(next)
	bk.ResponseAt = &now

	notifType := models.NotificationBookingAccepted
	title := "Booking accepted"
	if next == models.BookingDeclined {
		notifType = models.NotificationBookingDeclined
		title = "Booking declined"
	}
	senderName := in.ActorName
	if senderName == "" {
		senderName = bk.ProviderName
	}
	s.notify(ctx, models.Notification{
		RecipientID:   bk.ClientID,
		RecipientType: models.RecipientClient,
		SenderID:      bk.ProviderID,
		SenderName:    senderName,
		Type:          notifType,
		Title:         title,
		Message:       fmt.Sprintf("%s %s your booking for %s at %02d:00", senderName, bk.Status, bk.Date, bk.Hour),
		BookingID:     bk.ID,
	})

	if in.NotificationID != "" {
		if _, err := s.Notifications.MarkActioned(ctx, in.NotificationID); err != nil {
			s.logger().Warn("failed to mark request notification actioned",
				zap.String("notificationId", in.NotificationID), zap.Error(err))
		}
	}
	return bk, nil
}

// notify creates an in-app notification record, best effort: the booking
// write is already committed and the dashboards read bookings directly.
func (s *DefaultBookingService) notify(ctx context.Context, n models.Notification) {
	if _, err := s.Notifications.Create(ctx, n); err != nil {
		s.logger().Warn("failed to create notification",
			zap.String("type", n.Type),
			zap.String("bookingId", n.BookingID),
			zap.Error(err),
		)
	}
}

// markSlotBooked flags the accepted booking's slot as consumed and refreshes
// the summary for that date. Both are best effort; a later resync self-heals
// the summary.
func (s *DefaultBookingService) markSlotBooked(ctx context.Context, bk *models.Booking) {
	if s.Slots == nil {
		return
	}
	if err := s.Slots.MarkBooked(ctx, bk.ProviderID, bk.Date, bk.Hour); err != nil {
		s.logger().Warn("failed to mark slot booked",
			zap.String("bookingId", bk.ID),
			zap.String("date", bk.Date),
			zap.Int("hour", bk.Hour),
			zap.Error(err),
		)
		return
	}
	if s.Sync != nil {
		if err := s.Sync.Resync(ctx, bk.ProviderID, []string{bk.Date}); err != nil {
			s.logger().Warn("summary resync failed after accept",
				zap.String("providerId", bk.ProviderID), zap.Error(err))
		}
	}
}

func (s *DefaultBookingService) ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return s.Bookings.ListByProvider(ctx, providerID)
}

func (s *DefaultBookingService) ListForClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return s.Bookings.ListByClient(ctx, clientID)
}
