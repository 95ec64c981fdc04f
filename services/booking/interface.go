package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingRepo "slotwise/database/repository/booking"
	slotRepo "slotwise/database/repository/slot"
	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/services/schedule"
)

// RequestInput is a client's booking request against one provider slot.
type RequestInput struct {
	ClientID     string  `json:"clientId"`
	ClientName   string  `json:"clientName"`
	ProviderID   string  `json:"providerId" binding:"required"`
	ProviderName string  `json:"providerName"`
	Date         string  `json:"date" binding:"required"`
	Hour         int     `json:"hour" binding:"required"`
	Duration     int     `json:"duration"`
	TotalCost    float64 `json:"totalCost"`
}

// ResolveInput identifies the booking being accepted or declined, the acting
// provider, and optionally the booking_request notification the action came
// from (so that surface is marked actioned).
type ResolveInput struct {
	BookingID      string
	ActorID        string
	ActorName      string
	NotificationID string
}

// Service drives the booking request lifecycle: request, then exactly one of
// accept or decline, each emitting the matching in-app notification.
type Service interface {
	Request(ctx context.Context, in RequestInput) (*models.Booking, error)
	Accept(ctx context.Context, in ResolveInput) (*models.Booking, error)
	Decline(ctx context.Context, in ResolveInput) (*models.Booking, error)
	ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	ListForClient(ctx context.Context, clientID string) ([]models.Booking, error)
}

// DefaultBookingService is the production Service. Slots and Sync are
// optional: when set, an accepted booking marks its slot booked and refreshes
// the availability summary for that date, both best effort.
type DefaultBookingService struct {
	Bookings      bookingRepo.BookingStore
	Notifications notification.Service
	Slots         slotRepo.SlotStore
	Sync          schedule.SummarySyncer
	RequestTTL    time.Duration
	Logger        *zap.Logger
	Now           func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
