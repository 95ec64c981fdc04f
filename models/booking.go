package models

import "time"

// BookingStatus is the explicit state of a booking request. Pending is the
// only non-terminal state; accepted and declined are terminal.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingAccepted BookingStatus = "accepted"
	BookingDeclined BookingStatus = "declined"
)

// Terminal reports whether no further status change is permitted.
func (s BookingStatus) Terminal() bool {
	return s == BookingAccepted || s == BookingDeclined
}

// CanTransitionTo is the single transition check for the booking state
// machine: pending may move to either terminal state, nothing else moves.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingPending && next.Terminal()
}

// Booking is a client's request for one of a provider's slots. Status is
// mutated exactly once, by the provider-facing lifecycle; bookings are never
// deleted by this service.
type Booking struct {
	ID               string        `bson:"id" json:"id"`
	ClientID         string        `bson:"clientId" json:"clientId"`
	ClientName       string        `bson:"clientName" json:"clientName"`
	ProviderID       string        `bson:"providerId" json:"providerId"`
	ProviderName     string        `bson:"providerName" json:"providerName"`
	Date             string        `bson:"date" json:"date"`
	Hour             int           `bson:"hour" json:"hour"`
	Duration         int           `bson:"duration" json:"duration"`
	TotalCost        float64       `bson:"totalCost" json:"totalCost"`
	Status           BookingStatus `bson:"status" json:"status"`
	ProviderResponse string        `bson:"providerResponse,omitempty" json:"providerResponse,omitempty"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	ResponseAt       *time.Time    `bson:"responseAt,omitempty" json:"responseAt,omitempty"`
}
