package models

import "time"

// Notification types produced by the booking lifecycle.
const (
	NotificationBookingRequest  = "booking_request"
	NotificationBookingAccepted = "booking_accepted"
	NotificationBookingDeclined = "booking_declined"
)

// Notification recipient kinds.
const (
	RecipientProvider = "provider"
	RecipientClient   = "client"
)

// Notification is an in-app notification record. IsRead flips when the
// recipient opens their list; IsActioned flips exactly once, when the
// underlying booking of a booking_request is resolved, so the same request
// cannot be answered twice from two different surfaces. ExpiresAt on a
// booking_request is a display/urgency hint only; nothing in this service
// mechanically acts on it.
type Notification struct {
	ID            string     `bson:"id" json:"id"`
	RecipientID   string     `bson:"recipientId" json:"recipientId"`
	RecipientType string     `bson:"recipientType" json:"recipientType"`
	SenderID      string     `bson:"senderId" json:"senderId"`
	SenderName    string     `bson:"senderName" json:"senderName"`
	Type          string     `bson:"type" json:"type"`
	Title         string     `bson:"title" json:"title"`
	Message       string     `bson:"message" json:"message"`
	BookingID     string     `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	IsRead        bool       `bson:"isRead" json:"isRead"`
	IsActioned    bool       `bson:"isActioned" json:"isActioned"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	ExpiresAt     *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}
