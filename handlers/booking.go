package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/booking"
	"slotwise/utils"
)

// BookingHandler exposes the booking request lifecycle over HTTP.
type BookingHandler struct {
	Service booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// RequestBookingHandler files a client's booking request. The client identity
// comes from the identity middleware, not the payload.
func (h *BookingHandler) RequestBookingHandler(c *gin.Context) {
	clientID, clientName := actor(c)

	var req booking.RequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	req.ClientID = clientID
	if req.ClientName == "" {
		req.ClientName = clientName
	}

	bk, err := h.Service.Request(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Warn("Booking request rejected", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": bk})
}

type resolveFn func(ctx context.Context, in booking.ResolveInput) (*models.Booking, error)

// AcceptBookingHandler resolves a pending request as accepted. When the call
// originates from a notification, its id is passed so that surface is marked
// actioned.
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	h.resolve(c, h.Service.Accept)
}

// DeclineBookingHandler resolves a pending request as declined.
func (h *BookingHandler) DeclineBookingHandler(c *gin.Context) {
	h.resolve(c, h.Service.Decline)
}

func (h *BookingHandler) resolve(c *gin.Context, apply resolveFn) {
	actorID, actorName := actor(c)
	bookingID := c.Param("bookingID")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing booking ID in path"})
		return
	}

	// The notification id is optional: present only when the action came from
	// the notification center rather than the dashboard list.
	var body struct {
		NotificationID string `json:"notificationId"`
	}
	_ = c.ShouldBindJSON(&body)

	bk, err := apply(c.Request.Context(), booking.ResolveInput{
		BookingID:      bookingID,
		ActorID:        actorID,
		ActorName:      actorName,
		NotificationID: body.NotificationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bk})
}

// ListProviderBookingsHandler lists the acting provider's bookings, newest
// first.
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	providerID, _ := actor(c)
	bookings, err := h.Service.ListForProvider(c.Request.Context(), providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListClientBookingsHandler lists the acting client's bookings, newest first.
func (h *BookingHandler) ListClientBookingsHandler(c *gin.Context) {
	clientID, _ := actor(c)
	bookings, err := h.Service.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
