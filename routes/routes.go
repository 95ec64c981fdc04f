package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/utils"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Schedule     *handlers.ScheduleHandler
	Booking      *handlers.BookingHandler
	Notification *handlers.NotificationHandler
}

// RegisterRoutes wires every endpoint. All /api routes require a resolved
// acting identity; this service never authenticates by itself.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Actor-ID", "X-Actor-Name"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	api := r.Group("/api")
	api.Use(middleware.IdentityMiddleware())

	schedule := api.Group("/schedule")
	{
		schedule.GET("/week", hb.Schedule.GetWeekHandler)
		schedule.PUT("/week", hb.Schedule.SaveWeekHandler)
		schedule.POST("/week/propagate", hb.Schedule.PropagateWeekHandler)
		schedule.POST("/week/preset", hb.Schedule.ApplyPresetHandler)
	}

	bookings := api.Group("/bookings")
	{
		bookings.POST("", hb.Booking.RequestBookingHandler)
		bookings.POST("/:bookingID/accept", hb.Booking.AcceptBookingHandler)
		bookings.POST("/:bookingID/decline", hb.Booking.DeclineBookingHandler)
		bookings.GET("/provider", hb.Booking.ListProviderBookingsHandler)
		bookings.GET("/client", hb.Booking.ListClientBookingsHandler)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", hb.Notification.ListNotificationsHandler)
		notifications.POST("/:notificationID/read", hb.Notification.MarkReadHandler)
		notifications.POST("/:notificationID/actioned", hb.Notification.MarkActionedHandler)
	}
}
