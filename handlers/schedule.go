package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/schedule"
	"slotwise/utils"
)

// ScheduleHandler exposes the weekly availability editor over HTTP. The
// acting provider comes from the identity middleware.
type ScheduleHandler struct {
	Service schedule.Service
}

func NewScheduleHandler(svc schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

func parseWeekStart(raw string) (time.Time, bool) {
	t, err := time.Parse(models.DateLayout, raw)
	return t, err == nil
}

// GetWeekHandler loads the 7-day grid for the week containing ?weekStart.
func (h *ScheduleHandler) GetWeekHandler(c *gin.Context) {
	providerID, _ := actor(c)
	weekStart, ok := parseWeekStart(c.Query("weekStart"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid weekStart query parameter"})
		return
	}

	tpl, err := h.Service.LoadWeek(c.Request.Context(), providerID, weekStart)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load week", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": tpl, "editable": tpl.Editable(time.Now())})
}

// SaveWeekHandler persists an edited week. The payload carries each day's
// enabled flag and available hours; booked slots keep their stored state no
// matter what the payload says.
func (h *ScheduleHandler) SaveWeekHandler(c *gin.Context) {
	providerID, _ := actor(c)

	var req struct {
		WeekStart string              `json:"weekStart" binding:"required"`
		Days      []models.DayPattern `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	weekStart, ok := parseWeekStart(req.WeekStart)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weekStart date"})
		return
	}

	result, err := h.Service.SavePattern(c.Request.Context(), providerID, weekStart, req.Days)
	h.respondSave(c, result, err)
}

// PropagateWeekHandler replicates the saved pattern of one week across the
// coming weeks, leaving booked slots untouched.
func (h *ScheduleHandler) PropagateWeekHandler(c *gin.Context) {
	providerID, _ := actor(c)

	var req struct {
		WeekStart    string `json:"weekStart" binding:"required"`
		HorizonWeeks int    `json:"horizonWeeks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	weekStart, ok := parseWeekStart(req.WeekStart)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weekStart date"})
		return
	}

	tpl, err := h.Service.LoadWeek(c.Request.Context(), providerID, weekStart)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load template week", err.Error())
		return
	}

	result, err := h.Service.ApplyToFutureWeeks(c.Request.Context(), tpl, req.HorizonWeeks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"propagation": result})
}

// ApplyPresetHandler loads a week, applies a named preset, and saves it.
func (h *ScheduleHandler) ApplyPresetHandler(c *gin.Context) {
	providerID, _ := actor(c)

	var req struct {
		WeekStart string `json:"weekStart" binding:"required"`
		Preset    string `json:"preset" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	weekStart, ok := parseWeekStart(req.WeekStart)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weekStart date"})
		return
	}

	result, err := h.Service.ApplyPreset(c.Request.Context(), providerID, weekStart, req.Preset)
	h.respondSave(c, result, err)
}

// respondSave renders a week-save outcome. Partial failures come back as a
// multi-status response that still lists what succeeded and which slots to
// retry.
func (h *ScheduleHandler) respondSave(c *gin.Context, result *models.WeekSaveResult, err error) {
	if err != nil {
		if isPartialWrite(err) {
			utils.GetLogger().Warn("Week save completed with failures",
				zap.Int("failed", len(result.Failures)), zap.Error(err))
			c.JSON(http.StatusMultiStatus, gin.H{"result": result, "message": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
