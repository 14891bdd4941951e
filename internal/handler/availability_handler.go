package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-sites/booking-api/internal/dto"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
	"github.com/vitrine-sites/booking-api/pkg/response"
)

type availabilityService interface {
	DaySlots(ctx context.Context, site string, date time.Time) (dto.DaySlotsResponse, error)
	MonthGrid(ctx context.Context, site string, view time.Time) (dto.CalendarResponse, error)
}

// AvailabilityHandler exposes the slot and calendar read endpoints.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// DaySlots godoc
// @Summary Available slots for one day
// @Tags Availability
// @Produce json
// @Param site path string true "Site identifier"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.DaySlotsResponse}
// @Router /sites/{site}/availability [get]
func (h *AvailabilityHandler) DaySlots(c *gin.Context) {
	site := c.Param("site")
	date, err := parseDayParam(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.DaySlots(c.Request.Context(), site, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Calendar godoc
// @Summary Month grid with day availability
// @Tags Availability
// @Produce json
// @Param site path string true "Site identifier"
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} response.Envelope{data=dto.CalendarResponse}
// @Router /sites/{site}/calendar [get]
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	site := c.Param("site")

	view := time.Now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid month, expected YYYY-MM"))
			return
		}
		view = parsed
	}

	resp, err := h.service.MonthGrid(c.Request.Context(), site, view)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

func parseDayParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required")
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}
	return parsed, nil
}
