package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-sites/booking-api/internal/dto"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
	"github.com/vitrine-sites/booking-api/pkg/response"
)

type bookingService interface {
	CreateSession(site string) (dto.SessionResponse, error)
	Session(id string) (dto.SessionResponse, error)
	SelectDate(id string, req dto.SelectDateRequest) (dto.SessionResponse, error)
	SelectTime(id string, req dto.SelectTimeRequest) (dto.SessionResponse, error)
	Confirm(id string) (dto.SessionResponse, error)
	Back(id string) (dto.SessionResponse, error)
	Submit(ctx context.Context, id string, req dto.SubmitRequest) (dto.SessionResponse, error)
}

// BookingHandler drives the three step booking flow over HTTP.
type BookingHandler struct {
	service bookingService
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(service bookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create godoc
// @Summary Open a booking session for a site
// @Tags Booking
// @Produce json
// @Param site path string true "Site identifier"
// @Success 201 {object} response.Envelope{data=dto.SessionResponse}
// @Router /sites/{site}/booking-sessions [post]
func (h *BookingHandler) Create(c *gin.Context) {
	resp, err := h.service.CreateSession(c.Param("site"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Get godoc
// @Summary Current state of a booking session
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope{data=dto.SessionResponse}
// @Router /booking-sessions/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	resp, err := h.service.Session(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// SelectDate godoc
// @Summary Pick the appointment date
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectDateRequest true "Selected date"
// @Success 200 {object} response.Envelope{data=dto.SessionResponse}
// @Router /booking-sessions/{id}/date [post]
func (h *BookingHandler) SelectDate(c *gin.Context) {
	var req dto.SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.service.SelectDate(c.Param("id"), req)
	h.respond(c, resp, err)
}

// SelectTime godoc
// @Summary Pick the appointment time
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectTimeRequest true "Selected slot start"
// @Success 200 {object} response.Envelope{data=dto.SessionResponse}
// @Router /booking-sessions/{id}/time [post]
func (h *BookingHandler) SelectTime(c *gin.Context) {
	var req dto.SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.service.SelectTime(c.Param("id"), req)
	h.respond(c, resp, err)
}

// Confirm godoc
// @Summary Advance the session one step
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope{data=dto.SessionResponse}
// @Router /booking-sessions/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	resp, err := h.service.Confirm(c.Param("id"))
	h.respond(c, resp, err)
}

// Back godoc
// @Summary Move the session one step backwards
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope{data=dto.SessionResponse}
// @Router /booking-sessions/{id}/back [post]
func (h *BookingHandler) Back(c *gin.Context) {
	resp, err := h.service.Back(c.Param("id"))
	h.respond(c, resp, err)
}

// Submit godoc
// @Summary Submit the booking with contact details
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SubmitRequest true "Contact details"
// @Success 200 {object} response.Envelope{data=dto.SessionResponse}
// @Router /booking-sessions/{id}/submit [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.service.Submit(c.Request.Context(), c.Param("id"), req)
	h.respond(c, resp, err)
}

// respond reports failed transitions with the session snapshot attached so the
// client can re-render the flow without an extra read.
func (h *BookingHandler) respond(c *gin.Context, resp dto.SessionResponse, err error) {
	if err != nil {
		appErr := appErrors.FromError(err)
		if resp.ID == "" {
			response.Error(c, appErr)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.JSON(appErr.Status, response.Envelope{Data: resp, Error: appErr})
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
