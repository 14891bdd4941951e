package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-sites/booking-api/internal/service"
	"github.com/vitrine-sites/booking-api/pkg/response"
)

type exportService interface {
	WeeklySchedule(site, format string) (service.ExportResult, error)
}

// ExportHandler serves downloadable opening-hours sheets.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Schedule godoc
// @Summary Export the weekly opening hours
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param site path string true "Site identifier"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /sites/{site}/schedule/export [get]
func (h *ExportHandler) Schedule(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	result, err := h.service.WeeklySchedule(c.Param("site"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
