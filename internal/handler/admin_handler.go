package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-sites/booking-api/pkg/response"
)

type siteReloader interface {
	Reload() error
	Sites() []string
	Revision() int64
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, site string) error
}

// AdminHandler exposes operational endpoints.
type AdminHandler struct {
	sites siteReloader
	cache cacheInvalidator
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(sites siteReloader, cache cacheInvalidator) *AdminHandler {
	return &AdminHandler{sites: sites, cache: cache}
}

// ReloadSites godoc
// @Summary Reload site configurations from disk
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/sites/reload [post]
func (h *AdminHandler) ReloadSites(c *gin.Context) {
	if err := h.sites.Reload(); err != nil {
		response.Error(c, err)
		return
	}
	sites := h.sites.Sites()
	if h.cache != nil {
		for _, site := range sites {
			_ = h.cache.Invalidate(c.Request.Context(), site)
		}
	}
	response.JSON(c, http.StatusOK, gin.H{
		"sites":    sites,
		"revision": h.sites.Revision(),
	}, nil)
}
