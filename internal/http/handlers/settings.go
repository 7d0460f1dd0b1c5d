package handlers

import (
	"net/http"

	"khanza/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/settings
func (h Handler) GetSettings(c *gin.Context) {
	all, err := h.Settings.All(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// PUT /api/settings
func (h Handler) UpdateSettings(c *gin.Context) {
	var req services.SiteSettingsInput
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Settings.Update(c.Request.Context(), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.GetSettings(c)
}
