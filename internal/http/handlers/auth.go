package handlers

import (
	"net/http"

	"khanza/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/admin/login
func (h Handler) Login(c *gin.Context) {
	var req models.LoginInput
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
