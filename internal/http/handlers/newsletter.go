package handlers

import (
	"net/http"

	"khanza/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/newsletter
func (h Handler) Subscribe(c *gin.Context) {
	var req models.NewsletterInput
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Newsletter.Subscribe(c.Request.Context(), req.Email); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Berhasil berlangganan newsletter"})
}

// GET /api/admin/newsletters
func (h Handler) ListSubscribers(c *gin.Context) {
	listJSON(c, h.Newsletter.List)
}

// DELETE /api/admin/newsletters/:id
func (h Handler) DeleteSubscriber(c *gin.Context) {
	deleteJSON(c, h.Newsletter.Delete, "Subscriber dihapus")
}
