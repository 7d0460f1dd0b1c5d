package handlers

import (
	"context"
	"net/http"

	"khanza/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func listJSON[T any](c *gin.Context, fn func(context.Context) ([]T, error)) {
	list, err := fn(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func createJSON[T any](c *gin.Context, fn func(context.Context, T) (T, error)) {
	var req T
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := fn(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func updateJSON[T any](c *gin.Context, fn func(context.Context, int64, T) (T, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req T
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := fn(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func deleteJSON(c *gin.Context, fn func(context.Context, int64) error, msg string) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Services
func (h Handler) ListServices(c *gin.Context)  { listJSON(c, h.Catalog.ListServices) }
func (h Handler) CreateService(c *gin.Context) { createJSON(c, h.Catalog.CreateService) }
func (h Handler) UpdateService(c *gin.Context) { updateJSON(c, h.Catalog.UpdateService) }
func (h Handler) DeleteService(c *gin.Context) { deleteJSON(c, h.Catalog.DeleteService, "Layanan dihapus") }

// Garage
func (h Handler) ListGarage(c *gin.Context)  { listJSON(c, h.Catalog.ListGarage) }
func (h Handler) CreateGarage(c *gin.Context) { createJSON(c, h.Catalog.CreateGarage) }
func (h Handler) UpdateGarage(c *gin.Context) { updateJSON(c, h.Catalog.UpdateGarage) }
func (h Handler) DeleteGarage(c *gin.Context) { deleteJSON(c, h.Catalog.DeleteGarage, "Mobil dihapus") }

// FAQs
func (h Handler) ListFAQs(c *gin.Context)  { listJSON(c, h.Catalog.ListFAQs) }
func (h Handler) CreateFAQ(c *gin.Context) { createJSON(c, h.Catalog.CreateFAQ) }
func (h Handler) UpdateFAQ(c *gin.Context) { updateJSON(c, h.Catalog.UpdateFAQ) }
func (h Handler) DeleteFAQ(c *gin.Context) { deleteJSON(c, h.Catalog.DeleteFAQ, "FAQ dihapus") }

// Testimonials

// GET /api/testimonials returns approved entries only.
func (h Handler) ListApprovedTestimonials(c *gin.Context) {
	list, err := h.Catalog.ListTestimonials(c.Request.Context(), true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/admin/testimonials
func (h Handler) ListAllTestimonials(c *gin.Context) {
	list, err := h.Catalog.ListTestimonials(c.Request.Context(), false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/testimonials/submit stores the review for moderation.
func (h Handler) SubmitTestimonial(c *gin.Context) {
	var req models.Testimonial
	if !BindJSONOrError(c, &req) {
		return
	}
	if _, err := h.Catalog.SubmitTestimonial(c.Request.Context(), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Terima kasih! Testimoni Anda akan ditampilkan setelah disetujui."})
}

func (h Handler) CreateTestimonial(c *gin.Context) { createJSON(c, h.Catalog.CreateTestimonial) }
func (h Handler) UpdateTestimonial(c *gin.Context) { updateJSON(c, h.Catalog.UpdateTestimonial) }
func (h Handler) DeleteTestimonial(c *gin.Context) {
	deleteJSON(c, h.Catalog.DeleteTestimonial, "Testimoni dihapus")
}

// Content home

func (h Handler) GetContentHome(c *gin.Context) {
	home, err := h.Catalog.ContentHome(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, home)
}

func (h Handler) UpdateContentHome(c *gin.Context) {
	var req models.ContentHome
	if !BindJSONOrError(c, &req) {
		return
	}
	home, err := h.Catalog.UpdateContentHome(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, home)
}
