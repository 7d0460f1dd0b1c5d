package handlers

import (
	"net/http"

	"khanza/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func (h Handler) SubmitBooking(c *gin.Context) {
	var req models.BookingInput
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.Bookings.Submit(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking berhasil dikirim", "booking": b})
}

// GET /api/admin/bookings
func (h Handler) ListBookings(c *gin.Context) {
	list, err := h.Bookings.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /api/admin/bookings/:id
func (h Handler) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.BookingStatusUpdate
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Bookings.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status booking diperbarui"})
}

// DELETE /api/admin/bookings/:id
func (h Handler) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking dihapus"})
}
