package handlers

import (
	"net/http"

	"khanza/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/invoices
func (h Handler) ListInvoices(c *gin.Context) {
	list, err := h.Invoices.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/admin/invoices/:id
func (h Handler) GetInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	inv, err := h.Invoices.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// POST /api/admin/invoices
func (h Handler) CreateInvoice(c *gin.Context) {
	var req models.InvoiceInput
	if !BindJSONOrError(c, &req) {
		return
	}
	inv, err := h.Invoices.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// PUT /api/admin/invoices/:id
func (h Handler) UpdateInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.InvoiceInput
	if !BindJSONOrError(c, &req) {
		return
	}
	inv, err := h.Invoices.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// DELETE /api/admin/invoices/:id
func (h Handler) DeleteInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Invoices.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice dihapus"})
}

// GET /api/admin/invoices/:id/pdf
func (h Handler) InvoicePDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, filename, err := h.Docs.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, "application/pdf", "inline", filename, body)
}
