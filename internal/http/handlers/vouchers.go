package handlers

import (
	"net/http"

	"khanza/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/claim-voucher
func (h Handler) ClaimVoucher(c *gin.Context) {
	var req models.ClaimVoucherInput
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Vouchers.Claim(c.Request.Context(), req.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":          "Voucher berhasil diklaim",
		"code":             res.Code,
		"discount_percent": res.DiscountPercent,
	})
}

// POST /api/validate-voucher
func (h Handler) ValidateVoucher(c *gin.Context) {
	var req models.ValidateVoucherInput
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Vouchers.Validate(c.Request.Context(), req.Code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/voucher-status
func (h Handler) VoucherStatus(c *gin.Context) {
	ctx := c.Request.Context()
	enabled, err := h.Vouchers.Enabled(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	discount, err := h.Vouchers.DefaultDiscount(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": enabled, "default_discount": discount})
}

// GET /api/admin/vouchers
func (h Handler) ListVouchers(c *gin.Context) {
	list, err := h.Vouchers.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/admin/vouchers
func (h Handler) CreateVoucher(c *gin.Context) {
	var req models.VoucherAdminInput
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := h.Vouchers.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// PUT /api/admin/vouchers/:id
func (h Handler) UpdateVoucher(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.VoucherAdminInput
	if !BindJSONOrError(c, &req) {
		return
	}
	v, err := h.Vouchers.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /api/admin/vouchers/:id
func (h Handler) DeleteVoucher(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Vouchers.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Voucher dihapus"})
}

type voucherToggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// PUT /api/admin/voucher-toggle
func (h Handler) ToggleVoucher(c *gin.Context) {
	var req voucherToggleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Vouchers.SetEnabled(c.Request.Context(), *req.Enabled); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
}

type voucherDiscountRequest struct {
	DiscountPercent int `json:"discount_percent"`
}

// PUT /api/admin/voucher-discount
func (h Handler) SetVoucherDiscount(c *gin.Context) {
	var req voucherDiscountRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.Vouchers.SetDefaultDiscount(c.Request.Context(), req.DiscountPercent); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"default_discount": req.DiscountPercent})
}
