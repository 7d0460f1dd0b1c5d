package models

import "time"

type Voucher struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	EmailClaimed    *string   `json:"email_claimed"`
	IsUsed          bool      `json:"is_used"`
	CreatedAt       time.Time `json:"created_at"`
}

type ClaimVoucherInput struct {
	Email string `json:"email"`
}

type ClaimVoucherResult struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
}

type ValidateVoucherInput struct {
	Code string `json:"code"`
}

type VoucherValidation struct {
	Valid           bool   `json:"valid"`
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
}

// VoucherAdminInput is used by admin create/update; nil fields are kept on update.
type VoucherAdminInput struct {
	Code            string  `json:"code"`
	DiscountPercent *int    `json:"discount_percent"`
	Email           *string `json:"email_claimed"`
	IsUsed          *bool   `json:"is_used"`
}

type VoucherList struct {
	Vouchers        []Voucher `json:"vouchers"`
	Enabled         bool      `json:"enabled"`
	DefaultDiscount int       `json:"default_discount"`
}
