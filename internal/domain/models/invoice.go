package models

import "time"

type InvoiceItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type Invoice struct {
	ID              int64         `json:"id"`
	BookingID       int64         `json:"booking_id"`
	Items           []InvoiceItem `json:"items"`
	VoucherCode     *string       `json:"voucher_code"`
	DiscountPercent int           `json:"discount_percent"`
	Subtotal        int64         `json:"subtotal"`
	Total           int64         `json:"total"`
	PaymentStatus   string        `json:"payment_status"`
	DPAmount        int64         `json:"dp_amount"`
	RemainingAmount int64         `json:"remaining_amount"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// InvoiceView carries booking display fields; blank when the booking is gone.
type InvoiceView struct {
	Invoice
	ClientName   string     `json:"client_name"`
	ClientEmail  string     `json:"client_email"`
	ClientPhone  string     `json:"client_phone"`
	VehicleInfo  string     `json:"vehicle_info"`
	ServiceTitle string     `json:"service_title"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
}

type InvoiceInput struct {
	BookingID       int64         `json:"booking_id"`
	Items           []InvoiceItem `json:"items"`
	VoucherCode     *string       `json:"voucher_code"`
	DiscountPercent *int          `json:"discount_percent"`
	PaymentStatus   string        `json:"payment_status"`
	DPAmount        int64         `json:"dp_amount"`
}
