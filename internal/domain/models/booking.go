package models

import "time"

// Booking is a customer scheduling request.
type Booking struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	VehicleInfo string    `json:"vehicle_info"`
	ServiceID   int64     `json:"service_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	VoucherCode *string   `json:"voucher_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingView adds display fields resolved at read time.
type BookingView struct {
	Booking
	ServiceTitle    string `json:"service_title"`
	DiscountPercent *int   `json:"discount_percent"`
}

// BookingInput is the public booking form. Older clients send
// "date" and "service" instead of scheduled_at and service_id.
type BookingInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	VehicleInfo string `json:"vehicle_info"`
	ServiceID   int64  `json:"service_id"`
	Service     int64  `json:"service"`
	ScheduledAt string `json:"scheduled_at"`
	Date        string `json:"date"`
	VoucherCode string `json:"voucher_code"`
}

type BookingStatusUpdate struct {
	Status string `json:"status" binding:"required"`
}

// CompletedBooking is one detail row of the completed-bookings report.
type CompletedBooking struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	VehicleInfo  string    `json:"vehicle_info"`
	ServiceTitle string    `json:"service_title"`
	ScheduledAt  time.Time `json:"scheduled_at"`
}
