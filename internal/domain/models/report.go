package models

type ReportBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ReportSummary struct {
	Period  string         `json:"period"`
	Title   string         `json:"title"`
	Buckets []ReportBucket `json:"buckets"`
	Total   int            `json:"total"`
}

type ReportExport struct {
	Summary ReportSummary      `json:"summary"`
	Rows    []CompletedBooking `json:"rows"`
}

type DashboardStats struct {
	TotalBookings  int `json:"total_bookings"`
	AvailableCars  int `json:"available_cars"`
	ActiveVouchers int `json:"active_vouchers"`
	NewsletterSubs int `json:"newsletter_subs"`
}
