package domain

import "strings"

// ID is used across domain entities.
type ID int64

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// ParseBookingStatus is case-insensitive; unknown values return false.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	s := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

type PaymentStatus string

const (
	PaymentLunas PaymentStatus = "LUNAS"
	PaymentDP    PaymentStatus = "DP"
)

// ParsePaymentStatus defaults an empty value to LUNAS.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", string(PaymentLunas):
		return PaymentLunas, true
	case string(PaymentDP):
		return PaymentDP, true
	}
	return "", false
}

type ReportPeriod string

const (
	PeriodWeek  ReportPeriod = "week"
	PeriodMonth ReportPeriod = "month"
	PeriodYear  ReportPeriod = "year"
)

func ParseReportPeriod(raw string) (ReportPeriod, bool) {
	p := ReportPeriod(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case "":
		return PeriodMonth, true
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, true
	}
	return "", false
}

// ServiceIcon is the closed set of icons the front end knows how to draw.
type ServiceIcon string

const (
	IconPaintBucket ServiceIcon = "PaintBucket"
	IconPalette     ServiceIcon = "Palette"
	IconShield      ServiceIcon = "Shield"
	IconSparkles    ServiceIcon = "Sparkles"
	IconWrench      ServiceIcon = "Wrench"
	IconCar         ServiceIcon = "Car"
	IconDroplets    ServiceIcon = "Droplets"
	IconBrush       ServiceIcon = "Brush"

	DefaultServiceIcon = IconSparkles
)

var serviceIcons = map[string]ServiceIcon{
	"paintbucket": IconPaintBucket,
	"paint":       IconPaintBucket,
	"palette":     IconPalette,
	"shield":      IconShield,
	"sparkles":    IconSparkles,
	"wrench":      IconWrench,
	"car":         IconCar,
	"droplets":    IconDroplets,
	"brush":       IconBrush,
}

// ParseServiceIcon accepts canonical and legacy lower-case names.
// Empty input falls back to DefaultServiceIcon.
func ParseServiceIcon(raw string) (ServiceIcon, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return DefaultServiceIcon, true
	}
	icon, ok := serviceIcons[key]
	return icon, ok
}

// ServiceIcons lists the canonical names in display order.
func ServiceIcons() []ServiceIcon {
	return []ServiceIcon{IconPaintBucket, IconPalette, IconShield, IconSparkles, IconWrench, IconCar, IconDroplets, IconBrush}
}

// AdminIdentity is the authenticated caller carried on admin requests.
type AdminIdentity struct {
	UserID ID     `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

const RoleAdmin = "admin"
