package models

import "time"

type Service struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title" binding:"required"`
	Description string `json:"description" db:"description"`
	Price       int64  `json:"price" db:"price" binding:"gte=0"`
	IconName    string `json:"icon_name" db:"icon_name" binding:"serviceicon"`
}

type GarageItem struct {
	ID          int64  `json:"id" db:"id"`
	CarModel    string `json:"car_model" db:"car_model" binding:"required"`
	Year        int    `json:"year" db:"year" binding:"gte=0"`
	Price       int64  `json:"price" db:"price" binding:"gte=0"`
	Description string `json:"description" db:"description"`
	Images      string `json:"images" db:"images"`
	Status      string `json:"status" db:"status" binding:"omitempty,oneof=available sold reserved"`
}

type Testimonial struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name" binding:"required"`
	Review         string `json:"review" db:"review" binding:"required"`
	Rating         int    `json:"rating" db:"rating" binding:"omitempty,min=1,max=5"`
	IsApproved     bool   `json:"is_approved" db:"is_approved"`
	ProfilePhoto   string `json:"profile_photo" db:"profile_photo"`
	ServiceOrdered string `json:"service_ordered" db:"service_ordered"`
}

type FAQ struct {
	ID           int64  `json:"id" db:"id"`
	Question     string `json:"question" db:"question" binding:"required"`
	Answer       string `json:"answer" db:"answer" binding:"required"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

type ContentHome struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	HeroImage   string `json:"hero_image" db:"hero_image"`
}

type NewsletterSubscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type NewsletterInput struct {
	Email string `json:"email"`
}

// SiteSettings is the public view of site_config.
type SiteSettings map[string]string
