package services

import (
	"context"
	"strings"

	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"
	"khanza/internal/utils"

	"go.uber.org/zap"
)

// CatalogService is plain CRUD over services, garage, testimonials, FAQs
// and the home content block.
type CatalogService struct {
	Repo repositories.CatalogRepository
}

func notFound(resource, msg string) error {
	return domain.NotFoundError{Resource: resource, Msg: msg}
}

// ensure maps a missing row to NotFoundError.
func ensure(ok bool, err error, resource, msg string) error {
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return notFound(resource, msg)
	}
	return nil
}

// Services

func normalizeService(s models.Service) (models.Service, error) {
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return s, domain.ValidationError{Field: "title", Msg: "Judul layanan wajib diisi"}
	}
	if s.Price < 0 {
		return s, domain.ValidationError{Field: "price", Msg: "Harga tidak boleh negatif"}
	}
	icon, ok := domain.ParseServiceIcon(s.IconName)
	if !ok {
		return s, domain.ValidationError{Field: "icon_name", Msg: "Ikon layanan tidak dikenal"}
	}
	s.IconName = string(icon)
	return s, nil
}

func (c CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	list, err := c.Repo.ListServices(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	for i := range list {
		// rows written before the icon set was closed may hold unknown names
		if icon, ok := domain.ParseServiceIcon(list[i].IconName); ok {
			list[i].IconName = string(icon)
		} else {
			list[i].IconName = string(domain.DefaultServiceIcon)
		}
	}
	return list, nil
}

func (c CatalogService) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	s, err := normalizeService(s)
	if err != nil {
		return s, err
	}
	id, err := c.Repo.CreateService(ctx, s)
	if err != nil {
		return s, domain.InternalError{Err: err}
	}
	s.ID = id
	utils.LogEvent(utils.RequestIDFrom(ctx), "catalog", "create_service", "layanan dibuat", zap.Int64("id", id))
	return s, nil
}

func (c CatalogService) UpdateService(ctx context.Context, id int64, s models.Service) (models.Service, error) {
	s, err := normalizeService(s)
	if err != nil {
		return s, err
	}
	ok, err := c.Repo.ServiceExists(ctx, id)
	if err := ensure(ok, err, "service", "Layanan tidak ditemukan"); err != nil {
		return s, err
	}
	s.ID = id
	if err := c.Repo.UpdateService(ctx, s); err != nil {
		return s, domain.InternalError{Err: err}
	}
	return s, nil
}

func (c CatalogService) DeleteService(ctx context.Context, id int64) error {
	ok, err := c.Repo.DeleteService(ctx, id)
	return ensure(ok, err, "service", "Layanan tidak ditemukan")
}

// Garage

func normalizeGarage(g models.GarageItem) (models.GarageItem, error) {
	g.CarModel = strings.TrimSpace(g.CarModel)
	if g.CarModel == "" {
		return g, domain.ValidationError{Field: "car_model", Msg: "Model mobil wajib diisi"}
	}
	g.Status = strings.ToLower(strings.TrimSpace(g.Status))
	if g.Status == "" {
		g.Status = "available"
	}
	return g, nil
}

func (c CatalogService) ListGarage(ctx context.Context) ([]models.GarageItem, error) {
	list, err := c.Repo.ListGarage(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (c CatalogService) CreateGarage(ctx context.Context, g models.GarageItem) (models.GarageItem, error) {
	g, err := normalizeGarage(g)
	if err != nil {
		return g, err
	}
	id, err := c.Repo.CreateGarage(ctx, g)
	if err != nil {
		return g, domain.InternalError{Err: err}
	}
	g.ID = id
	return g, nil
}

func (c CatalogService) UpdateGarage(ctx context.Context, id int64, g models.GarageItem) (models.GarageItem, error) {
	g, err := normalizeGarage(g)
	if err != nil {
		return g, err
	}
	ok, err := c.Repo.GarageExists(ctx, id)
	if err := ensure(ok, err, "garage", "Mobil tidak ditemukan"); err != nil {
		return g, err
	}
	g.ID = id
	if err := c.Repo.UpdateGarage(ctx, g); err != nil {
		return g, domain.InternalError{Err: err}
	}
	return g, nil
}

func (c CatalogService) DeleteGarage(ctx context.Context, id int64) error {
	ok, err := c.Repo.DeleteGarage(ctx, id)
	return ensure(ok, err, "garage", "Mobil tidak ditemukan")
}

// Testimonials

func normalizeTestimonial(t models.Testimonial) (models.Testimonial, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Review = strings.TrimSpace(t.Review)
	if t.Name == "" || t.Review == "" {
		return t, domain.ValidationError{Msg: "Nama, ulasan, dan rating wajib diisi"}
	}
	if t.Rating == 0 {
		t.Rating = 5
	}
	if t.Rating < 1 || t.Rating > 5 {
		return t, domain.ValidationError{Field: "rating", Msg: "Rating harus antara 1 dan 5"}
	}
	t.ServiceOrdered = strings.TrimSpace(t.ServiceOrdered)
	return t, nil
}

func (c CatalogService) ListTestimonials(ctx context.Context, approvedOnly bool) ([]models.Testimonial, error) {
	list, err := c.Repo.ListTestimonials(ctx, approvedOnly)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// SubmitTestimonial stores a visitor review awaiting approval.
func (c CatalogService) SubmitTestimonial(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	if t.Rating == 0 {
		return t, domain.ValidationError{Field: "rating", Msg: "Nama, ulasan, dan rating wajib diisi"}
	}
	t.IsApproved = false
	return c.CreateTestimonial(ctx, t)
}

func (c CatalogService) CreateTestimonial(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	t, err := normalizeTestimonial(t)
	if err != nil {
		return t, err
	}
	id, err := c.Repo.CreateTestimonial(ctx, t)
	if err != nil {
		return t, domain.InternalError{Err: err}
	}
	t.ID = id
	return t, nil
}

func (c CatalogService) UpdateTestimonial(ctx context.Context, id int64, t models.Testimonial) (models.Testimonial, error) {
	t, err := normalizeTestimonial(t)
	if err != nil {
		return t, err
	}
	ok, err := c.Repo.TestimonialExists(ctx, id)
	if err := ensure(ok, err, "testimonial", "Testimoni tidak ditemukan"); err != nil {
		return t, err
	}
	t.ID = id
	if err := c.Repo.UpdateTestimonial(ctx, t); err != nil {
		return t, domain.InternalError{Err: err}
	}
	return t, nil
}

func (c CatalogService) DeleteTestimonial(ctx context.Context, id int64) error {
	ok, err := c.Repo.DeleteTestimonial(ctx, id)
	return ensure(ok, err, "testimonial", "Testimoni tidak ditemukan")
}

// FAQs

func normalizeFAQ(f models.FAQ) (models.FAQ, error) {
	f.Question = strings.TrimSpace(f.Question)
	f.Answer = strings.TrimSpace(f.Answer)
	if f.Question == "" || f.Answer == "" {
		return f, domain.ValidationError{Msg: "Pertanyaan dan jawaban wajib diisi"}
	}
	return f, nil
}

func (c CatalogService) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	list, err := c.Repo.ListFAQs(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (c CatalogService) CreateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error) {
	f, err := normalizeFAQ(f)
	if err != nil {
		return f, err
	}
	id, err := c.Repo.CreateFAQ(ctx, f)
	if err != nil {
		return f, domain.InternalError{Err: err}
	}
	f.ID = id
	return f, nil
}

func (c CatalogService) UpdateFAQ(ctx context.Context, id int64, f models.FAQ) (models.FAQ, error) {
	f, err := normalizeFAQ(f)
	if err != nil {
		return f, err
	}
	ok, err := c.Repo.FAQExists(ctx, id)
	if err := ensure(ok, err, "faq", "FAQ tidak ditemukan"); err != nil {
		return f, err
	}
	f.ID = id
	if err := c.Repo.UpdateFAQ(ctx, f); err != nil {
		return f, domain.InternalError{Err: err}
	}
	return f, nil
}

func (c CatalogService) DeleteFAQ(ctx context.Context, id int64) error {
	ok, err := c.Repo.DeleteFAQ(ctx, id)
	return ensure(ok, err, "faq", "FAQ tidak ditemukan")
}

// Content home

func (c CatalogService) ContentHome(ctx context.Context) (models.ContentHome, error) {
	home, err := c.Repo.GetContentHome(ctx)
	if err != nil {
		return home, domain.InternalError{Err: err}
	}
	return home, nil
}

func (c CatalogService) UpdateContentHome(ctx context.Context, home models.ContentHome) (models.ContentHome, error) {
	home.ID = 1
	home.Title = strings.TrimSpace(home.Title)
	home.HeroImage = strings.TrimSpace(home.HeroImage)
	if err := c.Repo.UpsertContentHome(ctx, home); err != nil {
		return home, domain.InternalError{Err: err}
	}
	return home, nil
}
