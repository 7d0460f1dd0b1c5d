package repositories

import (
	"context"
	"fmt"

	intconfig "khanza/internal/config"
	intdb "khanza/internal/db"
	"khanza/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// CatalogRepository covers the flat content tables read by the public site.
type CatalogRepository struct {
	DB *sqlx.DB
}

func (r CatalogRepository) db() *sqlx.DB {
	if r.DB != nil {
		return r.DB
	}
	return sqlx.NewDb(intconfig.DB, "mysql")
}

func (r CatalogRepository) selectAll(ctx context.Context, dest any, sb squirrel.SelectBuilder) error {
	query, args, err := sb.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}
	return sqlx.SelectContext(ctx, r.db(), dest, query, args...)
}

func (r CatalogRepository) insert(ctx context.Context, table string, values map[string]any) (int64, error) {
	query, args, err := squirrel.Insert(table).SetMap(values).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert %s: %w", table, err)
	}
	res, err := r.db().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CatalogRepository) update(ctx context.Context, table string, id int64, values map[string]any) error {
	query, args, err := squirrel.Update(table).SetMap(values).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", table, err)
	}
	_, err = r.db().ExecContext(ctx, query, args...)
	return err
}

func (r CatalogRepository) exists(ctx context.Context, table string, id int64) (bool, error) {
	query, args, err := squirrel.Select("COUNT(*)").From(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := sqlx.GetContext(ctx, r.db(), &n, query, args...); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r CatalogRepository) delete(ctx context.Context, table string, id int64) (bool, error) {
	query, args, err := squirrel.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete %s: %w", table, err)
	}
	res, err := r.db().ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return intdb.RowsAffected(res) > 0, nil
}

// Services

func (r CatalogRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	out := []models.Service{}
	err := r.selectAll(ctx, &out, squirrel.
		Select("id", "title", "COALESCE(description, '') AS description", "price", "icon_name").
		From("services").
		OrderBy("id ASC"))
	return out, err
}

func (r CatalogRepository) CreateService(ctx context.Context, s models.Service) (int64, error) {
	return r.insert(ctx, "services", serviceValues(s))
}

func (r CatalogRepository) UpdateService(ctx context.Context, s models.Service) error {
	return r.update(ctx, "services", s.ID, serviceValues(s))
}

func (r CatalogRepository) ServiceExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "services", id)
}

func (r CatalogRepository) DeleteService(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, "services", id)
}

func serviceValues(s models.Service) map[string]any {
	return map[string]any{
		"title":       s.Title,
		"description": s.Description,
		"price":       s.Price,
		"icon_name":   s.IconName,
	}
}

// Garage

func (r CatalogRepository) ListGarage(ctx context.Context) ([]models.GarageItem, error) {
	out := []models.GarageItem{}
	err := r.selectAll(ctx, &out, squirrel.
		Select("id", "car_model", "year", "price",
			"COALESCE(description, '') AS description", "COALESCE(images, '') AS images", "status").
		From("garage").
		OrderBy("id DESC"))
	return out, err
}

func (r CatalogRepository) CreateGarage(ctx context.Context, g models.GarageItem) (int64, error) {
	return r.insert(ctx, "garage", garageValues(g))
}

func (r CatalogRepository) UpdateGarage(ctx context.Context, g models.GarageItem) error {
	return r.update(ctx, "garage", g.ID, garageValues(g))
}

func (r CatalogRepository) GarageExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "garage", id)
}

func (r CatalogRepository) DeleteGarage(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, "garage", id)
}

func (r CatalogRepository) CountAvailableGarage(ctx context.Context) (int, error) {
	query, args, err := squirrel.Select("COUNT(*)").From("garage").Where(squirrel.Eq{"status": "available"}).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	err = sqlx.GetContext(ctx, r.db(), &n, query, args...)
	return n, err
}

func garageValues(g models.GarageItem) map[string]any {
	return map[string]any{
		"car_model":   g.CarModel,
		"year":        g.Year,
		"price":       g.Price,
		"description": g.Description,
		"images":      g.Images,
		"status":      g.Status,
	}
}

// Testimonials

func (r CatalogRepository) ListTestimonials(ctx context.Context, approvedOnly bool) ([]models.Testimonial, error) {
	sb := squirrel.
		Select("id", "name", "COALESCE(review, '') AS review", "rating", "is_approved", "profile_photo", "service_ordered").
		From("testimonials")
	if approvedOnly {
		sb = sb.Where(squirrel.Eq{"is_approved": 1})
	}
	out := []models.Testimonial{}
	err := r.selectAll(ctx, &out, sb.OrderBy("id DESC"))
	return out, err
}

func (r CatalogRepository) CreateTestimonial(ctx context.Context, t models.Testimonial) (int64, error) {
	return r.insert(ctx, "testimonials", testimonialValues(t))
}

func (r CatalogRepository) UpdateTestimonial(ctx context.Context, t models.Testimonial) error {
	return r.update(ctx, "testimonials", t.ID, testimonialValues(t))
}

func (r CatalogRepository) TestimonialExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "testimonials", id)
}

func (r CatalogRepository) DeleteTestimonial(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, "testimonials", id)
}

func testimonialValues(t models.Testimonial) map[string]any {
	return map[string]any{
		"name":            t.Name,
		"review":          t.Review,
		"rating":          t.Rating,
		"is_approved":     t.IsApproved,
		"profile_photo":   t.ProfilePhoto,
		"service_ordered": t.ServiceOrdered,
	}
}

// FAQs

func (r CatalogRepository) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	out := []models.FAQ{}
	err := r.selectAll(ctx, &out, squirrel.
		Select("id", "COALESCE(question, '') AS question", "COALESCE(answer, '') AS answer", "display_order").
		From("faqs").
		OrderBy("display_order ASC", "id ASC"))
	return out, err
}

func (r CatalogRepository) CreateFAQ(ctx context.Context, f models.FAQ) (int64, error) {
	return r.insert(ctx, "faqs", faqValues(f))
}

func (r CatalogRepository) UpdateFAQ(ctx context.Context, f models.FAQ) error {
	return r.update(ctx, "faqs", f.ID, faqValues(f))
}

func (r CatalogRepository) FAQExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "faqs", id)
}

func (r CatalogRepository) DeleteFAQ(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, "faqs", id)
}

func faqValues(f models.FAQ) map[string]any {
	return map[string]any{
		"question":      f.Question,
		"answer":        f.Answer,
		"display_order": f.DisplayOrder,
	}
}

// Content home is a single row with id 1.

func (r CatalogRepository) GetContentHome(ctx context.Context) (models.ContentHome, error) {
	var out []models.ContentHome
	err := r.selectAll(ctx, &out, squirrel.
		Select("id", "title", "COALESCE(description, '') AS description", "hero_image").
		From("content_home").
		OrderBy("id ASC").
		Limit(1))
	if err != nil {
		return models.ContentHome{}, err
	}
	if len(out) == 0 {
		return models.ContentHome{ID: 1}, nil
	}
	return out[0], nil
}

func (r CatalogRepository) UpsertContentHome(ctx context.Context, c models.ContentHome) error {
	query, args, err := squirrel.Insert("content_home").
		Columns("id", "title", "description", "hero_image").
		Values(1, c.Title, c.Description, c.HeroImage).
		Suffix("ON DUPLICATE KEY UPDATE title = VALUES(title), description = VALUES(description), hero_image = VALUES(hero_image)").
		ToSql()
	if err != nil {
		return fmt.Errorf("build content_home upsert: %w", err)
	}
	_, err = r.db().ExecContext(ctx, query, args...)
	return err
}
