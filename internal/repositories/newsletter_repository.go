package repositories

import (
	"context"
	"fmt"

	intdb "khanza/internal/db"
	"khanza/internal/domain/models"
)

type NewsletterRepository struct {
	DB intdb.DBTX
}

func (r NewsletterRepository) db() intdb.DBTX { return pick(r.DB) }

// Insert fails with a duplicate-key error when the email is already listed.
func (r NewsletterRepository) Insert(ctx context.Context, email string) (int64, error) {
	res, err := r.db().ExecContext(ctx, `INSERT INTO newsletter_subscribers (email) VALUES (?)`, email)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertIgnore adds the email if missing and never reports duplicates.
func (r NewsletterRepository) InsertIgnore(ctx context.Context, email string) error {
	_, err := r.db().ExecContext(ctx, `INSERT IGNORE INTO newsletter_subscribers (email) VALUES (?)`, email)
	return err
}

func (r NewsletterRepository) List(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT id, email, subscribed_at FROM newsletter_subscribers ORDER BY subscribed_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.NewsletterSubscriber{}
	for rows.Next() {
		var s models.NewsletterSubscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r NewsletterRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM newsletter_subscribers WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return intdb.RowsAffected(res) > 0, nil
}

func (r NewsletterRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&n)
	return n, err
}
