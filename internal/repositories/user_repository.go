package repositories

import (
	"context"

	intdb "khanza/internal/db"
	"khanza/internal/domain/models"
)

type UserRepository struct {
	DB intdb.DBTX
}

func (r UserRepository) db() intdb.DBTX { return pick(r.DB) }

func (r UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.db().QueryRowContext(ctx, `
		SELECT id, email, password_hash, role
		FROM users
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role)
	return u, err
}
