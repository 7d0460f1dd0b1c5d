package services

import (
	"context"
	"testing"
	"time"

	"khanza/internal/auth"
	"khanza/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := AuthService{Tokens: auth.NewTokenManager("test-secret", time.Hour)}
	svc.Users.DB = db
	userRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "email", "password_hash", "role"}).AddRow(1, "admin@khanza.id", string(hash), "admin")
	}

	mock.ExpectQuery("FROM users").WithArgs("admin@khanza.id").WillReturnRows(userRow())
	_, err = svc.Login(context.Background(), "admin@khanza.id", "salah")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	mock.ExpectQuery("FROM users").WithArgs("nobody@khanza.id").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = svc.Login(context.Background(), "nobody@khanza.id", "rahasia123")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	mock.ExpectQuery("FROM users").WithArgs("admin@khanza.id").WillReturnRows(userRow())
	res, err := svc.Login(context.Background(), " ADMIN@khanza.id", "rahasia123")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	id, err := svc.Tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@khanza.id", id.Email)
	assert.Equal(t, domain.RoleAdmin, id.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}
