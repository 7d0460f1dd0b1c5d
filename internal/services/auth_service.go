package services

import (
	"context"
	"database/sql"
	"errors"

	"khanza/internal/auth"
	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"
	"khanza/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users  repositories.UserRepository
	Tokens auth.TokenManager
}

// Login exchanges admin credentials for a bearer token. Unknown email and
// wrong password produce the same error.
func (s AuthService) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return models.LoginResult{}, domain.ValidationError{Msg: "Email dan password wajib diisi"}
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LoginResult{}, domain.ErrBadCredentials
	}
	if err != nil {
		return models.LoginResult{}, domain.InternalError{Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "login_failed", "password salah", zap.Int64("user_id", user.ID))
		return models.LoginResult{}, domain.ErrBadCredentials
	}
	if user.Role == "" {
		user.Role = domain.RoleAdmin
	}

	token, err := s.Tokens.Issue(domain.AdminIdentity{UserID: domain.ID(user.ID), Email: user.Email, Role: user.Role})
	if err != nil {
		return models.LoginResult{}, domain.InternalError{Msg: "gagal membuat token", Err: err}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "login", "admin login", zap.Int64("user_id", user.ID))
	return models.LoginResult{Token: token, User: user}, nil
}
