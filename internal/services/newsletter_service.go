package services

import (
	"context"

	intdb "khanza/internal/db"
	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"
	"khanza/internal/utils"
)

type NewsletterService struct {
	Repo repositories.NewsletterRepository
}

func (s NewsletterService) Subscribe(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return domain.ValidationError{Field: "email", Msg: "Email wajib diisi"}
	}
	if !ValidEmail(email) {
		return domain.ValidationError{Field: "email", Msg: "Format email tidak valid"}
	}
	if _, err := s.Repo.Insert(ctx, email); err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "newsletter", Field: "email", Msg: "Email sudah terdaftar"}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}

func (s NewsletterService) List(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (s NewsletterService) Delete(ctx context.Context, id int64) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "newsletter", Msg: "Subscriber tidak ditemukan"}
	}
	return nil
}
