package services

import (
	"context"
	"strings"

	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"
)

type SettingsService struct {
	Repo repositories.SettingsRepository
}

// SiteSettingsInput holds the branding fields editable from the back office.
type SiteSettingsInput struct {
	SiteName   *string `json:"site_name"`
	LogoURL    *string `json:"logo_url"`
	FooterText *string `json:"footer_text"`
}

func (s SettingsService) All(ctx context.Context) (models.SiteSettings, error) {
	all, err := s.Repo.All(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return models.SiteSettings(all), nil
}

// Update upserts each provided field; nil fields are left alone.
func (s SettingsService) Update(ctx context.Context, in SiteSettingsInput) error {
	fields := []struct {
		key string
		val *string
	}{
		{repositories.KeySiteName, in.SiteName},
		{repositories.KeyLogoURL, in.LogoURL},
		{repositories.KeyFooterText, in.FooterText},
	}
	for _, f := range fields {
		if f.val == nil {
			continue
		}
		if err := s.Repo.Set(ctx, f.key, strings.TrimSpace(*f.val)); err != nil {
			return domain.InternalError{Err: err}
		}
	}
	return nil
}
