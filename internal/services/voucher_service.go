package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	intdb "khanza/internal/db"
	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"
	"khanza/internal/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	DefaultVoucherDiscount = 30
	voucherCodeAttempts    = 5
	voucherSuffixLen       = 6
)

var emailValidator = validator.New()

type VoucherService struct {
	Vouchers   repositories.VoucherRepository
	Settings   repositories.SettingsRepository
	Newsletter repositories.NewsletterRepository
	// Suffix generates the random part of a code; nil uses crypto/rand.
	Suffix func() (string, error)
}

func (s VoucherService) suffix() (string, error) {
	if s.Suffix != nil {
		return s.Suffix()
	}
	return utils.RandomCode(voucherSuffixLen)
}

// ValidEmail reports whether v looks like an e-mail address.
func ValidEmail(v string) bool {
	return emailValidator.Var(v, "required,email") == nil
}

// FormatVoucherCode builds "KHANZA<discount>-<suffix>".
func FormatVoucherCode(discount int, suffix string) string {
	return fmt.Sprintf("KHANZA%d-%s", discount, suffix)
}

// Enabled treats a missing flag as on; only "0" or "false" disables.
func (s VoucherService) Enabled(ctx context.Context) (bool, error) {
	v, ok, err := s.Settings.Get(ctx, repositories.KeyVoucherEnabled)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	if !ok {
		return true, nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false":
		return false, nil
	}
	return true, nil
}

// DefaultDiscount falls back to 30 when unset, unparseable or outside 1..100.
func (s VoucherService) DefaultDiscount(ctx context.Context) (int, error) {
	v, ok, err := s.Settings.Get(ctx, repositories.KeyVoucherDefaultDiscount)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	if !ok {
		return DefaultVoucherDiscount, nil
	}
	return parseDiscount(v), nil
}

func parseDiscount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 100 {
		return DefaultVoucherDiscount
	}
	return n
}

// Claim issues a fresh voucher for email. Each address may claim once.
// The code is only ever returned here.
func (s VoucherService) Claim(ctx context.Context, email string) (models.ClaimVoucherResult, error) {
	reqID := utils.RequestIDFrom(ctx)
	email = utils.NormalizeEmail(email)
	if email == "" {
		return models.ClaimVoucherResult{}, domain.ValidationError{Field: "email", Msg: "Email wajib diisi"}
	}
	if !ValidEmail(email) {
		return models.ClaimVoucherResult{}, domain.ValidationError{Field: "email", Msg: "Format email tidak valid"}
	}

	enabled, err := s.Enabled(ctx)
	if err != nil {
		return models.ClaimVoucherResult{}, err
	}
	if !enabled {
		return models.ClaimVoucherResult{}, domain.ErrVoucherDisabled
	}
	discount, err := s.DefaultDiscount(ctx)
	if err != nil {
		return models.ClaimVoucherResult{}, err
	}

	var code string
	for attempt := 1; ; attempt++ {
		suffix, err := s.suffix()
		if err != nil {
			return models.ClaimVoucherResult{}, domain.InternalError{Err: err}
		}
		code = FormatVoucherCode(discount, suffix)
		_, err = s.Vouchers.Insert(ctx, models.Voucher{Code: code, DiscountPercent: discount, EmailClaimed: &email})
		if err == nil {
			break
		}
		if intdb.IsDuplicateKeyOn(err, repositories.IndexVoucherEmail) {
			return models.ClaimVoucherResult{}, domain.ErrVoucherClaimed
		}
		if intdb.IsDuplicateKeyOn(err, repositories.IndexVoucherCode) && attempt < voucherCodeAttempts {
			utils.LogEvent(reqID, "voucher", "claim_retry", "kode voucher bentrok, generate ulang", zap.Int("attempt", attempt))
			continue
		}
		return models.ClaimVoucherResult{}, domain.InternalError{Err: fmt.Errorf("insert voucher: %w", err)}
	}

	if err := s.Newsletter.InsertIgnore(ctx, email); err != nil {
		utils.Log().Debug("newsletter insert from voucher claim ignored", zap.String("request_id", reqID), zap.Error(err))
	}

	utils.LogEvent(reqID, "voucher", "claim", "voucher diklaim", zap.Int("discount", discount))
	return models.ClaimVoucherResult{Code: code, DiscountPercent: discount}, nil
}

// Validate is read-only; it neither reserves nor locks the voucher.
func (s VoucherService) Validate(ctx context.Context, code string) (models.VoucherValidation, error) {
	code = utils.NormalizeCode(code)
	if code == "" {
		return models.VoucherValidation{}, domain.ValidationError{Field: "code", Msg: "Kode voucher wajib diisi"}
	}
	v, err := s.Vouchers.FindUnusedByCode(ctx, code)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VoucherValidation{}, domain.ErrVoucherInvalid
	}
	if err != nil {
		return models.VoucherValidation{}, domain.InternalError{Err: err}
	}
	return models.VoucherValidation{Valid: true, Code: v.Code, DiscountPercent: v.DiscountPercent}, nil
}

// Redeem consumes code using repo, which must be bound to the caller's tx.
func Redeem(ctx context.Context, repo repositories.VoucherRepository, code string) error {
	ok, err := repo.Redeem(ctx, code)
	if err != nil {
		return domain.InternalError{Err: fmt.Errorf("redeem voucher: %w", err)}
	}
	if !ok {
		return domain.ErrVoucherConsumed
	}
	return nil
}

func (s VoucherService) List(ctx context.Context) (models.VoucherList, error) {
	list, err := s.Vouchers.List(ctx)
	if err != nil {
		return models.VoucherList{}, domain.InternalError{Err: err}
	}
	enabled, err := s.Enabled(ctx)
	if err != nil {
		return models.VoucherList{}, err
	}
	discount, err := s.DefaultDiscount(ctx)
	if err != nil {
		return models.VoucherList{}, err
	}
	return models.VoucherList{Vouchers: list, Enabled: enabled, DefaultDiscount: discount}, nil
}

func validDiscount(d *int) error {
	if d == nil || *d < 1 || *d > 100 {
		return domain.ValidationError{Field: "discount_percent", Msg: "Diskon harus antara 1 dan 100"}
	}
	return nil
}

// Create issues a voucher from the back office. An empty code is generated.
func (s VoucherService) Create(ctx context.Context, in models.VoucherAdminInput) (models.Voucher, error) {
	if err := validDiscount(in.DiscountPercent); err != nil {
		return models.Voucher{}, err
	}
	v := models.Voucher{DiscountPercent: *in.DiscountPercent}
	if in.Email != nil {
		if e := utils.NormalizeEmail(*in.Email); e != "" {
			if !ValidEmail(e) {
				return models.Voucher{}, domain.ValidationError{Field: "email_claimed", Msg: "Format email tidak valid"}
			}
			v.EmailClaimed = &e
		}
	}
	if in.IsUsed != nil {
		v.IsUsed = *in.IsUsed
	}

	custom := utils.NormalizeCode(in.Code)
	for attempt := 1; ; attempt++ {
		v.Code = custom
		if v.Code == "" {
			suffix, err := s.suffix()
			if err != nil {
				return models.Voucher{}, domain.InternalError{Err: err}
			}
			v.Code = FormatVoucherCode(v.DiscountPercent, suffix)
		}
		id, err := s.Vouchers.Insert(ctx, v)
		if err == nil {
			v.ID = id
			break
		}
		switch {
		case intdb.IsDuplicateKeyOn(err, repositories.IndexVoucherEmail):
			return models.Voucher{}, domain.ErrVoucherClaimed
		case intdb.IsDuplicateKeyOn(err, repositories.IndexVoucherCode) && custom != "":
			return models.Voucher{}, domain.ConflictError{Resource: "voucher", Field: "code", Msg: "Kode voucher sudah dipakai"}
		case intdb.IsDuplicateKeyOn(err, repositories.IndexVoucherCode) && attempt < voucherCodeAttempts:
			continue
		}
		return models.Voucher{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "voucher", "admin_create", "voucher dibuat", zap.Int64("voucher_id", v.ID))
	return v, nil
}

// Update applies the non-nil fields of in. Setting is_used back to false
// re-opens a voucher.
func (s VoucherService) Update(ctx context.Context, id int64, in models.VoucherAdminInput) (models.Voucher, error) {
	v, err := s.Vouchers.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Voucher{}, domain.NotFoundError{Resource: "voucher", Msg: "Voucher tidak ditemukan"}
	}
	if err != nil {
		return models.Voucher{}, domain.InternalError{Err: err}
	}
	if in.DiscountPercent != nil {
		if err := validDiscount(in.DiscountPercent); err != nil {
			return models.Voucher{}, err
		}
		v.DiscountPercent = *in.DiscountPercent
	}
	if c := utils.NormalizeCode(in.Code); c != "" {
		v.Code = c
	}
	if in.Email != nil {
		e := utils.NormalizeEmail(*in.Email)
		if e == "" {
			v.EmailClaimed = nil
		} else if !ValidEmail(e) {
			return models.Voucher{}, domain.ValidationError{Field: "email_claimed", Msg: "Format email tidak valid"}
		} else {
			v.EmailClaimed = &e
		}
	}
	if in.IsUsed != nil {
		v.IsUsed = *in.IsUsed
	}
	if err := s.Vouchers.Update(ctx, v); err != nil {
		switch {
		case intdb.IsDuplicateKeyOn(err, repositories.IndexVoucherEmail):
			return models.Voucher{}, domain.ErrVoucherClaimed
		case intdb.IsDuplicateKeyOn(err, repositories.IndexVoucherCode):
			return models.Voucher{}, domain.ConflictError{Resource: "voucher", Field: "code", Msg: "Kode voucher sudah dipakai"}
		}
		return models.Voucher{}, domain.InternalError{Err: err}
	}
	return v, nil
}

// Delete removes the ledger row. Bookings and invoices keep their copy of the code.
func (s VoucherService) Delete(ctx context.Context, id int64) error {
	ok, err := s.Vouchers.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "voucher", Msg: "Voucher tidak ditemukan"}
	}
	return nil
}

func (s VoucherService) SetEnabled(ctx context.Context, enabled bool) error {
	v := "0"
	if enabled {
		v = "1"
	}
	if err := s.Settings.Set(ctx, repositories.KeyVoucherEnabled, v); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "voucher", "toggle", "status voucher diubah", zap.Bool("enabled", enabled))
	return nil
}

func (s VoucherService) SetDefaultDiscount(ctx context.Context, discount int) error {
	if err := validDiscount(&discount); err != nil {
		return err
	}
	if err := s.Settings.Set(ctx, repositories.KeyVoucherDefaultDiscount, strconv.Itoa(discount)); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
