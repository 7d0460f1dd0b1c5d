package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"khanza/internal/domain"
	"khanza/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

const settingsQuery = "SELECT value FROM site_config WHERE config_key = \\?"

func newVoucherService(t *testing.T) (VoucherService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := VoucherService{
		Vouchers:   repositories.VoucherRepository{DB: db},
		Settings:   repositories.SettingsRepository{DB: db},
		Newsletter: repositories.NewsletterRepository{DB: db},
	}
	return svc, mock, db
}

func expectVoucherSettings(mock sqlmock.Sqlmock, enabled, discount string) {
	mock.ExpectQuery(settingsQuery).WithArgs(repositories.KeyVoucherEnabled).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(enabled))
	mock.ExpectQuery(settingsQuery).WithArgs(repositories.KeyVoucherDefaultDiscount).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(discount))
}

func dupKey(index string) error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'vouchers." + index + "'"}
}

func TestClaimIssuesCodeAndSubscribes(t *testing.T) {
	svc, mock, db := newVoucherService(t)
	defer db.Close()

	expectVoucherSettings(mock, "1", "30")
	mock.ExpectExec("INSERT INTO vouchers").
		WithArgs(sqlmock.AnyArg(), 30, "budi@mail.com", false).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT IGNORE INTO newsletter_subscribers").
		WithArgs("budi@mail.com").
		WillReturnResult(sqlmock.NewResult(1, 1))

	res, err := svc.Claim(context.Background(), "  Budi@Mail.com ")
	if err != nil {
		t.Fatalf("Claim error: %v", err)
	}
	if !regexp.MustCompile(`^KHANZA30-[A-Z0-9]{6}$`).MatchString(res.Code) {
		t.Fatalf("unexpected code format %q", res.Code)
	}
	if res.DiscountPercent != 30 {
		t.Fatalf("discount = %d, want 30", res.DiscountPercent)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimDisabledDoesNotInsert(t *testing.T) {
	svc, mock, db := newVoucherService(t)
	defer db.Close()

	mock.ExpectQuery(settingsQuery).WithArgs(repositories.KeyVoucherEnabled).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("0"))

	_, err := svc.Claim(context.Background(), "budi@mail.com")
	if !errors.Is(err, domain.ErrVoucherDisabled) {
		t.Fatalf("expected ErrVoucherDisabled, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimMissingSettingsUseDefaults(t *testing.T) {
	svc, mock, db := newVoucherService(t)
	defer db.Close()
	svc.Suffix = func() (string, error) { return "ABC123", nil }

	mock.ExpectQuery(settingsQuery).WithArgs(repositories.KeyVoucherEnabled).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectQuery(settingsQuery).WithArgs(repositories.KeyVoucherDefaultDiscount).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("abc"))
	mock.ExpectExec("INSERT INTO vouchers").
		WithArgs("KHANZA30-ABC123", 30, "sari@mail.com", false).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT IGNORE INTO newsletter_subscribers").
		WillReturnError(errors.New("table missing"))

	res, err := svc.Claim(context.Background(), "sari@mail.com")
	if err != nil {
		t.Fatalf("newsletter failure must not fail the claim: %v", err)
	}
	if res.Code != "KHANZA30-ABC123" {
		t.Fatalf("code = %q", res.Code)
	}
}

func TestClaimSecondTimeForEmailConflicts(t *testing.T) {
	svc, mock, db := newVoucherService(t)
	defer db.Close()

	expectVoucherSettings(mock, "1", "30")
	mock.ExpectExec("INSERT INTO vouchers").WillReturnError(dupKey(repositories.IndexVoucherEmail))

	_, err := svc.Claim(context.Background(), "budi@mail.com")
	if !errors.Is(err, domain.ErrVoucherClaimed) {
		t.Fatalf("expected ErrVoucherClaimed, got %v", err)
	}
	if domain.InlineField(err) != "email" {
		t.Fatalf("claimed conflict should point at email")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimRetriesOnCodeCollision(t *testing.T) {
	svc, mock, db := newVoucherService(t)
	defer db.Close()
	suffixes := []string{"AAAAAA", "BBBBBB"}
	svc.Suffix = func() (string, error) {
		s := suffixes[0]
		suffixes = suffixes[1:]
		return s, nil
	}

	expectVoucherSettings(mock, "true", "25")
	mock.ExpectExec("INSERT INTO vouchers").WithArgs("KHANZA25-AAAAAA", 25, "andi@mail.com", false).
		WillReturnError(dupKey(repositories.IndexVoucherCode))
	mock.ExpectExec("INSERT INTO vouchers").WithArgs("KHANZA25-BBBBBB", 25, "andi@mail.com", false).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT IGNORE INTO newsletter_subscribers").WillReturnResult(sqlmock.NewResult(0, 0))

	res, err := svc.Claim(context.Background(), "andi@mail.com")
	if err != nil {
		t.Fatalf("Claim error: %v", err)
	}
	if res.Code != "KHANZA25-BBBBBB" {
		t.Fatalf("expected retried code, got %q", res.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimRejectsBadEmail(t *testing.T) {
	svc, _, db := newVoucherService(t)
	defer db.Close()

	for _, in := range []string{"", "bukan-email", "a@"} {
		_, err := svc.Claim(context.Background(), in)
		if domain.InlineField(err) != "email" {
			t.Fatalf("Claim(%q) expected email validation error, got %v", in, err)
		}
	}
}

func TestValidateUnknownOrUsedCode(t *testing.T) {
	svc, mock, db := newVoucherService(t)
	defer db.Close()

	mock.ExpectQuery("FROM vouchers WHERE code = \\? AND is_used = 0").
		WithArgs("KHANZA30-NOPE00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "discount_percent", "email_claimed", "is_used", "created_at"}))

	_, err := svc.Validate(context.Background(), " khanza30-nope00 ")
	if !errors.Is(err, domain.ErrVoucherInvalid) {
		t.Fatalf("expected ErrVoucherInvalid, got %v", err)
	}
}

func TestDeleteMissingVoucher(t *testing.T) {
	svc, mock, db := newVoucherService(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM vouchers WHERE id = \\?").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := svc.Delete(context.Background(), 9); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
