package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*3600)

func bookingForm(code string) models.BookingInput {
	return models.BookingInput{
		Name:        "  Budi   Santoso ",
		Email:       "Budi@Mail.com",
		Phone:       "08123",
		ServiceID:   2,
		ScheduledAt: "2025-03-10T09:00",
		VoucherCode: code,
	}
}

func TestSubmitRedeemsVoucherAndReservesSlot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := BookingService{DB: db, SlotExclusive: true, Location: jakarta}
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, jakarta)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO booking_slots").WithArgs(at, 0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE vouchers SET is_used = 1").WithArgs("KHANZA30-ABC123").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("Budi Santoso", "budi@mail.com", "08123", defaultVehicleInfo, 2, at, "pending", "KHANZA30-ABC123").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("UPDATE booking_slots SET booking_id = \\?").WithArgs(11, at).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b, err := svc.Submit(context.Background(), bookingForm("khanza30-abc123"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), b.ID)
	assert.Equal(t, "pending", b.Status)
	require.NotNil(t, b.VoucherCode)
	assert.Equal(t, "KHANZA30-ABC123", *b.VoucherCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitWithConsumedVoucherRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := BookingService{DB: db, Location: jakarta}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vouchers SET is_used = 1").WithArgs("KHANZA30-ABC123").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = svc.Submit(context.Background(), bookingForm("KHANZA30-ABC123"))
	assert.True(t, errors.Is(err, domain.ErrVoucherConsumed), "got %v", err)
	assert.Equal(t, "voucher_code", domain.InlineField(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitTakenSlotRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := BookingService{DB: db, SlotExclusive: true, Location: jakarta}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO booking_slots").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'PRIMARY'"})
	mock.ExpectRollback()

	_, err = svc.Submit(context.Background(), bookingForm("KHANZA30-ABC123"))
	assert.True(t, errors.Is(err, domain.ErrSlotTaken), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitValidatesForm(t *testing.T) {
	svc := BookingService{Location: jakarta}

	_, err := svc.Submit(context.Background(), models.BookingInput{ScheduledAt: "2025-03-10T09:00"})
	assert.Equal(t, "service_id", domain.InlineField(err))

	_, err = svc.Submit(context.Background(), models.BookingInput{ServiceID: 1, ScheduledAt: "besok pagi"})
	assert.Equal(t, "scheduled_at", domain.InlineField(err))
}

func TestLegacyBookingFieldsAreAccepted(t *testing.T) {
	b, err := normalizeBookingInput(models.BookingInput{Service: 4, Date: "2025-03-10 14:30", VehicleInfo: " "}, jakarta)
	require.NoError(t, err)
	assert.Equal(t, int64(4), b.ServiceID)
	assert.Equal(t, 14, b.ScheduledAt.Hour())
	assert.Equal(t, defaultVehicleInfo, b.VehicleInfo)
	assert.Nil(t, b.VoucherCode)
}

// A voucher validated before submit is rejected once the booking consumed it.
func TestVoucherLifecycleAcrossSubmit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	vouchers := VoucherService{
		Vouchers:   repositories.VoucherRepository{DB: db},
		Settings:   repositories.SettingsRepository{DB: db},
		Newsletter: repositories.NewsletterRepository{DB: db},
		Suffix:     func() (string, error) { return "ZX81QP", nil },
	}
	bookings := BookingService{DB: db, Location: jakarta}
	cols := []string{"id", "code", "discount_percent", "email_claimed", "is_used", "created_at"}

	expectVoucherSettings(mock, "1", "30")
	mock.ExpectExec("INSERT INTO vouchers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT IGNORE INTO newsletter_subscribers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("AND is_used = 0").WithArgs("KHANZA30-ZX81QP").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "KHANZA30-ZX81QP", 30, "budi@mail.com", false, time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vouchers SET is_used = 1").WithArgs("KHANZA30-ZX81QP").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("AND is_used = 0").WithArgs("KHANZA30-ZX81QP").WillReturnRows(sqlmock.NewRows(cols))

	ctx := context.Background()
	claim, err := vouchers.Claim(ctx, "budi@mail.com")
	require.NoError(t, err)

	v, err := vouchers.Validate(ctx, claim.Code)
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, 30, v.DiscountPercent)

	_, err = bookings.Submit(ctx, bookingForm(claim.Code))
	require.NoError(t, err)

	_, err = vouchers.Validate(ctx, claim.Code)
	assert.True(t, errors.Is(err, domain.ErrVoucherInvalid), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func bookingRow(id int64, status string, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "phone", "vehicle_info", "service_id", "scheduled_at", "status", "voucher_code", "created_at"}).
		AddRow(id, "Budi", "budi@mail.com", "0812", "Civic", 2, at, status, nil, at)
}

func TestUpdateStatusSlotBookkeeping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := BookingService{DB: db, SlotExclusive: true}
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b WHERE b.id = \\?").WithArgs(5).WillReturnRows(bookingRow(5, "pending", at))
	mock.ExpectExec("DELETE FROM booking_slots WHERE booking_id = \\?").WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET status = \\?").WithArgs("cancelled", 5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b WHERE b.id = \\?").WithArgs(5).WillReturnRows(bookingRow(5, "cancelled", at))
	mock.ExpectExec("INSERT INTO booking_slots").WithArgs(at, 5).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'PRIMARY'"})
	mock.ExpectRollback()

	require.NoError(t, svc.UpdateStatus(context.Background(), 5, "Cancelled"))
	err = svc.UpdateStatus(context.Background(), 5, "pending")
	assert.True(t, errors.Is(err, domain.ErrSlotTaken), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusRejectsUnknownAndMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := BookingService{DB: db}
	assert.Equal(t, "status", domain.InlineField(svc.UpdateStatus(context.Background(), 1, "done")))

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b WHERE b.id = \\?").WithArgs(404).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()
	assert.True(t, domain.IsNotFound(svc.UpdateStatus(context.Background(), 404, "completed")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBookingLeavesInvoices(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := BookingService{DB: db}
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM booking_slots WHERE booking_id = \\?").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM bookings WHERE id = \\?").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), 7))
	// no statement against invoices was issued
	require.NoError(t, mock.ExpectationsWereMet())
}
