package services

import (
	"context"
	"testing"
	"time"

	"khanza/internal/domain"
	"khanza/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var voucherCols = []string{"id", "code", "discount_percent", "email_claimed", "is_used", "created_at"}

var invoiceCols = []string{
	"id", "booking_id", "items", "voucher_code", "discount_percent", "subtotal", "total",
	"payment_status", "dp_amount", "remaining_amount", "created_at", "updated_at",
	"name", "email", "phone", "vehicle_info", "title", "scheduled_at",
}

func bookingWithVoucher(id int64, code any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "email", "phone", "vehicle_info", "service_id", "scheduled_at", "status", "voucher_code", "created_at"}).
		AddRow(id, "Budi", "budi@mail.com", "0812", "Civic", 2, now, "completed", code, now)
}

func TestCreateInvoiceWithDownPaymentUsesBookingVoucher(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := InvoiceService{}
	svc.Invoices.DB, svc.Bookings.DB, svc.Vouchers.DB = db, db, db

	mock.ExpectQuery("FROM bookings b WHERE b.id = \\?").WithArgs(4).WillReturnRows(bookingWithVoucher(4, "KHANZA10-QWERTY"))
	// already redeemed vouchers still price the invoice
	mock.ExpectQuery("FROM vouchers WHERE code = \\? LIMIT 1").WithArgs("KHANZA10-QWERTY").
		WillReturnRows(sqlmock.NewRows(voucherCols).AddRow(1, "KHANZA10-QWERTY", 10, "budi@mail.com", true, time.Now()))
	mock.ExpectExec("INSERT INTO invoices").
		WithArgs(4, `[{"name":"Cat Ulang Full Body","price":25000000}]`, "KHANZA10-QWERTY", 10, 25000000, 22500000, "DP", 10000000, 12500000).
		WillReturnResult(sqlmock.NewResult(21, 1))

	inv, err := svc.Create(context.Background(), models.InvoiceInput{
		BookingID:     4,
		Items:         []models.InvoiceItem{{Name: "Cat Ulang Full Body", Price: 25000000}},
		PaymentStatus: "DP",
		DPAmount:      10000000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), inv.ID)
	assert.Equal(t, int64(22500000), inv.Total)
	assert.Equal(t, int64(12500000), inv.RemainingAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvoiceLunasZeroesDownPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := InvoiceService{}
	svc.Invoices.DB, svc.Bookings.DB, svc.Vouchers.DB = db, db, db
	zero := 0

	mock.ExpectQuery("FROM bookings b WHERE b.id = \\?").WithArgs(4).WillReturnRows(bookingWithVoucher(4, nil))
	mock.ExpectExec("INSERT INTO invoices").
		WithArgs(4, sqlmock.AnyArg(), nil, 0, 1500000, 1500000, "LUNAS", 0, 0).
		WillReturnResult(sqlmock.NewResult(22, 1))

	inv, err := svc.Create(context.Background(), models.InvoiceInput{
		BookingID:       4,
		Items:           []models.InvoiceItem{{Name: "Poles", Price: 1000000}, {Name: "Coating", Price: 500000}},
		DiscountPercent: &zero,
		DPAmount:        700000,
	})
	require.NoError(t, err)
	assert.Equal(t, "LUNAS", inv.PaymentStatus)
	assert.Zero(t, inv.DPAmount)
	assert.Zero(t, inv.RemainingAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvoiceInlineErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := InvoiceService{}
	svc.Invoices.DB, svc.Bookings.DB, svc.Vouchers.DB = db, db, db
	items := []models.InvoiceItem{{Name: "Poles", Price: 1000}}

	mock.ExpectQuery("FROM bookings b WHERE b.id = \\?").WithArgs(99).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = svc.Create(context.Background(), models.InvoiceInput{BookingID: 99, Items: items})
	assert.Equal(t, "booking_id", domain.InlineField(err))

	code := "KHANZA50-GHOST0"
	mock.ExpectQuery("FROM bookings b WHERE b.id = \\?").WithArgs(4).WillReturnRows(bookingWithVoucher(4, nil))
	mock.ExpectQuery("FROM vouchers WHERE code = \\? LIMIT 1").WithArgs(code).WillReturnRows(sqlmock.NewRows(voucherCols))
	_, err = svc.Create(context.Background(), models.InvoiceInput{BookingID: 4, Items: items, VoucherCode: &code})
	assert.Equal(t, "voucher_code", domain.InlineField(err))

	mock.ExpectQuery("FROM bookings b WHERE b.id = \\?").WithArgs(4).WillReturnRows(bookingWithVoucher(4, nil))
	_, err = svc.Create(context.Background(), models.InvoiceInput{BookingID: 4, Items: items, PaymentStatus: "DP", DPAmount: 5000})
	assert.Equal(t, "dp_amount", domain.InlineField(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInvoiceKeepsBookingAndDiscount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := InvoiceService{}
	svc.Invoices.DB, svc.Bookings.DB, svc.Vouchers.DB = db, db, db
	now := time.Now()
	current := func() *sqlmock.Rows {
		return sqlmock.NewRows(invoiceCols).AddRow(
			8, 4, `[{"name":"Poles","price":1000000}]`, "KHANZA20-AAAAAA", 20, 1000000, 800000,
			"LUNAS", 0, 0, now, now, "Budi", "budi@mail.com", "0812", "Civic", "Poles", now)
	}

	mock.ExpectQuery("WHERE i.id = \\?").WithArgs(8).WillReturnRows(current())
	_, err = svc.Update(context.Background(), 8, models.InvoiceInput{BookingID: 5, Items: []models.InvoiceItem{{Name: "Poles", Price: 1}}})
	assert.Equal(t, "booking_id", domain.InlineField(err))

	mock.ExpectQuery("WHERE i.id = \\?").WithArgs(8).WillReturnRows(current())
	mock.ExpectExec("UPDATE invoices SET").
		WithArgs(sqlmock.AnyArg(), "KHANZA20-AAAAAA", 20, 2000000, 1600000, "DP", 600000, 1000000, 8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	inv, err := svc.Update(context.Background(), 8, models.InvoiceInput{
		Items:         []models.InvoiceItem{{Name: "Poles", Price: 2000000}},
		PaymentStatus: "DP",
		DPAmount:      600000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), inv.BookingID)
	assert.Equal(t, 20, inv.DiscountPercent)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInvoiceAfterBookingDeletedHasBlankFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := InvoiceService{}
	svc.Invoices.DB = db
	now := time.Now()
	mock.ExpectQuery("LEFT JOIN bookings b ON b.id = i.booking_id").WithArgs(8).
		WillReturnRows(sqlmock.NewRows(invoiceCols).AddRow(
			8, 4, `[{"name":"Poles","price":1000}]`, nil, 0, 1000, 1000,
			"LUNAS", 0, 0, now, now, nil, nil, nil, nil, nil, nil))

	v, err := svc.Get(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.BookingID)
	assert.Empty(t, v.ClientName)
	assert.Empty(t, v.ServiceTitle)
	assert.Nil(t, v.ScheduledAt)
	require.Len(t, v.Items, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingInvoice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM invoices WHERE id = \\?").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))
	svc := InvoiceService{}
	svc.Invoices.DB = db
	err = svc.Delete(context.Background(), 3)
	assert.True(t, domain.IsNotFound(err))
}
