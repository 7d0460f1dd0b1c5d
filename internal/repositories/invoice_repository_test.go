package repositories

import (
	"context"
	"testing"
	"time"

	"khanza/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var invoiceViewColumns = []string{
	"id", "booking_id", "items", "voucher_code", "discount_percent", "subtotal", "total",
	"payment_status", "dp_amount", "remaining_amount", "created_at", "updated_at",
	"name", "email", "phone", "vehicle_info", "title", "scheduled_at",
}

func TestInvoiceGetOrphanedBookingBlanksDisplayFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM invoices i\\s+LEFT JOIN bookings b").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(invoiceViewColumns).AddRow(
			9, 42, `[{"name":"Cat Ulang","price":25000000},{"name":"Poles","price":500000}]`, "KHANZA10-AAAAAA",
			10, 25500000, 22950000, "LUNAS", 0, 0, now, now,
			nil, nil, nil, nil, nil, nil,
		))

	got, err := InvoiceRepository{DB: db}.GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.BookingID)
	assert.Equal(t, []models.InvoiceItem{{Name: "Cat Ulang", Price: 25000000}, {Name: "Poles", Price: 500000}}, got.Items)
	assert.Equal(t, "", got.ClientName)
	assert.Equal(t, "", got.VehicleInfo)
	assert.Nil(t, got.ScheduledAt)
	require.NotNil(t, got.VoucherCode)
	assert.Equal(t, "KHANZA10-AAAAAA", *got.VoucherCode)
}

func TestInvoiceUpdateNeverWritesBookingID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE invoices SET items = \\?, voucher_code = \\?").
		WithArgs(`[{"name":"A","price":100}]`, nil, 0, int64(100), int64(100), "LUNAS", int64(0), int64(0), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = InvoiceRepository{DB: db}.Update(context.Background(), models.Invoice{
		ID: 5, BookingID: 77, Items: []models.InvoiceItem{{Name: "A", Price: 100}},
		Subtotal: 100, Total: 100, PaymentStatus: "LUNAS",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
