package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "khanza/internal/db"
	"khanza/internal/domain/models"

	"github.com/goccy/go-json"
)

type InvoiceRepository struct {
	DB intdb.DBTX
}

func (r InvoiceRepository) db() intdb.DBTX { return pick(r.DB) }

func (r InvoiceRepository) WithTx(tx intdb.DBTX) InvoiceRepository {
	return InvoiceRepository{DB: tx}
}

// invoiceSelect resolves booking display fields by weak reference; they are
// NULL when the booking was deleted.
const invoiceSelect = `
	SELECT i.id, i.booking_id, i.items, i.voucher_code, i.discount_percent, i.subtotal, i.total,
	       i.payment_status, i.dp_amount, i.remaining_amount, i.created_at, i.updated_at,
	       b.name, b.email, b.phone, b.vehicle_info, s.title, b.scheduled_at
	FROM invoices i
	LEFT JOIN bookings b ON b.id = i.booking_id
	LEFT JOIN services s ON s.id = b.service_id`

func encodeItems(items []models.InvoiceItem) (string, error) {
	if items == nil {
		items = []models.InvoiceItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode invoice items: %w", err)
	}
	return string(raw), nil
}

func decodeItems(raw string) ([]models.InvoiceItem, error) {
	items := []models.InvoiceItem{}
	if raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode invoice items: %w", err)
	}
	return items, nil
}

func scanInvoiceView(s rowScanner) (models.InvoiceView, error) {
	var (
		v                                  models.InvoiceView
		items                              string
		voucher                            sql.NullString
		name, email, phone, vehicle, title sql.NullString
		scheduled                          sql.NullTime
	)
	err := s.Scan(
		&v.ID, &v.BookingID, &items, &voucher, &v.DiscountPercent, &v.Subtotal, &v.Total,
		&v.PaymentStatus, &v.DPAmount, &v.RemainingAmount, &v.CreatedAt, &v.UpdatedAt,
		&name, &email, &phone, &vehicle, &title, &scheduled,
	)
	if err != nil {
		return models.InvoiceView{}, err
	}
	if v.Items, err = decodeItems(items); err != nil {
		return models.InvoiceView{}, err
	}
	v.VoucherCode = intdb.NullStringPtr(voucher)
	v.ClientName = name.String
	v.ClientEmail = email.String
	v.ClientPhone = phone.String
	v.VehicleInfo = vehicle.String
	v.ServiceTitle = title.String
	if scheduled.Valid {
		t := scheduled.Time
		v.ScheduledAt = &t
	}
	return v, nil
}

func (r InvoiceRepository) Insert(ctx context.Context, inv models.Invoice) (int64, error) {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return 0, err
	}
	var voucher any
	if inv.VoucherCode != nil {
		voucher = intdb.NullIfEmpty(*inv.VoucherCode)
	}
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO invoices (booking_id, items, voucher_code, discount_percent, subtotal, total,
			payment_status, dp_amount, remaining_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, inv.BookingID, items, voucher, inv.DiscountPercent, inv.Subtotal, inv.Total,
		inv.PaymentStatus, inv.DPAmount, inv.RemainingAmount)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces the financial fields. booking_id is never written.
func (r InvoiceRepository) Update(ctx context.Context, inv models.Invoice) error {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return err
	}
	var voucher any
	if inv.VoucherCode != nil {
		voucher = intdb.NullIfEmpty(*inv.VoucherCode)
	}
	_, err = r.db().ExecContext(ctx, `
		UPDATE invoices SET items = ?, voucher_code = ?, discount_percent = ?, subtotal = ?, total = ?,
			payment_status = ?, dp_amount = ?, remaining_amount = ?
		WHERE id = ?
	`, items, voucher, inv.DiscountPercent, inv.Subtotal, inv.Total,
		inv.PaymentStatus, inv.DPAmount, inv.RemainingAmount, inv.ID)
	return err
}

func (r InvoiceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return intdb.RowsAffected(res) > 0, nil
}

func (r InvoiceRepository) GetByID(ctx context.Context, id int64) (models.InvoiceView, error) {
	row := r.db().QueryRowContext(ctx, invoiceSelect+` WHERE i.id = ? LIMIT 1`, id)
	return scanInvoiceView(row)
}

func (r InvoiceRepository) List(ctx context.Context) ([]models.InvoiceView, error) {
	rows, err := r.db().QueryContext(ctx, invoiceSelect+` ORDER BY i.created_at DESC, i.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.InvoiceView{}
	for rows.Next() {
		v, err := scanInvoiceView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
