package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intdb "khanza/internal/db"
	"khanza/internal/domain"
	"khanza/internal/domain/models"

	"github.com/Masterminds/squirrel"
)

type BookingRepository struct {
	DB intdb.DBTX
}

func (r BookingRepository) db() intdb.DBTX { return pick(r.DB) }

func (r BookingRepository) WithTx(tx intdb.DBTX) BookingRepository {
	return BookingRepository{DB: tx}
}

const bookingColumns = `b.id, b.name, b.email, b.phone, b.vehicle_info, b.service_id, b.scheduled_at, b.status, b.voucher_code, b.created_at`

func scanBooking(s rowScanner, extra ...any) (models.Booking, error) {
	var (
		b       models.Booking
		voucher sql.NullString
	)
	dest := append([]any{&b.ID, &b.Name, &b.Email, &b.Phone, &b.VehicleInfo, &b.ServiceID, &b.ScheduledAt, &b.Status, &voucher, &b.CreatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return models.Booking{}, err
	}
	b.VoucherCode = intdb.NullStringPtr(voucher)
	return b, nil
}

func (r BookingRepository) Insert(ctx context.Context, b models.Booking) (int64, error) {
	var voucher any
	if b.VoucherCode != nil {
		voucher = intdb.NullIfEmpty(*b.VoucherCode)
	}
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO bookings (name, email, phone, vehicle_info, service_id, scheduled_at, status, voucher_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.Name, b.Email, b.Phone, b.VehicleInfo, b.ServiceID, b.ScheduledAt, b.Status, voucher)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ReserveSlot claims scheduled_at in booking_slots. A taken slot fails
// with a duplicate-key error on the primary key.
func (r BookingRepository) ReserveSlot(ctx context.Context, at time.Time, bookingID int64) error {
	_, err := r.db().ExecContext(ctx, `INSERT INTO booking_slots (scheduled_at, booking_id) VALUES (?, ?)`, at, bookingID)
	return err
}

// LinkSlot points a reservation made before the booking row existed at it.
func (r BookingRepository) LinkSlot(ctx context.Context, at time.Time, bookingID int64) error {
	_, err := r.db().ExecContext(ctx, `UPDATE booking_slots SET booking_id = ? WHERE scheduled_at = ?`, bookingID, at)
	return err
}

func (r BookingRepository) ReleaseSlot(ctx context.Context, bookingID int64) error {
	_, err := r.db().ExecContext(ctx, `DELETE FROM booking_slots WHERE booking_id = ?`, bookingID)
	return err
}

func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ? LIMIT 1`, id)
	return scanBooking(row)
}

// List returns bookings newest schedule first with service title and the
// discount of the referenced voucher, both resolved at read time.
func (r BookingRepository) List(ctx context.Context) ([]models.BookingView, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT `+bookingColumns+`, COALESCE(s.title, ''), v.discount_percent
		FROM bookings b
		LEFT JOIN services s ON s.id = b.service_id
		LEFT JOIN vouchers v ON v.code = b.voucher_code
		ORDER BY b.scheduled_at DESC, b.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingView{}
	for rows.Next() {
		var (
			title    string
			discount sql.NullInt64
		)
		b, err := scanBooking(rows, &title, &discount)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		view := models.BookingView{Booking: b, ServiceTitle: title}
		if discount.Valid {
			d := int(discount.Int64)
			view.DiscountPercent = &d
		}
		out = append(out, view)
	}
	return out, rows.Err()
}

func (r BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	_, err := r.db().ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, string(status), id)
	return err
}

func (r BookingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return intdb.RowsAffected(res) > 0, nil
}

// CompletedFilter bounds a completed-bookings query; zero times are open ends.
type CompletedFilter struct {
	From time.Time
	To   time.Time
}

func (r BookingRepository) ListCompleted(ctx context.Context, f CompletedFilter) ([]models.CompletedBooking, error) {
	sb := squirrel.Select(
		"b.id", "b.name", "b.email", "b.phone", "b.vehicle_info",
		"COALESCE(s.title, '')", "b.scheduled_at",
	).
		From("bookings b").
		LeftJoin("services s ON s.id = b.service_id").
		Where(squirrel.Eq{"b.status": string(domain.BookingCompleted)})
	if !f.From.IsZero() {
		sb = sb.Where(squirrel.GtOrEq{"b.scheduled_at": f.From})
	}
	if !f.To.IsZero() {
		sb = sb.Where(squirrel.Lt{"b.scheduled_at": f.To})
	}
	query, args, err := sb.OrderBy("b.scheduled_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build completed query: %w", err)
	}

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CompletedBooking{}
	for rows.Next() {
		var c models.CompletedBooking
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.VehicleInfo, &c.ServiceTitle, &c.ScheduledAt); err != nil {
			return nil, fmt.Errorf("scan completed booking: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r BookingRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}
