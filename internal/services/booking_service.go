package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "khanza/internal/config"
	intdb "khanza/internal/db"
	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"
	"khanza/internal/utils"

	"go.uber.org/zap"
)

const defaultVehicleInfo = "Tidak diketahui"

type BookingService struct {
	DB       *sql.DB
	Bookings repositories.BookingRepository
	Vouchers repositories.VoucherRepository
	// SlotExclusive allows at most one live booking per scheduled minute.
	SlotExclusive bool
	Location      *time.Location
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

func normalizeBookingInput(in models.BookingInput, loc *time.Location) (models.Booking, error) {
	serviceID := in.ServiceID
	if serviceID == 0 {
		serviceID = in.Service
	}
	if serviceID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "service_id", Msg: "Layanan wajib dipilih"}
	}
	raw := strings.TrimSpace(in.ScheduledAt)
	if raw == "" {
		raw = strings.TrimSpace(in.Date)
	}
	if raw == "" {
		return models.Booking{}, domain.ValidationError{Field: "scheduled_at", Msg: "Tanggal dan waktu wajib diisi"}
	}
	at, err := utils.ParseSchedule(raw, loc)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "scheduled_at", Msg: "Format tanggal tidak valid", Err: err}
	}

	b := models.Booking{
		Name:        utils.NormalizeSpace(in.Name),
		Email:       utils.NormalizeEmail(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		VehicleInfo: utils.Fallback(in.VehicleInfo, defaultVehicleInfo),
		ServiceID:   serviceID,
		ScheduledAt: at,
		Status:      string(domain.BookingPending),
	}
	if code := utils.NormalizeCode(in.VoucherCode); code != "" {
		b.VoucherCode = &code
	}
	return b, nil
}

// Submit records a public booking. Slot reservation, voucher redemption and
// the booking insert commit together or not at all.
func (s BookingService) Submit(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	b, err := normalizeBookingInput(in, s.loc())
	if err != nil {
		return models.Booking{}, err
	}

	err = intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		bookings := s.Bookings.WithTx(tx)
		if s.SlotExclusive {
			if err := bookings.ReserveSlot(ctx, b.ScheduledAt, 0); err != nil {
				if intdb.IsDuplicateKey(err) {
					return domain.ErrSlotTaken
				}
				return fmt.Errorf("reserve slot: %w", err)
			}
		}
		if b.VoucherCode != nil {
			if err := Redeem(ctx, s.Vouchers.WithTx(tx), *b.VoucherCode); err != nil {
				return err
			}
		}
		id, err := bookings.Insert(ctx, b)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		b.ID = id
		if s.SlotExclusive {
			if err := bookings.LinkSlot(ctx, b.ScheduledAt, id); err != nil {
				return fmt.Errorf("link slot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, wrapInternal(err)
	}
	b.CreatedAt = time.Now()

	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "submit", "booking baru",
		zap.Int64("booking_id", b.ID), zap.Bool("with_voucher", b.VoucherCode != nil))
	return b, nil
}

func (s BookingService) List(ctx context.Context) ([]models.BookingView, error) {
	list, err := s.Bookings.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// UpdateStatus accepts any transition inside the closed status set.
// Cancelling frees the slot; leaving cancelled claims it again.
func (s BookingService) UpdateStatus(ctx context.Context, id int64, raw string) error {
	status, ok := domain.ParseBookingStatus(raw)
	if !ok {
		return domain.ValidationError{Field: "status", Msg: "Status harus pending, completed, atau cancelled"}
	}

	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		bookings := s.Bookings.WithTx(tx)
		current, err := bookings.GetByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Msg: "Booking tidak ditemukan"}
		}
		if err != nil {
			return err
		}
		prev := domain.BookingStatus(current.Status)
		if prev == status {
			return nil
		}
		if s.SlotExclusive {
			switch {
			case status == domain.BookingCancelled:
				if err := bookings.ReleaseSlot(ctx, id); err != nil {
					return fmt.Errorf("release slot: %w", err)
				}
			case prev == domain.BookingCancelled:
				if err := bookings.ReserveSlot(ctx, current.ScheduledAt, id); err != nil {
					if intdb.IsDuplicateKey(err) {
						return domain.ErrSlotTaken
					}
					return fmt.Errorf("reserve slot: %w", err)
				}
			}
		}
		return bookings.UpdateStatus(ctx, id, status)
	})
	if err != nil {
		return wrapInternal(err)
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "update_status", "status booking diubah",
		zap.Int64("booking_id", id), zap.String("status", string(status)))
	return nil
}

// Delete removes the booking and its slot. Invoices that reference it are
// left in place and show blank booking fields from then on.
func (s BookingService) Delete(ctx context.Context, id int64) error {
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		bookings := s.Bookings.WithTx(tx)
		if err := bookings.ReleaseSlot(ctx, id); err != nil {
			return fmt.Errorf("release slot: %w", err)
		}
		ok, err := bookings.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFoundError{Resource: "booking", Msg: "Booking tidak ditemukan"}
		}
		return nil
	})
	if err != nil {
		return wrapInternal(err)
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "delete", "booking dihapus", zap.Int64("booking_id", id))
	return nil
}

// wrapInternal passes typed domain errors through and hides the rest.
func wrapInternal(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsConflict(err) ||
		domain.IsUnauthorized(err) || domain.IsInternal(err) {
		return err
	}
	return domain.InternalError{Err: err}
}
