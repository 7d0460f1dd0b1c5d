package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"khanza/internal/domain"
	"khanza/internal/domain/models"
	"khanza/internal/repositories"
	"khanza/internal/utils"

	"go.uber.org/zap"
)

type InvoiceService struct {
	Invoices repositories.InvoiceRepository
	Bookings repositories.BookingRepository
	Vouchers repositories.VoucherRepository
}

var errInvoiceNotFound = domain.NotFoundError{Resource: "invoice", Msg: "Invoice tidak ditemukan"}

func toLines(items []models.InvoiceItem) []domain.InvoiceLine {
	lines := make([]domain.InvoiceLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.InvoiceLine{Name: strings.TrimSpace(it.Name), Price: it.Price})
	}
	return lines
}

// discountFor looks up the ledger discount for code regardless of is_used.
// The value is copied onto the invoice and never re-read.
func (s InvoiceService) discountFor(ctx context.Context, code string) (int, error) {
	v, err := s.Vouchers.FindByCode(ctx, code)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ValidationError{Field: "voucher_code", Msg: "Voucher tidak ditemukan, isi diskon secara manual"}
	}
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return v.DiscountPercent, nil
}

func (s InvoiceService) build(ctx context.Context, in models.InvoiceInput, code *string, discount *int) (models.Invoice, error) {
	status, ok := domain.ParsePaymentStatus(in.PaymentStatus)
	if !ok {
		return models.Invoice{}, domain.ValidationError{Field: "payment_status", Msg: "Status pembayaran harus LUNAS atau DP"}
	}

	var voucher *string
	if code != nil {
		if c := utils.NormalizeCode(*code); c != "" {
			voucher = &c
		}
	}
	pct := 0
	switch {
	case discount != nil:
		pct = *discount
	case voucher != nil:
		d, err := s.discountFor(ctx, *voucher)
		if err != nil {
			return models.Invoice{}, err
		}
		pct = d
	}

	totals, err := domain.ComputeInvoice(toLines(in.Items), pct, status, in.DPAmount)
	if err != nil {
		return models.Invoice{}, err
	}
	items := make([]models.InvoiceItem, 0, len(in.Items))
	for _, l := range toLines(in.Items) {
		items = append(items, models.InvoiceItem{Name: l.Name, Price: l.Price})
	}
	return models.Invoice{
		Items:           items,
		VoucherCode:     voucher,
		DiscountPercent: totals.DiscountPercent,
		Subtotal:        totals.Subtotal,
		Total:           totals.Total,
		PaymentStatus:   string(totals.PaymentStatus),
		DPAmount:        totals.DPAmount,
		RemainingAmount: totals.Remaining,
	}, nil
}

// Create bills a booking. voucher_code defaults to the booking's code and
// discount_percent to that voucher's discount.
func (s InvoiceService) Create(ctx context.Context, in models.InvoiceInput) (models.Invoice, error) {
	if in.BookingID <= 0 {
		return models.Invoice{}, domain.ValidationError{Field: "booking_id", Msg: "Booking wajib dipilih"}
	}
	booking, err := s.Bookings.GetByID(ctx, in.BookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, domain.ValidationError{Field: "booking_id", Msg: "Booking tidak ditemukan"}
	}
	if err != nil {
		return models.Invoice{}, domain.InternalError{Err: err}
	}

	code := in.VoucherCode
	if code == nil {
		code = booking.VoucherCode
	}
	inv, err := s.build(ctx, in, code, in.DiscountPercent)
	if err != nil {
		return models.Invoice{}, err
	}
	inv.BookingID = booking.ID

	id, err := s.Invoices.Insert(ctx, inv)
	if err != nil {
		return models.Invoice{}, domain.InternalError{Err: err}
	}
	inv.ID = id
	utils.LogEvent(utils.RequestIDFrom(ctx), "invoice", "create", "invoice dibuat",
		zap.Int64("invoice_id", id), zap.Int64("booking_id", inv.BookingID), zap.Int64("total", inv.Total))
	return inv, nil
}

// Update replaces the financial fields. booking_id cannot be changed and
// the booking itself is never touched.
func (s InvoiceService) Update(ctx context.Context, id int64, in models.InvoiceInput) (models.Invoice, error) {
	current, err := s.Invoices.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, errInvoiceNotFound
	}
	if err != nil {
		return models.Invoice{}, domain.InternalError{Err: err}
	}
	if in.BookingID != 0 && in.BookingID != current.BookingID {
		return models.Invoice{}, domain.ValidationError{Field: "booking_id", Msg: "Booking pada invoice tidak dapat diubah"}
	}

	code := in.VoucherCode
	if code == nil {
		code = current.VoucherCode
	}
	discount := in.DiscountPercent
	if discount == nil && (in.VoucherCode == nil || sameCode(in.VoucherCode, current.VoucherCode)) {
		d := current.DiscountPercent
		discount = &d
	}
	inv, err := s.build(ctx, in, code, discount)
	if err != nil {
		return models.Invoice{}, err
	}
	inv.ID = id
	inv.BookingID = current.BookingID
	inv.CreatedAt = current.CreatedAt

	if err := s.Invoices.Update(ctx, inv); err != nil {
		return models.Invoice{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "invoice", "update", "invoice diperbarui", zap.Int64("invoice_id", id))
	return inv, nil
}

func sameCode(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return utils.NormalizeCode(*a) == utils.NormalizeCode(*b)
}

func (s InvoiceService) Delete(ctx context.Context, id int64) error {
	ok, err := s.Invoices.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return errInvoiceNotFound
	}
	return nil
}

func (s InvoiceService) Get(ctx context.Context, id int64) (models.InvoiceView, error) {
	v, err := s.Invoices.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InvoiceView{}, errInvoiceNotFound
	}
	if err != nil {
		return models.InvoiceView{}, domain.InternalError{Err: err}
	}
	return v, nil
}

func (s InvoiceService) List(ctx context.Context) ([]models.InvoiceView, error) {
	list, err := s.Invoices.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}
