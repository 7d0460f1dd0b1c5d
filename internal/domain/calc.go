package domain

import "math"

// MaxAmount bounds item prices and subtotals so discount math stays in int64.
const MaxAmount int64 = (math.MaxInt64 - 50) / 100

// InvoiceLine is one billable row; price is whole Rupiah.
type InvoiceLine struct {
	Name  string
	Price int64
}

type InvoiceTotals struct {
	Subtotal        int64
	DiscountPercent int
	Total           int64
	PaymentStatus   PaymentStatus
	DPAmount        int64
	Remaining       int64
}

// ComputeInvoice derives subtotal, total and payment bookkeeping.
// LUNAS always stores dp=0 and remaining=0; DP requires 0 <= dp <= total.
func ComputeInvoice(lines []InvoiceLine, discountPercent int, status PaymentStatus, dpAmount int64) (InvoiceTotals, error) {
	if len(lines) == 0 {
		return InvoiceTotals{}, ValidationError{Field: "items", Msg: "Minimal satu item diperlukan"}
	}
	if discountPercent < 0 || discountPercent > 100 {
		return InvoiceTotals{}, ValidationError{Field: "discount_percent", Msg: "Diskon harus antara 0 dan 100"}
	}

	var subtotal int64
	for _, l := range lines {
		if l.Name == "" {
			return InvoiceTotals{}, ValidationError{Field: "items", Msg: "Nama item wajib diisi"}
		}
		if l.Price < 0 {
			return InvoiceTotals{}, ValidationError{Field: "items", Msg: "Harga item tidak boleh negatif"}
		}
		if l.Price > MaxAmount || subtotal > MaxAmount-l.Price {
			return InvoiceTotals{}, ValidationError{Field: "items", Msg: "Total harga item melebihi batas"}
		}
		subtotal += l.Price
	}

	out := InvoiceTotals{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		Total:           applyDiscount(subtotal, discountPercent),
		PaymentStatus:   status,
	}

	switch status {
	case PaymentDP:
		if dpAmount < 0 || dpAmount > out.Total {
			return InvoiceTotals{}, ValidationError{Field: "dp_amount", Msg: "Nominal DP harus antara 0 dan total tagihan"}
		}
		out.DPAmount = dpAmount
		out.Remaining = out.Total - dpAmount
	case PaymentLunas, "":
		out.PaymentStatus = PaymentLunas
	default:
		return InvoiceTotals{}, ValidationError{Field: "payment_status", Msg: "Status pembayaran harus LUNAS atau DP"}
	}
	return out, nil
}

// applyDiscount rounds half up to the nearest Rupiah using integer math.
func applyDiscount(subtotal int64, percent int) int64 {
	num := subtotal * int64(100-percent)
	return (num + 50) / 100
}
