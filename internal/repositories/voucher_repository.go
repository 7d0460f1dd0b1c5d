package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "khanza/internal/db"
	"khanza/internal/domain/models"
)

const (
	IndexVoucherCode  = "uniq_voucher_code"
	IndexVoucherEmail = "uniq_voucher_email"
)

type VoucherRepository struct {
	DB intdb.DBTX
}

func (r VoucherRepository) db() intdb.DBTX { return pick(r.DB) }

// WithTx returns a copy bound to tx.
func (r VoucherRepository) WithTx(tx intdb.DBTX) VoucherRepository {
	return VoucherRepository{DB: tx}
}

const voucherColumns = `id, code, discount_percent, email_claimed, is_used, created_at`

func scanVoucher(s rowScanner) (models.Voucher, error) {
	var (
		v     models.Voucher
		email sql.NullString
	)
	if err := s.Scan(&v.ID, &v.Code, &v.DiscountPercent, &email, &v.IsUsed, &v.CreatedAt); err != nil {
		return models.Voucher{}, err
	}
	v.EmailClaimed = intdb.NullStringPtr(email)
	return v, nil
}

// Insert stores a new voucher. Duplicate code or email surface as MySQL 1062.
func (r VoucherRepository) Insert(ctx context.Context, v models.Voucher) (int64, error) {
	var email any
	if v.EmailClaimed != nil {
		email = intdb.NullIfEmpty(*v.EmailClaimed)
	}
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO vouchers (code, discount_percent, email_claimed, is_used)
		VALUES (?, ?, ?, ?)
	`, v.Code, v.DiscountPercent, email, v.IsUsed)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VoucherRepository) FindByCode(ctx context.Context, code string) (models.Voucher, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE code = ? LIMIT 1`, code)
	return scanVoucher(row)
}

func (r VoucherRepository) FindUnusedByCode(ctx context.Context, code string) (models.Voucher, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE code = ? AND is_used = 0 LIMIT 1`, code)
	return scanVoucher(row)
}

func (r VoucherRepository) GetByID(ctx context.Context, id int64) (models.Voucher, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE id = ? LIMIT 1`, id)
	return scanVoucher(row)
}

// Redeem flips is_used for an unused code. false means the code was
// unknown or already consumed; the check and the write are one statement.
func (r VoucherRepository) Redeem(ctx context.Context, code string) (bool, error) {
	res, err := r.db().ExecContext(ctx, `UPDATE vouchers SET is_used = 1 WHERE code = ? AND is_used = 0`, code)
	if err != nil {
		return false, err
	}
	return intdb.RowsAffected(res) == 1, nil
}

func (r VoucherRepository) List(ctx context.Context) ([]models.Voucher, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+voucherColumns+` FROM vouchers ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Voucher{}
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan voucher: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Update rewrites the mutable columns. MySQL reports 0 affected rows for
// a no-op update, so existence is checked by the caller.
func (r VoucherRepository) Update(ctx context.Context, v models.Voucher) error {
	var email any
	if v.EmailClaimed != nil {
		email = intdb.NullIfEmpty(*v.EmailClaimed)
	}
	_, err := r.db().ExecContext(ctx, `
		UPDATE vouchers SET code = ?, discount_percent = ?, email_claimed = ?, is_used = ?
		WHERE id = ?
	`, v.Code, v.DiscountPercent, email, v.IsUsed, v.ID)
	return err
}

func (r VoucherRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM vouchers WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return intdb.RowsAffected(res) > 0, nil
}

func (r VoucherRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM vouchers WHERE is_used = 0`).Scan(&n)
	return n, err
}
