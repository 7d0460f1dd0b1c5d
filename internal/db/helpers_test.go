package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateKeyOn(t *testing.T) {
	mysql8 := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.com' for key 'vouchers.uniq_voucher_email'"}
	mysql57 := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'KHANZA30-ABCDEF' for key 'uniq_voucher_code'"}
	other := &mysql.MySQLError{Number: 1146, Message: "Table 'x' doesn't exist"}

	if !IsDuplicateKeyOn(mysql8, "uniq_voucher_email") {
		t.Fatalf("mysql 8 message should match index name")
	}
	if IsDuplicateKeyOn(mysql8, "uniq_voucher_code") {
		t.Fatalf("index name must not match a different key")
	}
	if !IsDuplicateKeyOn(fmt.Errorf("insert: %w", mysql57), "uniq_voucher_code") {
		t.Fatalf("wrapped mysql 5.7 error should match")
	}
	if IsDuplicateKey(other) {
		t.Fatalf("1146 is not a duplicate key error")
	}
	if IsDuplicateKey(errors.New("Duplicate entry")) {
		t.Fatalf("plain errors are never duplicate key errors")
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE vouchers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = WithTx(context.Background(), db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(context.Background(), "UPDATE vouchers SET is_used = 1"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to be returned, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaSkipsExistingColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for range schemaDDL {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for i, m := range columnMigrations {
		rows := sqlmock.NewRows([]string{"column_name"})
		if i > 0 {
			rows.AddRow(m.Column)
		}
		mock.ExpectQuery("information_schema\\.columns").WithArgs(m.Table, m.Column).WillReturnRows(rows)
		if i == 0 {
			mock.ExpectExec("ALTER TABLE bookings ADD COLUMN voucher_code").WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
