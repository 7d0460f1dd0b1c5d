package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSeedUpsertsAdminAndConfig(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users .* ON DUPLICATE KEY UPDATE").
		WithArgs("admin@khanzarepaint.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	for _, kv := range defaultSiteConfig {
		mock.ExpectExec("INSERT INTO site_config").WithArgs(kv[0], kv[1]).WillReturnResult(sqlmock.NewResult(0, 1))
	}

	err = Seed(context.Background(), db, SeedOptions{AdminEmail: "admin@khanzarepaint.com", AdminPassword: "123123"})
	if err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedSkipsAdminWithoutCredentials(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for range defaultSiteConfig {
		mock.ExpectExec("INSERT INTO site_config").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	if err := Seed(context.Background(), db, SeedOptions{}); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
