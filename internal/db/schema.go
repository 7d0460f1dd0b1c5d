package db

import (
	"context"
	"fmt"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(32) NOT NULL DEFAULT 'admin',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_user_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS site_config (
	config_key VARCHAR(100) NOT NULL PRIMARY KEY,
	value TEXT
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS content_home (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL DEFAULT '',
	description TEXT,
	hero_image VARCHAR(1024) NOT NULL DEFAULT ''
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS services (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	price BIGINT NOT NULL DEFAULT 0,
	icon_name VARCHAR(64) NOT NULL DEFAULT 'Sparkles'
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL DEFAULT '',
	email VARCHAR(255) NOT NULL DEFAULT '',
	phone VARCHAR(100) NOT NULL DEFAULT '',
	vehicle_info VARCHAR(255) NOT NULL DEFAULT '',
	service_id BIGINT NOT NULL,
	scheduled_at DATETIME NOT NULL,
	status VARCHAR(32) NOT NULL DEFAULT 'pending',
	voucher_code VARCHAR(64) NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_booking_status_schedule (status, scheduled_at),
	KEY idx_booking_voucher (voucher_code)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS booking_slots (
	scheduled_at DATETIME NOT NULL PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	KEY idx_slot_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS garage (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	car_model VARCHAR(255) NOT NULL,
	year INT NOT NULL DEFAULT 0,
	price BIGINT NOT NULL DEFAULT 0,
	description TEXT,
	images TEXT,
	status VARCHAR(32) NOT NULL DEFAULT 'available'
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS testimonials (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	review TEXT,
	rating TINYINT NOT NULL DEFAULT 5,
	is_approved TINYINT(1) NOT NULL DEFAULT 0,
	profile_photo VARCHAR(1024) NOT NULL DEFAULT '',
	service_ordered VARCHAR(255) NOT NULL DEFAULT ''
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS faqs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	question TEXT,
	answer TEXT,
	display_order INT NOT NULL DEFAULT 0
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS vouchers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	code VARCHAR(64) NOT NULL,
	discount_percent INT NOT NULL,
	email_claimed VARCHAR(255) NULL,
	is_used TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_voucher_code (code),
	UNIQUE KEY uniq_voucher_email (email_claimed)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	subscribed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_newsletter_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS invoices (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	items TEXT NOT NULL,
	voucher_code VARCHAR(64) NULL,
	discount_percent INT NOT NULL DEFAULT 0,
	subtotal BIGINT NOT NULL DEFAULT 0,
	total BIGINT NOT NULL DEFAULT 0,
	payment_status VARCHAR(16) NOT NULL DEFAULT 'LUNAS',
	dp_amount BIGINT NOT NULL DEFAULT 0,
	remaining_amount BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_invoice_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// columnMigration adds a column to tables created by an older release.
type columnMigration struct {
	Table  string
	Column string
	DDL    string
}

var columnMigrations = []columnMigration{
	{"bookings", "voucher_code", "ALTER TABLE bookings ADD COLUMN voucher_code VARCHAR(64) NULL"},
	{"testimonials", "profile_photo", "ALTER TABLE testimonials ADD COLUMN profile_photo VARCHAR(1024) NOT NULL DEFAULT ''"},
	{"testimonials", "service_ordered", "ALTER TABLE testimonials ADD COLUMN service_ordered VARCHAR(255) NOT NULL DEFAULT ''"},
	{"invoices", "payment_status", "ALTER TABLE invoices ADD COLUMN payment_status VARCHAR(16) NOT NULL DEFAULT 'LUNAS'"},
	{"invoices", "dp_amount", "ALTER TABLE invoices ADD COLUMN dp_amount BIGINT NOT NULL DEFAULT 0"},
	{"invoices", "remaining_amount", "ALTER TABLE invoices ADD COLUMN remaining_amount BIGINT NOT NULL DEFAULT 0"},
	{"invoices", "updated_at", "ALTER TABLE invoices ADD COLUMN updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"},
}

// EnsureSchema creates missing tables and columns. Safe to run on every boot.
func EnsureSchema(ctx context.Context, q DBTX) error {
	for _, ddl := range schemaDDL {
		if _, err := q.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	for _, m := range columnMigrations {
		if HasColumn(ctx, q, m.Table, m.Column) {
			continue
		}
		if _, err := q.ExecContext(ctx, m.DDL); err != nil {
			return fmt.Errorf("migrate %s.%s: %w", m.Table, m.Column, err)
		}
	}
	return nil
}
