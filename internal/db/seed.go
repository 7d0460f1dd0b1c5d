package db

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost used for admin passwords everywhere.
const BcryptCost = 12

type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	Catalog       bool
}

var defaultSiteConfig = [][2]string{
	{"voucher_enabled", "1"},
	{"voucher_default_discount", "30"},
	{"site_name", "Khanza Repaint"},
	{"logo_url", ""},
	{"footer_text", "Premium automotive painting and detailing services. We bring your car's true colors back to life with precision and passion."},
}

// Seed inserts the admin account, default site config and (optionally)
// starter catalog content. Existing rows are never overwritten except a
// non-bcrypt admin password, which is re-hashed.
func Seed(ctx context.Context, q DBTX, opt SeedOptions) error {
	if opt.AdminEmail != "" && opt.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(opt.AdminPassword), BcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if _, err := q.ExecContext(ctx, `
			INSERT INTO users (email, password_hash, role)
			VALUES (?, ?, 'admin')
			ON DUPLICATE KEY UPDATE
				password_hash = IF(password_hash LIKE '$2%', password_hash, VALUES(password_hash)),
				role = 'admin'
		`, opt.AdminEmail, string(hash)); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	for _, kv := range defaultSiteConfig {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO site_config (config_key, value) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE config_key = config_key
		`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("seed site_config %s: %w", kv[0], err)
		}
	}

	if !opt.Catalog {
		return nil
	}
	for _, s := range catalogSeeds {
		if err := seedIfEmpty(ctx, q, s); err != nil {
			return err
		}
	}
	return nil
}

type tableSeed struct {
	Table  string
	Insert string
	Rows   [][]any
}

var catalogSeeds = []tableSeed{
	{
		Table:  "content_home",
		Insert: "INSERT INTO content_home (id, title, description, hero_image) VALUES (1, ?, ?, ?)",
		Rows: [][]any{{
			"Mendefinisikan Ulang Kesempurnaan Otomotif",
			"Layanan cat mobil premium, detailing, dan restorasi otomotif. Rasakan seni transformasi kendaraan bersama kami.",
			"https://picsum.photos/seed/car/1920/1080?blur=4",
		}},
	},
	{
		Table:  "services",
		Insert: "INSERT INTO services (title, description, price, icon_name) VALUES (?, ?, ?, ?)",
		Rows: [][]any{
			{"Cat Ulang Full Body", "Transformasi eksterior lengkap dengan proses cat premium multi-tahap.", int64(25000000), "PaintBucket"},
			{"Ganti Warna Custom", "Tampil beda dengan warna custom yang unik sesuai keinginan Anda.", int64(35000000), "Palette"},
			{"Ceramic Coating", "Perlindungan tahan lama dari cuaca, sinar UV, dan goresan ringan.", int64(8000000), "Shield"},
			{"Detailing Signature", "Pembersihan mendalam dan restorasi interior serta eksterior.", int64(3500000), "Sparkles"},
		},
	},
	{
		Table:  "garage",
		Insert: "INSERT INTO garage (car_model, year, price, description, images, status) VALUES (?, ?, ?, ?, ?, ?)",
		Rows: [][]any{
			{"Porsche 911 GT3 RS", 2023, int64(4500000000), "Kondisi sangat baik", "https://picsum.photos/seed/car1/800/600?blur=1", "available"},
			{"Ferrari F8 Tributo", 2022, int64(5200000000), "Kilometer rendah", "https://picsum.photos/seed/car2/800/600?blur=1", "available"},
			{"Lamborghini Huracan EVO", 2021, int64(4700000000), "Knalpot custom", "https://picsum.photos/seed/car3/800/600?blur=1", "available"},
		},
	},
	{
		Table:  "faqs",
		Insert: "INSERT INTO faqs (question, answer, display_order) VALUES (?, ?, ?)",
		Rows: [][]any{
			{"Berapa lama proses cat ulang full body?", "Cat ulang full body biasanya memakan waktu 2 hingga 4 minggu, tergantung kondisi kendaraan, kompleksitas warna, dan tingkat persiapan yang diperlukan.", 1},
			{"Apakah ada garansi untuk pekerjaan cat?", "Ya, kami memberikan garansi 5 tahun untuk semua cat ulang full body terhadap pengelupasan, pudar, dan gelembung dalam kondisi normal.", 2},
		},
	},
	{
		Table:  "testimonials",
		Insert: "INSERT INTO testimonials (name, review, rating, is_approved) VALUES (?, ?, ?, 1)",
		Rows: [][]any{
			{"Budi Santoso", "Perhatian terhadap detail di Khanza Repaint tidak tertandingi. Mereka mentransformasi 911 saya dengan warna custom yang selalu menarik perhatian.", 5},
			{"Sari Dewi", "Saya membawa mobil untuk ceramic coating dan paint correction. Hasilnya seperti kaca.", 5},
		},
	},
}

func seedIfEmpty(ctx context.Context, q DBTX, s tableSeed) error {
	var count int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.Table).Scan(&count); err != nil {
		return fmt.Errorf("count %s: %w", s.Table, err)
	}
	if count > 0 {
		return nil
	}
	for _, row := range s.Rows {
		if _, err := q.ExecContext(ctx, s.Insert, row...); err != nil {
			return fmt.Errorf("seed %s: %w", s.Table, err)
		}
	}
	return nil
}
