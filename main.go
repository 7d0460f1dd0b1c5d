package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"khanza/internal/auth"
	intconfig "khanza/internal/config"
	intdb "khanza/internal/db"
	router "khanza/internal/http"
	h "khanza/internal/http/handlers"
	"khanza/internal/http/middleware"
	"khanza/internal/ratelimit"
	"khanza/internal/repositories"
	"khanza/internal/services"
	"khanza/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		panic(err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	logger, err := utils.InitLogger(env.LogLevel, env.GinMode == gin.DebugMode)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := intconfig.ConnectDB(env.DSN())
	if err != nil {
		logger.Fatal("gagal konek database", zap.Error(err))
	}
	defer intconfig.CloseDB()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := intdb.EnsureSchema(bootCtx, db); err != nil {
		logger.Fatal("gagal menyiapkan skema", zap.Error(err))
	}
	if err := intdb.Seed(bootCtx, db, intdb.SeedOptions{
		AdminEmail:    env.AdminEmail,
		AdminPassword: env.AdminPassword,
		Catalog:       env.SeedCatalog,
	}); err != nil {
		logger.Fatal("gagal seed data awal", zap.Error(err))
	}
	cancelBoot()

	var limiter ratelimit.Limiter = ratelimit.NewMemory(env.RateLimitWindow)
	if env.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
		defer rdb.Close()
		limiter = ratelimit.NewRedis(rdb, env.RateLimitWindow)
		logger.Info("rate limiter memakai redis", zap.String("addr", env.RedisAddr))
	}

	tokens := auth.NewTokenManager(env.JWTSecret, env.JWTTTL)
	r := router.NewRouter(env, router.Deps{
		Handler: buildHandler(env, db, tokens),
		Tokens:  tokens,
		Limiter: limiter,
		Metrics: middleware.NewMetrics("khanza-backend"),
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server berjalan", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("gagal menjalankan server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown server gagal", zap.Error(err))
		return
	}
	logger.Info("server berhenti dengan aman")
}

func buildHandler(env intconfig.Env, sqlDB *sql.DB, tokens auth.TokenManager) h.Handler {
	vouchers := repositories.VoucherRepository{DB: sqlDB}
	bookings := repositories.BookingRepository{DB: sqlDB}
	invoices := repositories.InvoiceRepository{DB: sqlDB}
	settings := repositories.SettingsRepository{DB: sqlDB}
	newsletter := repositories.NewsletterRepository{DB: sqlDB}
	catalog := repositories.CatalogRepository{DB: sqlx.NewDb(sqlDB, "mysql")}

	reports := services.ReportsService{Bookings: bookings, Vouchers: vouchers, Newsletter: newsletter, Catalog: catalog}
	invoiceSvc := services.InvoiceService{Invoices: invoices, Bookings: bookings, Vouchers: vouchers}

	return h.Handler{
		DB:   sqlDB,
		Auth: services.AuthService{Users: repositories.UserRepository{DB: sqlDB}, Tokens: tokens},
		Vouchers: services.VoucherService{
			Vouchers:   vouchers,
			Settings:   settings,
			Newsletter: newsletter,
		},
		Bookings: services.BookingService{
			DB:            sqlDB,
			Bookings:      bookings,
			Vouchers:      vouchers,
			SlotExclusive: env.BookingSlotExclusive,
		},
		Invoices:   invoiceSvc,
		Reports:    reports,
		Docs:       services.DocsService{Invoices: invoiceSvc, Reports: reports, Settings: settings},
		Catalog:    services.CatalogService{Repo: catalog},
		Settings:   services.SettingsService{Repo: settings},
		Newsletter: services.NewsletterService{Repo: newsletter},
	}
}
