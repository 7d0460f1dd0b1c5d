package api

import (
	stdhttp "net/http"

	"khanza/internal/auth"
	intconfig "khanza/internal/config"
	"khanza/internal/domain"
	h "khanza/internal/http/handlers"
	"khanza/internal/http/middleware"
	"khanza/internal/ratelimit"
	"khanza/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators the router wires into middleware.
type Deps struct {
	Handler h.Handler
	Tokens  auth.TokenManager
	Limiter ratelimit.Limiter
	Metrics *middleware.Metrics
}

func NewRouter(env intconfig.Env, d Deps) *gin.Engine {
	h.RegisterValidators()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", d.Metrics.Handler())
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	hd := d.Handler
	limit := func(bucket string) gin.HandlerFunc { return middleware.RateLimit(d.Limiter, bucket) }

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)

		api.GET("/settings", hd.GetSettings)
		api.GET("/content-home", hd.GetContentHome)
		api.GET("/services", hd.ListServices)
		api.GET("/garage", hd.ListGarage)
		api.GET("/faqs", hd.ListFAQs)
		api.GET("/testimonials", hd.ListApprovedTestimonials)
		api.POST("/testimonials/submit", limit("testimonial"), hd.SubmitTestimonial)
		api.POST("/newsletter", hd.Subscribe)

		api.POST("/claim-voucher", limit("claim"), hd.ClaimVoucher)
		api.POST("/validate-voucher", hd.ValidateVoucher)
		api.GET("/voucher-status", hd.VoucherStatus)
		api.POST("/bookings", limit("booking"), hd.SubmitBooking)

		api.POST("/admin/login", hd.Login)
	}

	guard := []gin.HandlerFunc{middleware.AdminAuth(d.Tokens), middleware.RequireRoles(domain.RoleAdmin)}

	admin := api.Group("/admin", guard...)
	{
		admin.GET("/bookings", hd.ListBookings)
		admin.PUT("/bookings/:id", hd.UpdateBookingStatus)
		admin.DELETE("/bookings/:id", hd.DeleteBooking)

		admin.GET("/invoices", hd.ListInvoices)
		admin.POST("/invoices", hd.CreateInvoice)
		admin.GET("/invoices/:id", hd.GetInvoice)
		admin.PUT("/invoices/:id", hd.UpdateInvoice)
		admin.DELETE("/invoices/:id", hd.DeleteInvoice)
		admin.GET("/invoices/:id/pdf", hd.InvoicePDF)

		admin.GET("/vouchers", hd.ListVouchers)
		admin.POST("/vouchers", hd.CreateVoucher)
		admin.PUT("/vouchers/:id", hd.UpdateVoucher)
		admin.DELETE("/vouchers/:id", hd.DeleteVoucher)
		admin.PUT("/voucher-toggle", hd.ToggleVoucher)
		admin.PUT("/voucher-discount", hd.SetVoucherDiscount)

		admin.GET("/stats", hd.Stats)
		admin.GET("/reports/summary", hd.ReportSummary)
		admin.GET("/reports/export", hd.ReportExport)

		admin.GET("/newsletters", hd.ListSubscribers)
		admin.DELETE("/newsletters/:id", hd.DeleteSubscriber)

		admin.GET("/testimonials", hd.ListAllTestimonials)
		admin.PUT("/content-home", hd.UpdateContentHome)
	}

	// Catalog writes share the public paths but require an admin token.
	protected := api.Group("", guard...)
	{
		protected.PUT("/settings", hd.UpdateSettings)

		protected.POST("/services", hd.CreateService)
		protected.PUT("/services/:id", hd.UpdateService)
		protected.DELETE("/services/:id", hd.DeleteService)

		protected.POST("/garage", hd.CreateGarage)
		protected.PUT("/garage/:id", hd.UpdateGarage)
		protected.DELETE("/garage/:id", hd.DeleteGarage)

		protected.POST("/faqs", hd.CreateFAQ)
		protected.PUT("/faqs/:id", hd.UpdateFAQ)
		protected.DELETE("/faqs/:id", hd.DeleteFAQ)

		protected.POST("/testimonials", hd.CreateTestimonial)
		protected.PUT("/testimonials/:id", hd.UpdateTestimonial)
		protected.DELETE("/testimonials/:id", hd.DeleteTestimonial)
	}

	return r
}
