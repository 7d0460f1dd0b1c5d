package handlers

import (
	"database/sql"
	"reflect"
	"strings"
	"sync"

	"khanza/internal/domain"
	"khanza/internal/services"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Handler binds HTTP routes to the application services.
type Handler struct {
	DB         *sql.DB
	Auth       services.AuthService
	Vouchers   services.VoucherService
	Bookings   services.BookingService
	Invoices   services.InvoiceService
	Reports    services.ReportsService
	Docs       services.DocsService
	Catalog    services.CatalogService
	Settings   services.SettingsService
	Newsletter services.NewsletterService
}

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules used by the models.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// report json names so inline errors match the form fields
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("serviceicon", func(fl validator.FieldLevel) bool {
			_, ok := domain.ParseServiceIcon(fl.Field().String())
			return ok
		})
	})
}
