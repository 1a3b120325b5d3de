package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	portssvc "github.com/tokotrack/backoffice/internal/core/ports/services"
	"github.com/tokotrack/backoffice/internal/middleware"
	"github.com/tokotrack/backoffice/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service provider.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServicesProvider) {
	registerCustomValidations()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServicesProvider) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	RegisterAccountRoutes(v1, services.AccountSvc, services.LedgerSvc)
	registerJournalRoutes(v1, services.PostingSvc)
	registerFinanceRoutes(v1, services.PostingSvc, services.FinanceSvc)
	registerInventoryRoutes(v1, services.InventorySvc)
	registerReportRoutes(v1, services.ReportingSvc)
}

// registerCustomValidations wires binding validations shared by the DTOs.
func registerCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// dpositive: a decimal amount that must be strictly greater than zero.
	_ = v.RegisterValidation("dpositive", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	})
}
