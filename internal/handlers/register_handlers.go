package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/middleware"
	"github.com/SscSPs/quarry_billing_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the optional cross-cutting pieces routes are wrapped with.
// Nil fields are skipped.
type RouteDeps struct {
	APILimiter     *limiter.Limiter
	LoginLimiter   *limiter.Limiter
	MetricsHandler http.Handler
	HealthCheck    func(*gin.Context) error
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", healthHandler(deps.HealthCheck))

	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	var loginLimit gin.HandlerFunc
	if deps.LoginLimiter != nil {
		loginLimit = middleware.RateLimit(deps.LoginLimiter, "login")
	}
	registerAuthRoutes(r, services.Auth, loginLimit)

	setupAPIV1Routes(r, cfg, services, deps)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	chain := []gin.HandlerFunc{}
	if deps.APILimiter != nil {
		chain = append(chain, middleware.RateLimit(deps.APILimiter, "api"))
	}
	chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret))

	v1 := r.Group("/api/v1", chain...)

	registerReceiptRoutes(v1, services.Receipt, services.CreditPayment)
	registerOwnerRoutes(v1, services.Owner, services.Deposit)
	registerSettingsRoutes(v1, services.Settings)
	registerReportingRoutes(v1, services.Reporting)
}

func healthHandler(check func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", "error", err.Error())
				c.String(http.StatusServiceUnavailable, "UNAVAILABLE")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	}
}
