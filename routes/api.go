package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/handlers"
	"github.com/onurcolak/listener-text-service/internal/middlewares"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Messages *handlers.MessageHandler
	Settings *handlers.SettingsHandler
	Webhook  *handlers.WebhookHandler
	Admin    *handlers.AdminHandler
	Realtime *handlers.RealtimeHandler
	Sweeper  *handlers.SweeperHandler
}

// RegisterRoutes registers all routes with their middleware.
func RegisterRoutes(
	e *echo.Echo,
	h Handlers,
	sessions middlewares.SessionLookup,
	cfg *environments.Config,
) {
	e.GET("/health", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireSession := middlewares.RequireSession(sessions)

	api := e.Group("/api")

	// Login is throttled per client IP
	api.POST("/login", h.Auth.Login, loginRateLimiter(cfg.Server.LoginRateLimit))
	api.GET("/verify", h.Auth.Verify)
	api.POST("/logout", h.Auth.Logout)

	messages := api.Group("/messages", requireSession)
	messages.GET("", h.Messages.ListRecent)
	messages.PATCH("/:id/read", h.Messages.SetRead)
	messages.POST("/:id/reply", h.Messages.Reply)

	settings := api.Group("/settings", requireSession)
	settings.GET("/messaging-enabled", h.Settings.GetMessagingEnabled)
	settings.POST("/messaging-enabled", h.Settings.SetMessagingEnabled)

	// The live channel checks the session itself so it can refuse before upgrading.
	e.GET("/ws", h.Realtime.Connect)

	// Carrier webhook: no session, optionally signed
	var webhookMiddleware []echo.MiddlewareFunc
	if cfg.Carrier.ValidateSignature {
		webhookMiddleware = append(webhookMiddleware,
			middlewares.CarrierSignature(cfg.Carrier.AuthToken, cfg.Carrier.WebhookURL))
	}
	e.POST("/webhook/sms", h.Webhook.InboundSMS, webhookMiddleware...)

	admin := e.Group("/admin", requireSession)
	admin.GET("/messages", h.Admin.ListMessages)
	admin.DELETE("/messages/:id", h.Admin.DeleteMessage)
	admin.GET("/sessions/sweeper", h.Sweeper.GetStatus)
	admin.POST("/sessions/sweeper/run", h.Sweeper.RunNow)
}

func loginRateLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(perSecond),
			Burst: 5,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"success": false,
				"error":   "too many login attempts, try again shortly",
			})
		},
	})
}
