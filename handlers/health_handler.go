package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type sessionStorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health checks.
type HealthHandler struct {
	db           pinger
	sessionStore sessionStorePinger
	liveCount    func() int
	checkTimeout time.Duration
}

// NewHealthHandler takes a nil sessionStore when sessions are kept in memory.
func NewHealthHandler(db pinger, sessionStore sessionStorePinger, liveCount func() int) *HealthHandler {
	return &HealthHandler{
		db:           db,
		sessionStore: sessionStore,
		liveCount:    liveCount,
		checkTimeout: 2 * time.Second,
	}
}

// Health returns overall status and basic component statuses.
// @Summary Health check
// @Description Returns overall status with DB and session store connectivity results
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout)
	defer cancel()

	overallStatus := "ok"

	dbStatus := "up"
	if h.db == nil {
		dbStatus = "down"
		overallStatus = "down"
	} else if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "down"
		overallStatus = "down"
	}

	sessionStatus := "memory"
	if h.sessionStore != nil {
		if err := h.sessionStore.Ping(ctx); err != nil {
			sessionStatus = "down"
			if overallStatus == "ok" {
				overallStatus = "degraded"
			}
		} else {
			sessionStatus = "up"
		}
	}

	liveConnections := 0
	if h.liveCount != nil {
		liveConnections = h.liveCount()
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"components": map[string]any{
			"database": map[string]any{
				"status": dbStatus,
			},
			"sessions": map[string]any{
				"status": sessionStatus,
			},
			"realtime": map[string]any{
				"connections": liveConnections,
			},
		},
	})
}
