package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/internal/hub"
	"github.com/onurcolak/listener-text-service/internal/middlewares"
	"github.com/onurcolak/listener-text-service/pkg/logger"
	"github.com/onurcolak/listener-text-service/pkg/response"
)

// RealtimeHandler upgrades authenticated dashboards onto the live channel.
type RealtimeHandler struct {
	hub      *hub.Hub
	sessions middlewares.SessionLookup
	config   environments.RealtimeConfig
	upgrader websocket.Upgrader
}

func NewRealtimeHandler(
	h *hub.Hub,
	sessions middlewares.SessionLookup,
	config environments.RealtimeConfig,
	allowedOrigin string,
) *RealtimeHandler {
	return &RealtimeHandler{
		hub:      h,
		sessions: sessions,
		config:   config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigin),
		},
	}
}

// checkOrigin accepts the dashboard origin and same-host requests. Requests
// without an Origin header are not from browsers and carry the cookie themselves.
func checkOrigin(allowedOrigin string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || origin == allowedOrigin {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// Connect godoc
// @Summary Live event channel
// @Description WebSocket upgrade. Frames are {"type","data"} with message:new, message:updated and settings:updated.
// @Tags realtime
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.ErrorResponse
// @Router /ws [get]
func (h *RealtimeHandler) Connect(c echo.Context) error {
	session, err := h.sessions.Lookup(c.Request())
	if err != nil {
		logger.Errorf("Session lookup failed on live connect: %v", err)
		return response.InternalServerErrorWithMessage(c, "session lookup failed")
	}
	if session == nil {
		return response.Unauthorized(c, domain.ErrUnauthorized.Error())
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.Warnf("Live channel upgrade failed: %v", err)
		return nil
	}

	conn := h.hub.NewConnection(ws, session)
	if err := h.hub.Register(conn); err != nil {
		if errors.Is(err, hub.ErrClosed) {
			_ = ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		}
		_ = ws.Close()
		return nil
	}

	h.hub.Serve(conn, h.config)
	return nil
}
