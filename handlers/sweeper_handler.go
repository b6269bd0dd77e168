package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/internal/sweeper"
	"github.com/onurcolak/listener-text-service/pkg/response"
)

// SweeperHandler exposes the in-memory session sweeper to staff. It is nil
// safe: with Valkey holding sessions there is nothing to sweep.
type SweeperHandler struct {
	sweeper *sweeper.Sweeper
}

type SweeperStatusResponse struct {
	Store  string          `json:"store"`
	Status *sweeper.Status `json:"status,omitempty"`
}

type SweepResponse struct {
	Removed int `json:"removed"`
}

func NewSweeperHandler(s *sweeper.Sweeper) *SweeperHandler {
	return &SweeperHandler{sweeper: s}
}

// GetStatus godoc
// @Summary Session sweeper status
// @Description Reports which session store is active and, for the memory store, the sweeper statistics
// @Tags admin
// @Produce json
// @Success 200 {object} SweeperStatusResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /admin/sessions/sweeper [get]
func (h *SweeperHandler) GetStatus(c echo.Context) error {
	if h.sweeper == nil {
		return response.Ok(c, SweeperStatusResponse{Store: "valkey"})
	}

	status := h.sweeper.GetStatus()
	return response.Ok(c, SweeperStatusResponse{Store: "memory", Status: &status})
}

// RunNow godoc
// @Summary Purge expired sessions now
// @Tags admin
// @Produce json
// @Success 200 {object} SweepResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /admin/sessions/sweeper/run [post]
func (h *SweeperHandler) RunNow(c echo.Context) error {
	if h.sweeper == nil {
		return response.Conflict(c, "sessions are stored in valkey and expire on their own")
	}

	removed, err := h.sweeper.RunNow(c.Request().Context())
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Ok(c, SweepResponse{Removed: removed})
}
