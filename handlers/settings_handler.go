package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/pkg/response"
	"github.com/onurcolak/listener-text-service/pkg/validator"
)

type settingsService interface {
	MessagingEnabled(ctx context.Context) (bool, error)
	SetMessagingEnabled(ctx context.Context, enabled bool) (bool, error)
}

type SettingsHandler struct {
	service settingsService
}

func NewSettingsHandler(service settingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

type MessagingEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type MessagingEnabledResponse struct {
	Enabled bool `json:"enabled"`
}

// GetMessagingEnabled godoc
// @Summary Read the messaging toggle
// @Tags settings
// @Produce json
// @Success 200 {object} MessagingEnabledResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/settings/messaging-enabled [get]
func (h *SettingsHandler) GetMessagingEnabled(c echo.Context) error {
	enabled, err := h.service.MessagingEnabled(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return response.Ok(c, MessagingEnabledResponse{Enabled: enabled})
}

// SetMessagingEnabled godoc
// @Summary Write the messaging toggle
// @Description Persists the flag and pushes settings:updated to every dashboard
// @Tags settings
// @Accept json
// @Produce json
// @Param body body MessagingEnabledRequest true "New value"
// @Success 200 {object} MessagingEnabledResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Router /api/settings/messaging-enabled [post]
func (h *SettingsHandler) SetMessagingEnabled(c echo.Context) error {
	var req MessagingEnabledRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	enabled, err := h.service.SetMessagingEnabled(c.Request().Context(), *req.Enabled)
	if err != nil {
		return writeError(c, err)
	}

	return response.Ok(c, MessagingEnabledResponse{Enabled: enabled})
}
