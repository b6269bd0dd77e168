package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/response"
	"github.com/onurcolak/listener-text-service/pkg/validator"
)

type messageService interface {
	ListRecent(ctx context.Context) ([]domain.Message, error)
	SetRead(ctx context.Context, id int64, read bool) (*domain.Message, error)
	Reply(ctx context.Context, id int64, replyText string) (*domain.Message, error)
}

type MessageHandler struct {
	service messageService
}

func NewMessageHandler(service messageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type ReadRequest struct {
	Read *bool `json:"read" validate:"required"`
}

// ReplyRequest is validated by the service so an empty reply answers 400.
type ReplyRequest struct {
	ReplyText string `json:"replyText"`
}

// ListRecent godoc
// @Summary Recent messages snapshot
// @Description Returns messages received inside the dashboard window, newest first
// @Tags messages
// @Produce json
// @Success 200 {array} domain.Message
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/messages [get]
func (h *MessageHandler) ListRecent(c echo.Context) error {
	messages, err := h.service.ListRecent(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return response.Ok(c, messages)
}

// SetRead godoc
// @Summary Mark a message read or unread
// @Tags messages
// @Accept json
// @Produce json
// @Param id path int true "Message ID"
// @Param body body ReadRequest true "New read state"
// @Success 200 {object} domain.Message
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Router /api/messages/{id}/read [patch]
func (h *MessageHandler) SetRead(c echo.Context) error {
	id, err := parseMessageID(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	var req ReadRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	msg, err := h.service.SetRead(c.Request().Context(), id, *req.Read)
	if err != nil {
		return writeError(c, err)
	}

	return response.Ok(c, msg)
}

// Reply godoc
// @Summary Reply to a message
// @Description Sends the reply by SMS and records it only if the carrier accepted it
// @Tags messages
// @Accept json
// @Produce json
// @Param id path int true "Message ID"
// @Param body body ReplyRequest true "Reply text"
// @Success 200 {object} domain.Message
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/messages/{id}/reply [post]
func (h *MessageHandler) Reply(c echo.Context) error {
	id, err := parseMessageID(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	var req ReplyRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	msg, err := h.service.Reply(c.Request().Context(), id, req.ReplyText)
	if err != nil {
		return writeError(c, err)
	}

	return response.Ok(c, msg)
}
