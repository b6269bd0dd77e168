package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
)

// emptyTwiML acknowledges the carrier without sending an automatic reply.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

type messageIngester interface {
	Ingest(ctx context.Context, phone, text string) (*domain.Message, error)
}

type WebhookHandler struct {
	service messageIngester
}

func NewWebhookHandler(service messageIngester) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// InboundSMS godoc
// @Summary Inbound SMS webhook
// @Description Called by the SMS carrier for every inbound text. Always acknowledges with 200.
// @Tags webhook
// @Accept x-www-form-urlencoded
// @Produce xml
// @Param From formData string true "Sender number"
// @Param Body formData string true "Message text"
// @Success 200 {string} string "<Response></Response>"
// @Failure 403 {object} response.ErrorResponse
// @Router /webhook/sms [post]
func (h *WebhookHandler) InboundSMS(c echo.Context) error {
	from := strings.TrimSpace(c.FormValue("From"))
	body := c.FormValue("Body")

	if from == "" {
		logger.Warnf("Inbound webhook without sender, ignoring (sid: %s)", c.FormValue("MessageSid"))
		return ack(c)
	}

	if _, err := h.service.Ingest(c.Request().Context(), from, body); err != nil {
		// The carrier retries on errors; a failed insert is logged instead.
		logger.Errorf("Failed to store inbound message from %s: %v", from, err)
	}

	return ack(c)
}

func ack(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMETextXMLCharsetUTF8, []byte(emptyTwiML))
}
