package handlers

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/internal/middlewares"
	"github.com/onurcolak/listener-text-service/pkg/logger"
	"github.com/onurcolak/listener-text-service/pkg/response"
)

type adminService interface {
	ListAll(ctx context.Context) ([]domain.Message, *domain.MessageStats, error)
	Delete(ctx context.Context, id int64) error
}

type AdminHandler struct {
	service adminService
}

func NewAdminHandler(service adminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type AdminListResponse struct {
	Stats    domain.MessageStats `json:"stats"`
	Messages []domain.Message    `json:"messages"`
}

var adminTemplate = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Listener texts: all messages</title></head>
<body>
<h1>All messages</h1>
<p>Total: {{.Stats.Total}} &middot; Unread: {{.Stats.Unread}} &middot; Replied: {{.Stats.Replied}}</p>
<table>
<thead><tr><th>ID</th><th>Received</th><th>Phone</th><th>Message</th><th>Read</th><th>Reply</th></tr></thead>
<tbody>
{{- range .Messages}}
<tr>
<td>{{.ID}}</td>
<td>{{.Timestamp.Format "2006-01-02 15:04:05 MST"}}</td>
<td>{{.Phone}}</td>
<td>{{.Text}}</td>
<td>{{if .Read}}yes{{else}}no{{end}}</td>
<td>{{if .Replied}}{{.ReplyText}}{{end}}</td>
</tr>
{{- else}}
<tr><td colspan="6">No messages yet.</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// ListMessages godoc
// @Summary Full message history
// @Description Every stored message, newest first, ignoring the dashboard window. HTML unless JSON is accepted.
// @Tags admin
// @Produce html
// @Produce json
// @Success 200 {object} AdminListResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /admin/messages [get]
func (h *AdminHandler) ListMessages(c echo.Context) error {
	messages, stats, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	data := AdminListResponse{Stats: *stats, Messages: messages}

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return response.Ok(c, data)
	}

	var buf bytes.Buffer
	if err := adminTemplate.Execute(&buf, data); err != nil {
		logger.Errorf("Failed to render admin listing: %v", err)
		return response.InternalServerErrorWithMessage(c, "failed to render listing")
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// DeleteMessage godoc
// @Summary Permanently delete a message
// @Tags admin
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/messages/{id} [delete]
func (h *AdminHandler) DeleteMessage(c echo.Context) error {
	id, err := parseMessageID(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	actor := "unknown"
	if session := middlewares.SessionFrom(c); session != nil {
		actor = session.Username
	}
	logger.Infof("Message %d permanently deleted by %s", id, actor)

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
