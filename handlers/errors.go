package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
	"github.com/onurcolak/listener-text-service/pkg/response"
)

// writeError maps the domain error taxonomy onto HTTP responses.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, domain.ErrUnauthorized.Error())
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, err)
	case errors.Is(err, domain.ErrDelivery):
		return response.InternalServerErrorWithMessage(c, "failed to send reply")
	default:
		logger.Errorf("%s %s failed: %v", c.Request().Method, c.Path(), err)
		return response.InternalServerErrorWithMessage(c, "internal server error")
	}
}

func parseMessageID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid message id")
	}
	return id, nil
}
