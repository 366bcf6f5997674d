package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/adapter"
	"github.com/nfrund/botsamples/internal/bot"
	"github.com/nfrund/botsamples/internal/middleware"
)

// Processor runs a bot turn for an inbound activity.
type Processor interface {
	ProcessActivity(ctx context.Context, a *activity.Activity, authHeader string, b bot.Bot) (*activity.InvokeResponse, error)
}

// MessagesHandler receives activities from the channel on /api/messages.
type MessagesHandler struct {
	processor Processor
	bot       bot.Bot
}

// NewMessagesHandler creates a handler that runs b for every activity.
func NewMessagesHandler(processor Processor, b bot.Bot) *MessagesHandler {
	return &MessagesHandler{processor: processor, bot: b}
}

// Post handles POST /api/messages. Content-Type is checked by
// middleware.RequireJSON.
func (h *MessagesHandler) Post(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var a activity.Activity
	if err := c.Bind(&a); err != nil {
		logger.Warn("Failed to decode activity", "error", err)
		return newHTTPError(http.StatusBadRequest, CodeBadRequest, "invalid activity JSON")
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	resp, err := h.processor.ProcessActivity(c.Request().Context(), &a, authHeader, h.bot)
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		logger.Warn("Rejected unauthenticated activity", "error", err)
		return newHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	case errors.Is(err, activity.ErrInvalidActivity):
		logger.Warn("Rejected invalid activity", "error", err)
		return newHTTPError(http.StatusBadRequest, CodeInvalidActivity, err.Error())
	case err != nil:
		return err
	}

	if resp == nil {
		return c.NoContent(http.StatusOK)
	}
	if resp.Body == nil {
		return c.NoContent(resp.Status)
	}
	return c.JSON(resp.Status, resp.Body)
}
