//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

package handler

import (
	"context"
	"errors"
	"net/http"

	"standup-relay/internal/apierrors"
	"standup-relay/internal/notifier/processor"
	"standup-relay/internal/observability"

	"github.com/gin-gonic/gin"
)

// Relayer forwards ad-hoc messages to chat
type Relayer interface {
	Relay(ctx context.Context, message string) error
}

type Handler struct {
	relayer Relayer
	logger  *observability.Logger
}

func New(relayer Relayer, logger *observability.Logger) *Handler {
	return &Handler{relayer: relayer, logger: logger}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrEmptyMessage):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "message is required")
	case errors.Is(err, processor.ErrNotConfigured):
		apierrors.NotConfigured(c, "SLACK_WEBHOOK_URL not configured")
	default:
		apierrors.InternalError(c, err)
	}
}

type NotifyRequest struct {
	Message string `json:"message" binding:"required"`
}

// HandleNotify handles POST /api/slack-notify
func (h *Handler) HandleNotify(c *gin.Context) {
	ctx := c.Request.Context()

	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	if err := h.relayer.Relay(ctx, req.Message); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
