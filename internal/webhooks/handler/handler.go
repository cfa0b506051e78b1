//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"standup-relay/internal/apierrors"
	"standup-relay/internal/clients/elevenlabs"
	"standup-relay/internal/observability"
	"standup-relay/internal/webhooks/processor"

	"github.com/gin-gonic/gin"
)

// maxPayloadSize bounds webhook bodies; transcripts are fetched separately.
const maxPayloadSize = 1 << 20

// ConversationHandler processes post-call events
type ConversationHandler interface {
	HandleConversationEnded(ctx context.Context, payload []byte) (processor.Result, error)
}

// Handler handles vendor webhook HTTP requests
type Handler struct {
	processor ConversationHandler
	secret    string
	now       func() time.Time
	logger    *observability.Logger
}

// New creates a new Handler. An empty secret disables signature checks.
func New(processor ConversationHandler, secret string, now func() time.Time, logger *observability.Logger) *Handler {
	return &Handler{
		processor: processor,
		secret:    secret,
		now:       now,
		logger:    logger,
	}
}

// handleError maps processor errors to appropriate API error responses
func (h *Handler) handleError(c *gin.Context, err error) {
	var apiErr *elevenlabs.APIError
	switch {
	case errors.Is(err, processor.ErrInvalidPayload):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "invalid webhook payload")
	case errors.Is(err, processor.ErrMissingConversationID):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Missing conversation_id in webhook payload")
	case errors.Is(err, processor.ErrSessionNotFound):
		apierrors.NotFound(c, "No matching standup session found for today")
	case errors.As(err, &apiErr):
		apierrors.UpstreamError(c, apiErr.StatusCode, "Failed to fetch conversation: "+apiErr.Body, err)
	case errors.Is(err, processor.ErrVendor):
		apierrors.UpstreamError(c, http.StatusBadGateway, "Failed to fetch conversation", err)
	case errors.Is(err, processor.ErrSessionLookup):
		apierrors.UpstreamError(c, http.StatusBadGateway, "failed to look up standup session", err)
	case errors.Is(err, processor.ErrMarkCompleted):
		apierrors.UpstreamError(c, http.StatusBadGateway, "failed to mark standup completed", err)
	default:
		apierrors.InternalError(c, err)
	}
}

type WebhookResponse struct {
	Status         string `json:"status"`
	ConversationID string `json:"conversation_id"`
}

// HandleElevenLabsWebhook handles POST /api/webhooks/elevenlabs
func (h *Handler) HandleElevenLabsWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadSize+1))
	if err != nil {
		h.logger.Error(ctx, "failed to read webhook body", err)
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "failed to read request body")
		return
	}
	if len(payload) > maxPayloadSize {
		h.logger.Warn(ctx, "rejected oversize webhook", observability.Field{Key: "limit_bytes", Value: maxPayloadSize})
		apierrors.PayloadTooLarge(c, "webhook payload too large")
		return
	}

	if h.secret != "" {
		if err := elevenlabs.VerifySignature(payload, c.GetHeader(elevenlabs.SignatureHeader), h.secret, h.now()); err != nil {
			h.logger.Warn(ctx, "rejected webhook signature", observability.Field{Key: "reason", Value: err.Error()})
			apierrors.Unauthorized(c, "invalid webhook signature")
			return
		}
	}

	result, err := h.processor.HandleConversationEnded(ctx, payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := "ok"
	if result.Ignored {
		status = "ignored"
	}
	c.JSON(http.StatusOK, WebhookResponse{
		Status:         status,
		ConversationID: result.ConversationID,
	})
}
