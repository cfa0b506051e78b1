//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

package handler

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"standup-relay/internal/apierrors"
	"standup-relay/internal/clients/elevenlabs"
	"standup-relay/internal/config"
	"standup-relay/internal/observability"
	"standup-relay/internal/voicecall/processor"

	"github.com/gin-gonic/gin"
)

//go:embed templates/call.html
var templateFS embed.FS

var callPage = template.Must(template.ParseFS(templateFS, "templates/call.html"))

const missingUserIDPage = "<h2>Missing user_id</h2>"

// CallInitiator prepares standup calls
type CallInitiator interface {
	PrepareCall(ctx context.Context, params processor.PrepareCallParams) (processor.CallSession, error)
	StartStandup(ctx context.Context, userID, token string) (processor.CallSession, error)
}

type Handler struct {
	initiator CallInitiator
	logger    *observability.Logger
}

func New(initiator CallInitiator, logger *observability.Logger) Handler {
	return Handler{
		initiator: initiator,
		logger:    logger,
	}
}

// handleError maps processor errors to appropriate API error responses
func (h *Handler) handleError(c *gin.Context, err error) {
	var apiErr *elevenlabs.APIError
	switch {
	case errors.Is(err, processor.ErrMissingUserID):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "user_id is required")
	case errors.Is(err, processor.ErrInvalidLink):
		apierrors.Unauthorized(c, "invalid or expired call link")
	case errors.Is(err, processor.ErrNotConfigured):
		apierrors.NotConfigured(c, err.Error())
	case errors.Is(err, processor.ErrSessionStore):
		apierrors.UpstreamError(c, http.StatusBadGateway, "failed to record standup session", err)
	case errors.As(err, &apiErr):
		apierrors.UpstreamError(c, apiErr.StatusCode, "ElevenLabs API error: "+apiErr.Body, err)
	case errors.Is(err, elevenlabs.ErrMissingSignedURL):
		apierrors.UpstreamError(c, http.StatusBadGateway, "ElevenLabs response missing signed_url", err)
	case errors.Is(err, processor.ErrVendor):
		apierrors.UpstreamError(c, http.StatusBadGateway, "failed to reach ElevenLabs", err)
	default:
		apierrors.InternalError(c, err)
	}
}

type StartStandupRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Token  string `json:"token"`
}

type StartStandupResponse struct {
	SignedURL string `json:"signed_url"`
	AgentID   string `json:"agent_id"`
}

type callPageData struct {
	UserName string
	AgentID  string
	// SignedURL is a wss:// endpoint, which the default URL filter rejects.
	SignedURL            template.URL
	DynamicVariablesJSON string
}

// HandleCallPage handles GET /call
func (h *Handler) HandleCallPage(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Query("user_id")
	if userID == "" {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(missingUserIDPage))
		return
	}

	session, err := h.initiator.PrepareCall(ctx, processor.PrepareCallParams{
		UserID:   userID,
		UserName: c.Query("user_name"),
		Token:    c.Query("token"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	switch session.Mode {
	case config.CallModeRedirect:
		c.Redirect(http.StatusFound, session.RedirectURL)
	case config.CallModeJSON:
		c.JSON(http.StatusOK, StartStandupResponse{SignedURL: session.SignedURL, AgentID: session.AgentID})
	default:
		h.renderCallPage(c, session)
	}
}

func (h *Handler) renderCallPage(c *gin.Context, session processor.CallSession) {
	ctx := c.Request.Context()

	vars, err := json.Marshal(session.DynamicVariables)
	if err != nil {
		h.logger.Error(ctx, "failed to marshal dynamic variables", err)
		apierrors.InternalError(c, err)
		return
	}

	var buf bytes.Buffer
	err = callPage.Execute(&buf, callPageData{
		UserName:             session.DynamicVariables.UserName,
		AgentID:              session.AgentID,
		SignedURL:            template.URL(session.SignedURL),
		DynamicVariablesJSON: string(vars),
	})
	if err != nil {
		h.logger.Error(ctx, "failed to render call page", err)
		apierrors.InternalError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// HandleStartStandup handles POST /api/standup/start
func (h *Handler) HandleStartStandup(c *gin.Context) {
	ctx := c.Request.Context()

	var req StartStandupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	session, err := h.initiator.StartStandup(ctx, req.UserID, req.Token)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, StartStandupResponse{
		SignedURL: session.SignedURL,
		AgentID:   session.AgentID,
	})
}
