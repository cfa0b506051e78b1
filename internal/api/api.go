package api

import (
	"net/http"

	notifierHandler "standup-relay/internal/notifier/handler"
	voiceCallHandler "standup-relay/internal/voicecall/handler"
	webhookHandler "standup-relay/internal/webhooks/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	voiceCallHandler voiceCallHandler.Handler
	webhookHandler   *webhookHandler.Handler
	notifierHandler  *notifierHandler.Handler
}

func New(
	router *gin.RouterGroup,
	voiceCallHandler voiceCallHandler.Handler,
	webhookHandler *webhookHandler.Handler,
	notifierHandler *notifierHandler.Handler,
) API {
	return API{
		router:           router,
		voiceCallHandler: voiceCallHandler,
		webhookHandler:   webhookHandler,
		notifierHandler:  notifierHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/call", a.voiceCallHandler.HandleCallPage)

	apiGroup := a.router.Group("/api")
	{
		apiGroup.POST("/standup/start", a.voiceCallHandler.HandleStartStandup)
		apiGroup.POST("/webhooks/elevenlabs", a.webhookHandler.HandleElevenLabsWebhook)
		apiGroup.POST("/slack-notify", a.notifierHandler.HandleNotify)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
