package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/httpapi/handlers"
	"github.com/suPer8Hu/legal-assistant/internal/httpapi/middleware"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.MaxMultipartMemory = 8 << 20
	r.Use(middleware.RequestID())
	r.Use(middleware.Locale())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, i18n.T(middleware.Lang(c), i18n.ErrNotFound))
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, i18n.T(middleware.Lang(c), i18n.ErrMethodNotAllowed))
	})

	r.GET("/ping", h.Ping)
	r.GET("/i18n/languages", h.ListLanguages)
	r.GET("/i18n/:lang", h.GetStrings)

	// register + auth
	r.POST("/users", h.CreateUser)
	r.POST("/login", h.Login)

	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(h.Auth))
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", h.Me)
	authGroup.PUT("/me/password", h.ChangePassword)
	authGroup.GET("/ai/providers", h.ListProviders)

	// Chat (JWT required)
	authGroup.POST("/chat/sessions", h.CreateChatSession)
	authGroup.GET("/chat/sessions", h.ListChatSessions)
	authGroup.PATCH("/chat/sessions/:session_id", h.UpdateChatSession)
	authGroup.GET("/chat/sessions/:session_id/messages", h.ListChatMessages)
	authGroup.POST("/chat/messages", h.SendChatMessage)
	authGroup.POST("/chat/messages/stream", h.SendChatMessageStream)
	authGroup.POST("/chat/messages/async", h.SendChatMessageAsync)

	// Case analysis
	authGroup.POST("/cases/analyze", h.AnalyzeCase)
	authGroup.POST("/cases/analyze/stream", h.AnalyzeCaseStream)
	authGroup.POST("/cases/analyze/async", h.AnalyzeCaseAsync)

	authGroup.GET("/jobs/:job_id", h.GetJob)
	authGroup.GET("/documents/:document_id", h.GetDocument)
	return r
}
