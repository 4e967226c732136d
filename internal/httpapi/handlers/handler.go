package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/ai"
	"github.com/suPer8Hu/legal-assistant/internal/auth"
	"github.com/suPer8Hu/legal-assistant/internal/chat"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/document"
	"github.com/suPer8Hu/legal-assistant/internal/httpapi/middleware"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

// JobPublisher hands a stored job to the worker queue.
type JobPublisher interface {
	PublishJob(ctx context.Context, jobID string) error
}

type Handler struct {
	Auth     *auth.Service
	Chat     *chat.Service
	Docs     *document.Service
	Registry *ai.Registry
	// Jobs is nil when no broker is configured; async endpoints then fail.
	Jobs JobPublisher
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}

func (h *Handler) ListProviders(c *gin.Context) {
	common.OK(c, gin.H{"providers": h.Registry.Names()})
}

// currentUser aborts with 401 when the auth middleware did not run.
func currentUser(c *gin.Context) (string, bool) {
	uid, ok := middleware.UserID(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, i18n.T(middleware.Lang(c), i18n.ErrUnauthorized))
	}
	return uid, ok
}

// pipelineLang is the body's language, else an explicit request language,
// else empty so the session preference applies.
func pipelineLang(c *gin.Context, body string) i18n.Lang {
	if l, err := i18n.Parse(body); err == nil {
		return l
	}
	if l, ok := middleware.RequestedLang(c); ok {
		return l
	}
	return ""
}
