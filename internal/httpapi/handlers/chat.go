package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/chat"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/httpapi/middleware"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

type createSessionReq struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

func (h *Handler) CreateChatSession(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	var req createSessionReq
	_ = c.ShouldBindJSON(&req) // allow empty {}

	lang := pipelineLang(c, req.Language)
	if lang == "" {
		lang = middleware.Lang(c)
	}
	sess, err := h.Chat.CreateSession(c.Request.Context(), uid, chat.CreateSessionInput{
		Title:    req.Title,
		Language: lang,
		Provider: req.Provider,
		Model:    req.Model,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, sess)
}

func (h *Handler) ListChatSessions(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	sessions, err := h.Chat.ListSessions(c.Request.Context(), uid, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, gin.H{"sessions": sessions})
}

type updateSessionReq struct {
	Language string `json:"language" binding:"required"`
}

func (h *Handler) UpdateChatSession(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req updateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	lang, err := i18n.Parse(req.Language)
	if err != nil {
		badRequest(c)
		return
	}
	sess, err := h.Chat.SetLanguage(c.Request.Context(), uid, c.Param("session_id"), lang)
	if err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, sess)
}

func (h *Handler) ListChatMessages(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")
	limit, _ := strconv.Atoi(c.Query("limit"))
	beforeID := strings.TrimSpace(c.Query("before_id"))

	msgs, err := h.Chat.ListMessages(c.Request.Context(), uid, sessionID, limit, beforeID)
	if err != nil {
		writeError(c, err)
		return
	}

	// messages are oldest first; the next page is older than the first one
	nextBeforeID := ""
	if len(msgs) > 0 {
		nextBeforeID = msgs[0].ID
	}
	common.OK(c, gin.H{
		"messages":       msgs,
		"next_before_id": nextBeforeID,
	})
}

type askReq struct {
	SessionID  string `json:"session_id" binding:"required"`
	Message    string `json:"message" binding:"required"`
	Language   string `json:"language"`
	DocumentID string `json:"document_id"`
}

// askInput attaches the text of an owned document as background.
func (h *Handler) askInput(c *gin.Context, uid string, req askReq) (chat.AskInput, error) {
	in := chat.AskInput{
		SessionID:  req.SessionID,
		Question:   req.Message,
		Lang:       pipelineLang(c, req.Language),
		DocumentID: strings.TrimSpace(req.DocumentID),
	}
	if in.DocumentID == "" {
		return in, nil
	}
	text, err := h.Docs.Text(c.Request.Context(), uid, in.DocumentID, ocrLang(c, in.Lang))
	if err != nil {
		return in, err
	}
	in.DocumentText = text
	return in, nil
}

// SendChatMessage answers a legal-aid question.
func (h *Handler) SendChatMessage(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req askReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	in, err := h.askInput(c, uid, req)
	if err != nil {
		writeError(c, err)
		return
	}
	res, err := h.Chat.Ask(c.Request.Context(), uid, in)
	if err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, gin.H{
		"session_id": req.SessionID,
		"reply":      res.AssistantMessage.Content,
		"message_id": res.AssistantMessage.ID,
	})
}

func (h *Handler) SendChatMessageStream(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req askReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	in, err := h.askInput(c, uid, req)
	if err != nil {
		writeError(c, err)
		return
	}
	events, err := h.Chat.AskStream(c.Request.Context(), uid, in)
	if err != nil {
		writeError(c, err)
		return
	}
	streamEvents(c, events)
}

func (h *Handler) SendChatMessageAsync(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	idempoKey, ok := h.asyncPreflight(c)
	if !ok {
		return
	}
	var req askReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	in, err := h.askInput(c, uid, req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.enqueue(c, uid, chat.JobInput{
		SessionID:      in.SessionID,
		Kind:           chat.JobLegalAid,
		CaseText:       in.DocumentText,
		Question:       in.Question,
		Lang:           in.Lang,
		DocumentID:     in.DocumentID,
		IdempotencyKey: idempoKey,
	})
}
