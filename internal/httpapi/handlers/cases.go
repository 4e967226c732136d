package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/chat"
	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/document"
	"github.com/suPer8Hu/legal-assistant/internal/httpapi/middleware"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

var (
	errInvalidRequest     = errors.New("invalid request")
	errEnqueueUnavailable = errors.New("job queue not configured")
	errEnqueueFailed      = errors.New("enqueue failed")
)

type caseReq struct {
	SessionID  string `json:"session_id" form:"session_id" binding:"required"`
	CaseText   string `json:"case_text" form:"case_text"`
	Question   string `json:"question" form:"question"`
	Language   string `json:"language" form:"language"`
	DocumentID string `json:"document_id" form:"document_id"`
}

// ocrLang is the language used to read uploaded images.
func ocrLang(c *gin.Context, requested i18n.Lang) i18n.Lang {
	if requested.Valid() {
		return requested
	}
	return middleware.Lang(c)
}

// caseInput accepts JSON with case_text or document_id, or a multipart form
// with a file field. Uploaded files are ingested before classification.
func (h *Handler) caseInput(c *gin.Context, uid string) (chat.CaseInput, error) {
	var req caseReq
	var file *multipart.FileHeader

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, document.MaxUploadSize+1<<20)
		if err := c.ShouldBind(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return chat.CaseInput{}, document.ErrFileTooLarge
			}
			return chat.CaseInput{}, errInvalidRequest
		}
		fh, err := c.FormFile("file")
		switch {
		case err == nil:
			file = fh
		case errors.Is(err, http.ErrMissingFile):
		default:
			return chat.CaseInput{}, errInvalidRequest
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		return chat.CaseInput{}, errInvalidRequest
	}

	ctx := c.Request.Context()
	in := chat.CaseInput{
		SessionID:  req.SessionID,
		CaseText:   req.CaseText,
		Question:   req.Question,
		Lang:       pipelineLang(c, req.Language),
		DocumentID: strings.TrimSpace(req.DocumentID),
	}
	// check ownership before storing anything
	if _, err := h.Chat.GetSession(ctx, uid, in.SessionID); err != nil {
		return in, err
	}

	switch {
	case file != nil:
		if file.Size > document.MaxUploadSize {
			return in, document.ErrFileTooLarge
		}
		f, err := file.Open()
		if err != nil {
			return in, err
		}
		defer f.Close()

		res, err := h.Docs.Ingest(ctx, document.IngestRequest{
			UserID:      uid,
			FileName:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Reader:      f,
			Lang:        ocrLang(c, in.Lang),
		})
		if err != nil {
			return in, err
		}
		in.CaseText = res.Text
		in.DocumentID = res.Document.ID

	case strings.TrimSpace(in.CaseText) == "" && in.DocumentID != "":
		text, err := h.Docs.Text(ctx, uid, in.DocumentID, ocrLang(c, in.Lang))
		if err != nil {
			return in, err
		}
		in.CaseText = text
	}
	return in, nil
}

func predictionJSON(p *classifier.Prediction, lang i18n.Lang) gin.H {
	if p == nil {
		return nil
	}
	return gin.H{
		"label":      p.Label,
		"label_text": p.Label.Localized(lang),
		"confidence": p.Confidence,
	}
}

func (h *Handler) AnalyzeCase(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	in, err := h.caseInput(c, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	res, err := h.Chat.AnalyzeCase(c.Request.Context(), uid, in)
	if err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, gin.H{
		"session_id":  in.SessionID,
		"prediction":  predictionJSON(res.Prediction, middleware.Lang(c)),
		"reply":       res.AssistantMessage.Content,
		"message_id":  res.AssistantMessage.ID,
		"document_id": res.AssistantMessage.DocumentID,
	})
}

func (h *Handler) AnalyzeCaseStream(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	in, err := h.caseInput(c, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	events, err := h.Chat.AnalyzeCaseStream(c.Request.Context(), uid, in)
	if err != nil {
		writeError(c, err)
		return
	}
	streamEvents(c, events)
}

// AnalyzeCaseAsync queues the analysis. A repeated Idempotency-Key returns
// the first job without publishing it again.
func (h *Handler) AnalyzeCaseAsync(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	idempoKey, ok := h.asyncPreflight(c)
	if !ok {
		return
	}
	// a retried request must not ingest its upload a second time
	if h.replayJob(c, uid, idempoKey) {
		return
	}

	in, err := h.caseInput(c, uid)
	if err != nil {
		writeError(c, err)
		return
	}

	h.enqueue(c, uid, chat.JobInput{
		SessionID:      in.SessionID,
		Kind:           chat.JobCaseAnalysis,
		CaseText:       in.CaseText,
		Question:       in.Question,
		Lang:           in.Lang,
		DocumentID:     in.DocumentID,
		IdempotencyKey: idempoKey,
	})
}

// replayJob answers with the job already stored under key, if any.
func (h *Handler) replayJob(c *gin.Context, uid, key string) bool {
	if key == "" {
		return false
	}
	job, err := h.Chat.FindJobByKey(c.Request.Context(), uid, key)
	switch {
	case err == nil:
		accepted(c, job, false)
		return true
	case errors.Is(err, chat.ErrJobNotFound):
		return false
	default:
		writeError(c, err)
		return true
	}
}

func accepted(c *gin.Context, job *chat.Job, created bool) {
	c.JSON(http.StatusAccepted, gin.H{"code": 0, "message": "ok", "data": gin.H{
		"job_id":  job.ID,
		"status":  job.Status,
		"created": created,
	}})
}

func (h *Handler) enqueue(c *gin.Context, uid string, in chat.JobInput) {
	ctx := c.Request.Context()
	job, created, err := h.Chat.EnqueueJob(ctx, uid, in)
	if err != nil {
		writeError(c, err)
		return
	}

	// Enqueue only when a new job was created
	if created {
		if err := h.Jobs.PublishJob(ctx, job.ID); err != nil {
			writeError(c, errors.Join(errEnqueueFailed, err))
			return
		}
	}
	accepted(c, job, created)
}

// asyncPreflight checks the broker and reads the Idempotency-Key header.
func (h *Handler) asyncPreflight(c *gin.Context) (string, bool) {
	if h.Jobs == nil {
		writeError(c, errEnqueueUnavailable)
		return "", false
	}
	key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(key) > 128 {
		badRequest(c)
		return "", false
	}
	return key, true
}
