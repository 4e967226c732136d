package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/auth"
	"github.com/suPer8Hu/legal-assistant/internal/chat"
	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/document"
	"github.com/suPer8Hu/legal-assistant/internal/httpapi/middleware"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
	"github.com/suPer8Hu/legal-assistant/internal/ingest"
	"github.com/suPer8Hu/legal-assistant/internal/prompt"
)

type apiError struct {
	status int
	code   int
	key    i18n.Key
}

// errorTable is checked in order; the first sentinel that matches wins.
var errorTable = []struct {
	target error
	apiError
}{
	{errInvalidRequest, apiError{http.StatusBadRequest, 40001, i18n.ErrInvalidRequest}},
	{errEnqueueUnavailable, apiError{http.StatusServiceUnavailable, 50304, i18n.ErrEnqueue}},
	{errEnqueueFailed, apiError{http.StatusInternalServerError, 50002, i18n.ErrEnqueue}},
	{auth.ErrInvalidCredential, apiError{http.StatusUnauthorized, 40102, i18n.ErrInvalidCredentials}},
	{auth.ErrInvalidToken, apiError{http.StatusUnauthorized, 40101, i18n.ErrUnauthorized}},
	{auth.ErrDuplicateUser, apiError{http.StatusConflict, 40901, i18n.ErrDuplicateUser}},
	{auth.ErrInvalidInput, apiError{http.StatusUnprocessableEntity, 42201, i18n.ErrWeakCredentials}},
	{classifier.ErrEmptyInput, apiError{http.StatusUnprocessableEntity, 42202, i18n.ErrEmptyCaseText}},
	{prompt.ErrEmptyRequest, apiError{http.StatusUnprocessableEntity, 42203, i18n.ErrInvalidRequest}},
	{chat.ErrUnknownProvider, apiError{http.StatusBadRequest, 40002, i18n.ErrInvalidRequest}},
	{chat.ErrSessionNotFound, apiError{http.StatusNotFound, 40401, i18n.ErrSessionNotFound}},
	{chat.ErrJobNotFound, apiError{http.StatusNotFound, 40402, i18n.ErrJobNotFound}},
	{document.ErrDocumentNotFound, apiError{http.StatusNotFound, 40403, i18n.ErrDocumentNotFound}},
	{document.ErrFileTooLarge, apiError{http.StatusRequestEntityTooLarge, 41301, i18n.ErrFileTooLarge}},
	{ingest.ErrUnsupportedFormat, apiError{http.StatusUnsupportedMediaType, 41501, i18n.ErrUnsupportedFormat}},
	{ingest.ErrUnreadableDocument, apiError{http.StatusUnprocessableEntity, 42204, i18n.ErrUnreadableDocument}},
	{chat.ErrGeneration, apiError{http.StatusBadGateway, 50201, i18n.ErrGeneration}},
	{classifier.ErrModelNotLoaded, apiError{http.StatusServiceUnavailable, 50301, i18n.ErrModelNotLoaded}},
	{ingest.ErrOCRUnavailable, apiError{http.StatusServiceUnavailable, 50302, i18n.ErrOCRUnavailable}},
	{common.ErrDatabaseUnavailable, apiError{http.StatusServiceUnavailable, 50303, i18n.ErrDatabaseUnavailable}},
	{common.ErrNotFound, apiError{http.StatusNotFound, 40400, i18n.ErrNotFound}},
}

var internalError = apiError{http.StatusInternalServerError, 50001, i18n.ErrInternal}

func classify(err error) apiError {
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return e.apiError
		}
	}
	return internalError
}

// writeError answers with the localized message for err. Unmapped errors are
// logged and reported as internal.
func writeError(c *gin.Context, err error) {
	e := classify(err)
	if e.status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"request_id", c.GetString(middleware.RequestIDKey),
			"err", err,
		)
	}
	common.Fail(c, e.status, e.code, i18n.T(middleware.Lang(c), e.key))
}

func badRequest(c *gin.Context) {
	common.Fail(c, http.StatusBadRequest, 40001, i18n.T(middleware.Lang(c), i18n.ErrInvalidRequest))
}
