package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/common"
)

// GetDocument returns metadata, plus the chunks with ?chunks=true.
func (h *Handler) GetDocument(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	id := c.Param("document_id")

	d, err := h.Docs.Get(ctx, uid, id)
	if err != nil {
		writeError(c, err)
		return
	}
	out := gin.H{"document": d}
	if c.Query("chunks") == "true" {
		chunks, err := h.Docs.Chunks(ctx, uid, id)
		if err != nil {
			writeError(c, err)
			return
		}
		out["chunks"] = chunks
	}
	common.OK(c, out)
}
