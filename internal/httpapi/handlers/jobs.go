package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/common"
)

func (h *Handler) GetJob(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	j, err := h.Chat.GetJob(c.Request.Context(), uid, c.Param("job_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, gin.H{"job": j})
}
