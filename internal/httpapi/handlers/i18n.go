package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

func (h *Handler) ListLanguages(c *gin.Context) {
	out := make([]gin.H, 0, len(i18n.Languages()))
	for _, l := range i18n.Languages() {
		out = append(out, gin.H{"code": l, "name": l.Name(), "native_name": l.NativeName()})
	}
	common.OK(c, gin.H{"languages": out, "default": i18n.Default})
}

func (h *Handler) GetStrings(c *gin.Context) {
	lang, err := i18n.Parse(c.Param("lang"))
	if err != nil {
		writeError(c, common.ErrNotFound)
		return
	}
	common.OK(c, gin.H{"lang": lang, "strings": i18n.Strings(lang)})
}
