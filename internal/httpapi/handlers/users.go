package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/httpapi/middleware"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

type credentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUser registers the account and logs it in.
func (h *Handler) CreateUser(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	ctx := c.Request.Context()
	if _, err := h.Auth.Register(ctx, req.Username, req.Password); err != nil {
		writeError(c, err)
		return
	}
	sess, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "ok", "data": sess})
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	sess, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, sess)
}

func (h *Handler) Logout(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, i18n.T(middleware.Lang(c), i18n.ErrUnauthorized))
		return
	}
	if err := h.Auth.Logout(c.Request.Context(), claims); err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, gin.H{"logged_out": true})
}

func (h *Handler) Me(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	u, err := h.Auth.Me(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, u)
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.Auth.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	common.OK(c, gin.H{"changed": true})
}
