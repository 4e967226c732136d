package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suPer8Hu/legal-assistant/internal/auth"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

const (
	RequestIDKey = "request_id"
	UserIDKey    = "user_id"
	ClaimsKey    = "auth_claims"
	LangKey      = "lang"
	// ExplicitLangKey is set when the caller picked a language with ?lang or
	// X-Language rather than a browser Accept-Language.
	ExplicitLangKey = "lang_explicit"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(RequestIDKey),
			"user_id", c.GetString(UserIDKey),
		)
	}
}

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic recovered in handler",
					"panic", r,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(RequestIDKey),
					"stack", string(debug.Stack()),
				)
				if !c.Writer.Written() {
					common.Abort(c, http.StatusInternalServerError, 50000, i18n.T(Lang(c), i18n.ErrInternal))
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// Locale resolves the response language from ?lang, X-Language and then
// Accept-Language, defaulting to English.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Default
		explicit := false
		for _, v := range []string{c.Query("lang"), c.GetHeader("X-Language")} {
			if l, err := i18n.Parse(v); err == nil {
				lang, explicit = l, true
				break
			}
		}
		if !explicit {
			if l, ok := i18n.FromAcceptLanguage(c.GetHeader("Accept-Language")); ok {
				lang = l
			}
		}
		c.Set(LangKey, lang)
		c.Set(ExplicitLangKey, explicit)
		c.Header("Content-Language", string(lang))
		c.Next()
	}
}

func Lang(c *gin.Context) i18n.Lang {
	if v, ok := c.Get(LangKey); ok {
		if l, ok := v.(i18n.Lang); ok {
			return l
		}
	}
	return i18n.Default
}

// RequestedLang is the explicitly requested language, if any.
func RequestedLang(c *gin.Context) (i18n.Lang, bool) {
	if !c.GetBool(ExplicitLangKey) {
		return "", false
	}
	return Lang(c), true
}

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

func AuthRequired(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := Lang(c)
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			common.Abort(c, http.StatusUnauthorized, 40101, i18n.T(lang, i18n.ErrUnauthorized))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

		claims, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			if common.IsConnectivity(err) {
				slog.WarnContext(c.Request.Context(), "session lookup failed", "err", err)
				common.Abort(c, http.StatusServiceUnavailable, 50303, i18n.T(lang, i18n.ErrDatabaseUnavailable))
				return
			}
			common.Abort(c, http.StatusUnauthorized, 40101, i18n.T(lang, i18n.ErrUnauthorized))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}

func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
