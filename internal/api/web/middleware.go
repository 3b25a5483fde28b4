package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/djangocon/conference-site/internal/auth"
	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/service"
)

const userKey = "user"

// CurrentUser возвращает пользователя запроса; nil — аноним.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

// sessionToken берёт токен из cookie или заголовка Authorization: Bearer.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// LoadUser подгружает пользователя сессии. Запросы без сессии или с
// недействительным токеном проходят как анонимные.
func LoadUser(sessions *auth.Sessions, identity *service.IdentityService, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := sessions.Parse(token)
		if err != nil {
			log.DebugContext(c.Request.Context(), "ignore session", slog.Any("err", err))
			c.Next()
			return
		}

		u, err := identity.CurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			log.DebugContext(c.Request.Context(), "session user unavailable",
				slog.Uint64("user_id", uint64(claims.UserID)),
				slog.Any("err", err),
			)
			c.Next()
			return
		}

		c.Set(userKey, u)
		c.Next()
	}
}

// RequireStaff пропускает только организаторов.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			abortWithError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if !u.IsStaffMember() {
			abortWithError(c, http.StatusForbidden, "staff only")
			return
		}
		c.Next()
	}
}

// RequireSuperuser пропускает только суперпользователей.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			abortWithError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if !u.IsActive || !u.IsSuperuser {
			abortWithError(c, http.StatusForbidden, "superuser only")
			return
		}
		c.Next()
	}
}

// BasicAuth закрывает весь сайт паролем. Без логина или пароля — пропускает всё.
func BasicAuth(user, pass, realm string) gin.HandlerFunc {
	if user == "" || pass == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return gin.BasicAuthForRealm(gin.Accounts{user: pass}, realm)
}

// AccessLog пишет строку лога на каждый запрос.
func AccessLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(c.Request.Context(), level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Int("size", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}
