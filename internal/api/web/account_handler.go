package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/djangocon/conference-site/internal/auth"
	"github.com/djangocon/conference-site/internal/service"
)

// LoginRequest принимает форму или JSON.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required,max=150"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginResponse — краткие данные о вошедшем пользователе.
type LoginResponse struct {
	Username    string    `json:"username"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	Expires     time.Time `json:"expires"`
}

type accountHandler struct {
	identity     *service.IdentityService
	sessions     *auth.Sessions
	secureCookie bool
	log          *slog.Logger
}

func newAccountHandler(identity *service.IdentityService, sessions *auth.Sessions, secureCookie bool, log *slog.Logger) *accountHandler {
	return &accountHandler{identity: identity, sessions: sessions, secureCookie: secureCookie, log: log}
}

func (h *accountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid login data: "+err.Error())
		return
	}

	u, err := h.identity.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.log.InfoContext(c.Request.Context(), "login rejected", slog.String("username", req.Username))
		respondServiceError(c, h.log, err)
		return
	}

	token, expires, err := h.sessions.Issue(u)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, LoginResponse{
		Username:    u.Username,
		IsStaff:     u.IsStaffMember(),
		IsSuperuser: u.IsSuperuser,
		Expires:     expires.UTC(),
	})
}

func (h *accountHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
