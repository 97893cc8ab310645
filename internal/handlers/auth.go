package handlers

import (
	"net/http"

	"github.com/gigflow/backend/internal/config"
	"github.com/gigflow/backend/internal/middleware"
	"github.com/gigflow/backend/internal/services"
	"github.com/gigflow/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
	cookieAge   int
	secure      bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, &cfg.JWT),
		cookieAge:   cfg.JWT.ExpireHour * 3600,
		secure:      cfg.Server.Mode == "release",
	}
}

// setSessionCookie stores the session token as an HttpOnly cookie.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, h.cookieAge, "/", "", h.secure, true)
}

// Register creates a new account and logs the user in.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "please provide name, email, and password")
		return
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	response.Created(c, "account created successfully", gin.H{"user": result.User})
}

// Login authenticates a user and sets the session cookie.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "please provide email and password")
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	response.SuccessMessage(c, "logged in successfully", gin.H{"user": result.User})
}

// Logout clears the session cookie.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secure, true)
	response.SuccessMessage(c, "logged out successfully", nil)
}

// Me returns the current authenticated user.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"user": user})
}
