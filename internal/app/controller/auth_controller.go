package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/service"
	apperrors "github.com/ecommercio/storefront-backend/internal/errors"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService   service.AuthService
	cookieName    string
	cookieMaxAge  int
	secureCookies bool
}

func NewAuthController(authService service.AuthService, cookieName string, sessionTTL time.Duration, secureCookies bool) *AuthController {
	return &AuthController{
		authService:   authService,
		cookieName:    cookieName,
		cookieMaxAge:  int(sessionTTL.Seconds()),
		secureCookies: secureCookies,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=40"`
	Password string `json:"password" binding:"required,min=4"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// setSessionCookie attaches the session token as an HttpOnly cookie. The
// token never appears in a response body.
func (ctrl *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctrl.cookieName, token, ctrl.cookieMaxAge, "/", "", ctrl.secureCookies, true)
}

func (ctrl *AuthController) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctrl.cookieName, "", -1, "/", "", ctrl.secureCookies, true)
}

func sessionUserJSON(user *model.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	}
}

// Register handles account creation
// POST /api/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Missing or invalid username or password")
		return
	}

	user, token, err := ctrl.authService.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrUsernameAlreadyExists) {
			apperrors.Conflict(c, apperrors.AuthUsernameExists, "Username already exists")
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"username": req.Username,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register user")
		return
	}

	ctrl.setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"user": sessionUserJSON(user),
	})
}

// Login handles sign-in
// POST /api/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Missing username or password")
		return
	}

	user, token, err := ctrl.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid credentials")
			return
		}
		if errors.Is(err, service.ErrAccountBanned) {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthAccountBanned, "This account has been banned")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"username": req.Username,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	ctrl.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"user": sessionUserJSON(user),
	})
}

// Logout destroys the session
// POST /api/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, err := c.Cookie(ctrl.cookieName)
	if err == nil && token != "" {
		if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
			// The cookie is cleared either way, logout always succeeds
			// from the user's perspective.
			log.Error("Failed to discard session during logout", err, nil)
		}
	}

	ctrl.clearSessionCookie(c)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetSession reports who is signed in, if anyone
// GET /api/session
func (ctrl *AuthController) GetSession(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       identity.UserID,
			"username": identity.Username,
			"role":     identity.Role,
		},
	})
}
