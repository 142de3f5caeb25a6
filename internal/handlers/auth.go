package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"Pastel/internal/auth"
	dom "Pastel/internal/domain"
	"Pastel/internal/dto"
	"Pastel/internal/service"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session_id"

// SessionManager mints and revokes sessions. Satisfied by *auth.Store.
type SessionManager interface {
	Create(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// AuthHandler bridges the external identity provider to local sessions.
// The OAuth dance happens outside this service; the provider's callback
// posts the authenticated principal here together with a shared secret.
type AuthHandler struct {
	sessions       SessionManager
	userSvc        *service.UserService
	callbackSecret string
	sessionTTL     time.Duration
}

// NewAuthHandler returns a new AuthHandler. The cookie lifetime follows
// sessionTTL so cookie and Redis session expire together.
func NewAuthHandler(sessions SessionManager, userSvc *service.UserService, callbackSecret string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		sessions:       sessions,
		userSvc:        userSvc,
		callbackSecret: callbackSecret,
		sessionTTL:     sessionTTL,
	}
}

// CreateSession godoc
// @Summary      Register an authenticated principal and mint a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SessionRequest  true  "Principal from the identity provider"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/session [post]
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req dto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.callbackSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid callback secret"})
		return
	}
	user, err := h.userSvc.Sync(c.Request.Context(), dom.User{
		ID:              req.UserID,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		return
	}
	sessionID, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.SetCookie(sessionCookieName, sessionID, int(h.sessionTTL.Seconds()), "/", "", false, true) // httpOnly
	c.JSON(http.StatusCreated, userToResponse(user))
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(sessionCookieName)
	if err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Current user's profile
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.userSvc.Get(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

// DeleteMe godoc
// @Summary      Delete the current user's account and everything it owns
// @Tags         auth
// @Security     CookieAuth
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /me [delete]
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), auth.UserIDFromContext(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	sessionID, err := c.Cookie(sessionCookieName)
	if err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	}
}
