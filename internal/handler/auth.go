// internal/handler/auth.go
package handler

import (
	"net/http"
	"time"

	"spending-tracker/internal/account"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts *account.Service
}

func NewAuthHandler(accounts *account.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register godoc
// @Summary Create an account and sign in
// @Param request body RegisterRequest true "New user"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} map[string]any
// @Router /api/v1/auth/register/ [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.accounts.Register(c.Request.Context(), account.RegisterInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(sess))
}

// Login godoc
// @Summary Email + password login
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(sess))
}

func toSessionResponse(sess *account.Session) SessionResponse {
	return SessionResponse{
		User:    toUserResponse(sess.User),
		Access:  sess.Tokens.Access,
		Refresh: sess.Tokens.Refresh,
	}
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	access, err := h.accounts.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accounts.Logout(c.Request.Context(), p, req.Refresh); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	u, err := h.accounts.Profile(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateProfile serves both PUT and PATCH; email is read-only and ignored.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.accounts.UpdateProfile(c.Request.Context(), p, req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.accounts.ChangePassword(c.Request.Context(), p, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Password updated successfully."})
}

// LinkCode godoc
// @Summary One-time code for linking a Telegram chat
// @Success 201 {object} map[string]string
// @Router /api/v1/auth/telegram/link-code/ [post]
func (h *AuthHandler) LinkCode(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	code, expiresAt, err := h.accounts.CreateLinkCode(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":       code,
		"command":    "/link " + code,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}
