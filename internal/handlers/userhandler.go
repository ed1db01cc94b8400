package handlers

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ujjwal0011/job-portal/internal/dtos"
	"github.com/ujjwal0011/job-portal/internal/middleware"
	"github.com/ujjwal0011/job-portal/internal/services"
)

type UserHandler struct {
	Users         *services.UserService
	CookieExpiry  time.Duration
	SecureCookies bool
}

func NewUserHandler(users *services.UserService, cookieExpiry time.Duration, secureCookies bool) *UserHandler {
	return &UserHandler{Users: users, CookieExpiry: cookieExpiry, SecureCookies: secureCookies}
}

// Register is POST /user/register. Multipart when a resume rides along.
func (h *UserHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFail(c, err)
		return
	}

	user, token, err := h.Users.Register(c.Request.Context(), &req, formFile(c, "resume"))
	if err != nil {
		Fail(c, err)
		return
	}

	h.setSessionCookie(c, token, h.CookieExpiry)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registered successfully.",
		"user":    user,
		"token":   token,
	})
}

// Login is POST /user/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFail(c, err)
		return
	}

	user, token, err := h.Users.Login(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	h.setSessionCookie(c, token, h.CookieExpiry)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in successfully.",
		"user":    user,
		"token":   token,
	})
}

// Logout is GET /user/logout; it clears the session cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -time.Hour)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully."})
}

// Me is GET /user/me.
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "user": middleware.CurrentUser(c)})
}

// UpdateProfile is PUT /user/update/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dtos.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFail(c, err)
		return
	}

	user, err := h.Users.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), &req, formFile(c, "resume"))
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated.",
		"user":    user,
	})
}

// UpdatePassword is PUT /user/update/password.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req dtos.UpdatePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFail(c, err)
		return
	}

	if err := h.Users.UpdatePassword(c.Request.Context(), middleware.CurrentUser(c), &req); err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated."})
}

func (h *UserHandler) setSessionCookie(c *gin.Context, token string, maxAge time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, token, int(maxAge.Seconds()), "/", "", h.SecureCookies, true)
}

// formFile returns the named upload, or nil for JSON bodies and multipart
// bodies without it.
func formFile(c *gin.Context, name string) *multipart.FileHeader {
	file, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}
