package handler

import (
	"net/http"

	"jinstore/internal/middleware"
	"jinstore/internal/model"
	"jinstore/internal/response"
	"jinstore/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service       service.AuthService
	accessMaxAge  int
	refreshMaxAge int
}

// NewAuthHandler creates a new AuthHandler. Cookie lifetimes are passed in
// seconds and should match the token lifetimes.
func NewAuthHandler(s service.AuthService, accessMaxAge, refreshMaxAge int) *AuthHandler {
	return &AuthHandler{service: s, accessMaxAge: accessMaxAge, refreshMaxAge: refreshMaxAge}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailDetail(c, http.StatusBadRequest, "missing or invalid fields", err.Error())
		return
	}

	user, accessToken, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, middleware.AccessTokenCookie, accessToken, h.accessMaxAge)
	response.OK(c, http.StatusCreated, user, "user registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailDetail(c, http.StatusBadRequest, "missing or invalid fields", err.Error())
		return
	}

	user, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, middleware.AccessTokenCookie, accessToken, h.accessMaxAge)
	h.setSessionCookie(c, middleware.RefreshTokenCookie, refreshToken, h.refreshMaxAge)
	response.OK(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "user logged in successfully")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, middleware.AccessTokenCookie, "", -1)
	h.setSessionCookie(c, middleware.RefreshTokenCookie, "", -1)
	response.OK(c, http.StatusOK, nil, "user logged out successfully")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", false, true) // http-only
}

// RegisterAuthRoutes registers identity lifecycle routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/logout", authMW, h.Logout)
}
