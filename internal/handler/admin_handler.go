package handler

import (
	"net/http"
	"strconv"

	"jinstore/internal/model"
	"jinstore/internal/response"
	"jinstore/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin-only user management requests
type AdminHandler struct {
	service service.UserService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(s service.UserService) *AdminHandler {
	return &AdminHandler{service: s}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusOK, users, "users fetched successfully")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusOK, nil, "user deleted successfully")
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	var req model.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailDetail(c, http.StatusBadRequest, "missing or invalid fields", err.Error())
		return
	}

	user, err := h.service.ChangeRole(c.Request.Context(), req.UserID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusOK, user, "user role updated successfully")
}

// RegisterAdminRoutes registers user management routes, all admin-only
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	adminRoutes := rg.Group("/admin-users")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("", h.ListUsers)
		adminRoutes.DELETE("/:id", h.DeleteUser)
		adminRoutes.PATCH("", h.ChangeRole)
	}
}
