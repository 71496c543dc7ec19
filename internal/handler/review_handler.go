package handler

import (
	"net/http"
	"strconv"

	"jinstore/internal/model"
	"jinstore/internal/response"
	"jinstore/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewHandler handles review requests
type ReviewHandler struct {
	service service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

func (h *ReviewHandler) PostReview(c *gin.Context) {
	authorID, err := getAuthUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailDetail(c, http.StatusBadRequest, "missing required fields", err.Error())
		return
	}

	review, err := h.service.PostReview(c.Request.Context(), authorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, review, "review posted successfully")
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Query("productId"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "productId query parameter is required")
		return
	}

	reviews, err := h.service.GetProductReviews(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusOK, reviews, "reviews fetched successfully")
}

// RegisterReviewRoutes registers review routes
func (h *ReviewHandler) RegisterReviewRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/review", authMW, h.PostReview)
	rg.GET("/reviews", h.GetReviews)
}
