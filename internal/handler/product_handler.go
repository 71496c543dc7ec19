package handler

import (
	"net/http"
	"strconv"

	"jinstore/internal/model"
	"jinstore/internal/response"
	"jinstore/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles catalog requests
type ProductHandler struct {
	service service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	ownerID, err := getAuthUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req model.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.FailDetail(c, http.StatusBadRequest, "missing required fields", err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.FailDetail(c, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}
	images := form.File["images"]

	product, err := h.service.CreateProduct(c.Request.Context(), ownerID, req, images)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, product, "product posted successfully")
}

// ListProducts serves the filtered catalog query. newArrivals=true and
// featured=true short-circuit all other filters and pagination.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	if c.Query("newArrivals") == "true" {
		page, err := h.service.ListNewArrivals(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		response.OK(c, http.StatusOK, page, "new arrivals fetched successfully")
		return
	}
	if c.Query("featured") == "true" {
		page, err := h.service.ListFeatured(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		response.OK(c, http.StatusOK, page, "featured products fetched successfully")
		return
	}

	filters, err := parseProductFilters(c)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.service.ListProducts(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusOK, page, "products fetched successfully")
}

func parseProductFilters(c *gin.Context) (model.ProductFilters, error) {
	filters := model.ProductFilters{Page: 1, Limit: service.DefaultPageLimit}

	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if minPriceStr := c.Query("minPrice"); minPriceStr != "" {
		minPrice, err := strconv.ParseFloat(minPriceStr, 64)
		if err != nil {
			return filters, errInvalidParam("minPrice")
		}
		filters.MinPrice = &minPrice
	}
	if maxPriceStr := c.Query("maxPrice"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil {
			return filters, errInvalidParam("maxPrice")
		}
		filters.MaxPrice = &maxPrice
	}
	if organicStr := c.Query("isOrganic"); organicStr != "" {
		organic, err := strconv.ParseBool(organicStr)
		if err != nil {
			return filters, errInvalidParam("isOrganic")
		}
		filters.IsOrganic = &organic
	}
	if search := c.Query("searchValue"); search != "" {
		filters.Search = &search
	}
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return filters, errInvalidParam("page")
		}
		filters.Page = page
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return filters, errInvalidParam("limit")
		}
		filters.Limit = limit
	}
	return filters, nil
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.service.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusOK, product, "single product fetched")
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailDetail(c, http.StatusBadRequest, "missing required fields", err.Error())
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), productID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusOK, product, "product updated successfully")
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusOK, nil, "product deleted")
}

func (h *ProductHandler) SetFeatured(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req model.SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailDetail(c, http.StatusBadRequest, "isFeatured is required", err.Error())
		return
	}

	product, err := h.service.SetFeatured(c.Request.Context(), productID, *req.IsFeatured)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "product removed from featured list"
	if product.IsFeatured {
		message = "product added to featured list"
	}
	response.OK(c, http.StatusOK, product, message)
}

func (h *ProductHandler) SetOrganic(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req model.SetOrganicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailDetail(c, http.StatusBadRequest, "isOrganic is required", err.Error())
		return
	}

	product, err := h.service.SetOrganic(c.Request.Context(), productID, *req.IsOrganic)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "product removed from organic list"
	if product.IsOrganic {
		message = "product added to organic list"
	}
	response.OK(c, http.StatusOK, product, message)
}

// UpdateImages replaces the product's image list with the uploaded files.
// Posting no files clears the list.
func (h *ProductHandler) UpdateImages(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid product ID")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.FailDetail(c, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}
	images := form.File["images"]

	product, err := h.service.ReplaceImages(c.Request.Context(), productID, images)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, http.StatusOK, product, "product images updated")
}

// RegisterProductRoutes registers catalog routes. Reads are public, all
// mutations require an authenticated admin.
func (h *ProductHandler) RegisterProductRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/product/:id", h.GetProduct)

	adminRoutes := rg.Group("")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.POST("/products", h.CreateProduct)
		adminRoutes.PUT("/product/:id", h.UpdateProduct)
		adminRoutes.DELETE("/product/:id", h.DeleteProduct)
		adminRoutes.PATCH("/productImage/:id", h.UpdateImages)
		adminRoutes.PATCH("/feature-product/:id", h.SetFeatured)
		adminRoutes.PATCH("/organic-product/:id", h.SetOrganic)
	}
}
