package model

import "time"

// Product represents a catalog item
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"productname"`
	Description string    `json:"description"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    float64   `json:"quantity"`
	IsOrganic   bool      `json:"isOrganic"`
	IsFeatured  bool      `json:"isFeatured"`
	Images      []string  `json:"images"`
	OwnerID     int       `json:"owner_id"` // weak reference, not re-validated after creation
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest is bound from the multipart form; image files are
// read separately from the same request.
type CreateProductRequest struct {
	Name        string  `form:"productname" binding:"required"`
	Description string  `form:"description"`
	SKU         string  `form:"sku"`
	Category    string  `form:"category"`
	Price       float64 `form:"price" binding:"required,gte=0"`
	Quantity    float64 `form:"quantity" binding:"required,gte=0"`
	IsOrganic   bool    `form:"isOrganic"`
}

// UpdateProductRequest fully replaces the mutable fields of a product
type UpdateProductRequest struct {
	Name        string  `json:"productname" binding:"required"`
	Description string  `json:"description"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"gte=0"`
	Quantity    float64 `json:"quantity" binding:"gte=0"`
	IsOrganic   bool    `json:"isOrganic"`
}

// SetFeaturedRequest uses a pointer so that an explicit false still binds
type SetFeaturedRequest struct {
	IsFeatured *bool `json:"isFeatured" binding:"required"`
}

type SetOrganicRequest struct {
	IsOrganic *bool `json:"isOrganic" binding:"required"`
}

// ProductFilters contains the optional filter parameters for catalog queries.
// Nil fields impose no constraint.
type ProductFilters struct {
	Category  *string
	MinPrice  *float64
	MaxPrice  *float64
	IsOrganic *bool
	Search    *string
	Page      int
	Limit     int
}

// ProductPage is a single page of catalog results plus pagination metadata
type ProductPage struct {
	Total       int64     `json:"total"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	Products    []Product `json:"products"`
}
