package catalog

import "github.com/shopspring/decimal"

type CreateProductCategoryDTO struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	ParentID    *string `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
	Order       int     `json:"order"`
}

type UpdateProductCategoryDTO struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	ParentID    *string `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
	Order       *int    `json:"order"`
}

type CreateProductDTO struct {
	Name             string           `json:"name" binding:"required"`
	Slug             string           `json:"slug"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	CategoryID       *string          `json:"category_id"`
	Price            decimal.Decimal  `json:"price" binding:"required"`
	ComparePrice     *decimal.Decimal `json:"compare_price"`
	CostPrice        *decimal.Decimal `json:"cost_price"`
	SKU              string           `json:"sku" binding:"required"`
	StockQuantity    int              `json:"stock_quantity"`
	StockStatus      string           `json:"stock_status"`
	FeaturedImage    string           `json:"featured_image"`
	IsActive         *bool            `json:"is_active"`
	IsFeatured       bool             `json:"is_featured"`
	Weight           *decimal.Decimal `json:"weight"`
	MetaTitle        string           `json:"meta_title"`
	MetaDescription  string           `json:"meta_description"`
}

type UpdateProductDTO struct {
	Name             *string          `json:"name"`
	Slug             *string          `json:"slug"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"short_description"`
	CategoryID       *string          `json:"category_id"`
	Price            *decimal.Decimal `json:"price"`
	ComparePrice     *decimal.Decimal `json:"compare_price"`
	CostPrice        *decimal.Decimal `json:"cost_price"`
	SKU              *string          `json:"sku"`
	StockQuantity    *int             `json:"stock_quantity"`
	StockStatus      *string          `json:"stock_status"`
	FeaturedImage    *string          `json:"featured_image"`
	IsActive         *bool            `json:"is_active"`
	IsFeatured       *bool            `json:"is_featured"`
	Weight           *decimal.Decimal `json:"weight"`
	MetaTitle        *string          `json:"meta_title"`
	MetaDescription  *string          `json:"meta_description"`
}

type AddProductImageDTO struct {
	Image   string `json:"image" binding:"required"`
	AltText string `json:"alt_text"`
	Order   int    `json:"order"`
}

// ProductListQuery holds optional product list filters.
type ProductListQuery struct {
	Category *string
	Featured *bool
	Search   *string
}
