package models

import "github.com/shopspring/decimal"

// StockStatus is the displayed availability of a product.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockOutOfStock StockStatus = "out_of_stock"
	StockPreOrder   StockStatus = "pre_order"
)

// ProductCategoryModel groups products; categories may nest via ParentID.
type ProductCategoryModel struct {
	Base
	Name        string                 `json:"name"        gorm:"uniqueIndex;not null"`
	Slug        string                 `json:"slug"        gorm:"uniqueIndex;not null"`
	Description string                 `json:"description" gorm:"type:text"`
	Image       string                 `json:"image"`
	ParentID    *string                `json:"parent_id"   gorm:"index"`
	Parent      *ProductCategoryModel  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children    []ProductCategoryModel `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	IsActive    bool                   `json:"is_active"   gorm:"default:true;index"`
	Order       int                    `json:"order"       gorm:"column:order_num;default:0"`
}

func (ProductCategoryModel) TableName() string { return "product_categories" }

// ProductModel is a catalog item.
type ProductModel struct {
	Base
	Name             string                `json:"name"              gorm:"not null"`
	Slug             string                `json:"slug"              gorm:"uniqueIndex;not null"`
	Description      string                `json:"description"       gorm:"type:longtext"`
	ShortDescription string                `json:"short_description"`
	CategoryID       *string               `json:"category_id"       gorm:"index"`
	Category         *ProductCategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Price            decimal.Decimal       `json:"price"             gorm:"type:decimal(10,2);not null"`
	ComparePrice     *decimal.Decimal      `json:"compare_price"     gorm:"type:decimal(10,2)"`
	CostPrice        *decimal.Decimal      `json:"cost_price"        gorm:"type:decimal(10,2)"`
	SKU              string                `json:"sku"               gorm:"uniqueIndex;not null"`
	StockQuantity    int                   `json:"stock_quantity"    gorm:"default:0"`
	StockStatus      StockStatus           `json:"stock_status"      gorm:"type:varchar(20);default:'in_stock'"`
	FeaturedImage    string                `json:"featured_image"`
	IsActive         bool                  `json:"is_active"         gorm:"default:true;index"`
	IsFeatured       bool                  `json:"is_featured"       gorm:"default:false"`
	Weight           *decimal.Decimal      `json:"weight"            gorm:"type:decimal(10,2)"`
	Views            int64                 `json:"views"             gorm:"default:0"`
	MetaTitle        string                `json:"meta_title"`
	MetaDescription  string                `json:"meta_description"`

	Images []ProductImageModel `json:"images,omitempty" gorm:"foreignKey:ProductID"`
}

func (ProductModel) TableName() string { return "products" }

// HasDiscount reports whether the compare-at price exceeds the sell price.
func (p ProductModel) HasDiscount() bool {
	return p.ComparePrice != nil && p.ComparePrice.GreaterThan(p.Price)
}

// DiscountPercentage is the integer floor of the relative price reduction.
func (p ProductModel) DiscountPercentage() int {
	if !p.HasDiscount() {
		return 0
	}
	diff := p.ComparePrice.Sub(p.Price)
	pct := diff.Div(*p.ComparePrice).Mul(decimal.NewFromInt(100))
	return int(pct.IntPart())
}

// ProductImageModel is an additional, ordered product image.
type ProductImageModel struct {
	ID        uint   `json:"id"         gorm:"primaryKey;autoIncrement"`
	ProductID string `json:"product_id" gorm:"type:char(36);index;not null"`
	Image     string `json:"image"      gorm:"not null"`
	AltText   string `json:"alt_text"`
	Order     int    `json:"order"      gorm:"column:order_num;default:0"`
}

func (ProductImageModel) TableName() string { return "product_images" }
