package models

import "github.com/shopspring/decimal"

// CartModel is a shopping cart. A user has at most one active cart;
// checkout deactivates it.
type CartModel struct {
	Base
	UserID   string          `json:"user_id"   gorm:"index;not null"`
	User     *UserModel      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	IsActive bool            `json:"is_active" gorm:"default:true;index"`
	Items    []CartItemModel `json:"items,omitempty" gorm:"foreignKey:CartID"`
}

func (CartModel) TableName() string { return "carts" }

// TotalItems sums the quantities of the loaded items.
func (c CartModel) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums quantity × snapshot price over the loaded items.
// Totals are always computed, never stored.
func (c CartModel) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.TotalPrice())
	}
	return sum
}

// CartItemModel is one product line in a cart. Price is snapshotted at the
// moment the product is added.
type CartItemModel struct {
	ID        uint            `json:"id"         gorm:"primaryKey;autoIncrement"`
	CartID    string          `json:"cart_id"    gorm:"type:char(36);uniqueIndex:uniq_cart_product;index;not null"`
	ProductID string          `json:"product_id" gorm:"type:char(36);uniqueIndex:uniq_cart_product;not null"`
	Product   *ProductModel   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int             `json:"quantity"   gorm:"default:1"`
	Price     decimal.Decimal `json:"price"      gorm:"type:decimal(10,2);not null"`
}

func (CartItemModel) TableName() string { return "cart_items" }

// TotalPrice is quantity × snapshot unit price.
func (i CartItemModel) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
