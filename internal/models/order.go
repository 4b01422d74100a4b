package models

import "github.com/shopspring/decimal"

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// OrderModel is a placed order. Total is derived once at checkout and
// persisted; it is never recomputed from the items.
type OrderModel struct {
	Base
	OrderNumber   string        `json:"order_number"   gorm:"uniqueIndex;not null"`
	UserID        *string       `json:"user_id"        gorm:"index"`
	User          *UserModel    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status        OrderStatus   `json:"status"         gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`

	ShippingName    string `json:"shipping_name"`
	ShippingEmail   string `json:"shipping_email"`
	ShippingPhone   string `json:"shipping_phone"`
	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingState   string `json:"shipping_state"`
	ShippingZipcode string `json:"shipping_zipcode"`
	ShippingCountry string `json:"shipping_country"`

	Subtotal     decimal.Decimal `json:"subtotal"      gorm:"type:decimal(10,2)"`
	ShippingCost decimal.Decimal `json:"shipping_cost" gorm:"type:decimal(10,2);default:0"`
	Tax          decimal.Decimal `json:"tax"           gorm:"type:decimal(10,2);default:0"`
	Total        decimal.Decimal `json:"total"         gorm:"type:decimal(10,2)"`

	Notes string `json:"notes" gorm:"type:text"`

	Items []OrderItemModel `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel snapshots one purchased line. Name, SKU and price are
// copied from the product at checkout so later catalog edits cannot
// rewrite order history.
type OrderItemModel struct {
	ID          uint            `json:"id"           gorm:"primaryKey;autoIncrement"`
	OrderID     string          `json:"order_id"     gorm:"type:char(36);index;not null"`
	ProductID   *string         `json:"product_id"   gorm:"type:char(36);index"`
	Product     *ProductModel   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	ProductName string          `json:"product_name" gorm:"not null"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"     gorm:"not null"`
	Price       decimal.Decimal `json:"price"        gorm:"type:decimal(10,2);not null"`
	TotalPrice  decimal.Decimal `json:"total_price"  gorm:"type:decimal(10,2);not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }
