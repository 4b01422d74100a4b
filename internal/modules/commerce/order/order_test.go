package order

import (
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/modules/commerce/cart"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.ProductModel{},
		&models.CartModel{},
		&models.CartItemModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku string, price int64, stock int) *models.ProductModel {
	t.Helper()
	p := &models.ProductModel{
		Name:          name,
		Slug:          sku,
		SKU:           sku,
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
		IsActive:      true,
		StockStatus:   models.StockInStock,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func shippingDTO() CheckoutDTO {
	return CheckoutDTO{
		ShippingName:    "Ada Lovelace",
		ShippingEmail:   "ada@example.com",
		ShippingAddress: "1 Analytical Way",
		ShippingCity:    "London",
	}
}

func TestCheckout(t *testing.T) {
	db := newTestDB(t)
	carts := cart.NewService(db)
	svc := NewService(db)

	p1 := seedProduct(t, db, "Desk", "DESK-1", 300, 5)
	p2 := seedProduct(t, db, "Chair", "CHAIR-1", 100, 2)

	_, _, err := carts.AddItem("user-1", p1.ID, 2)
	require.NoError(t, err)
	_, _, err = carts.AddItem("user-1", p2.ID, 2)
	require.NoError(t, err)

	ord, err := svc.Checkout("user-1", shippingDTO())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{10}$`), ord.OrderNumber)
	assert.Equal(t, models.OrderPending, ord.Status)
	assert.Equal(t, models.PaymentPending, ord.PaymentStatus)
	require.Len(t, ord.Items, 2)
	assert.True(t, ord.Subtotal.Equal(decimal.NewFromInt(800)))
	assert.True(t, ord.Total.Equal(decimal.NewFromInt(800)))

	// Item lines carry snapshots, not references to live catalog data.
	for _, item := range ord.Items {
		assert.NotEmpty(t, item.ProductName)
		assert.NotEmpty(t, item.ProductSKU)
		assert.True(t, item.TotalPrice.Equal(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))))
	}

	// Stock was decremented, and the drained product flipped to out of stock.
	var gotP1, gotP2 models.ProductModel
	require.NoError(t, db.First(&gotP1, "id = ?", p1.ID).Error)
	require.NoError(t, db.First(&gotP2, "id = ?", p2.ID).Error)
	assert.Equal(t, 3, gotP1.StockQuantity)
	assert.Equal(t, 0, gotP2.StockQuantity)
	assert.Equal(t, models.StockOutOfStock, gotP2.StockStatus)

	// The cart was deactivated; a fresh one is issued on next use.
	fresh, err := carts.ActiveCart("user-1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.Checkout("user-1", shippingDTO())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	carts := cart.NewService(db)
	svc := NewService(db)

	p := seedProduct(t, db, "Lamp", "LAMP-1", 40, 3)
	_, _, err := carts.AddItem("user-1", p.ID, 3)
	require.NoError(t, err)

	// Stock shrinks after the cart was filled, as a concurrent checkout would.
	require.NoError(t, db.Model(p).Update("stock_quantity", 1).Error)

	_, err = svc.Checkout("user-1", shippingDTO())
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing was committed.
	var orders, items int64
	require.NoError(t, db.Model(&models.OrderModel{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItemModel{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	var got models.ProductModel
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 1, got.StockQuantity)

	active, err := carts.ActiveCart("user-1")
	require.NoError(t, err)
	assert.Len(t, active.Items, 1)
}

func TestCheckoutPriceSnapshotSurvivesCatalogEdit(t *testing.T) {
	db := newTestDB(t)
	carts := cart.NewService(db)
	svc := NewService(db)

	p := seedProduct(t, db, "Vase", "VASE-1", 50, 10)
	_, _, err := carts.AddItem("user-1", p.ID, 1)
	require.NoError(t, err)

	// Price hike between add-to-cart and checkout does not affect the order.
	require.NoError(t, db.Model(p).Update("price", decimal.NewFromInt(80)).Error)

	ord, err := svc.Checkout("user-1", shippingDTO())
	require.NoError(t, err)
	assert.True(t, ord.Total.Equal(decimal.NewFromInt(50)))
}

func TestStatusUpdates(t *testing.T) {
	db := newTestDB(t)
	carts := cart.NewService(db)
	svc := NewService(db)

	p := seedProduct(t, db, "Rug", "RUG-1", 45, 4)
	_, _, err := carts.AddItem("user-1", p.ID, 1)
	require.NoError(t, err)
	ord, err := svc.Checkout("user-1", shippingDTO())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ord.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)

	updated, err = svc.UpdatePaymentStatus(ord.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)

	_, err = svc.UpdateStatus(ord.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestByNumber(t *testing.T) {
	db := newTestDB(t)
	carts := cart.NewService(db)
	svc := NewService(db)

	p := seedProduct(t, db, "Mug", "MUG-1", 12, 4)
	_, _, err := carts.AddItem("user-1", p.ID, 1)
	require.NoError(t, err)
	ord, err := svc.Checkout("user-1", shippingDTO())
	require.NoError(t, err)

	got, err := svc.ByNumber(ord.OrderNumber)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ord.ID, got.ID)

	missing, err := svc.ByNumber("ZZZZZZZZZZ")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
