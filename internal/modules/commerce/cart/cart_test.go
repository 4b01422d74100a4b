package cart

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
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

func TestActiveCartCreatedOnFirstUse(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	cart, err := svc.ActiveCart("user-1")
	require.NoError(t, err)
	assert.True(t, cart.IsActive)
	assert.Empty(t, cart.Items)

	again, err := svc.ActiveCart("user-1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, "Mug", "MUG-1", 12, 10)

	cart, msg, err := svc.AddItem("user-1", p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "item added to cart", msg)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, _, err = svc.AddItem("user-1", p.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems())
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(60)))
}

func TestAddItemCapsAtStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, "Plate", "PL-1", 8, 3)

	cart, msg, err := svc.AddItem("user-1", p.ID, 5)
	require.NoError(t, err)
	assert.Contains(t, msg, "capped at available stock")
	assert.Equal(t, 3, cart.Items[0].Quantity)

	cart, msg, err = svc.AddItem("user-1", p.ID, 1)
	require.NoError(t, err)
	assert.Contains(t, msg, "capped at available stock")
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItemRejectsUnavailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	gone := seedProduct(t, db, "Sold Out", "SO-1", 5, 0)
	_, _, err := svc.AddItem("user-1", gone.ID, 1)
	assert.ErrorIs(t, err, ErrOutOfStock)

	hidden := seedProduct(t, db, "Hidden", "HD-1", 5, 4)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)
	_, _, err = svc.AddItem("user-1", hidden.ID, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	_, _, err = svc.AddItem("user-1", "missing-id", 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateItemZeroRemovesLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, "Bowl", "BW-1", 9, 10)

	cart, _, err := svc.AddItem("user-1", p.ID, 2)
	require.NoError(t, err)

	cart, msg, err := svc.UpdateItem("user-1", cart.Items[0].ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "item removed from cart", msg)
	assert.Empty(t, cart.Items)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedProduct(t, db, "Spoon", "SP-1", 3, 10)

	_, _, err := svc.AddItem("user-a", p.ID, 1)
	require.NoError(t, err)

	other, err := svc.ActiveCart("user-b")
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	cleared, err := svc.Clear("user-a")
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
}
