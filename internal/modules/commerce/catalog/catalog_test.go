package catalog

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/pagination"
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
		&models.ProductCategoryModel{},
		&models.ProductModel{},
		&models.ProductImageModel{},
	))
	return db
}

func TestCreateProductDefaults(t *testing.T) {
	svc := NewService(newTestDB(t))

	p, err := svc.CreateProduct(CreateProductDTO{
		Name:  "Walnut Desk",
		Price: decimal.RequireFromString("349.99"),
		SKU:   "DESK-001",
	})
	require.NoError(t, err)
	assert.Equal(t, "walnut-desk", p.Slug)
	assert.Equal(t, "Walnut Desk", p.MetaTitle)
	assert.Equal(t, models.StockOutOfStock, p.StockStatus)
	assert.True(t, p.IsActive)

	stocked, err := svc.CreateProduct(CreateProductDTO{
		Name:          "Oak Chair",
		Price:         decimal.RequireFromString("89.50"),
		SKU:           "CHAIR-001",
		StockQuantity: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StockInStock, stocked.StockStatus)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.CreateProduct(CreateProductDTO{
		Name:  "Lamp",
		Price: decimal.NewFromInt(20),
		SKU:   "LAMP-1",
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(CreateProductDTO{
		Name:  "Another Lamp",
		Price: decimal.NewFromInt(25),
		SKU:   "LAMP-1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestListProductsFiltersByCategoryAndVisibility(t *testing.T) {
	svc := NewService(newTestDB(t))

	cat, err := svc.CreateCategory(CreateProductCategoryDTO{Name: "Furniture"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(CreateProductDTO{
		Name:       "Sofa",
		Price:      decimal.NewFromInt(900),
		SKU:        "SOFA-1",
		CategoryID: &cat.ID,
	})
	require.NoError(t, err)

	inactive := false
	_, err = svc.CreateProduct(CreateProductDTO{
		Name:       "Hidden Sofa",
		Price:      decimal.NewFromInt(700),
		SKU:        "SOFA-2",
		CategoryID: &cat.ID,
		IsActive:   &inactive,
	})
	require.NoError(t, err)

	q := pagination.Query{Page: 1, Size: 10}
	catSlug := "furniture"
	visible, pag, err := svc.ListProducts(q, ProductListQuery{Category: &catSlug}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pag.Total)
	assert.Equal(t, "Sofa", visible[0].Name)

	all, pag, err := svc.ListProducts(q, ProductListQuery{Category: &catSlug}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pag.Total)
	assert.Len(t, all, 2)
}

func TestIncrementViews(t *testing.T) {
	svc := NewService(newTestDB(t))

	p, err := svc.CreateProduct(CreateProductDTO{
		Name:  "Rug",
		Price: decimal.NewFromInt(45),
		SKU:   "RUG-1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.IncrementViews(p.ID))
	require.NoError(t, svc.IncrementViews(p.ID))

	got, err := svc.ProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestDiscountFields(t *testing.T) {
	svc := NewService(newTestDB(t))

	compare := decimal.NewFromInt(100)
	p, err := svc.CreateProduct(CreateProductDTO{
		Name:         "Clearance Vase",
		Price:        decimal.NewFromInt(75),
		ComparePrice: &compare,
		SKU:          "VASE-1",
	})
	require.NoError(t, err)
	assert.True(t, p.HasDiscount())
	assert.Equal(t, 25, p.DiscountPercentage())
}

func TestDeleteCategoryDetachesProductsAndReparentsChildren(t *testing.T) {
	svc := NewService(newTestDB(t))

	root, err := svc.CreateCategory(CreateProductCategoryDTO{Name: "Home"})
	require.NoError(t, err)
	mid, err := svc.CreateCategory(CreateProductCategoryDTO{Name: "Decor", ParentID: &root.ID})
	require.NoError(t, err)
	leaf, err := svc.CreateCategory(CreateProductCategoryDTO{Name: "Vases", ParentID: &mid.ID})
	require.NoError(t, err)

	p, err := svc.CreateProduct(CreateProductDTO{
		Name:       "Blue Vase",
		Price:      decimal.NewFromInt(30),
		SKU:        "BV-1",
		CategoryID: &mid.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(mid.ID))

	gotLeaf, err := svc.CategoryByID(leaf.ID)
	require.NoError(t, err)
	require.NotNil(t, gotLeaf.ParentID)
	assert.Equal(t, root.ID, *gotLeaf.ParentID)

	gotProduct, err := svc.ProductByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, gotProduct.CategoryID)
}

func TestProductImages(t *testing.T) {
	svc := NewService(newTestDB(t))

	p, err := svc.CreateProduct(CreateProductDTO{
		Name:  "Bookshelf",
		Price: decimal.NewFromInt(150),
		SKU:   "BS-1",
	})
	require.NoError(t, err)

	second, err := svc.AddImage(p.ID, AddProductImageDTO{Image: "/media/b.jpg", Order: 2})
	require.NoError(t, err)
	_, err = svc.AddImage(p.ID, AddProductImageDTO{Image: "/media/a.jpg", Order: 1})
	require.NoError(t, err)

	got, err := svc.ProductByID(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "/media/a.jpg", got.Images[0].Image)

	require.NoError(t, svc.RemoveImage(p.ID, second.ID))
	assert.ErrorIs(t, svc.RemoveImage(p.ID, second.ID), gorm.ErrRecordNotFound)
}
