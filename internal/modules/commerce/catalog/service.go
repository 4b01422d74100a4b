package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
	"github.com/wordpy/core/internal/pkg/slug"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Categories

func (s *Service) CreateCategory(dto CreateProductCategoryDTO) (*models.ProductCategoryModel, error) {
	cat := &models.ProductCategoryModel{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
		Image:       dto.Image,
		ParentID:    dto.ParentID,
		IsActive:    true,
		Order:       dto.Order,
	}
	if dto.IsActive != nil {
		cat.IsActive = *dto.IsActive
	}
	if cat.Slug == "" {
		cat.Slug = slug.Make(cat.Name)
	}
	if err := s.checkCategoryConflict(cat.Slug, cat.Name, ""); err != nil {
		return nil, err
	}
	if cat.ParentID != nil {
		if err := s.ensureCategoryExists(*cat.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.db.Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) UpdateCategory(id string, dto UpdateProductCategoryDTO) (*models.ProductCategoryModel, error) {
	cat, err := s.CategoryByID(id)
	if err != nil || cat == nil {
		return cat, err
	}
	if dto.Name != nil {
		cat.Name = *dto.Name
	}
	if dto.Slug != nil {
		cat.Slug = *dto.Slug
	}
	if dto.Description != nil {
		cat.Description = *dto.Description
	}
	if dto.Image != nil {
		cat.Image = *dto.Image
	}
	if dto.ParentID != nil {
		if *dto.ParentID == "" {
			cat.ParentID = nil
		} else {
			if *dto.ParentID == cat.ID {
				return nil, errors.New("category cannot be its own parent")
			}
			if err := s.ensureCategoryExists(*dto.ParentID); err != nil {
				return nil, err
			}
			cat.ParentID = dto.ParentID
		}
	}
	if dto.IsActive != nil {
		cat.IsActive = *dto.IsActive
	}
	if dto.Order != nil {
		cat.Order = *dto.Order
	}
	if cat.Slug == "" {
		cat.Slug = slug.Make(cat.Name)
	}
	if err := s.checkCategoryConflict(cat.Slug, cat.Name, cat.ID); err != nil {
		return nil, err
	}
	if err := s.db.Save(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) CategoryByID(id string) (*models.ProductCategoryModel, error) {
	var cat models.ProductCategoryModel
	err := s.db.Where("id = ?", id).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Service) CategoryBySlug(sg string) (*models.ProductCategoryModel, error) {
	var cat models.ProductCategoryModel
	err := s.db.Where("slug = ?", sg).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// ListCategories returns active categories ordered for display. Staff callers
// see inactive ones as well.
func (s *Service) ListCategories(includeInactive bool) ([]models.ProductCategoryModel, error) {
	q := s.db.Model(&models.ProductCategoryModel{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var cats []models.ProductCategoryModel
	if err := q.Order("order_num ASC, name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// DeleteCategory removes a category. Its products are detached, and its
// children are reparented to the category's own parent.
func (s *Service) DeleteCategory(id string) error {
	cat, err := s.CategoryByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return gorm.ErrRecordNotFound
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductModel{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ProductCategoryModel{}).
			Where("parent_id = ?", id).
			Update("parent_id", cat.ParentID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ProductCategoryModel{}, "id = ?", id).Error
	})
}

func (s *Service) checkCategoryConflict(sg, name, excludeID string) error {
	q := s.db.Model(&models.ProductCategoryModel{}).Where("slug = ? OR name = ?", sg, name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("category name or slug already exists")
	}
	return nil
}

func (s *Service) ensureCategoryExists(id string) error {
	var count int64
	if err := s.db.Model(&models.ProductCategoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errors.New("parent category not found")
	}
	return nil
}

// Products

func (s *Service) CreateProduct(dto CreateProductDTO) (*models.ProductModel, error) {
	p := &models.ProductModel{
		Name:             dto.Name,
		Slug:             dto.Slug,
		Description:      dto.Description,
		ShortDescription: dto.ShortDescription,
		CategoryID:       dto.CategoryID,
		Price:            dto.Price,
		ComparePrice:     dto.ComparePrice,
		CostPrice:        dto.CostPrice,
		SKU:              strings.TrimSpace(dto.SKU),
		StockQuantity:    dto.StockQuantity,
		FeaturedImage:    dto.FeaturedImage,
		IsActive:         true,
		IsFeatured:       dto.IsFeatured,
		Weight:           dto.Weight,
		MetaTitle:        dto.MetaTitle,
		MetaDescription:  dto.MetaDescription,
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}
	status, err := parseStockStatus(dto.StockStatus)
	if err != nil {
		return nil, err
	}
	p.StockStatus = status
	s.applyProductDefaults(p)
	if err := s.checkProductConflict(p.Slug, p.SKU, ""); err != nil {
		return nil, err
	}
	if p.CategoryID != nil {
		if err := s.ensureCategoryExists(*p.CategoryID); err != nil {
			return nil, errors.New("category not found")
		}
	}
	if err := s.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(id string, dto UpdateProductDTO) (*models.ProductModel, error) {
	p, err := s.ProductByID(id)
	if err != nil || p == nil {
		return p, err
	}
	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Slug != nil {
		p.Slug = *dto.Slug
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	if dto.ShortDescription != nil {
		p.ShortDescription = *dto.ShortDescription
	}
	if dto.CategoryID != nil {
		if *dto.CategoryID == "" {
			p.CategoryID = nil
		} else {
			if err := s.ensureCategoryExists(*dto.CategoryID); err != nil {
				return nil, errors.New("category not found")
			}
			p.CategoryID = dto.CategoryID
		}
	}
	if dto.Price != nil {
		p.Price = *dto.Price
	}
	if dto.ComparePrice != nil {
		p.ComparePrice = dto.ComparePrice
	}
	if dto.CostPrice != nil {
		p.CostPrice = dto.CostPrice
	}
	if dto.SKU != nil {
		p.SKU = strings.TrimSpace(*dto.SKU)
	}
	if dto.StockQuantity != nil {
		p.StockQuantity = *dto.StockQuantity
	}
	if dto.StockStatus != nil {
		status, err := parseStockStatus(*dto.StockStatus)
		if err != nil {
			return nil, err
		}
		p.StockStatus = status
	}
	if dto.FeaturedImage != nil {
		p.FeaturedImage = *dto.FeaturedImage
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}
	if dto.IsFeatured != nil {
		p.IsFeatured = *dto.IsFeatured
	}
	if dto.Weight != nil {
		p.Weight = dto.Weight
	}
	if dto.MetaTitle != nil {
		p.MetaTitle = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		p.MetaDescription = *dto.MetaDescription
	}
	s.applyProductDefaults(p)
	if err := s.checkProductConflict(p.Slug, p.SKU, p.ID); err != nil {
		return nil, err
	}
	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ProductByID(id string) (*models.ProductModel, error) {
	var p models.ProductModel
	err := s.db.Preload("Category").Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) ProductBySlug(sg string) (*models.ProductModel, error) {
	var p models.ProductModel
	err := s.db.Preload("Category").Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).Where("slug = ?", sg).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts pages through the catalog newest first. Non-staff callers only
// see active products.
func (s *Service) ListProducts(pq pagination.Query, filter ProductListQuery, includeInactive bool) ([]models.ProductModel, response.Pagination, error) {
	q := s.db.Model(&models.ProductModel{}).Preload("Category")
	if !includeInactive {
		q = q.Where("products.is_active = ?", true)
	}
	if filter.Category != nil && *filter.Category != "" {
		q = q.Joins("JOIN product_categories ON product_categories.id = products.category_id").
			Where("product_categories.slug = ?", *filter.Category)
	}
	if filter.Featured != nil {
		q = q.Where("products.is_featured = ?", *filter.Featured)
	}
	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		q = q.Where("products.name LIKE ? OR products.description LIKE ? OR products.sku LIKE ?", like, like, like)
	}

	var products []models.ProductModel
	pag, err := pagination.Paginate(q.Order("products.created_at DESC"), pq, &products)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return products, pag, nil
}

// FeaturedProducts returns up to limit active featured products.
func (s *Service) FeaturedProducts(limit int) ([]models.ProductModel, error) {
	if limit <= 0 {
		limit = 8
	}
	var products []models.ProductModel
	err := s.db.Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").Limit(limit).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// RelatedProducts returns other active products from the same category.
func (s *Service) RelatedProducts(product *models.ProductModel, limit int) ([]models.ProductModel, error) {
	if limit <= 0 {
		limit = 4
	}
	if product.CategoryID == nil {
		return []models.ProductModel{}, nil
	}
	var products []models.ProductModel
	err := s.db.Where("category_id = ? AND is_active = ? AND id <> ?", *product.CategoryID, true, product.ID).
		Order("views DESC").Limit(limit).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// IncrementViews bumps the view counter without racing concurrent readers.
func (s *Service) IncrementViews(id string) error {
	return s.db.Model(&models.ProductModel{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (s *Service) DeleteProduct(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImageModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Images

func (s *Service) AddImage(productID string, dto AddProductImageDTO) (*models.ProductImageModel, error) {
	p, err := s.ProductByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, gorm.ErrRecordNotFound
	}
	img := &models.ProductImageModel{
		ProductID: productID,
		Image:     dto.Image,
		AltText:   dto.AltText,
		Order:     dto.Order,
	}
	if err := s.db.Create(img).Error; err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Service) RemoveImage(productID string, imageID uint) error {
	res := s.db.Where("product_id = ? AND id = ?", productID, imageID).
		Delete(&models.ProductImageModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Service) applyProductDefaults(p *models.ProductModel) {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	if p.MetaTitle == "" {
		p.MetaTitle = p.Name
	}
	if p.MetaDescription == "" {
		p.MetaDescription = p.ShortDescription
	}
	if p.StockStatus == "" {
		if p.StockQuantity > 0 {
			p.StockStatus = models.StockInStock
		} else {
			p.StockStatus = models.StockOutOfStock
		}
	}
}

func (s *Service) checkProductConflict(sg, sku, excludeID string) error {
	q := s.db.Model(&models.ProductModel{}).Where("slug = ? OR sku = ?", sg, sku)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("product slug or sku already exists")
	}
	return nil
}

func parseStockStatus(raw string) (models.StockStatus, error) {
	if raw == "" {
		return "", nil
	}
	switch status := models.StockStatus(strings.ToLower(raw)); status {
	case models.StockInStock, models.StockOutOfStock, models.StockPreOrder:
		return status, nil
	default:
		return "", fmt.Errorf("invalid stock status: %s", raw)
	}
}
