package cart

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/wordpy/core/internal/models"
)

var (
	ErrProductUnavailable = errors.New("product is not available")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ActiveCart returns the user's active cart, creating one on first use.
// Items are loaded with their product rows so totals can be rendered.
func (s *Service) ActiveCart(userID string) (*models.CartModel, error) {
	var cart models.CartModel
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Items.Product").
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.CartModel{UserID: userID, IsActive: true}
		if err := s.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts a product into the user's cart, or bumps the quantity of an
// existing line. The resulting quantity never exceeds the live stock count;
// the returned message reports when it was capped.
func (s *Service) AddItem(userID, productID string, quantity int) (*models.CartModel, string, error) {
	if quantity < 1 {
		return nil, "", ErrInvalidQuantity
	}

	var product models.ProductModel
	err := s.db.Where("id = ?", productID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, "", err
	}
	if !product.IsActive {
		return nil, "", ErrProductUnavailable
	}
	if product.StockQuantity <= 0 {
		return nil, "", ErrOutOfStock
	}

	cart, err := s.ActiveCart(userID)
	if err != nil {
		return nil, "", err
	}

	message := "item added to cart"
	var line models.CartItemModel
	err = s.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&line).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		wanted := quantity
		if wanted > product.StockQuantity {
			wanted = product.StockQuantity
			message = fmt.Sprintf("quantity capped at available stock (%d)", wanted)
		}
		line = models.CartItemModel{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  wanted,
			Price:     product.Price,
		}
		if err := s.db.Create(&line).Error; err != nil {
			return nil, "", err
		}
	case err != nil:
		return nil, "", err
	default:
		wanted := line.Quantity + quantity
		if wanted > product.StockQuantity {
			wanted = product.StockQuantity
			message = fmt.Sprintf("quantity capped at available stock (%d)", wanted)
		}
		line.Quantity = wanted
		if err := s.db.Save(&line).Error; err != nil {
			return nil, "", err
		}
	}

	cart, err = s.ActiveCart(userID)
	return cart, message, err
}

// UpdateItem sets a line's quantity. Zero removes the line; the quantity is
// capped at the product's live stock.
func (s *Service) UpdateItem(userID string, itemID uint, quantity int) (*models.CartModel, string, error) {
	if quantity < 0 {
		return nil, "", ErrInvalidQuantity
	}
	if quantity == 0 {
		cart, err := s.RemoveItem(userID, itemID)
		return cart, "item removed from cart", err
	}

	cart, err := s.ActiveCart(userID)
	if err != nil {
		return nil, "", err
	}

	var line models.CartItemModel
	err = s.db.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, "", err
	}

	var product models.ProductModel
	if err := s.db.Where("id = ?", line.ProductID).First(&product).Error; err != nil {
		return nil, "", err
	}

	message := "cart updated"
	if quantity > product.StockQuantity {
		quantity = product.StockQuantity
		message = fmt.Sprintf("quantity capped at available stock (%d)", quantity)
	}
	if quantity < 1 {
		cart, err := s.RemoveItem(userID, itemID)
		return cart, "item removed from cart", err
	}

	line.Quantity = quantity
	if err := s.db.Save(&line).Error; err != nil {
		return nil, "", err
	}

	cart, err = s.ActiveCart(userID)
	return cart, message, err
}

// RemoveItem deletes a line from the user's active cart.
func (s *Service) RemoveItem(userID string, itemID uint) (*models.CartModel, error) {
	cart, err := s.ActiveCart(userID)
	if err != nil {
		return nil, err
	}
	res := s.db.Where("id = ? AND cart_id = ?", itemID, cart.ID).
		Delete(&models.CartItemModel{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.ActiveCart(userID)
}

// Clear removes every line from the user's active cart.
func (s *Service) Clear(userID string) (*models.CartModel, error) {
	cart, err := s.ActiveCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItemModel{}).Error; err != nil {
		return nil, err
	}
	return s.ActiveCart(userID)
}
