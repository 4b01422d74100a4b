package order

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidStatus     = errors.New("invalid status")
)

const (
	orderNumberLen      = 10
	orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderNumberRetries  = 5
)

type CheckoutDTO struct {
	ShippingName    string `json:"shipping_name" binding:"required"`
	ShippingEmail   string `json:"shipping_email" binding:"required,email"`
	ShippingPhone   string `json:"shipping_phone"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
	ShippingCity    string `json:"shipping_city" binding:"required"`
	ShippingState   string `json:"shipping_state"`
	ShippingZipcode string `json:"shipping_zipcode"`
	ShippingCountry string `json:"shipping_country"`
	Notes           string `json:"notes"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Checkout converts the user's active cart into an order. The whole
// conversion runs in one transaction: stock is decremented with a guard
// against concurrent checkouts, item prices come from the cart's snapshots,
// and the cart is deactivated so the next ActiveCart call starts fresh.
func (s *Service) Checkout(userID string, dto CheckoutDTO) (*models.OrderModel, error) {
	var out *models.OrderModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.CartModel
		err := tx.Preload("Items").Preload("Items.Product").
			Where("user_id = ? AND is_active = ?", userID, true).
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}

		number, err := s.nextOrderNumber(tx)
		if err != nil {
			return err
		}

		subtotal := cart.Subtotal()
		ord := &models.OrderModel{
			OrderNumber:     number,
			UserID:          &userID,
			Status:          models.OrderPending,
			PaymentStatus:   models.PaymentPending,
			ShippingName:    dto.ShippingName,
			ShippingEmail:   dto.ShippingEmail,
			ShippingPhone:   dto.ShippingPhone,
			ShippingAddress: dto.ShippingAddress,
			ShippingCity:    dto.ShippingCity,
			ShippingState:   dto.ShippingState,
			ShippingZipcode: dto.ShippingZipcode,
			ShippingCountry: dto.ShippingCountry,
			Subtotal:        subtotal,
			ShippingCost:    decimal.Zero,
			Tax:             decimal.Zero,
			Total:           subtotal,
			Notes:           dto.Notes,
		}
		if err := tx.Create(ord).Error; err != nil {
			return err
		}

		for _, line := range cart.Items {
			if line.Product == nil {
				return fmt.Errorf("product %s no longer exists", line.ProductID)
			}
			// Guarded decrement: the WHERE clause refuses to oversell when a
			// concurrent checkout already drained the stock.
			res := tx.Model(&models.ProductModel{}).
				Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, line.Product.Name)
			}
			if err := tx.Model(&models.ProductModel{}).
				Where("id = ? AND stock_quantity <= 0", line.ProductID).
				Update("stock_status", models.StockOutOfStock).Error; err != nil {
				return err
			}

			productID := line.ProductID
			item := models.OrderItemModel{
				OrderID:     ord.ID,
				ProductID:   &productID,
				ProductName: line.Product.Name,
				ProductSKU:  line.Product.SKU,
				Quantity:    line.Quantity,
				Price:       line.Price,
				TotalPrice:  line.TotalPrice(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).
			Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CartModel{}).
			Where("id = ?", cart.ID).
			Update("is_active", false).Error; err != nil {
			return err
		}

		out = ord
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ByID(out.ID)
}

// ByID loads an order with its item lines.
func (s *Service) ByID(id string) (*models.OrderModel, error) {
	var ord models.OrderModel
	err := s.db.Preload("Items").Where("id = ?", id).First(&ord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

// ByNumber loads an order by its public order number.
func (s *Service) ByNumber(number string) (*models.OrderModel, error) {
	var ord models.OrderModel
	err := s.db.Preload("Items").Where("order_number = ?", strings.ToUpper(number)).First(&ord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ord, nil
}

// ListForUser pages through the user's own orders, newest first.
func (s *Service) ListForUser(userID string, q pagination.Query) ([]models.OrderModel, response.Pagination, error) {
	query := s.db.Model(&models.OrderModel{}).Preload("Items").
		Where("user_id = ?", userID).Order("created_at DESC")
	var orders []models.OrderModel
	pag, err := pagination.Paginate(query, q, &orders)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return orders, pag, nil
}

// ListAll pages through every order, with optional status filters.
func (s *Service) ListAll(q pagination.Query, status, paymentStatus string) ([]models.OrderModel, response.Pagination, error) {
	query := s.db.Model(&models.OrderModel{}).Preload("Items").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	var orders []models.OrderModel
	pag, err := pagination.Paginate(query, q, &orders)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return orders, pag, nil
}

// UpdateStatus sets the fulfillment status.
func (s *Service) UpdateStatus(id string, status string) (*models.OrderModel, error) {
	parsed, ok := parseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return s.setColumn(id, "status", parsed)
}

// UpdatePaymentStatus sets the payment status.
func (s *Service) UpdatePaymentStatus(id string, status string) (*models.OrderModel, error) {
	parsed, ok := parsePaymentStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return s.setColumn(id, "payment_status", parsed)
}

func (s *Service) setColumn(id, column string, value interface{}) (*models.OrderModel, error) {
	ord, err := s.ByID(id)
	if err != nil || ord == nil {
		return ord, err
	}
	if err := s.db.Model(ord).Update(column, value).Error; err != nil {
		return nil, err
	}
	return s.ByID(id)
}

// IsStaff reports whether the user is an active staff member.
func (s *Service) IsStaff(userID string) bool {
	if userID == "" {
		return false
	}
	var count int64
	s.db.Model(&models.UserModel{}).
		Where("id = ? AND is_staff = ? AND is_active = ?", userID, true, true).
		Count(&count)
	return count > 0
}

// nextOrderNumber draws random 10-character A-Z0-9 numbers until one is
// unused. Collisions are vanishingly rare but retried anyway.
func (s *Service) nextOrderNumber(tx *gorm.DB) (string, error) {
	for i := 0; i < orderNumberRetries; i++ {
		number, err := randomOrderNumber()
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.Model(&models.OrderModel{}).
			Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", errors.New("could not allocate an order number")
}

func randomOrderNumber() (string, error) {
	buf := make([]byte, orderNumberLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return string(buf), nil
}

func parseOrderStatus(raw string) (models.OrderStatus, bool) {
	switch status := models.OrderStatus(strings.ToLower(raw)); status {
	case models.OrderPending, models.OrderProcessing, models.OrderShipped,
		models.OrderDelivered, models.OrderCancelled:
		return status, true
	default:
		return "", false
	}
}

func parsePaymentStatus(raw string) (models.PaymentStatus, bool) {
	switch status := models.PaymentStatus(strings.ToLower(raw)); status {
	case models.PaymentPending, models.PaymentPaid, models.PaymentFailed,
		models.PaymentRefunded:
		return status, true
	default:
		return "", false
	}
}
