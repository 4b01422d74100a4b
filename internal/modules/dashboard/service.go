package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wordpy/core/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Stats is the aggregate snapshot shown on the admin dashboard.
type Stats struct {
	Posts              int64           `json:"posts"`
	PublishedPosts     int64           `json:"published_posts"`
	Pages              int64           `json:"pages"`
	Categories         int64           `json:"categories"`
	Comments           int64           `json:"comments"`
	PendingComments    int64           `json:"pending_comments"`
	Users              int64           `json:"users"`
	NewUsers30Days     int64           `json:"new_users_30_days"`
	Products           int64           `json:"products"`
	OutOfStockProducts int64           `json:"out_of_stock_products"`
	Orders             int64           `json:"orders"`
	PendingOrders      int64           `json:"pending_orders"`
	Revenue            decimal.Decimal `json:"revenue"`
	TotalViews         int64           `json:"total_views"`
	Conversations      int64           `json:"conversations"`
	Messages           int64           `json:"messages"`
	UnreadMessages     int64           `json:"unread_messages"`
	Modules            int64           `json:"modules"`
	ActiveModules      int64           `json:"active_modules"`
	WeekActivity       WeekActivity    `json:"week_activity"`
}

// WeekActivity counts rows created in the trailing seven days.
type WeekActivity struct {
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Orders   int64 `json:"orders"`
	Messages int64 `json:"messages"`
}

// Bestseller aggregates units sold per product across all orders.
type Bestseller struct {
	ProductID   *string `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitsSold   int64   `json:"units_sold"`
}

// Recent bundles the latest activity for the dashboard feed.
type Recent struct {
	Posts        []models.PostModel    `json:"posts"`
	PopularPosts []models.PostModel    `json:"popular_posts"`
	Comments     []models.CommentModel `json:"comments"`
	Orders       []models.OrderModel   `json:"orders"`
	Bestsellers  []Bestseller          `json:"bestsellers"`
	Users        []models.UserModel    `json:"users"`
}

// Stats gathers the headline counters. Revenue sums the persisted totals of
// paid orders only.
func (s *Service) Stats() (*Stats, error) {
	stats := &Stats{Revenue: decimal.Zero}
	monthAgo := time.Now().AddDate(0, 0, -30)
	weekAgo := time.Now().AddDate(0, 0, -7)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.Posts, s.db.Model(&models.PostModel{})},
		{&stats.PublishedPosts, s.db.Model(&models.PostModel{}).Where("status = ?", models.PostStatusPublished)},
		{&stats.Pages, s.db.Model(&models.PageModel{})},
		{&stats.Categories, s.db.Model(&models.CategoryModel{})},
		{&stats.Comments, s.db.Model(&models.CommentModel{})},
		{&stats.PendingComments, s.db.Model(&models.CommentModel{}).Where("is_approved = ?", false)},
		{&stats.Users, s.db.Model(&models.UserModel{})},
		{&stats.NewUsers30Days, s.db.Model(&models.UserModel{}).Where("created_at >= ?", monthAgo)},
		{&stats.Products, s.db.Model(&models.ProductModel{})},
		{&stats.OutOfStockProducts, s.db.Model(&models.ProductModel{}).Where("stock_status = ?", models.StockOutOfStock)},
		{&stats.Orders, s.db.Model(&models.OrderModel{})},
		{&stats.PendingOrders, s.db.Model(&models.OrderModel{}).Where("status = ?", models.OrderPending)},
		{&stats.Conversations, s.db.Model(&models.ConversationModel{})},
		{&stats.Messages, s.db.Model(&models.MessageModel{})},
		{&stats.UnreadMessages, s.db.Model(&models.MessageModel{}).Where("is_read = ?", false)},
		{&stats.Modules, s.db.Model(&models.ModuleModel{})},
		{&stats.ActiveModules, s.db.Model(&models.ModuleModel{}).Where("is_active = ?", true)},
		{&stats.WeekActivity.Posts, s.db.Model(&models.PostModel{}).Where("created_at >= ?", weekAgo)},
		{&stats.WeekActivity.Comments, s.db.Model(&models.CommentModel{}).Where("created_at >= ?", weekAgo)},
		{&stats.WeekActivity.Orders, s.db.Model(&models.OrderModel{}).Where("created_at >= ?", weekAgo)},
		{&stats.WeekActivity.Messages, s.db.Model(&models.MessageModel{}).Where("created_at >= ?", weekAgo)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var totals []decimal.Decimal
	if err := s.db.Model(&models.OrderModel{}).
		Where("payment_status = ?", models.PaymentPaid).
		Pluck("total", &totals).Error; err != nil {
		return nil, err
	}
	for _, total := range totals {
		stats.Revenue = stats.Revenue.Add(total)
	}

	var views []int64
	if err := s.db.Model(&models.PostModel{}).Pluck("views", &views).Error; err != nil {
		return nil, err
	}
	for _, v := range views {
		stats.TotalViews += v
	}

	return stats, nil
}

// Recent returns the newest rows of each activity type, limited per type.
func (s *Service) Recent(limit int) (*Recent, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	recent := &Recent{}

	if err := s.db.Order("created_at DESC").Limit(limit).Find(&recent.Posts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("status = ?", models.PostStatusPublished).
		Order("views DESC").Limit(limit).Find(&recent.PopularPosts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&recent.Comments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Items").Order("created_at DESC").Limit(limit).Find(&recent.Orders).Error; err != nil {
		return nil, err
	}
	bestsellers, err := s.Bestsellers(limit)
	if err != nil {
		return nil, err
	}
	recent.Bestsellers = bestsellers
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&recent.Users).Error; err != nil {
		return nil, err
	}
	return recent, nil
}

// Bestsellers ranks products by total units sold across all orders.
func (s *Service) Bestsellers(limit int) ([]Bestseller, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	var rows []Bestseller
	err := s.db.Model(&models.OrderItemModel{}).
		Select("product_id, product_name, SUM(quantity) AS units_sold").
		Group("product_id, product_name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
