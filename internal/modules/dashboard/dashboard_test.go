package dashboard

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
		&models.CategoryModel{},
		&models.PostModel{},
		&models.CommentModel{},
		&models.PageModel{},
		&models.ProductModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.ConversationModel{},
		&models.MessageModel{},
		&models.ModuleModel{},
	))
	return db
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	user := &models.UserModel{Username: "author", Name: "Author", Mail: "a@example.com", IsActive: true}
	require.NoError(t, db.Create(user).Error)

	require.NoError(t, db.Create(&models.PostModel{
		Title: "One", Slug: "one", Content: "x", AuthorID: user.ID,
		Status: models.PostStatusPublished, Views: 7,
	}).Error)
	require.NoError(t, db.Create(&models.PostModel{
		Title: "Two", Slug: "two", Content: "x", AuthorID: user.ID,
		Status: models.PostStatusDraft, Views: 3,
	}).Error)

	post := models.PostModel{}
	require.NoError(t, db.First(&post, "slug = ?", "one").Error)
	require.NoError(t, db.Create(&models.CommentModel{
		PostID: post.ID, Content: "nice", AuthorName: "Anon", AuthorEmail: "anon@example.com",
	}).Error)

	paid := &models.OrderModel{
		OrderNumber: "AAAAAAAAAA", Status: models.OrderDelivered,
		PaymentStatus: models.PaymentPaid, Total: decimal.NewFromInt(120),
	}
	unpaid := &models.OrderModel{
		OrderNumber: "BBBBBBBBBB", Status: models.OrderPending,
		PaymentStatus: models.PaymentPending, Total: decimal.NewFromInt(60),
	}
	require.NoError(t, db.Create(paid).Error)
	require.NoError(t, db.Create(unpaid).Error)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Posts)
	assert.Equal(t, int64(1), stats.PublishedPosts)
	assert.Equal(t, int64(1), stats.Comments)
	assert.Equal(t, int64(1), stats.PendingComments)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(2), stats.Orders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, int64(10), stats.TotalViews)
	assert.Equal(t, int64(1), stats.NewUsers30Days)
	assert.Equal(t, int64(2), stats.WeekActivity.Posts)
	assert.Equal(t, int64(2), stats.WeekActivity.Orders)
	assert.Equal(t, int64(0), stats.Modules)
}

func TestBestsellers(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	order := &models.OrderModel{OrderNumber: "CCCCCCCCCC", Total: decimal.NewFromInt(90)}
	require.NoError(t, db.Create(order).Error)
	p1, p2 := "p1", "p2"
	require.NoError(t, db.Create(&models.OrderItemModel{
		OrderID: order.ID, ProductID: &p1, ProductName: "Mug",
		Price: decimal.NewFromInt(10), Quantity: 5, TotalPrice: decimal.NewFromInt(50),
	}).Error)
	require.NoError(t, db.Create(&models.OrderItemModel{
		OrderID: order.ID, ProductID: &p2, ProductName: "Cap",
		Price: decimal.NewFromInt(20), Quantity: 2, TotalPrice: decimal.NewFromInt(40),
	}).Error)

	rows, err := svc.Bestsellers(5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Mug", rows[0].ProductName)
	assert.Equal(t, int64(5), rows[0].UnitsSold)
}

func TestRecentLimits(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	user := &models.UserModel{Username: "author", Name: "Author", Mail: "a@example.com", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	for i := 0; i < 8; i++ {
		require.NoError(t, db.Create(&models.PostModel{
			Title: "P", Slug: "p-" + string(rune('a'+i)), Content: "x",
			AuthorID: user.ID, Status: models.PostStatusPublished,
		}).Error)
	}

	recent, err := svc.Recent(3)
	require.NoError(t, err)
	assert.Len(t, recent.Posts, 3)
	assert.Len(t, recent.Users, 1)
}
