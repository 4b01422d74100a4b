package app

import (
	"context"
	"time"

	"github.com/wordpy/core/internal/models"
	pkgcron "github.com/wordpy/core/internal/pkg/cron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerCronJobs registers the scheduled maintenance jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("cron")

	sched.Register(pkgcron.Job{
		Name:        "cleanup_sessions",
		Description: "delete expired and revoked login sessions",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -7)
			res := db.Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", cutoff, cutoff).
				Delete(&models.UserSession{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				cronLogger.Info("purged stale sessions", zap.Int64("count", res.RowsAffected))
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "cleanup_carts",
		Description: "drop checked-out carts older than 90 days",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -90)
			var ids []string
			if err := db.Model(&models.CartModel{}).
				Where("is_active = ? AND updated_at < ?", false, cutoff).
				Pluck("id", &ids).Error; err != nil {
				return err
			}
			if len(ids) == 0 {
				return nil
			}
			return db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where("cart_id IN ?", ids).Delete(&models.CartItemModel{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", ids).Delete(&models.CartModel{}).Error; err != nil {
					return err
				}
				cronLogger.Info("purged old carts", zap.Int("count", len(ids)))
				return nil
			})
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "cleanup_notifications",
		Description: "delete read message notifications older than 30 days",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -30)
			res := db.Where("is_read = ? AND read_at < ?", true, cutoff).
				Delete(&models.MessageNotificationModel{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				cronLogger.Info("purged read notifications", zap.Int64("count", res.RowsAffected))
			}
			return nil
		},
	})
}
