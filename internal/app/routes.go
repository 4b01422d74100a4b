package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wordpy/core/internal/middleware"
	"github.com/wordpy/core/internal/modules/auth"
	"github.com/wordpy/core/internal/modules/commerce/cart"
	"github.com/wordpy/core/internal/modules/commerce/catalog"
	"github.com/wordpy/core/internal/modules/commerce/order"
	"github.com/wordpy/core/internal/modules/content/category"
	"github.com/wordpy/core/internal/modules/content/comment"
	"github.com/wordpy/core/internal/modules/content/media"
	"github.com/wordpy/core/internal/modules/content/page"
	"github.com/wordpy/core/internal/modules/content/post"
	"github.com/wordpy/core/internal/modules/content/section"
	"github.com/wordpy/core/internal/modules/content/settings"
	"github.com/wordpy/core/internal/modules/content/theme"
	"github.com/wordpy/core/internal/modules/dashboard"
	"github.com/wordpy/core/internal/modules/messaging"
	"github.com/wordpy/core/internal/modules/registry"
	pkgredis "github.com/wordpy/core/internal/pkg/redis"
	"github.com/wordpy/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db

	authMW := middleware.Auth(db)
	staffMW := middleware.RequireStaff(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(db))
	api.Use(middleware.HTTPCache(rc.Raw(), middleware.HTTPCacheOptions{
		TTL: 30 * time.Second,
		SkipPaths: []string{
			apiPrefix + "/cart",
			apiPrefix + "/orders",
			apiPrefix + "/messaging",
			apiPrefix + "/dashboard",
			apiPrefix + "/auth",
		},
	}))

	api.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"pong": true})
	})

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW, staffMW)

	settingsSvc := settings.NewService(db)
	settings.NewHandler(settingsSvc).RegisterRoutes(api, staffMW)

	category.NewHandler(category.NewService(db)).RegisterRoutes(api, staffMW)
	post.NewHandler(post.NewService(db)).RegisterRoutes(api, staffMW)
	comment.NewHandler(comment.NewService(db, settingsSvc)).RegisterRoutes(api, middleware.OptionalAuth(db), staffMW)
	section.NewHandler(section.NewService(db)).RegisterRoutes(api, staffMW)
	page.NewHandler(page.NewService(db)).RegisterRoutes(api, staffMW)
	themeHandler := theme.NewHandler(theme.NewService(db, settingsSvc))
	themeHandler.RegisterRoutes(api, staffMW)
	r.GET("/theme.css", themeHandler.ServeCSS)
	media.NewHandler(media.NewService(db), a.cfg.Paths.Uploads).RegisterRoutes(api, staffMW)

	catalog.NewHandler(catalog.NewService(db)).RegisterRoutes(api, staffMW)
	cart.NewHandler(cart.NewService(db)).RegisterRoutes(api, authMW)
	order.NewHandler(order.NewService(db)).RegisterRoutes(api, authMW, staffMW)

	messaging.NewHandler(messaging.NewService(db)).RegisterRoutes(api, authMW)
	registry.NewHandler(registry.NewService(db)).RegisterRoutes(api, staffMW)
	dashboard.NewHandler(dashboard.NewService(db)).RegisterRoutes(api, staffMW)
}
