package catalog

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wordpy/core/internal/middleware"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, staffMW gin.HandlerFunc) {
	cats := rg.Group("/product-categories")
	cats.GET("", h.listCategories)
	cats.GET("/:identifier", h.getCategory)

	catStaff := cats.Group("", staffMW)
	catStaff.POST("", h.createCategory)
	catStaff.PUT("/:identifier", h.updateCategory)
	catStaff.PATCH("/:identifier", h.updateCategory)
	catStaff.DELETE("/:identifier", h.deleteCategory)

	products := rg.Group("/products")
	products.GET("", h.listProducts)
	products.GET("/featured", h.featured)
	products.GET("/:identifier", h.getProduct)
	products.GET("/:identifier/related", h.relatedProducts)

	prodStaff := products.Group("", staffMW)
	prodStaff.POST("", h.createProduct)
	prodStaff.PUT("/:identifier", h.updateProduct)
	prodStaff.PATCH("/:identifier", h.updateProduct)
	prodStaff.DELETE("/:identifier", h.deleteProduct)
	prodStaff.POST("/:identifier/images", h.addImage)
	prodStaff.DELETE("/:identifier/images/:imageID", h.removeImage)
}

func (h *Handler) listCategories(c *gin.Context) {
	cats, err := h.svc.ListCategories(middleware.IsAuthenticated(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": cats})
}

func (h *Handler) getCategory(c *gin.Context) {
	cat, err := h.resolveCategory(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) createCategory(c *gin.Context) {
	var dto CreateProductCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.CreateCategory(dto)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.Created(c, cat)
}

func (h *Handler) updateCategory(c *gin.Context) {
	var dto UpdateProductCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.resolveCategory(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFound(c)
		return
	}
	updated, err := h.svc.UpdateCategory(cat.ID, dto)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.OK(c, updated)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	cat, err := h.resolveCategory(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFound(c)
		return
	}
	if err := h.svc.DeleteCategory(cat.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listProducts(c *gin.Context) {
	q := pagination.FromContext(c)
	filter := ProductListQuery{}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.Featured = &featured
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}

	products, pag, err := h.svc.ListProducts(q, filter, middleware.IsAuthenticated(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, products, pag)
}

func (h *Handler) featured(c *gin.Context) {
	limit := 8
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = v
	}
	products, err := h.svc.FeaturedProducts(limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": products})
}

func (h *Handler) getProduct(c *gin.Context) {
	p, err := h.resolveProduct(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	if !p.IsActive && !middleware.IsAuthenticated(c) {
		response.NotFound(c)
		return
	}
	if !middleware.IsAuthenticated(c) {
		if err := h.svc.IncrementViews(p.ID); err == nil {
			p.Views++
		}
	}
	response.OK(c, gin.H{
		"data":                p,
		"has_discount":        p.HasDiscount(),
		"discount_percentage": p.DiscountPercentage(),
	})
}

func (h *Handler) relatedProducts(c *gin.Context) {
	p, err := h.resolveProduct(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil || (!p.IsActive && !middleware.IsAuthenticated(c)) {
		response.NotFound(c)
		return
	}
	related, err := h.svc.RelatedProducts(p, 4)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": related})
}

func (h *Handler) createProduct(c *gin.Context) {
	var dto CreateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.CreateProduct(dto)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.Created(c, p)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var dto UpdateProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.resolveProduct(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	updated, err := h.svc.UpdateProduct(p.ID, dto)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.OK(c, updated)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	p, err := h.resolveProduct(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	if err := h.svc.DeleteProduct(p.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) addImage(c *gin.Context) {
	var dto AddProductImageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.resolveProduct(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	img, err := h.svc.AddImage(p.ID, dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, img)
}

func (h *Handler) removeImage(c *gin.Context) {
	p, err := h.resolveProduct(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	imageID, err := strconv.ParseUint(c.Param("imageID"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}
	if err := h.svc.RemoveImage(p.ID, uint(imageID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// resolveCategory tries slug first, then falls back to primary key.
func (h *Handler) resolveCategory(identifier string) (*models.ProductCategoryModel, error) {
	cat, err := h.svc.CategoryBySlug(identifier)
	if err != nil || cat != nil {
		return cat, err
	}
	return h.svc.CategoryByID(identifier)
}

func (h *Handler) resolveProduct(identifier string) (*models.ProductModel, error) {
	p, err := h.svc.ProductBySlug(identifier)
	if err != nil || p != nil {
		return p, err
	}
	return h.svc.ProductByID(identifier)
}
