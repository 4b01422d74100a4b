package media

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcfg "github.com/wordpy/core/internal/config"
	"github.com/wordpy/core/internal/middleware"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
)

const maxUploadBytes = 50 << 20 // 50 MiB

type Handler struct {
	svc        *Service
	uploadsDir string
}

func NewHandler(svc *Service, uploadsDir string) *Handler {
	return &Handler{
		svc:        svc,
		uploadsDir: appcfg.ResolveRuntimePath(uploadsDir, "uploads"),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, staffMW gin.HandlerFunc) {
	files := rg.Group("/media")
	files.GET("/file/:name", h.serve)

	staff := files.Group("", staffMW)
	staff.GET("", h.list)
	staff.GET("/:id", h.get)
	staff.POST("/upload", h.upload)
	staff.PATCH("/:id", h.update)
	staff.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(q, c.Query("type"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) get(c *gin.Context) {
	item, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, item)
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if file.Size > maxUploadBytes {
		response.BadRequest(c, "file too large")
		return
	}

	name := buildFileName(file.Filename)
	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		response.InternalError(c, err)
		return
	}
	dest := filepath.Join(h.uploadsDir, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		response.InternalError(c, err)
		return
	}

	fileURL := "/api/v1/media/file/" + url.PathEscape(name)
	item, err := h.svc.Record(middleware.CurrentUserID(c), c.PostForm("title"), name, fileURL, file.Size)
	if err != nil {
		_ = os.Remove(dest)
		response.InternalError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) serve(c *gin.Context) {
	name := safeName(c.Param("name"))
	if name == "" {
		response.NotFound(c)
		return
	}
	path := filepath.Join(h.uploadsDir, name)
	if _, err := os.Stat(path); err != nil {
		response.NotFound(c)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000")
	c.File(path)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateMediaDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, item)
}

func (h *Handler) delete(c *gin.Context) {
	item, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	_ = os.Remove(filepath.Join(h.uploadsDir, safeName(item.FileName)))
	response.NoContent(c)
}

// buildFileName generates a collision-resistant filename that preserves
// the original extension.
func buildFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
}

// safeName rejects path traversal in user-supplied file names.
func safeName(raw string) string {
	name := filepath.Base(strings.TrimSpace(raw))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
