package food

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karahanbuhan/besinveri/internal/apierr"
	"github.com/karahanbuhan/besinveri/internal/logger"
)

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

//
// --------------------------------------------------
// GET /food/:slug
// --------------------------------------------------
//

func (h *Handler) GetBySlug() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		f, err := h.service.GetBySlug(c.Request.Context(), slug)
		if errors.Is(err, ErrNotFound) {
			apierr.NotFound("bu isimde bir yemek bulunamadı").Write(c)
			return
		}
		if err != nil {
			h.log.Error("food lookup failed", "slug", slug, "error", err)
			apierr.Internal("veritabanı yemek sorgusu hatası").Write(c)
			return
		}

		c.JSON(http.StatusOK, f)
	}
}

//
// --------------------------------------------------
// GET /foods
// --------------------------------------------------
//

func (h *Handler) ListVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		urls, err := h.service.ListVerified(c.Request.Context())
		if err != nil {
			h.log.Error("food listing failed", "error", err)
			apierr.Internal("veritabanı yemek açıklama sorgusu hatası").Write(c)
			return
		}

		c.JSON(http.StatusOK, urls)
	}
}

//
// --------------------------------------------------
// GET /foods/search?query=&mode=&limit=
// --------------------------------------------------
//

type searchParams struct {
	Query string `form:"query" binding:"required"`
	Mode  string `form:"mode" binding:"required"`
	Limit int    `form:"limit" binding:"required,gt=0"`
}

func (h *Handler) Search() gin.HandlerFunc {
	return func(c *gin.Context) {
		var params searchParams
		if err := c.ShouldBindQuery(&params); err != nil {
			apierr.BadRequest("geçersiz sorgu!").Write(c)
			return
		}

		foods, err := h.service.Search(c.Request.Context(), params.Query, params.Mode, params.Limit)
		if errors.Is(err, ErrInvalidMode) {
			apierr.BadRequest("geçersiz sorgu!").Write(c)
			return
		}
		if err != nil {
			h.log.Error("food search failed",
				"query", params.Query, "mode", params.Mode, "limit", params.Limit, "error", err)
			apierr.Internal("veritabanı yemek arama hatası").Write(c)
			return
		}

		if foods == nil {
			foods = []Food{}
		}
		c.JSON(http.StatusOK, foods)
	}
}

//
// --------------------------------------------------
// GET /tags
// --------------------------------------------------
//

func (h *Handler) ListTags() gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := h.service.ListTags(c.Request.Context())
		if err != nil {
			h.log.Error("tag listing failed", "error", err)
			apierr.Internal("veritabanı etiket sorgusu hatası").Write(c)
			return
		}

		if tags == nil {
			tags = []string{}
		}
		c.JSON(http.StatusOK, tags)
	}
}
