package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/article-share-api/internal/models"
	"github.com/article-share-api/internal/service"
	"github.com/article-share-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// List handles GET /articles
func (h *ArticleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	articles, err := h.services.Article.List(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// Create handles POST /articles. The owner is always the authenticated
// user; a user_id in the body is ignored.
func (h *ArticleHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	claims := currentClaims(c)

	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	req.Title = strings.TrimSpace(req.Title)

	if errs := validation.ValidateArticleURL(req.URL); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	article, err := h.services.Article.Create(ctx, req.URL, req.Title, claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create article"})
		return
	}

	c.JSON(http.StatusCreated, article)
}

// Delete handles DELETE /articles/:id. A missing article reports 404 before
// ownership is checked; 403 is only returned for an existing article.
func (h *ArticleHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	claims := currentClaims(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	if err := h.services.Article.Delete(ctx, id, claims.UserID, claims.IsAdmin); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this article"})
		default:
			h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to delete article")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete article"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}
