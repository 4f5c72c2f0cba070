package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cms-backend/internal/middleware"
	"cms-backend/internal/models"
	"cms-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ArticleHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
}

type articleHandler struct {
	articleRepo repository.ArticleRepository
	logger      *zap.Logger
}

func NewArticleHandler(articleRepo repository.ArticleRepository, logger *zap.Logger) ArticleHandler {
	return &articleHandler{articleRepo: articleRepo, logger: logger}
}

type ArticleCreateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// ArticleUpdateRequest carries a partial update: nil fields are left
// unchanged.
type ArticleUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *articleHandler) List(c *gin.Context) {
	articles, err := h.articleRepo.GetAllArticles(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
		return
	}

	c.JSON(http.StatusOK, articles)
}

func (h *articleHandler) Create(c *gin.Context) {
	var req ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := c.MustGet(middleware.UserKey).(*models.User)

	article := &models.Article{
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: &user.ID,
	}

	err := h.articleRepo.CreateArticle(c.Request.Context(), article)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Article with this title already exists"})
			return
		}
		h.logger.Error("Failed to create article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (h *articleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	var req ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.articleRepo.UpdateArticle(c.Request.Context(), id, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		case errors.Is(err, repository.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Article with this title already exists"})
		default:
			h.logger.Error("Failed to update article", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
