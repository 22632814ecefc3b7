package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/middleware"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
	"github.com/bishtdisha/helpdesk-sub000/internal/service"
)

// KnowledgeHandler serves the knowledge base endpoints.
type KnowledgeHandler struct {
	guard    *service.KnowledgeAccessService
	articles repository.ArticleStore
}

func NewKnowledgeHandler(guard *service.KnowledgeAccessService, articles repository.ArticleStore) *KnowledgeHandler {
	return &KnowledgeHandler{guard: guard, articles: articles}
}

// List returns the articles visible to the caller, paginated.
func (h *KnowledgeHandler) List(c *gin.Context) {
	var req models.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, access.ErrInvalidInput(err.Error()))
		return
	}

	filter, err := h.guard.ListFilter(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.articles.List(c.Request.Context(), filter, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one article. Articles the caller cannot see report not-found.
func (h *KnowledgeHandler) Get(c *gin.Context) {
	articleID := c.Param("id")
	if err := h.guard.Authorize(c.Request.Context(), middleware.CurrentUserID(c), articleID, access.ActionRead); err != nil {
		respondError(c, err)
		return
	}

	article, err := h.articles.GetByID(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Create adds a new article, unpublished until explicitly published.
func (h *KnowledgeHandler) Create(c *gin.Context) {
	var req models.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, access.ErrInvalidInput(err.Error()))
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.guard.AuthorizeCreate(c.Request.Context(), user.ID, req.AccessLevel, req.TeamID); err != nil {
		respondError(c, err)
		return
	}

	article := &models.KnowledgeArticle{
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		AccessLevel: req.AccessLevel,
		AuthorID:    user.ID,
		TeamID:      req.TeamID,
	}
	if err := h.articles.Create(c.Request.Context(), article); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Publish flips an article to published.
func (h *KnowledgeHandler) Publish(c *gin.Context) {
	articleID := c.Param("id")
	ctx := c.Request.Context()
	if err := h.guard.Authorize(ctx, middleware.CurrentUserID(c), articleID, access.ActionPublish); err != nil {
		respondError(c, err)
		return
	}
	if err := h.articles.SetPublished(ctx, articleID, true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": articleID, "is_published": true})
}
